package stories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/storyshare/internal/client/models"
	"github.com/dmitrijs2005/storyshare/internal/common"
	"github.com/dmitrijs2005/storyshare/internal/dbx"
)

const storyColumns = `id, name, description, photo_url, photo, photo_name, photo_type, lat, lon, created_at, is_offline`

// SQLiteRepository implements Repository on top of a DBTX.
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Put(ctx context.Context, s models.Story) error {
	query := `INSERT INTO stories (` + storyColumns + `)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET name = excluded.name,
				description = excluded.description,
				photo_url = excluded.photo_url,
				photo = excluded.photo,
				photo_name = excluded.photo_name,
				photo_type = excluded.photo_type,
				lat = excluded.lat,
				lon = excluded.lon,
				created_at = excluded.created_at,
				is_offline = excluded.is_offline
	`
	_, err := r.db.ExecContext(ctx, query,
		s.ID, s.Name, s.Description, s.PhotoURL, s.Photo, s.PhotoName, s.PhotoType,
		nullFloat(s.Lat), nullFloat(s.Lon), s.CreatedAt.UTC().Format(time.RFC3339Nano), s.IsOffline)
	if err != nil {
		return fmt.Errorf("failed to upsert story %s: %w: %w", s.ID, common.ErrStorage, err)
	}
	return nil
}

func (r *SQLiteRepository) PutAll(ctx context.Context, stories []models.Story) error {
	var errs []error
	for _, s := range stories {
		if err := r.Put(ctx, s); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (r *SQLiteRepository) GetAll(ctx context.Context) ([]models.Story, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+storyColumns+` FROM stories`)
	if err != nil {
		return nil, fmt.Errorf("failed to select stories: %w: %w", common.ErrStorage, err)
	}
	defer rows.Close()

	result := make([]models.Story, 0)
	for rows.Next() {
		s, err := scanStory(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate stories: %w: %w", common.ErrStorage, err)
	}
	return result, nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.Story, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+storyColumns+` FROM stories WHERE id = ?`, id)
	s, err := scanStory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("story %s: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM stories WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete story %s: %w: %w", id, common.ErrStorage, err)
	}
	return nil
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM stories`); err != nil {
		return fmt.Errorf("failed to clear stories: %w: %w", common.ErrStorage, err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanStory(row scanner) (*models.Story, error) {
	var (
		s         models.Story
		lat, lon  sql.NullFloat64
		createdAt string
	)
	err := row.Scan(&s.ID, &s.Name, &s.Description, &s.PhotoURL, &s.Photo, &s.PhotoName, &s.PhotoType,
		&lat, &lon, &createdAt, &s.IsOffline)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan story: %w: %w", common.ErrStorage, err)
	}

	if len(s.Photo) == 0 {
		s.Photo = nil
	}
	if lat.Valid {
		s.Lat = &lat.Float64
	}
	if lon.Valid {
		s.Lon = &lon.Float64
	}
	if createdAt != "" {
		t, err := time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, fmt.Errorf("story %s has bad created_at %q: %w: %w", s.ID, createdAt, common.ErrStorage, err)
		}
		s.CreatedAt = t
	}
	return &s, nil
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}
