package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dmitrijs2005/storyshare/internal/client/models"
	"github.com/dmitrijs2005/storyshare/internal/common"
	"github.com/dmitrijs2005/storyshare/internal/dbx"
)

type SQLiteRepository struct {
	db  dbx.DBTX
	now func() time.Time
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db, now: time.Now}
}

func (r *SQLiteRepository) Append(ctx context.Context, story models.Story) (*models.QueueEntry, error) {
	payload, err := json.Marshal(story)
	if err != nil {
		return nil, fmt.Errorf("encode story %s: %w", story.ID, err)
	}

	enqueuedAt := r.now().UTC()
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO sync_queue (story_id, payload, state, enqueued_at) VALUES (?, ?, ?, ?)`,
		story.ID, payload, string(models.QueueStatePending), enqueuedAt.Format(time.RFC3339Nano))
	if err != nil {
		return nil, fmt.Errorf("failed to append queue entry: %w: %w", common.ErrStorage, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read queue entry id: %w: %w", common.ErrStorage, err)
	}

	return &models.QueueEntry{
		ID:         id,
		Story:      story,
		EnqueuedAt: enqueuedAt,
		State:      models.QueueStatePending,
	}, nil
}

func (r *SQLiteRepository) ListPending(ctx context.Context) ([]models.QueueEntry, error) {
	return r.list(ctx, `state <> ?`)
}

func (r *SQLiteRepository) ListAbandoned(ctx context.Context) ([]models.QueueEntry, error) {
	return r.list(ctx, `state = ?`)
}

func (r *SQLiteRepository) list(ctx context.Context, where string) ([]models.QueueEntry, error) {
	query := `SELECT id, payload, state, attempts, last_error, enqueued_at FROM sync_queue WHERE ` + where + ` ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, string(models.QueueStateAbandoned))
	if err != nil {
		return nil, fmt.Errorf("failed to select queue entries: %w: %w", common.ErrStorage, err)
	}
	defer rows.Close()

	var result []models.QueueEntry
	for rows.Next() {
		var (
			e          models.QueueEntry
			payload    []byte
			state      string
			enqueuedAt string
		)
		if err := rows.Scan(&e.ID, &payload, &state, &e.Attempts, &e.LastError, &enqueuedAt); err != nil {
			return nil, fmt.Errorf("failed to scan queue entry: %w: %w", common.ErrStorage, err)
		}
		if err := json.Unmarshal(payload, &e.Story); err != nil {
			return nil, fmt.Errorf("queue entry %d has corrupt payload: %w: %w", e.ID, common.ErrStorage, err)
		}
		e.State = models.QueueState(state)
		if t, err := time.Parse(time.RFC3339Nano, enqueuedAt); err == nil {
			e.EnqueuedAt = t
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate queue entries: %w: %w", common.ErrStorage, err)
	}
	return result, nil
}

func (r *SQLiteRepository) MarkFailed(ctx context.Context, id int64, attempts int, lastError string) error {
	return r.setState(ctx, id, models.QueueStateFailed, attempts, lastError)
}

func (r *SQLiteRepository) MarkAbandoned(ctx context.Context, id int64, attempts int, lastError string) error {
	return r.setState(ctx, id, models.QueueStateAbandoned, attempts, lastError)
}

func (r *SQLiteRepository) setState(ctx context.Context, id int64, state models.QueueState, attempts int, lastError string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE sync_queue SET state = ?, attempts = ?, last_error = ? WHERE id = ?`,
		string(state), attempts, lastError, id)
	if err != nil {
		return fmt.Errorf("failed to update queue entry %d: %w: %w", id, common.ErrStorage, err)
	}
	return nil
}

func (r *SQLiteRepository) Remove(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM sync_queue WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to remove queue entry %d: %w: %w", id, common.ErrStorage, err)
	}
	return nil
}
