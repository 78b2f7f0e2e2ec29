package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/storyshare/internal/client/models"
	"github.com/dmitrijs2005/storyshare/internal/common"
	"github.com/dmitrijs2005/storyshare/internal/filex"
)

// readPhoto is a test seam for filex.ReadPhoto.
var readPhoto = filex.ReadPhoto

const (
	listDescriptionRunes = 60
	timeLayout           = "2006-01-02 15:04"
)

// List prints the story feed, marking stories still waiting to be synced and
// those the server refused for good.
func (a *App) List(ctx context.Context) error {
	list, err := a.storyService.ListStories(ctx, a.authService.Token(ctx))
	if err != nil {
		return err
	}
	if len(list) == 0 {
		printlnFn("No stories yet")
		return nil
	}

	rejected := a.abandonedIDs(ctx)
	for _, s := range list {
		line := fmt.Sprintf("%s  %s  %s", Title.Sprint(s.ID), Author.Sprint(s.Name), oneLine(s.Description, listDescriptionRunes))
		if s.IsOffline {
			if _, ok := rejected[s.ID]; ok {
				line += " " + Error.Sprint("[rejected]")
			} else {
				line += " " + Warning.Sprint("[pending]")
			}
		}
		printlnFn(line)
	}
	return nil
}

// abandonedIDs returns the ids of offline stories whose queue entry was
// moved aside. A lookup failure yields an empty set.
func (a *App) abandonedIDs(ctx context.Context) map[string]struct{} {
	entries, err := a.storyService.Abandoned(ctx)
	if err != nil {
		a.logger.Warn(ctx, "could not read abandoned stories", "err", err)
		return nil
	}
	ids := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		ids[e.Story.ID] = struct{}{}
	}
	return ids
}

// Show prints a single story. When id is empty the user is asked for one.
func (a *App) Show(ctx context.Context, id string) error {
	if id == "" {
		var err error
		id, err = getSimpleText(a.reader, "Enter story id", a.out)
		if err != nil {
			return err
		}
	}

	s, err := a.storyService.GetStory(ctx, id, a.authService.Token(ctx))
	if err != nil {
		return err
	}

	printlnFn(Title.Sprint(s.ID))
	printlnFn("Author:     ", Author.Sprint(s.Name))
	printlnFn("Created:    ", s.CreatedAt.Local().Format(timeLayout))
	if _, ok := a.abandonedIDs(ctx)[s.ID]; s.IsOffline && ok {
		printlnFn("Photo:      ", s.PhotoName, Error.Sprint("(rejected by the server, will not be sent)"))
	} else if s.IsOffline {
		printlnFn("Photo:      ", s.PhotoName, Warning.Sprint("(stored locally, waiting for sync)"))
	} else {
		printlnFn("Photo:      ", s.PhotoURL)
	}
	if s.Lat != nil && s.Lon != nil {
		printlnFn("Location:   ", fmt.Sprintf("%.6f, %.6f", *s.Lat, *s.Lon))
	}
	printlnFn()
	printlnFn(s.Description)
	return nil
}

// Add asks for a photo, a description and optional coordinates, then submits
// the story. Offline submissions are saved and queued.
func (a *App) Add(ctx context.Context) error {
	path, err := getSimpleText(a.reader, "Photo file path", a.out)
	if err != nil {
		return err
	}
	photo, err := readPhoto(path)
	if err != nil {
		return err
	}

	description, err := getMultiline(a.reader, "Description", a.out)
	if err != nil {
		return err
	}

	lat, err := a.readCoordinate("Latitude (optional)", -90, 90)
	if err != nil {
		return err
	}
	lon, err := a.readCoordinate("Longitude (optional)", -180, 180)
	if err != nil {
		return err
	}
	if (lat == nil) != (lon == nil) {
		return fmt.Errorf("%w: latitude and longitude go together", common.ErrInvalidDraft)
	}

	res, err := a.storyService.AddStory(ctx, models.Draft{
		Description: description,
		Photo:       photo.Data,
		PhotoName:   photo.Name,
		PhotoType:   photo.ContentType,
		Lat:         lat,
		Lon:         lon,
	}, a.authService.Token(ctx))
	if err != nil {
		return err
	}

	if res.Pending {
		printlnFn(Warning.Sprint(res.Message))
	} else {
		printlnFn(Success.Sprint(res.Message))
	}
	return nil
}

func (a *App) readCoordinate(prompt string, lo, hi float64) (*float64, error) {
	s, err := getSimpleText(a.reader, prompt, a.out)
	if err != nil {
		return nil, err
	}
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < lo || v > hi {
		return nil, fmt.Errorf("invalid coordinate %q", s)
	}
	return models.Coordinate(v), nil
}

// Sync sends queued stories in the foreground.
func (a *App) Sync(ctx context.Context) error {
	if a.getMode() == ModeOffline {
		printlnFn(Warning.Sprint("Offline, stories will be sent once the server is reachable"))
	}
	sent := a.storyService.Sync(ctx)
	printlnFn(fmt.Sprintf("Synced %d, pending %d", sent, len(a.storyService.Pending())))
	return nil
}

// Pending prints stories waiting to be created on the server.
func (a *App) Pending(ctx context.Context) error {
	printEntries(a.storyService.Pending(), "Nothing to sync")
	return nil
}

// Abandoned prints stories the server rejected too many times.
func (a *App) Abandoned(ctx context.Context) error {
	entries, err := a.storyService.Abandoned(ctx)
	if err != nil {
		return err
	}
	printEntries(entries, "No abandoned stories")
	return nil
}

func printEntries(entries []models.QueueEntry, empty string) {
	if len(entries) == 0 {
		printlnFn(empty)
		return
	}
	for _, e := range entries {
		line := fmt.Sprintf("#%d  %s  %s  %s", e.ID, e.EnqueuedAt.Local().Format(timeLayout), e.State, oneLine(e.Story.Description, listDescriptionRunes))
		if e.Attempts > 0 {
			line += fmt.Sprintf("  attempts=%d", e.Attempts)
		}
		if e.LastError != "" {
			line += "  " + Error.Sprint(e.LastError)
		}
		printlnFn(line)
	}
}

func oneLine(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	if len([]rune(s)) <= n {
		return s
	}
	return common.Truncate(s, n) + "..."
}

