// Package models defines client-side data models used by StoryShare.
// JSON field names follow the remote story API (photoUrl, createdAt, ...).
package models

import (
	"strings"
	"time"

	"github.com/dmitrijs2005/storyshare/internal/common"
)

// Story is one shared post, either fetched from the API or created locally
// while offline.
type Story struct {
	// ID is server-assigned, or common.OfflineIDPrefix + uuid when created offline.
	ID string `json:"id"`

	// Name is the author's display name.
	Name string `json:"name"`

	Description string `json:"description"`

	// PhotoURL is set for stories that came from the server.
	PhotoURL string `json:"photoUrl"`

	// Photo, PhotoName and PhotoType hold the image of a not-yet-synced story.
	Photo     []byte `json:"photo,omitempty"`
	PhotoName string `json:"photoName,omitempty"`
	PhotoType string `json:"photoType,omitempty"`

	Lat *float64 `json:"lat,omitempty"`
	Lon *float64 `json:"lon,omitempty"`

	CreatedAt time.Time `json:"createdAt"`

	// IsOffline marks a record that has not been accepted by the server yet.
	IsOffline bool `json:"isOffline,omitempty"`
}

// HasOfflineID reports whether the id was generated on this device.
func (s Story) HasOfflineID() bool {
	return strings.HasPrefix(s.ID, common.OfflineIDPrefix)
}

// Draft rebuilds the submission that produced an offline story.
func (s Story) Draft() Draft {
	return Draft{
		Description: s.Description,
		Photo:       s.Photo,
		PhotoName:   s.PhotoName,
		PhotoType:   s.PhotoType,
		Lat:         s.Lat,
		Lon:         s.Lon,
	}
}

// Draft is a caller-supplied story submission that has not been persisted.
type Draft struct {
	Description string
	Photo       []byte
	PhotoName   string
	PhotoType   string
	Lat         *float64
	Lon         *float64
}

// Valid reports whether the draft has everything the API requires.
func (d Draft) Valid() bool {
	return strings.TrimSpace(d.Description) != "" && len(d.Photo) > 0
}

// AddResult is returned from adding a story. Pending distinguishes "saved
// locally, waiting for sync" from a server confirmation.
type AddResult struct {
	Message string `json:"message"`
	Story   *Story `json:"story,omitempty"`
	Pending bool   `json:"-"`
}

// Coordinate is a helper for building optional lat/lon values.
func Coordinate(v float64) *float64 {
	return &v
}
