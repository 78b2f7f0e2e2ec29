package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStory_DecodesAPIShape(t *testing.T) {
	raw := `{
		"id": "story-FvU4u0Vp2S3PMsFg",
		"name": "Dimas",
		"description": "Lorem Ipsum",
		"photoUrl": "https://story-api.dicoding.dev/images/stories/photos-1641623658595_dummy-pic.png",
		"createdAt": "2022-01-08T06:34:18.598Z",
		"lat": -10.212,
		"lon": -16.002
	}`

	var s Story
	require.NoError(t, json.Unmarshal([]byte(raw), &s))

	assert.Equal(t, "story-FvU4u0Vp2S3PMsFg", s.ID)
	assert.Equal(t, "Dimas", s.Name)
	assert.Equal(t, "https://story-api.dicoding.dev/images/stories/photos-1641623658595_dummy-pic.png", s.PhotoURL)
	assert.Equal(t, time.Date(2022, 1, 8, 6, 34, 18, 598000000, time.UTC), s.CreatedAt)
	require.NotNil(t, s.Lat)
	assert.InDelta(t, -10.212, *s.Lat, 1e-9)
	assert.False(t, s.IsOffline)
	assert.False(t, s.HasOfflineID())
}

func TestStory_NullCoordinates(t *testing.T) {
	var s Story
	require.NoError(t, json.Unmarshal([]byte(`{"id":"x","lat":null,"lon":null}`), &s))
	assert.Nil(t, s.Lat)
	assert.Nil(t, s.Lon)
}

func TestStory_OfflineFieldsSurviveJSON(t *testing.T) {
	in := Story{
		ID:          "offline-1",
		Description: "hi",
		Photo:       []byte{1, 2, 3},
		PhotoName:   "a.jpg",
		PhotoType:   "image/jpeg",
		Lat:         Coordinate(0),
		CreatedAt:   time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		IsOffline:   true,
	}
	b, err := json.Marshal(in)
	require.NoError(t, err)

	var out Story
	require.NoError(t, json.Unmarshal(b, &out))
	assert.Equal(t, in, out)
	assert.True(t, out.HasOfflineID())
	assert.Contains(t, string(b), `"isOffline":true`)
	assert.Contains(t, string(b), `"lat":0`)
}

func TestStory_Draft(t *testing.T) {
	s := Story{Description: "d", Photo: []byte{9}, PhotoName: "p.png", Lat: Coordinate(1), Lon: Coordinate(2)}
	d := s.Draft()
	assert.Equal(t, "d", d.Description)
	assert.Equal(t, []byte{9}, d.Photo)
	assert.Equal(t, 1.0, *d.Lat)
	assert.Equal(t, 2.0, *d.Lon)
	assert.True(t, d.Valid())
}

func TestDraft_Valid(t *testing.T) {
	assert.False(t, Draft{Description: "  ", Photo: []byte{1}}.Valid())
	assert.False(t, Draft{Description: "ok"}.Valid())
	assert.True(t, Draft{Description: "ok", Photo: []byte{1}}.Valid())
}
