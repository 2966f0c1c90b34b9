package gallery

import (
	"time"

	"github.com/youruser/photobooth/internal/session"
)

// Entry is one saved session together with its rendered strip.
type Entry struct {
	ID               string                  `json:"id"`
	SessionID        string                  `json:"sessionId,omitempty"`
	Email            string                  `json:"email"`
	Layout           string                  `json:"layout"`
	TotalShots       int                     `json:"totalShots"`
	Photos           []session.CapturedPhoto `json:"photos"`
	PhotoStrip       string                  `json:"photoStrip"` // data:image/png URL
	Filter           string                  `json:"filters"`
	Theme            string                  `json:"theme"`
	TextOverlayCount int                     `json:"textOverlays"`
	SessionDate      time.Time               `json:"sessionDate"`
	SavedAt          time.Time               `json:"savedAt"`
}

// corrupt entries have neither photos nor a strip and are dropped on load
func (e Entry) corrupt() bool {
	return len(e.Photos) == 0 && e.PhotoStrip == ""
}

// Summary is the list form of an Entry, without image payloads.
type Summary struct {
	ID               string    `json:"id"`
	Email            string    `json:"email"`
	Layout           string    `json:"layout"`
	PhotoCount       int       `json:"photoCount"`
	HasStrip         bool      `json:"hasStrip"`
	Filter           string    `json:"filters"`
	Theme            string    `json:"theme"`
	TextOverlayCount int       `json:"textOverlays"`
	SavedAt          time.Time `json:"savedAt"`
}

func (e Entry) Summary() Summary {
	return Summary{
		ID:               e.ID,
		Email:            e.Email,
		Layout:           e.Layout,
		PhotoCount:       len(e.Photos),
		HasStrip:         e.PhotoStrip != "",
		Filter:           e.Filter,
		Theme:            e.Theme,
		TextOverlayCount: e.TextOverlayCount,
		SavedAt:          e.SavedAt,
	}
}

// Download types recorded in the log.
const (
	DownloadStrip = "photo_strip"
	DownloadPhoto = "individual_photo"
	DownloadShare = "share"
	DownloadEmail = "email"
)

// Download is one download log record.
type Download struct {
	Timestamp    time.Time `json:"timestamp"`
	SessionID    string    `json:"sessionId"`
	Email        string    `json:"email"`
	Type         string    `json:"type"`
	Filename     string    `json:"filename"`
	Theme        string    `json:"theme"`
	Filter       string    `json:"filter"`
	PhotoCount   int       `json:"photoCount"`
	TextOverlays int       `json:"textOverlays"`
}

// Stats summarises the gallery.
type Stats struct {
	Sessions  int       `json:"sessions"`
	Photos    int       `json:"photos"`
	Strips    int       `json:"strips"`
	Downloads int       `json:"downloads"`
	LatestAt  time.Time `json:"latestAt,omitempty"`
}
