package session

import (
	"time"
)

// CapturedPhoto is one raw shot of a session.
type CapturedPhoto struct {
	DataURL    string    `json:"dataUrl"`
	Timestamp  time.Time `json:"timestamp"`
	ShotNumber int       `json:"shotNumber"` // 1-based
}

// Session is what the capture flow hands to the editor.
type Session struct {
	ID         string          `json:"sessionId,omitempty"`
	Email      string          `json:"email"`
	Layout     string          `json:"layout"` // shot count as chosen on the start page
	TotalShots int             `json:"totalShots"`
	Timestamp  time.Time       `json:"timestamp"`
	Photos     []CapturedPhoto `json:"photos"`
}

// Layouts are the shot counts offered on the start page.
var Layouts = []string{"2", "3", "4", "6"}

// ValidLayout reports whether l is one of Layouts.
func ValidLayout(l string) bool {
	for _, v := range Layouts {
		if v == l {
			return true
		}
	}
	return false
}
