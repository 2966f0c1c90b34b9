package strip

import (
	"errors"
	"fmt"
)

// ErrNoStrip is returned when exporting before anything was rendered.
var ErrNoStrip = errors.New("no strip available")

// PhotoError reports a photo whose slot was left blank.
type PhotoError struct {
	Index      int // slot index, 0-based
	ShotNumber int
	Err        error
}

func (e *PhotoError) Error() string {
	return fmt.Sprintf("photo %d (shot %d): %v", e.Index, e.ShotNumber, e.Err)
}

func (e *PhotoError) Unwrap() error { return e.Err }
