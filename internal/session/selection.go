package session

// Selection is the ordered subset of a session's photos that goes into the
// strip. It starts with every photo.
type Selection struct {
	all    []CapturedPhoto
	picked []CapturedPhoto
}

func NewSelection(photos []CapturedPhoto) *Selection {
	s := &Selection{all: photos}
	s.Reset()
	return s
}

// Photos returns a copy of the current selection in strip order.
func (s *Selection) Photos() []CapturedPhoto {
	return append([]CapturedPhoto(nil), s.picked...)
}

// Contains reports whether p is selected. Photos are matched by shot number
// and timestamp; EXIF and mtime timestamps repeat within one second.
func (s *Selection) Contains(p CapturedPhoto) bool {
	return s.indexOf(p) >= 0
}

// Toggle removes p if selected, otherwise appends it to the end. It returns
// whether p is selected afterwards.
func (s *Selection) Toggle(p CapturedPhoto) bool {
	if i := s.indexOf(p); i >= 0 {
		s.picked = append(s.picked[:i:i], s.picked[i+1:]...)
		return false
	}
	s.picked = append(s.picked, p)
	return true
}

// ToggleShot toggles the photo with the given shot number. Unknown numbers
// are ignored.
func (s *Selection) ToggleShot(n int) bool {
	for _, p := range s.all {
		if p.ShotNumber == n {
			return s.Toggle(p)
		}
	}
	return false
}

// Reset selects every photo again in capture order.
func (s *Selection) Reset() {
	s.picked = append([]CapturedPhoto(nil), s.all...)
}

func (s *Selection) indexOf(p CapturedPhoto) int {
	for i, q := range s.picked {
		if q.ShotNumber == p.ShotNumber && q.Timestamp.Equal(p.Timestamp) {
			return i
		}
	}
	return -1
}
