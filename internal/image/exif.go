package imagepkg

import (
	"io"
	"time"

	"github.com/evanoberholster/imagemeta"
)

// CaptureTime reads the EXIF capture time of an image, falling back from
// DateTimeOriginal to CreateDate. ok is false when neither is present.
func CaptureTime(r io.ReadSeeker) (t time.Time, ok bool) {
	meta, err := imagemeta.Decode(r)
	if err != nil {
		return time.Time{}, false
	}
	if t = meta.DateTimeOriginal(); !t.IsZero() {
		return t, true
	}
	if t = meta.CreateDate(); !t.IsZero() {
		return t, true
	}
	return time.Time{}, false
}
