package imagepkg

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/vincent-petithory/dataurl"
)

// ErrNotImage is returned for data URLs whose media type is not image/*.
var ErrNotImage = errors.New("data url is not an image")

// DecodeDataURL decodes a data:image/...;base64 URL into an image, applying
// any EXIF orientation.
func DecodeDataURL(s string) (image.Image, error) {
	du, err := dataurl.DecodeString(strings.TrimSpace(s))
	if err != nil {
		return nil, fmt.Errorf("parsing data url: %w", err)
	}
	if du.MediaType.Type != "image" {
		return nil, fmt.Errorf("%w: %s", ErrNotImage, du.MediaType.ContentType())
	}
	return Decode(du.Data)
}

// Decode decodes raw PNG/JPEG/GIF bytes, applying any EXIF orientation.
func Decode(b []byte) (image.Image, error) {
	img, err := imaging.Decode(bytes.NewReader(b), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}
	return img, nil
}
