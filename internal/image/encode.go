package imagepkg

import (
	"bytes"
	"image"
	"io"

	"github.com/disintegration/imaging"
	"github.com/vincent-petithory/dataurl"
)

const (
	// DefaultJPEGQuality is used for individual source photos.
	DefaultJPEGQuality = 90
	// ThumbnailSize bounds gallery thumbnails.
	ThumbnailSize = 240
)

// EncodePNG writes img as PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	return imaging.Encode(w, img, imaging.PNG)
}

// EncodeJPEG writes img as JPEG at the given quality (1-100).
func EncodeJPEG(w io.Writer, img image.Image, quality int) error {
	return imaging.Encode(w, img, imaging.JPEG, imaging.JPEGQuality(quality))
}

// PNGDataURL encodes img as a data:image/png;base64 URL.
func PNGDataURL(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := EncodePNG(&buf, img); err != nil {
		return "", err
	}
	return dataurl.New(buf.Bytes(), "image/png").String(), nil
}

// JPEGDataURL encodes img as a data:image/jpeg;base64 URL.
func JPEGDataURL(img image.Image, quality int) (string, error) {
	var buf bytes.Buffer
	if err := EncodeJPEG(&buf, img, quality); err != nil {
		return "", err
	}
	return dataurl.New(buf.Bytes(), "image/jpeg").String(), nil
}

// Thumbnail scales and crops img to a size x size square.
func Thumbnail(img image.Image, size int) *image.NRGBA {
	return imaging.Thumbnail(img, size, size, imaging.Lanczos)
}
