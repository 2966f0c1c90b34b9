package imagepkg

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"
)

func solid(w, h int, c color.NRGBA) *image.NRGBA {
	im := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(im.Pix); i += 4 {
		im.Pix[i], im.Pix[i+1], im.Pix[i+2], im.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return im
}

func TestPNGDataURLRoundTrip(t *testing.T) {
	src := solid(8, 5, color.NRGBA{10, 20, 30, 255})
	u, err := PNGDataURL(src)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(u, "data:image/png;base64,") {
		t.Fatalf("unexpected prefix: %.40s", u)
	}
	got, err := DecodeDataURL(u)
	if err != nil {
		t.Fatal(err)
	}
	if got.Bounds().Dx() != 8 || got.Bounds().Dy() != 5 {
		t.Errorf("bounds = %v", got.Bounds())
	}
	r, g, b, _ := got.At(3, 3).RGBA()
	if r>>8 != 10 || g>>8 != 20 || b>>8 != 30 {
		t.Errorf("pixel = %d,%d,%d", r>>8, g>>8, b>>8)
	}
}

func TestJPEGDataURL(t *testing.T) {
	u, err := JPEGDataURL(solid(16, 16, color.NRGBA{200, 100, 50, 255}), DefaultJPEGQuality)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(u, "data:image/jpeg;base64,") {
		t.Fatalf("unexpected prefix: %.40s", u)
	}
	if _, err := DecodeDataURL(u); err != nil {
		t.Fatal(err)
	}
}

func TestDecodeDataURLErrors(t *testing.T) {
	if _, err := DecodeDataURL("data:text/plain;base64,aGVsbG8="); !errors.Is(err, ErrNotImage) {
		t.Errorf("text data url: err = %v, want ErrNotImage", err)
	}
	if _, err := DecodeDataURL("not a data url"); err == nil {
		t.Error("garbage accepted")
	}
	// valid envelope, corrupt payload
	if _, err := DecodeDataURL("data:image/png;base64,aGVsbG8="); err == nil {
		t.Error("corrupt png accepted")
	}
}

func TestQR(t *testing.T) {
	b, err := GenerateQRPNG("https://example.com/strip/1", 200)
	if err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(bytes.NewReader(b))
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() != 200 {
		t.Errorf("qr width = %d", img.Bounds().Dx())
	}
	if _, err := GenerateQRPNG("x", 0); err != nil {
		t.Fatal(err)
	}
}

func TestThumbnail(t *testing.T) {
	th := Thumbnail(solid(600, 1800, color.NRGBA{1, 2, 3, 255}), ThumbnailSize)
	if th.Bounds().Dx() != ThumbnailSize || th.Bounds().Dy() != ThumbnailSize {
		t.Errorf("thumbnail bounds = %v", th.Bounds())
	}
}

func TestCaptureTimeWithoutExif(t *testing.T) {
	var buf bytes.Buffer
	if err := EncodePNG(&buf, solid(4, 4, color.NRGBA{A: 255})); err != nil {
		t.Fatal(err)
	}
	if _, ok := CaptureTime(bytes.NewReader(buf.Bytes())); ok {
		t.Error("PNG without EXIF reported a capture time")
	}
}
