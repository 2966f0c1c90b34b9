package imagepkg

import qrcode "github.com/skip2/go-qrcode"

// DefaultQRSize is the edge length of share QR codes.
const DefaultQRSize = 256

// GenerateQRPNG returns PNG bytes of a QR code for the given text.
func GenerateQRPNG(text string, size int) ([]byte, error) {
	if size <= 0 {
		size = DefaultQRSize
	}
	return qrcode.Encode(text, qrcode.Medium, size)
}
