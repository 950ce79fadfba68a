package report

import (
	"fmt"

	"github.com/skip2/go-qrcode"
)

// DefaultQRSize is the edge length in pixels of generated QR codes.
const DefaultQRSize = 256

// QRCode encodes content as a PNG QR code. Share links carry the whole
// summary, so the lowest recovery level is used for the most capacity.
func QRCode(content string, size int) ([]byte, error) {
	if size <= 0 {
		size = DefaultQRSize
	}
	png, err := qrcode.Encode(content, qrcode.Low, size)
	if err != nil {
		return nil, fmt.Errorf("encode qr: %w", err)
	}
	return png, nil
}
