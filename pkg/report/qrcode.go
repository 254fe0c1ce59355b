package report

import (
	"fmt"
	"image"

	"github.com/skip2/go-qrcode"
)

// 256px over qrSize mm is plenty for a phone camera
const qrPixels = 256

func generateQRCode(link string) (image.Image, error) {
	q, err := qrcode.New(link, qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("failed to generate QR code: %w", err)
	}
	q.DisableBorder = true
	return q.Image(qrPixels), nil
}
