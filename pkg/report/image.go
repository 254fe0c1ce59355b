package report

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

const (
	// DPI used to derive the natural printed size of a photo
	DPI = 72

	maxImageWidthMM  = 150.0
	maxImageHeightMM = 100.0

	// Photos are downsampled to this many pixels on the long side before
	// embedding. 1600px over 150mm is still above 270 DPI.
	maxEmbedPixels = 1600
)

// Converts pixels to millimeters
func pxToMM(px float64) float64 {
	return (px * 25.4) / DPI
}

func decodeImage(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}

	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, fmt.Errorf("decoding image: empty bounds %v", b)
	}

	return downscale(img, maxEmbedPixels), nil
}

// downscale shrinks img so that its longest side is at most maxSide.
func downscale(img image.Image, maxSide int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxSide && h <= maxSide {
		return img
	}

	nw, nh := maxSide, h*maxSide/w
	if h > w {
		nw, nh = w*maxSide/h, maxSide
	}
	nw, nh = max(nw, 1), max(nh, 1)

	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}

// fitImage returns the printed size of img in mm: its natural size scaled
// down proportionally to fit the photo box, never scaled up.
func fitImage(img image.Image) (float64, float64) {
	b := img.Bounds()
	return fitBox(pxToMM(float64(b.Dx())), pxToMM(float64(b.Dy())), maxImageWidthMM, maxImageHeightMM)
}

func fitBox(w, h, maxW, maxH float64) (float64, float64) {
	if w <= 0 || h <= 0 {
		return 0, 0
	}
	scale := min(1, maxW/w, maxH/h)
	return w * scale, h * scale
}
