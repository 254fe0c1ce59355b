package util

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"

	_ "image/gif"
	_ "image/png"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

type OptimizedImage struct {
	Data     []byte
	Width    int
	Height   int
	MimeType string
	Ext      string
}

// Re-encodes an uploaded photo as JPEG. Images wider than maxWidth are scaled
// down keeping their aspect ratio and transparency is flattened onto white.
// The caller keeps the original bytes when this fails.
func OptimizeImage(raw []byte, maxWidth, quality int) (*OptimizedImage, error) {
	src, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return nil, fmt.Errorf("image has no pixels")
	}

	if maxWidth > 0 && w > maxWidth {
		h = max(1, h*maxWidth/w)
		w = maxWidth
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	if w == b.Dx() {
		draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Over)
	} else {
		draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	}

	if quality <= 0 || quality > 100 {
		quality = jpeg.DefaultQuality
	}

	var out bytes.Buffer
	if err := jpeg.Encode(&out, dst, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}

	return &OptimizedImage{
		Data:     out.Bytes(),
		Width:    w,
		Height:   h,
		MimeType: "image/jpeg",
		Ext:      "jpg",
	}, nil
}
