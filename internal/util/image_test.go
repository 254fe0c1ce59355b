package util

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"
)

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestOptimizeImage(t *testing.T) {
	tests := []struct {
		name         string
		w, h         int
		maxWidth     int
		wantW, wantH int
	}{
		{"wide image is downscaled", 400, 200, 100, 100, 50},
		{"narrow image keeps its size", 80, 60, 100, 80, 60},
		{"no limit", 300, 10, 0, 300, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := encodePNG(t, image.NewRGBA(image.Rect(0, 0, tt.w, tt.h)))

			got, err := OptimizeImage(raw, tt.maxWidth, 85)
			if err != nil {
				t.Fatalf("OptimizeImage() error = %v", err)
			}
			if got.Width != tt.wantW || got.Height != tt.wantH {
				t.Errorf("size = %dx%d, want %dx%d", got.Width, got.Height, tt.wantW, tt.wantH)
			}

			cfg, format, err := image.DecodeConfig(bytes.NewReader(got.Data))
			if err != nil {
				t.Fatalf("output does not decode: %v", err)
			}
			if format != "jpeg" || cfg.Width != tt.wantW || cfg.Height != tt.wantH {
				t.Errorf("decoded %s %dx%d", format, cfg.Width, cfg.Height)
			}
		})
	}
}

func TestOptimizeImageFlattensTransparency(t *testing.T) {
	// fully transparent pixels become white
	raw := encodePNG(t, image.NewNRGBA(image.Rect(0, 0, 10, 10)))

	got, err := OptimizeImage(raw, 1920, 85)
	if err != nil {
		t.Fatalf("OptimizeImage() error = %v", err)
	}

	img, err := jpeg.Decode(bytes.NewReader(got.Data))
	if err != nil {
		t.Fatal(err)
	}
	r, g, b, _ := img.At(5, 5).RGBA()
	if r>>8 < 250 || g>>8 < 250 || b>>8 < 250 {
		t.Errorf("expected a white pixel, got %v", color.RGBAModel.Convert(img.At(5, 5)))
	}
}

func TestOptimizeImageRejectsGarbage(t *testing.T) {
	if _, err := OptimizeImage([]byte("not an image"), 1920, 85); err == nil {
		t.Error("expected an error")
	}
}
