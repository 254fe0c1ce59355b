package util

import (
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestUniqueFileName(t *testing.T) {
	a := UniqueFileName(".JPG")
	b := UniqueFileName("jpg")

	if a == b {
		t.Errorf("expected unique names, got %s twice", a)
	}

	for _, name := range []string{a, b} {
		if !strings.HasSuffix(name, ".jpg") {
			t.Errorf("expected .jpg suffix, got %s", name)
		}
		if _, err := uuid.Parse(strings.TrimSuffix(name, ".jpg")); err != nil {
			t.Errorf("expected a uuid stem, got %s", name)
		}
	}
}

func TestIsAllowedExtension(t *testing.T) {
	allowed := []string{"jpg", "jpeg", "png", "webp"}

	tests := []struct {
		name     string
		fileName string
		want     bool
	}{
		{"lower case", "foto.jpg", true},
		{"upper case", "FOTO.PNG", true},
		{"double extension", "foto.tar.webp", true},
		{"not allowed", "relatorio.pdf", false},
		{"no extension", "foto", false},
		{"dot file", ".jpg", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsAllowedExtension(tt.fileName, allowed); got != tt.want {
				t.Errorf("IsAllowedExtension(%q) = %v, want %v", tt.fileName, got, tt.want)
			}
		})
	}
}
