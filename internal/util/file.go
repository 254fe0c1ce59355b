package util

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/google/uuid"
)

// Lower-case extension without the dot. "Foto.JPG" gives "jpg".
func FileExtension(fileName string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(fileName), "."))
}

func IsAllowedExtension(fileName string, allowed []string) bool {
	ext := FileExtension(fileName)
	if ext == "" {
		return false
	}
	return slices.ContainsFunc(allowed, func(a string) bool {
		return strings.EqualFold(strings.TrimPrefix(a, "."), ext)
	})
}

// Example output for "foto.jpg": "a3f2b1c4-5678-4012-9456-789012345678.jpg"
func UniqueFileName(ext string) string {
	ext = strings.TrimPrefix(strings.ToLower(ext), ".")
	if ext == "" {
		return uuid.NewString()
	}
	return fmt.Sprintf("%s.%s", uuid.NewString(), ext)
}

func GetTempDir() string {
	return filepath.Join(os.TempDir(), "magnetic-report")
}

func CreateTemp(pattern string) (*os.File, error) {
	tempDir := GetTempDir()
	if err := os.MkdirAll(tempDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create temp directory: %w", err)
	}
	return os.CreateTemp(tempDir, pattern)
}
