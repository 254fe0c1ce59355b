package filestorage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/LucasBeserra/magnetic-report-api/pkg/report"
)

type LocalStorage struct {
	root         string
	publicPrefix string
}

func NewLocalStorage(root, publicPrefix string) (*LocalStorage, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	return &LocalStorage{root: root, publicPrefix: strings.TrimSuffix(publicPrefix, "/")}, nil
}

func (ls *LocalStorage) Root() string {
	return ls.root
}

// Storage paths are relative to the root and always use forward slashes.
func cleanStoragePath(storagePath string) (string, error) {
	clean := strings.TrimPrefix(path.Clean("/"+filepath.ToSlash(storagePath)), "/")
	if clean == "" {
		return "", fmt.Errorf("invalid storage path %q", storagePath)
	}
	return clean, nil
}

func (ls *LocalStorage) resolve(storagePath string) (string, error) {
	clean, err := cleanStoragePath(storagePath)
	if err != nil {
		return "", err
	}
	return filepath.Join(ls.root, filepath.FromSlash(clean)), nil
}

func (ls *LocalStorage) Save(_ context.Context, name string, r io.Reader, _ int64, _ string) (string, error) {
	full, err := ls.resolve(name)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		return "", err
	}

	f, err := os.OpenFile(full, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(full)
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	if err := f.Close(); err != nil {
		os.Remove(full)
		return "", err
	}

	return cleanStoragePath(name)
}

func (ls *LocalStorage) Open(_ context.Context, storagePath string) (io.ReadCloser, error) {
	full, err := ls.resolve(storagePath)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(full)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", report.ErrPhotoNotFound, storagePath)
		}
		return nil, err
	}
	return f, nil
}

func (ls *LocalStorage) Delete(_ context.Context, storagePath string) error {
	full, err := ls.resolve(storagePath)
	if err != nil {
		return err
	}

	if err := os.Remove(full); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func (ls *LocalStorage) URL(_ context.Context, storagePath string) (string, error) {
	clean, err := cleanStoragePath(storagePath)
	if err != nil {
		return "", err
	}
	return ls.publicPrefix + "/" + clean, nil
}
