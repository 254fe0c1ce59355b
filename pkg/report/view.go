package report

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// View is the resolved, read-only snapshot of a report handed to the renderer.
type View struct {
	OrderCode     string
	Title         string
	Status        string
	ClientName    string
	ClientCompany string
	ProductName   string
	ProductCode   string
	Description   string
	Notes         string
	Table         *TableData
	// Photos are rendered in slice order.
	Photos []PhotoView
}

type PhotoView struct {
	ID           string
	OriginalName string
	StoragePath  string
	Caption      string
	DisplayOrder int
}

var ErrPhotoNotFound = errors.New("photo not found")

// PhotoSource resolves a stored photo path to its bytes. A missing file must
// be reported as an error matching ErrPhotoNotFound or fs.ErrNotExist.
type PhotoSource interface {
	Open(ctx context.Context, storagePath string) (io.ReadCloser, error)
}

// DirSource reads photos from a directory on the local filesystem.
type DirSource struct {
	Root string
}

func (d DirSource) Open(_ context.Context, storagePath string) (io.ReadCloser, error) {
	path := storagePath
	if d.Root != "" && !filepath.IsAbs(path) {
		path = filepath.Join(d.Root, filepath.Clean("/"+storagePath))
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrPhotoNotFound
		}
		return nil, err
	}
	return f, nil
}
