package report

import (
	"context"
	"errors"
	"image"
	"io"
	"io/fs"

	"golang.org/x/sync/errgroup"
)

type SkipReason string

const (
	SkipMissing     SkipReason = "missing"
	SkipUnreadable  SkipReason = "unreadable"
	SkipUndecodable SkipReason = "undecodable"
)

// PhotoOutcome records what happened to one photo during a render.
type PhotoOutcome struct {
	Photo    PhotoView  `json:"photo"`
	Rendered bool       `json:"rendered"`
	Reason   SkipReason `json:"reason,omitempty"`
	Err      error      `json:"-"`
}

type loadedPhoto struct {
	outcome PhotoOutcome
	img     image.Image
}

// loadPhotos resolves every photo concurrently. Failures never abort the
// batch, they become skipped outcomes. Result order matches the input.
func loadPhotos(ctx context.Context, src PhotoSource, photos []PhotoView, workers int) []loadedPhoto {
	results := make([]loadedPhoto, len(photos))
	if len(photos) == 0 {
		return results
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, p := range photos {
		i, p := i, p
		g.Go(func() error {
			results[i] = loadPhoto(gctx, src, p)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func loadPhoto(ctx context.Context, src PhotoSource, p PhotoView) loadedPhoto {
	skipped := func(reason SkipReason, err error) loadedPhoto {
		return loadedPhoto{outcome: PhotoOutcome{Photo: p, Reason: reason, Err: err}}
	}

	if src == nil || p.StoragePath == "" {
		return skipped(SkipMissing, ErrPhotoNotFound)
	}

	rc, err := src.Open(ctx, p.StoragePath)
	if err != nil {
		if errors.Is(err, ErrPhotoNotFound) || errors.Is(err, fs.ErrNotExist) {
			return skipped(SkipMissing, err)
		}
		return skipped(SkipUnreadable, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return skipped(SkipUnreadable, err)
	}

	img, err := decodeImage(data)
	if err != nil {
		return skipped(SkipUndecodable, err)
	}

	return loadedPhoto{
		outcome: PhotoOutcome{Photo: p, Rendered: true},
		img:     img,
	}
}
