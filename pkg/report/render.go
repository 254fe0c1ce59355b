package report

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/tdewolff/canvas"
)

// Result is a finished render. Photos lists every photo in the order it was
// visited, rendered or not.
type Result struct {
	PDF      []byte
	Pages    int
	Photos   []PhotoOutcome
	Warnings []string
	// Path is set by RenderToFile once the file is published.
	Path string
}

func (r *Result) Skipped() []PhotoOutcome {
	var out []PhotoOutcome
	for _, p := range r.Photos {
		if !p.Rendered {
			out = append(out, p)
		}
	}
	return out
}

func (r *Result) RenderedPhotos() int {
	n := 0
	for _, p := range r.Photos {
		if p.Rendered {
			n++
		}
	}
	return n
}

// Renderer turns report snapshots into PDF documents. It keeps no state
// between calls and is safe for concurrent use.
type Renderer struct {
	cfg      Config
	settings Settings
	source   PhotoSource
	family   *canvas.FontFamily

	// Now supplies the date printed in the order info section.
	Now func() time.Time
}

func NewRenderer(cfg Config, settings Settings, source PhotoSource) (*Renderer, error) {
	family, err := loadFamily(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to load fonts: %w", err)
	}

	return &Renderer{
		cfg:      cfg,
		settings: settings,
		source:   source,
		family:   family,
		Now:      time.Now,
	}, nil
}

func (r *Renderer) workers(jobs int) int {
	if r.cfg.Workers > 0 {
		return r.cfg.Workers
	}
	return determineWorkers(jobs)
}

func determineWorkers(jobCount int) int {
	if jobCount <= 0 {
		return max(runtime.GOMAXPROCS(0), 1)
	}
	return min(max(runtime.GOMAXPROCS(0)*2, 1), jobCount)
}

// Compose resolves photos and builds the section list without drawing.
func (r *Renderer) Compose(ctx context.Context, v View) (*Document, error) {
	doc, err := compose(ctx, v, r.source, r.Now(), r.workers(len(v.Photos)))
	if err != nil {
		return nil, structuralError("compose", err)
	}
	return doc, nil
}

// Render produces the complete PDF in memory. It fails only on a malformed
// table or when the PDF cannot be produced; photo problems are reported in
// Result.Photos.
func (r *Renderer) Render(ctx context.Context, v View) (*Result, error) {
	doc, err := r.Compose(ctx, v)
	if err != nil {
		return nil, err
	}

	faces := newFaceSet(r.family)
	pages := layout(doc, faces)

	res := &Result{Pages: len(pages), Photos: doc.Photos}

	var qr image.Image
	if r.settings.EmbedQRCode && r.settings.QrURLPattern != "" {
		qr, err = generateQRCode(r.settings.qrContent(v.OrderCode))
		if err != nil {
			res.Warnings = append(res.Warnings, err.Error())
			qr = nil
		}
	}

	var buf bytes.Buffer
	if err := paint(&buf, pages, faces, qr); err != nil {
		return nil, resourceError("paint", err)
	}
	if err := ValidatePdf(buf.Bytes()); err != nil {
		return nil, resourceError("validate", err)
	}

	res.PDF = buf.Bytes()
	return res, nil
}

// RenderToFile renders and publishes the document at dest. The file is
// written next to dest under a temporary name and renamed into place, so
// dest either holds a complete document or is left untouched. Two renders to
// the same dest race; the last rename wins.
func (r *Renderer) RenderToFile(ctx context.Context, v View, dest string) (*Result, error) {
	res, err := r.Render(ctx, v)
	if err != nil {
		return nil, err
	}

	if err := publish(dest, res.PDF); err != nil {
		return nil, resourceError("publish", err)
	}
	res.Path = dest
	return res, nil
}

// OutputPath is where RenderToFile publishes a report by default.
func (r *Renderer) OutputPath(orderCode string) string {
	return filepath.Join(r.cfg.OutputDir, OutputFileName(orderCode))
}

func publish(dest string, data []byte) (err error) {
	dir := filepath.Dir(dest)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(dest)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err = os.Chmod(tmpName, 0644); err != nil {
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err = os.Rename(tmpName, dest); err != nil {
		return fmt.Errorf("publishing %s: %w", dest, err)
	}
	return nil
}
