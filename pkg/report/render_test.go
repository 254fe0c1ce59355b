package report

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func scenarioView() View {
	return View{
		OrderCode:   "PED-001",
		ClientName:  "Acme",
		ProductName: "Valve-1",
		Description: "Inspeção da válvula de entrada.",
		Notes:       "Sem observações adicionais.",
		Table: &TableData{
			Columns: []string{"Measure", "Value"},
			Rows:    [][]any{{"100mm", "50kg"}, {"200mm", "75kg"}},
		},
		Photos: []PhotoView{
			{StoragePath: "inlet.png", Caption: "Inlet view", DisplayOrder: 0},
			{StoragePath: "gone.png", Caption: "Outlet view", DisplayOrder: 1},
		},
	}
}

func TestRender(t *testing.T) {
	src := memSource{"inlet.png": pngBytes(t, 64, 48)}
	r := newTestRenderer(t, src)

	res, err := r.Render(context.Background(), scenarioView())
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	if !strings.HasPrefix(string(res.PDF), "%PDF-") {
		t.Fatalf("output is not a PDF")
	}
	if err := ValidatePdf(res.PDF); err != nil {
		t.Fatalf("ValidatePdf() error = %v", err)
	}

	pages, err := GetPageCount(res.PDF)
	if err != nil {
		t.Fatalf("GetPageCount() error = %v", err)
	}
	if pages != res.Pages {
		t.Errorf("pdf has %d pages, result says %d", pages, res.Pages)
	}

	if res.RenderedPhotos() != 1 {
		t.Errorf("rendered %d photos, want 1", res.RenderedPhotos())
	}
	skipped := res.Skipped()
	if len(skipped) != 1 || skipped[0].Photo.StoragePath != "gone.png" || skipped[0].Reason != SkipMissing {
		t.Errorf("unexpected skipped photos: %+v", skipped)
	}
}

func TestRenderWithQRCode(t *testing.T) {
	r, err := NewRenderer(Config{}, *NewDefaultSettings("https://reports.example.com/{orderCode}"), nil)
	if err != nil {
		t.Fatal(err)
	}

	res, err := r.Render(context.Background(), View{OrderCode: "PED-010"})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if len(res.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", res.Warnings)
	}
	if err := ValidatePdf(res.PDF); err != nil {
		t.Errorf("ValidatePdf() error = %v", err)
	}
}

func TestQRPlacementStaysInBottomMargin(t *testing.T) {
	x, y := qrPlacement()
	if y < pageHeight-pageMargin {
		t.Errorf("QR code top %.1fmm overlaps the content area", y)
	}
	if y+qrSize > pageHeight {
		t.Errorf("QR code bottom %.1fmm is off the page", y+qrSize)
	}
	if x < pageMargin || x+qrSize > pageWidth-pageMargin {
		t.Errorf("QR code spans %.1f-%.1fmm, outside the content width", x, x+qrSize)
	}
}

func TestRenderToFile(t *testing.T) {
	dir := t.TempDir()
	r := newTestRenderer(t, memSource{"inlet.png": pngBytes(t, 64, 48)})
	dest := filepath.Join(dir, OutputFileName("PED-001"))

	res, err := r.RenderToFile(context.Background(), scenarioView(), dest)
	if err != nil {
		t.Fatalf("RenderToFile() error = %v", err)
	}
	if res.Path != dest {
		t.Errorf("Path = %q, want %q", res.Path, dest)
	}

	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if err := ValidatePdf(data); err != nil {
		t.Errorf("published file is not a valid pdf: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("expected only the published file, found %d entries", len(entries))
	}
}

func TestRenderToFileMalformedTable(t *testing.T) {
	dir := t.TempDir()
	dest := filepath.Join(dir, "out.pdf")

	v := scenarioView()
	v.Table.Rows = append(v.Table.Rows, []any{"300mm"})

	res, err := newTestRenderer(t, memSource{}).RenderToFile(context.Background(), v, dest)
	if res != nil {
		t.Errorf("expected no result")
	}

	var mte *MalformedTableError
	if !errors.As(err, &mte) {
		t.Fatalf("expected MalformedTableError, got %v", err)
	}
	if _, err := os.Stat(dest); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("no file should be produced, stat error = %v", err)
	}
}

func TestRenderToFileUnwritableDestination(t *testing.T) {
	dir := t.TempDir()
	// a regular file where a directory is expected
	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := newTestRenderer(t, nil).RenderToFile(context.Background(), View{OrderCode: "PED-011"}, filepath.Join(blocker, "out.pdf"))

	var re *RenderError
	if !errors.As(err, &re) || re.Kind != KindResource {
		t.Fatalf("expected resource RenderError, got %v", err)
	}
}

func TestRenderToFileReplacesExisting(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "out.pdf")
	if err := os.WriteFile(dest, []byte("old"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := newTestRenderer(t, nil).RenderToFile(context.Background(), View{OrderCode: "PED-012"}, dest); err != nil {
		t.Fatalf("RenderToFile() error = %v", err)
	}

	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "%PDF-") {
		t.Errorf("existing file was not replaced")
	}
}

func TestOutputFileName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"PED-001", "relatorio_PED-001.pdf"},
		{"../../etc/passwd", "relatorio__.._etc_passwd.pdf"},
		{"PED 7/2024", "relatorio_PED_7_2024.pdf"},
		{"", "relatorio_sem_codigo.pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := OutputFileName(tt.in); got != tt.want {
				t.Errorf("OutputFileName(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
