package report

import (
	"fmt"
	"image"
	"strings"
	"testing"
	"unicode/utf8"
)

// fixedMeasurer treats every rune as 2mm wide and every line as 5mm tall.
type fixedMeasurer struct{}

func (fixedMeasurer) textWidth(_ TextStyle, s string) float64 {
	return float64(utf8.RuneCountInString(s)) * 2
}

func (fixedMeasurer) lineHeight(TextStyle) float64 {
	return 5
}

func (m fixedMeasurer) textBox(style TextStyle, s string, width float64) (string, float64) {
	lines := wrapText(m, style, s, width)
	return strings.Join(lines, "\n"), float64(len(lines)) * 5
}

// countingMeasurer records how often cells are fitted.
type countingMeasurer struct {
	fixedMeasurer
	boxes int
}

func (m *countingMeasurer) textBox(style TextStyle, s string, width float64) (string, float64) {
	m.boxes++
	return m.fixedMeasurer.textBox(style, s, width)
}

func gridDoc(rows [][]string) *Document {
	return &Document{Sections: []Section{{Kind: SectionTable, Blocks: []Block{{Kind: BlockGrid, Rows: rows}}}}}
}

func textsOn(p *page, style TextStyle) []string {
	var out []string
	for _, e := range p.elements {
		if e.kind == elemText && e.style == style {
			out = append(out, e.text)
		}
	}
	return out
}

func TestWrapText(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width float64
		want  []string
	}{
		{"fits", "abc def", 20, []string{"abc def"}},
		{"wraps on words", "abc def ghi", 14, []string{"abc def", "ghi"}},
		{"keeps newlines", "abc\n\ndef", 20, []string{"abc", "", "def"}},
		{"splits long word", "abcdefghij", 8, []string{"abcd", "efgh", "ij"}},
		{"long word after short one", "ab abcdefghij", 8, []string{"ab", "abcd", "efgh", "ij"}},
		{"long word split evenly", "abcdefgh", 8, []string{"abcd", "efgh"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := wrapText(fixedMeasurer{}, StyleBody, tt.text, tt.width)
			if strings.Join(got, "|") != strings.Join(tt.want, "|") {
				t.Errorf("wrapText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLayoutGridRepeatsHeaderOnNewPage(t *testing.T) {
	rows := [][]string{{"Measure", "Value"}}
	for i := 0; i < 60; i++ {
		rows = append(rows, []string{fmt.Sprintf("m%d", i), fmt.Sprintf("v%d", i)})
	}
	pages := layout(gridDoc(rows), fixedMeasurer{})
	if len(pages) < 2 {
		t.Fatalf("expected the table to span pages, got %d page(s)", len(pages))
	}

	dataRows := 0
	for i, p := range pages {
		headers := textsOn(p, StyleGridHeader)
		if len(headers) != 2 || headers[0] != "Measure" {
			t.Errorf("page %d: header cells = %v", i, headers)
		}
		dataRows += len(textsOn(p, StyleGridCell)) / 2

		for _, e := range p.elements {
			if e.y+e.h > pageHeight-pageMargin+0.001 {
				t.Errorf("page %d: element overflows bottom margin at %.2f", i, e.y+e.h)
			}
		}
	}
	if dataRows != 60 {
		t.Errorf("laid out %d data rows, want 60", dataRows)
	}
}

func TestLayoutGridFitsEachCellOnce(t *testing.T) {
	rows := [][]string{{"Medida", "Valor", "Unidade"}}
	for i := 0; i < 100; i++ {
		rows = append(rows, []string{strings.Repeat("texto longo ", 10), fmt.Sprint(i), "mm"})
	}

	m := &countingMeasurer{}
	pages := layout(gridDoc(rows), m)
	if len(pages) < 2 {
		t.Fatalf("expected the table to span pages, got %d page(s)", len(pages))
	}
	if want := len(rows) * 3; m.boxes != want {
		t.Errorf("fitted %d cells, want %d", m.boxes, want)
	}
}

func TestLayoutGridRowHeightFollowsTallestCell(t *testing.T) {
	// 170mm over two columns leaves 81mm, 40 runes, of text per cell
	rows := [][]string{
		{"Medida", "Valor"},
		{"a", strings.Repeat("x", 100)},
	}

	pages := layout(gridDoc(rows), fixedMeasurer{})
	var cells []element
	for _, e := range pages[0].elements {
		if e.kind == elemText && e.style == StyleGridCell {
			cells = append(cells, e)
		}
	}
	if len(cells) != 2 {
		t.Fatalf("got %d data cells, want 2", len(cells))
	}

	if got := strings.Count(cells[1].text, "\n") + 1; got != 3 {
		t.Errorf("long cell has %d lines, want 3", got)
	}
	for _, c := range cells {
		if c.h != 15 {
			t.Errorf("cell %q height = %v, want 15", c.text, c.h)
		}
	}
}

func TestLayoutGridTallFirstRowStaysUnderHeader(t *testing.T) {
	// 70 lines of 5mm do not fit on any page
	tall := strings.TrimSuffix(strings.Repeat("x\n", 70), "\n")
	rows := [][]string{{"Observações"}, {tall}, {"fim"}}

	tests := []struct {
		name   string
		before []Block
	}{
		{"table starts the page", nil},
		{"table after a paragraph", []Block{{Kind: BlockParagraph, Text: "introdução"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blocks := append(tt.before, Block{Kind: BlockGrid, Rows: rows})
			doc := &Document{Sections: []Section{{Kind: SectionTable, Blocks: blocks}}}

			pages := layout(doc, fixedMeasurer{})
			for i, p := range pages {
				headers := len(textsOn(p, StyleGridHeader))
				cells := len(textsOn(p, StyleGridCell))
				if headers > 0 && cells == 0 {
					t.Errorf("page %d holds only the table header", i)
				}
			}

			var withTall int
			for _, p := range pages {
				for _, c := range textsOn(p, StyleGridCell) {
					if c == tall {
						withTall++
						if len(textsOn(p, StyleGridHeader)) != 1 {
							t.Errorf("tall row is not under a header")
						}
					}
				}
			}
			if withTall != 1 {
				t.Errorf("tall row laid out %d times, want 1", withTall)
			}
		})
	}
}

func TestFaceSetTextBox(t *testing.T) {
	family, err := LoadGoFamily()
	if err != nil {
		t.Fatalf("LoadGoFamily() error = %v", err)
	}
	faces := newFaceSet(family)
	lh := faces.lineHeight(StyleGridCell)

	t.Run("blank text has no height", func(t *testing.T) {
		if _, h := faces.textBox(StyleGridCell, "  ", 40); h != 0 {
			t.Errorf("height = %v, want 0", h)
		}
	})

	t.Run("short text is one line", func(t *testing.T) {
		text, h := faces.textBox(StyleGridCell, "12,5", 40)
		if text != "12,5" {
			t.Errorf("text = %q, want it unchanged", text)
		}
		if h <= 0 || h > lh*1.5 {
			t.Errorf("height = %v, want about one line of %v", h, lh)
		}
	})

	t.Run("words wrap inside the box", func(t *testing.T) {
		in := strings.Repeat("medida ", 30)
		text, h := faces.textBox(StyleGridCell, in, 40)
		if text != in {
			t.Errorf("text was rewritten although every word fits")
		}
		if h < lh*3 {
			t.Errorf("height = %v, want several lines", h)
		}
	})

	t.Run("word wider than the box is split", func(t *testing.T) {
		text, h := faces.textBox(StyleGridCell, strings.Repeat("A", 200), 40)
		if !strings.Contains(text, "\n") {
			t.Fatalf("text was not broken: %q", text)
		}
		for _, line := range strings.Split(text, "\n") {
			if w := faces.textWidth(StyleGridCell, line); w > 40 {
				t.Errorf("line %q is %vmm wide", line, w)
			}
		}
		if h < lh*3 {
			t.Errorf("height = %v, want several lines", h)
		}
	})
}

func TestLayoutImageKeepsCaption(t *testing.T) {
	// 425x283px at 72 DPI is about 150x100mm, the full photo box
	photo := image.NewRGBA(image.Rect(0, 0, 425, 283))
	var blocks []Block
	for i := 0; i < 3; i++ {
		blocks = append(blocks,
			Block{Kind: BlockImage, Image: photo},
			Block{Kind: BlockCaption, Text: fmt.Sprintf("photo %d", i)},
			spacer(5),
		)
	}
	doc := &Document{Sections: []Section{{Kind: SectionGallery, Blocks: blocks}}}

	// two full-height photos fit on a page, the third moves with its caption
	pages := layout(doc, fixedMeasurer{})
	if len(pages) != 2 {
		t.Fatalf("expected 2 pages, got %d", len(pages))
	}

	want := [][]string{{"photo 0", "photo 1"}, {"photo 2"}}
	for i, p := range pages {
		if p.count(elemImage) != len(want[i]) {
			t.Errorf("page %d: %d images, want %d", i, p.count(elemImage), len(want[i]))
		}
		captions := textsOn(p, StyleCaption)
		if strings.Join(captions, "|") != strings.Join(want[i], "|") {
			t.Errorf("page %d: captions = %v, want %v", i, captions, want[i])
		}
	}
}

func TestFitBox(t *testing.T) {
	tests := []struct {
		name         string
		w, h         float64
		wantW, wantH float64
	}{
		{"small image is not enlarged", 50, 40, 50, 40},
		{"wide image capped by width", 300, 100, 150, 50},
		{"tall image capped by height", 100, 400, 25, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := fitBox(tt.w, tt.h, maxImageWidthMM, maxImageHeightMM)
			if w != tt.wantW || h != tt.wantH {
				t.Errorf("fitBox() = (%v, %v), want (%v, %v)", w, h, tt.wantW, tt.wantH)
			}
		})
	}
}
