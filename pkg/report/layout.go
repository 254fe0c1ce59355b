package report

import (
	"image"
	"image/color"
	"sort"
	"strings"
	"unicode/utf8"
)

// measurer reports text extents in mm for a given style.
type measurer interface {
	textWidth(style TextStyle, s string) float64
	lineHeight(style TextStyle) float64
	// textBox fits s into a box width mm wide and returns the text to draw
	// in it together with the box height.
	textBox(style TextStyle, s string, width float64) (string, float64)
}

type elementKind int

const (
	elemText elementKind = iota
	elemRect
	elemImage
)

// element is a positioned primitive. y is measured from the top of the page.
type element struct {
	kind elementKind
	x, y float64
	w, h float64

	text  string
	style TextStyle

	fill        color.Color
	stroke      color.Color
	strokeWidth float64

	img image.Image
}

type page struct {
	elements []element
}

func (p *page) count(kind elementKind) int {
	n := 0
	for _, e := range p.elements {
		if e.kind == kind {
			n++
		}
	}
	return n
}

type layouter struct {
	m     measurer
	pages []*page
	cur   *page
	y     float64
}

func layout(doc *Document, m measurer) []*page {
	l := &layouter{m: m}
	l.newPage()

	blocks := doc.blocks()
	for i := 0; i < len(blocks); i++ {
		b := blocks[i]
		switch b.Kind {
		case BlockTitle:
			l.centeredLine(StyleTitle, b.Text, 2)
		case BlockSubtitle:
			l.centeredLine(StyleSubtitle, b.Text, 0)
		case BlockHeading:
			l.heading(b.Text)
		case BlockParagraph:
			l.paragraph(StyleBody, b.Text)
		case BlockKeyValue:
			l.keyValue(b.Rows)
		case BlockGrid:
			l.grid(b.Rows)
		case BlockImage:
			var caption string
			if i+1 < len(blocks) && blocks[i+1].Kind == BlockCaption {
				caption = blocks[i+1].Text
				i++
			}
			l.image(b.Image, caption)
		case BlockCaption:
			l.paragraph(StyleCaption, b.Text)
		case BlockSpacer:
			l.y += b.Height
		}
	}

	return l.pages
}

func (l *layouter) newPage() {
	l.cur = &page{}
	l.pages = append(l.pages, l.cur)
	l.y = pageMargin
}

func (l *layouter) bottom() float64 {
	return pageHeight - pageMargin
}

func (l *layouter) atTop() bool {
	return l.y <= pageMargin
}

// ensure starts a new page when h does not fit in what is left of the
// current one. Content taller than a page is placed anyway.
func (l *layouter) ensure(h float64) {
	if l.y+h > l.bottom() && !l.atTop() {
		l.newPage()
	}
}

func (l *layouter) add(e element) {
	l.cur.elements = append(l.cur.elements, e)
}

func (l *layouter) text(style TextStyle, s string, x, y, w float64) {
	l.add(element{kind: elemText, x: x, y: y, w: w, h: l.m.lineHeight(style), text: s, style: style})
}

func (l *layouter) centeredLine(style TextStyle, s string, after float64) {
	for _, line := range wrapText(l.m, style, s, contentWidth) {
		lh := l.m.lineHeight(style)
		l.ensure(lh)
		l.text(style, line, pageMargin, l.y, contentWidth)
		l.y += lh
	}
	l.y += after
}

// heading keeps itself together with at least the first lines of whatever
// follows it.
func (l *layouter) heading(s string) {
	const before, after, keepWithNext = 3.0, 3.0, 25.0

	lh := l.m.lineHeight(StyleHeading)
	if !l.atTop() {
		l.y += before
	}
	l.ensure(lh + after + keepWithNext)
	l.text(StyleHeading, s, pageMargin, l.y, contentWidth)
	l.y += lh + after
}

func (l *layouter) paragraph(style TextStyle, s string) {
	lh := l.m.lineHeight(style)
	for _, line := range wrapText(l.m, style, s, contentWidth) {
		l.ensure(lh)
		l.text(style, line, pageMargin, l.y, contentWidth)
		l.y += lh
	}
}

func (l *layouter) keyValue(rows [][]string) {
	const keyW, valW = infoKeyWidth - 2*cellPadding, infoValWidth - 2*cellPadding
	lh := max(l.m.lineHeight(StyleLabel), l.m.lineHeight(StyleValue))

	for _, row := range rows {
		var key, val string
		if len(row) > 0 {
			key = row[0]
		}
		if len(row) > 1 {
			val = row[1]
		}

		keyText, keyH := l.m.textBox(StyleLabel, key, keyW)
		valText, valH := l.m.textBox(StyleValue, val, valW)
		h := max(keyH, valH, lh) + 2*cellPadding

		l.ensure(h)
		x := pageMargin
		l.add(element{kind: elemRect, x: x, y: l.y, w: infoKeyWidth, h: h, fill: colorInfoKeyFill, stroke: colorInfoBorder, strokeWidth: 0.2})
		l.add(element{kind: elemRect, x: x + infoKeyWidth, y: l.y, w: infoValWidth, h: h, fill: colorWhite, stroke: colorInfoBorder, strokeWidth: 0.2})
		l.add(element{kind: elemText, x: x + cellPadding, y: l.y + cellPadding, w: keyW, h: keyH, text: keyText, style: StyleLabel})
		l.add(element{kind: elemText, x: x + infoKeyWidth + cellPadding, y: l.y + cellPadding, w: valW, h: valH, text: valText, style: StyleValue})
		l.y += h
	}
}

// fittedRow is a grid row with every cell already fitted to its column.
type fittedRow struct {
	style  TextStyle
	cells  []string
	height float64
}

func (l *layouter) fitRow(style TextStyle, cells []string, colW float64) fittedRow {
	row := fittedRow{style: style, cells: make([]string, len(cells))}
	h := l.m.lineHeight(style)
	for i, c := range cells {
		var ch float64
		row.cells[i], ch = l.m.textBox(style, c, colW-2*cellPadding)
		h = max(h, ch)
	}
	row.height = h + 2*cellPadding
	return row
}

// grid lays out the table. Rows never split; when a row moves to a new page
// the header row is repeated above it.
func (l *layouter) grid(rows [][]string) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return
	}

	colW := contentWidth / float64(len(rows[0]))
	header := l.fitRow(StyleGridHeader, rows[0], colW)

	var next fittedRow
	// keep the header with the first data row
	first := header.height
	if len(rows) > 1 {
		next = l.fitRow(StyleGridCell, rows[1], colW)
		first += next.height
	}
	l.ensure(first)
	l.gridRow(header, colW, colorHeaderFill)
	belowHeader := l.y

	for i := 1; i < len(rows); i++ {
		if i > 1 {
			next = l.fitRow(StyleGridCell, rows[i], colW)
		}
		// a row taller than the page goes right under the header it follows
		if l.y+next.height > l.bottom() && l.y != belowHeader {
			l.newPage()
			l.gridRow(header, colW, colorHeaderFill)
			belowHeader = l.y
		}

		fill := colorWhite
		if i%2 == 0 {
			fill = colorStripe
		}
		l.gridRow(next, colW, fill)
	}
}

func (l *layouter) gridRow(row fittedRow, colW float64, fill color.Color) {
	for c, cell := range row.cells {
		x := pageMargin + float64(c)*colW
		l.add(element{kind: elemRect, x: x, y: l.y, w: colW, h: row.height, fill: fill, stroke: colorBlack, strokeWidth: gridLineWidth})
		l.add(element{kind: elemText, x: x + cellPadding, y: l.y + cellPadding, w: colW - 2*cellPadding, h: row.height - 2*cellPadding, text: cell, style: row.style})
	}
	l.y += row.height
}

// image places a photo centred in the content area with its caption
// directly below. The pair always lands on the same page.
func (l *layouter) image(img image.Image, caption string) {
	w, h := fitImage(img)
	if w == 0 || h == 0 {
		return
	}

	var captionLines []string
	lh := l.m.lineHeight(StyleCaption)
	if caption != "" {
		captionLines = wrapText(l.m, StyleCaption, caption, contentWidth)
	}
	total := h + 2 + float64(len(captionLines))*lh

	l.ensure(total)
	l.add(element{kind: elemImage, x: pageMargin + (contentWidth-w)/2, y: l.y, w: w, h: h, img: img})
	l.y += h + 2

	for _, line := range captionLines {
		l.text(StyleCaption, line, pageMargin, l.y, contentWidth)
		l.y += lh
	}
}

// wrapText breaks s into lines no wider than width. Explicit newlines are
// kept and words longer than a line are split by rune. Paragraphs use it
// because they may continue on the next page line by line.
func wrapText(m measurer, style TextStyle, s string, width float64) []string {
	var lines []string
	for _, para := range strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}

		cur := ""
		for _, word := range words {
			candidate := word
			if cur != "" {
				candidate = cur + " " + word
			}
			if m.textWidth(style, candidate) <= width {
				cur = candidate
				continue
			}
			if cur != "" {
				lines = append(lines, cur)
			}
			if utf8.RuneCountInString(word) > 1 && m.textWidth(style, word) > width {
				for {
					head, tail := splitToWidth(m, style, word, width)
					if tail == "" {
						break
					}
					lines = append(lines, head)
					word = tail
				}
			}
			cur = word
		}
		lines = append(lines, cur)
	}
	return lines
}

// splitToWidth returns the longest prefix of word that fits in width, at
// least one rune, and the rest. Only prefixes up to about twice the fitting
// length are measured.
func splitToWidth(m measurer, style TextStyle, word string, width float64) (string, string) {
	runes := []rune(word)
	fits := func(n int) bool { return m.textWidth(style, string(runes[:n])) <= width }

	hi := 1
	for hi < len(runes) && fits(hi) {
		hi *= 2
	}
	hi = min(hi, len(runes))

	n := sort.Search(hi, func(i int) bool { return !fits(i + 1) })
	n = max(n, 1)
	return string(runes[:n]), string(runes[n:])
}
