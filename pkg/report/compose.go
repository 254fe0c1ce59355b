package report

import (
	"context"
	"image"
	"strings"
	"time"
)

const (
	DocumentTitle    = "MAGNETIC REPORT"
	DocumentSubtitle = "Relatório Técnico"

	HeadingOrderInfo    = "Informações do Pedido"
	HeadingDescription  = "Descrição"
	HeadingTable        = "Dados Técnicos"
	HeadingGallery      = "Registro Fotográfico"
	HeadingObservations = "Observações"

	LabelOrderCode = "Código do Pedido:"
	LabelClient    = "Cliente:"
	LabelProduct   = "Produto:"
	LabelDate      = "Data:"

	notAvailable = "N/A"
	dateLayout   = "02/01/2006"
)

type SectionKind string

const (
	SectionHeader       SectionKind = "header"
	SectionOrderInfo    SectionKind = "order_info"
	SectionDescription  SectionKind = "description"
	SectionTable        SectionKind = "table"
	SectionGallery      SectionKind = "gallery"
	SectionObservations SectionKind = "observations"
)

type BlockKind int

const (
	BlockTitle BlockKind = iota
	BlockSubtitle
	BlockHeading
	BlockParagraph
	BlockKeyValue
	BlockGrid
	BlockImage
	BlockCaption
	BlockSpacer
)

type Block struct {
	Kind BlockKind
	Text string
	// Rows holds key/value pairs for BlockKeyValue and the full grid,
	// header row first, for BlockGrid.
	Rows   [][]string
	Image  image.Image
	Height float64
}

type Section struct {
	Kind   SectionKind
	Blocks []Block
}

// Document is the composed, not yet laid out, report.
type Document struct {
	Sections []Section
	Photos   []PhotoOutcome
}

func (d *Document) SectionKinds() []SectionKind {
	kinds := make([]SectionKind, len(d.Sections))
	for i, s := range d.Sections {
		kinds[i] = s.Kind
	}
	return kinds
}

func (d *Document) Section(kind SectionKind) *Section {
	for i := range d.Sections {
		if d.Sections[i].Kind == kind {
			return &d.Sections[i]
		}
	}
	return nil
}

func (d *Document) blocks() []Block {
	var out []Block
	for _, s := range d.Sections {
		out = append(out, s.Blocks...)
	}
	return out
}

func spacer(h float64) Block {
	return Block{Kind: BlockSpacer, Height: h}
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return notAvailable
	}
	return s
}

// compose builds the section list. The table is converted before any photo
// is read so a malformed table fails fast without touching storage.
func compose(ctx context.Context, v View, src PhotoSource, now time.Time, workers int) (*Document, error) {
	var grid [][]string
	if IsRenderable(v.Table) {
		g, err := ToGrid(v.Table)
		if err != nil {
			return nil, err
		}
		grid = g
	}

	doc := &Document{}

	doc.Sections = append(doc.Sections, Section{
		Kind: SectionHeader,
		Blocks: []Block{
			{Kind: BlockTitle, Text: DocumentTitle},
			{Kind: BlockSubtitle, Text: DocumentSubtitle},
			spacer(8),
		},
	})

	doc.Sections = append(doc.Sections, Section{
		Kind: SectionOrderInfo,
		Blocks: []Block{
			{Kind: BlockHeading, Text: HeadingOrderInfo},
			{Kind: BlockKeyValue, Rows: [][]string{
				{LabelOrderCode, v.OrderCode},
				{LabelClient, orNA(v.ClientName)},
				{LabelProduct, orNA(v.ProductName)},
				{LabelDate, now.Format(dateLayout)},
			}},
			spacer(6),
		},
	})

	if strings.TrimSpace(v.Description) != "" {
		doc.Sections = append(doc.Sections, Section{
			Kind: SectionDescription,
			Blocks: []Block{
				{Kind: BlockHeading, Text: HeadingDescription},
				{Kind: BlockParagraph, Text: v.Description},
				spacer(6),
			},
		})
	}

	if grid != nil {
		doc.Sections = append(doc.Sections, Section{
			Kind: SectionTable,
			Blocks: []Block{
				{Kind: BlockHeading, Text: HeadingTable},
				{Kind: BlockGrid, Rows: grid},
				spacer(6),
			},
		})
	}

	if len(v.Photos) > 0 {
		loaded := loadPhotos(ctx, src, v.Photos, workers)
		gallery := Section{
			Kind:   SectionGallery,
			Blocks: []Block{{Kind: BlockHeading, Text: HeadingGallery}},
		}

		for _, lp := range loaded {
			doc.Photos = append(doc.Photos, lp.outcome)
			if !lp.outcome.Rendered {
				continue
			}
			gallery.Blocks = append(gallery.Blocks, Block{Kind: BlockImage, Image: lp.img})
			if caption := strings.TrimSpace(lp.outcome.Photo.Caption); caption != "" {
				gallery.Blocks = append(gallery.Blocks, Block{Kind: BlockCaption, Text: caption})
			}
			gallery.Blocks = append(gallery.Blocks, spacer(5))
		}
		doc.Sections = append(doc.Sections, gallery)
	}

	if strings.TrimSpace(v.Notes) != "" {
		doc.Sections = append(doc.Sections, Section{
			Kind: SectionObservations,
			Blocks: []Block{
				{Kind: BlockHeading, Text: HeadingObservations},
				{Kind: BlockParagraph, Text: v.Notes},
			},
		})
	}

	return doc, nil
}
