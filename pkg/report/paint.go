package report

import (
	"image"
	"io"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"
)

// paint draws laid out pages onto a PDF. Elements carry top-down positions;
// canvas uses a bottom-left origin, so every y is flipped here.
func paint(w io.Writer, pages []*page, faces *faceSet, qr image.Image) error {
	p := pdf.New(w, pageWidth, pageHeight, nil)
	ctx := canvas.NewContext(p)

	for i, pg := range pages {
		if i > 0 {
			p.NewPage(pageWidth, pageHeight)
		}

		for _, e := range pg.elements {
			drawElement(ctx, faces, e)
		}

		if qr != nil && i == len(pages)-1 {
			x, y := qrPlacement()
			ctx.DrawImage(x, pageHeight-y-qrSize, qr, canvas.DPMM(float64(qr.Bounds().Dx())/qrSize))
		}
	}

	return p.Close()
}

// qrPlacement is the top-left corner of the QR code, in the bottom margin
// under the right edge of the content area.
func qrPlacement() (x, y float64) {
	return pageWidth - pageMargin - qrSize, pageHeight - pageMargin + 2
}

func drawElement(ctx *canvas.Context, faces *faceSet, e element) {
	switch e.kind {
	case elemRect:
		ctx.SetFillColor(e.fill)
		ctx.SetStrokeColor(e.stroke)
		ctx.SetStrokeWidth(e.strokeWidth)
		ctx.DrawPath(e.x, pageHeight-e.y-e.h, canvas.Rectangle(e.w, e.h))
	case elemImage:
		if e.w <= 0 {
			return
		}
		dpmm := float64(e.img.Bounds().Dx()) / e.w
		ctx.DrawImage(e.x, pageHeight-e.y-e.h, e.img, canvas.DPMM(dpmm))
	case elemText:
		if e.text == "" {
			return
		}
		ctx.DrawText(e.x, pageHeight-e.y, faces.newTextBox(e.style, e.text, e.w))
	}
}
