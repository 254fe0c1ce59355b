package report

import (
	"image/color"

	"github.com/tdewolff/canvas"
)

// All lengths are in mm, font sizes in pt.
const (
	pageWidth    = 210.0
	pageHeight   = 297.0
	pageMargin   = 20.0
	contentWidth = pageWidth - 2*pageMargin

	ptToMM = 25.4 / 72

	cellPadding   = 2.0
	gridLineWidth = 0.35
	infoKeyWidth  = 50.0
	infoValWidth  = 120.0

	qrSize = 16.0
)

type TextStyle int

const (
	StyleTitle TextStyle = iota
	StyleSubtitle
	StyleHeading
	StyleBody
	StyleLabel
	StyleValue
	StyleGridHeader
	StyleGridCell
	StyleCaption
)

type textStyle struct {
	size  float64
	font  canvas.FontStyle
	color color.RGBA
	align canvas.TextAlign
}

var (
	colorTitle       = canvas.Hex("#1a1a1a")
	colorSubtitle    = canvas.Hex("#333333")
	colorHeaderFill  = canvas.Hex("#2c3e50")
	colorStripe      = canvas.Hex("#f9f9f9")
	colorInfoKeyFill = canvas.Hex("#f0f0f0")
	colorInfoBorder  = canvas.Hex("#808080")
	colorWhite       = canvas.Hex("#ffffff")
	colorBlack       = canvas.Hex("#000000")
)

var textStyles = map[TextStyle]textStyle{
	StyleTitle:      {size: 24, font: canvas.FontBold, color: colorTitle, align: canvas.Center},
	StyleSubtitle:   {size: 14, font: canvas.FontRegular, color: colorSubtitle, align: canvas.Center},
	StyleHeading:    {size: 14, font: canvas.FontBold, color: colorSubtitle, align: canvas.Left},
	StyleBody:       {size: 10, font: canvas.FontRegular, color: colorTitle, align: canvas.Left},
	StyleLabel:      {size: 10, font: canvas.FontBold, color: colorBlack, align: canvas.Right},
	StyleValue:      {size: 10, font: canvas.FontRegular, color: colorBlack, align: canvas.Left},
	StyleGridHeader: {size: 11, font: canvas.FontBold, color: colorWhite, align: canvas.Center},
	StyleGridCell:   {size: 10, font: canvas.FontRegular, color: colorBlack, align: canvas.Center},
	StyleCaption:    {size: 10, font: canvas.FontItalic, color: colorSubtitle, align: canvas.Center},
}

func lineHeightOf(s TextStyle) float64 {
	return textStyles[s].size * ptToMM * 1.25
}
