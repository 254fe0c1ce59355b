package report

import (
	"fmt"
	"strings"
)

type Config struct {
	// A path to json where it store font name and path to the font file.
	// When empty, or when FontName is not listed, the embedded Go fonts are used.
	FontMetadataPath string
	FontName         string
	// Directory where rendered reports are published
	OutputDir string
	// Upper bound on concurrent photo loads, zero derives it from GOMAXPROCS
	Workers int
}

type Settings struct {
	EmbedQRCode bool
	// e.g. https://example.com/reports/{orderCode}
	QrURLPattern string
}

func NewDefaultSettings(qrURLPattern string) *Settings {
	return &Settings{
		EmbedQRCode:  qrURLPattern != "",
		QrURLPattern: qrURLPattern,
	}
}

func (s Settings) qrContent(orderCode string) string {
	return strings.ReplaceAll(s.QrURLPattern, "{orderCode}", orderCode)
}

// OutputFileName is the published file name for a report, derived from its
// order code with anything unsafe for a path replaced.
func OutputFileName(orderCode string) string {
	safe := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			return r
		default:
			return '_'
		}
	}, strings.TrimSpace(orderCode))
	safe = strings.Trim(safe, ".")
	if safe == "" {
		safe = "sem_codigo"
	}
	return fmt.Sprintf("relatorio_%s.pdf", safe)
}
