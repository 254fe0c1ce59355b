package report

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/tdewolff/canvas"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
)

const DefaultFontName = "Go"

type FontMetadata struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

func getFontMetadataByPath(fontPath string) (*FontMetadata, error) {
	fontBytes, err := os.ReadFile(fontPath)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}

	font, err := sfnt.Parse(fontBytes)
	if err != nil {
		return nil, fmt.Errorf("parsing font: %w", err)
	}

	name, err := font.Name(nil, sfnt.NameIDFamily)
	if err != nil {
		return nil, fmt.Errorf("retrieving font name: %w", err)
	}

	return &FontMetadata{
		Name: name,
		Path: fontPath,
	}, nil
}

// Scan through the directory to process .ttf and .otf files.
func ScanFontDir(dir string) ([]FontMetadata, error) {
	var fonts []FontMetadata

	err := filepath.Walk(dir, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(info.Name()))
		if ext != ".ttf" && ext != ".otf" {
			return nil
		}

		meta, err := getFontMetadataByPath(path)
		if err != nil {
			log.Printf("Skipping %q: %v", path, err)
			return nil
		}

		fonts = append(fonts, *meta)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return fonts, nil
}

func GetAvailableFonts(path string) ([]*FontMetadata, error) {
	var fonts []*FontMetadata

	data, err := os.ReadFile(path)
	if err != nil {
		return fonts, fmt.Errorf("reading font metadata %s: %w", path, err)
	}

	if err := json.Unmarshal(data, &fonts); err != nil {
		return fonts, fmt.Errorf("unmarshalling font metadata: %w", err)
	}

	return fonts, nil
}

type FontLoader struct {
	Cfg            Config
	AvailableFonts []*FontMetadata
}

func NewFontLoader(cfg Config) (*FontLoader, error) {
	fonts, err := GetAvailableFonts(cfg.FontMetadataPath)
	if err != nil {
		return nil, err
	}

	return &FontLoader{
		Cfg:            cfg,
		AvailableFonts: fonts,
	}, nil
}

func (fl *FontLoader) GetAvailableFontMetadataByName(fontName string) (*FontMetadata, error) {
	for _, font := range fl.AvailableFonts {
		if font.Name == fontName {
			return font, nil
		}
	}
	return nil, fmt.Errorf("font %s not found", fontName)
}

// LoadFamily loads a single font file into every style slot the report
// uses, so a family shipped as one file still renders headings and captions.
func (fl *FontLoader) LoadFamily(fontName string) (*canvas.FontFamily, error) {
	meta, err := fl.GetAvailableFontMetadataByName(fontName)
	if err != nil {
		return nil, err
	}

	family := canvas.NewFontFamily(meta.Name)
	for _, style := range []canvas.FontStyle{canvas.FontRegular, canvas.FontBold, canvas.FontItalic} {
		if err := family.LoadFontFile(meta.Path, style); err != nil {
			return nil, fmt.Errorf("failed to load font file %s: %w", meta.Path, err)
		}
	}
	return family, nil
}

// LoadGoFamily loads the Go fonts bundled with x/image. They need no files
// on disk and cover Latin-1, which is all the fixed labels require.
func LoadGoFamily() (*canvas.FontFamily, error) {
	family := canvas.NewFontFamily(DefaultFontName)
	fonts := []struct {
		ttf   []byte
		style canvas.FontStyle
	}{
		{goregular.TTF, canvas.FontRegular},
		{gobold.TTF, canvas.FontBold},
		{goitalic.TTF, canvas.FontItalic},
	}
	for _, f := range fonts {
		if err := family.LoadFont(f.ttf, 0, f.style); err != nil {
			return nil, fmt.Errorf("failed to load embedded font: %w", err)
		}
	}
	return family, nil
}

func loadFamily(cfg Config) (*canvas.FontFamily, error) {
	if cfg.FontName == "" || cfg.FontName == DefaultFontName || cfg.FontMetadataPath == "" {
		return LoadGoFamily()
	}

	loader, err := NewFontLoader(cfg)
	if err != nil {
		return nil, err
	}
	return loader.LoadFamily(cfg.FontName)
}

// faceSet holds one face per text style and measures text for layout.
type faceSet struct {
	faces map[TextStyle]*canvas.FontFace
}

func newFaceSet(family *canvas.FontFamily) *faceSet {
	set := &faceSet{faces: make(map[TextStyle]*canvas.FontFace, len(textStyles))}
	for style, spec := range textStyles {
		set.faces[style] = family.Face(spec.size, spec.color, spec.font, canvas.FontNormal)
	}
	return set
}

func (f *faceSet) textWidth(style TextStyle, s string) float64 {
	if s == "" {
		return 0
	}
	return canvas.NewTextBox(f.faces[style], s, 0, 0, canvas.Left, canvas.Top, 0, 0).Bounds().W
}

func (f *faceSet) lineHeight(style TextStyle) float64 {
	return lineHeightOf(style)
}

// textBox lets canvas break s over width. Canvas never splits inside a word,
// so a box that overflows is broken with wrapText first.
func (f *faceSet) textBox(style TextStyle, s string, width float64) (string, float64) {
	if strings.TrimSpace(s) == "" {
		return s, 0
	}

	box := f.newTextBox(style, s, width)
	if box.Overflows {
		s = strings.Join(wrapText(f, style, s, width), "\n")
		box = f.newTextBox(style, s, width)
	}
	return s, box.Bounds().H
}

func (f *faceSet) newTextBox(style TextStyle, s string, width float64) *canvas.Text {
	return canvas.NewTextBox(f.faces[style], s, width, 0, textStyles[style].align, canvas.Top, 0, 0)
}
