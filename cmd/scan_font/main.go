package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/LucasBeserra/magnetic-report-api/internal/config"
	"github.com/LucasBeserra/magnetic-report-api/internal/env"
	"github.com/LucasBeserra/magnetic-report-api/pkg/report"
)

func init() {
	env.LoadEnv()
}

// Writes the metadata file the renderer reads to find RENDER_FONT_NAME, then
// checks that the configured font can actually be loaded from it.
func main() {
	cfg := config.GetConfig()

	fontDir := flag.String("dir", "fonts", "directory containing .ttf/.otf files")
	outputFile := flag.String("out", cfg.Render.FontMetadataPath, "where to write the font metadata")
	fontName := flag.String("font", cfg.Render.FontName, "font family the report renderer will use")
	flag.Parse()

	fonts, err := report.ScanFontDir(*fontDir)
	if err != nil {
		log.Fatalf("Failed to scan font directory: %v", err)
	}

	data, err := json.MarshalIndent(fonts, "", "  ")
	if err != nil {
		log.Fatalf("Failed to marshal font metadata: %v", err)
	}

	if err := os.WriteFile(*outputFile, data, 0644); err != nil {
		log.Fatalf("Failed to write %s: %v", *outputFile, err)
	}

	for _, f := range fonts {
		fmt.Printf("  %-30s %s\n", f.Name, f.Path)
	}
	fmt.Printf("Saved metadata for %d fonts to %q\n", len(fonts), *outputFile)

	if *fontName == "" || *fontName == report.DefaultFontName {
		fmt.Println("Renderer uses the bundled Go fonts")
		return
	}

	loader, err := report.NewFontLoader(report.Config{FontMetadataPath: *outputFile})
	if err != nil {
		log.Fatalf("Failed to read %s back: %v", *outputFile, err)
	}
	if _, err := loader.LoadFamily(*fontName); err != nil {
		log.Fatalf("Font %q cannot be used by the renderer: %v", *fontName, err)
	}
	fmt.Printf("Font %q loads correctly\n", *fontName)
}
