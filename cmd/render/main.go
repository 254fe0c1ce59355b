package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/LucasBeserra/magnetic-report-api/internal/config"
	"github.com/LucasBeserra/magnetic-report-api/internal/database"
	"github.com/LucasBeserra/magnetic-report-api/internal/env"
	filestorage "github.com/LucasBeserra/magnetic-report-api/internal/file_storage"
	"github.com/LucasBeserra/magnetic-report-api/internal/repository"
	"github.com/LucasBeserra/magnetic-report-api/internal/util"
	"github.com/LucasBeserra/magnetic-report-api/pkg/report"
)

func init() {
	env.LoadEnv()
}

// Renders one stored report to a file, without going through the api.
func main() {
	reportId := flag.String("id", "", "id of the report to render")
	out := flag.String("out", "", "output pdf path (defaults to the render output directory)")
	flag.Parse()

	if *reportId == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.GetConfig()
	logger := util.NewLogger(cfg.ENV)
	defer logger.Sync()

	ctx := context.Background()

	db, err := database.ConnectReturnGormDB(cfg.DB)
	if err != nil {
		logger.Fatal(err)
	}

	storage, err := filestorage.NewStorage(ctx, &cfg, logger)
	if err != nil {
		logger.Fatal(err)
	}

	repo := repository.NewRepository(db, logger, nil, storage)
	rep, err := repo.Report.GetForRender(ctx, *reportId)
	if err != nil {
		logger.Fatalf("Failed to load report %s: %v", *reportId, err)
	}

	renderer, err := report.NewRenderer(report.Config{
		FontMetadataPath: cfg.Render.FontMetadataPath,
		FontName:         cfg.Render.FontName,
		OutputDir:        cfg.Render.OutputDir,
		Workers:          cfg.Render.Workers,
	}, report.Settings{
		EmbedQRCode:  cfg.Render.EmbedQRCode,
		QrURLPattern: cfg.Render.QrURLPattern,
	}, storage)
	if err != nil {
		logger.Fatal(err)
	}

	dest := *out
	if dest == "" {
		dest = renderer.OutputPath(rep.OrderCode)
	}

	result, err := renderer.RenderToFile(ctx, rep.ToView(), dest)
	if err != nil {
		logger.Fatalf("Failed to render report %s: %v", *reportId, err)
	}

	for _, s := range result.Skipped() {
		fmt.Printf("skipped photo %s (%s): %s\n", s.Photo.ID, s.Photo.StoragePath, s.Reason)
	}
	for _, w := range result.Warnings {
		fmt.Printf("warning: %s\n", w)
	}
	fmt.Printf("Rendered %d page(s) with %d photo(s) to %s\n", result.Pages, result.RenderedPhotos(), result.Path)
}
