package appcontext

import (
	"github.com/LucasBeserra/magnetic-report-api/internal/auth"
	"github.com/LucasBeserra/magnetic-report-api/internal/config"
	filestorage "github.com/LucasBeserra/magnetic-report-api/internal/file_storage"
	"github.com/LucasBeserra/magnetic-report-api/internal/mailer"
	"github.com/LucasBeserra/magnetic-report-api/internal/repository"
	"github.com/LucasBeserra/magnetic-report-api/pkg/report"
	"go.uber.org/zap"
)

// Application contains core dependencies for the app.
type Application struct {
	// Config holds application settings provided from .env file.
	Config *config.Config

	Logger *zap.SugaredLogger

	// Repository provides access to data storage operations.
	Repository *repository.Repository

	// Mailer handles email-sending functions.
	Mailer mailer.Client

	// JWTService manages JWT operations for authentication such as generate, verify, refresh token.
	JWTService auth.JWTInterface

	// Storage keeps uploaded photos, on disk or in minio.
	Storage filestorage.Storage

	// Renderer turns a stored report into a pdf. Safe for concurrent use.
	Renderer *report.Renderer
}
