package repository

import (
	"github.com/LucasBeserra/magnetic-report-api/internal/auth"
	filestorage "github.com/LucasBeserra/magnetic-report-api/internal/file_storage"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type baseRepository struct {
	db         *gorm.DB
	logger     *zap.SugaredLogger
	jwtService auth.JWTInterface
	storage    filestorage.Storage
}

type Repository struct {
	// DB can be used for transaction. Example usage:
	// tx := r.DB.Begin()
	// defer tx.Commit()
	// Then pass tx to the repository function. and use tx.Rollback() if error occurred
	DB      *gorm.DB
	User    *UserRepository
	JWT     *JWTRepository
	Client  *ClientRepository
	Product *ProductRepository
	Report  *ReportRepository
	Photo   *PhotoRepository
}

func newBaseRepository(db *gorm.DB, logger *zap.SugaredLogger, jwtService auth.JWTInterface, storage filestorage.Storage) *baseRepository {
	return &baseRepository{db: db, logger: logger, jwtService: jwtService, storage: storage}
}

func NewRepository(db *gorm.DB, logger *zap.SugaredLogger, jwtService auth.JWTInterface, storage filestorage.Storage) *Repository {
	br := newBaseRepository(db, logger, jwtService, storage)
	_userRepo := &UserRepository{baseRepository: br}

	return &Repository{
		DB:      db,
		User:    _userRepo,
		JWT:     &JWTRepository{baseRepository: br, user: _userRepo},
		Client:  &ClientRepository{baseRepository: br},
		Product: &ProductRepository{baseRepository: br},
		Report:  &ReportRepository{baseRepository: br},
		Photo:   &PhotoRepository{baseRepository: br},
	}
}

// Note: GORM perform write (create/update/delete) operations run inside a transaction to ensure data consistency | So this function is helpful only if we disable auto transaction
// or need several statements to commit together.
// Docs: https://gorm.io/docs/transactions.html#Disable-Default-Transaction
func (b baseRepository) withTx(db *gorm.DB, fn func(*gorm.DB) error) error {
	err := db.Transaction(func(tx *gorm.DB) error {
		return fn(tx)
	})

	if err != nil {
		b.logger.Debugf("withTx Transaction error: %v", err)
	}

	return err
}

func (b baseRepository) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}

	return b.db
}
