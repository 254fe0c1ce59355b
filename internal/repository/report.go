package repository

import (
	"context"
	"database/sql"
	"errors"

	constant "github.com/LucasBeserra/magnetic-report-api/internal/constant"
	"github.com/LucasBeserra/magnetic-report-api/internal/database"
	"github.com/LucasBeserra/magnetic-report-api/internal/model"
	"github.com/LucasBeserra/magnetic-report-api/internal/util"
	"gorm.io/gorm"
)

var ErrOrderCodeTaken = errors.New("order code already exists")

type ReportRepository struct {
	*baseRepository
}

type ReportFilter struct {
	Status    string
	ClientID  string
	ProductID string
}

func orderedPhotos(db *gorm.DB) *gorm.DB {
	return db.Order("display_order ASC").Order("created_at ASC")
}

func (rr ReportRepository) Create(ctx context.Context, tx *gorm.DB, report *model.Report) (*model.Report, error) {
	rr.logger.Debugf("Create report with order code: %s \n", report.OrderCode)

	db := rr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	taken, err := rr.OrderCodeTaken(ctx, db, report.OrderCode, "")
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrOrderCodeTaken
	}

	if report.Status == "" {
		report.Status = constant.ReportStatusDraft
	}

	if err := db.WithContext(ctx).Model(&model.Report{}).Omit("Client", "Product", "Photos").Create(report).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrOrderCodeTaken
		}
		return nil, err
	}

	return report, nil
}

func (rr ReportRepository) OrderCodeTaken(ctx context.Context, tx *gorm.DB, orderCode string, excludeID string) (bool, error) {
	rr.logger.Debugf("Check order code: %s \n", orderCode)

	db := rr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	query := db.WithContext(ctx).Model(&model.Report{}).Where("order_code = ?", orderCode)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

// GetById loads the report with its client, product and photos in display order.
func (rr ReportRepository) GetById(ctx context.Context, tx *gorm.DB, reportId string) (*model.Report, error) {
	rr.logger.Debugf("Get report by id: %s \n", reportId)

	db := rr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var report model.Report
	if err := db.WithContext(ctx).Model(&model.Report{}).
		Preload("Client").
		Preload("Product").
		Preload("Photos", orderedPhotos).
		Where("id = ?", reportId).
		First(&report).Error; err != nil {
		return nil, err
	}

	return &report, nil
}

// GetForRender reads the report and everything the document shows in one
// read-only transaction, so a concurrent photo upload or edit is either fully
// visible or not at all.
func (rr ReportRepository) GetForRender(ctx context.Context, reportId string) (*model.Report, error) {
	rr.logger.Debugf("Get report for render: %s \n", reportId)

	var opts []*sql.TxOptions
	if database.IsPostgres(rr.db) {
		opts = append(opts, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
	}

	var report *model.Report
	err := rr.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		report, err = rr.GetById(ctx, tx, reportId)
		return err
	}, opts...)
	if err != nil {
		return nil, err
	}

	return report, nil
}

func (rr ReportRepository) List(ctx context.Context, tx *gorm.DB, filter ReportFilter, page, pageSize uint) ([]model.Report, int64, error) {
	rr.logger.Debugf("List reports with filter: %+v page: %d pageSize: %d \n", filter, page, pageSize)

	db := rr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	query := db.WithContext(ctx).Model(&model.Report{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.ClientID != "" {
		query = query.Where("client_id = ?", filter.ClientID)
	}
	if filter.ProductID != "" {
		query = query.Where("product_id = ?", filter.ProductID)
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reports []model.Report
	if err := query.Preload("Client").Preload("Product").
		Order("created_at DESC").Order("id ASC").
		Offset(util.PageOffset(page, pageSize)).Limit(int(pageSize)).
		Find(&reports).Error; err != nil {
		return nil, 0, err
	}

	return reports, total, nil
}

func (rr ReportRepository) Update(ctx context.Context, tx *gorm.DB, reportId string, fields map[string]any) (*model.Report, error) {
	rr.logger.Debugf("Update report %s with fields: %v \n", reportId, fields)

	db := rr.getDB(tx)

	var updated *model.Report
	err := rr.withTx(db, func(tx *gorm.DB) error {
		if code, ok := fields["order_code"].(string); ok {
			taken, err := rr.OrderCodeTaken(ctx, tx, code, reportId)
			if err != nil {
				return err
			}
			if taken {
				return ErrOrderCodeTaken
			}
		}

		if len(fields) > 0 {
			qctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
			defer cancel()

			res := tx.WithContext(qctx).Model(&model.Report{}).Where("id = ?", reportId).Updates(fields)
			if res.Error != nil {
				if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
					return ErrOrderCodeTaken
				}
				return res.Error
			}
		}

		var err error
		updated, err = rr.GetById(ctx, tx, reportId)
		return err
	})

	return updated, err
}

type DeleteReportResult struct {
	// Storage paths whose files could not be removed. Their records are gone.
	Orphans []string
}

// Delete removes the backing files of every photo first, then the photo rows
// and the report row together. A file that fails to delete does not stop the
// deletion; it is logged and reported as an orphan.
func (rr ReportRepository) Delete(ctx context.Context, reportId string) (*DeleteReportResult, error) {
	rr.logger.Debugf("Delete report: %s \n", reportId)

	report, err := rr.GetById(ctx, nil, reportId)
	if err != nil {
		return nil, err
	}

	result := &DeleteReportResult{}
	if rr.storage != nil {
		for _, photo := range report.Photos {
			if err := rr.storage.Delete(ctx, photo.StoragePath); err != nil {
				rr.logger.Errorw("Failed to delete photo file, leaving an orphan",
					"reportId", reportId, "photoId", photo.ID, "storagePath", photo.StoragePath, "error", err)
				result.Orphans = append(result.Orphans, photo.StoragePath)
			}
		}
	}

	err = rr.withTx(rr.db, func(tx *gorm.DB) error {
		ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
		defer cancel()

		if err := tx.WithContext(ctx).Where("report_id = ?", reportId).Delete(&model.Photo{}).Error; err != nil {
			return err
		}

		res := tx.WithContext(ctx).Where("id = ?", reportId).Delete(&model.Report{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}
