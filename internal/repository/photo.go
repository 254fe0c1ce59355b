package repository

import (
	"context"

	constant "github.com/LucasBeserra/magnetic-report-api/internal/constant"
	"github.com/LucasBeserra/magnetic-report-api/internal/model"
	"gorm.io/gorm"
)

type PhotoRepository struct {
	*baseRepository
}

// Create takes the report's next display order and inserts the photo in the
// same transaction. Orders are never handed out twice, even after deletes.
func (pr PhotoRepository) Create(ctx context.Context, tx *gorm.DB, photo *model.Photo) (*model.Photo, error) {
	pr.logger.Debugf("Create photo for report %s: %s \n", photo.ReportID, photo.StoredName)

	db := pr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	err := pr.withTx(db, func(tx *gorm.DB) error {
		// the update takes the row lock, concurrent uploads queue here
		res := tx.WithContext(ctx).Model(&model.Report{}).
			Where("id = ?", photo.ReportID).
			UpdateColumn("next_photo_order", gorm.Expr("next_photo_order + ?", 1))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		var next int
		if err := tx.WithContext(ctx).Model(&model.Report{}).
			Where("id = ?", photo.ReportID).
			Pluck("next_photo_order", &next).Error; err != nil {
			return err
		}

		photo.DisplayOrder = next - 1
		return tx.WithContext(ctx).Model(&model.Photo{}).Create(photo).Error
	})
	if err != nil {
		return nil, err
	}

	return photo, nil
}

func (pr PhotoRepository) ListByReport(ctx context.Context, tx *gorm.DB, reportId string) ([]model.Photo, error) {
	pr.logger.Debugf("List photos of report: %s \n", reportId)

	db := pr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var photos []model.Photo
	if err := orderedPhotos(db.WithContext(ctx).Model(&model.Photo{}).Where("report_id = ?", reportId)).
		Find(&photos).Error; err != nil {
		return nil, err
	}

	return photos, nil
}

func (pr PhotoRepository) GetById(ctx context.Context, tx *gorm.DB, reportId, photoId string) (*model.Photo, error) {
	pr.logger.Debugf("Get photo %s of report %s \n", photoId, reportId)

	db := pr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var photo model.Photo
	if err := db.WithContext(ctx).Model(&model.Photo{}).
		Where("id = ? AND report_id = ?", photoId, reportId).
		First(&photo).Error; err != nil {
		return nil, err
	}

	return &photo, nil
}

// Delete removes the backing file, then the record. A file that is already
// gone does not block the delete.
func (pr PhotoRepository) Delete(ctx context.Context, photo *model.Photo) error {
	pr.logger.Debugf("Delete photo: %s \n", photo.ID)

	if pr.storage != nil {
		if err := pr.storage.Delete(ctx, photo.StoragePath); err != nil {
			return err
		}
	}

	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	res := pr.db.WithContext(ctx).Where("id = ?", photo.ID).Delete(&model.Photo{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
