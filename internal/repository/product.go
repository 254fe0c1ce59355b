package repository

import (
	"context"
	"errors"
	"strings"

	constant "github.com/LucasBeserra/magnetic-report-api/internal/constant"
	"github.com/LucasBeserra/magnetic-report-api/internal/model"
	"github.com/LucasBeserra/magnetic-report-api/internal/util"
	"gorm.io/gorm"
)

var (
	ErrProductCodeTaken  = errors.New("product code already exists")
	ErrProductHasReports = errors.New("product still has reports")
)

type ProductRepository struct {
	*baseRepository
}

func (pr ProductRepository) Create(ctx context.Context, tx *gorm.DB, product *model.Product) (*model.Product, error) {
	pr.logger.Debugf("Create product with code: %s \n", product.Code)

	db := pr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	taken, err := pr.CodeTaken(ctx, db, product.Code, "")
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrProductCodeTaken
	}

	if err := db.WithContext(ctx).Model(&model.Product{}).Create(product).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrProductCodeTaken
		}
		return nil, err
	}

	return product, nil
}

func (pr ProductRepository) CodeTaken(ctx context.Context, tx *gorm.DB, code string, excludeID string) (bool, error) {
	pr.logger.Debugf("Check product code: %s \n", code)

	db := pr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	query := db.WithContext(ctx).Model(&model.Product{}).Where("code = ?", code)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

func (pr ProductRepository) GetById(ctx context.Context, tx *gorm.DB, productId string) (*model.Product, error) {
	pr.logger.Debugf("Get product by id: %s \n", productId)

	db := pr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var product model.Product
	if err := db.WithContext(ctx).Model(&model.Product{}).Where("id = ?", productId).First(&product).Error; err != nil {
		return nil, err
	}

	return &product, nil
}

func (pr ProductRepository) List(ctx context.Context, tx *gorm.DB, search, category string, page, pageSize uint) ([]model.Product, int64, error) {
	pr.logger.Debugf("List products, search: %s category: %s page: %d pageSize: %d \n", search, category, page, pageSize)

	db := pr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	query := db.WithContext(ctx).Model(&model.Product{})
	if search = strings.TrimSpace(search); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(code) LIKE ?", like, like)
	}
	if category != "" {
		query = query.Where("category = ?", category)
	}

	// each statement below starts from a copy of the filters
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var products []model.Product
	if err := query.Order("name ASC").Offset(util.PageOffset(page, pageSize)).Limit(int(pageSize)).Find(&products).Error; err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

func (pr ProductRepository) Update(ctx context.Context, tx *gorm.DB, productId string, fields map[string]any) (*model.Product, error) {
	pr.logger.Debugf("Update product %s with fields: %v \n", productId, fields)

	db := pr.getDB(tx)

	var updated *model.Product
	err := pr.withTx(db, func(tx *gorm.DB) error {
		if _, err := pr.GetById(ctx, tx, productId); err != nil {
			return err
		}

		if code, ok := fields["code"].(string); ok {
			taken, err := pr.CodeTaken(ctx, tx, code, productId)
			if err != nil {
				return err
			}
			if taken {
				return ErrProductCodeTaken
			}
		}

		if len(fields) > 0 {
			qctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
			defer cancel()

			if err := tx.WithContext(qctx).Model(&model.Product{}).Where("id = ?", productId).Updates(fields).Error; err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return ErrProductCodeTaken
				}
				return err
			}
		}

		var err error
		updated, err = pr.GetById(ctx, tx, productId)
		return err
	})

	return updated, err
}

func (pr ProductRepository) Delete(ctx context.Context, tx *gorm.DB, productId string) error {
	pr.logger.Debugf("Delete product: %s \n", productId)

	db := pr.getDB(tx)
	return pr.withTx(db, func(tx *gorm.DB) error {
		if _, err := pr.GetById(ctx, tx, productId); err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
		defer cancel()

		var reports int64
		if err := tx.WithContext(ctx).Model(&model.Report{}).Where("product_id = ?", productId).Count(&reports).Error; err != nil {
			return err
		}
		if reports > 0 {
			return ErrProductHasReports
		}

		return tx.WithContext(ctx).Where("id = ?", productId).Delete(&model.Product{}).Error
	})
}
