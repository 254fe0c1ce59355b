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
	ErrClientEmailTaken = errors.New("client email already registered")
	ErrClientHasReports = errors.New("client still has reports")
)

type ClientRepository struct {
	*baseRepository
}

func normalizeEmail(email *string) *string {
	if email == nil {
		return nil
	}
	e := strings.ToLower(strings.TrimSpace(*email))
	if e == "" {
		return nil
	}
	return &e
}

func (cr ClientRepository) Create(ctx context.Context, tx *gorm.DB, client *model.Client) (*model.Client, error) {
	cr.logger.Debugf("Create client with data: %v \n", client)

	db := cr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	client.Email = normalizeEmail(client.Email)
	if client.Email != nil {
		taken, err := cr.EmailTaken(ctx, db, *client.Email, "")
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrClientEmailTaken
		}
	}

	if err := db.WithContext(ctx).Model(&model.Client{}).Create(client).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrClientEmailTaken
		}
		return nil, err
	}

	return client, nil
}

// Reports whether another client, other than excludeID, uses the email.
func (cr ClientRepository) EmailTaken(ctx context.Context, tx *gorm.DB, email string, excludeID string) (bool, error) {
	cr.logger.Debugf("Check client email: %s \n", email)

	db := cr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	query := db.WithContext(ctx).Model(&model.Client{}).Where("email = ?", strings.ToLower(email))
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

func (cr ClientRepository) GetById(ctx context.Context, tx *gorm.DB, clientId string) (*model.Client, error) {
	cr.logger.Debugf("Get client by id: %s \n", clientId)

	db := cr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var client model.Client
	if err := db.WithContext(ctx).Model(&model.Client{}).Where("id = ?", clientId).First(&client).Error; err != nil {
		return nil, err
	}

	return &client, nil
}

func (cr ClientRepository) List(ctx context.Context, tx *gorm.DB, search string, page, pageSize uint) ([]model.Client, int64, error) {
	cr.logger.Debugf("List clients, search: %s page: %d pageSize: %d \n", search, page, pageSize)

	db := cr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	query := db.WithContext(ctx).Model(&model.Client{})
	if search = strings.TrimSpace(search); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(company) LIKE ?", like, like)
	}

	// each statement below starts from a copy of the filters
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var clients []model.Client
	if err := query.Order("name ASC").Offset(util.PageOffset(page, pageSize)).Limit(int(pageSize)).Find(&clients).Error; err != nil {
		return nil, 0, err
	}

	return clients, total, nil
}

// Applies only the given columns. The email, when present, is normalized and
// checked against other clients.
func (cr ClientRepository) Update(ctx context.Context, tx *gorm.DB, clientId string, fields map[string]any) (*model.Client, error) {
	cr.logger.Debugf("Update client %s with fields: %v \n", clientId, fields)

	db := cr.getDB(tx)

	var updated *model.Client
	err := cr.withTx(db, func(tx *gorm.DB) error {
		if _, err := cr.GetById(ctx, tx, clientId); err != nil {
			return err
		}

		if raw, ok := fields["email"]; ok {
			email, _ := raw.(*string)
			email = normalizeEmail(email)
			if email != nil {
				taken, err := cr.EmailTaken(ctx, tx, *email, clientId)
				if err != nil {
					return err
				}
				if taken {
					return ErrClientEmailTaken
				}
				fields["email"] = *email
			} else {
				fields["email"] = nil
			}
		}

		if len(fields) > 0 {
			qctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
			defer cancel()

			if err := tx.WithContext(qctx).Model(&model.Client{}).Where("id = ?", clientId).Updates(fields).Error; err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return ErrClientEmailTaken
				}
				return err
			}
		}

		var err error
		updated, err = cr.GetById(ctx, tx, clientId)
		return err
	})

	return updated, err
}

func (cr ClientRepository) Delete(ctx context.Context, tx *gorm.DB, clientId string) error {
	cr.logger.Debugf("Delete client: %s \n", clientId)

	db := cr.getDB(tx)
	return cr.withTx(db, func(tx *gorm.DB) error {
		if _, err := cr.GetById(ctx, tx, clientId); err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
		defer cancel()

		var reports int64
		if err := tx.WithContext(ctx).Model(&model.Report{}).Where("client_id = ?", clientId).Count(&reports).Error; err != nil {
			return err
		}
		if reports > 0 {
			return ErrClientHasReports
		}

		return tx.WithContext(ctx).Where("id = ?", clientId).Delete(&model.Client{}).Error
	})
}
