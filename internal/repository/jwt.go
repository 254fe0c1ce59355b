package repository

import (
	"context"
	"errors"

	"github.com/LucasBeserra/magnetic-report-api/internal/auth"
	constant "github.com/LucasBeserra/magnetic-report-api/internal/constant"
	"github.com/LucasBeserra/magnetic-report-api/internal/model"
	"gorm.io/gorm"
)

var (
	ErrTokenRevoked = errors.New("token is valid but cannot be refreshed")
	ErrInactiveUser = errors.New("user is inactive")
)

type JWTRepository struct {
	*baseRepository
	user *UserRepository
}

func toJWTPayload(user model.User) auth.JWTPayload {
	return auth.JWTPayload{
		ID:       user.ID,
		Email:    user.Email,
		FullName: user.FullName,
	}
}

func (jr JWTRepository) GenRefreshAndAccessToken(ctx context.Context, tx *gorm.DB, user model.User) (*auth.TokenPair, error) {
	jr.logger.Debugf("Generate refresh and access token for userId: %s \n", user.ID)

	pair, err := jr.jwtService.GenerateRefreshAndAccessToken(toJWTPayload(user))
	if err != nil {
		return nil, err
	}

	db := jr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	if err := db.WithContext(ctx).Model(&model.Token{}).Create(&model.Token{
		RefreshTokenID: pair.Refresh.ID,
		CanRefresh:     true,
		ExpiresAt:      pair.Refresh.ExpiresAt,
		UserID:         user.ID,
	}).Error; err != nil {
		return nil, err
	}

	return pair, nil
}

func (jr JWTRepository) GetTokenByRefreshTokenID(ctx context.Context, tx *gorm.DB, refreshTokenID string) (*model.Token, error) {
	jr.logger.Debugf("Get token by refresh token id: %s \n", refreshTokenID)

	db := jr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var token model.Token
	if err := db.WithContext(ctx).Model(&model.Token{}).Where("refresh_token_id = ?", refreshTokenID).First(&token).Error; err != nil {
		return nil, err
	}

	return &token, nil
}

/*
 * Rotate a refresh token: the stored row is re-pointed at a newly issued refresh token,
 * so the presented one can never be exchanged again.
 */
func (jr JWTRepository) RefreshToken(ctx context.Context, tx *gorm.DB, refreshTokenID string) (*auth.TokenPair, error) {
	jr.logger.Debugf("Refresh token: %s \n", refreshTokenID)

	db := jr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var pair *auth.TokenPair

	txErr := jr.withTx(db, func(tx2 *gorm.DB) error {
		token, err := jr.GetTokenByRefreshTokenID(ctx, tx2, refreshTokenID)
		if err != nil {
			return err
		}

		if !token.CanRefresh {
			return ErrTokenRevoked
		}

		user, err := jr.user.GetById(ctx, tx2, token.UserID)
		if err != nil {
			return err
		}

		if !user.IsActive {
			return ErrInactiveUser
		}

		pair, err = jr.jwtService.GenerateRefreshAndAccessToken(toJWTPayload(*user))
		if err != nil {
			return err
		}

		res := tx2.WithContext(ctx).Model(&model.Token{}).
			Where("refresh_token_id = ? AND can_refresh = ?", refreshTokenID, true).
			Updates(map[string]any{
				"refresh_token_id": pair.Refresh.ID,
				"expires_at":       pair.Refresh.ExpiresAt,
			})
		if res.Error != nil {
			return res.Error
		}
		// someone else rotated or revoked it first
		if res.RowsAffected != 1 {
			return ErrTokenRevoked
		}

		return nil
	})

	if txErr != nil {
		jr.logger.Debugf("Refresh token, Transaction error: %v \n", txErr)
		return nil, txErr
	}

	return pair, nil
}

func (jr JWTRepository) DeleteToken(ctx context.Context, tx *gorm.DB, refreshTokenID string) error {
	jr.logger.Debugf("Delete token using refresh token id: %s \n", refreshTokenID)

	db := jr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	return db.WithContext(ctx).Where("refresh_token_id = ?", refreshTokenID).Delete(&model.Token{}).Error
}

// Revokes every refresh token of the user, used after a password reset.
func (jr JWTRepository) RevokeAllForUser(ctx context.Context, tx *gorm.DB, userId string) error {
	jr.logger.Debugf("Revoke all tokens of user: %s \n", userId)

	db := jr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	return db.WithContext(ctx).Model(&model.Token{}).Where("user_id = ?", userId).Update("can_refresh", false).Error
}
