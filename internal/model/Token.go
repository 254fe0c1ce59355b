package model

import "time"

// Token tracks an issued refresh token by its jti. Only refresh tokens that
// have a row with CanRefresh set can be exchanged.
type Token struct {
	BaseModel
	RefreshTokenID string    `gorm:"type:text;not null;uniqueIndex" json:"-" form:"-"`
	CanRefresh     bool      `gorm:"not null;default:true" json:"canRefresh" form:"canRefresh"`
	ExpiresAt      time.Time `gorm:"not null" json:"expiresAt" form:"expiresAt"`

	UserID string `gorm:"type:text;not null;index" json:"userId" form:"userId"`
	User   User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-" form:"-"`
}

func (t Token) TableName() string {
	return "tokens"
}
