package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BaseModel struct {
	ID        string     `gorm:"type:text;primaryKey" json:"id"`
	CreatedAt *time.Time `gorm:"default:CURRENT_TIMESTAMP;not null" json:"createdAt"`
	UpdatedAt *time.Time `gorm:"default:CURRENT_TIMESTAMP;not null" json:"updatedAt"`
}

func (bm *BaseModel) BeforeCreate(tx *gorm.DB) (err error) {
	// UUID version 4, unless the caller already picked one
	if bm.ID == "" {
		bm.ID = uuid.NewString()
	}
	return
}

// AllModels is the migration order, parents before children.
func AllModels() []any {
	return []any{
		&User{},
		&Token{},
		&Client{},
		&Product{},
		&Report{},
		&Photo{},
	}
}
