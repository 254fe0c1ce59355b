package model

import (
	"github.com/LucasBeserra/magnetic-report-api/pkg/report"
	"gorm.io/datatypes"
)

type Product struct {
	BaseModel
	Name        string `gorm:"type:varchar(200);not null" json:"name" form:"name"`
	Code        string `gorm:"type:varchar(100);not null;uniqueIndex" json:"code" form:"code"`
	Description string `gorm:"type:text" json:"description" form:"description"`
	Category    string `gorm:"type:varchar(100)" json:"category" form:"category"`

	// Column names and value types that new reports of this product must follow.
	Template datatypes.JSONType[report.ColumnSchema] `json:"template" form:"template"`
}

func (p Product) TableName() string {
	return "products"
}

func (p Product) Schema() *report.ColumnSchema {
	s := p.Template.Data()
	return &s
}
