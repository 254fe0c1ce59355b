package model

import (
	"github.com/LucasBeserra/magnetic-report-api/pkg/report"
	"gorm.io/datatypes"
)

type Report struct {
	BaseModel
	OrderCode   string `gorm:"type:varchar(100);not null;uniqueIndex" json:"orderCode" form:"orderCode"`
	Title       string `gorm:"type:varchar(200);not null" json:"title" form:"title"`
	Description string `gorm:"type:text" json:"description" form:"description"`
	Notes       string `gorm:"type:text" json:"notes" form:"notes"`
	Status      string `gorm:"type:varchar(50);not null;default:'rascunho';index" json:"status" form:"status"`

	Table datatypes.JSONType[*report.TableData] `gorm:"column:table_data" json:"table" form:"table"`

	// Next display order handed to an uploaded photo. Only ever incremented.
	NextPhotoOrder int `gorm:"not null;default:0" json:"-"`

	ClientID  string `gorm:"type:text;not null;index" json:"clientId" form:"clientId"`
	ProductID string `gorm:"type:text;not null;index" json:"productId" form:"productId"`

	Client  *Client  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"client,omitempty"`
	Product *Product `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"product,omitempty"`
	Photos  []Photo  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"photos,omitempty"`
}

func (r Report) TableName() string {
	return "reports"
}

// ToView snapshots the report for rendering. Client, Product and Photos must
// already be loaded, photos in display order.
func (r Report) ToView() report.View {
	v := report.View{
		OrderCode:   r.OrderCode,
		Title:       r.Title,
		Status:      r.Status,
		Description: r.Description,
		Notes:       r.Notes,
		Table:       r.Table.Data(),
	}

	if r.Client != nil {
		v.ClientName = r.Client.Name
		v.ClientCompany = r.Client.Company
	}
	if r.Product != nil {
		v.ProductName = r.Product.Name
		v.ProductCode = r.Product.Code
	}

	v.Photos = make([]report.PhotoView, 0, len(r.Photos))
	for _, p := range r.Photos {
		v.Photos = append(v.Photos, p.ToPhotoView())
	}

	return v
}
