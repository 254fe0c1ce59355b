package model

import "github.com/LucasBeserra/magnetic-report-api/pkg/report"

type Photo struct {
	BaseModel
	OriginalName string `gorm:"type:varchar(255);not null" json:"originalName" form:"originalName"`
	StoredName   string `gorm:"type:varchar(255);not null;uniqueIndex" json:"storedName" form:"storedName"`
	StoragePath  string `gorm:"type:text;not null" json:"storagePath" form:"storagePath"`
	SizeBytes    int64  `gorm:"type:bigint;not null" json:"sizeBytes" form:"sizeBytes"`
	MimeType     string `gorm:"type:varchar(100)" json:"mimeType" form:"mimeType"`
	Caption      string `gorm:"type:text" json:"caption" form:"caption"`
	DisplayOrder int    `gorm:"not null;default:0;index" json:"displayOrder" form:"displayOrder"`

	ReportID string `gorm:"type:text;not null;index" json:"reportId" form:"reportId"`

	// Filled by the controller from the storage driver, never stored.
	URL string `gorm:"-" json:"url,omitempty"`
}

func (p Photo) TableName() string {
	return "photos"
}

func (p Photo) ToPhotoView() report.PhotoView {
	return report.PhotoView{
		ID:           p.ID,
		OriginalName: p.OriginalName,
		StoragePath:  p.StoragePath,
		Caption:      p.Caption,
		DisplayOrder: p.DisplayOrder,
	}
}
