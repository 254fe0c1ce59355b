package model

type Client struct {
	BaseModel
	Name    string  `gorm:"type:varchar(200);not null" json:"name" form:"name"`
	Email   *string `gorm:"type:varchar(255);uniqueIndex" json:"email" form:"email"`
	Phone   string  `gorm:"type:varchar(50)" json:"phone" form:"phone"`
	Company string  `gorm:"type:varchar(200)" json:"company" form:"company"`
	Address string  `gorm:"type:text" json:"address" form:"address"`
}

func (c Client) TableName() string {
	return "clients"
}
