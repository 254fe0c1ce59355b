package model

type User struct {
	BaseModel
	Email          string `gorm:"unique;not null;type:citext" json:"email" form:"email" binding:"required"`
	HashedPassword string `gorm:"type:text;not null" json:"-" form:"-"`
	FullName       string `gorm:"type:varchar(200);not null" json:"fullName" form:"fullName" binding:"required"`
	IsActive       bool   `gorm:"not null;default:true" json:"isActive" form:"isActive"`
	IsVerified     bool   `gorm:"not null;default:false" json:"isVerified" form:"isVerified"`
	IsSuperuser    bool   `gorm:"not null;default:false" json:"isSuperuser" form:"isSuperuser"`
}

func (u User) TableName() string {
	return "users"
}
