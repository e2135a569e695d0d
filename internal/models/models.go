package models

type User struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string `gorm:"not null"                 json:"name"`
	Email        string `gorm:"uniqueIndex;not null"     json:"email"`
	PasswordHash string `gorm:"column:password;not null" json:"-"`
}

type Admin struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Email        string `gorm:"uniqueIndex;not null"     json:"email"`
	PasswordHash string `gorm:"column:password;not null" json:"-"`
}

type Product struct {
	ID       uint    `gorm:"primaryKey;autoIncrement"                  json:"id"`
	Name     string  `gorm:"not null"                                  json:"name"`
	Quantity int     `gorm:"not null;default:0;check:quantity >= 0"    json:"quantity"`
	MRP      float64 `gorm:"column:mrp;not null;default:0;check:mrp >= 0" json:"mrp"`
	PhotoURL *string `gorm:"column:photo_url"                          json:"photo_url"`
}
