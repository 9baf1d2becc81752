package users

import "time"

type User struct {
	ID           uint   `gorm:"primaryKey"`
	Username     string `gorm:"size:150;unique;not null"`
	Email        string `gorm:"size:100;unique;not null"`
	PasswordHash string `gorm:"not null" json:"-"`
	IsStaff      bool   `gorm:"default:false;not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
