package models

import (
	"time"
)

// User covers both customers (created lazily from a phone number at billing
// time) and staff actors; the role field tells them apart.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"size:50;unique;not null" json:"user_id"`
	Name      string    `gorm:"size:100" json:"name"`
	Email     string    `gorm:"size:100;index" json:"email"`
	Phone     string    `gorm:"size:15;unique;not null" json:"phone"`
	Roles     Role      `gorm:"size:20;default:'user'" json:"roles"`
	CreatedAt time.Time `json:"created_at"`
}

type Otp struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Phone     string    `gorm:"size:15;index;not null" json:"phone"`
	CodeHash  string    `gorm:"size:255;not null" json:"-"`
	ExpiresAt time.Time `gorm:"index" json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}
