package models

import (
	"time"
)

type Category struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:100;unique;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	ParentID    *uint     `json:"parent_id"`
	Parent      *Category `gorm:"foreignKey:ParentID" json:"parent,omitempty"`
	IsActive    bool      `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Item struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Name          string    `gorm:"size:150;not null;index" json:"name"`
	Description   string    `gorm:"type:text" json:"description"`
	CategoryID    uint      `gorm:"index;not null" json:"category_id"`
	Category      *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Price         float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	SKU           string    `gorm:"size:50;unique" json:"sku"`
	Tags          string    `gorm:"size:255" json:"tags"` // comma-separated
	RatingAverage float64   `gorm:"type:decimal(3,2);default:0" json:"rating_average"`
	ReviewsCount  int       `gorm:"default:0" json:"reviews_count"`
	IsActive      bool      `gorm:"default:true" json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
