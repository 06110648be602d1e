package models

import (
	"time"
)

type PaymentMethod string

const (
	PaymentCash  PaymentMethod = "cash"
	PaymentCard  PaymentMethod = "card"
	PaymentUPI   PaymentMethod = "upi"
	PaymentOther PaymentMethod = "other"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentUPI, PaymentOther:
		return true
	}
	return false
}

type BillStatus string

const (
	StatusPending   BillStatus = "pending"
	StatusPaid      BillStatus = "paid"
	StatusCancelled BillStatus = "cancelled"
)

func (s BillStatus) Valid() bool {
	switch s {
	case StatusPending, StatusPaid, StatusCancelled:
		return true
	}
	return false
}

// Bill snapshots item data at the time of sale; later catalog edits never
// touch it. GrandTotal is always derived as SubTotal - Discount.
type Bill struct {
	ID uint `gorm:"primaryKey" json:"id"`
	// Human-readable identifier, e.g. VANS0001. Unique and strictly
	// increasing in assignment order.
	BillID        string        `gorm:"size:50;unique;not null" json:"bill_id"`
	UserID        uint          `gorm:"not null" json:"user_id"`
	User          *User         `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Phone         string        `gorm:"size:15;not null;index:idx_bills_phone_created,priority:1" json:"phone"`
	Items         []BillLine    `gorm:"foreignKey:BillRef;constraint:OnDelete:CASCADE" json:"items"`
	SubTotal      float64       `gorm:"type:decimal(10,2);not null" json:"subTotal"`
	Discount      float64       `gorm:"type:decimal(10,2);default:0" json:"discount"`
	GrandTotal    float64       `gorm:"type:decimal(10,2);not null" json:"grandTotal"`
	PaymentMethod PaymentMethod `gorm:"size:10;default:'cash'" json:"paymentMethod"`
	Status        BillStatus    `gorm:"size:10;default:'paid'" json:"status"`
	CreatedBy     *uint         `json:"created_by"`
	CreatedAt     time.Time     `gorm:"index:idx_bills_phone_created,priority:2;index" json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

type BillLine struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	BillRef uint `gorm:"index;not null" json:"bill_ref"`
	ItemID  uint `gorm:"not null" json:"item"`
	// Snapshots taken at billing time.
	Name     string  `gorm:"size:150;not null" json:"name"`
	Price    float64 `gorm:"type:decimal(10,2);not null" json:"price"`
	Quantity int     `gorm:"not null" json:"quantity"`
	Total    float64 `gorm:"type:decimal(10,2);not null" json:"total"`
}

// Sequence backs the bill sequencer: one row per counter, bumped with an
// atomic UPDATE inside the reserving transaction.
type Sequence struct {
	Name  string `gorm:"primaryKey;size:50"`
	Value uint64 `gorm:"not null"`
}
