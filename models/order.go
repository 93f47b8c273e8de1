package models

import (
	"math"
	"time"
)

const (
	OrderStatusPending   = "pending"
	OrderStatusCompleted = "completed"
)

// DeliveryOffset is added to the creation time to produce the promised
// delivery time shown on the receipt.
const DeliveryOffset = 30 * time.Minute

// Orders above this total get the flat volume discount.
const (
	discountThreshold = 500.0
	discountRate      = 0.05
)

type Order struct {
	ID            uint      `gorm:"primaryKey"`
	UserID        uint      `gorm:"not null;index"`
	User          User      `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	PizzaID       uint      `gorm:"not null;index"`
	Pizza         Pizza     `gorm:"foreignKey:PizzaID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	Quantity      int       `gorm:"not null"`
	PaymentMethod string    `gorm:"type:varchar(20);not null"`
	TotalPrice    float64   `gorm:"type:decimal(10,2);not null"`
	Status        string    `gorm:"type:varchar(20);not null;default:'pending'"`
	DeliveryTime  time.Time `gorm:"not null"`
	CreatedAt     time.Time `gorm:"not null"`
	UpdatedAt     time.Time `gorm:"not null"`
}

// OrderTotal computes the price charged for quantity units at the given
// unit price. Totals over the discount threshold are reduced by 5%. The
// result is a pricing snapshot: it is stored on the order at creation and
// never recomputed when the pizza price changes later.
func OrderTotal(price float64, quantity int) float64 {
	total := price * float64(quantity)
	if total > discountThreshold {
		total *= 1 - discountRate
	}
	return math.Round(total*100) / 100
}
