package entity

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Order invariant: Total = Subtotal + DeliveryFee - Discount, never negative.
// Rows are created only by the order orchestrator inside one transaction with
// their items; afterwards only the status column changes.
type Order struct {
	gorm.Model
	Status OrderStatus `gorm:"type:varchar(16);index;not null;default:pending" json:"status"`

	Subtotal    decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"subtotal"`
	DeliveryFee decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"deliveryFee"`
	Discount    decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"discount"`
	Total       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total"`

	DeliveryLat     float64 `gorm:"type:decimal(10,7)" json:"deliveryLat"`
	DeliveryLng     float64 `gorm:"type:decimal(10,7)" json:"deliveryLng"`
	DeliveryAddress string  `json:"deliveryAddress"`
	Notes           string  `json:"notes"`

	CustomerID uint `gorm:"index;not null" json:"customerId"`
	Customer   User `gorm:"foreignKey:CustomerID" json:"-"`

	RestaurantID uint       `gorm:"index;not null" json:"restaurantId"`
	Restaurant   Restaurant `json:"-"`

	PromoCodeID *uint      `json:"promoCodeId,omitempty"`
	PromoCode   *PromoCode `json:"-"`

	// preload only on detail endpoints
	Items      []OrderItem         `gorm:"foreignKey:OrderID" json:"items,omitempty"`
	Assignment *DeliveryAssignment `gorm:"foreignKey:OrderID" json:"-"`
	Payment    *Payment            `gorm:"foreignKey:OrderID" json:"-"`
	Review     *Review             `gorm:"foreignKey:OrderID" json:"-"`
}
