package entity

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderItem is immutable once created: UnitPrice is a snapshot taken at order
// time, so later menu price changes never touch past orders.
type OrderItem struct {
	gorm.Model
	Qty       int             `gorm:"not null" json:"qty"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"unitPrice"`
	LineTotal decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"lineTotal"`

	OrderID uint  `gorm:"index;not null" json:"orderId"`
	Order   Order `json:"-"`

	MenuID uint `gorm:"not null" json:"menuId"`
	Menu   Menu `json:"-"` // preload only when the menu name is needed
}
