package entity

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Menu struct {
	gorm.Model
	Name        string          `gorm:"not null" json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Available   bool            `gorm:"not null;default:true" json:"available"`

	RestaurantID uint       `gorm:"index;not null" json:"restaurantId"`
	Restaurant   Restaurant `json:"-"`
}
