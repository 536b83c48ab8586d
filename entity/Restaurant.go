package entity

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Restaurant struct {
	gorm.Model
	Name        string `gorm:"not null" json:"name"`
	Address     string `json:"address"`
	Description string `json:"description"`

	Lat              float64 `gorm:"type:decimal(10,7)" json:"lat"`
	Lng              float64 `gorm:"type:decimal(10,7)" json:"lng"`
	DeliveryRadiusKm float64 `gorm:"not null;default:5" json:"deliveryRadiusKm"`

	RatingAvg   decimal.Decimal `gorm:"type:decimal(3,2);default:0" json:"ratingAvg"`
	RatingCount int64           `json:"ratingCount"`

	OwnerID uint `json:"ownerId"`
	Owner   User `gorm:"foreignKey:OwnerID" json:"-"`

	Menus  []Menu  `json:"-"`
	Orders []Order `json:"-"`
}
