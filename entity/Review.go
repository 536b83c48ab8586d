package entity

import (
	"gorm.io/gorm"
)

// Review: at most one per order, created only once the order is delivered.
type Review struct {
	gorm.Model
	RestaurantRating int    `gorm:"not null" json:"restaurantRating"` // 1..5
	PartnerRating    int    `gorm:"not null" json:"partnerRating"`    // 1..5
	Comment          string `json:"comment"`

	OrderID uint  `gorm:"uniqueIndex;not null" json:"orderId"`
	Order   Order `json:"-"`

	CustomerID   uint       `gorm:"index;not null" json:"customerId"`
	Customer     User       `gorm:"foreignKey:CustomerID" json:"-"`
	RestaurantID uint       `gorm:"index;not null" json:"restaurantId"`
	Restaurant   Restaurant `json:"-"`
	PartnerID    uint       `gorm:"index;not null" json:"partnerId"`
	Partner      User       `gorm:"foreignKey:PartnerID" json:"-"`
}
