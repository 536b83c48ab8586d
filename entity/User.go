package entity

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Email       string `gorm:"uniqueIndex;not null" json:"email"`
	Password    string `json:"-"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	PhoneNumber string `json:"phoneNumber"`
	Role        string `gorm:"not null;default:customer" json:"role"` // customer | owner | partner | admin

	// delivery-partner fields (role = partner)
	AvailableForDelivery bool     `json:"availableForDelivery"`
	Lat                  *float64 `gorm:"type:decimal(10,7)" json:"lat,omitempty"`
	Lng                  *float64 `gorm:"type:decimal(10,7)" json:"lng,omitempty"`

	// running average over delivered-order reviews
	RatingAvg   decimal.Decimal `gorm:"type:decimal(3,2);default:0" json:"ratingAvg"`
	RatingCount int64           `json:"ratingCount"`

	// relations, preload only when needed
	RestaurantsOwned []Restaurant         `gorm:"foreignKey:OwnerID" json:"-"`
	Orders           []Order              `gorm:"foreignKey:CustomerID" json:"-"`
	Assignments      []DeliveryAssignment `gorm:"foreignKey:PartnerID" json:"-"`
}
