package entity

import (
	"gorm.io/gorm"
)

// PromoCodeUsage is an append-only ledger row, never updated or deleted.
type PromoCodeUsage struct {
	gorm.Model
	PromoCodeID uint      `gorm:"index:uniq_promo_usage,unique;not null" json:"promoCodeId"`
	PromoCode   PromoCode `json:"-"`

	UserID uint `gorm:"index:uniq_promo_usage,unique;not null" json:"userId"`
	User   User `json:"-"`

	OrderID *uint  `gorm:"index:uniq_promo_usage,unique" json:"orderId,omitempty"`
	Order   *Order `json:"-"`
}

func (PromoCodeUsage) TableName() string { return "promo_code_usages" }
