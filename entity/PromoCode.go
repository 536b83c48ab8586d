package entity

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PromoCode struct {
	gorm.Model
	Code      string    `gorm:"size:50;uniqueIndex;not null" json:"code"` // stored upper-case
	PromoType PromoType `gorm:"type:varchar(16);not null" json:"promoType"`

	// percentage: percent of subtotal; fixed: absolute amount
	Value    decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"value"`
	MinOrder decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"minOrder"`

	UsageLimit int64      `gorm:"not null" json:"usageLimit"`
	UsedCount  int64      `gorm:"not null;default:0" json:"usedCount"` // monotonic, bumped under row lock
	ExpiresAt  *time.Time `json:"expiresAt,omitempty"`
	Active     bool       `gorm:"not null;default:true" json:"active"`

	Usages []PromoCodeUsage `json:"-"`
}
