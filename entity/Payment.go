package entity

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Payment struct {
	gorm.Model
	Gateway string `gorm:"not null" json:"gateway"`

	// TxRef is generated here and sent to the gateway; webhooks and polling
	// both resolve payments through it.
	TxRef      string `gorm:"uniqueIndex;not null" json:"txRef"`
	GatewayRef string `json:"gatewayRef"`

	Amount   decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	Currency string          `gorm:"size:8;not null" json:"currency"`

	Status PaymentStatus `gorm:"type:varchar(16);index;not null;default:pending" json:"status"`

	// last raw gateway response, kept verbatim for operators
	Payload string     `json:"-"`
	PaidAt  *time.Time `json:"paidAt,omitempty"`

	OrderID uint  `gorm:"index;not null" json:"orderId"`
	Order   Order `json:"-"`
}
