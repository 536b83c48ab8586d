package entity

import (
	"time"

	"gorm.io/gorm"
)

// DeliveryAssignment links one order to one delivery partner. The unique index
// on OrderID makes re-dispatch an upsert: at most one active assignment per
// order, never duplicates.
type DeliveryAssignment struct {
	gorm.Model
	Status     AssignmentStatus `gorm:"type:varchar(16);not null;default:assigned" json:"status"`
	EtaMinutes int              `json:"etaMinutes"`

	OrderID uint  `gorm:"uniqueIndex;not null" json:"orderId"`
	Order   Order `json:"-"`

	PartnerID uint `gorm:"index;not null" json:"partnerId"`
	Partner   User `gorm:"foreignKey:PartnerID" json:"-"`

	AcceptedAt  *time.Time `json:"acceptedAt,omitempty"`
	RejectedAt  *time.Time `json:"rejectedAt,omitempty"`
	PickedUpAt  *time.Time `json:"pickedUpAt,omitempty"`
	DeliveredAt *time.Time `json:"deliveredAt,omitempty"`
}
