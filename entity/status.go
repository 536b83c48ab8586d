package entity

// Statuses are string-backed enums persisted as their lowercase tag,
// so new values can land in storage without a schema change.

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderAccepted  OrderStatus = "accepted"
	OrderPreparing OrderStatus = "preparing"
	OrderReady     OrderStatus = "ready"
	OrderPickedUp  OrderStatus = "picked_up"
	OrderDelivered OrderStatus = "delivered"
	OrderCancelled OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderAccepted, OrderPreparing, OrderReady,
		OrderPickedUp, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

type AssignmentStatus string

const (
	AssignmentAssigned  AssignmentStatus = "assigned"
	AssignmentAccepted  AssignmentStatus = "accepted"
	AssignmentRejected  AssignmentStatus = "rejected"
	AssignmentInTransit AssignmentStatus = "in_transit"
	AssignmentCompleted AssignmentStatus = "completed"
)

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

type PromoType string

const (
	PromoPercentage PromoType = "percentage"
	PromoFixed      PromoType = "fixed"
)
