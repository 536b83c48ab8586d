package services

import "errors"

// Sentinel errors shared across the orchestrators; controllers match them
// with errors.Is and map them onto HTTP statuses.
var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidLineItem   = errors.New("menu item unavailable or not in this restaurant")
	ErrOutOfDeliveryZone = errors.New("delivery address outside the restaurant's delivery zone")

	ErrPromoNotActive    = errors.New("promo code is not active")
	ErrPromoExpired      = errors.New("promo code has expired")
	ErrPromoLimitReached = errors.New("promo code usage limit reached")
	ErrPromoBelowMinimum = errors.New("order subtotal below the promo minimum")

	ErrInvalidTransition  = errors.New("illegal status transition")
	ErrPreconditionFailed = errors.New("order is not in the required status")
	ErrForbidden          = errors.New("forbidden")

	// ErrGateway marks upstream payment-provider failures; safe to retry.
	ErrGateway      = errors.New("payment gateway unavailable")
	ErrInvalidState = errors.New("operation not allowed in the current payment state")

	ErrAlreadyReviewed = errors.New("order already reviewed")
	ErrInvalidRating   = errors.New("rating must be between 1 and 5")
)
