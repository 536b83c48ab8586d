package controllers

import (
	"errors"

	"mealhub/pkg/resp"
	"mealhub/services"

	"github.com/gin-gonic/gin"
)

// writeServiceError maps the service sentinels onto the response envelope so
// every controller reports the same failure the same way.
func writeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		resp.NotFound(c, "not found")
	case errors.Is(err, services.ErrForbidden):
		resp.Forbidden(c, "forbidden")
	case errors.Is(err, services.ErrInvalidLineItem):
		resp.BadRequest(c, "invalid line item")
	case errors.Is(err, services.ErrInvalidRating):
		resp.BadRequest(c, "rating must be between 1 and 5")
	case errors.Is(err, services.ErrOutOfDeliveryZone):
		resp.UnprocessableEntity(c, "out_of_zone", "delivery address is outside the restaurant's zone")
	case errors.Is(err, services.ErrPromoNotActive):
		resp.UnprocessableEntity(c, "promo_not_active", "promo code is not active")
	case errors.Is(err, services.ErrPromoExpired):
		resp.UnprocessableEntity(c, "promo_expired", "promo code has expired")
	case errors.Is(err, services.ErrPromoLimitReached):
		resp.UnprocessableEntity(c, "promo_limit_reached", "promo code usage limit reached")
	case errors.Is(err, services.ErrPromoBelowMinimum):
		resp.UnprocessableEntity(c, "promo_below_minimum", "order subtotal is below the promo minimum")
	case errors.Is(err, services.ErrInvalidTransition):
		resp.Conflict(c, "invalid_transition", "status change is not allowed from the current state")
	case errors.Is(err, services.ErrPreconditionFailed):
		resp.Conflict(c, "precondition_failed", "order or assignment is not in the required state")
	case errors.Is(err, services.ErrInvalidState):
		resp.Conflict(c, "invalid_state", "payment is not in the required state")
	case errors.Is(err, services.ErrAlreadyReviewed):
		resp.Conflict(c, "already_reviewed", "order already has a review")
	case errors.Is(err, services.ErrGateway):
		resp.BadGateway(c, "payment gateway unavailable")
	default:
		resp.ServerError(c, err)
	}
}
