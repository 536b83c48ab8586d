package controllers

import (
	"strconv"

	"mealhub/entity"
	"mealhub/pkg/resp"
	"mealhub/repository"
	"mealhub/services"
	"mealhub/utils"

	"github.com/gin-gonic/gin"
)

type OrderController struct {
	Svc      *services.OrderService
	RestRepo *repository.RestaurantRepository
}

func NewOrderController(svc *services.OrderService, restRepo *repository.RestaurantRepository) *OrderController {
	return &OrderController{Svc: svc, RestRepo: restRepo}
}

// POST /orders
func (oc *OrderController) Create(c *gin.Context) {
	uid := utils.CurrentUserID(c)

	var in services.CreateOrderInput
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	order, err := oc.Svc.Create(uid, &in)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	resp.Created(c, order)
}

// GET /orders/:id
func (oc *OrderController) Detail(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		resp.BadRequest(c, "invalid order id")
		return
	}

	order, err := oc.Svc.DetailForUser(uid, uint(id))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	resp.OK(c, order)
}

// GET /profile/orders
func (oc *OrderController) ListForMe(c *gin.Context) {
	uid := utils.CurrentUserID(c)

	items, err := oc.Svc.ListForUser(uid, 50)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"items": items})
}

type UpdateOrderStatusReq struct {
	Status string `json:"status" binding:"required"`
}

// PATCH /orders/:id/status (restaurant owner or admin)
func (oc *OrderController) UpdateStatus(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	role := utils.CurrentRole(c)
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		resp.BadRequest(c, "invalid order id")
		return
	}

	var req UpdateOrderStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	target := entity.OrderStatus(req.Status)
	if !target.Valid() {
		resp.BadRequest(c, "unknown status")
		return
	}

	if role == "owner" {
		order, err := oc.Svc.Repo.GetOrder(uint(id))
		if err != nil {
			resp.NotFound(c, "order not found")
			return
		}
		owned, err := oc.RestRepo.IsOwnedBy(order.RestaurantID, uid)
		if err != nil {
			resp.ServerError(c, err)
			return
		}
		if !owned {
			resp.Forbidden(c, "not your restaurant's order")
			return
		}
	}

	order, err := oc.Svc.UpdateStatus(uint(id), target)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	resp.OK(c, order)
}

// PATCH /orders/:id/cancel (the customer who placed it)
func (oc *OrderController) Cancel(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		resp.BadRequest(c, "invalid order id")
		return
	}

	if _, err := oc.Svc.DetailForUser(uid, uint(id)); err != nil {
		writeServiceError(c, err)
		return
	}
	order, err := oc.Svc.Cancel(uint(id))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	resp.OK(c, order)
}

// GET /restaurants/:id/zone?lat=&lng=
func (oc *OrderController) ZoneCheck(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		resp.BadRequest(c, "invalid restaurant id")
		return
	}
	lat, errLat := strconv.ParseFloat(c.Query("lat"), 64)
	lng, errLng := strconv.ParseFloat(c.Query("lng"), 64)
	if errLat != nil || errLng != nil {
		resp.BadRequest(c, "lat and lng are required")
		return
	}

	check, err := oc.Svc.ValidateZone(uint(id), lat, lng)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	resp.OK(c, check)
}
