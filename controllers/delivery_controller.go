package controllers

import (
	"strconv"

	"mealhub/entity"
	"mealhub/pkg/resp"
	"mealhub/services"
	"mealhub/utils"

	"github.com/gin-gonic/gin"
)

type DeliveryController struct {
	Svc *services.DispatchService
}

func NewDeliveryController(svc *services.DispatchService) *DeliveryController {
	return &DeliveryController{Svc: svc}
}

type AssignReq struct {
	PartnerID  uint `json:"partnerId" binding:"required"`
	EtaMinutes *int `json:"etaMinutes"`
}

// POST /admin/orders/:id/assign
func (dc *DeliveryController) Assign(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		resp.BadRequest(c, "invalid order id")
		return
	}

	var req AssignReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	a, err := dc.Svc.Assign(uint(id), req.PartnerID, req.EtaMinutes)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	resp.Created(c, a)
}

// POST /admin/orders/:id/assign-nearest
func (dc *DeliveryController) AssignNearest(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		resp.BadRequest(c, "invalid order id")
		return
	}

	a, err := dc.Svc.AssignNearest(uint(id))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	if a == nil {
		resp.UnprocessableEntity(c, "no_partner_available", "no delivery partner is available right now")
		return
	}
	resp.Created(c, a)
}

// GET /admin/partners/available
func (dc *DeliveryController) AvailablePartners(c *gin.Context) {
	partners, err := dc.Svc.ListAvailablePartners()
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"items": partners})
}

type RespondReq struct {
	Accept *bool `json:"accept" binding:"required"`
}

// PATCH /partner/assignments/:id/respond
func (dc *DeliveryController) Respond(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		resp.BadRequest(c, "invalid assignment id")
		return
	}

	var req RespondReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	a, err := dc.Svc.Respond(uint(id), uid, *req.Accept)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	resp.OK(c, a)
}

type ProgressReq struct {
	Stage string `json:"stage" binding:"required"` // picked_up or delivered
}

// PATCH /partner/orders/:id/progress
func (dc *DeliveryController) Progress(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		resp.BadRequest(c, "invalid order id")
		return
	}

	var req ProgressReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	stage := entity.OrderStatus(req.Stage)
	if stage != entity.OrderPickedUp && stage != entity.OrderDelivered {
		resp.BadRequest(c, "stage must be picked_up or delivered")
		return
	}

	a, err := dc.Svc.UpdateProgress(uint(id), uid, stage)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	resp.OK(c, a)
}
