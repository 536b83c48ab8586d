package controllers

import (
	"strconv"

	"mealhub/pkg/resp"
	"mealhub/repository"
	"mealhub/services"
	"mealhub/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type PaymentController struct {
	Svc       *services.PaymentService
	OrderRepo *repository.OrderRepository
}

func NewPaymentController(svc *services.PaymentService, orderRepo *repository.OrderRepository) *PaymentController {
	return &PaymentController{Svc: svc, OrderRepo: orderRepo}
}

// POST /orders/:id/payment-intent
func (pc *PaymentController) CreateIntent(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	role := utils.CurrentRole(c)
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		resp.BadRequest(c, "invalid order id")
		return
	}

	order, err := pc.OrderRepo.GetOrder(uint(id))
	if err != nil {
		resp.NotFound(c, "order not found")
		return
	}
	if role != "admin" && order.CustomerID != uid {
		resp.Forbidden(c, "not your order")
		return
	}

	out, err := pc.Svc.CreateIntent(c.Request.Context(), order.ID, c.GetHeader("Origin"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	resp.Created(c, out)
}

// GET /payments/:id/verify
func (pc *PaymentController) Verify(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	role := utils.CurrentRole(c)
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		resp.BadRequest(c, "invalid payment id")
		return
	}

	p, err := pc.Svc.Verify(c.Request.Context(), uint(id))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	if role != "admin" {
		order, err := pc.OrderRepo.GetOrder(p.OrderID)
		if err != nil || order.CustomerID != uid {
			resp.Forbidden(c, "not your payment")
			return
		}
	}
	resp.OK(c, p)
}

type webhookBody struct {
	TxRef  string `json:"tx_ref"`
	TrxRef string `json:"trx_ref"`
}

// POST /payments/webhook
//
// The callback body is untrusted: only the reference is read, the status
// comes from the gateway's verify API. Always answers 200 so the provider
// stops retrying; a failed verify is retried on the next callback or poll.
func (pc *PaymentController) Webhook(c *gin.Context) {
	var body webhookBody
	if err := c.ShouldBindJSON(&body); err != nil {
		resp.OK(c, gin.H{"received": true})
		return
	}
	txRef := body.TxRef
	if txRef == "" {
		txRef = body.TrxRef
	}
	if txRef == "" {
		resp.OK(c, gin.H{"received": true})
		return
	}

	if _, err := pc.Svc.VerifyByTxRef(c.Request.Context(), txRef); err != nil {
		logrus.WithError(err).WithField("txRef", txRef).Warn("webhook verify")
	}
	resp.OK(c, gin.H{"received": true})
}

type RefundReq struct {
	Reason string `json:"reason" binding:"required"`
}

// POST /admin/payments/:id/refund
func (pc *PaymentController) Refund(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		resp.BadRequest(c, "invalid payment id")
		return
	}

	var req RefundReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	p, err := pc.Svc.Refund(uint(id), req.Reason)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	resp.OK(c, p)
}
