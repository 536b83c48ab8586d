package controllers

import (
	"errors"
	"strings"
	"time"

	"mealhub/entity"
	"mealhub/pkg/resp"
	"mealhub/services"
	"mealhub/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PromoController struct {
	DB  *gorm.DB
	Svc *services.PromoService
}

func NewPromoController(db *gorm.DB, svc *services.PromoService) *PromoController {
	return &PromoController{DB: db, Svc: svc}
}

type PromoQuoteReq struct {
	Code     string          `json:"code" binding:"required"`
	Subtotal decimal.Decimal `json:"subtotal" binding:"required"`
}

// POST /promos/quote
func (pc *PromoController) Quote(c *gin.Context) {
	uid := utils.CurrentUserID(c)

	var req PromoQuoteReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	quote, err := pc.Svc.Quote(req.Code, req.Subtotal, uid)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	resp.OK(c, quote)
}

type CreatePromoReq struct {
	Code       string          `json:"code" binding:"required"`
	PromoType  string          `json:"promoType" binding:"required,oneof=percentage fixed"`
	Value      decimal.Decimal `json:"value" binding:"required"`
	MinOrder   decimal.Decimal `json:"minOrder"`
	UsageLimit int64           `json:"usageLimit" binding:"required,min=1"`
	ExpiresAt  *time.Time      `json:"expiresAt"`
}

// POST /admin/promos
func (pc *PromoController) Create(c *gin.Context) {
	var req CreatePromoReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if req.Value.IsNegative() || req.Value.IsZero() {
		resp.BadRequest(c, "value must be positive")
		return
	}

	promo := entity.PromoCode{
		Code:       strings.ToUpper(strings.TrimSpace(req.Code)),
		PromoType:  entity.PromoType(req.PromoType),
		Value:      req.Value,
		MinOrder:   req.MinOrder,
		UsageLimit: req.UsageLimit,
		ExpiresAt:  req.ExpiresAt,
		Active:     true,
	}
	if err := pc.DB.Create(&promo).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			resp.Conflict(c, "duplicate_code", "promo code already exists")
			return
		}
		resp.ServerError(c, err)
		return
	}
	resp.Created(c, promo)
}

// PATCH /admin/promos/:code/deactivate
func (pc *PromoController) Deactivate(c *gin.Context) {
	code := strings.ToUpper(strings.TrimSpace(c.Param("code")))

	res := pc.DB.Model(&entity.PromoCode{}).Where("code = ?", code).Update("active", false)
	if res.Error != nil {
		resp.ServerError(c, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		resp.NotFound(c, "promo code not found")
		return
	}
	resp.OK(c, gin.H{"code": code, "active": false})
}
