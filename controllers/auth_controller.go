package controllers

import (
	"strings"

	"mealhub/configs"
	"mealhub/entity"
	"mealhub/pkg/resp"
	"mealhub/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type RegisterRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=6"`
	FirstName   string `json:"firstName" binding:"required"`
	LastName    string `json:"lastName" binding:"required"`
	PhoneNumber string `json:"phoneNumber"`
	Role        string `json:"role"` // customer (default) or partner
}
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthController struct {
	DB  *gorm.DB
	Cfg *configs.Config
}

func NewAuthController(db *gorm.DB, cfg *configs.Config) *AuthController {
	return &AuthController{DB: db, Cfg: cfg}
}

// POST /auth/register
func (a *AuthController) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	role := req.Role
	if role == "" {
		role = "customer"
	}
	if role != "customer" && role != "partner" {
		resp.BadRequest(c, "role must be customer or partner")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	var exist entity.User
	if err := a.DB.Where("email = ?", email).First(&exist).Error; err == nil {
		resp.BadRequest(c, "email already registered")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		resp.ServerError(c, err)
		return
	}

	u := entity.User{
		Email:       email,
		Password:    string(hash),
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
		Role:        role,
	}
	if err := a.DB.Create(&u).Error; err != nil {
		resp.ServerError(c, err)
		return
	}

	token, err := utils.GenerateToken(u.ID, u.Role, a.Cfg.JWTSecret, a.Cfg.JWTTTL)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.Created(c, gin.H{"token": token, "user": u})
}

// POST /auth/login
func (a *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	var u entity.User
	if err := a.DB.Where("email = ?", strings.ToLower(strings.TrimSpace(req.Email))).First(&u).Error; err != nil {
		resp.Unauthorized(c, "invalid email or password")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(req.Password)); err != nil {
		resp.Unauthorized(c, "invalid email or password")
		return
	}

	token, err := utils.GenerateToken(u.ID, u.Role, a.Cfg.JWTSecret, a.Cfg.JWTTTL)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"token": token, "user": u})
}

// GET /auth/me
func (a *AuthController) Me(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	var u entity.User
	if err := a.DB.First(&u, uid).Error; err != nil {
		resp.NotFound(c, "user not found")
		return
	}
	resp.OK(c, u)
}

type AvailabilityRequest struct {
	Available bool     `json:"available"`
	Lat       *float64 `json:"lat"`
	Lng       *float64 `json:"lng"`
}

// PATCH /partner/availability
func (a *AuthController) UpdateAvailability(c *gin.Context) {
	uid := utils.CurrentUserID(c)

	var req AvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	updates := map[string]any{"available_for_delivery": req.Available}
	if req.Lat != nil {
		updates["lat"] = *req.Lat
	}
	if req.Lng != nil {
		updates["lng"] = *req.Lng
	}
	if err := a.DB.Model(&entity.User{}).Where("id = ?", uid).Updates(updates).Error; err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"available": req.Available})
}
