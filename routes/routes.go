package routes

import (
	"mealhub/configs"
	"mealhub/controllers"
	"mealhub/middlewares"
	"mealhub/pkg/events"
	"mealhub/pkg/gateway"
	"mealhub/repository"
	"mealhub/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Services bundles the wired service layer so main can hand the same
// instances to HTTP routes and event reactors.
type Services struct {
	Order    *services.OrderService
	Promo    *services.PromoService
	Dispatch *services.DispatchService
	Payment  *services.PaymentService
	Review   *services.ReviewService
}

func BuildServices(db *gorm.DB, cfg *configs.Config, gw gateway.Gateway, bus events.Publisher) *Services {
	orderRepo := repository.NewOrderRepository(db)
	restRepo := repository.NewRestaurantRepository(db)
	promoRepo := repository.NewPromoRepository(db)
	deliveryRepo := repository.NewDeliveryRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	userRepo := repository.NewUserRepository(db)

	promo := services.NewPromoService(db, promoRepo)
	return &Services{
		Order:    services.NewOrderService(db, orderRepo, restRepo, promo, bus),
		Promo:    promo,
		Dispatch: services.NewDispatchService(db, deliveryRepo, orderRepo, restRepo, userRepo, bus),
		Payment: services.NewPaymentService(db, paymentRepo, orderRepo, userRepo, gw, bus, services.PaymentConfig{
			Currency:         cfg.Currency,
			PlaceholderEmail: cfg.PlaceholderEmail,
			PublicBaseURL:    cfg.PublicBaseURL,
			FrontendURL:      cfg.FrontendURL,
		}),
		Review: services.NewReviewService(db, reviewRepo, orderRepo, deliveryRepo, restRepo, userRepo),
	}
}

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *configs.Config, svcs *Services) {
	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	restRepo := repository.NewRestaurantRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	authCtrl := controllers.NewAuthController(db, cfg)
	orderCtrl := controllers.NewOrderController(svcs.Order, restRepo)
	deliveryCtrl := controllers.NewDeliveryController(svcs.Dispatch)
	paymentCtrl := controllers.NewPaymentController(svcs.Payment, orderRepo)
	promoCtrl := controllers.NewPromoController(db, svcs.Promo)
	reviewCtrl := controllers.NewReviewController(svcs.Review)

	secret := cfg.JWTSecret

	// Auth (public)
	a := r.Group("/auth")
	{
		a.POST("/register", authCtrl.Register)
		a.POST("/login", authCtrl.Login)
	}
	a.GET("/me", middlewares.AuthMiddleware(secret), authCtrl.Me)

	// Public
	r.GET("/restaurants/:id/zone", orderCtrl.ZoneCheck)
	r.POST("/payments/webhook", paymentCtrl.Webhook)

	// Customer
	u := r.Group("/", middlewares.AuthMiddleware(secret))
	{
		u.POST("/orders", orderCtrl.Create)
		u.GET("/orders/:id", orderCtrl.Detail)
		u.PATCH("/orders/:id/cancel", orderCtrl.Cancel)
		u.POST("/orders/:id/payment-intent", paymentCtrl.CreateIntent)
		u.POST("/orders/:id/review", reviewCtrl.Create)
		u.GET("/payments/:id/verify", paymentCtrl.Verify)
		u.POST("/promos/quote", promoCtrl.Quote)
	}

	// Profile
	profile := r.Group("/profile", middlewares.AuthMiddleware(secret))
	{
		profile.GET("/orders", orderCtrl.ListForMe)
	}

	// Restaurant owner / admin order flow
	owner := r.Group("/", middlewares.AuthMiddleware(secret, "owner", "admin"))
	{
		owner.PATCH("/orders/:id/status", orderCtrl.UpdateStatus)
	}

	// Delivery partner
	partner := r.Group("/partner", middlewares.AuthMiddleware(secret, "partner", "admin"))
	{
		partner.PATCH("/availability", authCtrl.UpdateAvailability)
		partner.PATCH("/assignments/:id/respond", deliveryCtrl.Respond)
		partner.PATCH("/orders/:id/progress", deliveryCtrl.Progress)
	}

	// Admin
	admin := r.Group("/admin", middlewares.AuthMiddleware(secret, "admin"))
	{
		admin.POST("/orders/:id/assign", deliveryCtrl.Assign)
		admin.POST("/orders/:id/assign-nearest", deliveryCtrl.AssignNearest)
		admin.GET("/partners/available", deliveryCtrl.AvailablePartners)
		admin.POST("/promos", promoCtrl.Create)
		admin.PATCH("/promos/:code/deactivate", promoCtrl.Deactivate)
		admin.POST("/payments/:id/refund", paymentCtrl.Refund)
	}
}
