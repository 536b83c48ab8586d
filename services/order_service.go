package services

import (
	"context"
	"errors"

	"mealhub/entity"
	"mealhub/pkg/events"
	"mealhub/pkg/geo"
	"mealhub/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const maxOrderLines = 100

type OrderService struct {
	DB       *gorm.DB
	Repo     *repository.OrderRepository
	RestRepo *repository.RestaurantRepository
	Promo    *PromoService
	Bus      events.Publisher
}

func NewOrderService(
	db *gorm.DB,
	repo *repository.OrderRepository,
	restRepo *repository.RestaurantRepository,
	promo *PromoService,
	bus events.Publisher,
) *OrderService {
	return &OrderService{DB: db, Repo: repo, RestRepo: restRepo, Promo: promo, Bus: bus}
}

// ----- DTOs from controller -----

type OrderLineIn struct {
	MenuID uint `json:"menuId" binding:"required"`
	Qty    int  `json:"qty" binding:"required,min=1"`
}

type CreateOrderInput struct {
	RestaurantID uint          `json:"restaurantId" binding:"required"`
	Items        []OrderLineIn `json:"items" binding:"required,min=1,max=100,dive"`
	DeliveryLat  float64       `json:"deliveryLat" binding:"required"`
	DeliveryLng  float64       `json:"deliveryLng" binding:"required"`
	Address      string        `json:"address" binding:"required"`
	Notes        string        `json:"notes"`
	PromoCode    string        `json:"promoCode"`
}

// Create turns a cart into a priced, geofenced, promo-adjusted order. The
// whole algorithm runs inside one transaction: a failure at any step leaves
// no order, no items and no promo redemption behind.
func (s *OrderService) Create(customerID uint, in *CreateOrderInput) (*entity.Order, error) {
	if len(in.Items) == 0 || len(in.Items) > maxOrderLines {
		return nil, ErrInvalidLineItem
	}
	for _, it := range in.Items {
		if it.Qty < 1 {
			return nil, ErrInvalidLineItem
		}
	}

	var order entity.Order
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var rest entity.Restaurant
		if err := tx.First(&rest, in.RestaurantID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		distance := geo.DistanceKm(in.DeliveryLat, in.DeliveryLng, rest.Lat, rest.Lng)
		if distance > rest.DeliveryRadiusKm {
			return ErrOutOfDeliveryZone
		}

		menuIDs := make([]uint, 0, len(in.Items))
		for _, it := range in.Items {
			menuIDs = append(menuIDs, it.MenuID)
		}
		var menus []entity.Menu
		if err := tx.Where("restaurant_id = ? AND id IN ? AND available = ?",
			rest.ID, menuIDs, true).Find(&menus).Error; err != nil {
			return err
		}
		priceByMenu := make(map[uint]decimal.Decimal, len(menus))
		for _, m := range menus {
			priceByMenu[m.ID] = m.Price
		}

		// snapshot prices now; a later menu edit must not touch this order
		subtotal := decimal.Zero
		lines := make([]entity.OrderItem, 0, len(in.Items))
		for _, it := range in.Items {
			unit, ok := priceByMenu[it.MenuID]
			if !ok {
				return ErrInvalidLineItem
			}
			lineTotal := unit.Mul(decimal.NewFromInt(int64(it.Qty)))
			subtotal = subtotal.Add(lineTotal)
			lines = append(lines, entity.OrderItem{
				MenuID: it.MenuID, Qty: it.Qty,
				UnitPrice: unit, LineTotal: lineTotal,
			})
		}

		var promo *entity.PromoCode
		discount := decimal.Zero
		if in.PromoCode != "" {
			var err error
			promo, err = s.Promo.Validate(tx, in.PromoCode, subtotal, customerID)
			if err != nil {
				return err
			}
			discount = s.Promo.CalculateDiscount(promo, subtotal)
		}

		fee := decimal.NewFromFloat(geo.EstimateDeliveryFee(distance)).Round(2)
		total := subtotal.Add(fee).Sub(discount)
		if total.IsNegative() {
			total = decimal.Zero
		}

		order = entity.Order{
			Status:          entity.OrderPending,
			Subtotal:        subtotal,
			DeliveryFee:     fee,
			Discount:        discount,
			Total:           total,
			DeliveryLat:     in.DeliveryLat,
			DeliveryLng:     in.DeliveryLng,
			DeliveryAddress: in.Address,
			Notes:           in.Notes,
			CustomerID:      customerID,
			RestaurantID:    rest.ID,
		}
		if promo != nil {
			order.PromoCodeID = &promo.ID
		}
		if err := s.Repo.CreateOrder(tx, &order); err != nil {
			return err
		}

		for i := range lines {
			lines[i].OrderID = order.ID
			if err := s.Repo.CreateOrderItem(tx, &lines[i]); err != nil {
				return err
			}
		}
		order.Items = lines

		if promo != nil {
			if err := s.Promo.MarkUsed(tx, promo, customerID, &order.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.Bus.Publish(context.Background(), events.New(events.OrderCreated, map[string]any{
		"orderId":      order.ID,
		"customerId":   order.CustomerID,
		"restaurantId": order.RestaurantID,
		"total":        order.Total,
	}))
	return &order, nil
}

// UpdateStatus validates the move against the transition table, persists it
// with a guarded update and reports the change. An illegal edge leaves the
// order untouched.
func (s *OrderService) UpdateStatus(orderID uint, target entity.OrderStatus) (*entity.Order, error) {
	if !target.Valid() {
		return nil, ErrInvalidTransition
	}

	o, err := s.Repo.GetOrder(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	from := o.Status
	if !CanTransition(from, target) {
		return nil, ErrInvalidTransition
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		affected, err := s.Repo.UpdateStatusGuard(tx, o.ID, from, target)
		if err != nil {
			return err
		}
		if affected == 0 {
			// lost a race: someone moved the order first
			return ErrInvalidTransition
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	o.Status = target
	s.Bus.Publish(context.Background(), events.New(events.OrderStatusChanged, map[string]any{
		"orderId": o.ID,
		"from":    from,
		"to":      target,
	}))
	return o, nil
}

func (s *OrderService) Cancel(orderID uint) (*entity.Order, error) {
	return s.UpdateStatus(orderID, entity.OrderCancelled)
}

// ----- read surface -----

func (s *OrderService) ListForUser(userID uint, limit int) ([]repository.OrderSummary, error) {
	return s.Repo.ListOrdersForUser(userID, limit)
}

func (s *OrderService) DetailForUser(userID, orderID uint) (*entity.Order, error) {
	o, err := s.Repo.GetOrderForUser(userID, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return o, nil
}
