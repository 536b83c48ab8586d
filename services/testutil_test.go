package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"mealhub/entity"
	"mealhub/pkg/events"
	"mealhub/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&entity.User{},
		&entity.Restaurant{}, &entity.Menu{},
		&entity.Order{}, &entity.OrderItem{},
		&entity.DeliveryAssignment{},
		&entity.Payment{},
		&entity.PromoCode{}, &entity.PromoCodeUsage{},
		&entity.Review{},
	))
	t.Cleanup(func() { sqlDB.Close() })
	return db
}

// recordingBus captures published events synchronously for assertions.
type recordingBus struct {
	mu     sync.Mutex
	events []events.Event
}

func (b *recordingBus) Publish(_ context.Context, e events.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, e)
}

func (b *recordingBus) count(name string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, e := range b.events {
		if e.Name == name {
			n++
		}
	}
	return n
}

func (b *recordingBus) last(name string) (events.Event, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := len(b.events) - 1; i >= 0; i-- {
		if b.events[i].Name == name {
			return b.events[i], true
		}
	}
	return events.Event{}, false
}

// ----- fixtures -----

func seedCustomer(t *testing.T, db *gorm.DB) *entity.User {
	t.Helper()
	u := entity.User{Email: "customer@test.local", FirstName: "Liya", Role: "customer"}
	require.NoError(t, db.Create(&u).Error)
	return &u
}

func seedPartner(t *testing.T, db *gorm.DB, email string, lat, lng float64, available bool) *entity.User {
	t.Helper()
	u := entity.User{
		Email: email, FirstName: "Partner", Role: "partner",
		AvailableForDelivery: available, Lat: &lat, Lng: &lng,
	}
	require.NoError(t, db.Create(&u).Error)
	return &u
}

var ownerSeq int

// seedRestaurant creates a restaurant at Addis Ababa coordinates with a 5 km
// radius and menus priced 40 and 60 (plus one unavailable item).
func seedRestaurant(t *testing.T, db *gorm.DB) *entity.Restaurant {
	t.Helper()
	ownerSeq++
	owner := entity.User{Email: fmt.Sprintf("owner-%d@test.local", ownerSeq), Role: "owner"}
	require.NoError(t, db.Create(&owner).Error)

	rest := entity.Restaurant{
		Name: "Bole Bistro", Lat: 9.03, Lng: 38.74, DeliveryRadiusKm: 5,
		OwnerID: owner.ID,
		Menus: []entity.Menu{
			{Name: "Doro Wat", Price: decimal.RequireFromString("40.00"), Available: true},
			{Name: "Tibs", Price: decimal.RequireFromString("60.00"), Available: true},
			{Name: "Off Menu", Price: decimal.RequireFromString("25.00"), Available: false},
		},
	}
	require.NoError(t, db.Create(&rest).Error)
	require.NoError(t, db.Preload("Menus").First(&rest, rest.ID).Error)
	return &rest
}

func seedPromo(t *testing.T, db *gorm.DB, code string, promoType entity.PromoType, value string, minOrder string, limit int64) *entity.PromoCode {
	t.Helper()
	expires := time.Now().Add(24 * time.Hour)
	p := entity.PromoCode{
		Code:       code,
		PromoType:  promoType,
		Value:      decimal.RequireFromString(value),
		MinOrder:   decimal.RequireFromString(minOrder),
		UsageLimit: limit,
		ExpiresAt:  &expires,
		Active:     true,
	}
	require.NoError(t, db.Create(&p).Error)
	return &p
}

func newOrderService(db *gorm.DB, bus events.Publisher) *OrderService {
	return NewOrderService(
		db,
		repository.NewOrderRepository(db),
		repository.NewRestaurantRepository(db),
		NewPromoService(db, repository.NewPromoRepository(db)),
		bus,
	)
}

func newDispatchService(db *gorm.DB, bus events.Publisher) *DispatchService {
	return NewDispatchService(
		db,
		repository.NewDeliveryRepository(db),
		repository.NewOrderRepository(db),
		repository.NewRestaurantRepository(db),
		repository.NewUserRepository(db),
		bus,
	)
}

// placeOrder creates a valid pending order close to the restaurant.
func placeOrder(t *testing.T, svc *OrderService, customerID uint, rest *entity.Restaurant) *entity.Order {
	t.Helper()
	o, err := svc.Create(customerID, &CreateOrderInput{
		RestaurantID: rest.ID,
		Items: []OrderLineIn{
			{MenuID: rest.Menus[0].ID, Qty: 1},
			{MenuID: rest.Menus[1].ID, Qty: 1},
		},
		DeliveryLat: 9.032, DeliveryLng: 38.742,
		Address: "Bole, Addis Ababa",
	})
	require.NoError(t, err)
	return o
}

// driveOrderTo walks an order along the legal path to the target status.
func driveOrderTo(t *testing.T, svc *OrderService, orderID uint, target entity.OrderStatus) {
	t.Helper()
	path := []entity.OrderStatus{
		entity.OrderAccepted, entity.OrderPreparing, entity.OrderReady,
	}
	for _, st := range path {
		_, err := svc.UpdateStatus(orderID, st)
		require.NoError(t, err)
		if st == target {
			return
		}
	}
}
