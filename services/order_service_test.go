package services

import (
	"testing"

	"mealhub/entity"
	"mealhub/pkg/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateOrderPricesAndInvariant(t *testing.T) {
	db := newTestDB(t)
	bus := &recordingBus{}
	svc := newOrderService(db, bus)
	rest := seedRestaurant(t, db)
	customer := seedCustomer(t, db)

	o, err := svc.Create(customer.ID, &CreateOrderInput{
		RestaurantID: rest.ID,
		Items: []OrderLineIn{
			{MenuID: rest.Menus[0].ID, Qty: 1}, // 40.00
			{MenuID: rest.Menus[1].ID, Qty: 1}, // 60.00
		},
		DeliveryLat: 9.032, DeliveryLng: 38.742,
		Address: "Bole, Addis Ababa",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.OrderPending, o.Status)
	assert.Equal(t, "100", o.Subtotal.String())
	assert.True(t, o.DeliveryFee.IsPositive())
	assert.True(t, o.Total.Equal(o.Subtotal.Add(o.DeliveryFee).Sub(o.Discount)))
	assert.False(t, o.Total.IsNegative())
	assert.Len(t, o.Items, 2)
	assert.Equal(t, 1, bus.count(events.OrderCreated))

	// unit prices are snapshots
	assert.Equal(t, "40", o.Items[0].UnitPrice.String())
	assert.True(t, o.Items[1].LineTotal.Equal(o.Items[1].UnitPrice))
}

func TestCreateOrderAppliesPromo(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderService(db, &recordingBus{})
	rest := seedRestaurant(t, db)
	customer := seedCustomer(t, db)
	seedPromo(t, db, "SAVE10", entity.PromoPercentage, "10", "0", 100)

	o, err := svc.Create(customer.ID, &CreateOrderInput{
		RestaurantID: rest.ID,
		Items: []OrderLineIn{
			{MenuID: rest.Menus[0].ID, Qty: 1},
			{MenuID: rest.Menus[1].ID, Qty: 1},
		},
		DeliveryLat: 9.032, DeliveryLng: 38.742,
		Address:   "Bole",
		PromoCode: "save10", // case-normalized on lookup
	})
	require.NoError(t, err)

	assert.Equal(t, "10", o.Discount.String())
	assert.True(t, o.Total.Equal(o.Subtotal.Add(o.DeliveryFee).Sub(o.Discount)))

	var promo entity.PromoCode
	require.NoError(t, db.Where("code = ?", "SAVE10").First(&promo).Error)
	assert.Equal(t, int64(1), promo.UsedCount)

	var usages int64
	db.Model(&entity.PromoCodeUsage{}).Where("promo_code_id = ?", promo.ID).Count(&usages)
	assert.Equal(t, int64(1), usages)
}

func TestCreateOrderOutOfZoneLeavesNothing(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderService(db, &recordingBus{})
	rest := seedRestaurant(t, db)
	customer := seedCustomer(t, db)

	// ~6.6 km from the restaurant, radius is 5
	_, err := svc.Create(customer.ID, &CreateOrderInput{
		RestaurantID: rest.ID,
		Items:        []OrderLineIn{{MenuID: rest.Menus[0].ID, Qty: 1}},
		DeliveryLat:  9.03, DeliveryLng: 38.80,
		Address: "Too far",
	})
	require.ErrorIs(t, err, ErrOutOfDeliveryZone)

	var orders, items int64
	db.Model(&entity.Order{}).Count(&orders)
	db.Model(&entity.OrderItem{}).Count(&items)
	assert.Zero(t, orders)
	assert.Zero(t, items)
}

func TestCreateOrderPromoFailureRollsBackEverything(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderService(db, &recordingBus{})
	rest := seedRestaurant(t, db)
	customer := seedCustomer(t, db)
	seedPromo(t, db, "BIGSPEND", entity.PromoFixed, "30", "500", 10)

	_, err := svc.Create(customer.ID, &CreateOrderInput{
		RestaurantID: rest.ID,
		Items:        []OrderLineIn{{MenuID: rest.Menus[0].ID, Qty: 1}},
		DeliveryLat:  9.032, DeliveryLng: 38.742,
		Address:   "Bole",
		PromoCode: "BIGSPEND",
	})
	require.ErrorIs(t, err, ErrPromoBelowMinimum)

	var orders int64
	db.Model(&entity.Order{}).Count(&orders)
	assert.Zero(t, orders)

	var promo entity.PromoCode
	require.NoError(t, db.Where("code = ?", "BIGSPEND").First(&promo).Error)
	assert.Zero(t, promo.UsedCount)
}

func TestCreateOrderRejectsBadLineItems(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderService(db, &recordingBus{})
	rest := seedRestaurant(t, db)
	other := seedRestaurant(t, db)
	customer := seedCustomer(t, db)

	// unavailable item
	_, err := svc.Create(customer.ID, &CreateOrderInput{
		RestaurantID: rest.ID,
		Items:        []OrderLineIn{{MenuID: rest.Menus[2].ID, Qty: 1}},
		DeliveryLat:  9.032, DeliveryLng: 38.742, Address: "Bole",
	})
	assert.ErrorIs(t, err, ErrInvalidLineItem)

	// item from another restaurant
	_, err = svc.Create(customer.ID, &CreateOrderInput{
		RestaurantID: rest.ID,
		Items:        []OrderLineIn{{MenuID: other.Menus[0].ID, Qty: 1}},
		DeliveryLat:  9.032, DeliveryLng: 38.742, Address: "Bole",
	})
	assert.ErrorIs(t, err, ErrInvalidLineItem)

	// zero quantity
	_, err = svc.Create(customer.ID, &CreateOrderInput{
		RestaurantID: rest.ID,
		Items:        []OrderLineIn{{MenuID: rest.Menus[0].ID, Qty: 0}},
		DeliveryLat:  9.032, DeliveryLng: 38.742, Address: "Bole",
	})
	assert.ErrorIs(t, err, ErrInvalidLineItem)
}

func TestCreateOrderUnknownRestaurant(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderService(db, &recordingBus{})
	customer := seedCustomer(t, db)

	_, err := svc.Create(customer.ID, &CreateOrderInput{
		RestaurantID: 99999,
		Items:        []OrderLineIn{{MenuID: 1, Qty: 1}},
		DeliveryLat:  9.03, DeliveryLng: 38.74, Address: "Bole",
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateStatusTableIsExhaustive(t *testing.T) {
	all := []entity.OrderStatus{
		entity.OrderPending, entity.OrderAccepted, entity.OrderPreparing,
		entity.OrderReady, entity.OrderPickedUp, entity.OrderDelivered,
		entity.OrderCancelled,
	}
	legal := map[[2]entity.OrderStatus]bool{
		{entity.OrderPending, entity.OrderAccepted}:    true,
		{entity.OrderPending, entity.OrderCancelled}:   true,
		{entity.OrderAccepted, entity.OrderPreparing}:  true,
		{entity.OrderAccepted, entity.OrderCancelled}:  true,
		{entity.OrderPreparing, entity.OrderReady}:     true,
		{entity.OrderPreparing, entity.OrderCancelled}: true,
		{entity.OrderReady, entity.OrderPickedUp}:      true,
		{entity.OrderPickedUp, entity.OrderDelivered}:  true,
	}

	for _, from := range all {
		for _, to := range all {
			got := CanTransition(from, to)
			assert.Equal(t, legal[[2]entity.OrderStatus{from, to}], got,
				"%s -> %s", from, to)
		}
	}
}

func TestUpdateStatusPersistsAndEmits(t *testing.T) {
	db := newTestDB(t)
	bus := &recordingBus{}
	svc := newOrderService(db, bus)
	rest := seedRestaurant(t, db)
	customer := seedCustomer(t, db)
	o := placeOrder(t, svc, customer.ID, rest)

	updated, err := svc.UpdateStatus(o.ID, entity.OrderAccepted)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderAccepted, updated.Status)

	e, ok := bus.last(events.OrderStatusChanged)
	require.True(t, ok)
	assert.Equal(t, entity.OrderPending, e.Payload["from"])
	assert.Equal(t, entity.OrderAccepted, e.Payload["to"])
}

func TestUpdateStatusIllegalLeavesOrderUnchanged(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderService(db, &recordingBus{})
	rest := seedRestaurant(t, db)
	customer := seedCustomer(t, db)
	o := placeOrder(t, svc, customer.ID, rest)

	_, err := svc.UpdateStatus(o.ID, entity.OrderDelivered)
	require.ErrorIs(t, err, ErrInvalidTransition)

	var fresh entity.Order
	require.NoError(t, db.First(&fresh, o.ID).Error)
	assert.Equal(t, entity.OrderPending, fresh.Status)

	// terminal states stay terminal
	_, err = svc.Cancel(o.ID)
	require.NoError(t, err)
	_, err = svc.UpdateStatus(o.ID, entity.OrderAccepted)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestValidateZone(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderService(db, &recordingBus{})
	rest := seedRestaurant(t, db)

	near, err := svc.ValidateZone(rest.ID, 9.032, 38.742)
	require.NoError(t, err)
	assert.True(t, near.WithinZone)
	assert.Equal(t, "fast_lane", near.PriorityTier)
	assert.Equal(t, "Addis Ababa", near.ZoneName)
	assert.GreaterOrEqual(t, near.EtaMinutes, 12)

	far, err := svc.ValidateZone(rest.ID, 9.03, 38.80)
	require.NoError(t, err)
	assert.False(t, far.WithinZone)
	assert.Greater(t, far.DistanceKm, 5.0)

	_, err = svc.ValidateZone(12345, 9.0, 38.7)
	assert.ErrorIs(t, err, ErrNotFound)
}
