package repository

import (
	"time"

	"mealhub/entity"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderRepository struct {
	DB *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{DB: db}
}

// ---------------- Orders ----------------

func (r *OrderRepository) CreateOrder(tx *gorm.DB, o *entity.Order) error {
	return tx.Create(o).Error
}

func (r *OrderRepository) GetOrder(orderID uint) (*entity.Order, error) {
	var o entity.Order
	if err := r.DB.First(&o, orderID).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) GetOrderForUser(userID, orderID uint) (*entity.Order, error) {
	var o entity.Order
	if err := r.DB.Preload("Items").
		Where("id = ? AND customer_id = ?", orderID, userID).
		First(&o).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

type OrderSummary struct {
	ID           uint            `json:"id"`
	RestaurantID uint            `json:"restaurantId"`
	Total        decimal.Decimal `json:"total"`
	Status       string          `json:"status"`
	CreatedAt    time.Time       `json:"createdAt"`
}

func (r *OrderRepository) ListOrdersForUser(userID uint, limit int) ([]OrderSummary, error) {
	if limit <= 0 {
		limit = 50
	}
	var out []OrderSummary
	err := r.DB.Model(&entity.Order{}).
		Select("id, restaurant_id, total, status, created_at").
		Where("customer_id = ?", userID).
		Order("id DESC").Limit(limit).
		Scan(&out).Error
	return out, err
}

// UpdateStatusGuard flips the status only if the row still holds the expected
// from-status; the affected count tells the caller whether it lost a race.
func (r *OrderRepository) UpdateStatusGuard(tx *gorm.DB, orderID uint, from, to entity.OrderStatus) (int64, error) {
	res := tx.Model(&entity.Order{}).
		Where("id = ? AND status = ?", orderID, from).
		Update("status", to)
	return res.RowsAffected, res.Error
}

// ---------------- Order items ----------------

func (r *OrderRepository) CreateOrderItem(tx *gorm.DB, oi *entity.OrderItem) error {
	return tx.Create(oi).Error
}

func (r *OrderRepository) GetOrderItems(orderID uint) ([]entity.OrderItem, error) {
	var items []entity.OrderItem
	err := r.DB.Where("order_id = ?", orderID).Find(&items).Error
	return items, err
}
