package repository

import (
	"time"

	"mealhub/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DeliveryRepository struct {
	DB *gorm.DB
}

func NewDeliveryRepository(db *gorm.DB) *DeliveryRepository {
	return &DeliveryRepository{DB: db}
}

// AvailablePartners is the dispatch candidate pool: partner users flagged
// available with known coordinates, in id order.
func (r *DeliveryRepository) AvailablePartners() ([]entity.User, error) {
	var partners []entity.User
	err := r.DB.Where("role = ? AND available_for_delivery = ? AND lat IS NOT NULL AND lng IS NOT NULL",
		"partner", true).
		Order("id ASC").
		Find(&partners).Error
	return partners, err
}

// Upsert keys the assignment on order_id, so re-running dispatch overwrites
// the previous assignment instead of duplicating it.
func (r *DeliveryRepository) Upsert(tx *gorm.DB, a *entity.DeliveryAssignment) error {
	return tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "order_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"partner_id", "status", "eta_minutes", "updated_at",
			"accepted_at", "rejected_at", "picked_up_at", "delivered_at",
		}),
	}).Create(a).Error
}

func (r *DeliveryRepository) Get(id uint) (*entity.DeliveryAssignment, error) {
	var a entity.DeliveryAssignment
	if err := r.DB.First(&a, id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *DeliveryRepository) GetByOrderID(orderID uint) (*entity.DeliveryAssignment, error) {
	var a entity.DeliveryAssignment
	if err := r.DB.Where("order_id = ?", orderID).First(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

// UpdateStatusGuard mirrors the order-side guard: transition fires only from
// the expected status, optionally stamping a timestamp column.
func (r *DeliveryRepository) UpdateStatusGuard(tx *gorm.DB, id uint, from, to entity.AssignmentStatus, stampColumn string, at time.Time) (int64, error) {
	updates := map[string]any{"status": to}
	if stampColumn != "" {
		updates[stampColumn] = at
	}
	res := tx.Model(&entity.DeliveryAssignment{}).
		Where("id = ? AND status = ?", id, from).
		Updates(updates)
	return res.RowsAffected, res.Error
}
