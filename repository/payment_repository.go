package repository

import (
	"mealhub/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PaymentRepository struct {
	DB *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{DB: db}
}

func (r *PaymentRepository) Create(tx *gorm.DB, p *entity.Payment) error {
	return tx.Create(p).Error
}

func (r *PaymentRepository) Get(id uint) (*entity.Payment, error) {
	var p entity.Payment
	if err := r.DB.First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PaymentRepository) GetByTxRef(txRef string) (*entity.Payment, error) {
	var p entity.Payment
	if err := r.DB.Where("tx_ref = ?", txRef).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// GetPendingByOrder lets a retried create-intent reuse the pending row it left
// behind instead of minting a second payment for the same order.
func (r *PaymentRepository) GetPendingByOrder(orderID uint) (*entity.Payment, error) {
	var p entity.Payment
	err := r.DB.Where("order_id = ? AND status = ?", orderID, entity.PaymentPending).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetForUpdate locks the payment row for the verify cycle: webhook and poller
// racing on the same payment serialize here.
func (r *PaymentRepository) GetForUpdate(tx *gorm.DB, id uint) (*entity.Payment, error) {
	var p entity.Payment
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&p, id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PaymentRepository) Update(tx *gorm.DB, id uint, updates map[string]any) error {
	return tx.Model(&entity.Payment{}).Where("id = ?", id).Updates(updates).Error
}
