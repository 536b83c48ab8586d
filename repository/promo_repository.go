package repository

import (
	"strings"

	"mealhub/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PromoRepository struct {
	DB *gorm.DB
}

func NewPromoRepository(db *gorm.DB) *PromoRepository {
	return &PromoRepository{DB: db}
}

// GetByCodeForUpdate loads the promo under an exclusive row lock. The lock
// lives for the duration of tx, serializing concurrent redemptions of the
// same code so the usage-limit check and the counter bump act as one step.
func (r *PromoRepository) GetByCodeForUpdate(tx *gorm.DB, code string) (*entity.PromoCode, error) {
	var p entity.PromoCode
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("code = ?", strings.ToUpper(strings.TrimSpace(code))).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PromoRepository) IncrementUsage(tx *gorm.DB, promoID uint) error {
	return tx.Model(&entity.PromoCode{}).Where("id = ?", promoID).
		UpdateColumn("used_count", gorm.Expr("used_count + 1")).Error
}

func (r *PromoRepository) CreateUsage(tx *gorm.DB, usage *entity.PromoCodeUsage) error {
	return tx.Create(usage).Error
}
