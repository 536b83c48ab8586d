package services

import (
	"errors"
	"time"

	"mealhub/entity"
	"mealhub/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PromoService is the discount-code ledger: validation and redemption run
// against the same locked row, so the usage counter can never overshoot the
// limit under concurrent redemptions of one code.
type PromoService struct {
	DB   *gorm.DB
	Repo *repository.PromoRepository
}

func NewPromoService(db *gorm.DB, repo *repository.PromoRepository) *PromoService {
	return &PromoService{DB: db, Repo: repo}
}

// Validate loads the code under an exclusive row lock held by tx and checks
// every redemption rule. Callers must call MarkUsed inside the same tx.
func (s *PromoService) Validate(tx *gorm.DB, code string, subtotal decimal.Decimal, userID uint) (*entity.PromoCode, error) {
	promo, err := s.Repo.GetByCodeForUpdate(tx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if !promo.Active {
		return nil, ErrPromoNotActive
	}
	if promo.ExpiresAt != nil && promo.ExpiresAt.Before(time.Now()) {
		return nil, ErrPromoExpired
	}
	if promo.UsedCount >= promo.UsageLimit {
		return nil, ErrPromoLimitReached
	}
	if subtotal.LessThan(promo.MinOrder) {
		return nil, ErrPromoBelowMinimum
	}
	return promo, nil
}

// CalculateDiscount never exceeds the subtotal, so a fixed-value promo cannot
// push the total below zero.
func (s *PromoService) CalculateDiscount(promo *entity.PromoCode, subtotal decimal.Decimal) decimal.Decimal {
	switch promo.PromoType {
	case entity.PromoPercentage:
		return subtotal.Mul(promo.Value).Div(decimal.NewFromInt(100)).Round(2)
	case entity.PromoFixed:
		if promo.Value.GreaterThan(subtotal) {
			return subtotal
		}
		return promo.Value
	default:
		return decimal.Zero
	}
}

// MarkUsed bumps the counter and appends the usage ledger row. It relies on
// the row lock taken by Validate in the same tx.
func (s *PromoService) MarkUsed(tx *gorm.DB, promo *entity.PromoCode, userID uint, orderID *uint) error {
	if err := s.Repo.IncrementUsage(tx, promo.ID); err != nil {
		return err
	}
	usage := entity.PromoCodeUsage{
		PromoCodeID: promo.ID,
		UserID:      userID,
		OrderID:     orderID,
	}
	return s.Repo.CreateUsage(tx, &usage)
}

type PromoQuote struct {
	Code     string          `json:"code"`
	Discount decimal.Decimal `json:"discount"`
	Total    decimal.Decimal `json:"estimatedSubtotalAfterDiscount"`
}

// Quote answers the standalone validate-promo request without redeeming.
func (s *PromoService) Quote(code string, subtotal decimal.Decimal, userID uint) (*PromoQuote, error) {
	var out PromoQuote
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		promo, err := s.Validate(tx, code, subtotal, userID)
		if err != nil {
			return err
		}
		discount := s.CalculateDiscount(promo, subtotal)
		out = PromoQuote{
			Code:     promo.Code,
			Discount: discount,
			Total:    subtotal.Sub(discount),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
