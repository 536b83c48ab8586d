package repository

import (
	"mealhub/entity"

	"gorm.io/gorm"
)

type ReviewRepository struct {
	DB *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{DB: db}
}

func (r *ReviewRepository) Create(tx *gorm.DB, review *entity.Review) error {
	return tx.Create(review).Error
}

func (r *ReviewRepository) ExistsForOrder(orderID uint) (bool, error) {
	var cnt int64
	err := r.DB.Model(&entity.Review{}).Where("order_id = ?", orderID).Count(&cnt).Error
	return cnt > 0, err
}

type ratingAggregate struct {
	Avg   float64
	Count int64
}

// RestaurantRating recomputes the running average from the ledger of reviews.
func (r *ReviewRepository) RestaurantRating(tx *gorm.DB, restID uint) (float64, int64, error) {
	var agg ratingAggregate
	err := tx.Model(&entity.Review{}).
		Select("AVG(restaurant_rating) AS avg, COUNT(*) AS count").
		Where("restaurant_id = ?", restID).
		Scan(&agg).Error
	return agg.Avg, agg.Count, err
}

func (r *ReviewRepository) PartnerRating(tx *gorm.DB, partnerID uint) (float64, int64, error) {
	var agg ratingAggregate
	err := tx.Model(&entity.Review{}).
		Select("AVG(partner_rating) AS avg, COUNT(*) AS count").
		Where("partner_id = ?", partnerID).
		Scan(&agg).Error
	return agg.Avg, agg.Count, err
}
