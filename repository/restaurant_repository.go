package repository

import (
	"mealhub/entity"

	"gorm.io/gorm"
)

type RestaurantRepository struct {
	DB *gorm.DB
}

func NewRestaurantRepository(db *gorm.DB) *RestaurantRepository {
	return &RestaurantRepository{DB: db}
}

func (r *RestaurantRepository) Get(id uint) (*entity.Restaurant, error) {
	var rest entity.Restaurant
	if err := r.DB.First(&rest, id).Error; err != nil {
		return nil, err
	}
	return &rest, nil
}

func (r *RestaurantRepository) IsOwnedBy(restID, userID uint) (bool, error) {
	var cnt int64
	err := r.DB.Model(&entity.Restaurant{}).
		Where("id = ? AND owner_id = ?", restID, userID).
		Count(&cnt).Error
	return cnt > 0, err
}

// GetAvailableMenus returns the requested menus that belong to the restaurant
// and are currently orderable; a missing id simply isn't in the result.
func (r *RestaurantRepository) GetAvailableMenus(restID uint, menuIDs []uint) ([]entity.Menu, error) {
	var menus []entity.Menu
	err := r.DB.Where("restaurant_id = ? AND id IN ? AND available = ?", restID, menuIDs, true).
		Find(&menus).Error
	return menus, err
}

func (r *RestaurantRepository) UpdateRating(tx *gorm.DB, restID uint, avg string, count int64) error {
	return tx.Model(&entity.Restaurant{}).Where("id = ?", restID).
		Updates(map[string]any{"rating_avg": avg, "rating_count": count}).Error
}
