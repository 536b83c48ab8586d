package repository

import (
	"mealhub/entity"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Get(id uint) (*entity.User, error) {
	var u entity.User
	if err := r.DB.First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) UpdateRating(tx *gorm.DB, userID uint, avg string, count int64) error {
	return tx.Model(&entity.User{}).Where("id = ?", userID).
		Updates(map[string]any{"rating_avg": avg, "rating_count": count}).Error
}
