package services

import (
	"errors"
	"fmt"

	"mealhub/entity"
	"mealhub/repository"

	"gorm.io/gorm"
)

type ReviewService struct {
	DB           *gorm.DB
	Repo         *repository.ReviewRepository
	OrderRepo    *repository.OrderRepository
	DeliveryRepo *repository.DeliveryRepository
	RestRepo     *repository.RestaurantRepository
	UserRepo     *repository.UserRepository
}

func NewReviewService(
	db *gorm.DB,
	repo *repository.ReviewRepository,
	orderRepo *repository.OrderRepository,
	deliveryRepo *repository.DeliveryRepository,
	restRepo *repository.RestaurantRepository,
	userRepo *repository.UserRepository,
) *ReviewService {
	return &ReviewService{
		DB: db, Repo: repo, OrderRepo: orderRepo,
		DeliveryRepo: deliveryRepo, RestRepo: restRepo, UserRepo: userRepo,
	}
}

type CreateReviewInput struct {
	RestaurantRating int    `json:"restaurantRating" binding:"required,min=1,max=5"`
	PartnerRating    int    `json:"partnerRating" binding:"required,min=1,max=5"`
	Comment          string `json:"comment"`
}

// Create records the one review an order may receive and refreshes the
// restaurant's and partner's running averages in the same transaction.
func (s *ReviewService) Create(customerID, orderID uint, in *CreateReviewInput) (*entity.Review, error) {
	if in.RestaurantRating < 1 || in.RestaurantRating > 5 ||
		in.PartnerRating < 1 || in.PartnerRating > 5 {
		return nil, ErrInvalidRating
	}

	order, err := s.OrderRepo.GetOrder(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if order.CustomerID != customerID {
		return nil, ErrForbidden
	}
	if order.Status != entity.OrderDelivered {
		return nil, ErrPreconditionFailed
	}

	assignment, err := s.DeliveryRepo.GetByOrderID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPreconditionFailed
		}
		return nil, err
	}

	review := entity.Review{
		RestaurantRating: in.RestaurantRating,
		PartnerRating:    in.PartnerRating,
		Comment:          in.Comment,
		OrderID:          orderID,
		CustomerID:       customerID,
		RestaurantID:     order.RestaurantID,
		PartnerID:        assignment.PartnerID,
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.Repo.Create(tx, &review); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrAlreadyReviewed
			}
			return err
		}

		avg, count, err := s.Repo.RestaurantRating(tx, order.RestaurantID)
		if err != nil {
			return err
		}
		if err := s.RestRepo.UpdateRating(tx, order.RestaurantID, formatAvg(avg), count); err != nil {
			return err
		}

		avg, count, err = s.Repo.PartnerRating(tx, assignment.PartnerID)
		if err != nil {
			return err
		}
		return s.UserRepo.UpdateRating(tx, assignment.PartnerID, formatAvg(avg), count)
	})
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func formatAvg(avg float64) string {
	return fmt.Sprintf("%.2f", avg)
}
