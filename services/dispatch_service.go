package services

import (
	"context"
	"errors"
	"time"

	"mealhub/entity"
	"mealhub/pkg/events"
	"mealhub/pkg/geo"
	"mealhub/repository"

	"gorm.io/gorm"
)

// DispatchService selects a delivery partner for an order and drives the
// assignment lifecycle. The assignment and order state machines touch at
// exactly two points (pickup and delivery) and are updated together there.
type DispatchService struct {
	DB        *gorm.DB
	Repo      *repository.DeliveryRepository
	OrderRepo *repository.OrderRepository
	RestRepo  *repository.RestaurantRepository
	UserRepo  *repository.UserRepository
	Bus       events.Publisher
}

func NewDispatchService(
	db *gorm.DB,
	repo *repository.DeliveryRepository,
	orderRepo *repository.OrderRepository,
	restRepo *repository.RestaurantRepository,
	userRepo *repository.UserRepository,
	bus events.Publisher,
) *DispatchService {
	return &DispatchService{
		DB: db, Repo: repo, OrderRepo: orderRepo,
		RestRepo: restRepo, UserRepo: userRepo, Bus: bus,
	}
}

// AssignNearest picks the available partner closest to the restaurant. On an
// exact distance tie the lower partner id wins, so dispatch is deterministic.
// An empty pool is a legitimate outcome, not an error: (nil, nil).
func (s *DispatchService) AssignNearest(orderID uint) (*entity.DeliveryAssignment, error) {
	order, err := s.OrderRepo.GetOrder(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	rest, err := s.RestRepo.Get(order.RestaurantID)
	if err != nil {
		return nil, err
	}

	partners, err := s.Repo.AvailablePartners()
	if err != nil {
		return nil, err
	}
	if len(partners) == 0 {
		return nil, nil
	}

	var best *entity.User
	bestDist := 0.0
	for i := range partners {
		p := &partners[i]
		d := geo.DistanceKm(*p.Lat, *p.Lng, rest.Lat, rest.Lng)
		if best == nil || d < bestDist {
			best, bestDist = p, d
		}
	}

	eta := geo.EstimateEtaMinutes(geo.DistanceKm(rest.Lat, rest.Lng, order.DeliveryLat, order.DeliveryLng))
	return s.assign(order, best.ID, eta)
}

// Assign is the manual dispatch path: a named partner, optional ETA override.
func (s *DispatchService) Assign(orderID, partnerID uint, etaMinutes *int) (*entity.DeliveryAssignment, error) {
	order, err := s.OrderRepo.GetOrder(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	partner, err := s.UserRepo.Get(partnerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if partner.Role != "partner" {
		return nil, ErrForbidden
	}

	eta := 0
	if etaMinutes != nil {
		eta = *etaMinutes
	} else {
		rest, err := s.RestRepo.Get(order.RestaurantID)
		if err != nil {
			return nil, err
		}
		eta = geo.EstimateEtaMinutes(geo.DistanceKm(rest.Lat, rest.Lng, order.DeliveryLat, order.DeliveryLng))
	}
	return s.assign(order, partnerID, eta)
}

func (s *DispatchService) assign(order *entity.Order, partnerID uint, eta int) (*entity.DeliveryAssignment, error) {
	a := entity.DeliveryAssignment{
		OrderID:    order.ID,
		PartnerID:  partnerID,
		Status:     entity.AssignmentAssigned,
		EtaMinutes: eta,
	}
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		return s.Repo.Upsert(tx, &a)
	})
	if err != nil {
		return nil, err
	}
	// upsert may have recycled an existing row; re-read for the real id
	stored, err := s.Repo.GetByOrderID(order.ID)
	if err != nil {
		return nil, err
	}

	s.Bus.Publish(context.Background(), events.New(events.DeliveryAssigned, map[string]any{
		"orderId":    order.ID,
		"partnerId":  partnerID,
		"etaMinutes": eta,
	}))
	return stored, nil
}

// Respond records the partner's answer to an assignment. Only the partner the
// assignment references may respond.
func (s *DispatchService) Respond(assignmentID, partnerID uint, accept bool) (*entity.DeliveryAssignment, error) {
	a, err := s.Repo.Get(assignmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if a.PartnerID != partnerID {
		return nil, ErrForbidden
	}

	target := entity.AssignmentAccepted
	stamp := "accepted_at"
	if !accept {
		target = entity.AssignmentRejected
		stamp = "rejected_at"
	}

	now := time.Now()
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		affected, err := s.Repo.UpdateStatusGuard(tx, a.ID, entity.AssignmentAssigned, target, stamp, now)
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrInvalidTransition
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	a.Status = target
	if accept {
		a.AcceptedAt = &now
	} else {
		a.RejectedAt = &now
	}
	return a, nil
}

// UpdateProgress is the coupling point between the two state machines:
// picked_up requires the order to be ready, delivered requires picked_up, and
// in both cases the assignment and the order move together or not at all.
func (s *DispatchService) UpdateProgress(orderID, partnerID uint, stage entity.OrderStatus) (*entity.DeliveryAssignment, error) {
	a, err := s.Repo.GetByOrderID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if a.PartnerID != partnerID {
		return nil, ErrForbidden
	}

	var (
		orderFrom, orderTo       entity.OrderStatus
		assignFrom, assignTarget entity.AssignmentStatus
		stamp                    string
	)
	switch stage {
	case entity.OrderPickedUp:
		orderFrom, orderTo = entity.OrderReady, entity.OrderPickedUp
		assignFrom, assignTarget = entity.AssignmentAccepted, entity.AssignmentInTransit
		stamp = "picked_up_at"
	case entity.OrderDelivered:
		orderFrom, orderTo = entity.OrderPickedUp, entity.OrderDelivered
		assignFrom, assignTarget = entity.AssignmentInTransit, entity.AssignmentCompleted
		stamp = "delivered_at"
	default:
		return nil, ErrInvalidTransition
	}

	now := time.Now()
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		affected, err := s.OrderRepo.UpdateStatusGuard(tx, orderID, orderFrom, orderTo)
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrPreconditionFailed
		}
		affected, err = s.Repo.UpdateStatusGuard(tx, a.ID, assignFrom, assignTarget, stamp, now)
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrPreconditionFailed
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	a.Status = assignTarget
	if stage == entity.OrderPickedUp {
		a.PickedUpAt = &now
	} else {
		a.DeliveredAt = &now
	}
	s.Bus.Publish(context.Background(), events.New(events.OrderStatusChanged, map[string]any{
		"orderId": orderID,
		"from":    orderFrom,
		"to":      orderTo,
	}))
	return a, nil
}

// ListAvailablePartners backs the operations view of the dispatch pool.
func (s *DispatchService) ListAvailablePartners() ([]entity.User, error) {
	return s.Repo.AvailablePartners()
}
