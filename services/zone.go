package services

import (
	"errors"

	"mealhub/pkg/geo"

	"gorm.io/gorm"
)

type ZoneCheck struct {
	WithinZone   bool    `json:"withinZone"`
	DistanceKm   float64 `json:"distanceKm"`
	EtaMinutes   int     `json:"etaMinutes"`
	Fee          float64 `json:"fee"`
	ZoneName     string  `json:"zoneName"`
	PriorityTier string  `json:"priorityTier"`
}

// ValidateZone answers "can this restaurant deliver here, and on what terms"
// without touching any order state.
func (s *OrderService) ValidateZone(restID uint, lat, lng float64) (*ZoneCheck, error) {
	rest, err := s.RestRepo.Get(restID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	distance := geo.DistanceKm(lat, lng, rest.Lat, rest.Lng)
	score := geo.RouteEfficiencyScore(distance, rest.DeliveryRadiusKm)

	return &ZoneCheck{
		WithinZone:   distance <= rest.DeliveryRadiusKm,
		DistanceKm:   distance,
		EtaMinutes:   geo.EstimateEtaMinutes(distance),
		Fee:          geo.EstimateDeliveryFee(distance),
		ZoneName:     geo.NearestCityName(lat, lng),
		PriorityTier: geo.PriorityTier(score),
	}, nil
}
