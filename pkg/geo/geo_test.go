package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistanceKmZeroAndSymmetry(t *testing.T) {
	assert.Equal(t, 0.0, DistanceKm(9.03, 38.74, 9.03, 38.74))

	ab := DistanceKm(9.03, 38.74, 9.6009, 41.8501)
	ba := DistanceKm(9.6009, 41.8501, 9.03, 38.74)
	assert.InDelta(t, ab, ba, 1e-9)
}

func TestDistanceKmKnownPoints(t *testing.T) {
	// ~0.06 deg of longitude at lat 9 is ~6.6 km
	d := DistanceKm(9.03, 38.74, 9.03, 38.80)
	assert.InDelta(t, 6.6, d, 0.2)

	near := DistanceKm(9.03, 38.74, 9.032, 38.742)
	assert.Less(t, near, 0.5)
}

func TestEstimateEtaMinutes(t *testing.T) {
	tests := []struct {
		distance float64
		want     int
	}{
		{0, 12},      // floor
		{0.3, 12},    // still under the floor
		{2, 18},      // 2*4.2+10 = 18.4 -> 18
		{10, 52},     // 10*4.2+10 = 52
		{12.5, 63},   // 62.5 -> 63
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, EstimateEtaMinutes(tt.distance), "distance %v", tt.distance)
	}
}

func TestEstimateDeliveryFee(t *testing.T) {
	assert.Equal(t, 2.0, EstimateDeliveryFee(0))
	assert.Equal(t, 1.5, EstimateDeliveryFee(-10)) // floor guards bad input
	assert.Equal(t, 3.6, EstimateDeliveryFee(2))
	assert.Equal(t, 4.12, EstimateDeliveryFee(2.65))
}

func TestRouteEfficiencyScore(t *testing.T) {
	assert.Equal(t, 0.0, RouteEfficiencyScore(3, 0))
	assert.Equal(t, 0.0, RouteEfficiencyScore(3, -1))
	assert.Equal(t, 100.0, RouteEfficiencyScore(0, 5))
	assert.Equal(t, 30.0, RouteEfficiencyScore(5, 5))
	assert.Equal(t, 30.0, RouteEfficiencyScore(50, 5)) // capped at the edge
	assert.InDelta(t, 65.0, RouteEfficiencyScore(2.5, 5), 1e-9)
}

func TestPriorityTier(t *testing.T) {
	assert.Equal(t, "fast_lane", PriorityTier(95.6))
	assert.Equal(t, "fast_lane", PriorityTier(80))
	assert.Equal(t, "standard", PriorityTier(65))
	assert.Equal(t, "outer_ring", PriorityTier(30))
}

func TestZoneScenario(t *testing.T) {
	// delivery just around the corner from the restaurant
	d := DistanceKm(9.03, 38.74, 9.032, 38.742)
	score := RouteEfficiencyScore(d, 5)
	require.True(t, score >= 80)
	assert.Equal(t, "fast_lane", PriorityTier(score))

	// ~6.6 km out of a 5 km radius
	far := DistanceKm(9.03, 38.74, 9.03, 38.80)
	assert.Greater(t, far, 5.0)
}

func TestNearestCityName(t *testing.T) {
	assert.Equal(t, "Addis Ababa", NearestCityName(9.03, 38.74))
	assert.Equal(t, "Dire Dawa", NearestCityName(9.60, 41.85))
	assert.Equal(t, "Hawassa", NearestCityName(7.1, 38.5))
}
