// Package geo holds the pure distance/ETA/fee estimators. No shared state,
// no persistence; everything is a function of two coordinate pairs.
package geo

import "math"

const (
	// EarthRadiusKm is Earth's radius for the haversine calculation.
	EarthRadiusKm = 6371.0

	minEtaMinutes  = 12.0
	etaPerKm       = 4.2
	etaBaseMinutes = 10.0

	minFee    = 1.5
	baseFee   = 2.0
	feePerKm  = 0.8
	degToRad  = math.Pi / 180
	scorePool = 70.0
)

// DistanceKm returns the great-circle distance between two points using the
// haversine formula.
func DistanceKm(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := (lat2 - lat1) * degToRad
	dLng := (lng2 - lng1) * degToRad
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*degToRad)*math.Cos(lat2*degToRad)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return EarthRadiusKm * c
}

// EstimateEtaMinutes converts a delivery distance into a rider ETA, floored at
// twelve minutes.
func EstimateEtaMinutes(distanceKm float64) int {
	eta := math.Round(distanceKm*etaPerKm + etaBaseMinutes)
	return int(math.Max(minEtaMinutes, eta))
}

// EstimateDeliveryFee returns the distance-weighted delivery fee, rounded to
// two decimals.
func EstimateDeliveryFee(distanceKm float64) float64 {
	fee := math.Max(minFee, baseFee+distanceKm*feePerKm)
	return math.Round(fee*100) / 100
}

// RouteEfficiencyScore scores how deep into the restaurant's delivery radius
// the drop-off sits, 100 at the door down to 30 at the edge. Returns 0 for a
// non-positive radius.
func RouteEfficiencyScore(distanceKm, radiusKm float64) float64 {
	if radiusKm <= 0 {
		return 0
	}
	score := 100 - math.Min(1, distanceKm/radiusKm)*scorePool
	return math.Max(0, math.Min(100, score))
}

// PriorityTier maps an efficiency score onto a dispatch tier label.
func PriorityTier(score float64) string {
	switch {
	case score >= 80:
		return "fast_lane"
	case score >= 50:
		return "standard"
	default:
		return "outer_ring"
	}
}

type refCity struct {
	name     string
	lat, lng float64
}

// Reference points for human-readable zone labels only; dispatch never reads
// this table.
var refCities = []refCity{
	{"Addis Ababa", 9.0054, 38.7636},
	{"Adama", 8.5400, 39.2675},
	{"Hawassa", 7.0622, 38.4777},
	{"Bahir Dar", 11.5936, 37.3908},
	{"Dire Dawa", 9.6009, 41.8501},
	{"Mekelle", 13.4967, 39.4753},
	{"Gondar", 12.6030, 37.4521},
	{"Jimma", 7.6780, 36.8344},
}

// NearestCityName returns the name of the closest reference city.
func NearestCityName(lat, lng float64) string {
	best := refCities[0]
	bestDist := DistanceKm(lat, lng, best.lat, best.lng)
	for _, c := range refCities[1:] {
		if d := DistanceKm(lat, lng, c.lat, c.lng); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best.name
}
