package geo

import "math"

const earthRadiusMeters = 6_371_000.0

// Haversine returns the great-circle distance in meters between two points.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	lat1r := lat1 * math.Pi / 180
	lat2r := lat2 * math.Pi / 180
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1r)*math.Cos(lat2r)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c
}

// EquirectangularDist returns an approximate distance in meters.
// Cheaper than Haversine and accurate to <0.1% over short spans.
// Use for ranking candidates, not for edge weights.
func EquirectangularDist(lat1, lon1, lat2, lon2 float64) float64 {
	x := (lon2 - lon1) * math.Cos((lat1+lat2)/2*math.Pi/180) * math.Pi / 180
	y := (lat2 - lat1) * math.Pi / 180
	return math.Sqrt(x*x+y*y) * earthRadiusMeters
}

// MetersToDegrees returns the latitude and longitude spans covering the given
// distance around latitude lat. Used to build search boxes for nearest-node
// lookups; the longitude span grows toward the poles.
func MetersToDegrees(lat, meters float64) (dLat, dLon float64) {
	dLat = meters / earthRadiusMeters * 180 / math.Pi
	cosLat := math.Cos(lat * math.Pi / 180)
	if cosLat < 1e-6 {
		return dLat, 180
	}
	return dLat, math.Min(dLat/cosLat, 180)
}
