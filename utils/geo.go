package utils

import "math"

// EarthRadiusMiles is used to convert a search distance to a central angle.
const EarthRadiusMiles = 3963.0

// CentralAngle returns the great-circle angle in radians between two
// points given in degrees (haversine formula). A bootcamp lies within a
// radius search when this angle is at most distance/EarthRadiusMiles.
func CentralAngle(lat1, lng1, lat2, lng2 float64) float64 {
	rlat1 := lat1 * math.Pi / 180
	rlat2 := lat2 * math.Pi / 180
	dlat := rlat2 - rlat1
	dlng := (lng2 - lng1) * math.Pi / 180

	a := math.Sin(dlat/2)*math.Sin(dlat/2) +
		math.Cos(rlat1)*math.Cos(rlat2)*math.Sin(dlng/2)*math.Sin(dlng/2)

	return 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}
