package geo

import "math"

// earthRadiusMeters is the mean earth radius used for great-circle math.
const earthRadiusMeters = 6371000.0

// Distance returns the haversine great-circle distance between two
// points in meters. Timestamps and accuracy do not participate.
func Distance(a, b *GeoPoint) float64 {
	lat1 := a.Latitude * math.Pi / 180
	lat2 := b.Latitude * math.Pi / 180
	dLat := (b.Latitude - a.Latitude) * math.Pi / 180
	dLon := (b.Longitude - a.Longitude) * math.Pi / 180

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)
	h := sinLat*sinLat + math.Cos(lat1)*math.Cos(lat2)*sinLon*sinLon

	return 2 * earthRadiusMeters * math.Asin(math.Sqrt(h))
}
