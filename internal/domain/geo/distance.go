// Package geo calcula distancias sobre la superficie terrestre para validar geocercas.
package geo

import "math"

const earthRadiusMeters = 6371000.0

// DistanceMeters distancia haversine entre dos puntos (grados decimales).
func DistanceMeters(lat1, lng1, lat2, lng2 float64) float64 {
	φ1 := lat1 * math.Pi / 180
	φ2 := lat2 * math.Pi / 180
	dφ := (lat2 - lat1) * math.Pi / 180
	dλ := (lng2 - lng1) * math.Pi / 180

	a := math.Sin(dφ/2)*math.Sin(dφ/2) + math.Cos(φ1)*math.Cos(φ2)*math.Sin(dλ/2)*math.Sin(dλ/2)
	return 2 * earthRadiusMeters * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// Within informa si el punto está dentro del círculo (centro, radio en metros) y devuelve la distancia.
func Within(centerLat, centerLng, radiusMeters, lat, lng float64) (bool, float64) {
	d := DistanceMeters(centerLat, centerLng, lat, lng)
	return d <= radiusMeters, d
}
