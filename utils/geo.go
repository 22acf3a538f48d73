package utils

import (
	"math"

	"github.com/wantsapp/wants-backend/model"
)

const earthRadiusMeters = 6371000.0

// GreatCircleDistanceMeters computes the haversine distance between two
// coordinate pairs, in meters.
func GreatCircleDistanceMeters(a model.GeolocationCoordinates, b model.GeolocationCoordinates) float64 {
	lat1 := a.Latitude * math.Pi / 180.0
	lng1 := a.Longitude * math.Pi / 180.0
	lat2 := b.Latitude * math.Pi / 180.0
	lng2 := b.Longitude * math.Pi / 180.0

	dLat := lat2 - lat1
	dLng := lng2 - lng1

	hSinLat := math.Sin(dLat / 2)
	hSinLng := math.Sin(dLng / 2)

	h := hSinLat*hSinLat + math.Cos(lat1)*math.Cos(lat2)*hSinLng*hSinLng

	return 2 * earthRadiusMeters * math.Asin(math.Sqrt(h))
}

// GreatCircleDistanceKm is GreatCircleDistanceMeters expressed in kilometers.
func GreatCircleDistanceKm(a model.GeolocationCoordinates, b model.GeolocationCoordinates) float64 {
	return GreatCircleDistanceMeters(a, b) / 1000.0
}
