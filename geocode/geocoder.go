package geocode

import "context"

// Result is a single geocoded address. FormattedAddress is the geocoder's
// canonical rendering of the input and replaces whatever the client typed.
type Result struct {
	FormattedAddress string  `json:"formattedAddress"`
	PlaceId          string  `json:"placeId"`
	Latitude         float64 `json:"latitude"`
	Longitude        float64 `json:"longitude"`
}

// Geocoder resolves free-text addresses into coordinates. Resolve returns
// (nil, nil) when the address yields zero results; callers decide how to
// surface that.
type Geocoder interface {
	Resolve(ctx context.Context, address string) (*Result, error)
}
