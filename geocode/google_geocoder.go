package geocode

import (
	"context"
	"encoding/json"
	"io/ioutil"
	"net/http"
	"net/url"
	"os"

	"github.com/pkg/errors"
	Logger "github.com/wantsapp/wants-backend/utils/log"
)

const googleGeocodeEndpoint = "https://maps.googleapis.com/maps/api/geocode/json"

// GoogleGeocoder resolves addresses through the Google Maps Geocoding API.
type GoogleGeocoder struct {
	apiKey   string
	endpoint string
	client   *http.Client
}

func NewGoogleGeocoder() *GoogleGeocoder {
	return &GoogleGeocoder{
		apiKey:   os.Getenv("GOOGLE_API_KEY"),
		endpoint: googleGeocodeEndpoint,
		client:   &http.Client{},
	}
}

type googleGeocodeResponse struct {
	Status  string `json:"status"`
	Results []struct {
		PlaceId          string `json:"place_id"`
		FormattedAddress string `json:"formatted_address"`
		Geometry         struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

func (g *GoogleGeocoder) Resolve(ctx context.Context, address string) (*Result, error) {
	query := url.Values{}
	query.Set("address", address)
	query.Set("key", g.apiKey)

	req, err := http.NewRequestWithContext(ctx, "GET", g.endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return nil, errors.Wrap(err, "build geocode request")
	}

	res, err := g.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "geocode request failed")
	}
	defer res.Body.Close()

	if res.StatusCode >= 300 {
		body, _ := ioutil.ReadAll(res.Body)
		Logger.Log.Errorf("non-200 geocode http code: %d, body: %s", res.StatusCode, string(body))
		return nil, errors.Errorf("geocode http status %d", res.StatusCode)
	}

	var parsed googleGeocodeResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, errors.Wrap(err, "decode geocode response")
	}

	if parsed.Status == "ZERO_RESULTS" || len(parsed.Results) == 0 {
		return nil, nil
	}
	if parsed.Status != "OK" {
		return nil, errors.Errorf("geocode status %s", parsed.Status)
	}

	// Always take the first, most relevant result.
	first := parsed.Results[0]
	return &Result{
		FormattedAddress: first.FormattedAddress,
		PlaceId:          first.PlaceId,
		Latitude:         first.Geometry.Location.Lat,
		Longitude:        first.Geometry.Location.Lng,
	}, nil
}
