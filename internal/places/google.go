package places

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/safetravel/go-travel-safety/internal/models"
)

const DefaultNearbySearchURL = "https://maps.googleapis.com/maps/api/place/nearbysearch/json"

type googleResponse struct {
	Status       string        `json:"status"`
	ErrorMessage string        `json:"error_message"`
	Results      []googlePlace `json:"results"`
}

type googlePlace struct {
	PlaceID          string         `json:"place_id"`
	Name             string         `json:"name"`
	Vicinity         string         `json:"vicinity"`
	FormattedAddress string         `json:"formatted_address"`
	Geometry         googleGeometry `json:"geometry"`
	Rating           *float64       `json:"rating"`
	PriceLevel       *int           `json:"price_level"`
	OpeningHours     *struct {
		OpenNow *bool `json:"open_now"`
	} `json:"opening_hours"`
}

type googleGeometry struct {
	Location struct {
		Lat float64 `json:"lat"`
		Lng float64 `json:"lng"`
	} `json:"location"`
}

// GoogleProvider calls the Google Places Nearby Search API.
type GoogleProvider struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewGoogleProvider(apiKey, baseURL string) *GoogleProvider {
	if baseURL == "" {
		baseURL = DefaultNearbySearchURL
	}
	return &GoogleProvider{
		apiKey:  apiKey,
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

func (g *GoogleProvider) NearbySearch(ctx context.Context, origin models.Coordinates, radiusMeters int, placeType string) (*NearbyResult, error) {
	params := url.Values{}
	params.Set("location", fmt.Sprintf("%f,%f", origin.Latitude, origin.Longitude))
	params.Set("radius", strconv.Itoa(radiusMeters))
	params.Set("type", placeType)
	params.Set("key", g.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error while doing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d - status: %s", resp.StatusCode, resp.Status)
	}

	var data googleResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("error decoding resp.Body: %w", err)
	}

	out := &NearbyResult{
		Status:  data.Status,
		Results: make([]RawPlace, 0, len(data.Results)),
	}
	for _, p := range data.Results {
		raw := RawPlace{
			PlaceID:          p.PlaceID,
			Name:             p.Name,
			Vicinity:         p.Vicinity,
			FormattedAddress: p.FormattedAddress,
			Location: models.Coordinates{
				Latitude:  p.Geometry.Location.Lat,
				Longitude: p.Geometry.Location.Lng,
			},
			Rating:     p.Rating,
			PriceLevel: p.PriceLevel,
		}
		if p.OpeningHours != nil {
			raw.OpenNow = p.OpeningHours.OpenNow
		}
		out.Results = append(out.Results, raw)
	}

	return out, nil
}
