package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/safetravel/go-travel-safety/internal/models"
)

const DefaultGeocodeURL = "https://maps.googleapis.com/maps/api/geocode/json"

type googleResponse struct {
	Status  string `json:"status"`
	Results []struct {
		FormattedAddress string `json:"formatted_address"`
		Geometry         struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

// GoogleProvider calls the Google Geocoding API.
type GoogleProvider struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewGoogleProvider(apiKey, baseURL string) *GoogleProvider {
	if baseURL == "" {
		baseURL = DefaultGeocodeURL
	}
	return &GoogleProvider{
		apiKey:  apiKey,
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

func (g *GoogleProvider) Geocode(ctx context.Context, address string) (string, []Result, error) {
	params := url.Values{}
	params.Set("address", address)
	params.Set("key", g.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return "", nil, fmt.Errorf("error creating request: %w", err)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return "", nil, fmt.Errorf("error while doing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", nil, fmt.Errorf("unexpected status code: %d - status: %s", resp.StatusCode, resp.Status)
	}

	var data googleResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return "", nil, fmt.Errorf("error decoding resp.Body: %w", err)
	}

	results := make([]Result, 0, len(data.Results))
	for _, r := range data.Results {
		results = append(results, Result{
			Coordinates: models.Coordinates{
				Latitude:  r.Geometry.Location.Lat,
				Longitude: r.Geometry.Location.Lng,
			},
			FormattedAddress: r.FormattedAddress,
		})
	}

	return data.Status, results, nil
}
