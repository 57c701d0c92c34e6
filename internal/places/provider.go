package places

import (
	"context"

	"github.com/safetravel/go-travel-safety/internal/models"
)

// Provider statuses shared by the Google-style APIs.
const (
	StatusOK          = "OK"
	StatusZeroResults = "ZERO_RESULTS"
)

// RawPlace is one nearby-search record in provider terms. Field names
// stay provider-specific here; normalization into models.Place happens
// in the service so the domain model never sees the wire format.
type RawPlace struct {
	PlaceID          string
	Name             string
	Vicinity         string
	FormattedAddress string
	Location         models.Coordinates
	Rating           *float64
	PriceLevel       *int
	OpenNow          *bool
}

// NearbyResult is a provider response: a status plus raw records in the
// provider's original order.
type NearbyResult struct {
	Status  string
	Results []RawPlace
}

// Provider performs a nearby search against an external places API.
type Provider interface {
	NearbySearch(ctx context.Context, origin models.Coordinates, radiusMeters int, placeType string) (*NearbyResult, error)
}
