// Package geocode resolves free-text addresses to coordinates through an
// external geocoding provider. Pure passthrough: no caching, no retries.
package geocode

import (
	"context"
	"strings"

	"github.com/safetravel/go-travel-safety/internal/apperr"
	"github.com/safetravel/go-travel-safety/internal/models"
)

// Result is one resolved address.
type Result struct {
	Coordinates      models.Coordinates
	FormattedAddress string
}

// Provider resolves an address with an external geocoding API.
type Provider interface {
	Geocode(ctx context.Context, address string) (status string, results []Result, err error)
}

type Service struct {
	provider Provider
}

func NewService(provider Provider) *Service {
	return &Service{provider: provider}
}

// Geocode resolves address to a coordinate and canonical address string.
// A provider match of zero results is a not-found error, never a
// null-filled success.
func (s *Service) Geocode(ctx context.Context, address string) (*Result, error) {
	if strings.TrimSpace(address) == "" {
		return nil, apperr.Validation("address is required")
	}
	if s.provider == nil {
		return nil, apperr.Configuration("geocoding provider not configured")
	}

	status, results, err := s.provider.Geocode(ctx, address)
	if err != nil {
		return nil, &apperr.ProviderError{Provider: "geocode", Status: "unreachable", Err: err}
	}

	switch {
	case status == "ZERO_RESULTS" || (status == "OK" && len(results) == 0):
		return nil, apperr.NotFound("no match for address %q", address)
	case status != "OK":
		return nil, &apperr.ProviderError{Provider: "geocode", Status: status}
	}

	first := results[0]
	return &first, nil
}
