// Package places implements the nearby-search pipeline: provider call,
// normalization, distance annotation and ordering.
package places

import (
	"context"
	"log/slog"
	"sort"

	"github.com/safetravel/go-travel-safety/internal/apperr"
	"github.com/safetravel/go-travel-safety/internal/geo"
	"github.com/safetravel/go-travel-safety/internal/models"
	"github.com/safetravel/go-travel-safety/internal/store"
)

const fallbackAddress = "Address not available"

type Service struct {
	provider Provider
	store    *store.Store
}

func NewService(provider Provider, st *store.Store) *Service {
	return &Service{
		provider: provider,
		store:    st,
	}
}

// Search queries the provider for places of the given category around
// origin and returns them ascending by distance from origin, ties in
// provider order. Every successful search (zero results included) is
// appended to the search log; failed searches are not.
func (s *Service) Search(ctx context.Context, origin models.Coordinates, radiusMeters int, category models.PlaceCategory, address string) ([]models.Place, error) {
	if radiusMeters <= 0 {
		return nil, apperr.Validation("radius must be positive, got %d", radiusMeters)
	}
	if s.provider == nil {
		return nil, apperr.Configuration("places provider not configured")
	}

	// Category doubles as the provider place type; ParsePlaceCategory
	// already coerced unknown input to hospital upstream.
	res, err := s.provider.NearbySearch(ctx, origin, radiusMeters, string(category))
	if err != nil {
		return nil, &apperr.ProviderError{Provider: "places", Status: "unreachable", Err: err}
	}
	if res.Status != StatusOK && res.Status != StatusZeroResults {
		return nil, &apperr.ProviderError{Provider: "places", Status: res.Status}
	}

	results := make([]models.Place, 0, len(res.Results))
	for _, raw := range res.Results {
		results = append(results, normalize(raw, origin, category))
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].DistanceKm < results[j].DistanceKm
	})

	search := s.store.CreateSearch(origin, address, radiusMeters, category)
	slog.Debug("search recorded", "id", search.ID, "category", category, "results", len(results))

	return results, nil
}

// normalize maps one provider record into the internal place model.
// Address precedence: vicinity, then formatted address, then a literal
// placeholder. Absent rating/price/open stay nil.
func normalize(raw RawPlace, origin models.Coordinates, category models.PlaceCategory) models.Place {
	address := raw.Vicinity
	if address == "" {
		address = raw.FormattedAddress
	}
	if address == "" {
		address = fallbackAddress
	}

	return models.Place{
		PlaceID:     raw.PlaceID,
		Name:        raw.Name,
		Address:     address,
		Category:    category,
		Coordinates: raw.Location,
		Rating:      raw.Rating,
		PriceLevel:  raw.PriceLevel,
		IsOpen:      raw.OpenNow,
		DistanceKm:  geo.DistanceKm(origin, raw.Location),
	}
}
