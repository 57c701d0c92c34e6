// Package store holds the process-local, append-only collections for
// alerts, places and search history. Contents are reset on restart.
package store

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/safetravel/go-travel-safety/internal/geo"
	"github.com/safetravel/go-travel-safety/internal/models"
)

// Store is constructed once at startup and injected into every service
// that needs it. Reads dominate; the mutex only serializes the map walks.
type Store struct {
	mu       sync.RWMutex
	alerts   map[string]models.DisasterAlert
	alertIDs []string // insertion order
	places   map[string]models.Place // keyed by provider place id
	searches []models.Search
}

func New() *Store {
	return &Store{
		alerts: make(map[string]models.DisasterAlert),
		places: make(map[string]models.Place),
	}
}

func (s *Store) CreateAlert(a models.DisasterAlert) models.DisasterAlert {
	s.mu.Lock()
	defer s.mu.Unlock()

	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if _, ok := s.alerts[a.ID]; !ok {
		s.alertIDs = append(s.alertIDs, a.ID)
	}
	s.alerts[a.ID] = a
	return a
}

func (s *Store) AlertExists(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.alerts[id]
	return ok
}

// Alerts returns every stored alert, newest publication first. Ties keep
// insertion order.
func (s *Store) Alerts() []models.DisasterAlert {
	s.mu.RLock()
	out := make([]models.DisasterAlert, 0, len(s.alertIDs))
	for _, id := range s.alertIDs {
		out = append(out, s.alerts[id])
	}
	s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PublishedAt.After(out[j].PublishedAt)
	})
	return out
}

// CreatePlace upserts by provider place id. Callers decide whether to
// check PlaceByPlaceID first.
func (s *Store) CreatePlace(p models.Place) models.Place {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.places[p.PlaceID] = p
	return p
}

func (s *Store) PlaceByPlaceID(placeID string) (models.Place, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.places[placeID]
	return p, ok
}

// PlacesByLocation returns stored places within radiusMeters of origin,
// optionally narrowed to an exact category, ascending by distance. A
// bounding-box prefilter skips the exact Haversine check for places that
// cannot be in range.
func (s *Store) PlacesByLocation(origin models.Coordinates, radiusMeters float64, category *models.PlaceCategory) []models.Place {
	bound := geo.PaddedBound(origin, radiusMeters)

	s.mu.RLock()
	matched := make([]models.Place, 0)
	for _, p := range s.places {
		if category != nil && p.Category != *category {
			continue
		}
		if !geo.BoundContains(bound, p.Coordinates) {
			continue
		}
		if d := geo.DistanceMeters(origin, p.Coordinates); d <= radiusMeters {
			p.DistanceKm = d / 1000
			matched = append(matched, p)
		}
	}
	s.mu.RUnlock()

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].DistanceKm < matched[j].DistanceKm
	})
	return matched
}

func (s *Store) CreateSearch(origin models.Coordinates, address string, radiusMeters int, category models.PlaceCategory) models.Search {
	search := models.Search{
		ID:           uuid.NewString(),
		Origin:       origin,
		Address:      address,
		RadiusMeters: radiusMeters,
		Category:     category,
		CreatedAt:    time.Now(),
	}

	s.mu.Lock()
	s.searches = append(s.searches, search)
	s.mu.Unlock()
	return search
}

// RecentSearches returns up to limit searches, most recent first.
func (s *Store) RecentSearches(limit int) []models.Search {
	s.mu.RLock()
	out := make([]models.Search, len(s.searches))
	copy(out, s.searches)
	s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
