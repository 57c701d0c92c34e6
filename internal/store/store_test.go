package store

import (
	"testing"
	"time"

	"github.com/safetravel/go-travel-safety/internal/geo"
	"github.com/safetravel/go-travel-safety/internal/models"
)

var sydney = models.Coordinates{Latitude: -33.8688, Longitude: 151.2093}

func TestRecentSearches_MostRecentFirst(t *testing.T) {
	s := New()

	for i := 0; i < 5; i++ {
		s.CreateSearch(sydney, "", 5000, models.PlaceCategoryHospital)
		time.Sleep(2 * time.Millisecond) // distinct CreatedAt
	}

	recent := s.RecentSearches(3)
	if len(recent) != 3 {
		t.Fatalf("expected 3 searches, got %d", len(recent))
	}
	for i := 1; i < len(recent); i++ {
		if recent[i].CreatedAt.After(recent[i-1].CreatedAt) {
			t.Errorf("searches not in descending CreatedAt order at %d", i)
		}
	}
}

func TestRecentSearches_FewerThanLimit(t *testing.T) {
	s := New()
	s.CreateSearch(sydney, "Sydney NSW", 5000, models.PlaceCategoryPharmacy)

	recent := s.RecentSearches(10)
	if len(recent) != 1 {
		t.Fatalf("expected 1 search, got %d", len(recent))
	}
	if recent[0].Address != "Sydney NSW" {
		t.Errorf("address not retained: %q", recent[0].Address)
	}
}

func TestPlacesByLocation_RadiusAndOrder(t *testing.T) {
	s := New()

	near := models.Place{
		PlaceID:  "near",
		Category: models.PlaceCategoryHospital,
		Coordinates: models.Coordinates{
			Latitude: sydney.Latitude + 0.01, Longitude: sydney.Longitude,
		},
	}
	nearer := models.Place{
		PlaceID:  "nearer",
		Category: models.PlaceCategoryHospital,
		Coordinates: models.Coordinates{
			Latitude: sydney.Latitude + 0.005, Longitude: sydney.Longitude,
		},
	}
	far := models.Place{
		PlaceID:  "far",
		Category: models.PlaceCategoryHospital,
		Coordinates: models.Coordinates{
			Latitude: sydney.Latitude + 1, Longitude: sydney.Longitude,
		},
	}
	s.CreatePlace(near)
	s.CreatePlace(nearer)
	s.CreatePlace(far)

	const radius = 5000.0
	got := s.PlacesByLocation(sydney, radius, nil)

	if len(got) != 2 {
		t.Fatalf("expected 2 places in radius, got %d", len(got))
	}
	if got[0].PlaceID != "nearer" || got[1].PlaceID != "near" {
		t.Errorf("not sorted by distance: %s, %s", got[0].PlaceID, got[1].PlaceID)
	}
	for _, p := range got {
		if geo.DistanceMeters(sydney, p.Coordinates) > radius {
			t.Errorf("place %s beyond requested radius", p.PlaceID)
		}
	}
}

func TestPlacesByLocation_CategoryFilter(t *testing.T) {
	s := New()
	s.CreatePlace(models.Place{PlaceID: "h", Category: models.PlaceCategoryHospital, Coordinates: sydney})
	s.CreatePlace(models.Place{PlaceID: "p", Category: models.PlaceCategoryPharmacy, Coordinates: sydney})

	cat := models.PlaceCategoryPharmacy
	got := s.PlacesByLocation(sydney, 1000, &cat)

	if len(got) != 1 || got[0].PlaceID != "p" {
		t.Fatalf("expected only the pharmacy, got %v", got)
	}
}

func TestCreatePlace_UpsertByPlaceID(t *testing.T) {
	s := New()
	s.CreatePlace(models.Place{PlaceID: "x", Name: "before", Coordinates: sydney})
	s.CreatePlace(models.Place{PlaceID: "x", Name: "after", Coordinates: sydney})

	p, ok := s.PlaceByPlaceID("x")
	if !ok {
		t.Fatal("place not found")
	}
	if p.Name != "after" {
		t.Errorf("upsert did not replace: %q", p.Name)
	}
}

func TestAlerts_NewestFirst(t *testing.T) {
	s := New()
	now := time.Now()

	s.CreateAlert(models.DisasterAlert{ID: "old", PublishedAt: now.Add(-2 * time.Hour)})
	s.CreateAlert(models.DisasterAlert{ID: "new", PublishedAt: now})
	s.CreateAlert(models.DisasterAlert{ID: "mid", PublishedAt: now.Add(-time.Hour)})

	got := s.Alerts()
	want := []string{"new", "mid", "old"}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("position %d: got %s, want %s", i, got[i].ID, id)
		}
	}
}

func TestAlertExists(t *testing.T) {
	s := New()
	created := s.CreateAlert(models.DisasterAlert{Title: "no id supplied"})

	if created.ID == "" {
		t.Fatal("expected generated id")
	}
	if !s.AlertExists(created.ID) {
		t.Error("created alert not found")
	}
	if s.AlertExists("missing") {
		t.Error("unexpected hit for missing id")
	}
}
