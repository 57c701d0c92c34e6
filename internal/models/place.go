package models

import (
	"strings"
	"time"
)

type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type PlaceCategory string

const (
	PlaceCategoryHospital   PlaceCategory = "hospital"
	PlaceCategoryPharmacy   PlaceCategory = "pharmacy"
	PlaceCategoryLodging    PlaceCategory = "lodging"
	PlaceCategoryRestaurant PlaceCategory = "restaurant"
)

// ParsePlaceCategory maps free-form input to a supported category.
// Unknown values fall back to hospital, mirroring the provider-type
// fallback used when building the nearby-search request.
func ParsePlaceCategory(s string) PlaceCategory {
	switch strings.ToLower(s) {
	case "hospital":
		return PlaceCategoryHospital
	case "pharmacy":
		return PlaceCategoryPharmacy
	case "lodging":
		return PlaceCategoryLodging
	case "restaurant":
		return PlaceCategoryRestaurant
	default:
		return PlaceCategoryHospital
	}
}

// Place is one point of interest returned by a nearby search.
// Rating, PriceLevel and IsOpen are nil when the provider did not report
// them; absence is never conflated with a zero value. DistanceKm is
// derived per query, relative to the search origin.
type Place struct {
	PlaceID    string        `json:"placeId"`
	Name       string        `json:"name"`
	Address    string        `json:"address"`
	Category   PlaceCategory `json:"category"`
	Coordinates
	Rating     *float64 `json:"rating"`
	PriceLevel *int     `json:"priceLevel"`
	IsOpen     *bool    `json:"isOpen"`
	DistanceKm float64  `json:"distance"`
}

// Search is an immutable audit record of one search submission.
type Search struct {
	ID           string        `json:"id"`
	Origin       Coordinates   `json:"origin"`
	Address      string        `json:"address,omitempty"` // raw input before geocoding, if any
	RadiusMeters int           `json:"radius"`
	Category     PlaceCategory `json:"category"`
	CreatedAt    time.Time     `json:"createdAt"`
}

const DefaultSearchRadiusMeters = 5000
