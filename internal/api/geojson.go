package api

import (
	"github.com/safetravel/go-travel-safety/internal/models"
)

type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}
type Feature struct {
	Type       string         `json:"type"`
	Geometry   Geometry       `json:"geometry"`
	Properties map[string]any `json:"properties"`
}
type Geometry struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

// toGeoJSON renders alerts as a FeatureCollection for map display.
// Alerts without coordinates cannot be placed and are omitted.
func toGeoJSON(alerts []models.DisasterAlert) FeatureCollection {
	features := make([]Feature, 0, len(alerts))

	for _, a := range alerts {
		if a.Coordinates == nil {
			continue
		}
		f := Feature{
			Type: "Feature",
			Geometry: Geometry{
				Type:        "Point",
				Coordinates: []float64{a.Coordinates.Longitude, a.Coordinates.Latitude},
			},
			Properties: map[string]any{
				"id":           a.ID,
				"title":        a.Title,
				"description":  a.Description,
				"severity":     a.Severity,
				"category":     a.Category,
				"location":     a.Location,
				"source":       a.Source,
				"published_at": a.PublishedAt,
			},
		}
		features = append(features, f)
	}

	return FeatureCollection{
		Type:     "FeatureCollection",
		Features: features,
	}
}
