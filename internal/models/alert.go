package models

import (
	"strings"
	"time"
)

type AlertSeverity string

const (
	AlertSeverityLow      AlertSeverity = "low"
	AlertSeverityMedium   AlertSeverity = "medium"
	AlertSeverityHigh     AlertSeverity = "high"
	AlertSeverityCritical AlertSeverity = "critical"
)

type AlertCategory string

const (
	AlertCategoryEarthquake AlertCategory = "earthquake"
	AlertCategoryFlood      AlertCategory = "flood"
	AlertCategoryCyclone    AlertCategory = "cyclone"
	AlertCategoryFire       AlertCategory = "fire"
	AlertCategoryStorm      AlertCategory = "storm"
	AlertCategoryDrought    AlertCategory = "drought"
	AlertCategoryVolcano    AlertCategory = "volcano"
	AlertCategoryHazmat     AlertCategory = "hazmat"
	AlertCategoryOther      AlertCategory = "other"
)

func ParseAlertCategory(s string) AlertCategory {
	switch strings.ToLower(s) {
	case "earthquake":
		return AlertCategoryEarthquake
	case "flood", "flash flood":
		return AlertCategoryFlood
	case "cyclone", "tropical cyclone", "typhoon", "hurricane":
		return AlertCategoryCyclone
	case "fire", "wild fire", "wildfire":
		return AlertCategoryFire
	case "storm", "severe local storm":
		return AlertCategoryStorm
	case "drought":
		return AlertCategoryDrought
	case "volcano":
		return AlertCategoryVolcano
	case "hazmat", "technological disaster":
		return AlertCategoryHazmat
	default:
		return AlertCategoryOther
	}
}

// DisasterAlert is a hazard notice. Immutable once ingested.
// Coordinates is nil when the source did not geolocate the event; such
// alerts cannot be distance-ranked and sort after all located alerts.
type DisasterAlert struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Severity    AlertSeverity `json:"severity"`
	Category    AlertCategory `json:"category"`
	Location    string        `json:"location"`
	Source      string        `json:"source"`
	URL         string        `json:"url,omitempty"`
	PublishedAt time.Time     `json:"publishedAt"`
	Coordinates *Coordinates  `json:"coordinates,omitempty"`
}
