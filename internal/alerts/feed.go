package alerts

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/safetravel/go-travel-safety/internal/models"
)

// ReliefWeb disasters feed, decoded down to the fields we keep.
type reliefWebResponse struct {
	Data []reliefWebEntry `json:"data"`
}

type reliefWebEntry struct {
	ID     json.Number     `json:"id"`
	Fields reliefWebFields `json:"fields"`
}

type reliefWebFields struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Status      string `json:"status"` // alert, ongoing, past
	URL         string `json:"url"`
	Date        struct {
		Created time.Time `json:"created"`
	} `json:"date"`
	PrimaryCountry struct {
		Name     string `json:"name"`
		Location *struct {
			Lat float64 `json:"lat"`
			Lon float64 `json:"lon"`
		} `json:"location"`
	} `json:"primary_country"`
	PrimaryType struct {
		Name string `json:"name"`
	} `json:"primary_type"`
}

func (m *Manager) pollReliefWeb(ctx context.Context, url string) ([]models.DisasterAlert, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}

	client := &http.Client{
		Timeout: 15 * time.Second,
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error while doing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d - status: %s", resp.StatusCode, resp.Status)
	}

	var data reliefWebResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("error decoding resp.Body: %w", err)
	}

	alerts := make([]models.DisasterAlert, 0, len(data.Data))
	for _, entry := range data.Data {
		a := models.DisasterAlert{
			ID:          "reliefweb_" + entry.ID.String(),
			Title:       entry.Fields.Name,
			Description: entry.Fields.Description,
			Severity:    mapReliefWebStatus(entry.Fields.Status),
			Category:    models.ParseAlertCategory(entry.Fields.PrimaryType.Name),
			Location:    entry.Fields.PrimaryCountry.Name,
			Source:      "ReliefWeb",
			URL:         entry.Fields.URL,
			PublishedAt: entry.Fields.Date.Created,
		}
		if loc := entry.Fields.PrimaryCountry.Location; loc != nil {
			a.Coordinates = &models.Coordinates{
				Latitude:  loc.Lat,
				Longitude: loc.Lon,
			}
		}
		alerts = append(alerts, a)
	}

	return alerts, nil
}

func mapReliefWebStatus(status string) models.AlertSeverity {
	switch status {
	case "alert":
		return models.AlertSeverityHigh
	case "ongoing", "current":
		return models.AlertSeverityMedium
	case "past":
		return models.AlertSeverityLow
	default:
		return models.AlertSeverityMedium
	}
}

// SampleAlerts returns the built-in demo feed used when no live feed is
// configured.
func SampleAlerts(now time.Time) []models.DisasterAlert {
	return []models.DisasterAlert{
		{
			ID:          "sample_1",
			Title:       "Earthquake in Turkey",
			Description: "Magnitude 7.2 earthquake strikes southeastern Turkey causing significant damage",
			Severity:    models.AlertSeverityHigh,
			Category:    models.AlertCategoryEarthquake,
			Location:    "Turkey",
			Source:      "ReliefWeb",
			URL:         "https://reliefweb.int/disaster/eq-2023-000001-tur",
			PublishedAt: now.Add(-2 * time.Hour),
			Coordinates: &models.Coordinates{Latitude: 37.0662, Longitude: 37.3833},
		},
		{
			ID:          "sample_2",
			Title:       "Tropical Cyclone in Philippines",
			Description: "Category 3 typhoon making landfall in northern Philippines with high winds and heavy rainfall",
			Severity:    models.AlertSeverityCritical,
			Category:    models.AlertCategoryCyclone,
			Location:    "Philippines",
			Source:      "ReliefWeb",
			URL:         "https://reliefweb.int/disaster/tc-2023-000002-phl",
			PublishedAt: now.Add(-6 * time.Hour),
			Coordinates: &models.Coordinates{Latitude: 16.5662, Longitude: 121.2626},
		},
		{
			ID:          "sample_3",
			Title:       "Flooding in Bangladesh",
			Description: "Monsoon floods affect thousands in northern districts of Bangladesh",
			Severity:    models.AlertSeverityMedium,
			Category:    models.AlertCategoryFlood,
			Location:    "Bangladesh",
			Source:      "ReliefWeb",
			URL:         "https://reliefweb.int/disaster/fl-2023-000003-bgd",
			PublishedAt: now.Add(-12 * time.Hour),
			Coordinates: &models.Coordinates{Latitude: 25.7439, Longitude: 89.2752},
		},
	}
}
