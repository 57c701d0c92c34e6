package alerts

import (
	"encoding/json"
	"math"
	"sort"

	"github.com/safetravel/go-travel-safety/internal/geo"
	"github.com/safetravel/go-travel-safety/internal/models"
)

// Ranked pairs an alert with its distance from the user. DistanceKnown
// is false when the distance was never computed (no user location) or
// could not be (alert has no coordinates); DistanceKm is not meaningful
// in that case.
type Ranked struct {
	Alert         models.DisasterAlert `json:"alert"`
	DistanceKm    float64              `json:"distanceKm"`
	DistanceKnown bool                 `json:"distanceKnown"`
}

// MarshalJSON drops distanceKm when the distance is unknown; the +Inf
// sentinel used for sorting is not representable in JSON.
func (r Ranked) MarshalJSON() ([]byte, error) {
	type payload struct {
		Alert         models.DisasterAlert `json:"alert"`
		DistanceKm    *float64             `json:"distanceKm,omitempty"`
		DistanceKnown bool                 `json:"distanceKnown"`
	}
	p := payload{Alert: r.Alert, DistanceKnown: r.DistanceKnown}
	if r.DistanceKnown {
		p.DistanceKm = &r.DistanceKm
	}
	return json.Marshal(p)
}

// Rank orders alerts by distance from userLoc, nearest first. Alerts
// without coordinates sort after every located alert. With no user
// location the first min(minCount, len) alerts are returned in insertion
// order, distances unknown. The sort is stable.
func Rank(alerts []models.DisasterAlert, userLoc *models.Coordinates, minCount int) []Ranked {
	if userLoc == nil {
		n := min(minCount, len(alerts))
		out := make([]Ranked, 0, n)
		for _, a := range alerts[:n] {
			out = append(out, Ranked{Alert: a})
		}
		return out
	}

	out := make([]Ranked, 0, len(alerts))
	for _, a := range alerts {
		r := Ranked{Alert: a, DistanceKm: math.Inf(1)}
		if a.Coordinates != nil {
			r.DistanceKm = geo.DistanceKm(*userLoc, *a.Coordinates)
			r.DistanceKnown = true
		}
		out = append(out, r)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DistanceKm < out[j].DistanceKm
	})
	return out
}
