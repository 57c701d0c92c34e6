package alerts

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/safetravel/go-travel-safety/internal/config"
	"github.com/safetravel/go-travel-safety/internal/models"
	"github.com/safetravel/go-travel-safety/internal/store"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func testConfig(feedURL string) *config.Config {
	return &config.Config{
		Alerts: config.AlertsConfig{
			FeedEnabled:  feedURL != "",
			FeedURL:      feedURL,
			PollInterval: time.Minute,
			SeedSamples:  false,
		},
		Worker: config.WorkerConfig{Count: 2, BufferSize: 20},
	}
}

const reliefWebBody = `{
	"data": [
		{
			"id": "51234",
			"fields": {
				"name": "Nepal: Earthquake - Oct 2025",
				"description": "Strong earthquake in western Nepal",
				"status": "alert",
				"url": "https://reliefweb.int/taxonomy/term/51234",
				"date": {"created": "2025-10-03T00:00:00+00:00"},
				"primary_country": {
					"name": "Nepal",
					"location": {"lat": 28.25, "lon": 83.92}
				},
				"primary_type": {"name": "Earthquake"}
			}
		},
		{
			"id": "51235",
			"fields": {
				"name": "Regional Drought",
				"status": "ongoing",
				"date": {"created": "2025-09-01T00:00:00+00:00"},
				"primary_country": {"name": "Somalia"},
				"primary_type": {"name": "Drought"}
			}
		}
	]
}`

func TestPollReliefWeb_MapsFeed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(reliefWebBody))
	}))
	defer srv.Close()

	m := NewManager(testConfig(srv.URL), store.New(), nil)
	alerts, err := m.pollReliefWeb(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("pollReliefWeb failed: %v", err)
	}

	if len(alerts) != 2 {
		t.Fatalf("expected 2 alerts, got %d", len(alerts))
	}

	quake := alerts[0]
	if quake.ID != "reliefweb_51234" {
		t.Errorf("id = %s", quake.ID)
	}
	if quake.Category != models.AlertCategoryEarthquake {
		t.Errorf("category = %s", quake.Category)
	}
	if quake.Severity != models.AlertSeverityHigh {
		t.Errorf("severity = %s, want high for status alert", quake.Severity)
	}
	if quake.Coordinates == nil || quake.Coordinates.Latitude != 28.25 {
		t.Errorf("coordinates not mapped: %+v", quake.Coordinates)
	}
	if quake.Location != "Nepal" {
		t.Errorf("location = %s", quake.Location)
	}

	drought := alerts[1]
	if drought.Coordinates != nil {
		t.Error("alert without feed location must have nil coordinates")
	}
	if drought.Severity != models.AlertSeverityMedium {
		t.Errorf("severity = %s, want medium for status ongoing", drought.Severity)
	}
}

func TestPollReliefWeb_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream broken", http.StatusBadGateway)
	}))
	defer srv.Close()

	m := NewManager(testConfig(srv.URL), store.New(), nil)
	if _, err := m.pollReliefWeb(context.Background(), srv.URL); err == nil {
		t.Fatal("expected error for non-200 response")
	}
}

func TestManager_IngestsAndBroadcasts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{
				{
					"id": "1",
					"fields": map[string]any{
						"name":            "Test Flood",
						"status":          "alert",
						"date":            map[string]any{"created": "2025-08-01T00:00:00Z"},
						"primary_country": map[string]any{"name": "Testland"},
						"primary_type":    map[string]any{"name": "Flood"},
					},
				},
			},
		})
	}))
	defer srv.Close()

	st := store.New()
	b := NewBroadcaster()
	_, sub := b.Subscribe()

	m := NewManager(testConfig(srv.URL), st, b)

	ctx, cancel := context.WithCancel(context.Background())
	m.Start(ctx)

	select {
	case a := <-sub:
		if a.Title != "Test Flood" {
			t.Errorf("broadcast alert title = %q", a.Title)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no alert broadcast within deadline")
	}

	cancel()
	m.Stop()
	b.Close()

	if !st.AlertExists("reliefweb_1") {
		t.Error("alert not stored")
	}
}

func TestManager_SeedSamples(t *testing.T) {
	cfg := testConfig("")
	cfg.Alerts.SeedSamples = true

	st := store.New()
	m := NewManager(cfg, st, nil)

	ctx, cancel := context.WithCancel(context.Background())
	m.Start(ctx)

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) && len(st.Alerts()) < 3 {
		time.Sleep(10 * time.Millisecond)
	}

	cancel()
	m.Stop()

	if got := len(st.Alerts()); got != 3 {
		t.Errorf("expected 3 seeded alerts, got %d", got)
	}
}
