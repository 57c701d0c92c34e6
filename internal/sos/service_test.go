package sos

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/safetravel/go-travel-safety/internal/apperr"
	"github.com/safetravel/go-travel-safety/internal/models"
	"github.com/safetravel/go-travel-safety/internal/notify"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// memRepo implements both repository interfaces in memory.
type memRepo struct {
	mu       sync.Mutex
	events   map[string]models.SOSEvent
	contacts map[string]models.EmergencyContact
}

func newMemRepo() *memRepo {
	return &memRepo{
		events:   make(map[string]models.SOSEvent),
		contacts: make(map[string]models.EmergencyContact),
	}
}

func (r *memRepo) AddEvent(ctx context.Context, e *models.SOSEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events[e.ID] = *e
	return nil
}

func (r *memRepo) GetEventByID(ctx context.Context, id string) (*models.SOSEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.events[id]
	if !ok {
		return nil, apperr.NotFound("sos event %s", id)
	}
	return &e, nil
}

func (r *memRepo) ListEventsByUser(ctx context.Context, userID string) ([]models.SOSEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.SOSEvent
	for _, e := range r.events {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *memRepo) UpdateEventStatus(ctx context.Context, id string, status models.SOSStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.events[id]
	if !ok {
		return apperr.NotFound("sos event %s", id)
	}
	e.Status = status
	r.events[id] = e
	return nil
}

func (r *memRepo) UpsertContact(ctx context.Context, c *models.EmergencyContact) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.contacts[c.ID] = *c
	return nil
}

func (r *memRepo) ListContactsByUser(ctx context.Context, userID string) ([]models.EmergencyContact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.EmergencyContact
	for _, c := range r.contacts {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *memRepo) DeleteContact(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.contacts, id)
	return nil
}

// recordingSender captures sent messages.
type recordingSender struct {
	mu      sync.Mutex
	channel string
	sent    []notify.Message
}

func (s *recordingSender) Channel() string { return s.channel }

func (s *recordingSender) Send(ctx context.Context, msg notify.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, msg)
	return nil
}

func (s *recordingSender) messages() []notify.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]notify.Message(nil), s.sent...)
}

func setupService(t *testing.T, repo *memRepo) (*Service, *recordingSender, *recordingSender) {
	sms := &recordingSender{channel: "sms"}
	email := &recordingSender{channel: "email"}
	svc := NewService(repo, repo, sms, email, 2, 10)

	ctx, cancel := context.WithCancel(context.Background())
	svc.Start(ctx)
	t.Cleanup(func() {
		cancel()
		svc.Stop()
	})
	return svc, sms, email
}

func TestRaise_NotifiesPerPreference(t *testing.T) {
	repo := newMemRepo()
	repo.UpsertContact(context.Background(), &models.EmergencyContact{
		ID: "c1", UserID: "u1", Name: "Sam", Phone: "+1", Email: "sam@example.com",
		NotifyPreference: models.NotifyPreferenceBoth,
	})
	repo.UpsertContact(context.Background(), &models.EmergencyContact{
		ID: "c2", UserID: "u1", Name: "Kim", Phone: "+2", Email: "kim@example.com",
		NotifyPreference: models.NotifyPreferenceSMS,
	})
	repo.UpsertContact(context.Background(), &models.EmergencyContact{
		ID: "other", UserID: "u2", Name: "Not Mine", Phone: "+3",
		NotifyPreference: models.NotifyPreferenceSMS,
	})

	svc, sms, email := setupService(t, repo)

	event, err := svc.Raise(context.Background(), "u1",
		models.Coordinates{Latitude: -33.8688, Longitude: 151.2093},
		models.EmergencyTypeMedical)
	if err != nil {
		t.Fatalf("Raise failed: %v", err)
	}
	if event.Status != models.SOSStatusActive {
		t.Errorf("status = %s, want active", event.Status)
	}

	// Dispatch is asynchronous.
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if len(sms.messages()) == 2 && len(email.messages()) == 1 {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}

	if got := sms.messages(); len(got) != 2 {
		t.Errorf("expected 2 SMS (both + sms contacts), got %d", len(got))
	}
	if got := email.messages(); len(got) != 1 {
		t.Errorf("expected 1 email, got %d", len(got))
	} else {
		if !strings.Contains(got[0].Body, "urgent medical assistance") {
			t.Errorf("message lacks emergency phrasing: %q", got[0].Body)
		}
		if !strings.Contains(got[0].Body, "google.com/maps?q=") {
			t.Errorf("message lacks maps link: %q", got[0].Body)
		}
	}
}

func TestRaise_RequiresUser(t *testing.T) {
	svc, _, _ := setupService(t, newMemRepo())

	_, err := svc.Raise(context.Background(), " ", models.Coordinates{}, models.EmergencyTypeAccident)
	if !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestResolve(t *testing.T) {
	repo := newMemRepo()
	svc, _, _ := setupService(t, repo)

	event, err := svc.Raise(context.Background(), "u1", models.Coordinates{}, models.EmergencyTypeAccident)
	if err != nil {
		t.Fatalf("Raise failed: %v", err)
	}

	if err := svc.Resolve(context.Background(), event.ID); err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	got, _ := repo.GetEventByID(context.Background(), event.ID)
	if got.Status != models.SOSStatusResolved {
		t.Errorf("status = %s, want resolved", got.Status)
	}

	if err := svc.Resolve(context.Background(), "missing"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("expected not-found, got %v", err)
	}
}

func TestSaveContact_Validation(t *testing.T) {
	svc, _, _ := setupService(t, newMemRepo())
	ctx := context.Background()

	cases := []models.EmergencyContact{
		{UserID: "", Name: "x", NotifyPreference: models.NotifyPreferenceSMS},
		{UserID: "u", Name: "", NotifyPreference: models.NotifyPreferenceSMS},
		{UserID: "u", Name: "x", NotifyPreference: "pigeon"},
	}
	for i, c := range cases {
		if err := svc.SaveContact(ctx, &c); !errors.Is(err, apperr.ErrValidation) {
			t.Errorf("case %d: expected validation error, got %v", i, err)
		}
	}

	ok := models.EmergencyContact{UserID: "u", Name: "x", NotifyPreference: models.NotifyPreferenceEmail}
	if err := svc.SaveContact(ctx, &ok); err != nil {
		t.Fatalf("valid contact rejected: %v", err)
	}
	if ok.ID == "" {
		t.Error("expected generated contact id")
	}
}
