// Package sos records emergency events and notifies the user's
// registered contacts and the relevant authorities.
package sos

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/safetravel/go-travel-safety/internal/apperr"
	"github.com/safetravel/go-travel-safety/internal/models"
	"github.com/safetravel/go-travel-safety/internal/notify"
	"github.com/safetravel/go-travel-safety/internal/repository"
	"github.com/safetravel/go-travel-safety/internal/worker"
)

// dispatch is one queued notification.
type dispatch struct {
	sender notify.Sender
	msg    notify.Message
}

type Service struct {
	events   repository.SOSEventRepository
	contacts repository.ContactRepository
	sms      notify.Sender
	email    notify.Sender
	pool     *worker.Pool[dispatch]
}

func NewService(events repository.SOSEventRepository, contacts repository.ContactRepository, sms, email notify.Sender, workers, bufferSize int) *Service {
	processor := func(ctx context.Context, d dispatch) error {
		if err := d.sender.Send(ctx, d.msg); err != nil {
			slog.Error("notification failed", "channel", d.sender.Channel(), "to", d.msg.Destination, "error", err)
			return err
		}
		return nil
	}

	return &Service{
		events:   events,
		contacts: contacts,
		sms:      sms,
		email:    email,
		pool:     worker.NewPool(workers, bufferSize, processor),
	}
}

// Start launches the notification workers. Stop drains them.
func (s *Service) Start(ctx context.Context) { s.pool.Start(ctx) }
func (s *Service) Stop()                     { s.pool.Stop() }

// Raise stores an active SOS event, queues notifications to every
// registered contact per their preference, and informs the authorities
// mapped to the emergency type. Notification delivery is asynchronous
// and best-effort; Raise succeeds once the event is persisted.
func (s *Service) Raise(ctx context.Context, userID string, location models.Coordinates, emergencyType models.EmergencyType) (*models.SOSEvent, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, apperr.Validation("userId is required")
	}

	event := &models.SOSEvent{
		ID:            uuid.NewString(),
		UserID:        userID,
		Location:      location,
		EmergencyType: emergencyType,
		Status:        models.SOSStatusActive,
		CreatedAt:     time.Now().UTC(),
	}

	if err := s.events.AddEvent(ctx, event); err != nil {
		return nil, apperr.Wrap("storing sos event", err)
	}

	contacts, err := s.contacts.ListContactsByUser(ctx, userID)
	if err != nil {
		// Event is already recorded; contacts are a side channel.
		slog.Error("loading contacts failed", "userId", userID, "error", err)
		contacts = nil
	}

	for _, c := range contacts {
		body := alertMessage(event, c)
		if c.WantsSMS() && c.Phone != "" {
			s.pool.Submit(dispatch{sender: s.sms, msg: notify.Message{Destination: c.Phone, Body: body}})
		}
		if c.WantsEmail() && c.Email != "" {
			s.pool.Submit(dispatch{sender: s.email, msg: notify.Message{Destination: c.Email, Subject: "SOS Alert", Body: body}})
		}
	}

	s.notifyAuthorities(event)

	slog.Info("sos raised", "id", event.ID, "type", event.EmergencyType, "contacts", len(contacts))
	return event, nil
}

// Resolve marks an active event resolved.
func (s *Service) Resolve(ctx context.Context, id string) error {
	if err := s.events.UpdateEventStatus(ctx, id, models.SOSStatusResolved); err != nil {
		return apperr.Wrap("resolving sos event", err)
	}
	return nil
}

func (s *Service) SaveContact(ctx context.Context, c *models.EmergencyContact) error {
	if strings.TrimSpace(c.UserID) == "" {
		return apperr.Validation("userId is required")
	}
	if strings.TrimSpace(c.Name) == "" {
		return apperr.Validation("contact name is required")
	}
	switch c.NotifyPreference {
	case models.NotifyPreferenceSMS, models.NotifyPreferenceEmail, models.NotifyPreferenceBoth:
	default:
		return apperr.Validation("unknown notification preference %q", c.NotifyPreference)
	}

	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	if err := s.contacts.UpsertContact(ctx, c); err != nil {
		return apperr.Wrap("saving contact", err)
	}
	return nil
}

func (s *Service) ContactsByUser(ctx context.Context, userID string) ([]models.EmergencyContact, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, apperr.Validation("userId is required")
	}
	contacts, err := s.contacts.ListContactsByUser(ctx, userID)
	if err != nil {
		return nil, apperr.Wrap("listing contacts", err)
	}
	return contacts, nil
}

// notifyAuthorities simulates the emergency-services hand-off.
func (s *Service) notifyAuthorities(event *models.SOSEvent) {
	slog.Info("authorities notified",
		"services", strings.Join(authoritiesFor(event.EmergencyType), ","),
		"type", event.EmergencyType,
		"location", mapsLink(event.Location),
	)
}
