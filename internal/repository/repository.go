package repository

import (
	"context"

	"github.com/safetravel/go-travel-safety/internal/models"
)

type SOSEventRepository interface {
	AddEvent(ctx context.Context, e *models.SOSEvent) error
	GetEventByID(ctx context.Context, id string) (*models.SOSEvent, error)
	ListEventsByUser(ctx context.Context, userID string) ([]models.SOSEvent, error)
	UpdateEventStatus(ctx context.Context, id string, status models.SOSStatus) error
}

type ContactRepository interface {
	UpsertContact(ctx context.Context, c *models.EmergencyContact) error
	ListContactsByUser(ctx context.Context, userID string) ([]models.EmergencyContact, error)
	DeleteContact(ctx context.Context, id string) error
}
