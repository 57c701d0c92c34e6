package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/safetravel/go-travel-safety/internal/apperr"
	"github.com/safetravel/go-travel-safety/internal/models"
)

type SQLiteDB struct {
	db *sql.DB
}

func NewSQLiteDB(path string) (*SQLiteDB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("error while pinging database: %w", err)
	}

	s := &SQLiteDB{
		db: db,
	}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("error while migrating to database: %w", err)
	}

	return s, nil
}

func (s *SQLiteDB) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS sos_events (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			latitude REAL NOT NULL,
			longitude REAL NOT NULL,
			emergency_type TEXT NOT NULL,
			status TEXT NOT NULL,
			created_at DATETIME NOT NULL
		);

		CREATE TABLE IF NOT EXISTS emergency_contacts (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			name TEXT NOT NULL,
			phone TEXT,
			email TEXT,
			relationship TEXT,
			notify_preference TEXT NOT NULL,
			created_at DATETIME NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_sos_events_user_id ON sos_events(user_id);
		CREATE INDEX IF NOT EXISTS idx_emergency_contacts_user_id ON emergency_contacts(user_id);
  	`

	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLiteDB) Close() error {
	return s.db.Close()
}

func (s *SQLiteDB) AddEvent(ctx context.Context, e *models.SOSEvent) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sos_events (id, user_id, latitude, longitude, emergency_type, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.UserID, e.Location.Latitude, e.Location.Longitude, e.EmergencyType, e.Status, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("error inserting sos event: %w", err)
	}
	return nil
}

func (s *SQLiteDB) GetEventByID(ctx context.Context, id string) (*models.SOSEvent, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, latitude, longitude, emergency_type, status, created_at
		FROM sos_events WHERE id = ?`, id,
	)

	var e models.SOSEvent
	err := row.Scan(&e.ID, &e.UserID, &e.Location.Latitude, &e.Location.Longitude, &e.EmergencyType, &e.Status, &e.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("sos event %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("error scanning sos event: %w", err)
	}
	return &e, nil
}

func (s *SQLiteDB) ListEventsByUser(ctx context.Context, userID string) ([]models.SOSEvent, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, latitude, longitude, emergency_type, status, created_at
		FROM sos_events WHERE user_id = ? ORDER BY created_at DESC`, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("error querying sos events: %w", err)
	}
	defer rows.Close()

	var events []models.SOSEvent
	for rows.Next() {
		var e models.SOSEvent
		if err := rows.Scan(&e.ID, &e.UserID, &e.Location.Latitude, &e.Location.Longitude, &e.EmergencyType, &e.Status, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning sos event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (s *SQLiteDB) UpdateEventStatus(ctx context.Context, id string, status models.SOSStatus) error {
	res, err := s.db.ExecContext(ctx, `UPDATE sos_events SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return fmt.Errorf("error updating sos event: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return apperr.NotFound("sos event %s", id)
	}
	return nil
}

func (s *SQLiteDB) UpsertContact(ctx context.Context, c *models.EmergencyContact) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO emergency_contacts (id, user_id, name, phone, email, relationship, notify_preference, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			phone = excluded.phone,
			email = excluded.email,
			relationship = excluded.relationship,
			notify_preference = excluded.notify_preference`,
		c.ID, c.UserID, c.Name, c.Phone, c.Email, c.Relationship, c.NotifyPreference, c.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("error upserting contact: %w", err)
	}
	return nil
}

func (s *SQLiteDB) ListContactsByUser(ctx context.Context, userID string) ([]models.EmergencyContact, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, name, phone, email, relationship, notify_preference, created_at
		FROM emergency_contacts WHERE user_id = ? ORDER BY created_at`, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("error querying contacts: %w", err)
	}
	defer rows.Close()

	var contacts []models.EmergencyContact
	for rows.Next() {
		var c models.EmergencyContact
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.Phone, &c.Email, &c.Relationship, &c.NotifyPreference, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning contact: %w", err)
		}
		contacts = append(contacts, c)
	}
	return contacts, rows.Err()
}

func (s *SQLiteDB) DeleteContact(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM emergency_contacts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("error deleting contact: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return apperr.NotFound("contact %s", id)
	}
	return nil
}
