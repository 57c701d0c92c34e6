package models

import (
	"strings"
	"time"
)

type EmergencyType string

const (
	EmergencyTypeHarassment EmergencyType = "harassment"
	EmergencyTypeMedical    EmergencyType = "medical"
	EmergencyTypeAccident   EmergencyType = "accident"
)

func ParseEmergencyType(s string) (EmergencyType, bool) {
	switch strings.ToLower(s) {
	case "harassment":
		return EmergencyTypeHarassment, true
	case "medical":
		return EmergencyTypeMedical, true
	case "accident":
		return EmergencyTypeAccident, true
	default:
		return "", false
	}
}

type SOSStatus string

const (
	SOSStatusActive   SOSStatus = "active"
	SOSStatusResolved SOSStatus = "resolved"
)

// SOSEvent records one emergency raised by a user.
type SOSEvent struct {
	ID            string        `json:"id"`
	UserID        string        `json:"userId"`
	Location      Coordinates   `json:"location"`
	EmergencyType EmergencyType `json:"emergencyType"`
	Status        SOSStatus     `json:"status"`
	CreatedAt     time.Time     `json:"createdAt"`
}

type NotifyPreference string

const (
	NotifyPreferenceSMS   NotifyPreference = "sms"
	NotifyPreferenceEmail NotifyPreference = "email"
	NotifyPreferenceBoth  NotifyPreference = "both"
)

// EmergencyContact is a pre-registered person notified when the owning
// user raises an SOS.
type EmergencyContact struct {
	ID               string           `json:"id"`
	UserID           string           `json:"userId"`
	Name             string           `json:"name"`
	Phone            string           `json:"phone"`
	Email            string           `json:"email"`
	Relationship     string           `json:"relationship"`
	NotifyPreference NotifyPreference `json:"notificationPreference"`
	CreatedAt        time.Time        `json:"createdAt"`
}

func (c EmergencyContact) WantsSMS() bool {
	return c.NotifyPreference == NotifyPreferenceSMS || c.NotifyPreference == NotifyPreferenceBoth
}

func (c EmergencyContact) WantsEmail() bool {
	return c.NotifyPreference == NotifyPreferenceEmail || c.NotifyPreference == NotifyPreferenceBoth
}
