package sos

import (
	"fmt"

	"github.com/safetravel/go-travel-safety/internal/models"
)

func mapsLink(c models.Coordinates) string {
	return fmt.Sprintf("https://www.google.com/maps?q=%f,%f", c.Latitude, c.Longitude)
}

func emergencyPhrase(t models.EmergencyType) string {
	switch t {
	case models.EmergencyTypeHarassment:
		return "reported harassment"
	case models.EmergencyTypeMedical:
		return "needs urgent medical assistance"
	case models.EmergencyTypeAccident:
		return "has been in an accident"
	default:
		return "raised an emergency"
	}
}

// alertMessage builds the notification body sent to one contact.
func alertMessage(event *models.SOSEvent, contact models.EmergencyContact) string {
	return fmt.Sprintf(`EMERGENCY SOS ALERT

%s, this is an emergency notification.

Your contact has %s and needs immediate assistance.

Location: %s

If you received this message, please:
1. Try to contact them immediately
2. Share this location with relevant authorities
3. Proceed to their location if possible
4. Reply to confirm you received this alert

This is an automated message from SafeTravel Emergency Response System.
`, contact.Name, emergencyPhrase(event.EmergencyType), mapsLink(event.Location))
}

// authoritiesFor maps an emergency type to the services that should be
// informed.
func authoritiesFor(t models.EmergencyType) []string {
	switch t {
	case models.EmergencyTypeHarassment:
		return []string{"police", "tourism-police"}
	case models.EmergencyTypeMedical:
		return []string{"ambulance", "hospitals"}
	case models.EmergencyTypeAccident:
		return []string{"police", "ambulance"}
	default:
		return []string{"police"}
	}
}
