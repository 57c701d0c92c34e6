// Package notify delivers SOS messages to emergency contacts. Delivery
// is best-effort: failures are logged, never propagated to the SOS flow.
package notify

import (
	"context"
	"log/slog"
)

// Message is one outbound notification.
type Message struct {
	Destination string // phone number or email address
	Subject     string // used by email senders only
	Body        string
}

// Sender delivers one message to one destination.
type Sender interface {
	Send(ctx context.Context, msg Message) error
	Channel() string // "sms" or "email"
}

// SMSSender simulates SMS delivery. A real deployment would swap in a
// gateway-backed implementation behind the same interface.
type SMSSender struct{}

func (SMSSender) Channel() string { return "sms" }

func (SMSSender) Send(ctx context.Context, msg Message) error {
	slog.Info("simulated SMS sent", "to", msg.Destination, "chars", len(msg.Body))
	slog.Debug("SMS body", "to", msg.Destination, "body", msg.Body)
	return nil
}

// EmailSender simulates email delivery.
type EmailSender struct{}

func (EmailSender) Channel() string { return "email" }

func (EmailSender) Send(ctx context.Context, msg Message) error {
	slog.Info("simulated email sent", "to", msg.Destination, "subject", msg.Subject)
	slog.Debug("email body", "to", msg.Destination, "body", msg.Body)
	return nil
}
