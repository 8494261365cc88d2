package network

import (
	"context"

	"ringfall/server/logging"
)

const (
	// EventMalformedMessage is emitted when an inbound frame fails to parse.
	EventMalformedMessage logging.EventType = "network.malformed_message"
	// EventClientError is emitted when a recoverable error is sent to a client.
	EventClientError logging.EventType = "network.client_error"
)

// MalformedMessage publishes a discarded-frame event.
func MalformedMessage(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, detail string) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventMalformedMessage,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityWarn,
		Category: logging.CategoryNetwork,
		Payload:  map[string]string{"detail": detail},
	})
}

// ClientError publishes a per-client recoverable error event.
func ClientError(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, message string) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventClientError,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityInfo,
		Category: logging.CategoryNetwork,
		Payload:  map[string]string{"message": message},
	})
}
