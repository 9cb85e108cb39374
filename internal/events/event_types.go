package events

import (
	"time"

	"github.com/siports/event-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered  EventType = "user_registered"
	EventUserValidated   EventType = "user_validated"
	EventUserRejected    EventType = "user_rejected"
	EventPackageAssigned EventType = "package_assigned"
	EventMessageSent     EventType = "message_sent"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	UserID    string      `json:"user_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
}

// ValidationChangedPayload payload for validate/reject events.
type ValidationChangedPayload struct {
	Email    string                 `json:"email"`
	NewState domain.ValidationState `json:"new_state"`
	AdminID  string                 `json:"admin_id"`
}

// PackageAssignedPayload payload.
type PackageAssignedPayload struct {
	Audience domain.PackageAudience `json:"audience"`
	TierName string                 `json:"tier_name"`
}

// MessageSentPayload payload.
type MessageSentPayload struct {
	MessageID   string `json:"message_id"`
	RecipientID string `json:"recipient_id"`
	Preview     string `json:"preview"`
}
