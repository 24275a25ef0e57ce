package commands

import (
	"encoding/json"
	"time"

	"groupbuy-api/internal/usecase/shared"

	"github.com/google/uuid"
)

// Outbox payloads. Jobs are written in the commitment transaction and drained
// by the dispatcher worker; nothing on the request path talks to a provider.

type NotificationPayload struct {
	Type        string     `json:"type"`
	SubType     string     `json:"sub_type"`
	Title       string     `json:"title"`
	Message     string     `json:"message"`
	RelatedID   *uuid.UUID `json:"related_id,omitempty"`
	RelatedKind string     `json:"related_kind,omitempty"`
	Priority    string     `json:"priority"`
	// Role fans the notification out to every user holding it instead of a
	// single recipient.
	Role string `json:"role,omitempty"`
}

type EmailPayload struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

type SMSPayload struct {
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

const (
	PriorityNormal = "normal"
	PriorityHigh   = "high"
)

func notificationJob(topic string, recipient *uuid.UUID, p NotificationPayload, runAt time.Time) shared.OutboxJob {
	payload, _ := json.Marshal(p)
	return shared.OutboxJob{
		Kind:        shared.JobKindNotification,
		Topic:       topic,
		RecipientID: recipient,
		Payload:     payload,
		RunAt:       runAt,
	}
}

func emailJob(topic string, recipient uuid.UUID, p EmailPayload, runAt time.Time) shared.OutboxJob {
	payload, _ := json.Marshal(p)
	return shared.OutboxJob{
		Kind:        shared.JobKindEmail,
		Topic:       topic,
		RecipientID: &recipient,
		Payload:     payload,
		RunAt:       runAt,
	}
}

func smsJob(topic string, recipient uuid.UUID, p SMSPayload, runAt time.Time) shared.OutboxJob {
	payload, _ := json.Marshal(p)
	return shared.OutboxJob{
		Kind:        shared.JobKindSMS,
		Topic:       topic,
		RecipientID: &recipient,
		Payload:     payload,
		RunAt:       runAt,
	}
}
