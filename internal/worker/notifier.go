package worker

import (
	"context"

	"groupbuy-api/internal/infra"
	"groupbuy-api/internal/infra/db"
	"groupbuy-api/internal/usecase/commands"

	"github.com/google/uuid"
)

// Notifier delivers one in-app notification and returns its id.
type Notifier interface {
	Notify(ctx context.Context, recipientID uuid.UUID, p commands.NotificationPayload) (uuid.UUID, error)
}

type pgNotifier struct {
	db db.DBTX
}

func NewNotifier(dbtx db.DBTX) Notifier {
	return &pgNotifier{db: dbtx}
}

const insertNotificationSQL = `
INSERT INTO notifications (id, recipient_id, type, sub_type, title, message,
                           related_id, related_kind, priority, read, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, false, now())`

func (n *pgNotifier) Notify(ctx context.Context, recipientID uuid.UUID, p commands.NotificationPayload) (uuid.UUID, error) {
	id := uuid.New()
	var relatedKind *string
	if p.RelatedKind != "" {
		relatedKind = &p.RelatedKind
	}
	_, err := n.db.Exec(ctx, insertNotificationSQL,
		id, recipientID, p.Type, p.SubType, p.Title, p.Message,
		p.RelatedID, relatedKind, p.Priority,
	)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to insert notification", err)
	}
	return id, nil
}

// disabledNotifier is used when NOTIFICATIONS_ENABLED=false. It hands back a
// valid id so callers behave identically with the sink switched off.
type disabledNotifier struct{}

func NewDisabledNotifier() Notifier {
	return disabledNotifier{}
}

func (disabledNotifier) Notify(context.Context, uuid.UUID, commands.NotificationPayload) (uuid.UUID, error) {
	return uuid.New(), nil
}
