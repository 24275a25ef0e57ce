package repository

import (
	"context"

	"groupbuy-api/internal/infra"
	"groupbuy-api/internal/infra/db"
	"groupbuy-api/internal/usecase/shared"

	"github.com/google/uuid"
)

type OutboxRepository struct{}

func NewOutboxRepository() *OutboxRepository {
	return &OutboxRepository{}
}

const enqueueJobSQL = `
INSERT INTO notification_jobs (id, kind, topic, recipient_id, payload, status, run_at, created_at)
VALUES ($1, $2, $3, $4, $5, 'pending', $6, now())`

func (r *OutboxRepository) Enqueue(ctx context.Context, dbtx db.DBTX, job shared.OutboxJob) error {
	id := job.ID
	if id == uuid.Nil {
		id = uuid.New()
	}
	_, err := dbtx.Exec(ctx, enqueueJobSQL, id, job.Kind, job.Topic, job.RecipientID, job.Payload, job.RunAt)
	if err != nil {
		return infra.WrapRepoErr("failed to enqueue outbox job", err)
	}
	return nil
}
