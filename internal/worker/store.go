package worker

import (
	"context"
	"encoding/json"
	"time"

	"groupbuy-api/internal/infra"
	"groupbuy-api/internal/infra/db"

	"github.com/google/uuid"
)

// Job is one claimed outbox row.
type Job struct {
	ID          uuid.UUID
	Kind        string
	Topic       string
	RecipientID *uuid.UUID
	Payload     json.RawMessage
}

type OutboxStore struct {
	db db.DBTX
}

func NewOutboxStore(dbtx db.DBTX) *OutboxStore {
	return &OutboxStore{db: dbtx}
}

// SKIP LOCKED lets multiple dispatcher instances drain concurrently without
// double-delivering a job.
const claimJobsSQL = `
UPDATE notification_jobs
SET status = 'processing'
WHERE id IN (
    SELECT id FROM notification_jobs
    WHERE status = 'pending' AND run_at <= $1
    ORDER BY created_at
    LIMIT $2
    FOR UPDATE SKIP LOCKED
)
RETURNING id, kind, topic, recipient_id, payload`

func (s *OutboxStore) ClaimPending(ctx context.Context, now time.Time, limit int) ([]Job, error) {
	rows, err := s.db.Query(ctx, claimJobsSQL, now, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to claim outbox jobs", err)
	}
	defer rows.Close()

	var jobs []Job
	for rows.Next() {
		var j Job
		if err := rows.Scan(&j.ID, &j.Kind, &j.Topic, &j.RecipientID, &j.Payload); err != nil {
			return nil, infra.WrapRepoErr("failed to scan outbox job", err)
		}
		jobs = append(jobs, j)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate outbox jobs", err)
	}
	return jobs, nil
}

const markJobSQL = `UPDATE notification_jobs SET status = $2 WHERE id = $1`

func (s *OutboxStore) MarkSent(ctx context.Context, id uuid.UUID) error {
	if _, err := s.db.Exec(ctx, markJobSQL, id, "sent"); err != nil {
		return infra.WrapRepoErr("failed to mark job sent", err)
	}
	return nil
}

func (s *OutboxStore) MarkFailed(ctx context.Context, id uuid.UUID) error {
	if _, err := s.db.Exec(ctx, markJobSQL, id, "failed"); err != nil {
		return infra.WrapRepoErr("failed to mark job failed", err)
	}
	return nil
}
