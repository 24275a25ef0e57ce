package repository

import (
	"context"

	"groupbuy-api/internal/infra"
	"groupbuy-api/internal/infra/db"

	"github.com/google/uuid"
)

type AuditLogRepository struct{}

func NewAuditLogRepository() *AuditLogRepository {
	return &AuditLogRepository{}
}

const appendAuditLogSQL = `
INSERT INTO audit_logs (id, user_id, severity, message, created_at)
VALUES ($1, $2, $3, $4, now())`

func (r *AuditLogRepository) Append(ctx context.Context, dbtx db.DBTX, userID *uuid.UUID, severity, message string) error {
	if _, err := dbtx.Exec(ctx, appendAuditLogSQL, uuid.New(), userID, severity, message); err != nil {
		return infra.WrapRepoErr("failed to append audit log", err)
	}
	return nil
}
