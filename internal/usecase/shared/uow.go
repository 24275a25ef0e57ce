package shared

import (
	"context"

	"groupbuy-api/internal/infra/db"
)

type UnitOfWork interface {
	// Within: full transaction for write operations with retry on
	// serialization failures.
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithDB: single query operations using implicit transactions.
	WithDB(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error
}

type Tx interface {
	Deals() DealRepository
	Commitments() CommitmentRepository
	Summaries() DailySummaryRepository
	Outbox() OutboxRepository
	Audit() AuditLogRepository
	Users() UserRepository
	DB() db.DBTX
}
