package shared

import (
	"context"
	"time"

	"groupbuy-api/internal/domain/commitment"
	"groupbuy-api/internal/domain/deal"
	"groupbuy-api/internal/infra/db"

	"github.com/google/uuid"
)

// Minimal write-side snapshot of a user, enough for validation and addressing
// side effects.
type UserSnapshot struct {
	ID       uuid.UUID
	Email    string
	Name     string
	Phone    *string
	Role     string
	IsActive bool
}

// SummaryItem is the denormalized per-commitment snapshot embedded in a daily
// summary. SizeDetails is serialized as JSON by the repository.
type SummaryItem struct {
	CommitmentID uuid.UUID
	DealID       uuid.UUID
	DealName     string
	Quantity     int32
	TotalCents   int64
	SizeDetails  []SummarySizeDetail
}

type SummarySizeDetail struct {
	SizeLabel      string `json:"size"`
	Quantity       int32  `json:"quantity"`
	UnitPriceCents int64  `json:"unit_price_cents"`
	TotalCents     int64  `json:"total_cents"`
}

// OutboxJob is one pending side effect written in the same transaction as the
// state change that caused it.
type OutboxJob struct {
	ID          uuid.UUID
	Kind        string // notification | email | sms
	Topic       string
	RecipientID *uuid.UUID
	Payload     []byte
	RunAt       time.Time
}

const (
	JobKindNotification = "notification"
	JobKindEmail        = "email"
	JobKindSMS          = "sms"
)

type DealRepository interface {
	// FindForUpdate locks the deal row, serializing all multi-commitment work
	// on one deal for the life of the transaction.
	FindForUpdate(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*deal.Deal, error)
	Create(ctx context.Context, dbtx db.DBTX, d *deal.Deal) (uuid.UUID, error)
	SaveAggregates(ctx context.Context, dbtx db.DBTX, d *deal.Deal) error
	AppendApprovalHistory(ctx context.Context, dbtx db.DBTX, dealID, userID, commitmentID uuid.UUID, message string) error
}

type CommitmentRepository interface {
	FindByID(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*commitment.Commitment, error)
	// FindActiveByDeal returns every non-cancelled commitment on the deal,
	// the pool the tier calculator evaluates.
	FindActiveByDeal(ctx context.Context, dbtx db.DBTX, dealID uuid.UUID) ([]*commitment.Commitment, error)
	Create(ctx context.Context, dbtx db.DBTX, c *commitment.Commitment) (uuid.UUID, error)
	// Update rewrites the commitment row and replaces its lines.
	Update(ctx context.Context, dbtx db.DBTX, c *commitment.Commitment) error
}

type DailySummaryRepository interface {
	// ReplaceItem upserts the (day, user, distributor) rollup, swaps the
	// embedded item for the commitment id, and recomputes the rollup totals.
	ReplaceItem(ctx context.Context, dbtx db.DBTX, day time.Time, userID, distributorID uuid.UUID, item SummaryItem) error
}

type OutboxRepository interface {
	Enqueue(ctx context.Context, dbtx db.DBTX, job OutboxJob) error
}

type AuditLogRepository interface {
	Append(ctx context.Context, dbtx db.DBTX, userID *uuid.UUID, severity, message string) error
}

type UserRepository interface {
	FindSnapshotByID(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*UserSnapshot, error)
	FindSnapshotsByRole(ctx context.Context, dbtx db.DBTX, role string) ([]*UserSnapshot, error)
	UpdateLastLogin(ctx context.Context, dbtx db.DBTX, userID uuid.UUID) error
}
