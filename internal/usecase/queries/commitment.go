package queries

import (
	"context"

	"groupbuy-api/internal/domain/auth"
	"groupbuy-api/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrCommitmentNotFound = errs.New("commitment not found")
	ErrNotOwner           = errs.New("commitment not owned by user")
)

type CommitmentReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*CommitmentView, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*CommitmentListItem, error)
	// DealDistributorID resolves the owning distributor for access checks.
	DealDistributorID(ctx context.Context, dealID uuid.UUID) (uuid.UUID, error)
}

type CommitmentQueries interface {
	GetByID(ctx context.Context, actor auth.Context, id uuid.UUID) (*CommitmentView, error)
	// GetByIDSystem skips access checks; used for read-after-write inside
	// commands.
	GetByIDSystem(ctx context.Context, id uuid.UUID) (*CommitmentView, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*CommitmentListItem, error)
}

type commitmentQueriesImpl struct {
	store CommitmentReadStore
}

func NewCommitmentQueries(store CommitmentReadStore) CommitmentQueries {
	return &commitmentQueriesImpl{store: store}
}

func (q *commitmentQueriesImpl) GetByID(ctx context.Context, actor auth.Context, id uuid.UUID) (*CommitmentView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if actor.IsAdmin() || view.UserID == actor.EffectiveUserID() {
		return view, nil
	}
	if actor.IsDistributor() {
		distributorID, derr := q.store.DealDistributorID(ctx, view.DealID)
		if derr == nil && distributorID == actor.EffectiveUserID() {
			return view, nil
		}
	}
	return nil, ErrNotOwner
}

func (q *commitmentQueriesImpl) GetByIDSystem(ctx context.Context, id uuid.UUID) (*CommitmentView, error) {
	return q.store.FindByID(ctx, id)
}

func (q *commitmentQueriesImpl) ListByUser(ctx context.Context, userID uuid.UUID) ([]*CommitmentListItem, error) {
	return q.store.FindByUserID(ctx, userID)
}
