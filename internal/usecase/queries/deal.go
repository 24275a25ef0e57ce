package queries

import (
	"context"

	"groupbuy-api/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrDealNotFound = errs.New("deal not found")

type DealReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*DealView, error)
}

type DealQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*DealView, error)
}

type dealQueriesImpl struct {
	store DealReadStore
}

func NewDealQueries(store DealReadStore) DealQueries {
	return &dealQueriesImpl{store: store}
}

func (q *dealQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*DealView, error) {
	return q.store.FindByID(ctx, id)
}
