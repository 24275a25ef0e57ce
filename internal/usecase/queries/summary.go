package queries

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type SummaryReadStore interface {
	FindByUserAndDate(ctx context.Context, userID uuid.UUID, day time.Time) ([]*DailySummaryView, error)
}

type SummaryQueries interface {
	// GetDaily returns one summary per distributor the member committed to on
	// that day.
	GetDaily(ctx context.Context, userID uuid.UUID, day time.Time) ([]*DailySummaryView, error)
}

type summaryQueriesImpl struct {
	store SummaryReadStore
}

func NewSummaryQueries(store SummaryReadStore) SummaryQueries {
	return &summaryQueriesImpl{store: store}
}

func (q *summaryQueriesImpl) GetDaily(ctx context.Context, userID uuid.UUID, day time.Time) ([]*DailySummaryView, error) {
	return q.store.FindByUserAndDate(ctx, userID, day)
}
