package readstore

import (
	"context"
	"time"

	"groupbuy-api/internal/infra"
	"groupbuy-api/internal/infra/db"
	"groupbuy-api/internal/usecase/queries"

	"github.com/google/uuid"
)

type SummaryReadStore struct {
	db db.DBTX
}

func NewSummaryReadStore(dbtx db.DBTX) *SummaryReadStore {
	return &SummaryReadStore{db: dbtx}
}

const getSummariesByUserAndDateSQL = `
SELECT id, summary_date, user_id, distributor_id,
       total_commitments, total_quantity, total_amount_cents, email_sent
FROM daily_summaries
WHERE user_id = $1 AND summary_date = $2
ORDER BY distributor_id`

const getSummaryItemsSQL = `
SELECT commitment_id, deal_id, deal_name, quantity, total_cents, size_details
FROM daily_summary_items
WHERE summary_id = $1
ORDER BY deal_name`

func (r *SummaryReadStore) FindByUserAndDate(ctx context.Context, userID uuid.UUID, day time.Time) ([]*queries.DailySummaryView, error) {
	rows, err := r.db.Query(ctx, getSummariesByUserAndDateSQL, userID, day)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query daily summaries", err)
	}
	defer rows.Close()

	var out []*queries.DailySummaryView
	for rows.Next() {
		var v queries.DailySummaryView
		if err := rows.Scan(
			&v.ID, &v.SummaryDate, &v.UserID, &v.DistributorID,
			&v.TotalCommitments, &v.TotalQuantity, &v.TotalAmountCents, &v.EmailSent,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan daily summary", err)
		}
		out = append(out, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate daily summaries", err)
	}

	for _, v := range out {
		items, err := r.loadItems(ctx, v.ID)
		if err != nil {
			return nil, err
		}
		v.Items = items
	}
	return out, nil
}

func (r *SummaryReadStore) loadItems(ctx context.Context, summaryID uuid.UUID) ([]queries.SummaryItemView, error) {
	rows, err := r.db.Query(ctx, getSummaryItemsSQL, summaryID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load summary items", err)
	}
	defer rows.Close()

	var items []queries.SummaryItemView
	for rows.Next() {
		var item queries.SummaryItemView
		if err := rows.Scan(&item.CommitmentID, &item.DealID, &item.DealName, &item.Quantity, &item.TotalCents, &item.SizeDetails); err != nil {
			return nil, infra.WrapRepoErr("failed to scan summary item", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate summary items", err)
	}
	return items, nil
}

// SummaryMailRow is the slice of a summary the daily mail batch needs.
type SummaryMailRow struct {
	ID               uuid.UUID
	UserID           uuid.UUID
	TotalCommitments int32
	TotalQuantity    int32
	TotalAmountCents int64
}

const listUnsentSummariesSQL = `
SELECT id, user_id, total_commitments, total_quantity, total_amount_cents
FROM daily_summaries
WHERE summary_date = $1 AND NOT email_sent
ORDER BY user_id`

func (r *SummaryReadStore) ListUnsent(ctx context.Context, day time.Time) ([]SummaryMailRow, error) {
	rows, err := r.db.Query(ctx, listUnsentSummariesSQL, day)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query unsent summaries", err)
	}
	defer rows.Close()

	var out []SummaryMailRow
	for rows.Next() {
		var s SummaryMailRow
		if err := rows.Scan(&s.ID, &s.UserID, &s.TotalCommitments, &s.TotalQuantity, &s.TotalAmountCents); err != nil {
			return nil, infra.WrapRepoErr("failed to scan unsent summary", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate unsent summaries", err)
	}
	return out, nil
}

const markSummaryEmailSentSQL = `
UPDATE daily_summaries SET email_sent = true, updated_at = now() WHERE id = $1`

func (r *SummaryReadStore) MarkEmailSent(ctx context.Context, summaryID uuid.UUID) error {
	if _, err := r.db.Exec(ctx, markSummaryEmailSentSQL, summaryID); err != nil {
		return infra.WrapRepoErr("failed to mark summary email sent", err)
	}
	return nil
}
