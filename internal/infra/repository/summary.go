package repository

import (
	"context"
	"encoding/json"
	"time"

	"groupbuy-api/internal/infra"
	"groupbuy-api/internal/infra/db"
	"groupbuy-api/internal/usecase/shared"

	"github.com/google/uuid"
)

type DailySummaryRepository struct{}

func NewDailySummaryRepository() *DailySummaryRepository {
	return &DailySummaryRepository{}
}

const upsertSummarySQL = `
INSERT INTO daily_summaries (id, summary_date, user_id, distributor_id,
                             total_commitments, total_quantity, total_amount_cents,
                             email_sent, created_at, updated_at)
VALUES ($1, $2, $3, $4, 0, 0, 0, false, now(), now())
ON CONFLICT (summary_date, user_id, distributor_id)
DO UPDATE SET updated_at = now()
RETURNING id`

const deleteSummaryItemSQL = `
DELETE FROM daily_summary_items WHERE summary_id = $1 AND commitment_id = $2`

const insertSummaryItemSQL = `
INSERT INTO daily_summary_items (id, summary_id, commitment_id, deal_id, deal_name,
                                 quantity, total_cents, size_details)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

const recomputeSummarySQL = `
UPDATE daily_summaries s
SET total_commitments = agg.cnt,
    total_quantity = agg.qty,
    total_amount_cents = agg.amount,
    updated_at = now()
FROM (
    SELECT COUNT(*) AS cnt,
           COALESCE(SUM(quantity), 0) AS qty,
           COALESCE(SUM(total_cents), 0) AS amount
    FROM daily_summary_items
    WHERE summary_id = $1
) agg
WHERE s.id = $1`

// ReplaceItem upserts the (day, user, distributor) rollup, swaps the embedded
// item for the commitment id, and recomputes the rollup totals from the
// remaining items. A repeat buy on the same day therefore never duplicates the
// commitment in the summary.
func (r *DailySummaryRepository) ReplaceItem(ctx context.Context, dbtx db.DBTX, day time.Time, userID, distributorID uuid.UUID, item shared.SummaryItem) error {
	var summaryID uuid.UUID
	err := dbtx.QueryRow(ctx, upsertSummarySQL, uuid.New(), day, userID, distributorID).Scan(&summaryID)
	if err != nil {
		return infra.WrapRepoErr("failed to upsert daily summary", err)
	}

	if _, err := dbtx.Exec(ctx, deleteSummaryItemSQL, summaryID, item.CommitmentID); err != nil {
		return infra.WrapRepoErr("failed to delete summary item", err)
	}

	details, err := json.Marshal(item.SizeDetails)
	if err != nil {
		return infra.WrapRepoErr("failed to marshal size details", err)
	}

	if _, err := dbtx.Exec(ctx, insertSummaryItemSQL,
		uuid.New(), summaryID, item.CommitmentID, item.DealID, item.DealName,
		item.Quantity, item.TotalCents, details,
	); err != nil {
		return infra.WrapRepoErr("failed to insert summary item", err)
	}

	if _, err := dbtx.Exec(ctx, recomputeSummarySQL, summaryID); err != nil {
		return infra.WrapRepoErr("failed to recompute summary totals", err)
	}
	return nil
}
