package repository

import (
	"context"
	"time"

	"groupbuy-api/internal/domain/deal"
	"groupbuy-api/internal/infra"
	"groupbuy-api/internal/infra/db"
	"groupbuy-api/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type DealRepository struct{}

func NewDealRepository() *DealRepository {
	return &DealRepository{}
}

const findDealForUpdateSQL = `
SELECT id, distributor_id, name, status, min_qty_for_discount,
       commitment_start_at, commitment_ends_at,
       total_sold, total_revenue_cents, created_at, updated_at
FROM deals
WHERE id = $1
FOR UPDATE`

func (r *DealRepository) FindForUpdate(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*deal.Deal, error) {
	var (
		dealID, distributorID uuid.UUID
		name, status          string
		minQty                int32
		startAt, endsAt       *time.Time
		totalSold             int64
		totalRevenueCents     int64
		createdAt, updatedAt  time.Time
	)
	err := dbtx.QueryRow(ctx, findDealForUpdateSQL, id).Scan(
		&dealID, &distributorID, &name, &status, &minQty,
		&startAt, &endsAt, &totalSold, &totalRevenueCents, &createdAt, &updatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("deal not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find deal for update", err)
	}

	sizes, err := r.loadSizes(ctx, dbtx, dealID)
	if err != nil {
		return nil, err
	}

	window, err := deal.NewWindow(startAt, endsAt)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid commitment window in deals row", err)
	}

	st, err := deal.NewStatus(status)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid status in deals row", err)
	}

	return deal.ReconstructDeal(
		dealID, distributorID, name, st, minQty, window, sizes,
		totalSold, totalRevenueCents, createdAt, updatedAt,
	), nil
}

const loadDealSizesSQL = `
SELECT label, original_cost_cents, discount_price_cents
FROM deal_sizes
WHERE deal_id = $1
ORDER BY label`

const loadDealTiersSQL = `
SELECT ds.label, dt.quantity, dt.price_cents
FROM discount_tiers dt
JOIN deal_sizes ds ON ds.id = dt.size_id
WHERE ds.deal_id = $1
ORDER BY ds.label, dt.quantity`

func (r *DealRepository) loadSizes(ctx context.Context, dbtx db.DBTX, dealID uuid.UUID) ([]deal.Size, error) {
	rows, err := dbtx.Query(ctx, loadDealSizesSQL, dealID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load deal sizes", err)
	}
	defer rows.Close()

	var sizes []deal.Size
	index := make(map[string]int)
	for rows.Next() {
		var s deal.Size
		if err := rows.Scan(&s.Label, &s.OriginalCostCents, &s.DiscountPriceCents); err != nil {
			return nil, infra.WrapRepoErr("failed to scan deal size", err)
		}
		index[s.Label] = len(sizes)
		sizes = append(sizes, s)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate deal sizes", err)
	}

	tierRows, err := dbtx.Query(ctx, loadDealTiersSQL, dealID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load discount tiers", err)
	}
	defer tierRows.Close()

	for tierRows.Next() {
		var (
			label string
			t     deal.Tier
		)
		if err := tierRows.Scan(&label, &t.Quantity, &t.PriceCents); err != nil {
			return nil, infra.WrapRepoErr("failed to scan discount tier", err)
		}
		if i, ok := index[label]; ok {
			sizes[i].Tiers = append(sizes[i].Tiers, t)
		}
	}
	if err := tierRows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate discount tiers", err)
	}

	return sizes, nil
}

const createDealSQL = `
INSERT INTO deals (id, distributor_id, name, status, min_qty_for_discount,
                   commitment_start_at, commitment_ends_at,
                   total_sold, total_revenue_cents, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, 0, 0, now(), now())`

const createDealSizeSQL = `
INSERT INTO deal_sizes (id, deal_id, label, original_cost_cents, discount_price_cents)
VALUES ($1, $2, $3, $4, $5)`

const createDiscountTierSQL = `
INSERT INTO discount_tiers (id, size_id, quantity, price_cents)
VALUES ($1, $2, $3, $4)`

func (r *DealRepository) Create(ctx context.Context, dbtx db.DBTX, d *deal.Deal) (uuid.UUID, error) {
	w := d.Window()
	_, err := dbtx.Exec(ctx, createDealSQL,
		d.ID(), d.DistributorID(), d.Name(), string(d.Status()), d.MinQtyForDiscount(),
		w.StartAt(), w.EndsAt(),
	)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create deal", err)
	}

	for _, s := range d.Sizes() {
		sizeID := uuid.New()
		if _, err := dbtx.Exec(ctx, createDealSizeSQL, sizeID, d.ID(), s.Label, s.OriginalCostCents, s.DiscountPriceCents); err != nil {
			return uuid.Nil, infra.WrapRepoErr("failed to create deal size", err, infra.ClassifyPgErr(err))
		}
		for _, t := range s.Tiers {
			if _, err := dbtx.Exec(ctx, createDiscountTierSQL, uuid.New(), sizeID, t.Quantity, t.PriceCents); err != nil {
				return uuid.Nil, infra.WrapRepoErr("failed to create discount tier", err)
			}
		}
	}

	return d.ID(), nil
}

const saveDealAggregatesSQL = `
UPDATE deals
SET total_sold = $2, total_revenue_cents = $3, updated_at = now()
WHERE id = $1`

func (r *DealRepository) SaveAggregates(ctx context.Context, dbtx db.DBTX, d *deal.Deal) error {
	tag, err := dbtx.Exec(ctx, saveDealAggregatesSQL, d.ID(), d.TotalSold(), d.TotalRevenueCents())
	if err != nil {
		return infra.WrapRepoErr("failed to save deal aggregates", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("deal not found", pgx.ErrNoRows, infra.KindNotFound)
	}
	return nil
}

const appendApprovalHistorySQL = `
INSERT INTO deal_approval_history (id, deal_id, user_id, commitment_id, message, created_at)
VALUES ($1, $2, $3, $4, $5, now())`

func (r *DealRepository) AppendApprovalHistory(ctx context.Context, dbtx db.DBTX, dealID, userID, commitmentID uuid.UUID, message string) error {
	if _, err := dbtx.Exec(ctx, appendApprovalHistorySQL, uuid.New(), dealID, userID, commitmentID, message); err != nil {
		return infra.WrapRepoErr("failed to append approval history", err, infra.ClassifyPgErr(err))
	}
	return nil
}
