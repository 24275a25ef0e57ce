package readstore

import (
	"context"

	"groupbuy-api/internal/infra"
	"groupbuy-api/internal/infra/db"
	"groupbuy-api/internal/pkg/errs"
	"groupbuy-api/internal/pkg/pgconv"
	"groupbuy-api/internal/usecase/queries"

	"github.com/google/uuid"
)

type DealReadStore struct {
	db db.DBTX
}

func NewDealReadStore(dbtx db.DBTX) *DealReadStore {
	return &DealReadStore{db: dbtx}
}

const getDealByIDSQL = `
SELECT id, distributor_id, name, status, min_qty_for_discount,
       commitment_start_at, commitment_ends_at,
       total_sold, total_revenue_cents, created_at, updated_at
FROM deals
WHERE id = $1`

const getDealSizesSQL = `
SELECT id, label, original_cost_cents, discount_price_cents
FROM deal_sizes
WHERE deal_id = $1
ORDER BY label`

const getDealTiersSQL = `
SELECT ds.label, dt.quantity, dt.price_cents
FROM discount_tiers dt
JOIN deal_sizes ds ON ds.id = dt.size_id
WHERE ds.deal_id = $1
ORDER BY ds.label, dt.quantity`

func (r *DealReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.DealView, error) {
	var v queries.DealView
	err := r.db.QueryRow(ctx, getDealByIDSQL, id).Scan(
		&v.ID, &v.DistributorID, &v.Name, &v.Status, &v.MinQtyForDiscount,
		&v.CommitmentStartAt, &v.CommitmentEndsAt,
		&v.TotalSold, &v.TotalRevenueCents, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, errs.Mark(infra.WrapRepoErr("deal not found", err, infra.KindNotFound), queries.ErrDealNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find deal by ID", err)
	}

	rows, err := r.db.Query(ctx, getDealSizesSQL, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load deal sizes", err)
	}
	defer rows.Close()

	index := make(map[string]int)
	for rows.Next() {
		var (
			sizeID uuid.UUID
			s      queries.DealSizeView
		)
		if err := rows.Scan(&sizeID, &s.Label, &s.OriginalCostCents, &s.DiscountPriceCents); err != nil {
			return nil, infra.WrapRepoErr("failed to scan deal size", err)
		}
		index[s.Label] = len(v.Sizes)
		v.Sizes = append(v.Sizes, s)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate deal sizes", err)
	}

	tierRows, err := r.db.Query(ctx, getDealTiersSQL, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load discount tiers", err)
	}
	defer tierRows.Close()

	for tierRows.Next() {
		var (
			label string
			t     queries.DiscountTierView
		)
		if err := tierRows.Scan(&label, &t.Quantity, &t.PriceCents); err != nil {
			return nil, infra.WrapRepoErr("failed to scan discount tier", err)
		}
		if i, ok := index[label]; ok {
			v.Sizes[i].Tiers = append(v.Sizes[i].Tiers, t)
		}
	}
	if err := tierRows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate discount tiers", err)
	}

	return &v, nil
}
