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

type CommitmentReadStore struct {
	db db.DBTX
}

func NewCommitmentReadStore(dbtx db.DBTX) *CommitmentReadStore {
	return &CommitmentReadStore{db: dbtx}
}

const getCommitmentByIDSQL = `
SELECT c.id, c.deal_id, d.name, c.user_id, c.status, c.total_cents,
       c.modified_by_distributor, c.modified_total_cents, c.distributor_response,
       c.created_at, c.updated_at
FROM commitments c
JOIN deals d ON d.id = c.deal_id
WHERE c.id = $1`

const getCommitmentLinesSQL = `
SELECT label, quantity, unit_price_cents, original_unit_price_cents,
       total_cents, applied_tier_quantity, modified
FROM commitment_sizes
WHERE commitment_id = $1
ORDER BY modified, label`

func (r *CommitmentReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.CommitmentView, error) {
	var v queries.CommitmentView
	err := r.db.QueryRow(ctx, getCommitmentByIDSQL, id).Scan(
		&v.ID, &v.DealID, &v.DealName, &v.UserID, &v.Status, &v.TotalCents,
		&v.ModifiedByDistributor, &v.ModifiedTotalCents, &v.DistributorResponse,
		&v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, errs.Mark(infra.WrapRepoErr("commitment not found", err, infra.KindNotFound), queries.ErrCommitmentNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find commitment by ID", err)
	}

	rows, err := r.db.Query(ctx, getCommitmentLinesSQL, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load commitment sizes", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			l        queries.CommitmentLineView
			modified bool
		)
		if err := rows.Scan(
			&l.SizeLabel, &l.Quantity, &l.UnitPriceCents, &l.OriginalUnitPriceCents,
			&l.TotalCents, &l.AppliedTierQuantity, &modified,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan commitment size", err)
		}
		if modified {
			v.ModifiedLines = append(v.ModifiedLines, l)
		} else {
			v.Lines = append(v.Lines, l)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate commitment sizes", err)
	}

	return &v, nil
}

const getCommitmentsByUserSQL = `
SELECT c.id, c.deal_id, d.name, c.status, c.total_cents, c.created_at
FROM commitments c
JOIN deals d ON d.id = c.deal_id
WHERE c.user_id = $1
ORDER BY c.created_at DESC`

func (r *CommitmentReadStore) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*queries.CommitmentListItem, error) {
	rows, err := r.db.Query(ctx, getCommitmentsByUserSQL, userID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query commitments by user", err)
	}
	defer rows.Close()

	var out []*queries.CommitmentListItem
	for rows.Next() {
		var item queries.CommitmentListItem
		if err := rows.Scan(&item.ID, &item.DealID, &item.DealName, &item.Status, &item.TotalCents, &item.CreatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan commitment list item", err)
		}
		out = append(out, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate commitments", err)
	}
	return out, nil
}

const getDealDistributorSQL = `SELECT distributor_id FROM deals WHERE id = $1`

func (r *CommitmentReadStore) DealDistributorID(ctx context.Context, dealID uuid.UUID) (uuid.UUID, error) {
	var distributorID uuid.UUID
	err := r.db.QueryRow(ctx, getDealDistributorSQL, dealID).Scan(&distributorID)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return uuid.Nil, errs.Mark(infra.WrapRepoErr("deal not found", err, infra.KindNotFound), queries.ErrDealNotFound)
		}
		return uuid.Nil, infra.WrapRepoErr("failed to resolve deal distributor", err)
	}
	return distributorID, nil
}
