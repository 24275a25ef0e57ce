package repository

import (
	"context"
	"time"

	"groupbuy-api/internal/domain/commitment"
	"groupbuy-api/internal/infra"
	"groupbuy-api/internal/infra/db"
	"groupbuy-api/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type CommitmentRepository struct{}

func NewCommitmentRepository() *CommitmentRepository {
	return &CommitmentRepository{}
}

const findCommitmentByIDSQL = `
SELECT id, deal_id, user_id, status, total_cents,
       modified_by_distributor, modified_total_cents, distributor_response,
       created_at, updated_at
FROM commitments
WHERE id = $1`

func (r *CommitmentRepository) FindByID(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*commitment.Commitment, error) {
	row := dbtx.QueryRow(ctx, findCommitmentByIDSQL, id)
	c, err := r.scanCommitment(ctx, dbtx, row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("commitment not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find commitment", err)
	}
	return c, nil
}

const findActiveByDealSQL = `
SELECT id, deal_id, user_id, status, total_cents,
       modified_by_distributor, modified_total_cents, distributor_response,
       created_at, updated_at
FROM commitments
WHERE deal_id = $1 AND status <> 'cancelled'
ORDER BY created_at`

func (r *CommitmentRepository) FindActiveByDeal(ctx context.Context, dbtx db.DBTX, dealID uuid.UUID) ([]*commitment.Commitment, error) {
	rows, err := dbtx.Query(ctx, findActiveByDealSQL, dealID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query active commitments", err)
	}
	defer rows.Close()

	var out []*commitment.Commitment
	for rows.Next() {
		c, err := r.scanCommitment(ctx, dbtx, rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan commitment", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate commitments", err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *CommitmentRepository) scanCommitment(ctx context.Context, dbtx db.DBTX, row rowScanner) (*commitment.Commitment, error) {
	var (
		id, dealID, userID   uuid.UUID
		status               string
		totalCents           int64
		modified             bool
		modifiedTotalCents   *int64
		distributorResponse  *string
		createdAt, updatedAt time.Time
	)
	if err := row.Scan(
		&id, &dealID, &userID, &status, &totalCents,
		&modified, &modifiedTotalCents, &distributorResponse,
		&createdAt, &updatedAt,
	); err != nil {
		return nil, err
	}

	lines, modifiedLines, err := r.loadLines(ctx, dbtx, id)
	if err != nil {
		return nil, err
	}

	st, err := commitment.NewStatus(status)
	if err != nil {
		return nil, err
	}

	return commitment.ReconstructCommitment(
		id, dealID, userID, st, lines, totalCents,
		modified, modifiedLines, modifiedTotalCents, distributorResponse,
		createdAt, updatedAt,
	), nil
}

const loadCommitmentLinesSQL = `
SELECT label, quantity, unit_price_cents, original_unit_price_cents,
       total_cents, applied_tier_quantity, modified
FROM commitment_sizes
WHERE commitment_id = $1
ORDER BY modified, label`

func (r *CommitmentRepository) loadLines(ctx context.Context, dbtx db.DBTX, commitmentID uuid.UUID) (lines, modifiedLines []commitment.Line, err error) {
	rows, err := dbtx.Query(ctx, loadCommitmentLinesSQL, commitmentID)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			l        commitment.Line
			modified bool
		)
		if err := rows.Scan(
			&l.SizeLabel, &l.Quantity, &l.UnitPriceCents, &l.OriginalUnitPriceCents,
			&l.TotalCents, &l.AppliedTierQuantity, &modified,
		); err != nil {
			return nil, nil, err
		}
		if modified {
			modifiedLines = append(modifiedLines, l)
		} else {
			lines = append(lines, l)
		}
	}
	return lines, modifiedLines, rows.Err()
}

const createCommitmentSQL = `
INSERT INTO commitments (id, deal_id, user_id, status, total_cents,
                         modified_by_distributor, modified_total_cents, distributor_response,
                         created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now(), now())`

func (r *CommitmentRepository) Create(ctx context.Context, dbtx db.DBTX, c *commitment.Commitment) (uuid.UUID, error) {
	_, err := dbtx.Exec(ctx, createCommitmentSQL,
		c.ID(), c.DealID(), c.UserID(), c.Status().String(), c.TotalCents(),
		c.ModifiedByDistributor(), c.ModifiedTotalCents(), c.DistributorResponse(),
	)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create commitment", err, infra.ClassifyPgErr(err))
	}

	if err := r.insertLines(ctx, dbtx, c); err != nil {
		return uuid.Nil, err
	}
	return c.ID(), nil
}

const updateCommitmentSQL = `
UPDATE commitments
SET status = $2, total_cents = $3, modified_by_distributor = $4,
    modified_total_cents = $5, distributor_response = $6, updated_at = now()
WHERE id = $1`

const deleteCommitmentLinesSQL = `DELETE FROM commitment_sizes WHERE commitment_id = $1`

// Update rewrites the commitment row and replaces its line set wholesale.
// Line-level diffing is not worth the complexity at this row count.
func (r *CommitmentRepository) Update(ctx context.Context, dbtx db.DBTX, c *commitment.Commitment) error {
	tag, err := dbtx.Exec(ctx, updateCommitmentSQL,
		c.ID(), c.Status().String(), c.TotalCents(),
		c.ModifiedByDistributor(), c.ModifiedTotalCents(), c.DistributorResponse(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update commitment", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("commitment not found", pgx.ErrNoRows, infra.KindNotFound)
	}

	if _, err := dbtx.Exec(ctx, deleteCommitmentLinesSQL, c.ID()); err != nil {
		return infra.WrapRepoErr("failed to clear commitment sizes", err)
	}
	return r.insertLines(ctx, dbtx, c)
}

const insertCommitmentLineSQL = `
INSERT INTO commitment_sizes (id, commitment_id, label, quantity, unit_price_cents,
                              original_unit_price_cents, total_cents, applied_tier_quantity, modified)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

func (r *CommitmentRepository) insertLines(ctx context.Context, dbtx db.DBTX, c *commitment.Commitment) error {
	insert := func(l commitment.Line, modified bool) error {
		_, err := dbtx.Exec(ctx, insertCommitmentLineSQL,
			uuid.New(), c.ID(), l.SizeLabel, l.Quantity, l.UnitPriceCents,
			l.OriginalUnitPriceCents, l.TotalCents, l.AppliedTierQuantity, modified,
		)
		if err != nil {
			return infra.WrapRepoErr("failed to insert commitment size", err)
		}
		return nil
	}

	for _, l := range c.Lines() {
		if err := insert(l, false); err != nil {
			return err
		}
	}
	for _, l := range c.ModifiedLines() {
		if err := insert(l, true); err != nil {
			return err
		}
	}
	return nil
}
