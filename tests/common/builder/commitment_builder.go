//go:build unit || e2e

package builder

import (
	"time"

	"groupbuy-api/internal/domain/commitment"
	"groupbuy-api/internal/usecase/queries"

	"github.com/google/uuid"
)

type CommitmentBuilder struct {
	ID     uuid.UUID
	DealID uuid.UUID
	UserID uuid.UUID
	Status commitment.Status
	Lines  []commitment.Line
}

func NewCommitmentBuilder() *CommitmentBuilder {
	return &CommitmentBuilder{
		ID:     uuid.New(),
		DealID: uuid.New(),
		UserID: uuid.New(),
		Status: commitment.StatusPending,
		Lines: []commitment.Line{
			{
				SizeLabel:              "1kg",
				Quantity:               5,
				UnitPriceCents:         1000,
				OriginalUnitPriceCents: 1000,
				TotalCents:             5000,
			},
		},
	}
}

func (c *CommitmentBuilder) With(mutate func(*CommitmentBuilder)) *CommitmentBuilder {
	mutate(c)
	return c
}

func (c *CommitmentBuilder) WithDeal(dealID uuid.UUID) *CommitmentBuilder {
	c.DealID = dealID
	return c
}

func (c *CommitmentBuilder) WithUser(userID uuid.UUID) *CommitmentBuilder {
	c.UserID = userID
	return c
}

func (c *CommitmentBuilder) WithStatus(status commitment.Status) *CommitmentBuilder {
	c.Status = status
	return c
}

func (c *CommitmentBuilder) WithLines(lines ...commitment.Line) *CommitmentBuilder {
	c.Lines = lines
	return c
}

// Line is a shorthand for a base-priced line.
func Line(label string, quantity int32, unitPriceCents int64) commitment.Line {
	return commitment.Line{
		SizeLabel:              label,
		Quantity:               quantity,
		UnitPriceCents:         unitPriceCents,
		OriginalUnitPriceCents: unitPriceCents,
		TotalCents:             unitPriceCents * int64(quantity),
	}
}

func (c *CommitmentBuilder) BuildDomain() *commitment.Commitment {
	var total int64
	for _, l := range c.Lines {
		total += l.TotalCents
	}
	now := time.Now()
	return commitment.ReconstructCommitment(
		c.ID, c.DealID, c.UserID, c.Status, c.Lines, total,
		false, nil, nil, nil, now, now,
	)
}

func (c *CommitmentBuilder) BuildView() *queries.CommitmentView {
	var total int64
	lines := make([]queries.CommitmentLineView, len(c.Lines))
	for i, l := range c.Lines {
		total += l.TotalCents
		lines[i] = queries.CommitmentLineView{
			SizeLabel:              l.SizeLabel,
			Quantity:               l.Quantity,
			UnitPriceCents:         l.UnitPriceCents,
			OriginalUnitPriceCents: l.OriginalUnitPriceCents,
			TotalCents:             l.TotalCents,
			AppliedTierQuantity:    l.AppliedTierQuantity,
		}
	}
	now := time.Now()
	return &queries.CommitmentView{
		ID:         c.ID,
		DealID:     c.DealID,
		DealName:   "Bulk Coffee Beans",
		UserID:     c.UserID,
		Status:     c.Status.String(),
		Lines:      lines,
		TotalCents: total,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}
