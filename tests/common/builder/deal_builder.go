//go:build unit || e2e

package builder

import (
	"time"

	"groupbuy-api/internal/domain/deal"

	"github.com/google/uuid"
)

// DealBuilder builds a deal with one tiered size by default: base 1000 cents,
// 800 cents at 10 units, 600 cents at 50 units.
type DealBuilder struct {
	ID                uuid.UUID
	DistributorID     uuid.UUID
	Name              string
	MinQtyForDiscount int32
	StartAt           *time.Time
	EndsAt            *time.Time
	Sizes             []deal.Size
}

func NewDealBuilder() *DealBuilder {
	return &DealBuilder{
		ID:            uuid.New(),
		DistributorID: uuid.New(),
		Name:          "Bulk Coffee Beans",
		Sizes: []deal.Size{
			{
				Label:              "1kg",
				OriginalCostCents:  1500,
				DiscountPriceCents: 1000,
				Tiers: []deal.Tier{
					{Quantity: 10, PriceCents: 800},
					{Quantity: 50, PriceCents: 600},
				},
			},
		},
	}
}

func (d *DealBuilder) With(mutate func(*DealBuilder)) *DealBuilder {
	mutate(d)
	return d
}

func (d *DealBuilder) WithSizes(sizes ...deal.Size) *DealBuilder {
	d.Sizes = sizes
	return d
}

func (d *DealBuilder) WithWindow(startAt, endsAt *time.Time) *DealBuilder {
	d.StartAt = startAt
	d.EndsAt = endsAt
	return d
}

func (d *DealBuilder) WithMinQty(minQty int32) *DealBuilder {
	d.MinQtyForDiscount = minQty
	return d
}

func (d *DealBuilder) BuildDomain() (*deal.Deal, error) {
	window, err := deal.NewWindow(d.StartAt, d.EndsAt)
	if err != nil {
		return nil, err
	}
	return deal.NewDeal(d.DistributorID, d.Name, d.MinQtyForDiscount, window, d.Sizes)
}

// BuildReconstructed keeps the builder's fixed id, for tests that need
// deterministic identity.
func (d *DealBuilder) BuildReconstructed() *deal.Deal {
	window, _ := deal.NewWindow(d.StartAt, d.EndsAt)
	now := time.Now()
	return deal.ReconstructDeal(
		d.ID, d.DistributorID, d.Name, deal.StatusActive, d.MinQtyForDiscount,
		window, d.Sizes, 0, 0, now, now,
	)
}
