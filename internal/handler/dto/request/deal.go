package request

import (
	"time"

	"groupbuy-api/internal/usecase/commands"
)

type DiscountTierRequest struct {
	Quantity   int32 `json:"quantity" binding:"required,gt=0"`
	PriceCents int64 `json:"price_cents" binding:"required,gt=0"`
}

type DealSizeRequest struct {
	Label              string                `json:"label" binding:"required"`
	OriginalCostCents  int64                 `json:"original_cost_cents" binding:"required,gt=0"`
	DiscountPriceCents int64                 `json:"discount_price_cents" binding:"required,gt=0"`
	Tiers              []DiscountTierRequest `json:"tiers,omitempty"`
}

type CreateDealRequest struct {
	Name              string            `json:"name" binding:"required"`
	MinQtyForDiscount int32             `json:"min_qty_for_discount" binding:"gte=0"`
	CommitmentStartAt *time.Time        `json:"commitment_start_at,omitempty"`
	CommitmentEndsAt  *time.Time        `json:"commitment_ends_at,omitempty"`
	Sizes             []DealSizeRequest `json:"sizes" binding:"required,min=1,dive"`
}

func (r CreateDealRequest) ToInput() commands.CreateDealInput {
	sizes := make([]commands.SizeInput, len(r.Sizes))
	for i, s := range r.Sizes {
		tiers := make([]commands.TierInput, len(s.Tiers))
		for j, t := range s.Tiers {
			tiers[j] = commands.TierInput{Quantity: t.Quantity, PriceCents: t.PriceCents}
		}
		sizes[i] = commands.SizeInput{
			Label:              s.Label,
			OriginalCostCents:  s.OriginalCostCents,
			DiscountPriceCents: s.DiscountPriceCents,
			Tiers:              tiers,
		}
	}
	return commands.CreateDealInput{
		Name:              r.Name,
		MinQtyForDiscount: r.MinQtyForDiscount,
		StartAt:           r.CommitmentStartAt,
		EndsAt:            r.CommitmentEndsAt,
		Sizes:             sizes,
	}
}
