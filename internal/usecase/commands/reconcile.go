package commands

import (
	"groupbuy-api/internal/domain/commitment"
	"groupbuy-api/internal/domain/deal"

	"github.com/google/uuid"
)

// tierShift records a size gaining or losing a tier during reconciliation,
// for the distributor/admin digest.
type tierShift struct {
	SizeLabel      string
	Activated      bool
	TierQuantity   int32
	Pool           int32
	UnitPriceCents int64
}

type reconcileOutcome struct {
	// Changed holds every commitment whose stored pricing was rewritten,
	// including the triggering one.
	Changed []*commitment.Commitment
	// NotifyOwners are owners of changed commitments other than the
	// triggering one; each gets a "tier changed" notification.
	NotifyOwners []uuid.UUID
	Shifts       []tierShift
}

// poolQuantity sums committed quantities for a size across commitments,
// skipping exclude. Pass uuid.Nil to include everything.
func poolQuantity(active []*commitment.Commitment, sizeLabel string, exclude uuid.UUID) int32 {
	var pool int32
	for _, c := range active {
		if c.ID() == exclude {
			continue
		}
		pool += c.QuantityFor(sizeLabel)
	}
	return pool
}

// reconcileDeal re-evaluates tier eligibility for every size carrying tiers
// and repairs any commitment whose stored price disagrees with the pool's
// current tier. The active slice must contain only non-cancelled commitments;
// sizes without tiers are never touched.
func reconcileDeal(d *deal.Deal, active []*commitment.Commitment, triggeringID uuid.UUID) (*reconcileOutcome, error) {
	out := &reconcileOutcome{}
	changedSet := make(map[uuid.UUID]*commitment.Commitment)
	notifySet := make(map[uuid.UUID]struct{})

	for _, size := range d.Sizes() {
		if len(size.Tiers) == 0 {
			continue
		}

		pool := poolQuantity(active, size.Label, uuid.Nil)
		targetPrice, tier := deal.UnitPriceCents(size, pool)

		var priorTierQty *int32
		for _, c := range active {
			for _, l := range c.Lines() {
				if l.SizeLabel == size.Label && l.AppliedTierQuantity != nil {
					priorTierQty = l.AppliedTierQuantity
					break
				}
			}
			if priorTierQty != nil {
				break
			}
		}

		var appliedQty *int32
		if tier != nil {
			q := tier.Quantity
			appliedQty = &q
		}

		for _, c := range active {
			if c.QuantityFor(size.Label) == 0 {
				continue
			}
			changed, err := c.Reprice(size.Label, targetPrice, appliedQty)
			if err != nil {
				return nil, err
			}
			if !changed {
				continue
			}
			changedSet[c.ID()] = c
			if c.ID() != triggeringID {
				notifySet[c.UserID()] = struct{}{}
			}
		}

		switch {
		case tier != nil && (priorTierQty == nil || *priorTierQty != tier.Quantity):
			out.Shifts = append(out.Shifts, tierShift{
				SizeLabel:      size.Label,
				Activated:      true,
				TierQuantity:   tier.Quantity,
				Pool:           pool,
				UnitPriceCents: tier.PriceCents,
			})
		case tier == nil && priorTierQty != nil:
			out.Shifts = append(out.Shifts, tierShift{
				SizeLabel:      size.Label,
				Activated:      false,
				TierQuantity:   *priorTierQty,
				Pool:           pool,
				UnitPriceCents: size.DiscountPriceCents,
			})
		}
	}

	for _, c := range changedSet {
		out.Changed = append(out.Changed, c)
	}
	for owner := range notifySet {
		out.NotifyOwners = append(out.NotifyOwners, owner)
	}
	return out, nil
}
