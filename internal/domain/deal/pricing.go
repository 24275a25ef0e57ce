package deal

// ResolveTier selects the tier unlocked by the pooled quantity: the highest
// threshold with Quantity <= pool. Nil when no tier qualifies. Ties cannot
// occur because tier quantities strictly increase.
func ResolveTier(tiers []Tier, pool int32) *Tier {
	for i := len(tiers) - 1; i >= 0; i-- {
		if tiers[i].Quantity <= pool {
			t := tiers[i]
			return &t
		}
	}
	return nil
}

// UnitPriceCents returns the per-unit price for a size given the pooled
// quantity, falling back to the size's base discount price when no tier
// qualifies. Pure; shared by the intake and reconciliation paths.
func UnitPriceCents(size Size, pool int32) (int64, *Tier) {
	tier := ResolveTier(size.Tiers, pool)
	if tier == nil {
		return size.DiscountPriceCents, nil
	}
	return tier.PriceCents, tier
}
