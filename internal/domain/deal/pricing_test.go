//go:build unit

package deal_test

import (
	"testing"

	"groupbuy-api/internal/domain/deal"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ladder = []deal.Tier{
	{Quantity: 10, PriceCents: 800},
	{Quantity: 50, PriceCents: 600},
}

func TestResolveTier(t *testing.T) {
	cases := []struct {
		name string
		pool int32
		want *deal.Tier
	}{
		{name: "最初のティア未満はnil", pool: 9, want: nil},
		{name: "ちょうど閾値で解決", pool: 10, want: &ladder[0]},
		{name: "閾値の間は下のティア", pool: 49, want: &ladder[0]},
		{name: "最上位ティア", pool: 120, want: &ladder[1]},
		{name: "プールゼロはnil", pool: 0, want: nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := deal.ResolveTier(ladder, tc.pool)
			if tc.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tc.want, *got)
		})
	}
}

func TestUnitPriceCents(t *testing.T) {
	size := deal.Size{
		Label:              "1kg",
		OriginalCostCents:  1500,
		DiscountPriceCents: 1000,
		Tiers:              ladder,
	}

	t.Run("ティア未達は基準価格", func(t *testing.T) {
		price, tier := deal.UnitPriceCents(size, 3)
		assert.Equal(t, int64(1000), price)
		assert.Nil(t, tier)
	})

	t.Run("ティア到達で割引価格", func(t *testing.T) {
		price, tier := deal.UnitPriceCents(size, 50)
		assert.Equal(t, int64(600), price)
		require.NotNil(t, tier)
		assert.Equal(t, int32(50), tier.Quantity)
	})

	t.Run("ティアなしサイズは常に基準価格", func(t *testing.T) {
		flat := deal.Size{Label: "250g", OriginalCostCents: 500, DiscountPriceCents: 400}
		price, tier := deal.UnitPriceCents(flat, 1000)
		assert.Equal(t, int64(400), price)
		assert.Nil(t, tier)
	})
}
