//go:build unit

package commands

import (
	"context"
	"testing"

	"groupbuy-api/internal/domain/commitment"
	"groupbuy-api/internal/domain/deal"
	"groupbuy-api/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tieredLine(label string, qty int32, unit, original int64, tierQty int32) commitment.Line {
	return commitment.Line{
		SizeLabel:              label,
		Quantity:               qty,
		UnitPriceCents:         unit,
		OriginalUnitPriceCents: original,
		TotalCents:             unit * int64(qty),
		AppliedTierQuantity:    &tierQty,
	}
}

func TestPoolQuantity(t *testing.T) {
	a := builder.NewCommitmentBuilder().WithLines(builder.Line("1kg", 4, 1000)).BuildDomain()
	b := builder.NewCommitmentBuilder().WithLines(builder.Line("1kg", 6, 1000)).BuildDomain()
	active := []*commitment.Commitment{a, b}

	t.Run("全件合算", func(t *testing.T) {
		assert.Equal(t, int32(10), poolQuantity(active, "1kg", uuid.Nil))
	})

	t.Run("除外指定は自分を数えない", func(t *testing.T) {
		assert.Equal(t, int32(6), poolQuantity(active, "1kg", a.ID()))
	})

	t.Run("行のないサイズはゼロ", func(t *testing.T) {
		assert.Equal(t, int32(0), poolQuantity(active, "5kg", uuid.Nil))
	})
}

func TestReconcileDeal(t *testing.T) {
	t.Run("ティア到達で既存コミットメントも再価格", func(t *testing.T) {
		d := builder.NewDealBuilder().BuildReconstructed()

		a := builder.NewCommitmentBuilder().WithDeal(d.ID()).WithLines(builder.Line("1kg", 4, 1000)).BuildDomain()
		b := builder.NewCommitmentBuilder().WithDeal(d.ID()).WithLines(builder.Line("1kg", 4, 1000)).BuildDomain()
		c := builder.NewCommitmentBuilder().WithDeal(d.ID()).WithLines(builder.Line("1kg", 5, 1000)).BuildDomain()
		active := []*commitment.Commitment{a, b, c}

		out, err := reconcileDeal(d, active, c.ID())
		require.NoError(t, err)

		// pool 13 crosses the 10-unit tier, everyone converges on 800.
		assert.Len(t, out.Changed, 3)
		for _, cm := range active {
			line := cm.Lines()[0]
			assert.Equal(t, int64(800), line.UnitPriceCents)
			assert.Equal(t, int64(1000), line.OriginalUnitPriceCents)
			require.NotNil(t, line.AppliedTierQuantity)
			assert.Equal(t, int32(10), *line.AppliedTierQuantity)
		}

		// The triggering member does not get a tier-changed notification.
		assert.ElementsMatch(t, []uuid.UUID{a.UserID(), b.UserID()}, out.NotifyOwners)

		require.Len(t, out.Shifts, 1)
		shift := out.Shifts[0]
		assert.True(t, shift.Activated)
		assert.Equal(t, "1kg", shift.SizeLabel)
		assert.Equal(t, int32(10), shift.TierQuantity)
		assert.Equal(t, int32(13), shift.Pool)
		assert.Equal(t, int64(800), shift.UnitPriceCents)
	})

	t.Run("プール減少でティア失効し基準価格へ戻る", func(t *testing.T) {
		d := builder.NewDealBuilder().BuildReconstructed()

		a := builder.NewCommitmentBuilder().WithDeal(d.ID()).
			WithLines(tieredLine("1kg", 4, 800, 1000, 10)).BuildDomain()
		b := builder.NewCommitmentBuilder().WithDeal(d.ID()).
			WithLines(tieredLine("1kg", 4, 800, 1000, 10)).BuildDomain()

		// The cancelled commitment is already gone from the active slice.
		out, err := reconcileDeal(d, []*commitment.Commitment{a, b}, uuid.Nil)
		require.NoError(t, err)

		assert.Len(t, out.Changed, 2)
		for _, cm := range []*commitment.Commitment{a, b} {
			line := cm.Lines()[0]
			assert.Equal(t, int64(1000), line.UnitPriceCents)
			assert.Nil(t, line.AppliedTierQuantity)
		}
		assert.ElementsMatch(t, []uuid.UUID{a.UserID(), b.UserID()}, out.NotifyOwners)

		require.Len(t, out.Shifts, 1)
		assert.False(t, out.Shifts[0].Activated)
		assert.Equal(t, int32(10), out.Shifts[0].TierQuantity)
		assert.Equal(t, int32(8), out.Shifts[0].Pool)
		assert.Equal(t, int64(1000), out.Shifts[0].UnitPriceCents)
	})

	t.Run("変化がなければ何も起きない", func(t *testing.T) {
		d := builder.NewDealBuilder().BuildReconstructed()
		a := builder.NewCommitmentBuilder().WithDeal(d.ID()).WithLines(builder.Line("1kg", 3, 1000)).BuildDomain()

		out, err := reconcileDeal(d, []*commitment.Commitment{a}, a.ID())
		require.NoError(t, err)

		assert.Empty(t, out.Changed)
		assert.Empty(t, out.NotifyOwners)
		assert.Empty(t, out.Shifts)
	})

	t.Run("ティアなしサイズは触らない", func(t *testing.T) {
		d := builder.NewDealBuilder().WithSizes(
			deal.Size{Label: "250g", OriginalCostCents: 500, DiscountPriceCents: 400},
		).BuildReconstructed()
		a := builder.NewCommitmentBuilder().WithDeal(d.ID()).WithLines(builder.Line("250g", 100, 400)).BuildDomain()

		out, err := reconcileDeal(d, []*commitment.Commitment{a}, uuid.Nil)
		require.NoError(t, err)

		assert.Empty(t, out.Changed)
		assert.Empty(t, out.Shifts)
		assert.Equal(t, int64(400), a.Lines()[0].UnitPriceCents)
	})
}

func TestPriceLines(t *testing.T) {
	t.Run("自分の数量込みでティア判定", func(t *testing.T) {
		d := builder.NewDealBuilder().BuildReconstructed()
		other := builder.NewCommitmentBuilder().WithDeal(d.ID()).WithLines(builder.Line("1kg", 7, 1000)).BuildDomain()

		lines := priceLines(d, []*commitment.Commitment{other}, uuid.Nil, []LineRequest{
			{SizeLabel: "1kg", Quantity: 3},
		})

		require.Len(t, lines, 1)
		assert.Equal(t, int64(800), lines[0].UnitPriceCents)
		assert.Equal(t, int64(1000), lines[0].OriginalUnitPriceCents)
		assert.Equal(t, int64(2400), lines[0].TotalCents)
		require.NotNil(t, lines[0].AppliedTierQuantity)
		assert.Equal(t, int32(10), *lines[0].AppliedTierQuantity)
	})

	t.Run("更新時は旧自分数量を除外して計算", func(t *testing.T) {
		d := builder.NewDealBuilder().BuildReconstructed()
		mine := builder.NewCommitmentBuilder().WithDeal(d.ID()).WithLines(builder.Line("1kg", 8, 1000)).BuildDomain()
		other := builder.NewCommitmentBuilder().WithDeal(d.ID()).WithLines(builder.Line("1kg", 4, 1000)).BuildDomain()

		// 4 (other) + 2 (new self) = 6, below the 10-unit tier. The stale
		// 8 units must not count twice.
		lines := priceLines(d, []*commitment.Commitment{mine, other}, mine.ID(), []LineRequest{
			{SizeLabel: "1kg", Quantity: 2},
		})

		require.Len(t, lines, 1)
		assert.Equal(t, int64(1000), lines[0].UnitPriceCents)
		assert.Nil(t, lines[0].AppliedTierQuantity)
	})

	t.Run("ティア未達は基準価格", func(t *testing.T) {
		d := builder.NewDealBuilder().BuildReconstructed()

		lines := priceLines(d, nil, uuid.Nil, []LineRequest{{SizeLabel: "1kg", Quantity: 2}})

		require.Len(t, lines, 1)
		assert.Equal(t, int64(1000), lines[0].UnitPriceCents)
		assert.Equal(t, int64(2000), lines[0].TotalCents)
	})
}

func TestPriceModifiedLines(t *testing.T) {
	t.Run("同一サイズの重複行はバリデーションエラー", func(t *testing.T) {
		d := builder.NewDealBuilder().BuildReconstructed()
		c := builder.NewCommitmentBuilder().WithDeal(d.ID()).WithLines(builder.Line("1kg", 5, 1000)).BuildDomain()

		uc := &commitmentCommandsImpl{}
		_, err := uc.priceModifiedLines(context.Background(), nil, d, c, []LineRequest{
			{SizeLabel: "1kg", Quantity: 3},
			{SizeLabel: "1kg", Quantity: 2},
		})

		require.Error(t, err)
		assert.ErrorIs(t, err, deal.ErrDuplicateLine)
		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestBuildSummaryItem(t *testing.T) {
	t.Run("元の行からスナップショット", func(t *testing.T) {
		c := builder.NewCommitmentBuilder().WithLines(
			builder.Line("1kg", 5, 1000),
			builder.Line("5kg", 2, 4000),
		).BuildDomain()

		item := buildSummaryItem(c, "Bulk Coffee Beans")

		assert.Equal(t, c.ID(), item.CommitmentID)
		assert.Equal(t, "Bulk Coffee Beans", item.DealName)
		assert.Equal(t, int32(7), item.Quantity)
		assert.Equal(t, int64(13000), item.TotalCents)
		require.Len(t, item.SizeDetails, 2)
		assert.Equal(t, "1kg", item.SizeDetails[0].SizeLabel)
	})

	t.Run("ディストリビューター変更後は変更行を採用", func(t *testing.T) {
		c := builder.NewCommitmentBuilder().WithLines(builder.Line("1kg", 5, 1000)).BuildDomain()
		require.NoError(t, c.ApplyDistributorModification(
			[]commitment.Line{builder.Line("1kg", 3, 800)}, 0,
		))

		item := buildSummaryItem(c, "Bulk Coffee Beans")

		assert.Equal(t, int32(3), item.Quantity)
		assert.Equal(t, int64(2400), item.TotalCents)
		require.Len(t, item.SizeDetails, 1)
		assert.Equal(t, int64(800), item.SizeDetails[0].UnitPriceCents)
	})
}
