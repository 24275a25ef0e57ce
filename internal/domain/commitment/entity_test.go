//go:build unit

package commitment_test

import (
	"testing"

	"groupbuy-api/internal/domain/commitment"
	"groupbuy-api/tests/common/builder"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCommitment(t *testing.T) {
	t.Run("基本成功ケース", func(t *testing.T) {
		lines := []commitment.Line{builder.Line("1kg", 5, 1000), builder.Line("5kg", 2, 4000)}
		c, err := commitment.NewCommitment(uuid.New(), uuid.New(), lines)
		require.NoError(t, err)

		assert.Equal(t, commitment.StatusPending, c.Status())
		assert.Equal(t, int64(13000), c.TotalCents())
		assert.False(t, c.ModifiedByDistributor())
	})

	t.Run("行なしNG", func(t *testing.T) {
		_, err := commitment.NewCommitment(uuid.New(), uuid.New(), nil)
		assert.ErrorIs(t, err, commitment.ErrNoLines)
	})
}

func TestTransitionTo(t *testing.T) {
	response := "out of stock"

	cases := []struct {
		name   string
		from   commitment.Status
		target commitment.Status
		errIs  error
	}{
		{name: "pendingから承認OK", from: commitment.StatusPending, target: commitment.StatusApproved},
		{name: "pendingから却下OK", from: commitment.StatusPending, target: commitment.StatusDeclined},
		{name: "pendingからキャンセルOK", from: commitment.StatusPending, target: commitment.StatusCancelled},
		{name: "pendingからpendingはNG", from: commitment.StatusPending, target: commitment.StatusPending, errIs: commitment.ErrInvalidTransition},
		{name: "承認済みは不変", from: commitment.StatusApproved, target: commitment.StatusDeclined, errIs: commitment.ErrInvalidTransition},
		{name: "二重承認NG", from: commitment.StatusApproved, target: commitment.StatusApproved, errIs: commitment.ErrInvalidTransition},
		{name: "却下済みは不変", from: commitment.StatusDeclined, target: commitment.StatusApproved, errIs: commitment.ErrInvalidTransition},
		{name: "キャンセル済みは不変", from: commitment.StatusCancelled, target: commitment.StatusApproved, errIs: commitment.ErrInvalidTransition},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := builder.NewCommitmentBuilder().WithStatus(tc.from).BuildDomain()

			err := c.TransitionTo(tc.target, &response)
			if tc.errIs == nil {
				require.NoError(t, err)
				assert.Equal(t, tc.target, c.Status())
				require.NotNil(t, c.DistributorResponse())
				assert.Equal(t, response, *c.DistributorResponse())
			} else {
				assert.ErrorIs(t, err, tc.errIs)
				assert.Equal(t, tc.from, c.Status())
			}
		})
	}
}

func TestOverwrite(t *testing.T) {
	t.Run("pendingの行を置き換えて合計再計算", func(t *testing.T) {
		c := builder.NewCommitmentBuilder().BuildDomain()

		replacement := []commitment.Line{builder.Line("5kg", 3, 4000)}
		err := c.Overwrite(replacement)
		require.NoError(t, err)

		assert.Equal(t, commitment.StatusPending, c.Status())
		assert.Equal(t, int64(12000), c.TotalCents())
		if diff := cmp.Diff(replacement, c.Lines()); diff != "" {
			t.Errorf("lines mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("ディストリビューター変更をクリアする", func(t *testing.T) {
		c := builder.NewCommitmentBuilder().BuildDomain()
		require.NoError(t, c.ApplyDistributorModification(
			[]commitment.Line{builder.Line("1kg", 3, 1000)}, 0,
		))
		require.True(t, c.ModifiedByDistributor())

		require.NoError(t, c.Overwrite([]commitment.Line{builder.Line("1kg", 8, 1000)}))

		assert.False(t, c.ModifiedByDistributor())
		assert.Nil(t, c.ModifiedLines())
		assert.Nil(t, c.ModifiedTotalCents())
		assert.Nil(t, c.DistributorResponse())
	})

	t.Run("終端状態はNG", func(t *testing.T) {
		c := builder.NewCommitmentBuilder().WithStatus(commitment.StatusApproved).BuildDomain()
		err := c.Overwrite([]commitment.Line{builder.Line("1kg", 1, 1000)})
		assert.ErrorIs(t, err, commitment.ErrNotPending)
	})

	t.Run("行なしNG", func(t *testing.T) {
		c := builder.NewCommitmentBuilder().BuildDomain()
		assert.ErrorIs(t, c.Overwrite(nil), commitment.ErrNoLines)
	})
}

func TestReprice(t *testing.T) {
	tierQty := int32(10)

	t.Run("価格が変わると変更ありで合計再計算", func(t *testing.T) {
		c := builder.NewCommitmentBuilder().WithLines(
			builder.Line("1kg", 5, 1000),
			builder.Line("5kg", 2, 4000),
		).BuildDomain()

		changed, err := c.Reprice("1kg", 800, &tierQty)
		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, int64(800*5+4000*2), c.TotalCents())

		line := c.Lines()[0]
		assert.Equal(t, int64(800), line.UnitPriceCents)
		assert.Equal(t, int64(1000), line.OriginalUnitPriceCents)
		require.NotNil(t, line.AppliedTierQuantity)
		assert.Equal(t, tierQty, *line.AppliedTierQuantity)
	})

	t.Run("同じ価格は変更なし", func(t *testing.T) {
		c := builder.NewCommitmentBuilder().BuildDomain()
		changed, err := c.Reprice("1kg", 1000, nil)
		require.NoError(t, err)
		assert.False(t, changed)
	})

	t.Run("存在しないサイズNG", func(t *testing.T) {
		c := builder.NewCommitmentBuilder().BuildDomain()
		_, err := c.Reprice("5kg", 800, nil)
		assert.ErrorIs(t, err, commitment.ErrUnknownLine)
	})
}

func TestApplyDistributorModification(t *testing.T) {
	t.Run("最低数量を満たせばOK", func(t *testing.T) {
		c := builder.NewCommitmentBuilder().BuildDomain()

		modified := []commitment.Line{builder.Line("1kg", 3, 800)}
		require.NoError(t, c.ApplyDistributorModification(modified, 3))

		assert.True(t, c.ModifiedByDistributor())
		require.NotNil(t, c.ModifiedTotalCents())
		assert.Equal(t, int64(2400), *c.ModifiedTotalCents())
	})

	t.Run("最低数量未満NG", func(t *testing.T) {
		c := builder.NewCommitmentBuilder().BuildDomain()
		err := c.ApplyDistributorModification([]commitment.Line{builder.Line("1kg", 2, 800)}, 3)
		assert.ErrorIs(t, err, commitment.ErrBelowMinimum)
	})

	t.Run("行なしNG", func(t *testing.T) {
		c := builder.NewCommitmentBuilder().BuildDomain()
		assert.ErrorIs(t, c.ApplyDistributorModification(nil, 0), commitment.ErrNoLines)
	})
}

func TestEffectiveTotals(t *testing.T) {
	t.Run("変更なしは元の行", func(t *testing.T) {
		c := builder.NewCommitmentBuilder().WithLines(
			builder.Line("1kg", 5, 1000),
			builder.Line("5kg", 2, 4000),
		).BuildDomain()

		qty, revenue := c.EffectiveTotals()
		assert.Equal(t, int64(7), qty)
		assert.Equal(t, int64(13000), revenue)
	})

	t.Run("変更ありは変更後の行が優先", func(t *testing.T) {
		c := builder.NewCommitmentBuilder().WithLines(
			builder.Line("1kg", 5, 1000),
		).BuildDomain()
		require.NoError(t, c.ApplyDistributorModification(
			[]commitment.Line{builder.Line("1kg", 3, 800)}, 0,
		))

		qty, revenue := c.EffectiveTotals()
		assert.Equal(t, int64(3), qty)
		assert.Equal(t, int64(2400), revenue)
	})
}

func TestQuantityFor(t *testing.T) {
	c := builder.NewCommitmentBuilder().WithLines(
		builder.Line("1kg", 5, 1000),
	).BuildDomain()

	assert.Equal(t, int32(5), c.QuantityFor("1kg"))
	assert.Equal(t, int32(0), c.QuantityFor("5kg"))
}
