//go:build unit

package deal_test

import (
	"testing"
	"time"

	"groupbuy-api/internal/domain/deal"
	"groupbuy-api/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sizeCase struct {
	name  string
	sizes []deal.Size
	errIs error
}

func TestNewDeal(t *testing.T) {
	t.Run("基本成功ケース", func(t *testing.T) {
		d, err := builder.NewDealBuilder().BuildDomain()
		require.NoError(t, err)
		require.NotNil(t, d)

		assert.NotEqual(t, uuid.Nil, d.ID())
		assert.Equal(t, deal.StatusActive, d.Status())
		assert.Len(t, d.Sizes(), 1)
		assert.Equal(t, int64(0), d.TotalSold())
	})

	t.Run("名前が空はNG", func(t *testing.T) {
		window, _ := deal.NewWindow(nil, nil)
		_, err := deal.NewDeal(uuid.New(), "", 0, window, builder.NewDealBuilder().Sizes)
		assert.ErrorIs(t, err, deal.ErrEmptyName)
	})

	t.Run("サイズ検証", func(t *testing.T) {
		base := deal.Size{Label: "1kg", OriginalCostCents: 1500, DiscountPriceCents: 1000}

		cases := []sizeCase{
			{
				name:  "サイズなしNG",
				sizes: nil,
				errIs: deal.ErrNoSizes,
			},
			{
				name: "ラベル重複NG",
				sizes: []deal.Size{base, {
					Label: "1kg", OriginalCostCents: 2000, DiscountPriceCents: 1800,
				}},
				errIs: deal.ErrDuplicateSize,
			},
			{
				name: "価格ゼロNG",
				sizes: []deal.Size{{
					Label: "1kg", OriginalCostCents: 1500, DiscountPriceCents: 0,
				}},
				errIs: deal.ErrInvalidPrice,
			},
			{
				name: "ティア数量が単調増加でないNG",
				sizes: []deal.Size{{
					Label: "1kg", OriginalCostCents: 1500, DiscountPriceCents: 1000,
					Tiers: []deal.Tier{
						{Quantity: 10, PriceCents: 800},
						{Quantity: 10, PriceCents: 700},
					},
				}},
				errIs: deal.ErrTierQuantityOrder,
			},
			{
				name: "ティア価格が単調減少でないNG",
				sizes: []deal.Size{{
					Label: "1kg", OriginalCostCents: 1500, DiscountPriceCents: 1000,
					Tiers: []deal.Tier{
						{Quantity: 10, PriceCents: 800},
						{Quantity: 50, PriceCents: 900},
					},
				}},
				errIs: deal.ErrTierPriceOrder,
			},
			{
				name: "ティア価格が基準価格以上NG",
				sizes: []deal.Size{{
					Label: "1kg", OriginalCostCents: 1500, DiscountPriceCents: 1000,
					Tiers: []deal.Tier{
						{Quantity: 10, PriceCents: 1000},
					},
				}},
				errIs: deal.ErrTierPriceOrder,
			},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := builder.NewDealBuilder().WithSizes(tc.sizes...).BuildDomain()
				assert.ErrorIs(t, err, tc.errIs)
			})
		}
	})
}

func TestValidateLines(t *testing.T) {
	d, err := builder.NewDealBuilder().BuildDomain()
	require.NoError(t, err)

	cases := []struct {
		name  string
		lines []deal.LineInput
		errIs error
	}{
		{
			name:  "有効な行OK",
			lines: []deal.LineInput{{SizeLabel: "1kg", Quantity: 3}},
		},
		{
			name:  "行なしNG",
			lines: nil,
			errIs: deal.ErrNoLines,
		},
		{
			name:  "数量ゼロNG",
			lines: []deal.LineInput{{SizeLabel: "1kg", Quantity: 0}},
			errIs: deal.ErrInvalidQuantity,
		},
		{
			name:  "数量マイナスNG",
			lines: []deal.LineInput{{SizeLabel: "1kg", Quantity: -2}},
			errIs: deal.ErrInvalidQuantity,
		},
		{
			name:  "未知サイズNG",
			lines: []deal.LineInput{{SizeLabel: "5kg", Quantity: 1}},
			errIs: deal.ErrUnknownSize,
		},
		{
			name: "同一サイズの重複行NG",
			lines: []deal.LineInput{
				{SizeLabel: "1kg", Quantity: 2},
				{SizeLabel: "1kg", Quantity: 3},
			},
			errIs: deal.ErrDuplicateLine,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := d.ValidateLines(tc.lines)
			if tc.errIs == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.errIs)
			}
		})
	}
}

func TestValidateOpen(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	past := now.Add(-24 * time.Hour)
	future := now.Add(24 * time.Hour)

	cases := []struct {
		name    string
		startAt *time.Time
		endsAt  *time.Time
		errIs   error
	}{
		{name: "ウィンドウなしOK"},
		{name: "期間内OK", startAt: &past, endsAt: &future},
		{name: "開始前NG", startAt: &future, errIs: deal.ErrWindowNotOpen},
		{name: "終了後NG", endsAt: &past, errIs: deal.ErrWindowClosed},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d, err := builder.NewDealBuilder().WithWindow(tc.startAt, tc.endsAt).BuildDomain()
			require.NoError(t, err)

			err = d.ValidateOpen(now)
			if tc.errIs == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.errIs)
			}
		})
	}

	t.Run("終了が開始より前のウィンドウはNG", func(t *testing.T) {
		_, err := deal.NewWindow(&future, &past)
		assert.ErrorIs(t, err, deal.ErrInvalidWindow)
	})
}
