//go:build unit

package repository

import (
	"context"
	"testing"
	"time"

	"groupbuy-api/internal/infra"
	"groupbuy-api/internal/pkg/errs"
	"groupbuy-api/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDailySummaryReplaceItem(t *testing.T) {
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	userID := uuid.New()
	distributorID := uuid.New()
	summaryID := uuid.New()

	item := shared.SummaryItem{
		CommitmentID: uuid.New(),
		DealID:       uuid.New(),
		DealName:     "Bulk Coffee Beans",
		Quantity:     5,
		TotalCents:   4000,
		SizeDetails: []shared.SummarySizeDetail{
			{SizeLabel: "1kg", Quantity: 5, UnitPriceCents: 800, TotalCents: 4000},
		},
	}

	t.Run("既存アイテムを消してから入れ直し合計を再計算する", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(`INSERT INTO daily_summaries`).
			WithArgs(pgxmock.AnyArg(), day, userID, distributorID).
			WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(summaryID))
		mock.ExpectExec(`DELETE FROM daily_summary_items`).
			WithArgs(summaryID, item.CommitmentID).
			WillReturnResult(pgxmock.NewResult("DELETE", 1))
		mock.ExpectExec(`INSERT INTO daily_summary_items`).
			WithArgs(pgxmock.AnyArg(), summaryID, item.CommitmentID, item.DealID, item.DealName,
				item.Quantity, item.TotalCents,
				[]byte(`[{"size":"1kg","quantity":5,"unit_price_cents":800,"total_cents":4000}]`)).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
		mock.ExpectExec(`UPDATE daily_summaries`).
			WithArgs(summaryID).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		repo := NewDailySummaryRepository()
		require.NoError(t, repo.ReplaceItem(context.Background(), mock, day, userID, distributorID, item))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("アップサート失敗はDB_FAILUREとして返す", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(`INSERT INTO daily_summaries`).
			WithArgs(pgxmock.AnyArg(), day, userID, distributorID).
			WillReturnError(errs.New("connection reset"))

		repo := NewDailySummaryRepository()
		rerr := repo.ReplaceItem(context.Background(), mock, day, userID, distributorID, item)
		require.Error(t, rerr)
		assert.True(t, infra.IsKind(rerr, infra.KindDBFailure))
	})

	t.Run("削除失敗で後続の書き込みは走らない", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(`INSERT INTO daily_summaries`).
			WithArgs(pgxmock.AnyArg(), day, userID, distributorID).
			WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(summaryID))
		mock.ExpectExec(`DELETE FROM daily_summary_items`).
			WithArgs(summaryID, item.CommitmentID).
			WillReturnError(errs.New("connection reset"))

		repo := NewDailySummaryRepository()
		rerr := repo.ReplaceItem(context.Background(), mock, day, userID, distributorID, item)
		require.Error(t, rerr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
