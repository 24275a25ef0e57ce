//go:build unit

package infra

import (
	"testing"

	"groupbuy-api/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestClassifyPgErr(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want RepositoryErrorKind
	}{
		{
			name: "unique violation",
			err:  &pgconn.PgError{Code: "23505", ConstraintName: "commitments_pkey"},
			want: KindDuplicateKey,
		},
		{
			name: "foreign key violation",
			err:  &pgconn.PgError{Code: "23503", ConstraintName: "commitments_deal_id_fkey"},
			want: KindForeignKeyViolated,
		},
		{
			name: "wrapped pg error",
			err:  errs.Wrap(&pgconn.PgError{Code: "23505"}, "failed to create commitment"),
			want: KindDuplicateKey,
		},
		{
			name: "other pg error",
			err:  &pgconn.PgError{Code: "40001"},
			want: KindDBFailure,
		},
		{
			name: "non pg error",
			err:  errs.New("connection refused"),
			want: KindDBFailure,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyPgErr(tt.err))
		})
	}
}

func TestWrapRepoErr(t *testing.T) {
	t.Run("defaults to db failure", func(t *testing.T) {
		err := WrapRepoErr("query failed", errs.New("boom"))
		assert.True(t, IsKind(err, KindDBFailure))
		assert.False(t, IsKind(err, KindNotFound))
	})

	t.Run("carries the classified kind", func(t *testing.T) {
		driverErr := &pgconn.PgError{Code: "23505"}
		err := WrapRepoErr("failed to create commitment", driverErr, ClassifyPgErr(driverErr))
		assert.True(t, IsKind(err, KindDuplicateKey))
	})
}
