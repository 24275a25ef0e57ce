//go:build unit

package commands

import (
	"context"
	"testing"
	"time"

	"groupbuy-api/internal/domain/auth"
	"groupbuy-api/internal/domain/commitment"
	"groupbuy-api/internal/domain/user"
	"groupbuy-api/internal/infra/db"
	"groupbuy-api/internal/pkg/clock"
	"groupbuy-api/internal/pkg/errs"
	"groupbuy-api/internal/usecase/queries"
	"groupbuy-api/internal/usecase/shared"
	queriesmock "groupbuy-api/tests/mock/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type auditEntry struct {
	userID   *uuid.UUID
	severity string
	message  string
}

type fakeAuditRepo struct {
	entries []auditEntry
}

func (f *fakeAuditRepo) Append(_ context.Context, _ db.DBTX, userID *uuid.UUID, severity, message string) error {
	f.entries = append(f.entries, auditEntry{userID: userID, severity: severity, message: message})
	return nil
}

type fakeCommitmentRepo struct {
	shared.CommitmentRepository
	findErr error
}

func (f *fakeCommitmentRepo) FindByID(context.Context, db.DBTX, uuid.UUID) (*commitment.Commitment, error) {
	return nil, f.findErr
}

type fakeTx struct {
	shared.Tx
	audit       *fakeAuditRepo
	commitments *fakeCommitmentRepo
}

func (f *fakeTx) Audit() shared.AuditLogRepository         { return f.audit }
func (f *fakeTx) Commitments() shared.CommitmentRepository { return f.commitments }
func (f *fakeTx) DB() db.DBTX                              { return nil }

type fakeUoW struct {
	tx *fakeTx
}

func (f *fakeUoW) Within(ctx context.Context, fn func(context.Context, shared.Tx) error) error {
	return fn(ctx, f.tx)
}

func (f *fakeUoW) WithDB(ctx context.Context, fn func(context.Context, db.DBTX) error) error {
	return fn(ctx, nil)
}

func TestAuditOperationFailure(t *testing.T) {
	dealID := uuid.New()
	userID := uuid.New()

	setup := func(t *testing.T) (*commitmentCommandsImpl, *fakeTx, *queriesmock.MockDealQueries, *queriesmock.MockUserReadStore) {
		ctrl := gomock.NewController(t)
		dealQ := queriesmock.NewMockDealQueries(ctrl)
		users := queriesmock.NewMockUserReadStore(ctrl)
		tx := &fakeTx{audit: &fakeAuditRepo{}}
		uc := &commitmentCommandsImpl{
			uow:         &fakeUoW{tx: tx},
			clock:       clock.NewMockClock(time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)),
			dealQueries: dealQ,
			users:       users,
		}
		return uc, tx, dealQ, users
	}

	t.Run("想定外エラーはエラー監査を書く", func(t *testing.T) {
		uc, tx, dealQ, users := setup(t)
		dealQ.EXPECT().GetByID(gomock.Any(), dealID).Return(&queries.DealView{Name: "Bulk Coffee Beans"}, nil)
		users.EXPECT().FindByID(gomock.Any(), userID).Return(&queries.AuthorizedUserView{Name: "Alice"}, nil)

		uc.auditOperationFailure(context.Background(), dealID, userID, errs.New("connection reset"))

		require.Len(t, tx.audit.entries, 1)
		e := tx.audit.entries[0]
		assert.Equal(t, "error", e.severity)
		require.NotNil(t, e.userID)
		assert.Equal(t, userID, *e.userID)
		assert.Contains(t, e.message, "Bulk Coffee Beans")
		assert.Contains(t, e.message, "Alice")
		assert.Contains(t, e.message, "connection reset")
	})

	t.Run("想定内エラーは書かない", func(t *testing.T) {
		uc, tx, _, _ := setup(t)

		uc.auditOperationFailure(context.Background(), dealID, userID, errs.Mark(errs.New("bad input"), ErrValidation))

		assert.Empty(t, tx.audit.entries)
	})

	t.Run("参照に失敗したらプレースホルダー名で記録", func(t *testing.T) {
		uc, tx, dealQ, users := setup(t)
		dealQ.EXPECT().GetByID(gomock.Any(), dealID).Return(nil, errs.New("read store down"))
		users.EXPECT().FindByID(gomock.Any(), userID).Return(nil, errs.New("read store down"))

		uc.auditOperationFailure(context.Background(), dealID, userID, errs.New("boom"))

		require.Len(t, tx.audit.entries, 1)
		assert.Contains(t, tx.audit.entries[0].message, "unknown deal")
		assert.Contains(t, tx.audit.entries[0].message, "unknown user")
	})

	t.Run("Cancelの想定外エラーで監査が残る", func(t *testing.T) {
		uc, tx, dealQ, users := setup(t)
		tx.commitments = &fakeCommitmentRepo{findErr: errs.New("deadlock detected")}
		dealQ.EXPECT().GetByID(gomock.Any(), uuid.Nil).Return(nil, errs.New("no deal"))
		users.EXPECT().FindByID(gomock.Any(), userID).Return(nil, errs.New("no user"))

		actor, err := auth.NewContext(userID, user.RoleMember)
		require.NoError(t, err)

		require.Error(t, uc.Cancel(context.Background(), actor, uuid.New()))

		require.Len(t, tx.audit.entries, 1)
		assert.Equal(t, "error", tx.audit.entries[0].severity)
		assert.Contains(t, tx.audit.entries[0].message, "deadlock detected")
	})

	t.Run("UpdateStatusの想定外エラーで監査が残る", func(t *testing.T) {
		uc, tx, dealQ, users := setup(t)
		tx.commitments = &fakeCommitmentRepo{findErr: errs.New("deadlock detected")}
		dealQ.EXPECT().GetByID(gomock.Any(), uuid.Nil).Return(nil, errs.New("no deal"))
		users.EXPECT().FindByID(gomock.Any(), userID).Return(nil, errs.New("no user"))

		actor, err := auth.NewContext(userID, user.RoleDistributor)
		require.NoError(t, err)

		_, err = uc.UpdateStatus(context.Background(), actor, UpdateStatusInput{
			CommitmentID: uuid.New(),
			Status:       "approved",
		})
		require.Error(t, err)

		require.Len(t, tx.audit.entries, 1)
		assert.Equal(t, "error", tx.audit.entries[0].severity)
		assert.Contains(t, tx.audit.entries[0].message, "deadlock detected")
	})
}
