package repository

import (
	"context"

	"groupbuy-api/internal/infra"
	"groupbuy-api/internal/infra/db"
	"groupbuy-api/internal/pkg/pgconv"
	"groupbuy-api/internal/usecase/shared"

	"github.com/google/uuid"
)

type UserRepository struct{}

func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

const findUserSnapshotSQL = `
SELECT id, email, name, phone, role, is_active
FROM users
WHERE id = $1`

func (r *UserRepository) FindSnapshotByID(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*shared.UserSnapshot, error) {
	var s shared.UserSnapshot
	err := dbtx.QueryRow(ctx, findUserSnapshotSQL, id).Scan(
		&s.ID, &s.Email, &s.Name, &s.Phone, &s.Role, &s.IsActive,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user snapshot", err)
	}
	return &s, nil
}

const findUserSnapshotsByRoleSQL = `
SELECT id, email, name, phone, role, is_active
FROM users
WHERE role = $1 AND is_active
ORDER BY email`

func (r *UserRepository) FindSnapshotsByRole(ctx context.Context, dbtx db.DBTX, role string) ([]*shared.UserSnapshot, error) {
	rows, err := dbtx.Query(ctx, findUserSnapshotsByRoleSQL, role)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query user snapshots by role", err)
	}
	defer rows.Close()

	var out []*shared.UserSnapshot
	for rows.Next() {
		var s shared.UserSnapshot
		if err := rows.Scan(&s.ID, &s.Email, &s.Name, &s.Phone, &s.Role, &s.IsActive); err != nil {
			return nil, infra.WrapRepoErr("failed to scan user snapshot", err)
		}
		out = append(out, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate user snapshots", err)
	}
	return out, nil
}

const updateLastLoginSQL = `UPDATE users SET last_login_at = now() WHERE id = $1`

func (r *UserRepository) UpdateLastLogin(ctx context.Context, dbtx db.DBTX, userID uuid.UUID) error {
	if _, err := dbtx.Exec(ctx, updateLastLoginSQL, userID); err != nil {
		return infra.WrapRepoErr("failed to update last login", err)
	}
	return nil
}
