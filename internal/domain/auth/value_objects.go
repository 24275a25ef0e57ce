package auth

import (
	"errors"

	"groupbuy-api/internal/domain/user"

	"github.com/google/uuid"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrMissingActor       = errors.New("acting user is required")
)

type Credentials struct {
	email    user.Email
	password user.Password
}

func NewCredentials(emailStr, passwordStr string) (Credentials, error) {
	email, err := user.NewEmail(emailStr)
	if err != nil {
		return Credentials{}, err
	}

	password, err := user.NewPassword(passwordStr)
	if err != nil {
		return Credentials{}, err
	}

	return Credentials{
		email:    email,
		password: password,
	}, nil
}

func (c Credentials) Email() user.Email {
	return c.email
}

func (c Credentials) Password() user.Password {
	return c.password
}

// Context identifies who is acting and on whose behalf. The acting and
// effective user differ only under admin impersonation; core use cases read
// the effective user and never mutate request state to swap identities.
type Context struct {
	actingUserID    uuid.UUID
	effectiveUserID uuid.UUID
	role            user.Role
}

func NewContext(userID uuid.UUID, role user.Role) (Context, error) {
	if userID == uuid.Nil {
		return Context{}, ErrMissingActor
	}
	return Context{
		actingUserID:    userID,
		effectiveUserID: userID,
		role:            role,
	}, nil
}

// Impersonate returns a context acting as the admin but effective as target.
// Only admins may impersonate; other roles get their own context back.
func (c Context) Impersonate(target uuid.UUID) Context {
	if c.role != user.RoleAdmin || target == uuid.Nil {
		return c
	}
	return Context{
		actingUserID:    c.actingUserID,
		effectiveUserID: target,
		role:            c.role,
	}
}

func (c Context) ActingUserID() uuid.UUID    { return c.actingUserID }
func (c Context) EffectiveUserID() uuid.UUID { return c.effectiveUserID }
func (c Context) Role() user.Role            { return c.role }
func (c Context) IsAdmin() bool              { return c.role == user.RoleAdmin }
func (c Context) IsDistributor() bool        { return c.role == user.RoleDistributor }
