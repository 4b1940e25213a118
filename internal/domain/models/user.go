package models

import (
	"context"
	"time"

	"github.com/Temutjin2k/batoda/internal/domain/types"
	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `json:"id"`
	Identifier   string    `json:"identifier"` // phone + "@" + account domain
	Phone        string    `json:"phone"`
	Name         string    `json:"name,omitempty"`
	Role         string    `json:"role"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

func AnonymousUser() *User {
	return &User{Role: types.RoleAnonymous.String()}
}

func (u *User) IsAnonymous() bool {
	return u.Role == types.RoleAnonymous.String()
}

type userCtxKey struct{}

func WithUser(ctx context.Context, user *User) context.Context {
	return context.WithValue(ctx, userCtxKey{}, user)
}

func UserFromContext(ctx context.Context) *User {
	user, _ := ctx.Value(userCtxKey{}).(*User)
	return user
}
