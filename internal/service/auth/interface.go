package auth

import (
	"context"

	"github.com/Temutjin2k/batoda/internal/domain/models"
	"github.com/google/uuid"
)

type UserRepo interface {
	Create(ctx context.Context, user *models.User) error
	GetByIdentifier(ctx context.Context, identifier string) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// IdentityProvider owns account credentials. Callers never learn why a call failed.
type IdentityProvider interface {
	CreateAccount(ctx context.Context, account models.User, secret string) (*models.User, error)
	Authenticate(ctx context.Context, identifier, secret string) (*models.User, error)
}

type TokenProvider interface {
	Generate(ctx context.Context, user *models.User) (*models.AccessToken, error)
	Validate(ctx context.Context, token string) (*models.CustomClaims, error)
}
