package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Temutjin2k/batoda/internal/domain/models"
	"github.com/Temutjin2k/batoda/internal/domain/types"
	wrap "github.com/Temutjin2k/batoda/pkg/logger/wrapper"
	"github.com/Temutjin2k/batoda/pkg/passhash"
	"github.com/google/uuid"
)

// LocalIdentity keeps accounts in a user repository with PBKDF2 password hashes.
type LocalIdentity struct {
	users      UserRepo
	iterations int
}

func NewLocalIdentity(users UserRepo, iterations int) *LocalIdentity {
	if iterations <= 0 {
		iterations = passhash.DefaultIterations
	}
	return &LocalIdentity{
		users:      users,
		iterations: iterations,
	}
}

func (p *LocalIdentity) CreateAccount(ctx context.Context, account models.User, secret string) (*models.User, error) {
	ctx = wrap.WithAction(ctx, "create_account")

	existing, err := p.users.GetByIdentifier(ctx, account.Identifier)
	switch {
	case err == nil && existing != nil:
		return nil, wrap.Error(ctx, types.ErrAccountExists)
	case err != nil && !errors.Is(err, types.ErrUserNotFound):
		return nil, wrap.Error(ctx, fmt.Errorf("failed to look up account: %w", err))
	}

	hash, err := passhash.HashPasswordWithIters(secret, p.iterations)
	if err != nil {
		return nil, wrap.Error(ctx, fmt.Errorf("failed to hash password: %w", err))
	}

	user := account
	user.ID = uuid.New()
	user.PasswordHash = hash
	user.CreatedAt = time.Now().UTC()
	if user.Role == "" {
		user.Role = types.RolePassenger.String()
	}

	if err := p.users.Create(ctx, &user); err != nil {
		return nil, wrap.Error(ctx, fmt.Errorf("failed to save account: %w", err))
	}
	return &user, nil
}

func (p *LocalIdentity) Authenticate(ctx context.Context, identifier, secret string) (*models.User, error) {
	ctx = wrap.WithAction(ctx, "authenticate")

	user, err := p.users.GetByIdentifier(ctx, identifier)
	if err != nil {
		return nil, wrap.Error(ctx, err)
	}

	ok, err := passhash.VerifyPassword(secret, user.PasswordHash)
	if err != nil {
		return nil, wrap.Error(ctx, err)
	}
	if !ok {
		return nil, wrap.Error(ctx, types.ErrAuthentication)
	}
	return user, nil
}
