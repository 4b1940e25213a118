package memory

import (
	"context"
	"sync"

	"github.com/Temutjin2k/batoda/internal/domain/models"
	"github.com/Temutjin2k/batoda/internal/domain/types"
	"github.com/google/uuid"
)

type UserRepo struct {
	mu           sync.RWMutex
	byID         map[uuid.UUID]models.User
	byIdentifier map[string]uuid.UUID
}

func NewUserRepo() *UserRepo {
	return &UserRepo{
		byID:         make(map[uuid.UUID]models.User),
		byIdentifier: make(map[string]uuid.UUID),
	}
}

func (r *UserRepo) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byIdentifier[user.Identifier]; exists {
		return types.ErrAccountExists
	}
	r.byID[user.ID] = *user
	r.byIdentifier[user.Identifier] = user.ID
	return nil
}

func (r *UserRepo) GetByIdentifier(_ context.Context, identifier string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byIdentifier[identifier]
	if !ok {
		return nil, types.ErrUserNotFound
	}
	user := r.byID[id]
	return &user, nil
}

func (r *UserRepo) GetByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byID[id]
	if !ok {
		return nil, types.ErrUserNotFound
	}
	return &user, nil
}
