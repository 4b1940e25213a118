package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Temutjin2k/batoda/internal/domain/models"
	"github.com/Temutjin2k/batoda/internal/domain/types"
	postgresclient "github.com/Temutjin2k/batoda/pkg/postgres"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepo struct {
	db *pgxpool.Pool
}

func NewUserRepo(db *pgxpool.Pool) *UserRepo {
	return &UserRepo{db: db}
}

// Create inserts the user. A taken identifier returns types.ErrAccountExists.
func (r *UserRepo) Create(ctx context.Context, u *models.User) (err error) {
	defer observe("create_user", time.Now(), &err)

	if u == nil {
		return errors.New("nil user")
	}

	const q = `
		INSERT INTO users (id, identifier, phone, name, role, password_hash)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`

	err = TxorDB(ctx, r.db).
		QueryRow(ctx, q, u.ID, u.Identifier, u.Phone, u.Name, u.Role, u.PasswordHash).
		Scan(&u.CreatedAt)
	if postgresclient.IsUniqueViolation(err) {
		return types.ErrAccountExists
	}
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepo) GetByIdentifier(ctx context.Context, identifier string) (u *models.User, err error) {
	defer observe("get_user_by_identifier", time.Now(), &err)
	return r.get(ctx, `WHERE identifier = $1`, identifier)
}

func (r *UserRepo) GetByID(ctx context.Context, id uuid.UUID) (u *models.User, err error) {
	defer observe("get_user_by_id", time.Now(), &err)
	return r.get(ctx, `WHERE id = $1`, id)
}

func (r *UserRepo) get(ctx context.Context, where string, arg any) (*models.User, error) {
	q := `SELECT id, identifier, phone, name, role, password_hash, created_at FROM users ` + where

	u := &models.User{}
	err := TxorDB(ctx, r.db).QueryRow(ctx, q, arg).
		Scan(&u.ID, &u.Identifier, &u.Phone, &u.Name, &u.Role, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, types.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select user: %w", err)
	}
	return u, nil
}
