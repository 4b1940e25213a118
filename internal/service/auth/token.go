package auth

import (
	"context"
	"errors"
	"time"

	"github.com/Temutjin2k/batoda/internal/domain/models"
	wrap "github.com/Temutjin2k/batoda/pkg/logger/wrapper"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const issuer = "batoda"

// TokenService issues and checks HS256 signed access tokens.
type TokenService struct {
	secret    []byte
	accessTTL time.Duration
	now       func() time.Time
}

func NewTokenService(secret string, accessTTL time.Duration) *TokenService {
	return &TokenService{
		secret:    []byte(secret),
		accessTTL: accessTTL,
		now:       time.Now,
	}
}

func (s *TokenService) Generate(ctx context.Context, user *models.User) (*models.AccessToken, error) {
	ctx = wrap.WithAction(ctx, "generate_token")
	if user == nil {
		return nil, wrap.Error(ctx, errors.New("user is nil"))
	}

	issuedAt := s.now().UTC()
	expiresAt := issuedAt.Add(s.accessTTL)

	claims := models.CustomClaims{
		UserID:     user.ID,
		Identifier: user.Identifier,
		Role:       user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    issuer,
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, wrap.Error(ctx, errors.Join(ErrTokenGenerateFail, err))
	}

	return &models.AccessToken{
		Token:     signed,
		ExpiresAt: expiresAt,
	}, nil
}

func (s *TokenService) Validate(ctx context.Context, token string) (*models.CustomClaims, error) {
	ctx = wrap.WithAction(ctx, "validate_token")

	claims := &models.CustomClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(s.now),
	)
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, wrap.Error(ctx, ErrExpToken)
	case err != nil || !parsed.Valid:
		return nil, wrap.Error(ctx, ErrInvalidToken)
	case claims.UserID == uuid.Nil:
		return nil, wrap.Error(ctx, ErrInvalidToken)
	}

	return claims, nil
}
