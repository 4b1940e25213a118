package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/Temutjin2k/batoda/internal/domain/models"
	"github.com/Temutjin2k/batoda/internal/domain/types"
	"github.com/Temutjin2k/batoda/pkg/logger"
	wrap "github.com/Temutjin2k/batoda/pkg/logger/wrapper"
	"github.com/Temutjin2k/batoda/pkg/metrics"
)

// NextScreen is where the client goes after a successful sign in.
const NextScreen = "home"

const (
	msgEnterPhone    = "Please enter your phone number."
	msgEnterPassword = "Please enter your password."
)

type SignUpInput struct {
	Phone    string
	Name     string
	Password string
}

type AuthService struct {
	identity IdentityProvider
	tokens   TokenProvider
	users    UserRepo
	domain   string
	log      logger.Logger
}

func NewAuthService(identity IdentityProvider, tokens TokenProvider, users UserRepo, accountDomain string, log logger.Logger) *AuthService {
	return &AuthService{
		identity: identity,
		tokens:   tokens,
		users:    users,
		domain:   accountDomain,
		log:      log,
	}
}

// Identifier turns a phone number into the account identifier.
func (s *AuthService) Identifier(phone string) string {
	return strings.TrimSpace(phone) + "@" + s.domain
}

// SignIn authenticates a passenger. Every provider failure is reported as
// types.ErrAuthentication; the cause is only logged.
func (s *AuthService) SignIn(ctx context.Context, phone, password string) (*models.Session, error) {
	ctx = wrap.WithAction(ctx, "sign_in")

	if err := checkCredentials(phone, password); err != nil {
		return nil, err
	}

	user, err := s.identity.Authenticate(ctx, s.Identifier(phone), password)
	metrics.RecordAuthAttempt("sign_in", err)
	if err != nil {
		s.log.Warn(wrap.ErrorCtx(ctx, err), "sign in failed", "error", err.Error())
		return nil, types.ErrAuthentication
	}

	return s.session(ctx, user)
}

// SignUp creates a passenger account and signs it in.
func (s *AuthService) SignUp(ctx context.Context, in SignUpInput) (*models.Session, error) {
	ctx = wrap.WithAction(ctx, "sign_up")

	if err := checkCredentials(in.Phone, in.Password); err != nil {
		return nil, err
	}

	account := models.User{
		Identifier: s.Identifier(in.Phone),
		Phone:      strings.TrimSpace(in.Phone),
		Name:       strings.TrimSpace(in.Name),
		Role:       types.RolePassenger.String(),
	}

	user, err := s.identity.CreateAccount(ctx, account, in.Password)
	metrics.RecordAuthAttempt("sign_up", err)
	if err != nil {
		s.log.Warn(wrap.ErrorCtx(ctx, err), "sign up failed", "error", err.Error())
		return nil, types.ErrAuthentication
	}

	s.log.Info(wrap.WithUserID(ctx, user.ID.String()), "passenger registered")
	return s.session(ctx, user)
}

// RoleCheck resolves the user behind an access token.
func (s *AuthService) RoleCheck(ctx context.Context, token string) (*models.User, error) {
	ctx = wrap.WithAction(ctx, "role_check")

	claims, err := s.tokens.Validate(ctx, token)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, types.ErrUserNotFound) {
			return nil, wrap.Error(ctx, ErrInvalidToken)
		}
		return nil, wrap.Error(ctx, err)
	}
	return user, nil
}

func (s *AuthService) session(ctx context.Context, user *models.User) (*models.Session, error) {
	token, err := s.tokens.Generate(ctx, user)
	if err != nil {
		return nil, wrap.Error(ctx, err)
	}
	return &models.Session{
		User:  user,
		Token: *token,
		Next:  NextScreen,
	}, nil
}

func checkCredentials(phone, password string) error {
	if strings.TrimSpace(phone) == "" {
		return types.NewValidationError("phone", msgEnterPhone)
	}
	if password == "" {
		return types.NewValidationError("password", msgEnterPassword)
	}
	return nil
}
