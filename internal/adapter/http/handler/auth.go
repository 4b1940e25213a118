package handler

import (
	"context"
	"net/http"

	"github.com/Temutjin2k/batoda/internal/adapter/http/handler/dto"
	"github.com/Temutjin2k/batoda/internal/domain/models"
	"github.com/Temutjin2k/batoda/internal/service/auth"
	"github.com/Temutjin2k/batoda/pkg/logger"
	wrap "github.com/Temutjin2k/batoda/pkg/logger/wrapper"
	"github.com/Temutjin2k/batoda/pkg/validator"
)

type AuthService interface {
	SignUp(ctx context.Context, in auth.SignUpInput) (*models.Session, error)
	SignIn(ctx context.Context, phone, password string) (*models.Session, error)
	RoleCheck(ctx context.Context, token string) (*models.User, error)
}

type Auth struct {
	auth AuthService
	l    logger.Logger
}

func NewAuth(service AuthService, l logger.Logger) *Auth {
	return &Auth{
		auth: service,
		l:    l,
	}
}

// Register godoc
// @Summary      Register a passenger
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request  body      dto.RegisterUserRequest  true  "phone, name and password"
// @Success      201      {object}  dto.SessionResponse
// @Failure      401      {object}  map[string]string
// @Failure      422      {object}  map[string]any
// @Router       /auth/register [post]
func (h *Auth) Register(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "register_user")

	req := &dto.RegisterUserRequest{}
	if err := readJSON(w, r, req); err != nil {
		badRequestResponse(w, err.Error())
		return
	}

	v := validator.New()
	req.Validate(v)
	if !v.Valid() {
		failedValidationResponse(w, v.Errors)
		return
	}

	session, err := h.auth.SignUp(ctx, auth.SignUpInput{
		Phone:    req.Phone,
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		h.l.Warn(wrap.ErrorCtx(ctx, err), "failed to register a new user", "error", err.Error())
		serviceErrorResponse(w, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, envelope{"session": dto.NewSessionResponse(session)}, nil); err != nil {
		h.l.Error(ctx, "failed to write JSON response", err)
		internalErrorResponse(w, "failed to write JSON response")
	}
}

// Login godoc
// @Summary      Sign in with phone number and password
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request  body      dto.LoginRequest  true  "phone and password"
// @Success      200      {object}  dto.SessionResponse
// @Failure      401      {object}  map[string]string
// @Failure      422      {object}  map[string]any
// @Router       /auth/login [post]
func (h *Auth) Login(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "login_user")

	req := &dto.LoginRequest{}
	if err := readJSON(w, r, req); err != nil {
		badRequestResponse(w, err.Error())
		return
	}

	v := validator.New()
	req.Validate(v)
	if !v.Valid() {
		failedValidationResponse(w, v.Errors)
		return
	}

	session, err := h.auth.SignIn(ctx, req.Phone, req.Password)
	if err != nil {
		serviceErrorResponse(w, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, envelope{"session": dto.NewSessionResponse(session)}, nil); err != nil {
		h.l.Error(ctx, "failed to write JSON response", err)
		internalErrorResponse(w, "failed to write JSON response")
	}
}

// Profile godoc
// @Summary      Current user
// @Tags         Auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  models.User
// @Failure      401  {object}  map[string]string
// @Router       /auth/me [get]
func (h *Auth) Profile(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "get_profile")

	user := models.UserFromContext(ctx)
	if user == nil || user.IsAnonymous() {
		unauthorizedResponse(w)
		return
	}

	if err := writeJSON(w, http.StatusOK, envelope{"user": user}, nil); err != nil {
		h.l.Error(ctx, "failed to write JSON response", err)
		internalErrorResponse(w, "failed to write JSON response")
	}
}
