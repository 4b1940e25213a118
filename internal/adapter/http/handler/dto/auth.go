package dto

import (
	"time"

	"github.com/Temutjin2k/batoda/internal/domain/models"
	"github.com/Temutjin2k/batoda/pkg/validator"
)

// Empty phone and password are left to the auth service, which owns those messages.
type RegisterUserRequest struct {
	Phone    string `json:"phone" validate:"omitempty,phone"`
	Name     string `json:"name" validate:"max=100"`
	Password string `json:"password" validate:"omitempty,min=6,max=72"`
}

func (r *RegisterUserRequest) Validate(v *validator.Validator) {
	v.Struct(r)
}

type LoginRequest struct {
	Phone    string `json:"phone" validate:"max=32"`
	Password string `json:"password" validate:"max=72"`
}

func (r *LoginRequest) Validate(v *validator.Validator) {
	v.Struct(r)
}

type SessionResponse struct {
	AccessToken string       `json:"access_token"`
	ExpiresAt   time.Time    `json:"expires_at"`
	Next        string       `json:"next"`
	User        *models.User `json:"user"`
}

func NewSessionResponse(s *models.Session) SessionResponse {
	return SessionResponse{
		AccessToken: s.Token.Token,
		ExpiresAt:   s.Token.ExpiresAt,
		Next:        s.Next,
		User:        s.User,
	}
}

type AuthWebSocketReq struct {
	Type  string `json:"type"`
	Token string `json:"token"`
}

func (r *AuthWebSocketReq) Validate(v *validator.Validator) {
	v.Check(r.Type == "auth", "type", "must be auth")
	v.Check(r.Token != "", "token", "must be provided")
}

type AuthWebSocketResp struct {
	Type        string `json:"type"`
	PassengerID string `json:"passenger_id"`
}
