package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type AccessToken struct {
	Token     string
	ExpiresAt time.Time
}

// Session is what a successful sign in or sign up hands back to the client.
type Session struct {
	User  *User
	Token AccessToken
	Next  string // screen the navigation host should move to
}

type CustomClaims struct {
	UserID     uuid.UUID `json:"user_id"`
	Identifier string    `json:"identifier"`
	Role       string    `json:"role"`
	jwt.RegisteredClaims
}
