package response

import (
	"time"

	"climatec_os/internal/domain/entities"
	"climatec_os/internal/usecase"
)

type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func FromUser(u entities.User) UserResponse {
	return UserResponse{ID: u.ID, Email: u.Email, Name: u.Name, CreatedAt: u.CreatedAt}
}

type SignInResponse struct {
	Token     string       `json:"token"`
	TokenType string       `json:"token_type"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      UserResponse `json:"user"`
}

func FromAuthResult(r usecase.AuthResult) SignInResponse {
	return SignInResponse{
		Token:     r.Token,
		TokenType: "Bearer",
		ExpiresAt: r.Session.ExpiresAt,
		User:      FromUser(r.User),
	}
}

type MeResponse struct {
	User      UserResponse `json:"user"`
	IssuedAt  time.Time    `json:"issued_at"`
	ExpiresAt time.Time    `json:"expires_at"`
}

func FromSession(u entities.User, s entities.Session) MeResponse {
	return MeResponse{User: FromUser(u), IssuedAt: s.IssuedAt, ExpiresAt: s.ExpiresAt}
}
