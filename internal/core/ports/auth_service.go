package ports

import (
	"context"

	"github.com/99minutos/members-auth/internal/core/domain"
)

// SignupInput is the DTO passed from the transport layer to AuthService.Signup.
type SignupInput struct {
	Username string
	Email    string
	Password string
}

// LoginInput is the DTO passed from the transport layer to AuthService.Login.
type LoginInput struct {
	Email    string
	Password string
}

type AuthService interface {
	Signup(ctx context.Context, in SignupInput) (*domain.Session, error)
	Login(ctx context.Context, in LoginInput) (*domain.Session, error)
	Logout(ctx context.Context, token string) error
}
