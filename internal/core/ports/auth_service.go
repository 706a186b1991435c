package ports

import (
	"context"

	"github.com/learnhub/institute-console/internal/core/domain"
)

// RegisterInput carries the fields needed to create a console account.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     domain.Role
}

// LoginResult is returned by a successful login: a signed token referencing
// the stored session, and the session itself.
type LoginResult struct {
	Token   string
	Session *domain.Session
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Logout(ctx context.Context, sessionID string) error
}
