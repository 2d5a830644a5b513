package ports

import (
	"context"
	"time"

	"github.com/verseyou/verse-api/internal/core/domain"
)

// SignUpInput carries the fields accepted at registration.
type SignUpInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// AuthenticationResult is the transient outcome of a successful sign-in.
// Sign-up returns the created identity only; a token requires an explicit
// sign-in.
type AuthenticationResult struct {
	IdentityID string
	Token      string
	ExpiresAt  time.Time
}

// AuthService orchestrates the sign-up and sign-in workflows.
type AuthService interface {
	SignUp(ctx context.Context, in SignUpInput) (*domain.Identity, error)
	SignIn(ctx context.Context, email, password string) (*AuthenticationResult, error)
}
