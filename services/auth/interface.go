package auth

import (
	"context"

	"bossmaids/models"
)

// AuthService handles account registration and session management. In demo
// mode any credentials are accepted and the seeded demo profile is signed in;
// in production credentials are checked against the users collection.
type AuthService interface {
	SignUp(ctx context.Context, req models.SignUpRequest) (*models.AuthResponse, error)
	SignIn(ctx context.Context, req models.SignInRequest) (*models.AuthResponse, error)
	SignOut(ctx context.Context, token string) error
	GetUser(ctx context.Context, userID string) (*models.User, error)
	UpdateProfile(ctx context.Context, userID string, update models.ProfileUpdate) (*models.User, error)
	// SessionActive reports whether a token hash is still in the session
	// cache (i.e. has not been signed out or expired).
	SessionActive(ctx context.Context, token string) bool
}
