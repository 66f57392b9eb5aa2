package orchestrators

import (
	"context"
	"errors"
	"log/slog"
)

// ErrIncorrectPassword is returned when the posted admin password does not match.
var ErrIncorrectPassword = errors.New("incorrect password")

// AdminLoginInput carries the posted login form. There is only one field.
type AdminLoginInput struct {
	Password string
}

// AdminLoginDeps holds the configured shared secret.
type AdminLoginDeps struct {
	AdminPassword string
}

// ExecuteAdminLogin checks the posted password against the configured secret.
// The comparison is plain equality with no lockout; see DESIGN.md before reusing
// this gate for anything more valuable than the submissions listing.
// PRE: deps.AdminPassword is non-empty
// POST: nil when the password matches, ErrIncorrectPassword otherwise
func ExecuteAdminLogin(ctx context.Context, input AdminLoginInput, deps AdminLoginDeps) error {
	if deps.AdminPassword == "" || input.Password != deps.AdminPassword {
		slog.InfoContext(ctx, "auth_event", "event", "login_failed")
		return ErrIncorrectPassword
	}
	slog.InfoContext(ctx, "auth_event", "event", "login_success")
	return nil
}
