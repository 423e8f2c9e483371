package service

import (
	"context"
	"log/slog"

	"github.com/sakif/scrapbook/internal/apperror"
)

// PasswordChecker is satisfied by *auth.Gate.
type PasswordChecker interface {
	Allows(candidate string) (bool, error)
}

// AuthService checks the private-space password. There are no sessions;
// every check stands alone.
type AuthService struct {
	gate   PasswordChecker
	logger *slog.Logger
}

func NewAuthService(gate PasswordChecker, logger *slog.Logger) *AuthService {
	return &AuthService{gate: gate, logger: logger}
}

// Check reports whether password unlocks the private space. A wrong
// password is not an error.
func (s *AuthService) Check(ctx context.Context, password string) (bool, error) {
	if password == "" {
		return false, apperror.ValidationFailed("password", "Password required")
	}

	ok, err := s.gate.Allows(password)
	if err != nil {
		s.logger.ErrorContext(ctx, "password check failed", slog.String("error", err.Error()))
		return false, err
	}

	if !ok {
		s.logger.InfoContext(ctx, "private space unlock rejected")
	}
	return ok, nil
}
