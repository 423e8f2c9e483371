package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/sakif/scrapbook/internal/apperror"
	"github.com/sakif/scrapbook/internal/service"
)

type AuthHandler struct {
	auth   *service.AuthService
	logger *slog.Logger
}

func NewAuthHandler(auth *service.AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, logger: logger}
}

// Password stays untyped so a non-string value is a failed attempt rather
// than a decode error.
type authRequest struct {
	Password any `json:"password"`
}

// candidate maps the submitted value onto a password. A falsy value is an
// empty password; truthy values other than strings can never match.
func (req authRequest) candidate() (password string, comparable bool) {
	switch v := req.Password.(type) {
	case nil:
		return "", true
	case string:
		return v, true
	case bool:
		return "", !v
	case float64:
		return "", v == 0
	default:
		return "", false
	}
}

type authResponse struct {
	Authenticated bool   `json:"authenticated"`
	Error         string `json:"error,omitempty"`
}

// HandleCheck answers whether the submitted password unlocks the private
// space.
//
// HTTP: POST /api/auth
// REQUEST BODY: {"password": "..."}
func (h *AuthHandler) HandleCheck(w http.ResponseWriter, r *http.Request) {
	var req authRequest
	if err := decodeJSON(r, &req); err != nil {
		h.logger.Warn("invalid auth JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, authResponse{Error: "Authentication failed"})
		return
	}

	password, comparable := req.candidate()
	if !comparable {
		writeJSON(w, http.StatusOK, authResponse{Authenticated: false})
		return
	}

	ok, err := h.auth.Check(r.Context(), password)
	if err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) && errors.Is(err, apperror.ErrValidation) {
			writeJSON(w, http.StatusBadRequest, authResponse{Error: appErr.Message})
			return
		}
		writeJSON(w, http.StatusInternalServerError, authResponse{Error: "Authentication failed"})
		return
	}

	writeJSON(w, http.StatusOK, authResponse{Authenticated: ok})
}
