package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/giftwell/giftwell/internal/auth"
	"github.com/giftwell/giftwell/internal/handler/dto"
	"github.com/giftwell/giftwell/internal/service"
)

// AuthHandler handles registration and token issuance.
type AuthHandler struct {
	users  *service.UserService
	tokens *auth.TokenIssuer
	logger *slog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(users *service.UserService, tokens *auth.TokenIssuer, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		users:  users,
		tokens: tokens,
		logger: logger,
	}
}

// Register handles POST /users.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "INVALID_JSON", "Invalid request body")
		return
	}

	user, err := h.users.Register(r.Context(), service.RegisterInput{
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("user_registered",
		"user_id", user.ID,
		"username", user.Username,
	)

	writeJSON(w, http.StatusCreated, dto.ToUserResponse(user))
}

// Token handles POST /token. Credentials arrive form-encoded, matching
// the OAuth2 password flow the original clients speak.
func (h *AuthHandler) Token(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "INVALID_FORM", "Invalid form body")
		return
	}

	username := r.PostFormValue("username")
	password := r.PostFormValue("password")
	if username == "" || password == "" {
		writeError(w, http.StatusUnprocessableEntity, "MISSING_CREDENTIALS", "Username and password are required")
		return
	}

	user, err := h.users.Authenticate(r.Context(), username, password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			h.writeCredentialsError(w)
			return
		}
		h.logger.Error("internal_error", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
		return
	}

	token, err := h.tokens.Issue(user.Username)
	if err != nil {
		h.logger.Error("token_issue_failed", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
		return
	}

	h.logger.Info("token_issued",
		"user_id", user.ID,
		"username", user.Username,
		"ttl", h.tokens.TTL().String(),
	)

	writeJSON(w, http.StatusOK, dto.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	})
}

// handleServiceError maps registration errors to HTTP responses.
func (h *AuthHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrEmailRequired),
		errors.Is(err, service.ErrEmailInvalid),
		errors.Is(err, service.ErrUsernameRequired),
		errors.Is(err, service.ErrUsernameInvalid),
		errors.Is(err, service.ErrPasswordRequired):
		writeError(w, http.StatusUnprocessableEntity, "VALIDATION_FAILED", err.Error())
	case errors.Is(err, service.ErrEmailTaken):
		writeError(w, http.StatusConflict, "EMAIL_TAKEN", "Email already registered")
	case errors.Is(err, service.ErrUsernameTaken):
		writeError(w, http.StatusConflict, "USERNAME_TAKEN", "Username already registered")
	default:
		h.logger.Error("internal_error", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	}
}

// writeCredentialsError writes a 401 with a bearer challenge.
func (h *AuthHandler) writeCredentialsError(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	writeError(w, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Incorrect username or password")
}
