package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/giftwell/giftwell/internal/auth"
	"github.com/giftwell/giftwell/internal/model"
)

// UserSource resolves a token subject to a user.
// *repository.Repository satisfies it.
type UserSource interface {
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
}

// UserCache is an optional cache in front of UserSource lookups.
// *cache.Cache satisfies it.
type UserCache interface {
	GetAuthUser(ctx context.Context, cacheKey string) (*model.User, error)
	SetAuthUser(ctx context.Context, cacheKey string, user *model.User) error
}

// AuthConfig holds configuration for the auth middleware.
type AuthConfig struct {
	Logger *slog.Logger
	Tokens *auth.TokenIssuer
	Users  UserSource
	Cache  UserCache // may be nil
}

// Auth returns a middleware that authenticates requests with a bearer
// token. It validates the token, resolves the subject claim to a user
// and injects the user into the request context. Any failure produces
// a 401 with a WWW-Authenticate challenge.
func Auth(cfg AuthConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearerToken(r)
			if token == "" {
				logAuthFailure(cfg.Logger, r, "missing_token")
				writeAuthError(w)
				return
			}

			username, err := cfg.Tokens.Validate(token)
			if err != nil {
				logAuthFailure(cfg.Logger, r, "invalid_token")
				writeAuthError(w)
				return
			}

			// Check cache first; the key is a hash of the token so raw
			// tokens never reach Redis.
			cacheKey := auth.QuickHash(token)
			var user *model.User
			if cfg.Cache != nil {
				user, _ = cfg.Cache.GetAuthUser(r.Context(), cacheKey)
			}

			if user == nil {
				user, err = cfg.Users.GetUserByUsername(r.Context(), username)
				if err != nil {
					logAuthFailure(cfg.Logger, r, "unknown_subject")
					writeAuthError(w)
					return
				}

				if cfg.Cache != nil {
					_ = cfg.Cache.SetAuthUser(r.Context(), cacheKey, user)
				}
			}

			ctx := auth.ContextWithUser(r.Context(), user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractBearerToken extracts the bearer token from the Authorization header.
func extractBearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(header, "Bearer ")
}

func logAuthFailure(logger *slog.Logger, r *http.Request, reason string) {
	logger.Warn("authentication failed",
		slog.String("reason", reason),
		slog.String("ip", r.RemoteAddr),
		slog.String("endpoint", r.Method+" "+r.URL.Path),
		slog.String("request_id", GetRequestID(r.Context())),
	)
}

// writeAuthError writes a 401 Unauthorized response.
// Uses the same message for all auth failures to prevent enumeration.
func writeAuthError(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"could not validate credentials","code":"UNAUTHORIZED"}`))
}
