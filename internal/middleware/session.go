package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/josh-kwaku/bankist/internal/auth"
	"github.com/josh-kwaku/bankist/internal/handler"
	"github.com/josh-kwaku/bankist/internal/logging"
)

type sessionChecker interface {
	IsActive(id uuid.UUID) bool
}

// Session admits requests whose bearer token names the live session. A token
// that is still signed and unexpired but belongs to a session that has since
// logged out, expired or been replaced is rejected.
func Session(secret string, sessions sessionChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				handler.RespondAppError(w, handler.ErrMissingToken, nil)
				return
			}

			token, found := strings.CutPrefix(header, "Bearer ")
			if !found || token == "" {
				handler.RespondAppError(w, handler.ErrInvalidToken, nil)
				return
			}

			claims, err := auth.ValidateToken(token, secret)
			if err != nil {
				handler.RespondAppError(w, handler.ErrInvalidToken, nil)
				return
			}

			if !sessions.IsActive(claims.SessionID) {
				handler.RespondAppError(w, handler.ErrSessionExpired, nil)
				return
			}

			ctx := auth.ContextWithSessionID(r.Context(), claims.SessionID)
			logger := logging.FromContext(ctx).With("session_id", claims.SessionID, "username", claims.Username)
			ctx = logging.WithLogger(ctx, logger)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
