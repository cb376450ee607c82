package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/vancomm/minesweeper-engine/internal/config"
)

type CtxKey int

const (
	CtxSessionClaims CtxKey = iota
)

func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if token, ok := strings.CutPrefix(auth, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	// Browsers cannot set headers on a WebSocket handshake.
	return r.URL.Query().Get("token")
}

// SessionAuth attaches the claims of a valid session token to the request
// context. Requests without a valid token pass through untouched; handlers
// decide whether they need one.
func SessionAuth(logger *slog.Logger, sessions *config.Sessions) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}
			claims, err := sessions.Parse(token)
			if err != nil {
				logger.Debug("rejected session token", slog.Any("error", err))
				next.ServeHTTP(w, r)
				return
			}
			ctx := context.WithValue(r.Context(), CtxSessionClaims, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func SessionClaims(ctx context.Context) (*config.SessionClaims, bool) {
	claims, ok := ctx.Value(CtxSessionClaims).(*config.SessionClaims)
	return claims, ok
}
