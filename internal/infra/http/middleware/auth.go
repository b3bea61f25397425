package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/refinly/loan-referral/internal/entity"
	"github.com/refinly/loan-referral/internal/infra/auth"
)

type ctxKey string

const claimsKey ctxKey = "claims"

type TokenParser interface {
	ParseValidate(tokenStr string) (*auth.Claims, error)
}

// JWTAuth rejects requests without a valid bearer token and stores the
// claims on the request context.
func JWTAuth(parser TokenParser) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := r.Header.Get("Authorization")
			if !strings.HasPrefix(h, "Bearer ") {
				writeJSONError(w, http.StatusUnauthorized, "UNAUTHORIZED")
				return
			}

			claims, err := parser.ParseValidate(strings.TrimPrefix(h, "Bearer "))
			if err != nil {
				writeJSONError(w, http.StatusUnauthorized, "UNAUTHORIZED")
				return
			}
			if _, err := claims.UserID(); err != nil {
				writeJSONError(w, http.StatusUnauthorized, "UNAUTHORIZED")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

// RequireRole must run after JWTAuth.
func RequireRole(roles ...entity.Role) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[string(r)] = struct{}{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok {
				writeJSONError(w, http.StatusUnauthorized, "UNAUTHORIZED")
				return
			}
			if _, ok := allowed[claims.Role]; !ok {
				writeJSONError(w, http.StatusForbidden, "FORBIDDEN")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func ClaimsFromContext(ctx context.Context) (*auth.Claims, bool) {
	c, ok := ctx.Value(claimsKey).(*auth.Claims)
	return c, ok
}

func WithClaims(ctx context.Context, c *auth.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, c)
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
