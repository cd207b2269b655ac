package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/ayyavumurugesan-construction/Ayyavu-Construction/internal/auth"
	"github.com/ayyavumurugesan-construction/Ayyavu-Construction/internal/platform/logger"
	"go.uber.org/zap"
)

// TokenVerifier validates an admin bearer token.
type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

// JWTAuth rejects requests without a valid admin bearer token.
func JWTAuth(verifier TokenVerifier, log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			parts := strings.Fields(header)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				log.Debug("JWTAuth: missing or malformed authorization header", zap.String("path", r.URL.Path))
				unauthorized(w, "authorization token is not provided")
				return
			}

			claims, err := verifier.Verify(parts[1])
			if err != nil {
				log.Warn("JWTAuth: token rejected", zap.String("path", r.URL.Path), zap.Error(err))
				unauthorized(w, "invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), AdminClaimsCtxKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AdminClaims returns the claims stored by JWTAuth.
func AdminClaims(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(AdminClaimsCtxKey).(*auth.Claims)
	return claims, ok
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", "Bearer")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
