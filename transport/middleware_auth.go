package transport

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/muhammadheryan/sample-api/application/auth"
	utilsContext "github.com/muhammadheryan/sample-api/utils/context"
	"github.com/muhammadheryan/sample-api/utils/logger"
	"go.uber.org/zap"
)

const bearerPrefix = "bearer "

// AuthMiddleware returns a middleware that validates bearer tokens.
// Documentation endpoints under /swagger/ are public.
func AuthMiddleware(validator auth.TokenValidator) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Public paths
			if isPublicPath(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			token, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				logger.Warn("Missing or malformed authorization header", zap.String("path", r.URL.Path))
				writeUnauthorized(w, r)
				return
			}

			identity, err := validator.ValidateToken(r.Context(), token)
			if err != nil {
				logger.Warn("Invalid token", zap.String("path", r.URL.Path), zap.String("error", err.Error()))
				writeUnauthorized(w, r)
				return
			}

			// Embed identity into context
			ctx := utilsContext.WithIdentity(r.Context(), identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bearerToken extracts the token from an Authorization header value. The
// scheme is matched case-insensitively.
func bearerToken(header string) (string, bool) {
	if len(header) < len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(bearerPrefix):])
	return token, token != ""
}

// isPublicPath defines which endpoints are public (no auth required)
func isPublicPath(path string) bool {
	return strings.HasPrefix(path, "/swagger/")
}
