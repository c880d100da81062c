package transport

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/muhammadheryan/sample-api/utils/logger"
	"go.uber.org/zap"
)

// RecoveryMiddleware turns a handler panic into a 500 problem document.
func RecoveryMiddleware() mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				logger.Error("panic recovered", zap.Any("panic", rec), zap.Stack("stack"))
				writeError(w, r, fmt.Errorf("panic: %v", rec))
			}()
			next.ServeHTTP(w, r)
		})
	}
}
