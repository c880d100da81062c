package transport

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	utilsContext "github.com/muhammadheryan/sample-api/utils/context"
)

const TraceHeader = "X-Trace-Id"

// TraceMiddleware attaches a trace id to the request context and response,
// reusing the caller's id when one is supplied.
func TraceMiddleware() mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			traceID := r.Header.Get(TraceHeader)
			if traceID == "" {
				traceID = uuid.NewString()
			}
			w.Header().Set(TraceHeader, traceID)
			next.ServeHTTP(w, r.WithContext(utilsContext.WithTraceID(r.Context(), traceID)))
		})
	}
}
