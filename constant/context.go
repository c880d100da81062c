package constant

type contextKey string

const (
	IdentityKey contextKey = "identity"
	TraceIDKey  contextKey = "trace_id"
)
