package types

import "context"

// Context Keys
type contextKey string

const (
	requestIDKey contextKey = "request_id"
)

// WithRequestID stores the request ID in the context. Outbound service calls
// propagate it as the X-Request-Id header.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// GetRequestID retrieves the request ID from the context.
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
