// Package context carries request-scoped observability identifiers.
package context

import "context"

type contextKey string

const requestIDKey contextKey = "observability_request_id"

// WithRequestID attaches the request id so downstream log lines can be
// correlated with the HTTP request that produced them.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	if ctx == nil || requestID == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey, requestID)
}

func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	value, _ := ctx.Value(requestIDKey).(string)
	return value
}
