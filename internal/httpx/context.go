package httpx

import (
	"context"
	"net/http"
)

type contextKey string

const (
	identityKey  contextKey = "identity"
	requestIDKey contextKey = "requestID"
)

// IdentityFrom retrieves the verified identity from the request context.
func IdentityFrom(r *http.Request) string {
	if v, ok := r.Context().Value(identityKey).(string); ok {
		return v
	}
	return ""
}

// ContextWithIdentity returns a new context carrying the verified identity.
func ContextWithIdentity(ctx context.Context, identity string) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// RequestIDFrom retrieves the request id from the request context.
func RequestIDFrom(r *http.Request) string {
	if v, ok := r.Context().Value(requestIDKey).(string); ok {
		return v
	}
	return ""
}

func ContextWithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}
