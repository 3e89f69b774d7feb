package observability

import (
	"context"

	"github.com/google/uuid"
)

// CorrelationKey is the context key used for correlation IDs.
type CorrelationKey string

// CorrelationID is the context key under which the correlation ID is stored.
const CorrelationID CorrelationKey = "correlation_id"

// GenerateCorrelationID creates a new unique correlation ID.
func GenerateCorrelationID() string {
	return uuid.NewString()
}

// WithCorrelationID returns a new context with the given correlation ID.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, CorrelationID, id)
}

// ExtractCorrelationID retrieves the correlation ID from the context, or "" if absent.
func ExtractCorrelationID(ctx context.Context) string {
	if id, ok := ctx.Value(CorrelationID).(string); ok {
		return id
	}
	return ""
}
