package common

import (
	"context"
)

// Context keys for storing values in context
type contextKey string

const (
	ContextKeyDropID contextKey = "drop_id"
)

// WithDropID tags the context with the ID of the drop being processed
func WithDropID(ctx context.Context, dropID string) context.Context {
	return context.WithValue(ctx, ContextKeyDropID, dropID)
}

// DropIDFromContext extracts the drop ID from context
func DropIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(ContextKeyDropID).(string); ok {
		return id
	}
	return ""
}
