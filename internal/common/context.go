package common

import (
	"context"
	"time"
)

// Context keys for storing values in context
type contextKey string

const (
	ContextKeyRequestID contextKey = "request_id"
	ContextKeySheetID   contextKey = "sheet_id"
)

// WithRequestID adds a request ID to the context
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ContextKeyRequestID, requestID)
}

// RequestIDFromContext extracts the request ID from context
func RequestIDFromContext(ctx context.Context) string {
	if requestID, ok := ctx.Value(ContextKeyRequestID).(string); ok {
		return requestID
	}
	return ""
}

// WithSheetID adds a sheet ID to the context
func WithSheetID(ctx context.Context, sheetID string) context.Context {
	return context.WithValue(ctx, ContextKeySheetID, sheetID)
}

// SheetIDFromContext extracts the sheet ID from context
func SheetIDFromContext(ctx context.Context) string {
	if sheetID, ok := ctx.Value(ContextKeySheetID).(string); ok {
		return sheetID
	}
	return ""
}

// WithTimeout creates a context with the specified timeout. A non-positive
// timeout means no deadline; the context is still cancellable.
func WithTimeout(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, timeout)
}
