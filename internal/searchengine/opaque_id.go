package searchengine

import "context"

// OpaqueIDHeader lets the engine tag slow logs and tasks with the caller's trace ID
const OpaqueIDHeader = "X-Opaque-Id"

type opaqueIDKey struct{}

// WithOpaqueID returns a context whose engine requests carry id
func WithOpaqueID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, opaqueIDKey{}, id)
}

// OpaqueID returns the id stored by WithOpaqueID, if any
func OpaqueID(ctx context.Context) string {
	id, _ := ctx.Value(opaqueIDKey{}).(string)
	return id
}
