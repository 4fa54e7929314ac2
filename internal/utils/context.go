package utils

// contextKey is a type used for context keys to avoid conflicts with other
// packages' context keys.
type contextKey struct {
	name string
}

// Returns string representation of the context key.
func (c *contextKey) String() string {
	return c.name
}

// TraceIdKey carries the per-request trace ID through the gin context.
var TraceIdKey = &contextKey{"traceId"}

// UserKey carries the authenticated user resolved by the auth guard.
var UserKey = &contextKey{"user"}

// SanitizedPayloadKey carries the validated request body set by the
// validation middleware.
var SanitizedPayloadKey = &contextKey{"sanitizedPayload"}
