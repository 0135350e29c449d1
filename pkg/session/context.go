package session

import "context"

// ContextKey is a type for context keys to avoid collisions.
type ContextKey string

const (
	// Key is the context key for the caller Session.
	Key ContextKey = "session"
)

// Get retrieves the caller Session from context.
func Get(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(Key).(*Session)
	return s, ok
}

// Set stores the caller Session in context.
func Set(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, Key, s)
}
