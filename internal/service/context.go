package service

import "context"

type userIDKey struct{}

// WithUserID returns a context asserting userID as the acting identity.
// It takes precedence over the persisted signed-in pointer.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey{}, userID)
}

// UserIDFromContext returns the identity asserted on ctx, if any.
func UserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey{}).(string)
	return userID, ok && userID != ""
}
