package journal

import (
	"context"
	"strings"
)

// Identity resolves the user that owns every row a call touches.
type Identity interface {
	CurrentUserID(ctx context.Context) (string, bool)
}

type userIDKey struct{}

// WithUserID returns a context carrying the authenticated user id.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey{}, userID)
}

// ContextIdentity reads the user id placed by WithUserID.
type ContextIdentity struct{}

func (ContextIdentity) CurrentUserID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey{}).(string)
	if !ok || strings.TrimSpace(id) == "" {
		return "", false
	}
	return id, true
}

// StaticIdentity always resolves to one user. The CLI uses it after looking up
// the local account.
type StaticIdentity string

func (s StaticIdentity) CurrentUserID(context.Context) (string, bool) {
	if strings.TrimSpace(string(s)) == "" {
		return "", false
	}
	return string(s), true
}
