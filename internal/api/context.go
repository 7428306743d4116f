package api

import (
	"context"

	"eternavista/internal/user"
)

type ctxKey string

const ctxKeyIdentity ctxKey = "identity"

// WithIdentity attaches the resolved caller to the request context. The
// session middleware does this once per request; handlers read it back with
// IdentityFromContext instead of re-querying the user table.
func WithIdentity(ctx context.Context, u *user.User) context.Context {
	return context.WithValue(ctx, ctxKeyIdentity, u)
}

func IdentityFromContext(ctx context.Context) *user.User {
	v := ctx.Value(ctxKeyIdentity)
	if v == nil {
		return nil
	}
	u, _ := v.(*user.User)
	return u
}
