package session

import "context"

type (
	key byte
)

var (
	identityKey = key(1)
)

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// FromContext returns the identity stored in ctx or the zero Identity
func FromContext(ctx context.Context) Identity {
	v, _ := ctx.Value(identityKey).(Identity)
	return v
}
