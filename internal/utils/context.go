package utils

import (
	"context"

	"github.com/vaughan-dsouza/blogspot/internal/models"
)

// context key
type ctxKey string

const CtxIdentityKey ctxKey = "identity"

func WithIdentity(ctx context.Context, id models.Identity) context.Context {
	return context.WithValue(ctx, CtxIdentityKey, id)
}

func IdentityFromContext(ctx context.Context) (models.Identity, bool) {
	id, ok := ctx.Value(CtxIdentityKey).(models.Identity)
	return id, ok
}
