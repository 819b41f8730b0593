// Package utils collects small helpers shared by the handler, service and
// adapter layers: typed context keys, password digests, token generation,
// JSON response writing and the resty client constructor.
package utils

import (
	"context"

	"github.com/MKhiriev/go-item-custody/models"
)

type userCtxKey struct{}

// WithUser returns a copy of ctx carrying the authenticated caller.
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userCtxKey{}, user)
}

// GetUserFromContext returns the authenticated caller, or ok == false when
// the request did not pass through the auth middleware.
func GetUserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(userCtxKey{}).(*models.User)
	if !ok || user == nil {
		return nil, false
	}
	return user, true
}
