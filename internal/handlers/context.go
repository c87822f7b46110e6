package handlers

import (
	"context"

	"nextride/internal/models"
)

type contextKey string

const claimsContextKey = contextKey("claims")

// WithClaims stores the authenticated caller on the request context. The
// auth middleware is the only writer.
func WithClaims(ctx context.Context, claims *models.Claims) context.Context {
	return context.WithValue(ctx, claimsContextKey, claims)
}

// ClaimsFromContext returns the authenticated caller, if any.
func ClaimsFromContext(ctx context.Context) (*models.Claims, bool) {
	claims, ok := ctx.Value(claimsContextKey).(*models.Claims)
	return claims, ok && claims != nil
}
