package common

import (
	"context"
	"slices"
)

type ctxKey string

const (
	subjectKey ctxKey = "auth/subject"
	rolesKey   ctxKey = "auth/roles"
)

// WithSubject stores the authenticated subject on the provided context.
func WithSubject(ctx context.Context, sub string) context.Context {
	return context.WithValue(ctx, subjectKey, sub)
}

// Subject extracts the authenticated subject from the context if present.
func Subject(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(subjectKey).(string)
	return id, ok
}

// WithRoles stores the roles granted to the caller.
func WithRoles(ctx context.Context, roles []string) context.Context {
	return context.WithValue(ctx, rolesKey, roles)
}

// Roles returns the roles granted to the caller.
func Roles(ctx context.Context) []string {
	roles, _ := ctx.Value(rolesKey).([]string)
	return roles
}

// HasRole reports whether the caller holds role.
func HasRole(ctx context.Context, role string) bool {
	return slices.Contains(Roles(ctx), role)
}
