package utils

import (
	"context"

	"movie-feedback/internal/data/entity"
)

type contextKey string

const (
	IdentityKey contextKey = "identity"
	SubjectKey  contextKey = "subject"
	RoleKey     contextKey = "role"
)

// GetIdentityFromContext returns the requester identity set by the identity middleware.
func GetIdentityFromContext(ctx context.Context) (entity.Identity, bool) {
	identity, ok := ctx.Value(IdentityKey).(entity.Identity)
	if !ok || identity == "" {
		return "", false
	}
	return identity, true
}

func SetIdentityContext(ctx context.Context, identity entity.Identity) context.Context {
	return context.WithValue(ctx, IdentityKey, identity)
}

// GetSubjectFromContext returns the JWT subject, present only for token holders.
func GetSubjectFromContext(ctx context.Context) (string, bool) {
	subject, ok := ctx.Value(SubjectKey).(string)
	return subject, ok && subject != ""
}

func GetRoleFromContext(ctx context.Context) (string, bool) {
	roleVal := ctx.Value(RoleKey)
	if roleVal == nil {
		return "", false
	}

	role, ok := roleVal.(string)
	return role, ok
}

func SetUserContext(ctx context.Context, subject, role string) context.Context {
	ctx = context.WithValue(ctx, SubjectKey, subject)
	ctx = context.WithValue(ctx, RoleKey, role)
	return ctx
}
