package auth

import (
	"context"
	"errors"
)

type ctxKey int

const (
	ctxSubject ctxKey = iota
	ctxName
	ctxRole
)

// WithIdentity binds the verified claims identity to the request context.
func WithIdentity(ctx context.Context, subject, name, role string) context.Context {
	ctx = context.WithValue(ctx, ctxSubject, subject)
	ctx = context.WithValue(ctx, ctxName, name)
	ctx = context.WithValue(ctx, ctxRole, role)
	return ctx
}

// Subject returns the verified caller email.
func Subject(ctx context.Context) (string, error) {
	v := ctx.Value(ctxSubject)
	if s, ok := v.(string); ok && s != "" {
		return s, nil
	}
	return "", errors.New("subject not in context")
}

func Name(ctx context.Context) (string, error) {
	v := ctx.Value(ctxName)
	if s, ok := v.(string); ok && s != "" {
		return s, nil
	}
	return "", errors.New("name not in context")
}

func Role(ctx context.Context) (string, error) {
	v := ctx.Value(ctxRole)
	if s, ok := v.(string); ok && s != "" {
		return s, nil
	}
	return "", errors.New("role not in context")
}
