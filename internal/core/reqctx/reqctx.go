// Package reqctx carries the authenticated username of the current inbound
// call as an immutable context.Context value.
//
// Every call starts from Init, which shadows anything a parent context may
// hold, so a username can never leak from one call into another. The
// username is attached at most once, right after authentication succeeds.
package reqctx

import (
	"context"
	"errors"

	"github.com/examplews/greeting-service/internal/core/domain"
)

var (
	ErrNotInitialized  = errors.New("request context not initialized")
	ErrAlreadySet      = errors.New("request context username already set")
	ErrInvalidUsername = errors.New("request context username must not be empty")
)

type ctxKey struct{}

type state struct {
	username string
}

// Init returns a child of parent with a fresh, empty request context.
func Init(parent context.Context) context.Context {
	return context.WithValue(parent, ctxKey{}, &state{})
}

// Initialized reports whether Init ran for ctx.
func Initialized(ctx context.Context) bool {
	_, ok := ctx.Value(ctxKey{}).(*state)
	return ok
}

// WithUsername returns a child of ctx carrying username. It fails when Init
// did not run or a username was already attached in this call.
func WithUsername(ctx context.Context, username string) (context.Context, error) {
	if username == "" {
		return ctx, ErrInvalidUsername
	}
	st, ok := ctx.Value(ctxKey{}).(*state)
	if !ok {
		return ctx, ErrNotInitialized
	}
	if st.username != "" {
		return ctx, ErrAlreadySet
	}
	return context.WithValue(ctx, ctxKey{}, &state{username: username}), nil
}

// Username returns the authenticated username, if any.
func Username(ctx context.Context) (string, bool) {
	st, ok := ctx.Value(ctxKey{}).(*state)
	if !ok || st.username == "" {
		return "", false
	}
	return st.username, true
}

// RequireUsername is Username for callers that cannot proceed anonymously.
func RequireUsername(ctx context.Context) (string, error) {
	u, ok := Username(ctx)
	if !ok {
		return "", domain.ErrMissingPrincipal
	}
	return u, nil
}
