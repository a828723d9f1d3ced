/*
Package auth carries the identity authenticated by the host.

Message signatures are not verified by rainbow. The host resolves the
calling identity before routing a message and stores its condition in the
context with WithCaller. Handlers read it back through the Authenticator
implementation of this package.
*/
package auth

import (
	"context"

	"github.com/iov-one/rainbow"
	"github.com/iov-one/rainbow/x"
)

//------------------- Context --------
// Add context information specific to this package

type contextKey int // local to the auth module

const (
	contextKeyCaller contextKey = iota
)

// WithCaller sets the condition of the identity that invoked the current
// operation. Panics if a caller was already set, nested calls must never
// replace the identity authenticated by the host.
func WithCaller(ctx rainbow.Context, caller rainbow.Condition) rainbow.Context {
	if _, ok := ctx.Value(contextKeyCaller).(rainbow.Condition); ok {
		panic("caller already set")
	}
	return context.WithValue(ctx, contextKeyCaller, caller)
}

// GetCaller returns the condition set by WithCaller, or nil.
func GetCaller(ctx rainbow.Context) rainbow.Condition {
	// (val, ok) form to return nil instead of panic if unset
	val, _ := ctx.Value(contextKeyCaller).(rainbow.Condition)
	return val
}

// Authenticate implements x.Authenticator for the caller stored in the
// context.
type Authenticate struct{}

var _ x.Authenticator = Authenticate{}

// GetConditions returns the caller condition, if any.
func (Authenticate) GetConditions(ctx rainbow.Context) []rainbow.Condition {
	caller := GetCaller(ctx)
	if caller == nil {
		return nil
	}
	return []rainbow.Condition{caller}
}

// HasAddress returns true if the caller resolves to given address.
func (Authenticate) HasAddress(ctx rainbow.Context, addr rainbow.Address) bool {
	caller := GetCaller(ctx)
	if caller == nil {
		return false
	}
	return caller.Address().Equals(addr)
}
