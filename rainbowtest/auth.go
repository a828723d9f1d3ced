package rainbowtest

import (
	"context"
	"fmt"

	"github.com/iov-one/rainbow"
)

// Auth is a mock implementing x.Authenticator interface.
//
// This structure authenticates any of referenced conditions.
// You can use either Signer or Signers (or both) attributes to reference
// conditions. This is for the convenience and each time all signers
// (regardless which attribute) are considered.
type Auth struct {
	// Signer represents an authentication of a single signer. This is a
	// convenience attribute when creating an authentication method for a
	// single signer.
	// When authenticating all signers declared on this structure are
	// considered.
	Signer rainbow.Condition

	// Signers represents an authentication of multiple signers.
	Signers []rainbow.Condition
}

func (a *Auth) GetConditions(rainbow.Context) []rainbow.Condition {
	if a.Signer != nil {
		return append(a.Signers, a.Signer)
	}
	return a.Signers
}

func (a *Auth) HasAddress(ctx rainbow.Context, addr rainbow.Address) bool {
	for _, s := range a.Signers {
		if addr.Equals(s.Address()) {
			return true
		}
	}
	if a.Signer == nil {
		return false
	}
	return addr.Equals(a.Signer.Address())
}

// CtxAuth is a mock implementing x.Authenticator interface.
//
// This implementation is using context to store and retrieve permissions.
type CtxAuth struct {
	// Key used to set and retrieve conditions from the context. For
	// convenience only string type keys are allowed.
	Key string
}

func (a *CtxAuth) SetConditions(ctx rainbow.Context, permissions ...rainbow.Condition) rainbow.Context {
	return context.WithValue(ctx, a.Key, permissions)
}

func (a *CtxAuth) GetConditions(ctx rainbow.Context) []rainbow.Condition {
	val := ctx.Value(a.Key)
	if val == nil {
		return nil
	}
	conds, ok := val.([]rainbow.Condition)
	if !ok {
		panic(fmt.Sprintf("instead of []rainbow.Condition got %T", ctx.Value(a.Key)))
	}
	return conds
}

func (a *CtxAuth) HasAddress(ctx rainbow.Context, addr rainbow.Address) bool {
	for _, s := range a.GetConditions(ctx) {
		if addr.Equals(s.Address()) {
			return true
		}
	}
	return false
}

// SetCaller is a shortcut to authenticate a single identity.
func (a *CtxAuth) SetCaller(ctx rainbow.Context, caller rainbow.Condition) rainbow.Context {
	return a.SetConditions(ctx, caller)
}
