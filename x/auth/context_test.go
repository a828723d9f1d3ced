package auth

import (
	"context"
	"testing"

	"github.com/iov-one/rainbow"
	"github.com/iov-one/rainbow/rainbowtest"
	"github.com/iov-one/rainbow/rainbowtest/assert"
	"github.com/iov-one/rainbow/x"
)

func TestAuthenticate(t *testing.T) {
	alice := rainbowtest.NewCondition()
	bob := rainbowtest.NewCondition()

	var auth Authenticate
	bg := context.Background()
	assert.Equal(t, 0, len(auth.GetConditions(bg)))
	if auth.HasAddress(bg, alice.Address()) {
		t.Fatal("empty context must not authenticate anyone")
	}

	ctx := WithCaller(bg, alice)
	assert.Equal(t, []rainbow.Condition{alice}, auth.GetConditions(ctx))
	if !auth.HasAddress(ctx, alice.Address()) {
		t.Fatal("caller not authenticated")
	}
	if auth.HasAddress(ctx, bob.Address()) {
		t.Fatal("only the caller can be authenticated")
	}
	assert.Equal(t, alice, x.MainSigner(ctx, auth))

	assert.Panics(t, func() { WithCaller(ctx, bob) })
}
