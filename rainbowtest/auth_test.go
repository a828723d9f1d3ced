package rainbowtest

import (
	"context"
	"testing"

	"github.com/iov-one/rainbow"
	"github.com/iov-one/rainbow/rainbowtest/assert"
)

func TestAuth(t *testing.T) {
	a := NewCondition()
	b := NewCondition()
	c := NewCondition()

	auth := &Auth{Signer: a, Signers: []rainbow.Condition{b}}
	ctx := context.Background()
	assert.Equal(t, []rainbow.Condition{b, a}, auth.GetConditions(ctx))
	if !auth.HasAddress(ctx, a.Address()) || !auth.HasAddress(ctx, b.Address()) {
		t.Fatal("signer not authenticated")
	}
	if auth.HasAddress(ctx, c.Address()) {
		t.Fatal("unexpected signer authenticated")
	}
}

func TestCtxAuth(t *testing.T) {
	a := NewCondition()
	b := NewCondition()

	auth := &CtxAuth{Key: "auth"}
	ctx := context.Background()
	assert.Equal(t, 0, len(auth.GetConditions(ctx)))

	ctx = auth.SetCaller(ctx, a)
	assert.Equal(t, []rainbow.Condition{a}, auth.GetConditions(ctx))
	if !auth.HasAddress(ctx, a.Address()) {
		t.Fatal("caller not authenticated")
	}
	if auth.HasAddress(ctx, b.Address()) {
		t.Fatal("unexpected signer authenticated")
	}

	other := &CtxAuth{Key: "other"}
	assert.Equal(t, 0, len(other.GetConditions(ctx)))
}

func TestNewConditionIsUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		c := NewCondition()
		assert.Nil(t, c.Validate())
		if seen[c.String()] {
			t.Fatalf("duplicated condition %s", c)
		}
		seen[c.String()] = true
	}
	assert.Equal(t, NamedCondition("alice"), NamedCondition("alice"))
}
