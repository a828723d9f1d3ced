package app

import (
	"github.com/iov-one/rainbow"
	"github.com/iov-one/rainbow/errors"
)

// Recovery turns handler panics into ErrPanic errors, so that a panicking
// invocation is rolled back like any failed one.
type Recovery struct {
	h rainbow.Handler
}

var _ rainbow.Handler = Recovery{}

// NewRecovery wraps h.
func NewRecovery(h rainbow.Handler) Recovery {
	return Recovery{h: h}
}

func (r Recovery) Check(ctx rainbow.Context, store rainbow.KVStore, msg rainbow.Msg) (res *rainbow.CheckResult, err error) {
	defer errors.Recover(&err)
	return r.h.Check(ctx, store, msg)
}

func (r Recovery) Deliver(ctx rainbow.Context, store rainbow.KVStore, msg rainbow.Msg) (res *rainbow.DeliverResult, err error) {
	defer errors.Recover(&err)
	return r.h.Deliver(ctx, store, msg)
}
