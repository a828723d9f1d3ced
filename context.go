/*
We pass context through context.Context between app and handlers. The
app package sets the values every handler may rely upon, such as the
logger and the invocation sequence. Each extension, such as auth, may add
its own keys to enrich the context with specific data.

There should exist two functions for every XYZ of type T
that we want to support in Context:

  WithXYZ(Context, T) Context
  GetXYZ(Context) (val T, ok bool)

WithXYZ may panic if the value was previously set to avoid lower-level
modules overwriting the value.
*/

package rainbow

import (
	"context"
	"fmt"

	"github.com/tendermint/tendermint/libs/log"
)

// Context is just an alias for the standard implementation.
// We use functions to extend it to our domain
type Context = context.Context

type contextKey int // local to the rainbow module

const (
	contextKeyLogger contextKey = iota
	contextKeyInvocation
)

var (
	// DefaultLogger is used for all context that have not
	// set anything themselves
	DefaultLogger = log.NewNopLogger()
)

// WithInvocation sets the sequence number of the top level invocation that
// is processed. Set once by the host.
func WithInvocation(ctx Context, seq uint64) Context {
	if _, ok := ctx.Value(contextKeyInvocation).(uint64); ok {
		panic(fmt.Sprintf("invocation already set to %d", seq))
	}
	return context.WithValue(ctx, contextKeyInvocation, seq)
}

// GetInvocation returns the sequence number of the processed invocation,
// ok is false when not called from within the host.
func GetInvocation(ctx Context) (uint64, bool) {
	val, ok := ctx.Value(contextKeyInvocation).(uint64)
	return val, ok
}

// WithLogger sets the logger for this context
func WithLogger(ctx Context, logger log.Logger) Context {
	return context.WithValue(ctx, contextKeyLogger, logger)
}

// WithLogInfo accepts keyvalue pairs, and returns another
// context like this, after passing all the keyvals to the
// Logger
func WithLogInfo(ctx Context, keyvals ...interface{}) Context {
	logger := GetLogger(ctx).With(keyvals...)
	return WithLogger(ctx, logger)
}

// GetLogger returns the currently set logger, or
// DefaultLogger if none was set
func GetLogger(ctx Context) log.Logger {
	val, ok := ctx.Value(contextKeyLogger).(log.Logger)
	if !ok {
		return DefaultLogger
	}
	return val
}
