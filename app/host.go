package app

import (
	"sync"

	"github.com/iov-one/rainbow"
	"github.com/iov-one/rainbow/errors"
	"github.com/iov-one/rainbow/x/auth"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

// Host runs invocations against a store. Invocations are serialized and
// each one is atomic: it either commits all of its writes or none.
type Host struct {
	// mu serializes every access to the store.
	mu          sync.Mutex
	store       rainbow.CommitKVStore
	router      *Router
	handler     rainbow.Handler
	initializer rainbow.Initializer
	logger      log.Logger
	debug       bool

	chainID     string
	invocations uint64
}

// NewHost loads the latest version of store and returns a host routing
// messages with router.
func NewHost(store rainbow.CommitKVStore, router *Router, init rainbow.Initializer) (*Host, error) {
	if err := store.LoadLatestVersion(); err != nil {
		return nil, errors.Wrap(err, "load store")
	}
	chainID, err := loadChainID(store)
	if err != nil {
		return nil, err
	}
	return &Host{
		store:       store,
		router:      router,
		handler:     NewRecovery(router),
		initializer: init,
		logger:      log.NewNopLogger(),
		chainID:     chainID,
	}, nil
}

// WithLogger sets the logger given to handlers and returns the host.
func (h *Host) WithLogger(logger log.Logger) *Host {
	h.logger = logger
	return h
}

// WithDebug makes DeliverTx expose internal error details.
func (h *Host) WithDebug(debug bool) *Host {
	h.debug = debug
	return h
}

// Router returns the router of the host.
func (h *Host) Router() *Router {
	return h.router
}

// ChainID returns the chain id loaded from genesis, empty before.
func (h *Host) ChainID() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.chainID
}

// InitGenesis stores the chain id and runs all initializers on the app
// state. It can run only once for a store.
func (h *Host) InitGenesis(gen Genesis) (err error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	cache := h.store.CacheWrap()
	defer func() {
		if err != nil {
			cache.Discard()
		}
	}()
	defer errors.Recover(&err)

	if err := saveChainID(cache, gen.ChainID); err != nil {
		return err
	}
	if h.initializer != nil {
		if err := h.initializer.FromGenesis(gen.AppState, cache); err != nil {
			return errors.Wrap(err, "genesis")
		}
	}
	if err := cache.Write(); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	h.chainID = gen.ChainID
	h.logger.Info("genesis loaded", "chain_id", gen.ChainID)
	return nil
}

// context returns the context of a new invocation, authenticated as
// caller. Must be called with the lock held.
func (h *Host) context(ctx rainbow.Context, call string, caller rainbow.Condition, msg rainbow.Msg) rainbow.Context {
	h.invocations++
	ctx = rainbow.WithInvocation(ctx, h.invocations)
	ctx = rainbow.WithLogger(ctx, h.logger)
	ctx = rainbow.WithLogInfo(ctx,
		"call", call,
		"invocation", h.invocations,
		"path", msg.Path())
	if caller != nil {
		ctx = auth.WithCaller(ctx, caller)
	}
	return ctx
}

// Deliver runs msg on behalf of caller. A nil caller is anonymous. All
// writes are flushed to the store only when the handler succeeds.
func (h *Host) Deliver(ctx rainbow.Context, caller rainbow.Condition, msg rainbow.Msg) (*rainbow.DeliverResult, error) {
	if msg == nil {
		return nil, errors.Wrap(errors.ErrMsg, "no message")
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	ctx = h.context(ctx, "deliver", caller, msg)
	logger := rainbow.GetLogger(ctx)

	cache := h.store.CacheWrap()
	res, err := h.handler.Deliver(ctx, cache, msg)
	if err != nil {
		cache.Discard()
		logger.Error("invocation failed", "err", err)
		return nil, err
	}
	if err := cache.Write(); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	logger.Info("invocation delivered")
	return res, nil
}

// Check runs msg on behalf of caller without persisting anything.
func (h *Host) Check(ctx rainbow.Context, caller rainbow.Condition, msg rainbow.Msg) (*rainbow.CheckResult, error) {
	if msg == nil {
		return nil, errors.Wrap(errors.ErrMsg, "no message")
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	ctx = h.context(ctx, "check", caller, msg)
	cache := h.store.CacheWrap()
	defer cache.Discard()
	return h.handler.Check(ctx, cache, msg)
}

// DeliverTx decodes the JSON message registered for path and delivers it.
// The outcome is returned as an ABCI response, errors are reported by
// their code.
func (h *Host) DeliverTx(ctx rainbow.Context, caller rainbow.Condition, path string, raw []byte) abci.ResponseDeliverTx {
	msg, err := h.router.DecodeMsg(path, raw)
	if err == nil {
		var res *rainbow.DeliverResult
		if res, err = h.Deliver(ctx, caller, msg); err == nil {
			return abci.ResponseDeliverTx{Data: res.Data, Log: res.Log}
		}
	}
	code, log := errors.ABCIInfo(err, h.debug)
	return abci.ResponseDeliverTx{Code: code, Log: log}
}

// Commit persists all delivered invocations as a new version.
func (h *Host) Commit() (rainbow.CommitID, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id, err := h.store.Commit()
	if err != nil {
		return id, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	h.logger.Debug("commit", "version", id.Version)
	return id, nil
}

// View runs fn with a read only view of the current state.
func (h *Host) View(fn func(rainbow.ReadOnlyKVStore) error) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return fn(h.store)
}
