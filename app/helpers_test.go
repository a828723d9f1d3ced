package app

import (
	"sync"

	"github.com/iov-one/rainbow"
	"github.com/iov-one/rainbow/errors"
	"github.com/iov-one/rainbow/x/auth"
)

// writeMsg asks writeHandler to set Key to Value. Fail makes the handler
// return an error after the write, Panic makes it panic.
type writeMsg struct {
	Key   string `json:"key"`
	Value string `json:"value"`
	Fail  bool   `json:"fail"`
	Panic bool   `json:"panic"`
}

func (writeMsg) Path() string { return "test/write" }

func (m *writeMsg) Validate() error {
	if m.Key == "" {
		return errors.Wrap(errors.ErrEmpty, "key")
	}
	return nil
}

type writeHandler struct {
	mu      sync.Mutex
	callers []rainbow.Condition
	seqs    []uint64
}

func (h *writeHandler) Check(ctx rainbow.Context, db rainbow.KVStore, m rainbow.Msg) (*rainbow.CheckResult, error) {
	if _, err := h.Deliver(ctx, db, m); err != nil {
		return nil, err
	}
	return &rainbow.CheckResult{}, nil
}

func (h *writeHandler) Deliver(ctx rainbow.Context, db rainbow.KVStore, m rainbow.Msg) (*rainbow.DeliverResult, error) {
	var msg writeMsg
	if err := rainbow.LoadMsg(m, &msg); err != nil {
		return nil, err
	}
	seq, _ := rainbow.GetInvocation(ctx)
	h.mu.Lock()
	h.callers = append(h.callers, auth.GetCaller(ctx))
	h.seqs = append(h.seqs, seq)
	h.mu.Unlock()

	if err := db.Set([]byte(msg.Key), []byte(msg.Value)); err != nil {
		return nil, err
	}
	if msg.Panic {
		panic("write handler panic")
	}
	if msg.Fail {
		return nil, errors.Wrap(errors.ErrHuman, "requested failure")
	}
	return &rainbow.DeliverResult{Data: []byte(msg.Value), Log: "written"}, nil
}

type dummyInit struct{}

func (dummyInit) FromGenesis(opts rainbow.Options, kv rainbow.KVStore) error {
	var value string
	if err := opts.ReadOptions("dummy", &value); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	if value == "" {
		return errors.Wrap(errors.ErrEmpty, "dummy")
	}
	return kv.Set([]byte("dummy"), []byte(value))
}
