package factory

import (
	"github.com/iov-one/rainbow"
	"github.com/iov-one/rainbow/x"
	"github.com/iov-one/rainbow/x/spawn"
)

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r rainbow.Registry, auth x.Authenticator, ctrl Controller) {
	r.Handle(&SpawnMsg{}, SpawnHandler{auth: auth, ctrl: ctrl})
}

// SpawnHandler creates multisig instances. The result data is the address
// of the new instance.
type SpawnHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ rainbow.Handler = SpawnHandler{}

func (h SpawnHandler) Check(ctx rainbow.Context, db rainbow.KVStore, m rainbow.Msg) (*rainbow.CheckResult, error) {
	if _, err := h.deliver(ctx, db, m); err != nil {
		return nil, err
	}
	return &rainbow.CheckResult{}, nil
}

func (h SpawnHandler) Deliver(ctx rainbow.Context, db rainbow.KVStore, m rainbow.Msg) (*rainbow.DeliverResult, error) {
	addr, err := h.deliver(ctx, db, m)
	if err != nil {
		return nil, err
	}
	return &rainbow.DeliverResult{Data: addr, Log: addr.String()}, nil
}

func (h SpawnHandler) deliver(ctx rainbow.Context, db rainbow.KVStore, m rainbow.Msg) (rainbow.Address, error) {
	var msg SpawnMsg
	if err := rainbow.LoadMsg(m, &msg); err != nil {
		return nil, err
	}
	caller, err := x.Caller(ctx, h.auth)
	if err != nil {
		return nil, err
	}
	ref := spawn.TemplateRef(msg.Template)
	return h.ctrl.Spawn(ctx, db, caller, ref, msg.Managers, msg.Threshold, msg.Endowment)
}
