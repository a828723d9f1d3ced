package multisig

import (
	"encoding/binary"

	"github.com/iov-one/rainbow"
	"github.com/iov-one/rainbow/errors"
	"github.com/iov-one/rainbow/gconf"
	"github.com/iov-one/rainbow/x"
)

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r rainbow.Registry, auth x.Authenticator, ctrl Controller) {
	r.Handle(&ProposeMsg{}, ProposeHandler{auth: auth, ctrl: ctrl})
	r.Handle(&SignMsg{}, SignHandler{auth: auth, ctrl: ctrl})
	r.Handle(&AddManagerMsg{}, ManagerHandler{auth: auth, ctrl: ctrl})
	r.Handle(&RemoveManagerMsg{}, ManagerHandler{auth: auth, ctrl: ctrl})
	r.Handle(&UpdateConfigurationMsg{}, NewConfigHandler(auth))
}

// NewConfigHandler returns the handler updating the package configuration.
// The configuration must be created in genesis.
func NewConfigHandler(auth x.Authenticator) rainbow.Handler {
	return gconf.NewUpdateConfigurationHandler(packageName, &Configuration{}, auth, nil)
}

// ProposeHandler creates transactions. The result data is the big endian
// encoded transaction id.
type ProposeHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ rainbow.Handler = ProposeHandler{}

func (h ProposeHandler) Check(ctx rainbow.Context, db rainbow.KVStore, m rainbow.Msg) (*rainbow.CheckResult, error) {
	if _, err := h.deliver(ctx, db, m); err != nil {
		return nil, err
	}
	return &rainbow.CheckResult{}, nil
}

func (h ProposeHandler) Deliver(ctx rainbow.Context, db rainbow.KVStore, m rainbow.Msg) (*rainbow.DeliverResult, error) {
	id, err := h.deliver(ctx, db, m)
	if err != nil {
		return nil, err
	}
	return &rainbow.DeliverResult{Data: encodeID(id)}, nil
}

func (h ProposeHandler) deliver(ctx rainbow.Context, db rainbow.KVStore, m rainbow.Msg) (uint64, error) {
	var msg ProposeMsg
	if err := rainbow.LoadMsg(m, &msg); err != nil {
		return 0, err
	}
	caller, err := x.Caller(ctx, h.auth)
	if err != nil {
		return 0, err
	}
	return h.ctrl.Propose(ctx, db, msg.Multisig, caller, msg.Destination, msg.Amount)
}

// SignHandler signs transactions.
type SignHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ rainbow.Handler = SignHandler{}

func (h SignHandler) Check(ctx rainbow.Context, db rainbow.KVStore, m rainbow.Msg) (*rainbow.CheckResult, error) {
	if _, err := h.deliver(ctx, db, m); err != nil {
		return nil, err
	}
	return &rainbow.CheckResult{}, nil
}

func (h SignHandler) Deliver(ctx rainbow.Context, db rainbow.KVStore, m rainbow.Msg) (*rainbow.DeliverResult, error) {
	tx, err := h.deliver(ctx, db, m)
	if err != nil {
		return nil, err
	}
	return &rainbow.DeliverResult{Log: tx.Status.String()}, nil
}

func (h SignHandler) deliver(ctx rainbow.Context, db rainbow.KVStore, m rainbow.Msg) (*Transaction, error) {
	var msg SignMsg
	if err := rainbow.LoadMsg(m, &msg); err != nil {
		return nil, err
	}
	caller, err := x.Caller(ctx, h.auth)
	if err != nil {
		return nil, err
	}
	return h.ctrl.Sign(ctx, db, msg.Multisig, caller, msg.TransactionID)
}

// ManagerHandler adds and revokes managers.
type ManagerHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ rainbow.Handler = ManagerHandler{}

func (h ManagerHandler) Check(ctx rainbow.Context, db rainbow.KVStore, m rainbow.Msg) (*rainbow.CheckResult, error) {
	if err := h.deliver(ctx, db, m); err != nil {
		return nil, err
	}
	return &rainbow.CheckResult{}, nil
}

func (h ManagerHandler) Deliver(ctx rainbow.Context, db rainbow.KVStore, m rainbow.Msg) (*rainbow.DeliverResult, error) {
	if err := h.deliver(ctx, db, m); err != nil {
		return nil, err
	}
	return &rainbow.DeliverResult{}, nil
}

func (h ManagerHandler) deliver(ctx rainbow.Context, db rainbow.KVStore, m rainbow.Msg) error {
	caller, err := x.Caller(ctx, h.auth)
	if err != nil {
		return err
	}
	switch msg := m.(type) {
	case *AddManagerMsg:
		if err := msg.Validate(); err != nil {
			return err
		}
		return h.ctrl.AddManager(db, msg.Multisig, caller, msg.Manager)
	case *RemoveManagerMsg:
		if err := msg.Validate(); err != nil {
			return err
		}
		return h.ctrl.RemoveManager(db, msg.Multisig, caller, msg.Manager)
	default:
		return errors.Wrapf(errors.ErrType, "unexpected message %T", m)
	}
}

func encodeID(id uint64) []byte {
	raw := make([]byte, 8)
	binary.BigEndian.PutUint64(raw, id)
	return raw
}

// DecodeID reads a transaction id returned by ProposeHandler.
func DecodeID(raw []byte) (uint64, error) {
	if len(raw) != 8 {
		return 0, errors.Wrapf(errors.ErrInput, "id must be 8 bytes, got %d", len(raw))
	}
	return binary.BigEndian.Uint64(raw), nil
}
