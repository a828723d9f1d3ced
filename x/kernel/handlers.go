package kernel

import (
	"github.com/iov-one/rainbow"
	"github.com/iov-one/rainbow/errors"
	"github.com/iov-one/rainbow/orm"
	"github.com/iov-one/rainbow/x"
	"github.com/iov-one/rainbow/x/spawn"
)

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r rainbow.Registry, auth x.Authenticator, ctrl Controller) {
	r.Handle(&InitMsg{}, InitHandler{auth: auth, ctrl: ctrl})
	broker := BrokerHandler{ctrl: ctrl}
	r.Handle(&AddRoleMsg{}, broker)
	r.Handle(&AttachPrivilegeMsg{}, broker)
	r.Handle(&AttachRoleMsg{}, broker)
	r.Handle(&AddPrivilegeMsg{}, broker)
	r.Handle(&AddRouteMsg{}, broker)
	r.Handle(&ChangeRouteMsg{}, broker)
}

// InitHandler runs the one time kernel initialization.
type InitHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ rainbow.Handler = InitHandler{}

func (h InitHandler) Check(ctx rainbow.Context, db rainbow.KVStore, m rainbow.Msg) (*rainbow.CheckResult, error) {
	if _, err := h.deliver(ctx, db, m); err != nil {
		return nil, err
	}
	return &rainbow.CheckResult{}, nil
}

func (h InitHandler) Deliver(ctx rainbow.Context, db rainbow.KVStore, m rainbow.Msg) (*rainbow.DeliverResult, error) {
	st, err := h.deliver(ctx, db, m)
	if err != nil {
		return nil, err
	}
	raw, err := st.Marshal()
	if err != nil {
		return nil, errors.Wrap(err, "marshal state")
	}
	return &rainbow.DeliverResult{Data: raw}, nil
}

func (h InitHandler) deliver(ctx rainbow.Context, db rainbow.KVStore, m rainbow.Msg) (*State, error) {
	var msg InitMsg
	if err := rainbow.LoadMsg(m, &msg); err != nil {
		return nil, err
	}
	caller, err := x.Caller(ctx, h.auth)
	if err != nil {
		return nil, err
	}
	return h.ctrl.Init(ctx, db, caller,
		spawn.TemplateRef(msg.RoleTemplate),
		spawn.TemplateRef(msg.PrivilegeTemplate),
		spawn.TemplateRef(msg.RouteTemplate))
}

// BrokerHandler forwards registry mutations. Any identity may call it,
// the registries only trust the kernel itself.
type BrokerHandler struct {
	ctrl Controller
}

var _ rainbow.Handler = BrokerHandler{}

func (h BrokerHandler) Check(ctx rainbow.Context, db rainbow.KVStore, m rainbow.Msg) (*rainbow.CheckResult, error) {
	if _, err := h.deliver(db, m); err != nil {
		return nil, err
	}
	return &rainbow.CheckResult{}, nil
}

// Deliver returns the big endian encoded index for messages creating an
// indexed entry.
func (h BrokerHandler) Deliver(ctx rainbow.Context, db rainbow.KVStore, m rainbow.Msg) (*rainbow.DeliverResult, error) {
	data, err := h.deliver(db, m)
	if err != nil {
		return nil, err
	}
	return &rainbow.DeliverResult{Data: data}, nil
}

func (h BrokerHandler) deliver(db rainbow.KVStore, m rainbow.Msg) ([]byte, error) {
	if m == nil {
		return nil, errors.Wrap(errors.ErrMsg, "no message")
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	switch msg := m.(type) {
	case *AddRoleMsg:
		index, err := h.ctrl.AddRole(db, msg.Name)
		if err != nil {
			return nil, err
		}
		return orm.EncodeSequence(index), nil
	case *AttachPrivilegeMsg:
		return nil, h.ctrl.AttachPrivilege(db, msg.Role, msg.Privilege)
	case *AttachRoleMsg:
		return nil, h.ctrl.AttachRole(db, msg.User, msg.Role)
	case *AddPrivilegeMsg:
		index, err := h.ctrl.AddPrivilege(db, msg.Name)
		if err != nil {
			return nil, err
		}
		return orm.EncodeSequence(index), nil
	case *AddRouteMsg:
		return nil, h.ctrl.AddRoute(db, msg.Name, msg.Address)
	case *ChangeRouteMsg:
		return nil, h.ctrl.ChangeRoute(db, msg.Name, msg.Address)
	default:
		return nil, errors.Wrapf(errors.ErrType, "unexpected message %T", m)
	}
}
