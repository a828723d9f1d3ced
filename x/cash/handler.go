package cash

import (
	"github.com/iov-one/rainbow"
	"github.com/iov-one/rainbow/x"
)

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r rainbow.Registry, auth x.Authenticator, control Controller) {
	r.Handle(&SendMsg{}, NewSendHandler(auth, control))
}

// SendHandler will handle sending coins
type SendHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ rainbow.Handler = SendHandler{}

// NewSendHandler creates a handler for SendMsg
func NewSendHandler(auth x.Authenticator, control Controller) SendHandler {
	return SendHandler{
		auth:    auth,
		control: control,
	}
}

// Check just verifies it is properly formed
func (h SendHandler) Check(ctx rainbow.Context, store rainbow.KVStore, m rainbow.Msg) (*rainbow.CheckResult, error) {
	if _, _, err := h.validate(ctx, m); err != nil {
		return nil, err
	}
	return &rainbow.CheckResult{}, nil
}

// Deliver moves the tokens from the caller to the destination if
// all preconditions are met
func (h SendHandler) Deliver(ctx rainbow.Context, store rainbow.KVStore, m rainbow.Msg) (*rainbow.DeliverResult, error) {
	msg, caller, err := h.validate(ctx, m)
	if err != nil {
		return nil, err
	}
	if err := h.control.MoveCoins(store, caller, msg.Destination, msg.Amount); err != nil {
		return nil, err
	}
	return &rainbow.DeliverResult{}, nil
}

func (h SendHandler) validate(ctx rainbow.Context, m rainbow.Msg) (*SendMsg, rainbow.Address, error) {
	var msg SendMsg
	if err := rainbow.LoadMsg(m, &msg); err != nil {
		return nil, nil, err
	}
	caller, err := x.Caller(ctx, h.auth)
	if err != nil {
		return nil, nil, err
	}
	return &msg, caller, nil
}
