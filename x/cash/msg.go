package cash

import (
	"github.com/iov-one/rainbow"
	"github.com/iov-one/rainbow/errors"
)

// Ensure we implement the Msg interface
var _ rainbow.Msg = (*SendMsg)(nil)

const maxMemoSize int = 128

// SendMsg moves funds of the caller to another identity or instance.
type SendMsg struct {
	Destination rainbow.Address `json:"destination"`
	Amount      uint64          `json:"amount"`
	Memo        string          `json:"memo,omitempty"`
}

// Path returns the routing path for this message
func (SendMsg) Path() string {
	return "cash/send"
}

// Validate makes sure that this is sensible
func (m *SendMsg) Validate() error {
	if m.Amount == 0 {
		return errors.Wrap(errors.ErrAmount, "non-positive SendMsg")
	}
	if err := m.Destination.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	if len(m.Memo) > maxMemoSize {
		return errors.Wrap(errors.ErrInput, "memo too long")
	}
	return nil
}
