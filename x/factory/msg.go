package factory

import (
	"github.com/iov-one/rainbow"
	"github.com/iov-one/rainbow/errors"
)

const pathSpawnMsg = "factory/spawn"

var _ rainbow.Msg = (*SpawnMsg)(nil)

// SpawnMsg requests a new multisig instance owned by the caller.
type SpawnMsg struct {
	// Template is the name of a registered multisig template.
	Template  string            `json:"template"`
	Managers  []rainbow.Address `json:"managers"`
	Threshold uint64            `json:"threshold"`
	// Endowment is moved from the caller to the new instance.
	Endowment uint64 `json:"endowment"`
}

func (SpawnMsg) Path() string {
	return pathSpawnMsg
}

func (m *SpawnMsg) Validate() error {
	if m.Template == "" {
		return errors.Wrap(errors.ErrEmpty, "template")
	}
	if m.Threshold == 0 {
		return errors.Wrap(errors.ErrInput, "threshold must be positive")
	}
	for i, a := range m.Managers {
		if err := a.Validate(); err != nil {
			return errors.Wrapf(err, "manager %d", i)
		}
	}
	return nil
}
