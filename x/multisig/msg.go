package multisig

import (
	"github.com/iov-one/rainbow"
	"github.com/iov-one/rainbow/errors"
)

const (
	pathProposeMsg             = "multisig/propose"
	pathSignMsg                = "multisig/sign"
	pathAddManagerMsg          = "multisig/add_manager"
	pathRemoveManagerMsg       = "multisig/remove_manager"
	pathUpdateConfigurationMsg = "multisig/update_configuration"
)

var (
	_ rainbow.Msg = (*ProposeMsg)(nil)
	_ rainbow.Msg = (*SignMsg)(nil)
	_ rainbow.Msg = (*AddManagerMsg)(nil)
	_ rainbow.Msg = (*RemoveManagerMsg)(nil)
	_ rainbow.Msg = (*UpdateConfigurationMsg)(nil)
)

// ProposeMsg proposes a transfer from the multisig balance.
type ProposeMsg struct {
	Multisig    rainbow.Address `json:"multisig"`
	Destination rainbow.Address `json:"destination"`
	Amount      uint64          `json:"amount"`
}

func (ProposeMsg) Path() string {
	return pathProposeMsg
}

func (m *ProposeMsg) Validate() error {
	if err := m.Multisig.Validate(); err != nil {
		return errors.Wrap(err, "multisig")
	}
	return errors.Wrap(m.Destination.Validate(), "destination")
}

// SignMsg signs an open transaction.
type SignMsg struct {
	Multisig      rainbow.Address `json:"multisig"`
	TransactionID uint64          `json:"transaction_id"`
}

func (SignMsg) Path() string {
	return pathSignMsg
}

func (m *SignMsg) Validate() error {
	return errors.Wrap(m.Multisig.Validate(), "multisig")
}

// AddManagerMsg marks an identity as active manager.
type AddManagerMsg struct {
	Multisig rainbow.Address `json:"multisig"`
	Manager  rainbow.Address `json:"manager"`
}

func (AddManagerMsg) Path() string {
	return pathAddManagerMsg
}

func (m *AddManagerMsg) Validate() error {
	return validateManagerMsg(m.Multisig, m.Manager)
}

// RemoveManagerMsg revokes a manager.
type RemoveManagerMsg struct {
	Multisig rainbow.Address `json:"multisig"`
	Manager  rainbow.Address `json:"manager"`
}

func (RemoveManagerMsg) Path() string {
	return pathRemoveManagerMsg
}

func (m *RemoveManagerMsg) Validate() error {
	return validateManagerMsg(m.Multisig, m.Manager)
}

func validateManagerMsg(multisig, manager rainbow.Address) error {
	if err := multisig.Validate(); err != nil {
		return errors.Wrap(err, "multisig")
	}
	return errors.Wrap(manager.Validate(), "manager")
}

// UpdateConfigurationMsg patches the package configuration. Zero fields
// are left unchanged.
type UpdateConfigurationMsg struct {
	Patch *Configuration `json:"patch"`
}

func (UpdateConfigurationMsg) Path() string {
	return pathUpdateConfigurationMsg
}

func (m *UpdateConfigurationMsg) Validate() error {
	if m.Patch == nil {
		return errors.Wrap(errors.ErrEmpty, "patch")
	}
	return m.Patch.Validate()
}
