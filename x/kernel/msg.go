package kernel

import (
	"github.com/iov-one/rainbow"
	"github.com/iov-one/rainbow/errors"
)

const (
	pathInitMsg            = "kernel/init"
	pathAddRoleMsg         = "kernel/add_role"
	pathAttachPrivilegeMsg = "kernel/attach_privilege"
	pathAttachRoleMsg      = "kernel/attach_role"
	pathAddPrivilegeMsg    = "kernel/add_privilege"
	pathAddRouteMsg        = "kernel/add_route"
	pathChangeRouteMsg     = "kernel/change_route"
)

var (
	_ rainbow.Msg = (*InitMsg)(nil)
	_ rainbow.Msg = (*AddRoleMsg)(nil)
	_ rainbow.Msg = (*AttachPrivilegeMsg)(nil)
	_ rainbow.Msg = (*AttachRoleMsg)(nil)
	_ rainbow.Msg = (*AddPrivilegeMsg)(nil)
	_ rainbow.Msg = (*AddRouteMsg)(nil)
	_ rainbow.Msg = (*ChangeRouteMsg)(nil)
)

// InitMsg initializes the kernel. Templates are referenced by name.
type InitMsg struct {
	RoleTemplate      string `json:"role_template"`
	PrivilegeTemplate string `json:"privilege_template"`
	RouteTemplate     string `json:"route_template"`
}

func (InitMsg) Path() string {
	return pathInitMsg
}

func (m *InitMsg) Validate() error {
	if m.RoleTemplate == "" || m.PrivilegeTemplate == "" || m.RouteTemplate == "" {
		return errors.Wrap(errors.ErrEmpty, "template")
	}
	return nil
}

type AddRoleMsg struct {
	Name string `json:"name"`
}

func (AddRoleMsg) Path() string {
	return pathAddRoleMsg
}

func (m *AddRoleMsg) Validate() error {
	return requireName("name", m.Name)
}

type AttachPrivilegeMsg struct {
	Role      string `json:"role"`
	Privilege string `json:"privilege"`
}

func (AttachPrivilegeMsg) Path() string {
	return pathAttachPrivilegeMsg
}

func (m *AttachPrivilegeMsg) Validate() error {
	if err := requireName("role", m.Role); err != nil {
		return err
	}
	return requireName("privilege", m.Privilege)
}

type AttachRoleMsg struct {
	User rainbow.Address `json:"user"`
	Role string          `json:"role"`
}

func (AttachRoleMsg) Path() string {
	return pathAttachRoleMsg
}

func (m *AttachRoleMsg) Validate() error {
	if err := m.User.Validate(); err != nil {
		return errors.Wrap(err, "user")
	}
	return requireName("role", m.Role)
}

type AddPrivilegeMsg struct {
	Name string `json:"name"`
}

func (AddPrivilegeMsg) Path() string {
	return pathAddPrivilegeMsg
}

func (m *AddPrivilegeMsg) Validate() error {
	return requireName("name", m.Name)
}

type AddRouteMsg struct {
	Name    string          `json:"name"`
	Address rainbow.Address `json:"address"`
}

func (AddRouteMsg) Path() string {
	return pathAddRouteMsg
}

func (m *AddRouteMsg) Validate() error {
	return validateRoute(m.Name, m.Address)
}

type ChangeRouteMsg struct {
	Name    string          `json:"name"`
	Address rainbow.Address `json:"address"`
}

func (ChangeRouteMsg) Path() string {
	return pathChangeRouteMsg
}

func (m *ChangeRouteMsg) Validate() error {
	return validateRoute(m.Name, m.Address)
}

func validateRoute(name string, addr rainbow.Address) error {
	if err := requireName("name", name); err != nil {
		return err
	}
	return errors.Wrap(addr.Validate(), "address")
}

func requireName(field, value string) error {
	if value == "" {
		return errors.Wrap(errors.ErrEmpty, field)
	}
	return nil
}
