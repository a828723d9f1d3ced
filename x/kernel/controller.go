package kernel

import (
	"github.com/iov-one/rainbow"
	"github.com/iov-one/rainbow/errors"
	"github.com/iov-one/rainbow/orm"
	"github.com/iov-one/rainbow/x/privileges"
	"github.com/iov-one/rainbow/x/roles"
	"github.com/iov-one/rainbow/x/routes"
	"github.com/iov-one/rainbow/x/spawn"
)

// Address is the identity of the kernel, the core of every registry it
// spawns.
var Address = rainbow.NewCondition("kernel", "module", []byte("rainbow")).Address()

// Controller brokers every mutation of the registries.
type Controller struct {
	bucket     Bucket
	spawn      spawn.Controller
	roles      roles.Controller
	privileges privileges.Controller
	routes     routes.Controller
}

// NewController returns a kernel using given controllers.
func NewController(sp spawn.Controller, r roles.Controller, p privileges.Controller, rt routes.Controller) Controller {
	return Controller{
		bucket:     NewBucket(),
		spawn:      sp,
		roles:      r,
		privileges: p,
		routes:     rt,
	}
}

// Init spawns the three registries from given templates. It can succeed
// only once, later calls fail with ErrAlreadyInitialized.
func (c Controller) Init(ctx rainbow.Context, db rainbow.KVStore, caller rainbow.Address, roleTmpl, privilegeTmpl, routeTmpl []byte) (*State, error) {
	switch ok, err := c.bucket.Has(db, stateKey); {
	case err != nil:
		return nil, err
	case ok:
		return nil, errors.Wrap(errors.ErrAlreadyInitialized, "kernel")
	}

	version, err := c.bucket.version.NextInt(db)
	if err != nil {
		return nil, err
	}
	st := &State{Admin: caller, Version: version}

	if st.Roles, err = c.spawn.Instantiate(db, roleTmpl, spawn.KindRoles, Address, version); err != nil {
		return nil, errors.Wrap(err, "role registry")
	}
	if err := c.roles.Create(db, st.Roles, Address); err != nil {
		return nil, err
	}
	if st.Privileges, err = c.spawn.Instantiate(db, privilegeTmpl, spawn.KindPrivileges, Address, version); err != nil {
		return nil, errors.Wrap(err, "privilege registry")
	}
	if err := c.privileges.Create(db, st.Privileges, Address); err != nil {
		return nil, err
	}
	if st.Routes, err = c.spawn.Instantiate(db, routeTmpl, spawn.KindRoutes, Address, version); err != nil {
		return nil, errors.Wrap(err, "route registry")
	}
	if err := c.routes.Create(db, st.Routes, Address); err != nil {
		return nil, err
	}

	if err := c.bucket.Save(db, orm.NewSimpleObj(stateKey, st)); err != nil {
		return nil, errors.Wrap(err, "save kernel")
	}
	rainbow.GetLogger(ctx).Info("kernel initialized",
		"roles", st.Roles,
		"privileges", st.Privileges,
		"routes", st.Routes)
	return st, nil
}

// State returns the kernel state, nil before Init.
func (c Controller) State(db rainbow.ReadOnlyKVStore) (*State, error) {
	obj, err := c.bucket.Get(db, stateKey)
	if err != nil || obj == nil {
		return nil, err
	}
	return obj.Value().(*State), nil
}

func (c Controller) mustState(db rainbow.ReadOnlyKVStore) (*State, error) {
	st, err := c.State(db)
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, errors.Wrap(errors.ErrState, "kernel not initialized")
	}
	return st, nil
}

// RolesAddress returns the role registry address, empty before Init.
func (c Controller) RolesAddress(db rainbow.ReadOnlyKVStore) (rainbow.Address, error) {
	st, err := c.State(db)
	if err != nil || st == nil {
		return nil, err
	}
	return st.Roles, nil
}

// PrivilegesAddress returns the privilege registry address, empty before
// Init.
func (c Controller) PrivilegesAddress(db rainbow.ReadOnlyKVStore) (rainbow.Address, error) {
	st, err := c.State(db)
	if err != nil || st == nil {
		return nil, err
	}
	return st.Privileges, nil
}

// RoutesAddress returns the route registry address, empty before Init.
func (c Controller) RoutesAddress(db rainbow.ReadOnlyKVStore) (rainbow.Address, error) {
	st, err := c.State(db)
	if err != nil || st == nil {
		return nil, err
	}
	return st.Routes, nil
}

func (c Controller) AddRole(db rainbow.KVStore, name string) (uint64, error) {
	st, err := c.mustState(db)
	if err != nil {
		return 0, err
	}
	return c.roles.AddRole(db, st.Roles, Address, name)
}

func (c Controller) AttachPrivilege(db rainbow.KVStore, role, privilege string) error {
	st, err := c.mustState(db)
	if err != nil {
		return err
	}
	return c.roles.AttachPrivilege(db, st.Roles, Address, role, privilege)
}

func (c Controller) AttachRole(db rainbow.KVStore, user rainbow.Address, role string) error {
	st, err := c.mustState(db)
	if err != nil {
		return err
	}
	return c.roles.AttachRole(db, st.Roles, Address, user, role)
}

func (c Controller) AddPrivilege(db rainbow.KVStore, name string) (uint64, error) {
	st, err := c.mustState(db)
	if err != nil {
		return 0, err
	}
	return c.privileges.AddPrivilege(db, st.Privileges, Address, name)
}

func (c Controller) AddRoute(db rainbow.KVStore, name string, addr rainbow.Address) error {
	st, err := c.mustState(db)
	if err != nil {
		return err
	}
	return c.routes.AddRoute(db, st.Routes, Address, name, addr)
}

func (c Controller) ChangeRoute(db rainbow.KVStore, name string, addr rainbow.Address) error {
	st, err := c.mustState(db)
	if err != nil {
		return err
	}
	return c.routes.ChangeRoute(db, st.Routes, Address, name, addr)
}
