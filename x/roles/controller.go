package roles

import (
	"math"

	"github.com/iov-one/rainbow"
	"github.com/iov-one/rainbow/errors"
	"github.com/iov-one/rainbow/orm"
)

// Controller manages role registry instances. Each instance state lives
// under its own address.
type Controller struct {
	registries orm.Bucket
	roles      orm.Bucket
	privileges orm.Bucket
	users      orm.Bucket
}

// NewController returns a controller over the role registry buckets.
func NewController() Controller {
	return Controller{
		registries: newBucket("rolereg", &Registry{}),
		roles:      newBucket("role", &Role{}),
		privileges: newBucket("roleprv", &Names{}),
		users:      newBucket("userrole", &Names{}),
	}
}

// Create initializes an empty registry at addr. Core is the only identity
// that will be able to mutate it.
func (c Controller) Create(db rainbow.KVStore, addr, core rainbow.Address) error {
	switch ok, err := c.registries.Has(db, addr); {
	case err != nil:
		return err
	case ok:
		return errors.Wrapf(errors.ErrDuplicate, "role registry %s", addr)
	}
	return c.registries.Save(db, orm.NewSimpleObj(addr, &Registry{Address: addr, Core: core}))
}

// Registry returns the state of the registry at addr.
func (c Controller) Registry(db rainbow.ReadOnlyKVStore, addr rainbow.Address) (*Registry, error) {
	obj, err := c.registries.Get(db, addr)
	if err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "role registry %s", addr)
	}
	return obj.Value().(*Registry), nil
}

func (c Controller) authorize(db rainbow.ReadOnlyKVStore, instance, caller rainbow.Address) (*Registry, error) {
	reg, err := c.Registry(db, instance)
	if err != nil {
		return nil, err
	}
	if !reg.Core.Equals(caller) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "core only")
	}
	return reg, nil
}

// AddRole appends a new role and returns its index. Names are unique
// within the registry.
func (c Controller) AddRole(db rainbow.KVStore, instance, caller rainbow.Address, name string) (uint64, error) {
	reg, err := c.authorize(db, instance, caller)
	if err != nil {
		return 0, err
	}
	if reg.Count == math.MaxUint64 {
		return 0, errors.Wrap(errors.ErrCounterOverflow, "role index")
	}
	names, err := c.Roles(db, instance)
	if err != nil {
		return 0, err
	}
	for _, n := range names {
		if n == name {
			return 0, errors.Wrapf(errors.ErrDuplicate, "role %q", name)
		}
	}

	index := reg.Count
	role := &Role{Index: index, Name: name}
	if err := c.roles.Save(db, orm.NewSimpleObj(instanceKey(instance, orm.EncodeSequence(index)), role)); err != nil {
		return 0, errors.Wrap(err, "save role")
	}
	reg.Count++
	if err := c.registries.Save(db, orm.NewSimpleObj(instance, reg)); err != nil {
		return 0, err
	}
	return index, nil
}

// AttachPrivilege appends privilege to the list of role. The role is not
// required to exist and duplicates are kept.
func (c Controller) AttachPrivilege(db rainbow.KVStore, instance, caller rainbow.Address, role, privilege string) error {
	if _, err := c.authorize(db, instance, caller); err != nil {
		return err
	}
	if role == "" {
		return errors.Wrap(errors.ErrEmpty, "role")
	}
	return c.appendName(db, c.privileges, instanceKey(instance, []byte(role)), privilege)
}

// AttachRole appends role to the list of user. Duplicates are kept.
func (c Controller) AttachRole(db rainbow.KVStore, instance, caller, user rainbow.Address, role string) error {
	if _, err := c.authorize(db, instance, caller); err != nil {
		return err
	}
	if err := user.Validate(); err != nil {
		return errors.Wrap(err, "user")
	}
	return c.appendName(db, c.users, instanceKey(instance, user), role)
}

func (c Controller) appendName(db rainbow.KVStore, b orm.Bucket, key []byte, name string) error {
	names, err := c.names(db, b, key)
	if err != nil {
		return err
	}
	names = append(names, name)
	return b.Save(db, orm.NewSimpleObj(key, &Names{Names: names}))
}

func (c Controller) names(db rainbow.ReadOnlyKVStore, b orm.Bucket, key []byte) ([]string, error) {
	obj, err := b.Get(db, key)
	if err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, nil
	}
	return obj.Value().(*Names).Names, nil
}

// Roles returns all role names in index order.
func (c Controller) Roles(db rainbow.ReadOnlyKVStore, instance rainbow.Address) ([]string, error) {
	objs, err := c.roles.PrefixScan(db, instance, false)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(objs))
	for i, obj := range objs {
		names[i] = obj.Value().(*Role).Name
	}
	return names, nil
}

// RoleAt returns the name of the role at index, or an empty string if
// there is none.
func (c Controller) RoleAt(db rainbow.ReadOnlyKVStore, instance rainbow.Address, index uint64) (string, error) {
	obj, err := c.roles.Get(db, instanceKey(instance, orm.EncodeSequence(index)))
	if err != nil || obj == nil {
		return "", err
	}
	return obj.Value().(*Role).Name, nil
}

// RolePrivileges returns the privileges attached to role.
func (c Controller) RolePrivileges(db rainbow.ReadOnlyKVStore, instance rainbow.Address, role string) ([]string, error) {
	return c.names(db, c.privileges, instanceKey(instance, []byte(role)))
}

// UserRoles returns the roles attached to user.
func (c Controller) UserRoles(db rainbow.ReadOnlyKVStore, instance, user rainbow.Address) ([]string, error) {
	return c.names(db, c.users, instanceKey(instance, user))
}

// HasRole returns true if role was attached to user.
func (c Controller) HasRole(db rainbow.ReadOnlyKVStore, instance, user rainbow.Address, role string) (bool, error) {
	roles, err := c.UserRoles(db, instance, user)
	if err != nil {
		return false, err
	}
	return contains(roles, role), nil
}

// UserPrivileges returns the privileges of all roles of user, role by role.
func (c Controller) UserPrivileges(db rainbow.ReadOnlyKVStore, instance, user rainbow.Address) ([]string, error) {
	roles, err := c.UserRoles(db, instance, user)
	if err != nil {
		return nil, err
	}
	var res []string
	for _, r := range roles {
		privs, err := c.RolePrivileges(db, instance, r)
		if err != nil {
			return nil, err
		}
		res = append(res, privs...)
	}
	return res, nil
}

// HasPrivilege returns true if any role of user has privilege.
func (c Controller) HasPrivilege(db rainbow.ReadOnlyKVStore, instance, user rainbow.Address, privilege string) (bool, error) {
	privs, err := c.UserPrivileges(db, instance, user)
	if err != nil {
		return false, err
	}
	return contains(privs, privilege), nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
