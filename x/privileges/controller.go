package privileges

import (
	"math"

	"github.com/iov-one/rainbow"
	"github.com/iov-one/rainbow/errors"
	"github.com/iov-one/rainbow/orm"
)

// Controller manages privilege registry instances.
type Controller struct {
	registries orm.Bucket
	privileges orm.Bucket
}

// NewController returns a controller over the privilege buckets.
func NewController() Controller {
	return Controller{
		registries: orm.NewBucket("prvreg", orm.NewSimpleObj(nil, &Registry{})),
		privileges: orm.NewBucket("prv", orm.NewSimpleObj(nil, &Privilege{})),
	}
}

// Create initializes an empty registry at addr mutable by core only.
func (c Controller) Create(db rainbow.KVStore, addr, core rainbow.Address) error {
	switch ok, err := c.registries.Has(db, addr); {
	case err != nil:
		return err
	case ok:
		return errors.Wrapf(errors.ErrDuplicate, "privilege registry %s", addr)
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
		return nil, errors.Wrapf(errors.ErrNotFound, "privilege registry %s", addr)
	}
	return obj.Value().(*Registry), nil
}

// AddPrivilege appends name and returns its index.
func (c Controller) AddPrivilege(db rainbow.KVStore, instance, caller rainbow.Address, name string) (uint64, error) {
	reg, err := c.Registry(db, instance)
	if err != nil {
		return 0, err
	}
	if !reg.Core.Equals(caller) {
		return 0, errors.Wrap(errors.ErrUnauthorized, "core only")
	}
	if reg.Count == math.MaxUint64 {
		return 0, errors.Wrap(errors.ErrCounterOverflow, "privilege index")
	}

	index := reg.Count
	obj := orm.NewSimpleObj(privilegeKey(instance, index), &Privilege{Index: index, Name: name})
	if err := c.privileges.Save(db, obj); err != nil {
		return 0, errors.Wrap(err, "save privilege")
	}
	reg.Count++
	if err := c.registries.Save(db, orm.NewSimpleObj(instance, reg)); err != nil {
		return 0, err
	}
	return index, nil
}

// PrivilegeAt returns the name of the privilege at index.
func (c Controller) PrivilegeAt(db rainbow.ReadOnlyKVStore, instance rainbow.Address, index uint64) (string, error) {
	obj, err := c.privileges.Get(db, privilegeKey(instance, index))
	if err != nil {
		return "", err
	}
	if obj == nil {
		return "", errors.Wrapf(errors.ErrNotFound, "privilege %d", index)
	}
	return obj.Value().(*Privilege).Name, nil
}

// Privileges returns all names in index order.
func (c Controller) Privileges(db rainbow.ReadOnlyKVStore, instance rainbow.Address) ([]string, error) {
	objs, err := c.privileges.PrefixScan(db, instance, false)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(objs))
	for i, obj := range objs {
		names[i] = obj.Value().(*Privilege).Name
	}
	return names, nil
}
