package routes

import (
	"math"

	"github.com/iov-one/rainbow"
	"github.com/iov-one/rainbow/errors"
	"github.com/iov-one/rainbow/orm"
)

// Controller manages route registry instances.
type Controller struct {
	registries orm.Bucket
	routes     orm.Bucket
}

// NewController returns a controller over the route buckets.
func NewController() Controller {
	return Controller{
		registries: orm.NewBucket("routereg", orm.NewSimpleObj(nil, &Registry{})),
		routes:     orm.NewBucket("route", orm.NewSimpleObj(nil, &Route{})),
	}
}

// Create initializes an empty registry at addr mutable by core only.
func (c Controller) Create(db rainbow.KVStore, addr, core rainbow.Address) error {
	switch ok, err := c.registries.Has(db, addr); {
	case err != nil:
		return err
	case ok:
		return errors.Wrapf(errors.ErrDuplicate, "route registry %s", addr)
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
		return nil, errors.Wrapf(errors.ErrNotFound, "route registry %s", addr)
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

// AddRoute points name to addr, silently replacing an existing route.
func (c Controller) AddRoute(db rainbow.KVStore, instance, caller rainbow.Address, name string, addr rainbow.Address) error {
	reg, err := c.authorize(db, instance, caller)
	if err != nil {
		return err
	}
	if reg.Count == math.MaxUint64 {
		return errors.Wrap(errors.ErrCounterOverflow, "route counter")
	}
	if err := c.save(db, instance, name, addr); err != nil {
		return err
	}
	reg.Count++
	return c.registries.Save(db, orm.NewSimpleObj(instance, reg))
}

// ChangeRoute points an existing route to addr. Fails with ErrNotFound if
// name was never added.
func (c Controller) ChangeRoute(db rainbow.KVStore, instance, caller rainbow.Address, name string, addr rainbow.Address) error {
	if _, err := c.authorize(db, instance, caller); err != nil {
		return err
	}
	switch ok, err := c.routes.Has(db, routeKey(instance, name)); {
	case err != nil:
		return err
	case !ok:
		return errors.Wrapf(errors.ErrNotFound, "route %q", name)
	}
	return c.save(db, instance, name, addr)
}

func (c Controller) save(db rainbow.KVStore, instance rainbow.Address, name string, addr rainbow.Address) error {
	obj := orm.NewSimpleObj(routeKey(instance, name), &Route{Name: name, Address: addr})
	if err := c.routes.Save(db, obj); err != nil {
		return errors.Wrapf(err, "route %q", name)
	}
	return nil
}

// QueryRoute returns the address name points to, or the empty address if
// the route is unknown.
func (c Controller) QueryRoute(db rainbow.ReadOnlyKVStore, instance rainbow.Address, name string) (rainbow.Address, error) {
	obj, err := c.routes.Get(db, routeKey(instance, name))
	if err != nil || obj == nil {
		return nil, err
	}
	return obj.Value().(*Route).Address, nil
}

// Routes returns all routes of the instance ordered by name.
func (c Controller) Routes(db rainbow.ReadOnlyKVStore, instance rainbow.Address) ([]Route, error) {
	objs, err := c.routes.PrefixScan(db, instance, false)
	if err != nil {
		return nil, err
	}
	res := make([]Route, len(objs))
	for i, obj := range objs {
		res[i] = *obj.Value().(*Route)
	}
	return res, nil
}
