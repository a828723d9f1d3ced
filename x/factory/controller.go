package factory

import (
	"github.com/iov-one/rainbow"
	"github.com/iov-one/rainbow/errors"
	"github.com/iov-one/rainbow/orm"
	"github.com/iov-one/rainbow/x/cash"
	"github.com/iov-one/rainbow/x/multisig"
	"github.com/iov-one/rainbow/x/spawn"
)

// Address is the parent of every instance spawned by the factory.
var Address = rainbow.NewCondition("factory", "module", []byte("multisig")).Address()

// Controller spawns and indexes multisig instances.
type Controller struct {
	spawned  SpawnedBucket
	members  MembershipBucket
	spawn    spawn.Controller
	multisig multisig.Controller
	cash     cash.Controller
}

// NewController returns a factory creating instances through given
// controllers.
func NewController(sp spawn.Controller, ms multisig.Controller, c cash.Controller) Controller {
	return Controller{
		spawned:  NewSpawnedBucket(),
		members:  NewMembershipBucket(),
		spawn:    sp,
		multisig: ms,
		cash:     c,
	}
}

// Spawn creates a new multisig instance from the template ref. The caller
// becomes the owner and managers are active from the start. A non zero
// endowment moves caller funds to the new instance. Any failure aborts the
// whole call.
func (c Controller) Spawn(
	ctx rainbow.Context,
	db rainbow.KVStore,
	caller rainbow.Address,
	template []byte,
	managers []rainbow.Address,
	threshold uint64,
	endowment uint64,
) (rainbow.Address, error) {
	index, err := c.spawned.seq.NextInt(db)
	if err != nil {
		return nil, errors.Wrap(err, "spawn counter")
	}
	addr, err := c.spawn.Instantiate(db, template, spawn.KindMultisig, Address, index)
	if err != nil {
		return nil, err
	}
	if _, err := c.multisig.Create(db, addr, caller, managers, threshold); err != nil {
		return nil, errors.Wrap(err, "create multisig")
	}

	obj := orm.NewSimpleObj(orm.EncodeSequence(index), &Spawned{Index: index, Address: addr})
	if err := c.spawned.Save(db, obj); err != nil {
		return nil, errors.Wrap(err, "save spawned")
	}
	seen := make(map[string]bool, len(managers))
	for _, m := range managers {
		if seen[string(m)] {
			continue
		}
		seen[string(m)] = true
		if err := c.addMember(db, m, addr); err != nil {
			return nil, err
		}
	}

	if endowment > 0 {
		if err := c.cash.MoveCoins(db, caller, addr, endowment); err != nil {
			return nil, errors.Wrap(err, "endowment")
		}
	}

	rainbow.GetLogger(ctx).Info("multisig spawned",
		"address", addr,
		"index", index,
		"owner", caller,
		"threshold", threshold)
	return addr, nil
}

func (c Controller) addMember(db rainbow.KVStore, identity, instance rainbow.Address) error {
	obj, err := c.members.Get(db, identity)
	if err != nil {
		return err
	}
	var m Membership
	if obj != nil {
		m = *obj.Value().(*Membership)
	}
	m.Instances = append(m.Instances, instance)
	if err := c.members.Save(db, orm.NewSimpleObj(identity, &m)); err != nil {
		return errors.Wrap(err, "save membership")
	}
	return nil
}

// UserInstances returns the instances identity was made a manager of at
// spawn time, in spawn order. Fails with ErrNotFound if there are none.
func (c Controller) UserInstances(db rainbow.ReadOnlyKVStore, identity rainbow.Address) ([]rainbow.Address, error) {
	obj, err := c.members.Get(db, identity)
	if err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "no instances for %s", identity)
	}
	return obj.Value().(*Membership).Instances, nil
}

// InstanceAt returns the address of the instance spawned at index. The
// first spawned instance has index one.
func (c Controller) InstanceAt(db rainbow.ReadOnlyKVStore, index uint64) (rainbow.Address, error) {
	obj, err := c.spawned.Get(db, orm.EncodeSequence(index))
	if err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "index %d", index)
	}
	return obj.Value().(*Spawned).Address, nil
}

// Instances returns all spawned instances in spawn order.
func (c Controller) Instances(db rainbow.ReadOnlyKVStore) ([]rainbow.Address, error) {
	objs, err := c.spawned.PrefixScan(db, nil, false)
	if err != nil {
		return nil, err
	}
	res := make([]rainbow.Address, len(objs))
	for i, obj := range objs {
		res[i] = obj.Value().(*Spawned).Address
	}
	return res, nil
}

// Count returns the number of spawned instances.
func (c Controller) Count(db rainbow.ReadOnlyKVStore) (uint64, error) {
	return c.spawned.seq.Latest(db)
}
