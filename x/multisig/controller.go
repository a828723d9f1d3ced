package multisig

import (
	"math"

	"github.com/iov-one/rainbow"
	"github.com/iov-one/rainbow/errors"
	"github.com/iov-one/rainbow/orm"
	"github.com/iov-one/rainbow/x/cash"
)

// maxID is never given to a transaction, reaching it means the id counter
// is exhausted.
const maxID = math.MaxUint64

// Controller implements the signing protocol on top of the instance and
// transaction buckets. Every method takes the caller explicitly, handlers
// pass the authenticated identity and other components their own address.
type Controller struct {
	instances Bucket
	txs       TransactionBucket
	cash      cash.Controller
}

// NewController returns a controller moving funds with given cash
// controller.
func NewController(cashCtrl cash.Controller) Controller {
	return Controller{
		instances: NewBucket(),
		txs:       NewTransactionBucket(),
		cash:      cashCtrl,
	}
}

// Create stores a new instance at addr. All managers are active.
func (c Controller) Create(db rainbow.KVStore, addr, owner rainbow.Address, managers []rainbow.Address, threshold uint64) (*Multisig, error) {
	conf, err := loadConf(db)
	if err != nil {
		return nil, err
	}
	if conf.MaxManagers != 0 && uint64(len(managers)) > conf.MaxManagers {
		return nil, errors.Wrapf(errors.ErrInput, "%d managers, at most %d allowed", len(managers), conf.MaxManagers)
	}
	switch ok, err := c.instances.Has(db, addr); {
	case err != nil:
		return nil, err
	case ok:
		return nil, errors.Wrapf(errors.ErrDuplicate, "multisig %s", addr)
	}

	ms := &Multisig{
		Address:   addr,
		Owner:     owner,
		Threshold: threshold,
	}
	for _, m := range managers {
		ms.SetManager(m, Active)
	}
	if err := c.instances.Save(db, orm.NewSimpleObj(addr, ms)); err != nil {
		return nil, errors.Wrap(err, "save multisig")
	}
	return ms, nil
}

// Instance returns the state of the instance at addr.
func (c Controller) Instance(db rainbow.ReadOnlyKVStore, addr rainbow.Address) (*Multisig, error) {
	obj, err := c.instances.Get(db, addr)
	if err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "multisig %s", addr)
	}
	return obj.Value().(*Multisig), nil
}

func (c Controller) saveInstance(db rainbow.KVStore, ms *Multisig) error {
	return c.instances.Save(db, orm.NewSimpleObj(ms.Address, ms))
}

// Propose creates a new open transaction. The caller must be an active
// manager or the owner and the instance must hold at least amount.
func (c Controller) Propose(ctx rainbow.Context, db rainbow.KVStore, instance, caller, destination rainbow.Address, amount uint64) (uint64, error) {
	ms, err := c.Instance(db, instance)
	if err != nil {
		return 0, err
	}
	if !ms.CanOperate(caller) {
		return 0, errors.Wrapf(errors.ErrUnauthorized, "%s cannot propose", caller)
	}
	if err := destination.Validate(); err != nil {
		return 0, errors.Wrap(err, "destination")
	}
	if err := c.requireBalance(db, instance, amount); err != nil {
		return 0, err
	}

	id := ms.NextID
	if id == maxID {
		return 0, errors.Wrap(errors.ErrCounterOverflow, "transaction id")
	}
	ms.NextID++
	if err := c.saveInstance(db, ms); err != nil {
		return 0, err
	}

	tx := &Transaction{
		ID:          id,
		Status:      Open,
		Destination: destination,
		Amount:      amount,
	}
	if err := c.txs.Save(db, orm.NewSimpleObj(txKey(instance, id), tx)); err != nil {
		return 0, errors.Wrap(err, "save transaction")
	}

	rainbow.GetLogger(ctx).Debug("transaction proposed", "multisig", instance, "id", id)
	return id, nil
}

// Sign adds the caller signature to an open transaction. The signature
// that reaches the threshold executes the transaction: its status becomes
// Executed and the amount moves from the instance balance to the
// destination. A failed transfer fails the whole call.
func (c Controller) Sign(ctx rainbow.Context, db rainbow.KVStore, instance, caller rainbow.Address, id uint64) (*Transaction, error) {
	ms, err := c.Instance(db, instance)
	if err != nil {
		return nil, err
	}
	if !ms.CanOperate(caller) {
		return nil, errors.Wrapf(errors.ErrUnauthorized, "%s cannot sign", caller)
	}
	tx, err := c.Transaction(db, instance, id)
	if err != nil {
		return nil, err
	}
	if tx.Status == Executed {
		return nil, errors.Wrapf(errors.ErrAlreadyExecuted, "transaction %d", id)
	}
	if tx.HasSigned(caller) {
		return nil, errors.Wrapf(errors.ErrDuplicateSignature, "transaction %d", id)
	}

	tx.Signatures = append(tx.Signatures, caller)
	tx.SignatureCount++

	if tx.SignatureCount >= ms.Threshold {
		tx.Status = Executed
		if err := c.execute(db, instance, tx); err != nil {
			return nil, errors.Wrapf(err, "execute transaction %d", id)
		}
		rainbow.GetLogger(ctx).Info("transaction executed",
			"multisig", instance,
			"id", id,
			"destination", tx.Destination,
			"amount", tx.Amount)
	}

	if err := c.txs.Save(db, orm.NewSimpleObj(txKey(instance, id), tx)); err != nil {
		return nil, errors.Wrap(err, "save transaction")
	}
	return tx, nil
}

// execute moves the funds of tx. The balance is checked again, it may have
// changed since the proposal.
func (c Controller) execute(db rainbow.KVStore, instance rainbow.Address, tx *Transaction) error {
	if tx.Amount == 0 {
		return nil
	}
	if err := c.requireBalance(db, instance, tx.Amount); err != nil {
		return err
	}
	return c.cash.MoveCoins(db, instance, tx.Destination, tx.Amount)
}

func (c Controller) requireBalance(db rainbow.ReadOnlyKVStore, instance rainbow.Address, amount uint64) error {
	balance, err := c.cash.Balance(db, instance)
	if err != nil {
		return errors.Wrap(err, "balance")
	}
	if balance < amount {
		return errors.Wrapf(errors.ErrInsufficientAmount, "balance %d, amount %d", balance, amount)
	}
	return nil
}

// AddManager marks identity as an active manager. Only the owner may call
// it.
func (c Controller) AddManager(db rainbow.KVStore, instance, caller, identity rainbow.Address) error {
	return c.setManager(db, instance, caller, identity, Active)
}

// RemoveManager revokes identity. The entry stays in the registry and the
// signatures it already cast are kept. Only the owner may call it.
func (c Controller) RemoveManager(db rainbow.KVStore, instance, caller, identity rainbow.Address) error {
	return c.setManager(db, instance, caller, identity, Revoked)
}

func (c Controller) setManager(db rainbow.KVStore, instance, caller, identity rainbow.Address, status ManagerStatus) error {
	ms, err := c.Instance(db, instance)
	if err != nil {
		return err
	}
	if !ms.Owner.Equals(caller) {
		return errors.Wrap(errors.ErrUnauthorized, "owner only")
	}
	if err := identity.Validate(); err != nil {
		return errors.Wrap(err, "manager")
	}
	ms.SetManager(identity, status)
	return c.saveInstance(db, ms)
}

// Transaction returns transaction id of the instance.
func (c Controller) Transaction(db rainbow.ReadOnlyKVStore, instance rainbow.Address, id uint64) (*Transaction, error) {
	obj, err := c.txs.Get(db, txKey(instance, id))
	if err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "transaction %d", id)
	}
	return obj.Value().(*Transaction), nil
}

// Managers returns every identity ever inserted in the registry of the
// instance, revoked ones included, in insertion order.
func (c Controller) Managers(db rainbow.ReadOnlyKVStore, instance rainbow.Address) ([]ManagerEntry, error) {
	ms, err := c.Instance(db, instance)
	if err != nil {
		return nil, err
	}
	return ms.Managers, nil
}

// Transactions returns all transactions of the instance in creation order.
func (c Controller) Transactions(db rainbow.ReadOnlyKVStore, instance rainbow.Address) ([]*Transaction, error) {
	if _, err := c.Instance(db, instance); err != nil {
		return nil, err
	}
	objs, err := c.txs.PrefixScan(db, instance, false)
	if err != nil {
		return nil, err
	}
	res := make([]*Transaction, len(objs))
	for i, obj := range objs {
		res[i] = obj.Value().(*Transaction)
	}
	return res, nil
}
