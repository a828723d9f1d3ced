package cash

import (
	"github.com/iov-one/rainbow"
	"github.com/iov-one/rainbow/errors"
	"github.com/iov-one/rainbow/orm"
)

const bucketName = "cash"

// Wallet is the balance of a single identity.
type Wallet struct {
	Amount uint64
}

var _ orm.Model = (*Wallet)(nil)

// Marshal encodes the wallet.
func (w *Wallet) Marshal() ([]byte, error) {
	return rainbow.Encode(w)
}

// Unmarshal loads the wallet from its binary representation.
func (w *Wallet) Unmarshal(raw []byte) error {
	return rainbow.Decode(raw, w)
}

// Validate is a noop, every amount is a valid balance.
func (w *Wallet) Validate() error {
	return nil
}

// Add increases the balance, failing on overflow.
func (w *Wallet) Add(amount uint64) error {
	sum := w.Amount + amount
	if sum < w.Amount {
		return errors.Wrap(errors.ErrOverflow, "wallet balance")
	}
	w.Amount = sum
	return nil
}

// Subtract decreases the balance, failing if not enough funds are
// available.
func (w *Wallet) Subtract(amount uint64) error {
	if w.Amount < amount {
		return errors.Wrapf(errors.ErrInsufficientAmount, "have %d, need %d", w.Amount, amount)
	}
	w.Amount -= amount
	return nil
}

// NewWallet creates an object holding the balance of given address.
func NewWallet(owner rainbow.Address, amount uint64) orm.Object {
	return orm.NewSimpleObj(owner, &Wallet{Amount: amount})
}

// AsWallet extracts the wallet from an object loaded by Bucket.
func AsWallet(obj orm.Object) *Wallet {
	if obj == nil || obj.Value() == nil {
		return nil
	}
	return obj.Value().(*Wallet)
}

// Bucket stores wallets keyed by owner address.
type Bucket struct {
	orm.Bucket
}

// NewBucket initializes a cash bucket.
func NewBucket() Bucket {
	return Bucket{
		Bucket: orm.NewBucket(bucketName, NewWallet(nil, 0)),
	}
}

// GetOrCreate returns the wallet of given owner, an empty one if it was
// never stored.
func (b Bucket) GetOrCreate(db rainbow.ReadOnlyKVStore, owner rainbow.Address) (orm.Object, error) {
	obj, err := b.Get(db, owner)
	if err != nil {
		return nil, err
	}
	if obj == nil {
		obj = NewWallet(owner, 0)
	}
	return obj, nil
}
