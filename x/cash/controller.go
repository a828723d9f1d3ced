package cash

import (
	"github.com/iov-one/rainbow"
	"github.com/iov-one/rainbow/errors"
)

// Controller is the functionality needed by other components to manage
// balances.
type Controller interface {
	Balance(store rainbow.ReadOnlyKVStore, owner rainbow.Address) (uint64, error)
	MoveCoins(store rainbow.KVStore, src, dest rainbow.Address, amount uint64) error
	IssueCoins(store rainbow.KVStore, dest rainbow.Address, amount uint64) error
}

// BaseController is a simple implementation of Controller.
type BaseController struct {
	bucket Bucket
}

var _ Controller = BaseController{}

// NewController returns a controller over the cash bucket.
func NewController() BaseController {
	return BaseController{bucket: NewBucket()}
}

// Balance returns the amount owned by given address, zero for an unknown
// one.
func (c BaseController) Balance(store rainbow.ReadOnlyKVStore, owner rainbow.Address) (uint64, error) {
	obj, err := c.bucket.Get(store, owner)
	if err != nil {
		return 0, err
	}
	if obj == nil {
		return 0, nil
	}
	return AsWallet(obj).Amount, nil
}

// MoveCoins moves the given amount from src to dest.
// If src doesn't exist, or doesn't have sufficient
// coins, it fails.
func (c BaseController) MoveCoins(store rainbow.KVStore, src, dest rainbow.Address, amount uint64) error {
	if amount == 0 {
		return errors.Wrap(errors.ErrAmount, "zero amount")
	}
	if err := dest.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	if src.Equals(dest) {
		return errors.Wrap(errors.ErrInput, "source and destination are the same")
	}

	sender, err := c.bucket.Get(store, src)
	if err != nil {
		return err
	}
	if sender == nil {
		return errors.Wrapf(errors.ErrInsufficientAmount, "empty account %s", src)
	}
	if err := AsWallet(sender).Subtract(amount); err != nil {
		return err
	}
	if err := c.bucket.Save(store, sender); err != nil {
		return err
	}

	recipient, err := c.bucket.GetOrCreate(store, dest)
	if err != nil {
		return err
	}
	if err := AsWallet(recipient).Add(amount); err != nil {
		return err
	}
	return c.bucket.Save(store, recipient)
}

// IssueCoins attempts to add the given amount of coins to
// the destination address. Fails if it overflows the wallet.
func (c BaseController) IssueCoins(store rainbow.KVStore, dest rainbow.Address, amount uint64) error {
	if err := dest.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	recipient, err := c.bucket.GetOrCreate(store, dest)
	if err != nil {
		return err
	}
	if err := AsWallet(recipient).Add(amount); err != nil {
		return err
	}
	return c.bucket.Save(store, recipient)
}
