package cash

import (
	"github.com/iov-one/rainbow"
	"github.com/iov-one/rainbow/errors"
)

const optKey = "cash"

// GenesisAccount is used to parse the json from genesis file
// use rainbow.Address, so address in hex, not base64
type GenesisAccount struct {
	Address rainbow.Address `json:"address"`
	Amount  uint64          `json:"amount"`
}

// Initializer fulfils the Initializer interface to load data from
// the genesis file
type Initializer struct{}

var _ rainbow.Initializer = Initializer{}

// FromGenesis will parse initial account info from genesis
// and save it to the database
func (Initializer) FromGenesis(opts rainbow.Options, kv rainbow.KVStore) error {
	accts := []GenesisAccount{}
	if err := opts.ReadOptions(optKey, &accts); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	control := NewController()
	for _, acct := range accts {
		if err := control.IssueCoins(kv, acct.Address, acct.Amount); err != nil {
			return errors.Wrapf(err, "genesis account %s", acct.Address)
		}
	}
	return nil
}
