package multisig

import (
	"github.com/iov-one/rainbow"
	"github.com/iov-one/rainbow/errors"
	"github.com/iov-one/rainbow/gconf"
)

// Initializer stores the package configuration from the "conf" section of
// the genesis file. The section is optional.
type Initializer struct{}

var _ rainbow.Initializer = Initializer{}

func (Initializer) FromGenesis(opts rainbow.Options, db rainbow.KVStore) error {
	err := gconf.InitConfig(db, opts, packageName, &Configuration{})
	if errors.ErrNotFound.Is(err) {
		return nil
	}
	return err
}
