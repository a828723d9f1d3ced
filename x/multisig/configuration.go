package multisig

import (
	"github.com/iov-one/rainbow"
	"github.com/iov-one/rainbow/errors"
	"github.com/iov-one/rainbow/gconf"
)

const packageName = "multisig"

// Configuration limits the instances spawned by the factory.
type Configuration struct {
	// Owner may update the configuration.
	Owner rainbow.Address `json:"owner"`
	// MaxManagers bounds the size of an initial manager set. Zero means
	// no limit.
	MaxManagers uint64 `json:"max_managers"`
}

var _ gconf.OwnedConfig = (*Configuration)(nil)

func (c *Configuration) Marshal() ([]byte, error) {
	return rainbow.Encode(c)
}

func (c *Configuration) Unmarshal(raw []byte) error {
	return rainbow.Decode(raw, c)
}

// GetOwner returns the identity that may update the configuration.
func (c *Configuration) GetOwner() rainbow.Address {
	return c.Owner
}

func (c *Configuration) Validate() error {
	return errors.Wrap(c.Owner.Validate(), "owner")
}

// loadConf returns the stored configuration, or a configuration without
// limits if none was stored.
func loadConf(db gconf.ReadStore) (Configuration, error) {
	var conf Configuration
	switch err := gconf.Load(db, packageName, &conf); {
	case err == nil:
		return conf, nil
	case errors.ErrNotFound.Is(err):
		return Configuration{}, nil
	default:
		return conf, errors.Wrap(err, "load configuration")
	}
}
