package spawn

import (
	"github.com/iov-one/rainbow"
	"github.com/iov-one/rainbow/errors"
)

const optKey = "spawn"

// GenesisTemplate is a template registered from the genesis file.
type GenesisTemplate struct {
	Name string `json:"name"`
	Kind string `json:"kind"`
}

// Genesis is the genesis content read by Initializer.
type Genesis struct {
	Templates []GenesisTemplate `json:"templates"`
}

// Initializer registers templates listed in the genesis file.
type Initializer struct{}

var _ rainbow.Initializer = Initializer{}

func (Initializer) FromGenesis(opts rainbow.Options, kv rainbow.KVStore) error {
	var gen Genesis
	if err := opts.ReadOptions(optKey, &gen); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	c := NewController()
	for _, t := range gen.Templates {
		if _, err := c.RegisterTemplate(kv, t.Name, t.Kind); err != nil {
			return err
		}
	}
	return nil
}
