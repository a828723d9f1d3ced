package orm

import (
	"github.com/iov-one/rainbow"
	"github.com/iov-one/rainbow/errors"
)

// counter is a minimal model used by the tests of this package.
type counter struct {
	Count uint64
	Label string
}

func (c *counter) Marshal() ([]byte, error) {
	return rainbow.Encode(c)
}

func (c *counter) Unmarshal(raw []byte) error {
	return rainbow.Decode(raw, c)
}

func (c *counter) Validate() error {
	if c.Label == "" {
		return errors.Wrap(errors.ErrEmpty, "label")
	}
	return nil
}

func newCounterObj(key string, count uint64) *SimpleObj {
	return NewSimpleObj([]byte(key), &counter{Count: count, Label: key})
}
