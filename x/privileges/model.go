package privileges

import (
	"github.com/iov-one/rainbow"
	"github.com/iov-one/rainbow/errors"
	"github.com/iov-one/rainbow/orm"
)

// Registry is the state of a single privilege registry instance.
type Registry struct {
	Address rainbow.Address `json:"address"`
	Core    rainbow.Address `json:"core"`
	Count   uint64          `json:"count"`
}

var _ orm.Model = (*Registry)(nil)

func (r *Registry) Marshal() ([]byte, error) {
	return rainbow.Encode(r)
}

func (r *Registry) Unmarshal(raw []byte) error {
	return rainbow.Decode(raw, r)
}

func (r *Registry) Validate() error {
	if err := r.Address.Validate(); err != nil {
		return errors.Wrap(err, "address")
	}
	return errors.Wrap(r.Core.Validate(), "core")
}

// Privilege is a named authority at a fixed index.
type Privilege struct {
	Index uint64 `json:"index"`
	Name  string `json:"name"`
}

var _ orm.Model = (*Privilege)(nil)

func (p *Privilege) Marshal() ([]byte, error) {
	return rainbow.Encode(p)
}

func (p *Privilege) Unmarshal(raw []byte) error {
	return rainbow.Decode(raw, p)
}

func (p *Privilege) Validate() error {
	if p.Name == "" {
		return errors.Wrap(errors.ErrEmpty, "name")
	}
	return nil
}

func privilegeKey(instance rainbow.Address, index uint64) []byte {
	return append(append([]byte{}, instance...), orm.EncodeSequence(index)...)
}
