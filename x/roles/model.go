package roles

import (
	"github.com/iov-one/rainbow"
	"github.com/iov-one/rainbow/errors"
	"github.com/iov-one/rainbow/orm"
)

// Registry is the state of a single role registry instance.
type Registry struct {
	Address rainbow.Address `json:"address"`
	// Core is the only identity allowed to mutate the registry.
	Core rainbow.Address `json:"core"`
	// Count is the number of roles, the index of the next one.
	Count uint64 `json:"count"`
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

// Role is a named role at a fixed index.
type Role struct {
	Index uint64 `json:"index"`
	Name  string `json:"name"`
}

var _ orm.Model = (*Role)(nil)

func (r *Role) Marshal() ([]byte, error) {
	return rainbow.Encode(r)
}

func (r *Role) Unmarshal(raw []byte) error {
	return rainbow.Decode(raw, r)
}

func (r *Role) Validate() error {
	if r.Name == "" {
		return errors.Wrap(errors.ErrEmpty, "name")
	}
	return nil
}

// Names is an ordered list of role or privilege names.
type Names struct {
	Names []string `json:"names"`
}

var _ orm.Model = (*Names)(nil)

func (n *Names) Marshal() ([]byte, error) {
	return rainbow.Encode(n)
}

func (n *Names) Unmarshal(raw []byte) error {
	return rainbow.Decode(raw, n)
}

func (n *Names) Validate() error {
	for i, name := range n.Names {
		if name == "" {
			return errors.Wrapf(errors.ErrEmpty, "name %d", i)
		}
	}
	return nil
}

func newBucket(name string, proto orm.Model) orm.Bucket {
	return orm.NewBucket(name, orm.NewSimpleObj(nil, proto))
}

// instanceKey builds the key of an entry owned by instance.
func instanceKey(instance rainbow.Address, suffix []byte) []byte {
	key := make([]byte, 0, len(instance)+len(suffix))
	key = append(key, instance...)
	return append(key, suffix...)
}
