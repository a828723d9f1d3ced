package routes

import (
	"github.com/iov-one/rainbow"
	"github.com/iov-one/rainbow/errors"
	"github.com/iov-one/rainbow/orm"
)

// Registry is the state of a single route registry instance.
type Registry struct {
	Address rainbow.Address `json:"address"`
	Core    rainbow.Address `json:"core"`
	// Count is incremented on every added route, overwrites included.
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

// Route points a name to an address.
type Route struct {
	Name    string          `json:"name"`
	Address rainbow.Address `json:"address"`
}

var _ orm.Model = (*Route)(nil)

func (r *Route) Marshal() ([]byte, error) {
	return rainbow.Encode(r)
}

func (r *Route) Unmarshal(raw []byte) error {
	return rainbow.Decode(raw, r)
}

func (r *Route) Validate() error {
	if r.Name == "" {
		return errors.Wrap(errors.ErrEmpty, "name")
	}
	return errors.Wrap(r.Address.Validate(), "address")
}

// routeKey is the instance address followed by the name, so that a prefix
// scan of an instance returns its routes ordered by name.
func routeKey(instance rainbow.Address, name string) []byte {
	return append(append([]byte{}, instance...), name...)
}
