package spawn

import (
	"encoding/binary"

	"github.com/iov-one/rainbow"
	"github.com/iov-one/rainbow/errors"
	"github.com/iov-one/rainbow/orm"
	"golang.org/x/crypto/blake2b"
)

// Controller manages templates and spawns their instances.
type Controller struct {
	templates TemplateBucket
	instances InstanceBucket
}

// NewController returns a controller using the default buckets.
func NewController() Controller {
	return Controller{
		templates: NewTemplateBucket(),
		instances: NewInstanceBucket(),
	}
}

// TemplateRef returns the reference of the template with given name.
func TemplateRef(name string) []byte {
	h := blake2b.Sum256([]byte(name))
	return h[:rainbow.AddressLength]
}

// ChildAddress derives the address of a child spawned by parent from the
// template ref using seq as salt.
func ChildAddress(ref []byte, parent rainbow.Address, seq uint64) rainbow.Address {
	salt := make([]byte, 8)
	binary.BigEndian.PutUint64(salt, seq)

	data := make([]byte, 0, len(ref)+len(parent)+len(salt))
	data = append(data, ref...)
	data = append(data, parent...)
	data = append(data, salt...)
	h := blake2b.Sum256(data)
	return rainbow.Address(h[:rainbow.AddressLength])
}

// RegisterTemplate stores a new template and returns its reference.
func (c Controller) RegisterTemplate(db rainbow.KVStore, name, kind string) ([]byte, error) {
	ref := TemplateRef(name)
	switch ok, err := c.templates.Has(db, ref); {
	case err != nil:
		return nil, err
	case ok:
		return nil, errors.Wrapf(errors.ErrDuplicate, "template %q", name)
	}
	obj := orm.NewSimpleObj(ref, &Template{Name: name, Kind: kind})
	if err := c.templates.Save(db, obj); err != nil {
		return nil, errors.Wrap(err, "template")
	}
	return ref, nil
}

// Template returns the template registered under ref.
func (c Controller) Template(db rainbow.ReadOnlyKVStore, ref []byte) (*Template, error) {
	obj, err := c.templates.Get(db, ref)
	if err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "template %X", ref)
	}
	return obj.Value().(*Template), nil
}

// Instantiate creates a child of the template kind wantKind. Fails with
// ErrInstantiation when the template is unknown, of another kind or when
// the derived address is already in use.
func (c Controller) Instantiate(db rainbow.KVStore, ref []byte, wantKind string, parent rainbow.Address, seq uint64) (rainbow.Address, error) {
	tmpl, err := c.Template(db, ref)
	if err != nil {
		if errors.ErrNotFound.Is(err) {
			return nil, errors.Wrapf(errors.ErrInstantiation, "unknown template %X", ref)
		}
		return nil, err
	}
	if tmpl.Kind != wantKind {
		return nil, errors.Wrapf(errors.ErrInstantiation, "template %q is %s, not %s", tmpl.Name, tmpl.Kind, wantKind)
	}

	addr := ChildAddress(ref, parent, seq)
	switch ok, err := c.instances.Has(db, addr); {
	case err != nil:
		return nil, err
	case ok:
		return nil, errors.Wrapf(errors.ErrInstantiation, "address %s in use", addr)
	}

	inst := &Instance{
		Template: ref,
		Kind:     tmpl.Kind,
		Parent:   parent,
		Sequence: seq,
	}
	if err := c.instances.Save(db, orm.NewSimpleObj(addr, inst)); err != nil {
		return nil, errors.Wrap(err, "instance")
	}
	return addr, nil
}

// Lookup returns the record of a spawned instance.
func (c Controller) Lookup(db rainbow.ReadOnlyKVStore, addr rainbow.Address) (*Instance, error) {
	obj, err := c.instances.Get(db, addr)
	if err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "instance %s", addr)
	}
	return obj.Value().(*Instance), nil
}
