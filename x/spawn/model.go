package spawn

import (
	"github.com/iov-one/rainbow"
	"github.com/iov-one/rainbow/errors"
	"github.com/iov-one/rainbow/orm"
)

// Kinds of components that can be instantiated.
const (
	KindMultisig   = "multisig"
	KindRoles      = "roles"
	KindPrivileges = "privileges"
	KindRoutes     = "routes"
)

func validKind(kind string) bool {
	switch kind {
	case KindMultisig, KindRoles, KindPrivileges, KindRoutes:
		return true
	}
	return false
}

// Template describes a kind of component that can be spawned.
type Template struct {
	Name string
	Kind string
}

var _ orm.Model = (*Template)(nil)

func (t *Template) Marshal() ([]byte, error) {
	return rainbow.Encode(t)
}

func (t *Template) Unmarshal(raw []byte) error {
	return rainbow.Decode(raw, t)
}

func (t *Template) Validate() error {
	if t.Name == "" {
		return errors.Wrap(errors.ErrEmpty, "template name")
	}
	if !validKind(t.Kind) {
		return errors.Wrapf(errors.ErrInput, "unknown kind %q", t.Kind)
	}
	return nil
}

// Instance is the record of a spawned child.
type Instance struct {
	Template []byte
	Kind     string
	Parent   rainbow.Address
	Sequence uint64
}

var _ orm.Model = (*Instance)(nil)

func (i *Instance) Marshal() ([]byte, error) {
	return rainbow.Encode(i)
}

func (i *Instance) Unmarshal(raw []byte) error {
	return rainbow.Decode(raw, i)
}

func (i *Instance) Validate() error {
	if len(i.Template) != rainbow.AddressLength {
		return errors.Wrap(errors.ErrInput, "template reference")
	}
	if !validKind(i.Kind) {
		return errors.Wrapf(errors.ErrInput, "unknown kind %q", i.Kind)
	}
	return errors.Wrap(i.Parent.Validate(), "parent")
}

// TemplateBucket stores templates by reference.
type TemplateBucket struct {
	orm.Bucket
}

// NewTemplateBucket returns the template registry bucket.
func NewTemplateBucket() TemplateBucket {
	return TemplateBucket{
		Bucket: orm.NewBucket("template", orm.NewSimpleObj(nil, &Template{})),
	}
}

// InstanceBucket stores spawned instances by their address.
type InstanceBucket struct {
	orm.Bucket
}

// NewInstanceBucket returns the spawned instances bucket.
func NewInstanceBucket() InstanceBucket {
	return InstanceBucket{
		Bucket: orm.NewBucket("spawned", orm.NewSimpleObj(nil, &Instance{})),
	}
}
