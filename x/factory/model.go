package factory

import (
	"github.com/iov-one/rainbow"
	"github.com/iov-one/rainbow/errors"
	"github.com/iov-one/rainbow/orm"
)

// Spawned is the instance created at a given spawn index.
type Spawned struct {
	Index   uint64          `json:"index"`
	Address rainbow.Address `json:"address"`
}

var _ orm.Model = (*Spawned)(nil)

func (s *Spawned) Marshal() ([]byte, error) {
	return rainbow.Encode(s)
}

func (s *Spawned) Unmarshal(raw []byte) error {
	return rainbow.Decode(raw, s)
}

func (s *Spawned) Validate() error {
	if s.Index == 0 {
		return errors.Wrap(errors.ErrInput, "index starts at one")
	}
	return errors.Wrap(s.Address.Validate(), "address")
}

// Membership lists the instances an identity was made a manager of, in
// spawn order.
type Membership struct {
	Instances []rainbow.Address `json:"instances"`
}

var _ orm.Model = (*Membership)(nil)

func (m *Membership) Marshal() ([]byte, error) {
	return rainbow.Encode(m)
}

func (m *Membership) Unmarshal(raw []byte) error {
	return rainbow.Decode(raw, m)
}

func (m *Membership) Validate() error {
	if len(m.Instances) == 0 {
		return errors.Wrap(errors.ErrEmpty, "instances")
	}
	for i, a := range m.Instances {
		if err := a.Validate(); err != nil {
			return errors.Wrapf(err, "instance %d", i)
		}
	}
	return nil
}

// SpawnedBucket stores instances keyed by their big endian spawn index.
type SpawnedBucket struct {
	orm.Bucket
	seq orm.Sequence
}

// NewSpawnedBucket returns the bucket of spawned instances together with
// the spawn counter.
func NewSpawnedBucket() SpawnedBucket {
	b := orm.NewBucket("facinst", orm.NewSimpleObj(nil, &Spawned{}))
	return SpawnedBucket{
		Bucket: b,
		seq:    b.Sequence("spawn"),
	}
}

// MembershipBucket stores the reverse index keyed by identity address.
type MembershipBucket struct {
	orm.Bucket
}

// NewMembershipBucket returns the identity to instances bucket.
func NewMembershipBucket() MembershipBucket {
	return MembershipBucket{
		Bucket: orm.NewBucket("facuser", orm.NewSimpleObj(nil, &Membership{})),
	}
}
