package kernel

import (
	"github.com/iov-one/rainbow"
	"github.com/iov-one/rainbow/errors"
	"github.com/iov-one/rainbow/orm"
)

// State is the kernel singleton, written once by Init.
type State struct {
	// Admin is the identity that ran Init. It has no special rights.
	Admin      rainbow.Address `json:"admin"`
	Version    uint64          `json:"version"`
	Roles      rainbow.Address `json:"roles"`
	Privileges rainbow.Address `json:"privileges"`
	Routes     rainbow.Address `json:"routes"`
}

var _ orm.Model = (*State)(nil)

func (s *State) Marshal() ([]byte, error) {
	return rainbow.Encode(s)
}

func (s *State) Unmarshal(raw []byte) error {
	return rainbow.Decode(raw, s)
}

func (s *State) Validate() error {
	if err := s.Admin.Validate(); err != nil {
		return errors.Wrap(err, "admin")
	}
	if err := s.Roles.Validate(); err != nil {
		return errors.Wrap(err, "roles")
	}
	if err := s.Privileges.Validate(); err != nil {
		return errors.Wrap(err, "privileges")
	}
	return errors.Wrap(s.Routes.Validate(), "routes")
}

var stateKey = []byte("state")

// Bucket holds the kernel singleton and its spawn counter.
type Bucket struct {
	orm.Bucket
	version orm.Sequence
}

// NewBucket returns the kernel bucket.
func NewBucket() Bucket {
	b := orm.NewBucket("kernel", orm.NewSimpleObj(nil, &State{}))
	return Bucket{
		Bucket:  b,
		version: b.Sequence("version"),
	}
}
