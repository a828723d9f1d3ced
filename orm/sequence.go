package orm

import (
	"encoding/binary"
	"math"

	"github.com/iov-one/rainbow"
	"github.com/iov-one/rainbow/errors"
)

// Sequence maintains a counter, and generates a
// series of keys. Each key is greater than the last,
// both NextInt() as well as bytes.Compare() on NextVal().
//
// A sequence never wraps around. Once the maximum value is reached every
// further increment fails with ErrCounterOverflow.
type Sequence struct {
	id []byte
}

// NewSequence returns a sequence counter. Sequence is using following pattern
// to construct a key:
//    _s.<bucket>:<name>
func NewSequence(bucket, name string) Sequence {
	id := "_s." + bucket + ":" + name
	return Sequence{
		id: []byte(id),
	}
}

// NextVal increments the sequence and returns its state as 8 bytes.
func (s *Sequence) NextVal(db rainbow.KVStore) ([]byte, error) {
	_, bz, err := s.increment(db, 1)
	return bz, err
}

// NextInt increments the sequence and returns its state as int.
func (s *Sequence) NextInt(db rainbow.KVStore) (uint64, error) {
	val, _, err := s.increment(db, 1)
	return val, err
}

// Latest returns the recently returned value of the sequence. This method does
// not modify the sequence state. Use NextVal or NextInt to acquire a sequence
// value that was not given to anyone else.
func (s *Sequence) Latest(db rainbow.ReadOnlyKVStore) (uint64, error) {
	raw, err := db.Get(s.id)
	if err != nil {
		return 0, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return DecodeSequence(raw), nil
}

func (s *Sequence) increment(db rainbow.KVStore, inc uint64) (uint64, []byte, error) {
	val, err := s.Latest(db)
	if err != nil {
		return 0, nil, err
	}
	if val > math.MaxUint64-inc {
		return 0, nil, errors.Wrapf(errors.ErrCounterOverflow, "sequence %s", s.id)
	}
	val += inc
	raw := EncodeSequence(val)
	if err := db.Set(s.id, raw); err != nil {
		return 0, nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return val, raw, nil
}

// DecodeSequence reads a big endian encoded counter, nil decodes to zero.
func DecodeSequence(bz []byte) uint64 {
	if bz == nil {
		return 0
	}
	return binary.BigEndian.Uint64(bz)
}

// EncodeSequence returns the 8 byte big endian representation of val.
func EncodeSequence(val uint64) []byte {
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, val)
	return bz
}
