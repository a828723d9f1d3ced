package orm

import (
	"bytes"
	"math"
	"testing"

	"github.com/iov-one/rainbow/errors"
	"github.com/iov-one/rainbow/rainbowtest/assert"
	"github.com/iov-one/rainbow/store"
)

func TestSequence(t *testing.T) {
	db := store.MemStore()

	s := NewSequence("bucket", "id")
	latest, err := s.Latest(db)
	assert.Nil(t, err)
	assert.Equal(t, uint64(0), latest)

	var prev []byte
	for i := uint64(1); i <= 300; i++ {
		raw, err := s.NextVal(db)
		assert.Nil(t, err)
		assert.Equal(t, i, DecodeSequence(raw))
		if bytes.Compare(prev, raw) != -1 {
			t.Fatalf("sequence value %X not greater than %X", raw, prev)
		}
		prev = raw
	}

	n, err := s.NextInt(db)
	assert.Nil(t, err)
	assert.Equal(t, uint64(301), n)

	// another name is another counter
	other := NewSequence("bucket", "other")
	n, err = other.NextInt(db)
	assert.Nil(t, err)
	assert.Equal(t, uint64(1), n)
}

func TestSequenceOverflow(t *testing.T) {
	db := store.MemStore()
	s := NewSequence("bucket", "id")
	assert.Nil(t, db.Set(s.id, EncodeSequence(math.MaxUint64-1)))

	n, err := s.NextInt(db)
	assert.Nil(t, err)
	assert.Equal(t, uint64(math.MaxUint64), n)

	_, err = s.NextInt(db)
	assert.IsErr(t, errors.ErrCounterOverflow, err)

	// the failed increment did not change the state
	latest, err := s.Latest(db)
	assert.Nil(t, err)
	assert.Equal(t, uint64(math.MaxUint64), latest)
}
