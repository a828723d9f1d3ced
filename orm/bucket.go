/*
Package orm provides an easy to use db wrapper

Break state space into prefixed sections called Buckets.
* Each bucket contains only one type of object.
* Objects are addressed by a primary key, composite keys are built by
  concatenating fixed size parts, so that a prefix scan returns all
  objects sharing the leading parts.
* Sequences provide monotonic counters stored next to the bucket.
*/
package orm

import (
	"fmt"
	"regexp"

	"github.com/iov-one/rainbow"
	"github.com/iov-one/rainbow/errors"
)

var (
	isBucketName = regexp.MustCompile(`^[a-z_]{3,10}$`).MatchString
)

// Bucket is a generic holder that stores data as well
// as references to sequences.
//
// This is a generic building block that should generally
// be embedded in a type-safe wrapper to ensure all data
// is the same type.
// Bucket is a prefixed subspace of the DB
// proto defines the default Model, all elements of this type
type Bucket struct {
	name   string
	prefix []byte
	proto  Cloneable
}

// NewBucket creates a bucket to store data
func NewBucket(name string, proto Cloneable) Bucket {
	if !isBucketName(name) {
		panic(fmt.Sprintf("Illegal bucket: %s", name))
	}

	return Bucket{
		name:   name,
		prefix: append([]byte(name), ':'),
		proto:  proto,
	}
}

// Name returns the name of the bucket.
func (b Bucket) Name() string {
	return b.name
}

// DBKey is the full key we store in the db, including prefix
// We copy into a new array rather than use append, as we don't
// want consecutive calls to overwrite the same byte array.
func (b Bucket) DBKey(key []byte) []byte {
	l := len(b.prefix)
	out := make([]byte, l+len(key))
	copy(out, b.prefix)
	copy(out[l:], key)
	return out
}

// Get one element, nil if it does not exist
func (b Bucket) Get(db rainbow.ReadOnlyKVStore, key []byte) (Object, error) {
	dbkey := b.DBKey(key)
	bz, err := db.Get(dbkey)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	if bz == nil {
		return nil, nil
	}
	return b.Parse(key, bz)
}

// Has returns true if an element is stored under given key.
func (b Bucket) Has(db rainbow.ReadOnlyKVStore, key []byte) (bool, error) {
	ok, err := db.Has(b.DBKey(key))
	if err != nil {
		return false, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return ok, nil
}

// Parse takes a key and value data (rainbow.Model) and
// reconstructs the data this Bucket would return.
//
// Used internally as part of Get.
// It is exposed mainly as a test helper, but can work for
// any code that wants to parse
func (b Bucket) Parse(key, value []byte) (Object, error) {
	obj := b.proto.Clone()
	if err := obj.Value().Unmarshal(value); err != nil {
		return nil, errors.Wrapf(errors.ErrModel, "%s: %s", b.name, err)
	}
	obj.SetKey(key)
	return obj, nil
}

// Save will write a model, it must be of the same type as proto
func (b Bucket) Save(db rainbow.KVStore, model Object) error {
	if err := model.Validate(); err != nil {
		return err
	}
	bz, err := model.Value().Marshal()
	if err != nil {
		return errors.Wrapf(errors.ErrModel, "%s: %s", b.name, err)
	}
	if err := db.Set(b.DBKey(model.Key()), bz); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}

// Delete will remove the value at a key
func (b Bucket) Delete(db rainbow.KVStore, key []byte) error {
	if err := db.Delete(b.DBKey(key)); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}

// Sequence returns a Sequence by name
func (b Bucket) Sequence(name string) Sequence {
	return NewSequence(b.name, name)
}

// PrefixScan returns all objects whose key starts with given prefix,
// ordered by key. An empty prefix returns the whole bucket.
func (b Bucket) PrefixScan(db rainbow.ReadOnlyKVStore, prefix []byte, reverse bool) ([]Object, error) {
	start, end := prefixRange(b.DBKey(prefix))
	var (
		it  rainbow.Iterator
		err error
	)
	if reverse {
		it, err = db.ReverseIterator(start, end)
	} else {
		it, err = db.Iterator(start, end)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	defer it.Close()

	var res []Object
	for it.Valid() {
		obj, err := b.Parse(it.Key()[len(b.prefix):], it.Value())
		if err != nil {
			return nil, err
		}
		res = append(res, obj)
		if err := it.Next(); err != nil {
			return nil, errors.Wrap(errors.ErrDatabase, err.Error())
		}
	}
	return res, nil
}

// prefixRange turns a prefix into a start/end range. The end is the
// smallest key greater than all keys with the prefix, nil when there is
// none.
func prefixRange(prefix []byte) ([]byte, []byte) {
	if len(prefix) == 0 {
		return nil, nil
	}
	end := make([]byte, len(prefix))
	copy(end, prefix)
	// trailing 0xFF bytes cannot be incremented, drop them
	for len(end) > 0 && end[len(end)-1] == 0xFF {
		end = end[:len(end)-1]
	}
	if len(end) == 0 {
		return prefix, nil
	}
	end[len(end)-1]++
	return prefix, end
}
