package orm

import (
	"github.com/iov-one/rainbow"
	"github.com/iov-one/rainbow/x"
)

// Model is the data stored under a single key. It can serialize itself and
// verify its own invariants before it is persisted.
type Model interface {
	rainbow.Persistent
	x.Validater
}

// Object is what is stored in the bucket
// Key is joined with the prefix to set the full key
// Value is the data stored
type Object interface {
	Keyed
	Cloneable
	// Validate returns error if the object is not in a valid
	// state to save to the db (eg. field missing, out of range, ...)
	x.Validater
	Value() Model
}

// Reader defines an interface that allows reading objects from the db
type Reader interface {
	Get(db rainbow.ReadOnlyKVStore, key []byte) (Object, error)
}

// Keyed is anything that can identify itself
type Keyed interface {
	Key() []byte
	SetKey([]byte)
}

// Cloneable will create a new object that can be loaded into
type Cloneable interface {
	Clone() Object
}
