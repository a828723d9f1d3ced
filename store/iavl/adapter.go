/*
Package iavl provides a persistent CommitKVStore backed by a merkle tree.

Every committed version is saved to a goleveldb database, so the state of
all components survives process restarts. Uncommitted writes are kept in
the working tree and become visible to readers immediately.
*/
package iavl

import (
	"github.com/iov-one/rainbow/errors"
	"github.com/iov-one/rainbow/store"
	"github.com/tendermint/iavl"
	dbm "github.com/tendermint/tendermint/libs/db"
)

const cacheSize = 10000

// CommitStore manages a iavl committed state
type CommitStore struct {
	tree *iavl.MutableTree
	db   dbm.DB
}

var _ store.CommitKVStore = (*CommitStore)(nil)

// NewCommitStore creates a new store with disk backing. The database is
// created in dir, under given name.
func NewCommitStore(dir, name string) (*CommitStore, error) {
	db, err := openDB(dir, name)
	if err != nil {
		return nil, err
	}
	return newCommitStore(db), nil
}

// NewMemCommitStore returns a store that never touches the disk.
func NewMemCommitStore() *CommitStore {
	return newCommitStore(dbm.NewMemDB())
}

func newCommitStore(db dbm.DB) *CommitStore {
	return &CommitStore{
		tree: iavl.NewMutableTree(db, cacheSize),
		db:   db,
	}
}

// openDB recovers from the panic the leveldb constructor raises when the
// directory cannot be used.
func openDB(dir, name string) (db dbm.DB, err error) {
	defer errors.Recover(&err)
	return dbm.NewDB(name, dbm.GoLevelDBBackend, dir), nil
}

// Close releases the underlying database.
func (s *CommitStore) Close() {
	s.db.Close()
}

// Commit the next version to disk, and returns info
func (s *CommitStore) Commit() (store.CommitID, error) {
	hash, version, err := s.tree.SaveVersion()
	if err != nil {
		return store.CommitID{}, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return store.CommitID{
		Version: version,
		Hash:    hash,
	}, nil
}

// LoadLatestVersion loads the latest persisted version.
// If there was a crash during the last commit, it is guaranteed
// to return a stable state, even if older.
func (s *CommitStore) LoadLatestVersion() error {
	if _, err := s.tree.Load(); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}

// LatestVersion returns info on the latest version saved to disk
func (s *CommitStore) LatestVersion() (store.CommitID, error) {
	return store.CommitID{
		Version: s.tree.Version(),
		Hash:    s.tree.Hash(),
	}, nil
}

// CacheWrap gives us a savepoint to perform actions.
// Writing the returned cache updates the working tree, call Commit to
// persist it.
func (s *CommitStore) CacheWrap() store.KVCacheWrap {
	return store.NewBTreeCacheWrap(s, s.NewBatch(), nil)
}

// NewBatch returns a batch that can write multiple ops atomically
func (s *CommitStore) NewBatch() store.Batch {
	return store.NewNonAtomicBatch(s)
}

// Get returns the value from the working tree.
// returns nil iff key doesn't exist. Panics on nil key.
func (s *CommitStore) Get(key []byte) ([]byte, error) {
	_, val := s.tree.Get(key)
	return val, nil
}

// Has checks if a key exists. Panics on nil key.
func (s *CommitStore) Has(key []byte) (bool, error) {
	return s.tree.Has(key), nil
}

// Set adds a new value
func (s *CommitStore) Set(key, value []byte) error {
	s.tree.Set(key, value)
	return nil
}

// Delete removes from the tree
func (s *CommitStore) Delete(key []byte) error {
	s.tree.Remove(key)
	return nil
}

// Iterator over a domain of keys in ascending order. End is exclusive.
// Start must be less than end, or the Iterator is invalid.
// CONTRACT: No writes may happen within a domain while an iterator exists over it.
func (s *CommitStore) Iterator(start, end []byte) (store.Iterator, error) {
	return s.iterate(start, end, true), nil
}

// ReverseIterator over a domain of keys in descending order. End is exclusive.
// Start must be greater than end, or the Iterator is invalid.
// CONTRACT: No writes may happen within a domain while an iterator exists over it.
func (s *CommitStore) ReverseIterator(start, end []byte) (store.Iterator, error) {
	return s.iterate(start, end, false), nil
}

// iterate loads the whole range into memory. Ranges read by the
// components are bounded by a single instance prefix.
func (s *CommitStore) iterate(start, end []byte, ascending bool) store.Iterator {
	var res []store.Model
	add := func(key []byte, value []byte) bool {
		m := store.Model{Key: key, Value: value}
		res = append(res, m)
		// returning true stops the iteration
		return false
	}
	s.tree.IterateRange(start, end, ascending, add)
	return store.NewSliceIterator(res)
}
