package store

import "github.com/iov-one/rainbow"

// Move references for all storage types into this package
// for shorter names everywhere

type (
	ReadOnlyKVStore  = rainbow.ReadOnlyKVStore
	SetDeleter       = rainbow.SetDeleter
	KVStore          = rainbow.KVStore
	Batch            = rainbow.Batch
	Iterator         = rainbow.Iterator
	CacheableKVStore = rainbow.CacheableKVStore
	KVCacheWrap      = rainbow.KVCacheWrap
	CommitKVStore    = rainbow.CommitKVStore
	CommitID         = rainbow.CommitID
	Model            = rainbow.Model
)
