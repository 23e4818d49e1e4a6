package store

import community "github.com/iov-one/community"

// Reference the storage types of the root package so that this package
// can be used with shorter names.
type (
	ReadOnlyKVStore  = community.ReadOnlyKVStore
	SetDeleter       = community.SetDeleter
	KVStore          = community.KVStore
	Iterator         = community.Iterator
	CacheableKVStore = community.CacheableKVStore
	KVCacheWrap      = community.KVCacheWrap
	CommitKVStore    = community.CommitKVStore
	CommitID         = community.CommitID
	Model            = community.Model
)

// Batch collects write operations to be applied to the underlying store
// all at once, when Write is called.
type Batch interface {
	SetDeleter
	Write() error
}
