/*
Package iavl provides a persistent, merkelized CommitKVStore backed by an
iavl tree.
*/
package iavl

import (
	"github.com/iov-one/community/errors"
	"github.com/iov-one/community/store"
	"github.com/tendermint/iavl"
	dbm "github.com/tendermint/tendermint/libs/db"
)

// DefaultCacheSize is the number of tree nodes kept in memory.
const DefaultCacheSize = 10000

// CommitStore manages a iavl committed state
type CommitStore struct {
	db   dbm.DB
	tree *iavl.MutableTree
}

var _ store.CommitKVStore = CommitStore{}

// NewCommitStore creates a new store with disk backing. The database is
// kept in dir/name.db.
func NewCommitStore(dir, name string) CommitStore {
	db := dbm.NewDB(name, dbm.GoLevelDBBackend, dir)
	return newCommitStore(db)
}

// MockCommitStore creates a new in memory store for testing.
func MockCommitStore() CommitStore {
	return newCommitStore(dbm.NewMemDB())
}

func newCommitStore(db dbm.DB) CommitStore {
	return CommitStore{
		db:   db,
		tree: iavl.NewMutableTree(db, DefaultCacheSize),
	}
}

// Get returns the value at last committed state
// returns nil iff key doesn't exist. Panics on nil key.
func (s CommitStore) Get(key []byte) ([]byte, error) {
	_, val := s.tree.GetVersioned(key, s.tree.Version())
	return val, nil
}

// Commit saves all pending changes written through a cache wrap as a new
// version.
func (s CommitStore) Commit() (store.CommitID, error) {
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
func (s CommitStore) LoadLatestVersion() error {
	if _, err := s.tree.Load(); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}

// LatestVersion returns info on the latest version saved to disk
func (s CommitStore) LatestVersion() (store.CommitID, error) {
	return store.CommitID{
		Version: s.tree.Version(),
		Hash:    s.tree.Hash(),
	}, nil
}

// CacheWrap returns a btree cache over the working tree. Writing the cache
// stages the changes for the next Commit.
func (s CommitStore) CacheWrap() store.KVCacheWrap {
	t := treeStore{tree: s.tree}
	return store.NewBTreeCacheWrap(t, store.NewNonAtomicBatch(t), nil)
}

// Close releases the database.
func (s CommitStore) Close() {
	s.db.Close()
}

// treeStore exposes the working version of the tree as a KVStore.
type treeStore struct {
	tree *iavl.MutableTree
}

var _ store.KVStore = treeStore{}

func (t treeStore) Get(key []byte) ([]byte, error) {
	_, val := t.tree.Get(key)
	return val, nil
}

func (t treeStore) Has(key []byte) (bool, error) {
	return t.tree.Has(key), nil
}

func (t treeStore) Set(key, value []byte) error {
	t.tree.Set(key, value)
	return nil
}

func (t treeStore) Delete(key []byte) error {
	t.tree.Remove(key)
	return nil
}

func (t treeStore) Iterator(start, end []byte) (store.Iterator, error) {
	return t.iterate(start, end, true), nil
}

func (t treeStore) ReverseIterator(start, end []byte) (store.Iterator, error) {
	return t.iterate(start, end, false), nil
}

// iterate loads the whole range. No writes may happen within a domain while
// an iterator exists over it anyway.
func (t treeStore) iterate(start, end []byte, ascending bool) store.Iterator {
	var res []store.Model
	t.tree.IterateRange(start, end, ascending, func(key, value []byte) bool {
		res = append(res, store.Model{Key: key, Value: value})
		return false
	})
	return store.NewSliceIterator(res)
}
