package orm

import (
	"fmt"
	"reflect"
	"regexp"

	community "github.com/iov-one/community"
	"github.com/iov-one/community/errors"
)

var (
	isBucketName = regexp.MustCompile(`^[a-z_]{3,15}$`).MatchString
)

// Model is implemented by any entity that can be stored using ModelBucket.
type Model interface {
	community.Persistent
	Validate() error
}

// ModelBucket is implemented by buckets that operates on Models.
type ModelBucket interface {
	// One query the database for a single model instance. Lookup is done
	// by the primary key. Result is loaded into given destination model.
	// This method returns ErrNotFound if the entity does not exist in the
	// database.
	// If given model type cannot be used to contain stored entity, ErrType
	// is returned.
	One(db community.ReadOnlyKVStore, key []byte, dest Model) error

	// Has returns nil if an entity with given primary key exists. It
	// returns ErrNotFound otherwise.
	Has(db community.ReadOnlyKVStore, key []byte) error

	// Put saves given model in the database. The model is validated
	// first.
	Put(db community.KVStore, key []byte, m Model) error

	// Delete removes an entity with given primary key from the database.
	// It returns ErrNotFound if an entity with given key does not exist.
	Delete(db community.KVStore, key []byte) error

	// PrefixScan returns an iterator over all entities with a primary
	// key starting with given prefix, in ascending or descending key
	// order. A nil prefix iterates over the whole bucket.
	PrefixScan(db community.ReadOnlyKVStore, prefix []byte, reverse bool) (ModelIterator, error)

	// Register registers this bucket as a query handler under given
	// path. An empty name uses the bucket name.
	Register(name string, r community.QueryRouter)
}

// NewModelBucket returns a ModelBucket storing models of the same type as
// given prototype.
func NewModelBucket(name string, proto Model) ModelBucket {
	if !isBucketName(name) {
		panic(fmt.Sprintf("illegal bucket: %s", name))
	}
	tp := reflect.TypeOf(proto)
	if tp.Kind() != reflect.Ptr {
		panic(fmt.Sprintf("model must be a pointer, got %T", proto))
	}
	return &modelBucket{
		name:   name,
		prefix: append([]byte(name), ':'),
		model:  tp,
	}
}

type modelBucket struct {
	name   string
	prefix []byte
	model  reflect.Type
}

var _ ModelBucket = (*modelBucket)(nil)

// dbKey copies into a new array rather than appending to the prefix, so
// that consecutive calls never share memory.
func (mb *modelBucket) dbKey(key []byte) []byte {
	out := make([]byte, len(mb.prefix)+len(key))
	copy(out, mb.prefix)
	copy(out[len(mb.prefix):], key)
	return out
}

func (mb *modelBucket) One(db community.ReadOnlyKVStore, key []byte, dest Model) error {
	if reflect.TypeOf(dest) != mb.model {
		return errors.Wrapf(errors.ErrType, "%s bucket cannot load into %T", mb.name, dest)
	}
	raw, err := db.Get(mb.dbKey(key))
	if err != nil {
		return errors.Wrap(err, "cannot read from the database")
	}
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "%s %X", mb.name, key)
	}
	if err := dest.Unmarshal(raw); err != nil {
		return errors.Wrapf(errors.ErrModel, "cannot unmarshal: %s", err)
	}
	return nil
}

func (mb *modelBucket) Has(db community.ReadOnlyKVStore, key []byte) error {
	if len(key) == 0 {
		return errors.Wrap(errors.ErrNotFound, "empty key")
	}
	ok, err := db.Has(mb.dbKey(key))
	if err != nil {
		return errors.Wrap(err, "cannot read from the database")
	}
	if !ok {
		return errors.Wrapf(errors.ErrNotFound, "%s %X", mb.name, key)
	}
	return nil
}

func (mb *modelBucket) Put(db community.KVStore, key []byte, m Model) error {
	if len(key) == 0 {
		return errors.Wrap(errors.ErrEmpty, "key")
	}
	if reflect.TypeOf(m) != mb.model {
		return errors.Wrapf(errors.ErrType, "%s bucket cannot store %T", mb.name, m)
	}
	if err := m.Validate(); err != nil {
		return errors.Wrap(err, "invalid model")
	}
	raw, err := m.Marshal()
	if err != nil {
		return errors.Wrap(err, "cannot marshal")
	}
	if len(raw) == 0 {
		// An empty value cannot be told apart from a missing one.
		return errors.Wrap(errors.ErrModel, "empty serialization")
	}
	if err := db.Set(mb.dbKey(key), raw); err != nil {
		return errors.Wrap(err, "cannot store in the database")
	}
	return nil
}

func (mb *modelBucket) Delete(db community.KVStore, key []byte) error {
	if err := mb.Has(db, key); err != nil {
		return err
	}
	if err := db.Delete(mb.dbKey(key)); err != nil {
		return errors.Wrap(err, "cannot delete from the database")
	}
	return nil
}

func (mb *modelBucket) PrefixScan(db community.ReadOnlyKVStore, prefix []byte, reverse bool) (ModelIterator, error) {
	start, end := prefixRange(mb.dbKey(prefix))
	var (
		it  community.Iterator
		err error
	)
	if reverse {
		it, err = db.ReverseIterator(start, end)
	} else {
		it, err = db.Iterator(start, end)
	}
	if err != nil {
		return nil, errors.Wrap(err, "cannot create iterator")
	}
	return &modelIterator{it: it, prefix: len(mb.prefix)}, nil
}

func (mb *modelBucket) Register(name string, r community.QueryRouter) {
	if name == "" {
		name = mb.name
	}
	r.Register("/"+name, bucketQuery{mb})
}

// prefixRange turns a prefix into (start, end) to define a range that
// matches all keys with this prefix.
func prefixRange(prefix []byte) ([]byte, []byte) {
	if prefix == nil {
		return nil, nil
	}
	start := append([]byte{}, prefix...)
	end := append([]byte{}, prefix...)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] < 0xFF {
			end[i]++
			return start, end[:i+1]
		}
	}
	// The prefix is made only of 0xFF bytes, there is no upper bound.
	return start, nil
}
