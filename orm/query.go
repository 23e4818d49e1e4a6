package orm

import (
	community "github.com/iov-one/community"
	"github.com/iov-one/community/errors"
)

// bucketQuery serves ABCI queries for the content of a bucket. Returned
// keys include the bucket prefix.
type bucketQuery struct {
	mb *modelBucket
}

var _ community.QueryHandler = bucketQuery{}

func (q bucketQuery) Query(db community.ReadOnlyKVStore, mod string, data []byte) ([]community.Model, error) {
	switch mod {
	case community.KeyQueryMod:
		key := q.mb.dbKey(data)
		value, err := db.Get(key)
		if err != nil {
			return nil, err
		}
		// return nothing on miss
		if value == nil {
			return nil, nil
		}
		return []community.Model{community.Pair(key, value)}, nil
	case community.PrefixQueryMod:
		start, end := prefixRange(q.mb.dbKey(data))
		it, err := db.Iterator(start, end)
		if err != nil {
			return nil, err
		}
		return ConsumeIterator(it)
	default:
		return nil, errors.Wrapf(errors.ErrInput, "unknown mod: %s", mod)
	}
}
