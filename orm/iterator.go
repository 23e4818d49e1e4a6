package orm

import (
	community "github.com/iov-one/community"
	"github.com/iov-one/community/errors"
)

// ModelIterator iterates over models of a bucket.
type ModelIterator interface {
	// Load the next model into given destination and return its primary
	// key. ErrIteratorDone is returned when there are no more models.
	LoadNext(dest Model) ([]byte, error)
	// Release releases the iterator.
	Release()
}

type modelIterator struct {
	it     community.Iterator
	prefix int
}

func (m *modelIterator) LoadNext(dest Model) ([]byte, error) {
	key, value, err := m.it.Next()
	if err != nil {
		return nil, err
	}
	if err := dest.Unmarshal(value); err != nil {
		return nil, errors.Wrapf(errors.ErrModel, "cannot unmarshal: %s", err)
	}
	return key[m.prefix:], nil
}

func (m *modelIterator) Release() {
	m.it.Release()
}

// ConsumeIterator reads all remaining data from given raw iterator and
// releases it.
func ConsumeIterator(it community.Iterator) ([]community.Model, error) {
	defer it.Release()

	var res []community.Model
	for {
		key, value, err := it.Next()
		switch {
		case err == nil:
			res = append(res, community.Pair(key, value))
		case errors.ErrIteratorDone.Is(err):
			return res, nil
		default:
			return nil, err
		}
	}
}
