package store

import (
	"bytes"

	"github.com/google/btree"
	"github.com/iov-one/community/errors"
)

// ascendBtree returns all items within [start, end) in ascending order.
func ascendBtree(bt *btree.BTree, start, end []byte) []btree.Item {
	var res []btree.Item
	collect := func(item btree.Item) bool {
		res = append(res, item)
		return true
	}
	switch {
	case start == nil && end == nil:
		bt.Ascend(collect)
	case start == nil:
		bt.AscendLessThan(bkey{end}, collect)
	case end == nil:
		bt.AscendGreaterOrEqual(bkey{start}, collect)
	default:
		bt.AscendRange(bkey{start}, bkey{end}, collect)
	}
	return res
}

// descendBtree returns all items within [start, end) in descending order.
func descendBtree(bt *btree.BTree, start, end []byte) []btree.Item {
	res := ascendBtree(bt, start, end)
	for i, j := 0, len(res)-1; i < j; i, j = i+1, j-1 {
		res[i], res[j] = res[j], res[i]
	}
	return res
}

// itemIter combines the items cached in a btree with the results of the
// parent store iterator. Cached items take precedence over the parent
// values of the same key, and deleted items hide them.
type itemIter struct {
	ascending bool

	ours []btree.Item
	pos  int

	parent Iterator
	// Single item lookahead of the parent iterator.
	pkey, pvalue []byte
	pdone        bool
	loaded       bool
}

var _ Iterator = (*itemIter)(nil)

func newItemIter(ours []btree.Item, parent Iterator, ascending bool) *itemIter {
	return &itemIter{
		ascending: ascending,
		ours:      ours,
		parent:    parent,
	}
}

func (i *itemIter) loadParent() error {
	if i.loaded || i.pdone {
		return nil
	}
	key, value, err := i.parent.Next()
	switch {
	case err == nil:
		i.pkey, i.pvalue, i.loaded = key, value, true
		return nil
	case errors.ErrIteratorDone.Is(err):
		i.pdone = true
		return nil
	default:
		return err
	}
}

// Next returns the next key value pair or ErrIteratorDone.
func (i *itemIter) Next() (key, value []byte, err error) {
	for {
		if err := i.loadParent(); err != nil {
			return nil, nil, err
		}
		hasOurs := i.pos < len(i.ours)
		if !hasOurs && !i.loaded {
			return nil, nil, errors.Wrap(errors.ErrIteratorDone, "cache wrap")
		}

		if !hasOurs {
			return i.takeParent()
		}
		item := i.ours[i.pos]
		if i.loaded {
			cmp := bytes.Compare(item.(keyer).Key(), i.pkey)
			if !i.ascending {
				cmp = -cmp
			}
			if cmp > 0 {
				return i.takeParent()
			}
			if cmp == 0 {
				// Our value overwrites the parent one.
				i.loaded = false
			}
		}
		i.pos++
		if set, ok := item.(setItem); ok {
			return set.Key(), set.value, nil
		}
		// A delete hides the parent value and yields nothing.
	}
}

func (i *itemIter) takeParent() ([]byte, []byte, error) {
	i.loaded = false
	return i.pkey, i.pvalue, nil
}

// Release releases the Iterator.
func (i *itemIter) Release() {
	i.parent.Release()
	i.ours = nil
}
