package store

import (
	"bytes"
	"crypto/rand"
	"sort"
	"testing"

	community "github.com/iov-one/community"
	"github.com/iov-one/community/communitytest/assert"
	"github.com/iov-one/community/errors"
)

// TestSuite groups store checks that every CacheableKVStore implementation
// must pass. Each implementation provides a constructor of a fresh, empty
// base store and calls the checks from its own tests.
type TestSuite struct {
	makeBase TestStoreConstructor
}

// TestStoreConstructor returns a new base store and a function that releases
// all its resources.
type TestStoreConstructor func() (base CacheableKVStore, cleanup func())

// NewTestSuite returns a suite testing stores created by given constructor.
func NewTestSuite(constructor TestStoreConstructor) *TestSuite {
	return &TestSuite{
		makeBase: constructor,
	}
}

// GetSet checks that the data written to a cache wrap is visible only
// through that cache wrap until it is written.
func (s *TestSuite) GetSet(t *testing.T) {
	base, cleanup := s.makeBase()
	defer cleanup()

	member, candidate := []byte("member:aa"), []byte("candidate:bb")
	v1, v2 := []byte("first"), []byte("second")

	AssertGetHas(t, base, member, nil, false)
	assert.Nil(t, base.Set(member, v1))
	AssertGetHas(t, base, member, v1, true)

	cache := base.CacheWrap()
	AssertGetHas(t, cache, member, v1, true)
	assert.Nil(t, cache.Set(candidate, v2))
	AssertGetHas(t, cache, candidate, v2, true)
	AssertGetHas(t, base, candidate, nil, false)

	assert.Nil(t, cache.Write())
	AssertGetHas(t, base, candidate, v2, true)

	discarded := base.CacheWrap()
	assert.Nil(t, discarded.Delete(member))
	AssertGetHas(t, discarded, member, nil, false)
	discarded.Discard()
	AssertGetHas(t, base, member, v1, true)

	removing := base.CacheWrap()
	assert.Nil(t, removing.Delete(candidate))
	assert.Nil(t, removing.Write())
	AssertGetHas(t, base, candidate, nil, false)
	AssertGetHas(t, base, member, v1, true)
}

// Nested checks that more than one level of cache wraps can be layered and
// that each level is written only into its direct parent.
func (s *TestSuite) Nested(t *testing.T) {
	base, cleanup := s.makeBase()
	defer cleanup()

	k := []byte("tally:cc")
	outer := base.CacheWrap()
	assert.Nil(t, outer.Set(k, []byte{1}))

	inner := outer.CacheWrap()
	AssertGetHas(t, inner, k, []byte{1}, true)
	assert.Nil(t, inner.Set(k, []byte{2}))
	AssertGetHas(t, outer, k, []byte{1}, true)

	assert.Nil(t, inner.Write())
	AssertGetHas(t, outer, k, []byte{2}, true)
	AssertGetHas(t, base, k, nil, false)

	assert.Nil(t, outer.Write())
	AssertGetHas(t, base, k, []byte{2}, true)
}

// Iterators checks range iteration in both directions over the combined
// state of a base store and a cache wrap, including overwrites and deletes.
func (s *TestSuite) Iterators(t *testing.T) {
	ms := randModels(6, 12, 30)
	a, a2, b, b2, c, d := ms[0], ms[1], ms[2], ms[3], ms[4], ms[5]
	a2.Key = a.Key
	b2.Key = b.Key

	abc := sortModels([]Model{a, b, c})
	overwritten := sortModels([]Model{a2, b2, c, d})

	cases := map[string]iterCase{
		"child only": {
			child: setOps(a, b, c),
			queries: []rangeQuery{
				{nil, nil, false, abc},
				{abc[1].Key, abc[2].Key, false, abc[1:2]},
				{nil, nil, true, reverse(abc)},
			},
		},
		"parent only": {
			pre: setOps(a, b, c),
			queries: []rangeQuery{
				{nil, nil, false, abc},
				{abc[1].Key, nil, false, abc[1:]},
				{nil, abc[2].Key, true, reverse(abc[:2])},
			},
		},
		"parent and child combined": {
			pre:   setOps(a, b),
			child: setOps(c),
			queries: []rangeQuery{
				{nil, nil, false, abc},
				{abc[1].Key, abc[2].Key, true, abc[1:2]},
				{nil, nil, true, reverse(abc)},
			},
		},
		"child values overwrite parent values": {
			pre:   setOps(a, b, c),
			child: setOps(a2, b2, d),
			queries: []rangeQuery{
				{nil, nil, false, overwritten},
				{overwritten[1].Key, overwritten[3].Key, false, overwritten[1:3]},
				{nil, nil, true, reverse(overwritten)},
			},
		},
		"child deletes hide parent values": {
			pre:   setOps(a, c, d),
			child: delOps(a, b, d),
			queries: []rangeQuery{
				{nil, nil, false, []Model{c}},
				{nil, nil, true, []Model{c}},
				{nil, c.Key, false, nil},
			},
		},
		"random content": randomIterCase(),
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			base, cleanup := s.makeBase()
			defer cleanup()
			tc.verify(t, base)
		})
	}
}

func randomIterCase() iterCase {
	const size = 40
	parent := randModels(size, 8, 20)
	child := randModels(size, 8, 20)
	gone := randModels(10, 8, 20)
	all := sortModels(append(append([]Model{}, parent...), child...))

	return iterCase{
		pre:   append(setOps(parent...), delOps(gone...)...),
		child: append(setOps(child...), delOps(gone...)...),
		queries: []rangeQuery{
			{nil, nil, false, all},
			{all[10].Key, nil, false, all[10:]},
			{nil, all[size-8].Key, false, all[:size-8]},
			{all[17].Key, all[28].Key, false, all[17:28]},
			{nil, nil, true, reverse(all)},
			{all[34].Key, nil, true, reverse(all[34:])},
			{nil, all[19].Key, true, reverse(all[:19])},
			{all[6].Key, all[26].Key, true, reverse(all[6:26])},
		},
	}
}

// AssertGetHas fails the test unless the store returns given value for the
// key and reports its presence as expected.
func AssertGetHas(t testing.TB, kv ReadOnlyKVStore, key, val []byte, has bool) {
	t.Helper()
	got, err := kv.Get(key)
	assert.Nil(t, err)
	if !bytes.Equal(val, got) {
		t.Fatalf("%q: want value %q, got %q", key, val, got)
	}
	exists, err := kv.Has(key)
	assert.Nil(t, err)
	assert.Equal(t, has, exists)
}

type iterCase struct {
	pre     []Op
	child   []Op
	queries []rangeQuery
}

type rangeQuery struct {
	start    []byte
	end      []byte
	reverse  bool
	expected []Model
}

func (ic iterCase) verify(t testing.TB, base CacheableKVStore) {
	t.Helper()
	for _, op := range ic.pre {
		assert.Nil(t, op.Apply(base))
	}
	child := base.CacheWrap()
	for _, op := range ic.child {
		assert.Nil(t, op.Apply(child))
	}

	for qi, q := range ic.queries {
		var (
			it  Iterator
			err error
		)
		if q.reverse {
			it, err = child.ReverseIterator(q.start, q.end)
		} else {
			it, err = child.Iterator(q.start, q.end)
		}
		assert.Nil(t, err)

		for i, want := range q.expected {
			key, value, err := it.Next()
			if err != nil {
				t.Fatalf("query %d: item %d: %+v", qi, i, err)
			}
			if !bytes.Equal(want.Key, key) || !bytes.Equal(want.Value, value) {
				t.Fatalf("query %d: item %d: want %X, got %X", qi, i, want.Key, key)
			}
		}
		if _, _, err := it.Next(); !errors.ErrIteratorDone.Is(err) {
			t.Fatalf("query %d: want iterator done, got %+v", qi, err)
		}
		it.Release()
	}
}

func randModels(count, keySize, valueSize int) []Model {
	models := make([]Model, count)
	for i := range models {
		models[i] = community.Pair(randBytes(keySize), randBytes(valueSize))
	}
	return models
}

func randBytes(length int) []byte {
	res := make([]byte, length)
	if _, err := rand.Read(res); err != nil {
		panic(err)
	}
	return res
}

func reverse(models []Model) []Model {
	res := make([]Model, len(models))
	for i, m := range models {
		res[len(models)-1-i] = m
	}
	return res
}

func sortModels(models []Model) []Model {
	res := make([]Model, len(models))
	copy(res, models)
	sort.Slice(res, func(i, j int) bool {
		return bytes.Compare(res[i].Key, res[j].Key) < 0
	})
	return res
}

func setOps(ms ...Model) []Op {
	res := make([]Op, len(ms))
	for i, m := range ms {
		res[i] = SetOp(m.Key, m.Value)
	}
	return res
}

func delOps(ms ...Model) []Op {
	res := make([]Op, len(ms))
	for i, m := range ms {
		res[i] = DelOp(m.Key)
	}
	return res
}
