package store

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertGetHas(t testing.TB, kv ReadOnlyKVStore, key, want []byte) {
	t.Helper()
	got, err := kv.Get(key)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	has, err := kv.Has(key)
	require.NoError(t, err)
	assert.Equal(t, want != nil, has)
}

// TestBTreeCacheGetSet does basic sanity checks on our cache
func TestBTreeCacheGetSet(t *testing.T) {
	base := MemStore()

	k, v := []byte("french"), []byte("fry")
	assertGetHas(t, base, k, nil)
	require.NoError(t, base.Set(k, v))
	assertGetHas(t, base, k, v)

	// now layer another btree on top and make sure that we get
	// base data
	cache := base.CacheWrap()
	assertGetHas(t, cache, k, v)

	// writing more data is only visible in the cache
	k2, v2 := []byte("LA"), []byte("Dodgers")
	require.NoError(t, cache.Set(k2, v2))
	assertGetHas(t, cache, k2, v2)
	assertGetHas(t, base, k2, nil)

	// we can write the cache to the base layer...
	require.NoError(t, cache.Write())
	assertGetHas(t, base, k, v)
	assertGetHas(t, base, k2, v2)

	// we can discard one
	k3, v3 := []byte("Bayern"), []byte("Munich")
	c2 := base.CacheWrap()
	require.NoError(t, c2.Set(k3, v3))
	require.NoError(t, c2.Delete(k))
	c2.Discard()
	assertGetHas(t, base, k, v)
	assertGetHas(t, base, k3, nil)

	// and commit another
	c3 := base.CacheWrap()
	require.NoError(t, c3.Delete(k))
	require.NoError(t, c3.Write())
	assertGetHas(t, base, k, nil)
	assertGetHas(t, base, k2, v2)
}

// TestBTreeCacheNestedDiscard ensures that discarding the outer cache drops
// everything written by nested caches, even when those were written.
func TestBTreeCacheNestedDiscard(t *testing.T) {
	base := MemStore()
	outer := base.CacheWrap()
	require.NoError(t, outer.Set([]byte("outer"), []byte("1")))

	inner := outer.CacheWrap()
	require.NoError(t, inner.Set([]byte("inner"), []byte("2")))
	require.NoError(t, inner.Write())
	assertGetHas(t, outer, []byte("inner"), []byte("2"))

	outer.Discard()
	assertGetHas(t, base, []byte("outer"), nil)
	assertGetHas(t, base, []byte("inner"), nil)
}

// TestBTreeCacheConflicts checks that we can handle
// overwriting values and deleting underlying values
func TestBTreeCacheConflicts(t *testing.T) {
	parent := MemStore().CacheWrap()
	require.NoError(t, parent.Set([]byte("k1"), []byte("v1")))
	require.NoError(t, parent.Set([]byte("k2"), []byte("v2")))

	child := parent.CacheWrap()
	require.NoError(t, child.Set([]byte("k1"), []byte("v11")))
	require.NoError(t, child.Set([]byte("k3"), []byte("v7")))
	require.NoError(t, child.Delete([]byte("k2")))

	// the parent is unaffected
	assertGetHas(t, parent, []byte("k1"), []byte("v1"))
	assertGetHas(t, parent, []byte("k2"), []byte("v2"))
	assertGetHas(t, parent, []byte("k3"), nil)

	// the child shows changes
	assertGetHas(t, child, []byte("k1"), []byte("v11"))
	assertGetHas(t, child, []byte("k2"), nil)
	assertGetHas(t, child, []byte("k3"), []byte("v7"))

	require.NoError(t, child.Write())
	assertGetHas(t, parent, []byte("k1"), []byte("v11"))
	assertGetHas(t, parent, []byte("k2"), nil)
	assertGetHas(t, parent, []byte("k3"), []byte("v7"))
}

// TestBTreeCacheIterator tests iterating over ranges that
// span both the parent and child caches, combining different
// values, overwrites, and deletes
func TestBTreeCacheIterator(t *testing.T) {
	parent := MemStore()
	for i := 0; i < 10; i += 2 {
		require.NoError(t, parent.Set(key(i), []byte("parent")))
	}

	child := parent.CacheWrap()
	for i := 1; i < 10; i += 2 {
		require.NoError(t, child.Set(key(i), []byte("child")))
	}
	// overwrite one and delete another parent value
	require.NoError(t, child.Set(key(4), []byte("child")))
	require.NoError(t, child.Delete(key(6)))

	want := []Model{
		{Key: key(0), Value: []byte("parent")},
		{Key: key(1), Value: []byte("child")},
		{Key: key(2), Value: []byte("parent")},
		{Key: key(3), Value: []byte("child")},
		{Key: key(4), Value: []byte("child")},
		{Key: key(5), Value: []byte("child")},
		{Key: key(7), Value: []byte("child")},
		{Key: key(8), Value: []byte("parent")},
		{Key: key(9), Value: []byte("child")},
	}

	it, err := child.Iterator(nil, nil)
	require.NoError(t, err)
	verifyIterator(t, want, it)

	it, err = child.Iterator(key(2), key(8))
	require.NoError(t, err)
	verifyIterator(t, want[2:7], it)

	it, err = child.ReverseIterator(nil, nil)
	require.NoError(t, err)
	verifyIterator(t, reverse(want), it)

	it, err = child.ReverseIterator(key(3), nil)
	require.NoError(t, err)
	verifyIterator(t, reverse(want[3:]), it)
}

// TestSliceIterator makes sure the basic slice iterator works.
func TestSliceIterator(t *testing.T) {
	models := []Model{
		{Key: key(1), Value: []byte("a")},
		{Key: key(2), Value: []byte("b")},
	}
	verifyIterator(t, models, NewSliceIterator(models))

	it := NewSliceIterator(models)
	require.True(t, it.Valid())
	it.Close()
	require.False(t, it.Valid())
	require.Error(t, it.Next(), "calling Next on invalid iterator must return error")
}

func verifyIterator(t *testing.T, models []Model, iter Iterator) {
	t.Helper()
	for i := 0; i < len(models); i++ {
		require.True(t, iter.Valid(), "%d", i)
		assert.Equal(t, models[i].Key, iter.Key(), "%d", i)
		assert.Equal(t, models[i].Value, iter.Value(), "%d", i)
		require.NoError(t, iter.Next())
	}
	assert.False(t, iter.Valid())
	iter.Close()
}

// reverse returns a copy of the slice with elements in reverse order
func reverse(models []Model) []Model {
	max := len(models)
	res := make([]Model, max)
	for i := 0; i < max; i++ {
		res[i] = models[max-1-i]
	}
	return res
}

func key(i int) []byte {
	return []byte(fmt.Sprintf("key-%02d", i))
}
