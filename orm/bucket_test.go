package orm

import (
	"testing"

	"github.com/iov-one/rainbow/errors"
	"github.com/iov-one/rainbow/rainbowtest/assert"
	"github.com/iov-one/rainbow/store"
)

func TestBucketName(t *testing.T) {
	obj := NewSimpleObj(nil, &counter{})

	assert.Panics(t, func() {
		// An invalid bucket name must crash.
		NewBucket("l33t", obj)
	})
}

func TestBucketCannotSaveInvalid(t *testing.T) {
	o := NewSimpleObj([]byte("mykey"), &counter{Count: 1})
	b := NewBucket("mybucket", o)

	db := store.MemStore()
	if err := b.Save(db, o); !errors.ErrEmpty.Is(err) {
		t.Fatalf("invalid object must not save: %s", err)
	}
	ok, err := b.Has(db, []byte("mykey"))
	assert.Nil(t, err)
	assert.Equal(t, false, ok)
}

func TestBucketGetSaveDelete(t *testing.T) {
	b := NewBucket("cnts", NewSimpleObj(nil, &counter{}))
	db := store.MemStore()

	obj, err := b.Get(db, []byte("one"))
	assert.Nil(t, err)
	assert.Nil(t, obj)

	assert.Nil(t, b.Save(db, newCounterObj("one", 848)))

	// the value is stored under the prefixed key
	raw, err := db.Get([]byte("cnts:one"))
	assert.Nil(t, err)
	if raw == nil {
		t.Fatal("value not stored under bucket prefix")
	}

	obj, err = b.Get(db, []byte("one"))
	assert.Nil(t, err)
	assert.Equal(t, []byte("one"), obj.Key())
	assert.Equal(t, &counter{Count: 848, Label: "one"}, obj.Value())

	assert.Nil(t, b.Delete(db, []byte("one")))
	obj, err = b.Get(db, []byte("one"))
	assert.Nil(t, err)
	assert.Nil(t, obj)
}

func TestBucketParseGarbage(t *testing.T) {
	b := NewBucket("cnts", NewSimpleObj(nil, &counter{}))
	db := store.MemStore()
	assert.Nil(t, db.Set([]byte("cnts:bad"), []byte{0xff, 0xff, 0xff}))

	_, err := b.Get(db, []byte("bad"))
	assert.IsErr(t, errors.ErrModel, err)
}

func TestBucketPrefixScan(t *testing.T) {
	b := NewBucket("cnts", NewSimpleObj(nil, &counter{}))
	other := NewBucket("cntsx", NewSimpleObj(nil, &counter{}))
	db := store.MemStore()

	for _, k := range []string{"b1", "a2", "a1", "c"} {
		assert.Nil(t, b.Save(db, newCounterObj(k, 1)))
	}
	// must not leak into the scan of the first bucket
	assert.Nil(t, other.Save(db, newCounterObj("a3", 1)))

	keys := func(objs []Object) []string {
		var res []string
		for _, o := range objs {
			res = append(res, string(o.Key()))
		}
		return res
	}

	all, err := b.PrefixScan(db, nil, false)
	assert.Nil(t, err)
	assert.Equal(t, []string{"a1", "a2", "b1", "c"}, keys(all))

	as, err := b.PrefixScan(db, []byte("a"), false)
	assert.Nil(t, err)
	assert.Equal(t, []string{"a1", "a2"}, keys(as))

	rev, err := b.PrefixScan(db, []byte("a"), true)
	assert.Nil(t, err)
	assert.Equal(t, []string{"a2", "a1"}, keys(rev))

	none, err := b.PrefixScan(db, []byte("z"), false)
	assert.Nil(t, err)
	assert.Equal(t, 0, len(none))
}

func TestPrefixRange(t *testing.T) {
	cases := map[string]struct {
		prefix  []byte
		wantEnd []byte
	}{
		"empty":             {nil, nil},
		"simple":            {[]byte{1, 2}, []byte{1, 3}},
		"trailing overflow": {[]byte{1, 0xff}, []byte{2}},
		"no end":            {[]byte{0xff, 0xff}, nil},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			_, end := prefixRange(tc.prefix)
			assert.Equal(t, tc.wantEnd, end)
		})
	}
}
