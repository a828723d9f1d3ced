package store

import (
	"bytes"

	"github.com/google/btree"
	"github.com/iov-one/rainbow/errors"
)

///////////////////////////////////////////////////////
// From Items to Iterator

// btreeIter walks over a snapshot of btree items taken when the iterator
// was created. The cache of a single invocation is small, so copying the
// range is cheaper than keeping the tree locked for the iterator lifetime.
type btreeIter struct {
	items []btree.Item
	idx   int
}

// source marks where the current item comes from
type source int32

const (
	us source = iota
	parent
	both
	none
)

func collectBtree(bt *btree.BTree, start, end []byte) []btree.Item {
	var items []btree.Item
	insert := func(item btree.Item) bool {
		items = append(items, item)
		return true
	}
	switch {
	case start == nil && end == nil:
		bt.Ascend(insert)
	case start == nil:
		bt.AscendLessThan(bkey{end}, insert)
	case end == nil:
		bt.AscendGreaterOrEqual(bkey{start}, insert)
	default:
		bt.AscendRange(bkey{start}, bkey{end}, insert)
	}
	return items
}

func ascendBtree(bt *btree.BTree, start, end []byte) *btreeIter {
	return &btreeIter{items: collectBtree(bt, start, end)}
}

func descendBtree(bt *btree.BTree, start, end []byte) *btreeIter {
	items := collectBtree(bt, start, end)
	for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
		items[i], items[j] = items[j], items[i]
	}
	return &btreeIter{items: items}
}

func (b *btreeIter) wrap(parent Iterator, ascending bool) (*itemIter, error) {
	iter := &itemIter{
		wrap:      b,
		parent:    parent,
		ascending: ascending,
	}
	if err := iter.skipAllDeleted(); err != nil {
		iter.Close()
		return nil, err
	}
	return iter, nil
}

func (b *btreeIter) next() {
	b.idx++
}

// get requires this is valid, gets what we are pointing at
func (b *btreeIter) get() keyer {
	return b.items[b.idx].(keyer)
}

func (b *btreeIter) valid() bool {
	return b.idx < len(b.items)
}

func (b *btreeIter) close() {
	b.items = nil
	b.idx = 0
}

type itemIter struct {
	wrap *btreeIter
	// if we are iterating in a cache-wrap (and who isn't),
	// we need to combine this iterator with the parent
	parent    Iterator
	ascending bool
}

//------- public facing interface ------
var _ Iterator = (*itemIter)(nil)

// Valid implements Iterator and returns true iff it can be read
func (i *itemIter) Valid() bool {
	return i.wrap.valid() || i.parentValid()
}

// Next moves the iterator to the next sequential key in the database, as
// defined by order of iteration.
func (i *itemIter) Next() error {
	// advance either us, parent, or both
	switch i.firstKey() {
	case us:
		i.wrap.next()
	case both:
		i.wrap.next()
		if err := i.parent.Next(); err != nil {
			return err
		}
	case parent:
		if err := i.parent.Next(); err != nil {
			return err
		}
	default:
		return errors.Wrap(errors.ErrDatabase, "advanced past the end")
	}

	// keep advancing over all deleted entries
	return i.skipAllDeleted()
}

// Key returns the key of the cursor.
func (i *itemIter) Key() (key []byte) {
	switch i.firstKey() {
	case us, both:
		return i.wrap.get().Key()
	case parent:
		return i.parent.Key()
	default:
		panic("advanced past the end")
	}
}

// Value returns the value of the cursor.
func (i *itemIter) Value() (value []byte) {
	switch i.firstKey() {
	case us, both:
		return i.wrap.get().(setItem).value
	case parent:
		return i.parent.Value()
	default:
		panic("advanced past the end")
	}
}

// Close releases the Iterator.
func (i *itemIter) Close() {
	if i.parent != nil {
		i.parent.Close()
	}
	i.wrap.close()
}

// skipAllDeleted loops and skips any number of deleted items
func (i *itemIter) skipAllDeleted() error {
	for {
		more, err := i.skipDeleted()
		if err != nil {
			return err
		}
		if !more {
			return nil
		}
	}
}

// skipDeleted jumps over all elements we can safely fast forward
// return true if skipped, so we can skip again
func (i *itemIter) skipDeleted() (bool, error) {
	src := i.firstKey()
	if src != us && src != both {
		return false, nil
	}
	if _, ok := i.wrap.get().(deletedItem); !ok {
		return false, nil
	}
	i.wrap.next()
	// if parent had the same key, advance parent as well
	if src == both {
		if err := i.parent.Next(); err != nil {
			return false, err
		}
	}
	return true, nil
}

// firstKey selects the iterator with the key that comes first in the
// iteration order, if any
func (i *itemIter) firstKey() source {
	// if only one or none is valid, it is clear which to use
	if !i.parentValid() {
		if !i.wrap.valid() {
			return none
		}
		return us
	} else if !i.wrap.valid() {
		return parent
	}

	cmp := bytes.Compare(i.parent.Key(), i.wrap.get().Key())
	if !i.ascending {
		cmp = -cmp
	}
	switch {
	case cmp < 0:
		return parent
	case cmp > 0:
		return us
	default:
		return both
	}
}

// makes sure the parent is non-nil before checking if it is valid
func (i *itemIter) parentValid() bool {
	return (i.parent != nil) && i.parent.Valid()
}
