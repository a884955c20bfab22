package htable

import "iter"

// Iterator is a single-pass cursor over a table's entries, in ascending
// bucket order and newest first within a bucket. It holds no snapshot:
// Put, Delete, Resize, Clear or Deinit during iteration give undefined
// results.
type Iterator[K, V any] struct {
	t      *Table[K, V]
	bucket int // next bucket to scan
	cur    ref // last entry returned
	done   bool
}

// Iterator returns a cursor positioned before the first entry.
func (t *Table[K, V]) Iterator() *Iterator[K, V] {
	return &Iterator[K, V]{t: t}
}

// Next returns the next entry, or ok == false once every remaining bucket is
// empty. After that it keeps returning false.
func (it *Iterator[K, V]) Next() (key K, value V, ok bool) {
	if it.done {
		return key, value, false
	}
	if it.cur != nilRef {
		it.cur = it.t.at(it.cur).next
	}
	for it.cur == nilRef {
		if it.bucket >= len(it.t.buckets) {
			it.done = true
			return key, value, false
		}
		it.cur = it.t.buckets[it.bucket]
		it.bucket++
	}
	n := it.t.at(it.cur)
	return n.key, n.value, true
}

// All ranges over the table's entries with the same order and hazards as
// Iterator.
func (t *Table[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		it := t.Iterator()
		for {
			k, v, ok := it.Next()
			if !ok || !yield(k, v) {
				return
			}
		}
	}
}
