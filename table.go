package htable

import (
	"bytes"
	"log/slog"
	"unsafe"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

// maxLoad is the load factor at which Put grows the bucket array.
const maxLoad = 0.75

// Table is a separately chained hash table with fixed-size keys and values.
// Keys are equal when their raw bytes are equal. Capacity is always prime.
//
// A Table is not safe for concurrent use.
type Table[K, V any] struct {
	buckets []ref
	nodes   []node[K, V]
	free    ref
	count   int
	resizes uint64

	hasher Hasher
	log    *slog.Logger
	alloc  Allocator
}

// New allocates and initializes a table.
func New[K, V any](opts ...Option) (*Table[K, V], error) {
	t := new(Table[K, V])
	if err := t.Init(opts...); err != nil {
		return nil, err
	}
	return t, nil
}

// Init initializes a table in caller-provided storage, such as a struct field
// or a stack variable. A torn down table may be initialized again.
func (t *Table[K, V]) Init(opts ...Option) error {
	if t == nil {
		return errors.Wrap(ErrInvalidArgument, "init on nil table")
	}

	var merr *multierror.Error
	if err := checkPlain(typeOf[K](), true); err != nil {
		merr = multierror.Append(merr, errors.Wrapf(ErrInvalidArgument, "key type: %v", err))
	}
	if err := checkPlain(typeOf[V](), false); err != nil {
		merr = multierror.Append(merr, errors.Wrapf(ErrInvalidArgument, "value type: %v", err))
	}
	o := defaultOptions()
	for _, apply := range opts {
		if err := apply(&o); err != nil {
			merr = multierror.Append(merr, err)
		}
	}
	if err := merr.ErrorOrNil(); err != nil {
		return err
	}

	if err := o.alloc.Reserve(bucketBytes(o.capacity)); err != nil {
		o.log.Error("bucket allocation failed during init", "capacity", o.capacity, "error", err)
		return &allocError{what: "buckets", err: err}
	}

	t.Deinit()
	*t = Table[K, V]{
		buckets: make([]ref, o.capacity),
		hasher:  o.hasher,
		log:     o.log,
		alloc:   o.alloc,
	}
	return nil
}

func bucketBytes(n int) int {
	return n * int(unsafe.Sizeof(nilRef))
}

func (t *Table[K, V]) hashKey(key *K) uint32 {
	return t.hasher(bytesOf(key))
}

func (t *Table[K, V]) bucketOf(hash uint32) int {
	return int(hash % uint32(len(t.buckets)))
}

// lookup scans a chain, comparing cached hashes before key bytes.
func (t *Table[K, V]) lookup(key *K, hash uint32, idx int) ref {
	kb := bytesOf(key)
	for r := t.buckets[idx]; r != nilRef; r = t.at(r).next {
		n := t.at(r)
		if n.hash == hash && bytes.Equal(bytesOf(&n.key), kb) {
			return r
		}
	}
	return nilRef
}

// Put inserts key with value, or overwrites the value when key is present.
//
// When the table is at or above 0.75 load before the insert, it first grows
// to the prime at or above twice its capacity, capped at MaxCapacity. If that growth succeeds but the
// node allocation then fails, the table keeps its larger capacity and the
// entry is not inserted.
func (t *Table[K, V]) Put(key K, value V) error {
	if t.buckets == nil {
		return ErrTornDown
	}

	if float64(t.count)/float64(len(t.buckets)) >= maxLoad {
		// At MaxCapacity the table stops growing and chains lengthen instead.
		if target := int(min(2*int64(len(t.buckets)), MaxCapacity)); target > len(t.buckets) {
			if err := t.Resize(target); err != nil {
				return errors.Wrap(err, "grow before put")
			}
		}
	}

	hash := t.hashKey(&key)
	idx := t.bucketOf(hash)
	if r := t.lookup(&key, hash, idx); r != nilRef {
		t.at(r).value = value
		return nil
	}

	r, err := t.newNode(&key, &value, hash)
	if err != nil {
		return err
	}
	t.at(r).next = t.buckets[idx]
	t.buckets[idx] = r
	t.count++
	return nil
}

// Find returns a pointer to the stored value for key, or nil. The pointer is
// only valid until the next Put, Delete, Resize, Clear or Deinit.
func (t *Table[K, V]) Find(key K) *V {
	if t.buckets == nil || t.count == 0 {
		return nil
	}
	hash := t.hashKey(&key)
	if r := t.lookup(&key, hash, t.bucketOf(hash)); r != nilRef {
		return &t.at(r).value
	}
	return nil
}

// Get copies the value for key into out and reports whether key was found.
// out is left untouched when it was not.
func (t *Table[K, V]) Get(key K, out *V) bool {
	v := t.Find(key)
	if v == nil {
		return false
	}
	if out != nil {
		*out = *v
	}
	return true
}

// Contains reports whether key is present.
func (t *Table[K, V]) Contains(key K) bool {
	return t.Find(key) != nil
}

// Delete removes key and reports whether it was present. Deleting an absent
// key is a no-op.
func (t *Table[K, V]) Delete(key K) bool {
	if t.buckets == nil {
		return false
	}
	if t.count == 0 {
		t.log.Debug("delete on empty table")
		return false
	}

	hash := t.hashKey(&key)
	idx := t.bucketOf(hash)
	kb := bytesOf(&key)

	prev := nilRef
	for r := t.buckets[idx]; r != nilRef; r = t.at(r).next {
		n := t.at(r)
		if n.hash != hash || !bytes.Equal(bytesOf(&n.key), kb) {
			prev = r
			continue
		}
		if prev != nilRef {
			t.at(prev).next = n.next
		} else {
			t.buckets[idx] = n.next
		}
		t.destroyNode(r)
		t.count--
		return true
	}

	t.log.Debug("delete of absent key", "bucket", idx)
	return false
}

// Clear removes every entry. Capacity is kept.
func (t *Table[K, V]) Clear() {
	if t.buckets == nil {
		return
	}
	for i, head := range t.buckets {
		for r := head; r != nilRef; {
			next := t.at(r).next
			t.destroyNode(r)
			r = next
		}
		t.buckets[i] = nilRef
	}
	t.nodes = t.nodes[:0]
	t.free = nilRef
	t.count = 0
}

// Deinit clears the table and releases its bucket array. Calling it again,
// or on a nil table, does nothing.
func (t *Table[K, V]) Deinit() {
	if t == nil || t.buckets == nil {
		return
	}
	t.Clear()
	t.alloc.Release(bucketBytes(len(t.buckets)))
	t.buckets = nil
	t.nodes = nil
}

// Destroy tears down *tp and sets it to nil. It is safe to call on a nil
// handle or twice.
func Destroy[K, V any](tp **Table[K, V]) {
	if tp == nil || *tp == nil {
		return
	}
	(*tp).Deinit()
	*tp = nil
}

// Count returns the number of entries.
func (t *Table[K, V]) Count() int { return t.count }

// Empty reports whether the table has no entries.
func (t *Table[K, V]) Empty() bool { return t.count == 0 }

// Capacity returns the bucket count; zero after Deinit.
func (t *Table[K, V]) Capacity() int { return len(t.buckets) }

// LoadFactor returns Count/Capacity.
func (t *Table[K, V]) LoadFactor() float64 {
	if len(t.buckets) == 0 {
		return 0
	}
	return float64(t.count) / float64(len(t.buckets))
}

// KeySize returns the number of key bytes compared and hashed.
func (t *Table[K, V]) KeySize() int {
	var k K
	return int(unsafe.Sizeof(k))
}

// ValueSize returns the number of bytes stored per value.
func (t *Table[K, V]) ValueSize() int {
	var v V
	return int(unsafe.Sizeof(v))
}
