package htable

import "github.com/pkg/errors"

// Resize moves the table onto a bucket array of NextPrime(capacity) buckets.
// Nodes are relinked in place; keys and values are never copied or
// reallocated. A target below Count is honored, it only lengthens chains.
// Targets above MaxCapacity fail with ErrInvalidArgument.
// If the new array cannot be allocated the table is left untouched.
func (t *Table[K, V]) Resize(capacity int) error {
	if t.buckets == nil {
		return ErrTornDown
	}
	if capacity < 0 || int64(capacity) > MaxCapacity {
		return errors.Wrapf(ErrInvalidArgument, "resize to %d", capacity)
	}

	newCap := NextPrime(capacity)
	if newCap < t.count {
		t.log.Warn("resizing below entry count", "capacity", newCap, "count", t.count)
	}

	if err := t.alloc.Reserve(bucketBytes(newCap)); err != nil {
		t.log.Error("bucket allocation failed during resize", "capacity", newCap, "error", err)
		return &allocError{what: "buckets", err: err}
	}

	old := t.buckets
	next := make([]ref, newCap)
	for i, head := range old {
		for r := head; r != nilRef; {
			n := t.at(r)
			following := n.next
			idx := int(n.hash % uint32(newCap))
			n.next = next[idx]
			next[idx] = r
			r = following
		}
		old[i] = nilRef
	}

	t.buckets = next
	t.alloc.Release(bucketBytes(len(old)))
	t.resizes++
	t.log.Debug("resized", "from", len(old), "to", newCap, "count", t.count)
	return nil
}
