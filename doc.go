/*
Package htable provides a separately chained hash table for fixed-size,
plain-memory keys and values.

Keys and values are Go value types made only of booleans, numbers, arrays and
structs (no pointers, strings, slices, maps or interfaces). Two keys are equal
exactly when their raw bytes are equal, so key types must not contain padding.

Basic usage:

	import "github.com/theflywheel/htable"

	t, err := htable.New[uint64, uint64]()
	if err != nil {
		log.Fatal(err)
	}
	defer htable.Destroy(&t)

	if err := t.Put(42, 100); err != nil {
		log.Fatal(err)
	}

	var v uint64
	if t.Get(42, &v) {
		fmt.Println("Value:", v)
	}

Features:

  - Bucket array length is always prime, starting at 17 and capped at
    MaxCapacity
  - Grows to the next prime at or above double capacity when the load factor
    reaches 0.75 before an insert
  - Resize relinks existing nodes; keys and values are never copied
  - Each node caches its 32-bit digest to reject mismatches cheaply
  - Pluggable digest (XXH32 with a zero seed by default; folded xxHash64 and
    FNV-1a available)
  - Pluggable Allocator so allocation failure can be budgeted and observed

Implementation Details:

Nodes live in an arena slice and are addressed by index. Each bucket holds the
index of the head of its chain, and new entries are prepended, so the newest
entry in a bucket is found first. Deleted nodes go on a free list and are
zeroed before reuse.

A Table is not safe for concurrent use. Callers sharing one must serialize
every call, including iteration.
*/
package htable
