package htable

import (
	"math"
	"unsafe"

	"github.com/pkg/errors"
)

// ref addresses a node in the arena as index+1; the zero ref ends a chain.
type ref int32

const nilRef ref = 0

// maxNodes bounds the arena so every slot stays addressable by a ref.
var maxNodes = math.MaxInt32

var errArenaFull = errors.New("node arena full")

// node is one stored entry. A released node sits on the free list with live
// unset and its key and value zeroed.
type node[K, V any] struct {
	key   K
	value V
	hash  uint32
	next  ref
	live  bool
}

func (t *Table[K, V]) nodeBytes() int {
	return int(unsafe.Sizeof(node[K, V]{}))
}

func (t *Table[K, V]) at(r ref) *node[K, V] {
	return &t.nodes[r-1]
}

// newNode takes a slot from the free list or grows the arena, and fills it
// with copies of key and value. The slot is zeroed before the copy.
func (t *Table[K, V]) newNode(key *K, value *V, hash uint32) (ref, error) {
	if t.free == nilRef && len(t.nodes) >= maxNodes {
		t.log.Error("node arena full", "nodes", len(t.nodes))
		return nilRef, &allocError{what: "node", err: errArenaFull}
	}
	if err := t.alloc.Reserve(t.nodeBytes()); err != nil {
		t.log.Error("node allocation failed", "bytes", t.nodeBytes(), "error", err)
		return nilRef, &allocError{what: "node", err: err}
	}

	var r ref
	if t.free != nilRef {
		r = t.free
		t.free = t.at(r).next
	} else {
		t.nodes = append(t.nodes, node[K, V]{})
		r = ref(len(t.nodes))
	}

	n := t.at(r)
	*n = node[K, V]{}
	n.key = *key
	n.value = *value
	n.hash = hash
	n.live = true
	return r, nil
}

// destroyNode releases the node's key and value and returns its slot to the
// free list. Releasing an already released node only logs.
func (t *Table[K, V]) destroyNode(r ref) {
	if r == nilRef || int(r) > len(t.nodes) {
		return
	}
	n := t.at(r)
	if !n.live {
		t.log.Warn("node already released", "slot", int(r)-1)
		return
	}
	*n = node[K, V]{next: t.free}
	t.free = r
	t.alloc.Release(t.nodeBytes())
}
