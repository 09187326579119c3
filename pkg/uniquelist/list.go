// Package uniquelist provides an insertion-ordered collection that rejects
// duplicates under an injected strict ordering.
//
// Internally two structures are cross-linked: a doubly linked node ring
// holding the insertion order and a B-tree index holding the comparator
// order. Every stored key owns exactly one node and one index entry, and
// the links between them form a bijection. Membership tests and inserts
// cost O(log n) against the index; reporting an insertion-order position
// costs O(n), a documented trade the caller accepts.
package uniquelist

import (
	"errors"
	"fmt"

	"github.com/google/btree"
)

var (
	ErrIndexOutOfRange = errors.New("uniquelist: index out of range")
	ErrFlagLength      = errors.New("uniquelist: flag length mismatch")
	ErrNotAscending    = errors.New("uniquelist: indexes not strictly ascending")
	ErrInvalidIterator = errors.New("uniquelist: invalid iterator")
)

const btreeDegree = 8

// entry lives in the sorted index and points back at its insertion node.
type entry[K any] struct {
	key  K
	node *node[K]
}

// node lives in the insertion ring and points at its index entry.
// The list sentinel is the node with ent == nil.
type node[K any] struct {
	prev, next *node[K]
	ent        *entry[K]
}

// UniqueList is an ordered collection of keys unique under the ordering
// supplied at construction. Keys must not be mutated once stored. The
// collection is not safe for concurrent use; a caller embedding it in a
// concurrent host must serialize all access with a single exclusive lock.
type UniqueList[K any] struct {
	less func(a, b K) bool
	tree *btree.BTreeG[*entry[K]]
	root node[K]
	size int
}

// New returns an empty list ordered by less. Two keys are considered the
// same element when neither orders strictly before the other.
func New[K any](less func(a, b K) bool) *UniqueList[K] {
	l := &UniqueList[K]{less: less}
	l.tree = btree.NewG(btreeDegree, func(a, b *entry[K]) bool {
		return less(a.key, b.key)
	})
	l.root.prev = &l.root
	l.root.next = &l.root
	return l
}

// Len returns the number of stored keys.
func (l *UniqueList[K]) Len() int { return l.size }

// Empty reports whether the list holds no keys.
func (l *UniqueList[K]) Empty() bool { return l.size == 0 }

// Clear removes every key. Outstanding iterators are invalidated.
func (l *UniqueList[K]) Clear() {
	for n := l.root.next; n != &l.root; {
		next := n.next
		n.prev, n.next, n.ent = nil, nil, nil
		n = next
	}
	l.root.prev = &l.root
	l.root.next = &l.root
	l.tree.Clear(false)
	l.size = 0
}

// Contains reports whether a key equivalent to k is stored.
func (l *UniqueList[K]) Contains(k K) bool {
	return l.tree.Has(&entry[K]{key: k})
}

// PushBack inserts k at the end of the insertion order unless an
// equivalent key is already stored. It returns the insertion-order index
// of the stored equivalent and whether k was newly added.
func (l *UniqueList[K]) PushBack(k K) (int, bool) {
	return l.insertNode(&l.root, k, nil)
}

// PushBackWithHook is PushBack with deferred materialization: when no
// equivalent key exists, materialize is called exactly once and its result
// is what gets stored; when an equivalent exists, materialize is never
// called. materialize must return a key equivalent to its argument under
// the list ordering (a deep copy is).
func (l *UniqueList[K]) PushBackWithHook(k K, materialize func(K) K) (int, bool) {
	return l.insertNode(&l.root, k, materialize)
}

// InsertBefore inserts k immediately before the element pos refers to
// (or at the end when pos is the end iterator). When an equivalent key is
// already stored, pos is ignored and the existing index is returned.
func (l *UniqueList[K]) InsertBefore(pos *InsertionIterator[K], k K) (int, bool, error) {
	return l.insertBefore(pos, k, nil)
}

// InsertBeforeWithHook combines InsertBefore with the deferred
// materialization protocol of PushBackWithHook.
func (l *UniqueList[K]) InsertBeforeWithHook(pos *InsertionIterator[K], k K, materialize func(K) K) (int, bool, error) {
	return l.insertBefore(pos, k, materialize)
}

func (l *UniqueList[K]) insertBefore(pos *InsertionIterator[K], k K, materialize func(K) K) (int, bool, error) {
	if pos == nil || pos.l != l || pos.n == nil {
		return 0, false, ErrInvalidIterator
	}
	if pos.n != &l.root && pos.n.ent == nil {
		// The referenced element was removed.
		return 0, false, ErrInvalidIterator
	}
	idx, isNew := l.insertNode(pos.n, k, materialize)
	return idx, isNew, nil
}

// insertNode places a new key directly before at, unless an equivalent
// key already exists. Both structures are updated before returning, so no
// caller ever observes a half-inserted state.
func (l *UniqueList[K]) insertNode(at *node[K], k K, materialize func(K) K) (int, bool) {
	if ent, ok := l.tree.Get(&entry[K]{key: k}); ok {
		return l.indexOf(ent.node), false
	}
	if materialize != nil {
		k = materialize(k)
	}
	ent := &entry[K]{key: k}
	n := &node[K]{prev: at.prev, next: at, ent: ent}
	at.prev.next = n
	at.prev = n
	ent.node = n
	l.tree.ReplaceOrInsert(ent)
	l.size++
	return l.indexOf(n), true
}

// indexOf walks the ring from the front. O(n) by design.
func (l *UniqueList[K]) indexOf(n *node[K]) int {
	i := 0
	for cur := l.root.next; cur != &l.root; cur = cur.next {
		if cur == n {
			return i
		}
		i++
	}
	return -1
}

// removeEntry unlinks one element from both structures.
func (l *UniqueList[K]) removeEntry(ent *entry[K]) {
	l.tree.Delete(ent)
	n := ent.node
	n.prev.next = n.next
	n.next.prev = n.prev
	n.prev, n.next, n.ent = nil, nil, nil
	ent.node = nil
	l.size--
}

// Erase removes the element it refers to and returns an iterator to the
// element that followed it in insertion order.
func (l *UniqueList[K]) Erase(it *InsertionIterator[K]) (*InsertionIterator[K], error) {
	if it == nil || it.l != l || !it.Valid() {
		return nil, ErrInvalidIterator
	}
	succ := it.n.next
	l.removeEntry(it.n.ent)
	return &InsertionIterator[K]{l: l, n: succ}, nil
}

// EraseSorted removes the element it refers to and returns an iterator to
// the element that followed it in comparator order.
func (l *UniqueList[K]) EraseSorted(it *SortedIterator[K]) (*SortedIterator[K], error) {
	if it == nil || it.l != l || !it.Valid() {
		return nil, ErrInvalidIterator
	}
	succ := l.sortedSuccessor(it.ent)
	l.removeEntry(it.ent)
	return &SortedIterator[K]{l: l, ent: succ}, nil
}

// EraseAt removes the element at the given insertion-order index.
func (l *UniqueList[K]) EraseAt(index int) error {
	if index < 0 || index >= l.size {
		return fmt.Errorf("%w: %d with size %d", ErrIndexOutOfRange, index, l.size)
	}
	n := l.root.next
	for i := 0; i < index; i++ {
		n = n.next
	}
	l.removeEntry(n.ent)
	return nil
}

// EraseMany removes the elements at the given insertion-order indexes,
// which must be strictly ascending and within range at call time. The
// indexes are validated up front and the removals happen in one forward
// pass over the ring, so the whole operation is linear in the list size.
func (l *UniqueList[K]) EraseMany(indexes []int) error {
	last := -1
	for _, idx := range indexes {
		if idx <= last {
			return fmt.Errorf("%w: %d after %d", ErrNotAscending, idx, last)
		}
		if idx < 0 || idx >= l.size {
			return fmt.Errorf("%w: %d with size %d", ErrIndexOutOfRange, idx, l.size)
		}
		last = idx
	}
	cur := l.root.next
	pos := 0
	for _, idx := range indexes {
		for pos < idx {
			cur = cur.next
			pos++
		}
		next := cur.next
		l.removeEntry(cur.ent)
		cur = next
		pos++
	}
	return nil
}

// EraseFlagged removes every element whose flag is set. flags must align
// 1:1 with the current insertion order.
func (l *UniqueList[K]) EraseFlagged(flags []bool) error {
	if len(flags) != l.size {
		return fmt.Errorf("%w: expected size %d but got %d", ErrFlagLength, l.size, len(flags))
	}
	cur := l.root.next
	for _, f := range flags {
		next := cur.next
		if f {
			l.removeEntry(cur.ent)
		}
		cur = next
	}
	return nil
}

// Keys returns the stored keys in insertion order.
func (l *UniqueList[K]) Keys() []K {
	out := make([]K, 0, l.size)
	for n := l.root.next; n != &l.root; n = n.next {
		out = append(out, n.ent.key)
	}
	return out
}

// SortedKeys returns the stored keys in comparator order.
func (l *UniqueList[K]) SortedKeys() []K {
	out := make([]K, 0, l.size)
	l.tree.Ascend(func(e *entry[K]) bool {
		out = append(out, e.key)
		return true
	})
	return out
}
