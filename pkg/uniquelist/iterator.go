package uniquelist

// The two iterator kinds resolve to the same logical element through the
// cross-links: an insertion iterator walks the node ring and reaches the
// key via its index entry, a sorted iterator walks the index and reaches
// the ring via the entry's node. Either one is enough to remove an element
// from both structures.
//
// Both kinds are bidirectional and cyclic through a single end position:
// stepping past the last element lands on end, stepping from end wraps to
// the first element of the respective order. Removing an element
// invalidates only iterators that refer to it; Valid reports false for
// those, and every other outstanding iterator is unaffected.

// InsertionIterator traverses the list in insertion order.
type InsertionIterator[K any] struct {
	l *UniqueList[K]
	n *node[K]
}

// Begin returns an iterator on the first element in insertion order, or
// the end position when the list is empty.
func (l *UniqueList[K]) Begin() *InsertionIterator[K] {
	return &InsertionIterator[K]{l: l, n: l.root.next}
}

// End returns the past-the-end position of the insertion order.
func (l *UniqueList[K]) End() *InsertionIterator[K] {
	return &InsertionIterator[K]{l: l, n: &l.root}
}

// Valid reports whether the iterator refers to a live element.
func (it *InsertionIterator[K]) Valid() bool {
	return it.n != nil && it.n.ent != nil
}

// Next advances to the following element. No-op on an invalidated
// iterator.
func (it *InsertionIterator[K]) Next() {
	if it.n != nil && it.n.next != nil {
		it.n = it.n.next
	}
}

// Prev steps back to the preceding element. No-op on an invalidated
// iterator.
func (it *InsertionIterator[K]) Prev() {
	if it.n != nil && it.n.prev != nil {
		it.n = it.n.prev
	}
}

// Key returns the referenced key. Only legal while Valid.
func (it *InsertionIterator[K]) Key() K { return it.n.ent.key }

// Eq reports whether two iterators refer to the same position.
func (it *InsertionIterator[K]) Eq(other *InsertionIterator[K]) bool {
	return other != nil && it.l == other.l && it.n == other.n
}

// Index returns the insertion-order index of the referenced element by
// traversal distance from the front: O(n). Returns Len() for the end
// position and -1 for an invalidated iterator.
func (it *InsertionIterator[K]) Index() int {
	if it.n == &it.l.root {
		return it.l.size
	}
	if !it.Valid() {
		return -1
	}
	return it.l.indexOf(it.n)
}

// Sorted returns the sorted-order iterator for the same element. Only
// legal while Valid.
func (it *InsertionIterator[K]) Sorted() *SortedIterator[K] {
	return &SortedIterator[K]{l: it.l, ent: it.n.ent}
}

// SortedIterator traverses the list in comparator order. The end position
// is represented by a nil entry.
type SortedIterator[K any] struct {
	l   *UniqueList[K]
	ent *entry[K]
}

// SortedBegin returns an iterator on the smallest element, or the end
// position when the list is empty.
func (l *UniqueList[K]) SortedBegin() *SortedIterator[K] {
	ent, _ := l.tree.Min()
	return &SortedIterator[K]{l: l, ent: ent}
}

// SortedEnd returns the past-the-end position of the comparator order.
func (l *UniqueList[K]) SortedEnd() *SortedIterator[K] {
	return &SortedIterator[K]{l: l}
}

// Valid reports whether the iterator refers to a live element.
func (it *SortedIterator[K]) Valid() bool {
	return it.ent != nil && it.ent.node != nil
}

// Next advances to the next element in comparator order. From the end
// position it wraps to the smallest element. No-op on an invalidated
// iterator.
func (it *SortedIterator[K]) Next() {
	if it.ent == nil {
		it.ent, _ = it.l.tree.Min()
		return
	}
	if it.ent.node == nil {
		return
	}
	it.ent = it.l.sortedSuccessor(it.ent)
}

// Prev steps back to the previous element in comparator order. From the
// end position it moves to the largest element. No-op on an invalidated
// iterator.
func (it *SortedIterator[K]) Prev() {
	if it.ent == nil {
		it.ent, _ = it.l.tree.Max()
		return
	}
	if it.ent.node == nil {
		return
	}
	it.ent = it.l.sortedPredecessor(it.ent)
}

// Key returns the referenced key. Only legal while Valid.
func (it *SortedIterator[K]) Key() K { return it.ent.key }

// Eq reports whether two iterators refer to the same position.
func (it *SortedIterator[K]) Eq(other *SortedIterator[K]) bool {
	return other != nil && it.l == other.l && it.ent == other.ent
}

// Insertion returns the insertion-order iterator for the same element.
// Only legal while Valid.
func (it *SortedIterator[K]) Insertion() *InsertionIterator[K] {
	return &InsertionIterator[K]{l: it.l, n: it.ent.node}
}

// Index returns the insertion-order index of the referenced element,
// computed by traversal: O(n). Returns -1 for end or invalidated
// iterators.
func (it *SortedIterator[K]) Index() int {
	if !it.Valid() {
		return -1
	}
	return it.l.indexOf(it.ent.node)
}

// sortedSuccessor returns the entry following ent in the index, or nil
// when ent is the largest. ent must still be stored.
func (l *UniqueList[K]) sortedSuccessor(ent *entry[K]) *entry[K] {
	var succ *entry[K]
	first := true
	l.tree.AscendGreaterOrEqual(ent, func(e *entry[K]) bool {
		if first {
			first = false
			return true
		}
		succ = e
		return false
	})
	return succ
}

// sortedPredecessor returns the entry preceding ent in the index, or nil
// when ent is the smallest.
func (l *UniqueList[K]) sortedPredecessor(ent *entry[K]) *entry[K] {
	var pred *entry[K]
	first := true
	l.tree.DescendLessOrEqual(ent, func(e *entry[K]) bool {
		if first {
			first = false
			return true
		}
		pred = e
		return false
	})
	return pred
}
