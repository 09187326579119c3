package boundary

import (
	"fmt"

	"uniquelist/pkg/key"
	"uniquelist/pkg/uniquelist"
)

// IntList hosts a collection of scalar integers under the exact ordering.
type IntList struct {
	list *uniquelist.UniqueList[int]
}

func NewIntList() *IntList {
	return &IntList{list: uniquelist.New(key.Exact[int]())}
}

func (l *IntList) Size() int { return l.list.Len() }

// PushBack adds v at the end of the insertion order unless already
// stored.
func (l *IntList) PushBack(v int) (int, bool) {
	return l.list.PushBack(v)
}

// Index returns the insertion-order index of v, or -1 when absent.
func (l *IntList) Index(v int) int {
	i := 0
	for it := l.list.Begin(); it.Valid(); it.Next() {
		if it.Key() == v {
			return i
		}
		i++
	}
	return -1
}

// EraseMany removes the entries at the given strictly ascending
// insertion-order indexes.
func (l *IntList) EraseMany(indexes IntBuffer) error {
	idx, err := indexes.vector()
	if err != nil {
		return err
	}
	return l.list.EraseMany(idx)
}

// EraseFlagged removes the entries at nonzero flag positions.
func (l *IntList) EraseFlagged(flags IntBuffer) error {
	f, err := flags.vector()
	if err != nil {
		return err
	}
	if len(f) != l.list.Len() {
		return fmt.Errorf("%w: expected size %d but got %d", ErrInvalidInput, l.list.Len(), len(f))
	}
	bs := make([]bool, len(f))
	for i, v := range f {
		bs[i] = v != 0
	}
	return l.list.EraseFlagged(bs)
}

// Values returns the stored integers in insertion order, for display.
func (l *IntList) Values() []int {
	return l.list.Keys()
}
