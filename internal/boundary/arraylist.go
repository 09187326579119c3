package boundary

import (
	"fmt"

	"uniquelist/pkg/key"
	"uniquelist/pkg/uniquelist"
)

// ArrayList hosts a collection of variable-length float vectors compared
// in shortlex order under a tolerant scalar comparator. Incoming buffers
// are borrowed for the membership probe and deep-copied only when stored.
type ArrayList struct {
	list *uniquelist.UniqueList[key.Seq]
}

// NewArrayList builds an empty list with the given tolerances.
func NewArrayList(rtol, atol float64) *ArrayList {
	return &ArrayList{
		list: uniquelist.New(key.Shortlex(key.Tolerant(rtol, atol))),
	}
}

func (a *ArrayList) Size() int { return a.list.Len() }

// PushBack adds buf at the end of the insertion order unless an
// equivalent vector is already stored. The candidate is probed as a
// borrowed view; the stored key, if any, is an owned deep copy.
func (a *ArrayList) PushBack(buf Buffer) (int, bool, error) {
	vec, err := buf.vector()
	if err != nil {
		return 0, false, err
	}
	idx, isNew := a.list.PushBackWithHook(key.Borrow(vec), func(probe key.Seq) key.Seq {
		return key.DeepCopy(probe)
	})
	return idx, isNew, nil
}

// Contains probes membership with a borrowed view; nothing is stored.
func (a *ArrayList) Contains(buf Buffer) (bool, error) {
	vec, err := buf.vector()
	if err != nil {
		return false, err
	}
	return a.list.Contains(key.Borrow(vec)), nil
}

// EraseMany removes the entries at the given strictly ascending
// insertion-order indexes.
func (a *ArrayList) EraseMany(indexes IntBuffer) error {
	idx, err := indexes.vector()
	if err != nil {
		return err
	}
	return a.list.EraseMany(idx)
}

// EraseFlagged removes the entries at nonzero flag positions. The flag
// buffer must align 1:1 with the current insertion order.
func (a *ArrayList) EraseFlagged(flags IntBuffer) error {
	f, err := flags.vector()
	if err != nil {
		return err
	}
	if len(f) != a.list.Len() {
		return fmt.Errorf("%w: expected size %d but got %d", ErrInvalidInput, a.list.Len(), len(f))
	}
	bs := make([]bool, len(f))
	for i, v := range f {
		bs[i] = v != 0
	}
	return a.list.EraseFlagged(bs)
}

// Values returns the stored vectors in insertion order, for display.
func (a *ArrayList) Values() [][]float64 {
	out := make([][]float64, 0, a.list.Len())
	for it := a.list.Begin(); it.Valid(); it.Next() {
		out = append(out, key.DeepCopy(it.Key()).Values())
	}
	return out
}
