package key

// Seq is a read-only view of a numeric sequence key. Both the owned Array
// and the borrowed View satisfy it, so a collection of array keys is
// declared over Seq and compared with Shortlex.
type Seq interface {
	Len() int
	At(i int) float64
}

// Array is an owned array key. Its backing storage is private to the
// instance and must not be mutated after the key enters a collection.
type Array struct {
	elems []float64
}

// NewArray builds an owned array key by copying vals.
func NewArray(vals ...float64) Array {
	elems := make([]float64, len(vals))
	copy(elems, vals)
	return Array{elems: elems}
}

func (a Array) Len() int         { return len(a.elems) }
func (a Array) At(i int) float64 { return a.elems[i] }

// Values returns a fresh copy of the key contents, preserving the
// immutability of the stored key.
func (a Array) Values() []float64 {
	out := make([]float64, len(a.elems))
	copy(out, a.elems)
	return out
}

// View is a non-owning array key aliasing caller storage. It is intended
// as a short-lived probe for membership tests and hook insertion; it is
// only valid while the aliased buffer is, and is never what DeepCopy
// produces for persistent storage.
type View struct {
	elems []float64
}

// Borrow wraps buf without copying. The returned View aliases buf.
func Borrow(buf []float64) View {
	return View{elems: buf}
}

func (v View) Len() int         { return len(v.elems) }
func (v View) At(i int) float64 { return v.elems[i] }

// DeepCopy produces an owned Array with the same length and contents as s,
// backed by storage independent of s.
func DeepCopy(s Seq) Array {
	elems := make([]float64, s.Len())
	for i := range elems {
		elems[i] = s.At(i)
	}
	return Array{elems: elems}
}

// Shortlex lifts a scalar ordering to sequences: a shorter sequence orders
// before a longer one regardless of contents, and equal-length sequences
// compare element-wise with the first differing element deciding.
func Shortlex(scalar LessFunc[float64]) LessFunc[Seq] {
	return func(a, b Seq) bool {
		if a.Len() != b.Len() {
			return a.Len() < b.Len()
		}
		for i := 0; i < a.Len(); i++ {
			if scalar(a.At(i), b.At(i)) {
				return true
			}
			if scalar(b.At(i), a.At(i)) {
				return false
			}
		}
		return false
	}
}
