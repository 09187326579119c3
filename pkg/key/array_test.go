package key

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShortlex(t *testing.T) {
	less := Shortlex(Exact[float64]())

	tests := []struct {
		name string
		a, b Seq
		want bool
	}{
		{"shorter wins regardless of contents", NewArray(9.0, 9.0), NewArray(0.0, 0.0, 0.0), true},
		{"longer loses regardless of contents", NewArray(0.0, 0.0, 0.0), NewArray(9.0, 9.0), false},
		{"equal length first element decides", NewArray(1.0, 5.0), NewArray(2.0, 0.0), true},
		{"equal length later element decides", NewArray(1.0, 0.0), NewArray(1.0, 5.0), true},
		{"identical", NewArray(1.0, 2.0), NewArray(1.0, 2.0), false},
		{"empty before non-empty", NewArray(), NewArray(0.0), true},
		{"view against array", Borrow([]float64{1.0, 0.0}), NewArray(1.0, 5.0), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, less(tt.a, tt.b))
		})
	}
}

func TestShortlexTolerant(t *testing.T) {
	less := Shortlex(Tolerant(DefaultRTol, DefaultATol))

	a := NewArray(3.4, 1.0, 4.9)
	b := NewArray(3.4, 1.0, 4.8999999999)
	assert.True(t, Equivalent(less, Seq(a), Seq(b)))

	c := NewArray(3.4, 1.0, 4.0)
	assert.False(t, Equivalent(less, Seq(a), Seq(c)))
}

func TestDeepCopyIndependentStorage(t *testing.T) {
	buf := []float64{2.9, -1.0, 4.9}
	view := Borrow(buf)

	owned := DeepCopy(view)
	require.Equal(t, 3, owned.Len())

	// Mutating the borrowed buffer must not change the copy.
	buf[0] = 100.0
	assert.Equal(t, 2.9, owned.At(0))
	assert.Equal(t, 100.0, view.At(0), "view aliases the caller buffer")

	less := Shortlex(Exact[float64]())
	assert.True(t, Equivalent(less, Seq(owned), Seq(NewArray(2.9, -1.0, 4.9))))
}

func TestNewArrayCopiesInput(t *testing.T) {
	buf := []float64{1.0, 2.0}
	a := NewArray(buf...)
	buf[0] = -1.0
	assert.Equal(t, 1.0, a.At(0))

	vals := a.Values()
	vals[1] = -2.0
	assert.Equal(t, 2.0, a.At(1))
}
