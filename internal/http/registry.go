package http

import (
	"sync"

	"github.com/google/uuid"
	"github.com/zhangyunhao116/skipmap"

	"uniquelist/internal/boundary"
)

// Kind selects the key shape of a hosted collection.
type Kind string

const (
	KindArray Kind = "array"
	KindInt   Kind = "int"
)

// collection is one hosted list. The core is single-threaded, so every
// operation on it runs under one exclusive lock.
type collection struct {
	mu   sync.Mutex
	id   string
	kind Kind
	arr  *boundary.ArrayList
	ints *boundary.IntList
}

func (c *collection) size() int {
	if c.kind == KindArray {
		return c.arr.Size()
	}
	return c.ints.Size()
}

// registry holds the hosted collections keyed by id, sorted for listing.
type registry struct {
	items *skipmap.FuncMap[string, *collection]
}

func newRegistry() *registry {
	return &registry{
		items: skipmap.NewFunc[string, *collection](func(a, b string) bool {
			return a < b
		}),
	}
}

func (r *registry) create(kind Kind, rtol, atol float64) *collection {
	c := &collection{id: uuid.NewString(), kind: kind}
	if kind == KindArray {
		c.arr = boundary.NewArrayList(rtol, atol)
	} else {
		c.ints = boundary.NewIntList()
	}
	r.items.Store(c.id, c)
	return c
}

func (r *registry) get(id string) (*collection, bool) {
	return r.items.Load(id)
}

func (r *registry) remove(id string) bool {
	_, ok := r.items.LoadAndDelete(id)
	return ok
}

// each visits collections in id order.
func (r *registry) each(fn func(c *collection)) {
	r.items.Range(func(_ string, c *collection) bool {
		fn(c)
		return true
	})
}
