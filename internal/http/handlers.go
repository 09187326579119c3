package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"uniquelist/internal/boundary"
	"uniquelist/pkg/metrics"
	"uniquelist/pkg/uniquelist"
)

type createRequest struct {
	Kind string   `json:"kind"`
	RTol *float64 `json:"rtol,omitempty"`
	ATol *float64 `json:"atol,omitempty"`
}

type pushRequest struct {
	// Array collections take values (+ optional shape, default rank 1).
	Values []float64 `json:"values,omitempty"`
	Shape  []int     `json:"shape,omitempty"`
	// Int collections take a single value.
	Value *int `json:"value,omitempty"`
}

type eraseRequest struct {
	Indexes []int `json:"indexes,omitempty"`
	Flags   []int `json:"flags,omitempty"`
	Shape   []int `json:"shape,omitempty"`
}

type collectionInfo struct {
	ID   string `json:"id"`
	Kind Kind   `json:"kind"`
	Size int    `json:"size"`
}

type pushResult struct {
	Index int  `json:"index"`
	New   bool `json:"new"`
}

type memberResult struct {
	Member bool `json:"member"`
}

type statePayload struct {
	ID     string      `json:"id"`
	Kind   Kind        `json:"kind"`
	Size   int         `json:"size"`
	Values [][]float64 `json:"values,omitempty"`
	Ints   []int       `json:"ints,omitempty"`
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, NewErrorResponse("Failed to parse request body"))
		return
	}

	var kind Kind
	switch req.Kind {
	case string(KindArray), "":
		kind = KindArray
	case string(KindInt):
		kind = KindInt
	default:
		s.writeJSON(w, http.StatusBadRequest, NewErrorResponse("Unknown collection kind: "+req.Kind))
		return
	}

	rtol, atol := s.defaults.RTol, s.defaults.ATol
	if req.RTol != nil {
		rtol = *req.RTol
	}
	if req.ATol != nil {
		atol = *req.ATol
	}

	c := s.registry.create(kind, rtol, atol)
	s.collector.IncCounter(metrics.CounterCollections, 1)
	slog.Info("Collection created", "id", c.id, "kind", c.kind)

	s.writeJSON(w, http.StatusCreated, NewDataResponse(collectionInfo{ID: c.id, Kind: c.kind}))
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	infos := make([]collectionInfo, 0)
	s.registry.each(func(c *collection) {
		c.mu.Lock()
		infos = append(infos, collectionInfo{ID: c.id, Kind: c.kind, Size: c.size()})
		c.mu.Unlock()
	})
	s.writeJSON(w, http.StatusOK, NewDataResponse(infos))
}

// lookup resolves the collection from the URL, replying 404 on a miss.
func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (*collection, bool) {
	id := chi.URLParam(r, "id")
	c, ok := s.registry.get(id)
	if !ok {
		s.writeJSON(w, http.StatusNotFound, NewErrorResponse("Collection not found: "+id))
		return nil, false
	}
	return c, true
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	c, ok := s.lookup(w, r)
	if !ok {
		return
	}

	c.mu.Lock()
	payload := statePayload{ID: c.id, Kind: c.kind, Size: c.size()}
	if c.kind == KindArray {
		payload.Values = c.arr.Values()
	} else {
		payload.Ints = c.ints.Values()
	}
	c.mu.Unlock()

	s.writeJSON(w, http.StatusOK, NewDataResponse(payload))
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !s.registry.remove(id) {
		s.writeJSON(w, http.StatusNotFound, NewErrorResponse("Collection not found: "+id))
		return
	}
	slog.Info("Collection removed", "id", id)
	s.writeJSON(w, http.StatusOK, NewSuccessResponse())
}

func (s *Server) handlePush(w http.ResponseWriter, r *http.Request) {
	c, ok := s.lookup(w, r)
	if !ok {
		return
	}

	var req pushRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, NewErrorResponse("Failed to parse request body"))
		return
	}

	var (
		index int
		isNew bool
		err   error
	)
	c.mu.Lock()
	if c.kind == KindArray {
		index, isNew, err = c.arr.PushBack(s.buffer(req.Values, req.Shape))
	} else {
		if req.Value == nil {
			c.mu.Unlock()
			s.writeJSON(w, http.StatusBadRequest, NewErrorResponse("Missing value"))
			return
		}
		index, isNew = c.ints.PushBack(*req.Value)
	}
	c.mu.Unlock()

	if err != nil {
		s.writeError(w, err)
		return
	}

	s.collector.IncCounter(metrics.CounterPushes, 1)
	if !isNew {
		s.collector.IncCounter(metrics.CounterDuplicates, 1)
	}
	s.writeJSON(w, http.StatusOK, NewDataResponse(pushResult{Index: index, New: isNew}))
}

func (s *Server) handleContains(w http.ResponseWriter, r *http.Request) {
	c, ok := s.lookup(w, r)
	if !ok {
		return
	}

	var req pushRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, NewErrorResponse("Failed to parse request body"))
		return
	}

	var (
		member bool
		err    error
	)
	c.mu.Lock()
	if c.kind == KindArray {
		member, err = c.arr.Contains(s.buffer(req.Values, req.Shape))
	} else {
		if req.Value == nil {
			c.mu.Unlock()
			s.writeJSON(w, http.StatusBadRequest, NewErrorResponse("Missing value"))
			return
		}
		member = c.ints.Index(*req.Value) >= 0
	}
	c.mu.Unlock()

	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, NewDataResponse(memberResult{Member: member}))
}

func (s *Server) handleErase(w http.ResponseWriter, r *http.Request) {
	c, ok := s.lookup(w, r)
	if !ok {
		return
	}

	var req eraseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, NewErrorResponse("Failed to parse request body"))
		return
	}

	buf := s.intBuffer(req.Indexes, req.Shape)
	c.mu.Lock()
	var err error
	if c.kind == KindArray {
		err = c.arr.EraseMany(buf)
	} else {
		err = c.ints.EraseMany(buf)
	}
	c.mu.Unlock()

	if err != nil {
		s.writeError(w, err)
		return
	}
	s.collector.IncCounter(metrics.CounterErases, 1)
	s.writeJSON(w, http.StatusOK, NewSuccessResponse())
}

func (s *Server) handleEraseFlagged(w http.ResponseWriter, r *http.Request) {
	c, ok := s.lookup(w, r)
	if !ok {
		return
	}

	var req eraseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, NewErrorResponse("Failed to parse request body"))
		return
	}

	buf := s.intBuffer(req.Flags, req.Shape)
	c.mu.Lock()
	var err error
	if c.kind == KindArray {
		err = c.arr.EraseFlagged(buf)
	} else {
		err = c.ints.EraseFlagged(buf)
	}
	c.mu.Unlock()

	if err != nil {
		s.writeError(w, err)
		return
	}
	s.collector.IncCounter(metrics.CounterErases, 1)
	s.writeJSON(w, http.StatusOK, NewSuccessResponse())
}

// buffer wires an incoming payload into a boundary buffer, defaulting the
// shape to rank 1 when the caller omitted it.
func (s *Server) buffer(values []float64, shape []int) boundary.Buffer {
	if shape == nil {
		return boundary.Vector(values)
	}
	return boundary.Buffer{Data: values, Shape: shape}
}

func (s *Server) intBuffer(values []int, shape []int) boundary.IntBuffer {
	if shape == nil {
		return boundary.IntVector(values)
	}
	return boundary.IntBuffer{Data: values, Shape: shape}
}

// writeError maps rejected inputs to 400 and everything else to 500.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, boundary.ErrInvalidInput),
		errors.Is(err, uniquelist.ErrIndexOutOfRange),
		errors.Is(err, uniquelist.ErrFlagLength),
		errors.Is(err, uniquelist.ErrNotAscending):
		status = http.StatusBadRequest
	}
	s.writeJSON(w, status, NewErrorResponse(err.Error()))
}
