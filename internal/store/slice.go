// Package store holds the client-side copies of server resources.
//
// Every fetch follows one contract: loading is raised and the error
// cleared before the request, the data is replaced wholesale on success,
// the error message is recorded and the old data kept on failure, and
// loading drops when the request completes. Mutations touch local data
// only after the server accepted them. Concurrent fetches against the
// same slice are not fenced; the last response wins.
package store

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/qkit-edu/qkit/pkg/client"
	"github.com/qkit-edu/qkit/pkg/domain"
)

// State is a snapshot of a paginated slice.
type State[T any] struct {
	Items   []T
	Meta    domain.Meta
	Loading bool
	Err     string
}

// ValueState is a snapshot of a single-value slot.
type ValueState[T any] struct {
	Value   *T
	Loading bool
	Err     string
}

// status tracks outstanding requests and the last error of one slot.
type status struct {
	inflight int
	err      string
}

func (s *status) begin() {
	s.inflight++
	s.err = ""
}

func (s *status) end() {
	if s.inflight > 0 {
		s.inflight--
	}
}

// Slice is a paginated list owned by one store.
type Slice[T any] struct {
	mu    sync.Mutex
	st    status
	items []T
	meta  domain.Meta
}

// Snapshot returns a copy of the slice state.
func (s *Slice[T]) Snapshot() State[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return State[T]{
		Items:   append([]T(nil), s.items...),
		Meta:    s.meta,
		Loading: s.st.inflight > 0,
		Err:     s.st.err,
	}
}

// load runs fetch under the slice contract. fallback is the message
// recorded when the error carries none.
func (s *Slice[T]) load(log zerolog.Logger, op, fallback string, fetch func() ([]T, domain.Meta, error)) error {
	s.mu.Lock()
	s.st.begin()
	s.mu.Unlock()

	items, meta, err := fetch()

	s.mu.Lock()
	defer s.mu.Unlock()
	defer s.st.end()
	if err != nil {
		s.st.err = client.ErrorMessage(err, fallback)
		log.Debug().Err(err).Str("op", op).Msg("fetch failed")
		return err
	}
	if items == nil {
		items = []T{}
	}
	s.items = items
	s.meta = meta
	return nil
}

// mutate runs call without touching loading and, once it succeeds,
// rewrites the local items with apply.
func (s *Slice[T]) mutate(log zerolog.Logger, op, fallback string, call func() error, apply func([]T) []T) error {
	if err := call(); err != nil {
		s.mu.Lock()
		s.st.err = client.ErrorMessage(err, fallback)
		s.mu.Unlock()
		log.Debug().Err(err).Str("op", op).Msg("mutation failed")
		return err
	}
	s.mu.Lock()
	s.items = apply(s.items)
	s.mu.Unlock()
	return nil
}

// Value is a single-resource slot, like the selected course.
type Value[T any] struct {
	mu    sync.Mutex
	st    status
	value *T
}

// Snapshot returns the slot state. The value is shared, not copied.
func (v *Value[T]) Snapshot() ValueState[T] {
	v.mu.Lock()
	defer v.mu.Unlock()
	return ValueState[T]{Value: v.value, Loading: v.st.inflight > 0, Err: v.st.err}
}

func (v *Value[T]) load(log zerolog.Logger, op, fallback string, fetch func() (*T, error)) (*T, error) {
	v.mu.Lock()
	v.st.begin()
	v.mu.Unlock()

	val, err := fetch()

	v.mu.Lock()
	defer v.mu.Unlock()
	defer v.st.end()
	if err != nil {
		v.st.err = client.ErrorMessage(err, fallback)
		log.Debug().Err(err).Str("op", op).Msg("fetch failed")
		return nil, err
	}
	v.value = val
	return val, nil
}
