package param

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// Listener receives a coalesced "some value changed" signal.
//
// ParameterChanged runs on the goroutine that wrote the value and must not
// block.
type Listener interface {
	ParameterChanged(id string)
}

// ListenerFunc adapts a function to the Listener interface.
type ListenerFunc func(id string)

// ParameterChanged calls f(id).
func (f ListenerFunc) ParameterChanged(id string) { f(id) }

// Store is a fixed set of named parameters.
//
// The set of parameters is immutable after NewStore; values change through
// atomic stores, so reads never lock. Listener registration is copy-on-write.
type Store struct {
	params []*Parameter
	index  map[string]*Parameter

	mu        sync.Mutex
	listeners atomic.Pointer[[]Listener]
}

// NewStore builds a store from specs, in order.
func NewStore(specs ...Spec) (*Store, error) {
	s := &Store{
		params: make([]*Parameter, 0, len(specs)),
		index:  make(map[string]*Parameter, len(specs)),
	}
	for _, spec := range specs {
		if err := spec.validate(); err != nil {
			return nil, err
		}
		if _, dup := s.index[spec.ID]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateParameter, spec.ID)
		}
		p := newParameter(spec)
		s.params = append(s.params, p)
		s.index[spec.ID] = p
	}
	return s, nil
}

// Parameter returns the parameter registered under id.
func (s *Store) Parameter(id string) (*Parameter, error) {
	p, ok := s.index[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownParameter, id)
	}
	return p, nil
}

// Parameters returns all parameters in registration order.
func (s *Store) Parameters() []*Parameter {
	out := make([]*Parameter, len(s.params))
	copy(out, s.params)
	return out
}

// Raw returns the raw value of id.
func (s *Store) Raw(id string) (float64, error) {
	p, err := s.Parameter(id)
	if err != nil {
		return 0, err
	}
	return p.Raw(), nil
}

// Normalized returns the normalised value of id.
func (s *Store) Normalized(id string) (float64, error) {
	p, err := s.Parameter(id)
	if err != nil {
		return 0, err
	}
	return p.Normalized(), nil
}

// Set clamps and snaps v, publishes it and notifies listeners if the value
// changed.
func (s *Store) Set(id string, v float64) error {
	p, err := s.Parameter(id)
	if err != nil {
		return err
	}
	if p.store(v) {
		s.notify(id)
	}
	return nil
}

// SetNormalized sets id from a position in [0, 1].
func (s *Store) SetNormalized(id string, pos float64) error {
	p, err := s.Parameter(id)
	if err != nil {
		return err
	}
	return s.Set(id, p.spec.Range.FromNormalized(pos))
}

// Reset restores every parameter to its default.
func (s *Store) Reset() {
	for _, p := range s.params {
		if p.store(p.spec.Default) {
			s.notify(p.spec.ID)
		}
	}
}

// Values returns a copy of all raw values keyed by ID.
func (s *Store) Values() map[string]float64 {
	out := make(map[string]float64, len(s.params))
	for _, p := range s.params {
		out[p.spec.ID] = p.Raw()
	}
	return out
}

// Replace publishes every value in vals. Unknown IDs are rejected before
// anything is written; parameters missing from vals keep their value.
func (s *Store) Replace(vals map[string]float64) error {
	for id := range vals {
		if _, ok := s.index[id]; !ok {
			return fmt.Errorf("%w: %q", ErrUnknownParameter, id)
		}
	}
	for _, p := range s.params {
		v, ok := vals[p.spec.ID]
		if ok && p.store(v) {
			s.notify(p.spec.ID)
		}
	}
	return nil
}

// AddListener registers l for change notifications.
func (s *Store) AddListener(l Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var next []Listener
	if cur := s.listeners.Load(); cur != nil {
		next = append(next, *cur...)
	}
	next = append(next, l)
	s.listeners.Store(&next)
}

func (s *Store) notify(id string) {
	ls := s.listeners.Load()
	if ls == nil {
		return
	}
	for _, l := range *ls {
		l.ParameterChanged(id)
	}
}
