package param

import (
	"errors"
	"fmt"
	"math"
	"sync/atomic"
)

var (
	// ErrUnknownParameter is returned for IDs the store was not built with.
	ErrUnknownParameter = errors.New("param: unknown parameter")
	// ErrDuplicateParameter is returned when two specs share an ID.
	ErrDuplicateParameter = errors.New("param: duplicate parameter id")
	// ErrInvalidRange is returned for unusable ranges or defaults.
	ErrInvalidRange = errors.New("param: invalid range")
)

// Kind distinguishes continuous parameters from discrete choices.
type Kind int

const (
	KindFloat Kind = iota
	KindChoice
)

// Spec describes one named control.
type Spec struct {
	ID      string
	Name    string
	Kind    Kind
	Range   Range
	Default float64
	Choices []string
}

// Float describes a continuous parameter.
func Float(id, name string, r Range, def float64) Spec {
	return Spec{ID: id, Name: name, Kind: KindFloat, Range: r, Default: def}
}

// Choice describes a discrete parameter whose raw value is the choice index.
func Choice(id, name string, choices []string, def int) Spec {
	return Spec{
		ID:      id,
		Name:    name,
		Kind:    KindChoice,
		Range:   Range{Min: 0, Max: float64(len(choices) - 1), Interval: 1, Skew: 1},
		Default: float64(def),
		Choices: choices,
	}
}

func (s Spec) validate() error {
	if s.ID == "" {
		return fmt.Errorf("%w: empty id", ErrInvalidRange)
	}
	if s.Kind == KindChoice && len(s.Choices) < 2 {
		return fmt.Errorf("%w: %s needs at least two choices", ErrInvalidRange, s.ID)
	}
	if err := s.Range.Validate(); err != nil {
		return fmt.Errorf("%s: %w", s.ID, err)
	}
	if s.Default < s.Range.Min || s.Default > s.Range.Max {
		return fmt.Errorf("%w: %s default %v outside [%v, %v]", ErrInvalidRange, s.ID, s.Default, s.Range.Min, s.Range.Max)
	}
	return nil
}

// Parameter holds the current raw value of one control.
//
// The value is published as float64 bits through an atomic word, so readers
// on any goroutine see either the old or the new value, never a torn one.
type Parameter struct {
	spec Spec
	bits atomic.Uint64
}

func newParameter(s Spec) *Parameter {
	p := &Parameter{spec: s}
	p.bits.Store(math.Float64bits(s.Range.Snap(s.Default)))
	return p
}

// ID returns the parameter identifier.
func (p *Parameter) ID() string { return p.spec.ID }

// Spec returns the parameter description.
func (p *Parameter) Spec() Spec { return p.spec }

// Raw returns the current raw value. Lock-free.
func (p *Parameter) Raw() float64 {
	return math.Float64frombits(p.bits.Load())
}

// Normalized returns the current value mapped onto [0, 1].
func (p *Parameter) Normalized() float64 {
	return p.spec.Range.ToNormalized(p.Raw())
}

// Index returns the raw value rounded to an integer, for choice parameters.
func (p *Parameter) Index() int {
	return int(math.Round(p.Raw()))
}

// Text returns a display string for the current value.
func (p *Parameter) Text() string {
	if p.spec.Kind == KindChoice {
		i := p.Index()
		if i >= 0 && i < len(p.spec.Choices) {
			return p.spec.Choices[i]
		}
	}
	return fmt.Sprintf("%g", p.Raw())
}

// store snaps v and publishes it. It reports whether the value changed.
func (p *Parameter) store(v float64) bool {
	next := math.Float64bits(p.spec.Range.Snap(v))
	return p.bits.Swap(next) != next
}
