package biquad

import "fmt"

// MaxSections is the fixed capacity of a Chain (8th order, 48 dB/oct).
const MaxSections = 4

// Chain is a fixed-capacity cascade of biquad sections processed in series.
//
// All MaxSections sections are allocated with the chain. The enabled sections
// always form the prefix [0, Active()); the rest stay in place but bypassed,
// so changing the filter order never allocates.
type Chain struct {
	sections [MaxSections]Section
	active   int
}

// NewChain creates a cascade with one enabled section per coefficient set.
// It panics if more than MaxSections sets are given.
func NewChain(coeffs []Coefficients) *Chain {
	if len(coeffs) > MaxSections {
		panic(fmt.Sprintf("biquad: %d sections exceed chain capacity %d", len(coeffs), MaxSections))
	}

	var sets [MaxSections]Coefficients
	for i := range sets {
		sets[i] = Identity()
	}
	copy(sets[:], coeffs)

	c := &Chain{}
	c.Configure(&sets, len(coeffs))

	return c
}

// Configure writes all MaxSections coefficient sets into the sections, then
// enables exactly the first active sections and bypasses the rest.
//
// Coefficients are written before any enable flag changes, so an enabled
// section never runs with a half-written design. The delay-line state of
// every section is preserved. Configure panics if active is outside
// [0, MaxSections].
func (c *Chain) Configure(coeffs *[MaxSections]Coefficients, active int) {
	if active < 0 || active > MaxSections {
		panic(fmt.Sprintf("biquad: active section count %d outside [0, %d]", active, MaxSections))
	}

	for i := range c.sections {
		c.sections[i].SetCoefficients(coeffs[i])
	}

	for i := range c.sections {
		c.sections[i].SetEnabled(i < active)
	}

	c.active = active
}

// ProcessSample cascades input through sections 0..3 in order.
// Bypassed sections pass the value through unchanged.
func (c *Chain) ProcessSample(x float64) float64 {
	for i := range c.sections {
		x = c.sections[i].ProcessSample(x)
	}

	return x
}

// ProcessBlock filters a block in-place through the full cascade.
func (c *Chain) ProcessBlock(buf []float64) {
	for i := range c.sections {
		c.sections[i].ProcessBlock(buf)
	}
}

// Reset clears all section states.
func (c *Chain) Reset() {
	for i := range c.sections {
		c.sections[i].Reset()
	}
}

// Active returns the number of enabled sections.
func (c *Chain) Active() int {
	return c.active
}

// Order returns the filter order of the enabled sections (2 per biquad).
func (c *Chain) Order() int {
	return 2 * c.active
}

// Section returns a pointer to the i-th section for inspection.
func (c *Chain) Section(i int) *Section {
	return &c.sections[i]
}

// State returns a snapshot of all section delay-line states.
func (c *Chain) State() [MaxSections][2]float64 {
	var states [MaxSections][2]float64
	for i := range c.sections {
		states[i] = c.sections[i].State()
	}

	return states
}

// SetState restores previously saved section states.
func (c *Chain) SetState(states [MaxSections][2]float64) {
	for i := range c.sections {
		c.sections[i].SetState(states[i])
	}
}
