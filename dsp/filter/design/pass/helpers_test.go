package pass

import (
	"fmt"
	"math"
	"testing"

	"github.com/cwbudde/algo-eq/dsp/filter/biquad"
)

func almostEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

// requireUsable fails unless every coefficient is finite and both poles lie
// strictly inside the unit circle.
func requireUsable(t *testing.T, c biquad.Coefficients, format string, args ...any) {
	t.Helper()
	for i, v := range [...]float64{c.B0, c.B1, c.B2, c.A1, c.A2} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("%s: coefficient %d is %v", fmt.Sprintf(format, args...), i, v)
		}
	}
	if !c.IsStable() {
		t.Fatalf("%s: pole radius %v in %+v", fmt.Sprintf(format, args...), c.PoleRadius(), c)
	}
}
