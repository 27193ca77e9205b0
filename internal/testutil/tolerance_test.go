package testutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaxAbsDiff(t *testing.T) {
	d, err := MaxAbsDiff([]float64{1, 2, 3}, []float64{1, 2.5, 2})
	require.NoError(t, err)
	assert.Equal(t, 1.0, d)

	d, err = MaxAbsDiff(nil, nil)
	require.NoError(t, err)
	assert.Zero(t, d)

	_, err = MaxAbsDiff([]float64{1}, nil)
	assert.Error(t, err)
}

func TestRequireHelpersPass(t *testing.T) {
	RequireFinite(t, []float64{0, 1, -1, math.MaxFloat64})
	RequireSliceNearlyEqual(t, []float64{1, 2}, []float64{1 + 1e-10, 2}, 1e-9)
	RequireSliceNearlyEqual(t, []float64{0.5}, []float64{0.5}, 0)
}
