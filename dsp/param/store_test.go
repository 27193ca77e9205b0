package param

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(
		Float("freq", "Freq", frequencyRange(), 750),
		Float("gain", "Gain", NewRange(-24, 24, 0.5, 1), 0),
		Choice("slope", "Slope", []string{"12", "24", "36", "48"}, 0),
	)
	require.NoError(t, err)
	return s
}

func TestNewStoreDefaults(t *testing.T) {
	s := testStore(t)

	v, err := s.Raw("freq")
	require.NoError(t, err)
	assert.Equal(t, 750.0, v)

	p, err := s.Parameter("slope")
	require.NoError(t, err)
	assert.Equal(t, 0, p.Index())
	assert.Equal(t, "12", p.Text())
	assert.Len(t, s.Parameters(), 3)
}

func TestNewStoreRejectsBadSpecs(t *testing.T) {
	_, err := NewStore(Float("a", "A", frequencyRange(), 100), Float("a", "A", frequencyRange(), 100))
	require.ErrorIs(t, err, ErrDuplicateParameter)

	_, err = NewStore(Float("a", "A", frequencyRange(), 5))
	require.ErrorIs(t, err, ErrInvalidRange)

	_, err = NewStore(Choice("c", "C", []string{"only"}, 0))
	require.ErrorIs(t, err, ErrInvalidRange)
}

func TestUnknownParameter(t *testing.T) {
	s := testStore(t)

	_, err := s.Raw("missing")
	require.ErrorIs(t, err, ErrUnknownParameter)
	require.ErrorIs(t, s.Set("missing", 1), ErrUnknownParameter)
	require.ErrorIs(t, s.SetNormalized("missing", 1), ErrUnknownParameter)
	_, err = s.Normalized("missing")
	require.ErrorIs(t, err, ErrUnknownParameter)
}

func TestSetClampsSnapsAndNotifies(t *testing.T) {
	s := testStore(t)

	var got []string
	s.AddListener(ListenerFunc(func(id string) { got = append(got, id) }))

	require.NoError(t, s.Set("gain", 3.4))
	v, _ := s.Raw("gain")
	assert.Equal(t, 3.5, v)

	// Same snapped value: no notification.
	require.NoError(t, s.Set("gain", 3.6))
	require.NoError(t, s.Set("freq", 1e6))
	v, _ = s.Raw("freq")
	assert.Equal(t, 20000.0, v)

	assert.Equal(t, []string{"gain", "freq"}, got)
}

func TestSetNormalized(t *testing.T) {
	s := testStore(t)

	require.NoError(t, s.SetNormalized("freq", 0.5))
	v, _ := s.Raw("freq")
	assert.Equal(t, 1269.0, v)

	n, err := s.Normalized("freq")
	require.NoError(t, err)
	assert.InDelta(t, frequencyRange().ToNormalized(1269), n, 1e-12)

	require.NoError(t, s.SetNormalized("slope", 1))
	p, _ := s.Parameter("slope")
	assert.Equal(t, 3, p.Index())
	assert.Equal(t, "48", p.Text())
}

func TestValuesReplaceReset(t *testing.T) {
	s := testStore(t)

	require.NoError(t, s.Replace(map[string]float64{"freq": 1000, "slope": 2}))
	vals := s.Values()
	assert.Equal(t, map[string]float64{"freq": 1000, "gain": 0, "slope": 2}, vals)

	err := s.Replace(map[string]float64{"freq": 50, "bogus": 1})
	require.ErrorIs(t, err, ErrUnknownParameter)
	v, _ := s.Raw("freq")
	assert.Equal(t, 1000.0, v, "rejected replace must not write")

	var n int
	s.AddListener(ListenerFunc(func(string) { n++ }))
	s.Reset()
	assert.Equal(t, 2, n)
	v, _ = s.Raw("freq")
	assert.Equal(t, 750.0, v)
}

func TestConcurrentWritersAndReaders(t *testing.T) {
	s := testStore(t)
	var notified atomic.Int64
	s.AddListener(ListenerFunc(func(string) { notified.Add(1) }))

	p, err := s.Parameter("freq")
	require.NoError(t, err)

	var wg sync.WaitGroup
	for w := range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 1000 {
				_ = s.Set("freq", float64(100+w*1000+i%500))
			}
		}()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		for range 4000 {
			v := p.Raw()
			if v < 20 || v > 20000 || v != float64(int(v)) {
				t.Errorf("torn or unsnapped value %v", v)
				return
			}
		}
	}()
	wg.Wait()

	assert.Positive(t, notified.Load())
}
