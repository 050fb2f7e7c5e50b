package rhythm

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	inputs := []float64{0, 1, 90.5, 359.999, 360, 361, 720, -1, -360, -725.25, 1e9, -1e9, -1e-15}
	for _, x := range inputs {
		n := Normalize(x)
		require.GreaterOrEqual(t, n, 0.0, "input %v", x)
		require.Less(t, n, 360.0, "input %v", x)

		for _, k := range []float64{-3, -1, 1, 2, 10} {
			require.InDelta(t, n, Normalize(x+360*k), 1e-6, "input %v k %v", x, k)
		}
	}

	require.Equal(t, 0.0, Normalize(360))
	require.Equal(t, 359.0, Normalize(-1))
	require.Equal(t, 0.0, Normalize(math.NaN()))
	require.Equal(t, 0.0, Normalize(math.Inf(1)))
}

func TestAngularDistance(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		a, b     float64
		expected float64
	}{
		{0, 0, 0},
		{10, 50, 40},
		{350, 10, 20},
		{10, 350, 20},
		{0, 180, 180},
		{-5, 5, 10},
		{725, 0, 5},
	}

	for _, testCase := range testCases {
		require.InDelta(t, testCase.expected, AngularDistance(testCase.a, testCase.b), 1e-9)
	}
}

func TestForwardDelta(t *testing.T) {
	t.Parallel()

	require.InDelta(t, 40.0, ForwardDelta(10, 50), 1e-9)
	require.InDelta(t, 20.0, ForwardDelta(350, 10), 1e-9)
	// moving backwards from 10 to 350 reads as a near-full forward revolution
	require.InDelta(t, 340.0, ForwardDelta(10, 350), 1e-9)
}
