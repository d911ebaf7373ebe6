package charts

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTickLocator_MonthAxis(t *testing.T) {
	months := tickLocator{maxTicks: 6, minStep: 1, integer: true}

	assert.Equal(t, []float64{0, 2, 4, 6, 8, 10}, months.ticks(0, 11))
	assert.Equal(t, []float64{0, 1, 2}, months.ticks(0, 2))
	assert.Equal(t, []float64{0}, months.ticks(0, 0))
}

func TestTickLocator_MonthAxisNeverExceedsMax(t *testing.T) {
	for _, maxTicks := range []int{2, 3, 6} {
		l := tickLocator{maxTicks: maxTicks, minStep: 1, integer: true}
		for n := 1; n <= 120; n++ {
			ticks := l.ticks(0, float64(n))
			assert.LessOrEqual(t, len(ticks), maxTicks, "n=%d", n)
			assert.NotEmpty(t, ticks)
			for _, v := range ticks {
				assert.Equal(t, math.Trunc(v), v, "non-integer month tick %g for n=%d", v, n)
				assert.GreaterOrEqual(t, v, 0.0)
				assert.LessOrEqual(t, v, float64(n))
			}
		}
	}
}

func TestTickLocator_RevenueAxis(t *testing.T) {
	l := tickLocator{maxTicks: 8}
	assert.Equal(t, []float64{60000, 80000, 100000, 120000, 140000}, l.ticks(55500, 154500))

	// swapped bounds are tolerated
	assert.Equal(t, l.ticks(55500, 154500), l.ticks(154500, 55500))
}

func TestTickLocator_NegativeRange(t *testing.T) {
	ticks := tickLocator{maxTicks: 5}.ticks(-1, 1)
	assert.Equal(t, []float64{-1, -0.5, 0, 0.5, 1}, ticks)
	assert.False(t, math.Signbit(ticks[2]), "negative zero tick")
}

func TestTickLocator_NonFiniteRange(t *testing.T) {
	l := tickLocator{maxTicks: 8}
	assert.Empty(t, l.ticks(math.NaN(), 1))
	assert.Empty(t, l.ticks(0, math.Inf(1)))
	assert.Empty(t, l.ticks(math.Inf(-1), math.NaN()))
}
