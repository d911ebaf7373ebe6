package charts

import "math"

var niceMultiples = []float64{1, 2, 2.5, 5, 10}

// tickLocator picks evenly spaced "nice" tick values inside [lo, hi], never
// more than maxTicks of them.
type tickLocator struct {
	maxTicks int
	minStep  float64
	integer  bool // only whole-number steps
}

func (l tickLocator) ticks(lo, hi float64) []float64 {
	if math.IsNaN(lo) || math.IsNaN(hi) || math.IsInf(lo, 0) || math.IsInf(hi, 0) {
		return nil
	}
	if hi < lo {
		lo, hi = hi, lo
	}
	if hi == lo || l.maxTicks < 2 {
		return []float64{lo}
	}

	raw := (hi - lo) / float64(l.maxTicks)
	base := math.Max(raw, l.minStep)
	mag := math.Pow(10, math.Floor(math.Log10(base)))

	for decade := 0; decade < 4; decade++ {
		for _, m := range niceMultiples {
			step := m * mag
			if step < base*(1-1e-9) {
				continue
			}
			if l.integer && step != math.Trunc(step) {
				continue
			}
			if ticks := ticksForStep(lo, hi, step); len(ticks) <= l.maxTicks {
				return ticks
			}
		}
		mag *= 10
	}
	return []float64{lo}
}

func ticksForStep(lo, hi, step float64) []float64 {
	first := math.Ceil(lo/step - 1e-9)
	last := math.Floor(hi/step + 1e-9)

	ticks := make([]float64, 0, int(last-first)+1)
	for k := first; k <= last; k++ {
		v := k * step
		if v == 0 {
			v = 0 // drop negative zero
		}
		ticks = append(ticks, v)
	}
	return ticks
}
