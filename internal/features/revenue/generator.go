package revenue

// Synthetic monthly revenue per segment.
// revenue = base * season * growth + noise, with
//   season = 1 + amp * sin(2π * i/12 + phase)
//   growth = (1 + g)^i
//   noise  ~ N(0, 0.05 * base)
// Noise is drawn once per (segment, month) pair, segments outer, months inner.

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"time"
)

const (
	// DefaultSeed seeds the production noise source.
	DefaultSeed uint64 = 42

	// MonthsPerYear is the period of the seasonal sine.
	MonthsPerYear = 12

	// NoiseFraction is the noise standard deviation as a share of base revenue.
	NoiseFraction = 0.05
)

var (
	ErrNoSegments     = errors.New("no segments")
	ErrInvalidSegment = errors.New("invalid segment")
	ErrNoNoiseSource  = errors.New("no noise source")
	ErrInvalidMonths  = errors.New("month count must be positive")
)

// NoiseSource produces normally distributed draws. Each call advances the
// underlying stream by one draw.
type NoiseSource interface {
	Normal(mean, stddev float64) float64
}

type seededNoise struct {
	rng *rand.Rand
}

// NewSeededNoise returns a deterministic Gaussian source for the given seed.
func NewSeededNoise(seed uint64) NoiseSource {
	return &seededNoise{rng: rand.New(rand.NewPCG(seed, seed))}
}

func (n *seededNoise) Normal(mean, stddev float64) float64 {
	return mean + stddev*n.rng.NormFloat64()
}

// Record is one generated row. (Segment, Month) is unique within a table.
type Record struct {
	Month      time.Time
	MonthIndex int
	Segment    string
	Revenue    float64

	Season float64
	Growth float64
	Noise  float64
}

// PlanStep is one (segment, month) pair in draw order.
type PlanStep struct {
	SegmentIndex int
	MonthIndex   int
}

// BuildPlan lists every (segment, month) pair in the order noise is drawn.
func BuildPlan(segmentCount, months int) []PlanStep {
	plan := make([]PlanStep, 0, segmentCount*months)
	for s := 0; s < segmentCount; s++ {
		for i := 0; i < months; i++ {
			plan = append(plan, PlanStep{SegmentIndex: s, MonthIndex: i})
		}
	}
	return plan
}

// Season is the seasonal multiplier for month index i.
func Season(amplitude, phase float64, i int) float64 {
	return 1.0 + amplitude*math.Sin(2*math.Pi*(float64(i)/MonthsPerYear)+phase)
}

// Growth is the compounded growth multiplier after i months. Growth(g, 0) == 1.
func Growth(rate float64, i int) float64 {
	return math.Pow(1.0+rate, float64(i))
}

// NoiseStdDev is the noise standard deviation for a segment base.
func NoiseStdDev(base float64) float64 {
	return NoiseFraction * base
}

// MonthStart returns the first day of the month i months after start.
func MonthStart(start time.Time, i int) time.Time {
	return time.Date(start.Year(), start.Month()+time.Month(i), 1, 0, 0, 0, 0, start.Location())
}

// Generate builds len(segments)*months records. start is truncated to the
// first of its month.
func Generate(src NoiseSource, segments []Segment, start time.Time, months int) ([]Record, error) {
	if src == nil {
		return nil, ErrNoNoiseSource
	}
	if months <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidMonths, months)
	}
	if err := validateSegments(segments); err != nil {
		return nil, err
	}

	plan := BuildPlan(len(segments), months)
	records := make([]Record, 0, len(plan))
	for _, step := range plan {
		s := segments[step.SegmentIndex]
		i := step.MonthIndex

		season := Season(s.SeasonalAmplitude, s.PhaseOffset, i)
		growth := Growth(s.MonthlyGrowthRate, i)
		noise := src.Normal(0, NoiseStdDev(s.Base))

		records = append(records, Record{
			Month:      MonthStart(start, i),
			MonthIndex: i,
			Segment:    s.Name,
			Revenue:    s.Base*season*growth + noise,
			Season:     season,
			Growth:     growth,
			Noise:      noise,
		})
	}

	return records, nil
}
