package revenue

import (
	"fmt"
	"math"
)

// Segment is one customer segment's revenue model.
type Segment struct {
	Name              string
	Base              float64 // mean monthly revenue before season and growth
	SeasonalAmplitude float64 // in [0, 1)
	MonthlyGrowthRate float64 // compounded per elapsed month
	PhaseOffset       float64 // radians, added inside the seasonal sine
}

// DefaultSegments returns the three built-in segments in declaration order.
func DefaultSegments() []Segment {
	return []Segment{
		{Name: "Enterprise", Base: 120_000, SeasonalAmplitude: 0.08, MonthlyGrowthRate: 0.004, PhaseOffset: 0.0},
		{Name: "SMB", Base: 75_000, SeasonalAmplitude: 0.12, MonthlyGrowthRate: 0.006, PhaseOffset: 0.3},
		{Name: "Consumer", Base: 90_000, SeasonalAmplitude: 0.18, MonthlyGrowthRate: 0.008, PhaseOffset: 0.6},
	}
}

func (s Segment) validate() error {
	if s.Name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidSegment)
	}
	for _, v := range []float64{s.Base, s.SeasonalAmplitude, s.MonthlyGrowthRate, s.PhaseOffset} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s has a non-finite parameter", ErrInvalidSegment, s.Name)
		}
	}
	if s.Base <= 0 {
		return fmt.Errorf("%w: %s base must be positive, got %g", ErrInvalidSegment, s.Name, s.Base)
	}
	if s.SeasonalAmplitude < 0 || s.SeasonalAmplitude >= 1 {
		return fmt.Errorf("%w: %s seasonal amplitude must be in [0,1), got %g", ErrInvalidSegment, s.Name, s.SeasonalAmplitude)
	}
	if s.MonthlyGrowthRate <= -1 {
		return fmt.Errorf("%w: %s monthly growth rate must be above -1, got %g", ErrInvalidSegment, s.Name, s.MonthlyGrowthRate)
	}
	return nil
}

func validateSegments(segments []Segment) error {
	if len(segments) == 0 {
		return ErrNoSegments
	}
	seen := make(map[string]bool, len(segments))
	for _, s := range segments {
		if err := s.validate(); err != nil {
			return err
		}
		if seen[s.Name] {
			return fmt.Errorf("%w: duplicate segment %s", ErrInvalidSegment, s.Name)
		}
		seen[s.Name] = true
	}
	return nil
}
