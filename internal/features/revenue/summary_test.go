package revenue

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize(t *testing.T) {
	records := []Record{
		{Segment: "A", Revenue: 100},
		{Segment: "A", Revenue: 50},
		{Segment: "A", Revenue: 150},
		{Segment: "B", Revenue: 200},
		{Segment: "B", Revenue: 100},
	}

	got := Summarize(records)
	require.Len(t, got, 2)

	assert.Equal(t, SegmentSummary{
		Segment: "A", Months: 3, First: 100, Last: 150, Min: 50, Max: 150, Mean: 100, GrowthPct: 50,
	}, got[0])
	assert.Equal(t, "B", got[1].Segment)
	assert.Equal(t, -50.0, got[1].GrowthPct)
	assert.Equal(t, 150.0, got[1].Mean)
}

func TestSummarize_GeneratedTable(t *testing.T) {
	summaries := Summarize(generateDefault(t, zeroNoise{}))
	require.Len(t, summaries, 3)
	for _, s := range summaries {
		assert.Equal(t, MonthsPerYear, s.Months)
		assert.LessOrEqual(t, s.Min, s.Mean)
		assert.GreaterOrEqual(t, s.Max, s.Mean)
	}
	assert.Equal(t, 120_000.0, summaries[0].First)
}

func TestFormatUSD(t *testing.T) {
	assert.Equal(t, "120,000", FormatUSD(120_000))
	assert.Equal(t, "122,909", FormatUSD(122_908.96))
	assert.Equal(t, "-1,500", FormatUSD(-1_500))
}

func TestPrintSummary(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })

	var buf bytes.Buffer
	err := PrintSummary(&buf, []SegmentSummary{
		{Segment: "Enterprise", Months: 12, First: 120_000, Last: 135_000, Min: 110_000, Max: 140_000, Mean: 125_000, GrowthPct: 12.5},
		{Segment: "SMB", Months: 12, First: 80_000, Last: 70_000, Min: 65_000, Max: 82_000, Mean: 74_000, GrowthPct: -12.5},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Enterprise")
	assert.Contains(t, out, "135,000")
	assert.Contains(t, out, "▲ +12.5%")
	assert.Contains(t, out, "▼ -12.5%")
}
