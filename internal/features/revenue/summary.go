package revenue

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	upColor   = color.New(color.FgGreen, color.Bold)
	downColor = color.New(color.FgRed, color.Bold)
	flatColor = color.New(color.FgHiBlack)

	usd = message.NewPrinter(language.English)
)

// SegmentSummary aggregates one segment's records.
type SegmentSummary struct {
	Segment   string
	Months    int
	First     float64
	Last      float64
	Min       float64
	Max       float64
	Mean      float64
	GrowthPct float64 // (Last - First) / First * 100
}

// Summarize returns one summary per segment, in first-seen order. Records are
// expected in chronological order within a segment, as Generate returns them.
func Summarize(records []Record) []SegmentSummary {
	index := make(map[string]int)
	var summaries []SegmentSummary

	for _, r := range records {
		pos, ok := index[r.Segment]
		if !ok {
			pos = len(summaries)
			index[r.Segment] = pos
			summaries = append(summaries, SegmentSummary{
				Segment: r.Segment,
				First:   r.Revenue,
				Min:     math.Inf(1),
				Max:     math.Inf(-1),
			})
		}
		s := &summaries[pos]
		s.Months++
		s.Last = r.Revenue
		s.Min = math.Min(s.Min, r.Revenue)
		s.Max = math.Max(s.Max, r.Revenue)
		s.Mean += r.Revenue
	}

	for i := range summaries {
		s := &summaries[i]
		s.Mean /= float64(s.Months)
		if s.First != 0 {
			s.GrowthPct = (s.Last - s.First) / s.First * 100
		}
	}
	return summaries
}

// FormatUSD formats v as whole dollars with thousands separators.
func FormatUSD(v float64) string {
	return usd.Sprintf("%.0f", v)
}

// trendLabel returns a colored label for the first-to-last month change.
func trendLabel(pct float64) string {
	text := fmt.Sprintf("%+.1f%%", pct)
	switch {
	case pct >= 0.5:
		return upColor.Sprint("▲ " + text)
	case pct <= -0.5:
		return downColor.Sprint("▼ " + text)
	default:
		return flatColor.Sprint("= " + text)
	}
}

// PrintSummary writes the per-segment table to w.
func PrintSummary(w io.Writer, summaries []SegmentSummary) error {
	table := tablewriter.NewWriter(w)

	headers := []string{"Segment", "Months", "First", "Last", "Min", "Max", "Mean", "Trend"}
	table.Header(headers)

	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, s := range summaries {
		data = append(data, []string{
			s.Segment,
			strconv.Itoa(s.Months),
			FormatUSD(s.First),
			FormatUSD(s.Last),
			FormatUSD(s.Min),
			FormatUSD(s.Max),
			FormatUSD(s.Mean),
			trendLabel(s.GrowthPct),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}
