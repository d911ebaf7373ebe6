package charts

// Line chart of monthly revenue, one line per segment, whitegrid look.

import (
	"fmt"
	"image/color"
	"math"
	"sort"
	"time"

	"revenue-chart/internal/features/revenue"
	"revenue-chart/internal/infra/fs"
	logging "revenue-chart/internal/infra/log"

	"github.com/fogleman/gg"
	"go.uber.org/zap"
	"golang.org/x/image/font"
)

const (
	outerPad   = 8.0 // px, tight layout padding around the figure
	labelGap   = 5.0 // px between a label and what it labels
	legendPad  = 6.0 // px between plot frame and legend box
	legendGap  = 5.0 // px inside the legend box
	yTickCount = 8
	plotMargin = 0.05 // share of the data span added on each side
)

type point struct {
	x     float64 // months since the first month in the table
	month time.Time
	y     float64
}

type series struct {
	name   string
	color  color.RGBA
	points []point
}

// buildSeries groups records by segment in first-seen order and sorts each
// segment's points by month.
func buildSeries(records []revenue.Record) ([]series, time.Time) {
	if len(records) == 0 {
		return nil, time.Time{}
	}

	first := records[0].Month
	for _, r := range records {
		if r.Month.Before(first) {
			first = r.Month
		}
	}

	index := make(map[string]int)
	var out []series
	for _, r := range records {
		pos, ok := index[r.Segment]
		if !ok {
			pos = len(out)
			index[r.Segment] = pos
			out = append(out, series{name: r.Segment, color: seriesColor(pos)})
		}
		out[pos].points = append(out[pos].points, point{
			x:     float64(monthsBetween(first, r.Month)),
			month: r.Month,
			y:     r.Revenue,
		})
	}

	for i := range out {
		pts := out[i].points
		sort.SliceStable(pts, func(a, b int) bool { return pts[a].month.Before(pts[b].month) })
	}
	return out, first
}

func monthsBetween(from, to time.Time) int {
	return (to.Year()-from.Year())*12 + int(to.Month()-from.Month())
}

// faces holds one font face per text role.
type faces struct {
	title, label, tick, legend, legendTitle font.Face
}

func (s Style) loadFaces() (faces, error) {
	var f faces
	var err error
	for _, item := range []struct {
		dst  *font.Face
		size float64
	}{
		{&f.title, titleFontSize},
		{&f.label, labelFontSize},
		{&f.tick, tickFontSize},
		{&f.legend, legendFontSize},
		{&f.legendTitle, legendTitleFontSize},
	} {
		if *item.dst, err = s.fontFace(item.size); err != nil {
			return faces{}, err
		}
	}
	return f, nil
}

// plotArea maps data coordinates to canvas pixels.
type plotArea struct {
	left, right, top, bottom float64
	xlo, xhi, ylo, yhi       float64
}

func (p plotArea) px(x float64) float64 {
	return p.left + (x-p.xlo)/(p.xhi-p.xlo)*(p.right-p.left)
}

func (p plotArea) py(y float64) float64 {
	return p.bottom - (y-p.ylo)/(p.yhi-p.ylo)*(p.bottom-p.top)
}

func padRange(lo, hi float64) (float64, float64) {
	span := hi - lo
	if span == 0 {
		span = math.Max(math.Abs(lo), 1)
	}
	return lo - plotMargin*span, hi + plotMargin*span
}

// GenerateRevenueChart draws the records as a line chart and saves it as PNG
// at path. It returns path once the saved file has the expected size.
func GenerateRevenueChart(records []revenue.Record, style Style, path string) (string, error) {
	start := time.Now()

	if err := style.validate(); err != nil {
		return "", err
	}
	lines, firstMonth := buildSeries(records)
	if len(lines) == 0 {
		return "", fmt.Errorf("no revenue data available")
	}

	ff, err := style.loadFaces()
	if err != nil {
		return "", err
	}

	// Data ranges
	yMin, yMax := math.Inf(1), math.Inf(-1)
	xMax := 0.0
	for _, s := range lines {
		for _, p := range s.points {
			if math.IsNaN(p.y) || math.IsInf(p.y, 0) {
				return "", fmt.Errorf("non-finite revenue %g for %s %s", p.y, s.name, p.month.Format("2006-01"))
			}
			yMin = math.Min(yMin, p.y)
			yMax = math.Max(yMax, p.y)
			xMax = math.Max(xMax, p.x)
		}
	}
	xlo, xhi := padRange(0, xMax)
	ylo, yhi := padRange(yMin, yMax)

	xTicks := tickLocator{maxTicks: style.MaxXTicks, minStep: 1, integer: true}.ticks(0, xMax)
	yTicks := tickLocator{maxTicks: yTickCount}.ticks(ylo, yhi)

	xTickLabels := make([]string, len(xTicks))
	for i, v := range xTicks {
		xTickLabels[i] = revenue.MonthStart(firstMonth, int(v)).Format(style.MonthLayout)
	}
	yTickLabels := make([]string, len(yTicks))
	for i, v := range yTicks {
		yTickLabels[i] = revenue.FormatUSD(v)
	}

	dc := gg.NewContext(style.WidthPx, style.HeightPx)
	dc.SetColor(background)
	dc.Clear()

	// Tight layout: measure every label before placing the plot frame.
	dc.SetFontFace(ff.title)
	titleH := dc.FontHeight()
	dc.SetFontFace(ff.label)
	labelH := dc.FontHeight()
	dc.SetFontFace(ff.tick)
	tickH := dc.FontHeight()
	maxYTickW := 0.0
	for _, l := range yTickLabels {
		w, _ := dc.MeasureString(l)
		maxYTickW = math.Max(maxYTickW, w)
	}
	maxXTickW := 0.0
	for _, l := range xTickLabels {
		w, _ := dc.MeasureString(l)
		maxXTickW = math.Max(maxXTickW, w)
	}

	width, height := float64(style.WidthPx), float64(style.HeightPx)
	area := plotArea{
		left:   outerPad + labelH + labelGap + maxYTickW + labelGap,
		right:  width - outerPad - maxXTickW/2,
		top:    outerPad + titleH + 2*labelGap,
		bottom: height - outerPad - labelH - labelGap - tickH - labelGap,
		xlo:    xlo,
		xhi:    xhi,
		ylo:    ylo,
		yhi:    yhi,
	}
	if area.right-area.left < 1 || area.bottom-area.top < 1 {
		return "", fmt.Errorf("canvas %dx%d is too small for labels", style.WidthPx, style.HeightPx)
	}

	// Grid
	dc.SetColor(gridColor)
	dc.SetLineWidth(style.px(gridLineWidth))
	for _, v := range yTicks {
		y := area.py(v)
		dc.DrawLine(area.left, y, area.right, y)
		dc.Stroke()
	}
	for _, v := range xTicks {
		x := area.px(v)
		dc.DrawLine(x, area.top, x, area.bottom)
		dc.Stroke()
	}

	// Frame
	dc.SetLineWidth(style.px(spineLineWidth))
	dc.DrawRectangle(area.left, area.top, area.right-area.left, area.bottom-area.top)
	dc.Stroke()

	// Tick labels
	dc.SetColor(textColor)
	dc.SetFontFace(ff.tick)
	for i, v := range yTicks {
		dc.DrawStringAnchored(yTickLabels[i], area.left-labelGap, area.py(v), 1, 0.35)
	}
	for i, v := range xTicks {
		dc.DrawStringAnchored(xTickLabels[i], area.px(v), area.bottom+labelGap, 0.5, 0.8)
	}

	// Lines and markers
	lineW := style.px(style.LineWidth)
	markerR := style.px(style.MarkerSize) / 2
	dc.SetLineCapRound()
	dc.SetLineJoinRound()
	for _, s := range lines {
		dc.SetColor(s.color)
		dc.SetLineWidth(lineW)
		for i, p := range s.points {
			if i == 0 {
				dc.MoveTo(area.px(p.x), area.py(p.y))
			} else {
				dc.LineTo(area.px(p.x), area.py(p.y))
			}
		}
		dc.Stroke()

		for _, p := range s.points {
			drawMarker(dc, area.px(p.x), area.py(p.y), markerR, s.color, style.px(markerEdge))
		}
	}

	// Title and axis labels
	dc.SetColor(textColor)
	dc.SetFontFace(ff.title)
	dc.DrawStringAnchored(style.Title, (area.left+area.right)/2, outerPad, 0.5, 0.8)

	dc.SetFontFace(ff.label)
	dc.DrawStringAnchored(style.XLabel, (area.left+area.right)/2, height-outerPad-labelH, 0.5, 0.8)

	yLabelX, yLabelY := outerPad+labelH/2, (area.top+area.bottom)/2
	dc.Push()
	dc.RotateAbout(gg.Radians(-90), yLabelX, yLabelY)
	dc.DrawStringAnchored(style.YLabel, yLabelX, yLabelY, 0.5, 0.35)
	dc.Pop()

	drawLegend(dc, style, ff, area, lines, lineW, markerR)

	if err := fs.WriteFileAtomic(path, dc.EncodePNG); err != nil {
		return "", fmt.Errorf("failed to save chart: %w", err)
	}

	info, err := fs.StatImage(path)
	if err != nil {
		logging.LogError("Chart file is unreadable after rendering", zap.String("filename", path), zap.Error(err))
		return "", fmt.Errorf("failed to verify chart: %w", err)
	}
	if info.Width != style.WidthPx || info.Height != style.HeightPx {
		return "", fmt.Errorf("chart is %dx%d px, want %dx%d", info.Width, info.Height, style.WidthPx, style.HeightPx)
	}

	logging.LogInfo("Revenue chart generated successfully",
		zap.String("filename", path),
		zap.Int64("fileSize", info.Size),
		zap.Int("width", info.Width),
		zap.Int("height", info.Height),
		zap.Int("seriesCount", len(lines)),
		zap.Int("xTicks", len(xTicks)),
		logging.Since(start))

	return path, nil
}

// drawMarker draws a filled circle with a thin white edge.
func drawMarker(dc *gg.Context, x, y, r float64, c color.Color, edge float64) {
	dc.DrawCircle(x, y, r)
	dc.SetColor(c)
	dc.FillPreserve()
	dc.SetColor(color.White)
	dc.SetLineWidth(edge)
	dc.Stroke()
}

// drawLegend draws a framed legend in the upper-left corner of the plot.
func drawLegend(dc *gg.Context, style Style, ff faces, area plotArea, lines []series, lineW, markerR float64) {
	dc.SetFontFace(ff.legendTitle)
	titleW, titleH := dc.MeasureString(style.LegendTitle)

	dc.SetFontFace(ff.legend)
	rowH := dc.FontHeight() * 1.4
	handleLen := dc.FontHeight() * 2
	maxNameW := 0.0
	for _, s := range lines {
		w, _ := dc.MeasureString(s.name)
		maxNameW = math.Max(maxNameW, w)
	}

	boxW := math.Max(titleW, handleLen+legendGap+maxNameW) + 2*legendGap
	boxH := legendGap + titleH + legendGap/2 + float64(len(lines))*rowH + legendGap
	x0, y0 := area.left+legendPad, area.top+legendPad

	dc.DrawRoundedRectangle(x0, y0, boxW, boxH, 3)
	dc.SetRGBA(1, 1, 1, 0.8)
	dc.FillPreserve()
	dc.SetColor(gridColor)
	dc.SetLineWidth(1)
	dc.Stroke()

	dc.SetColor(textColor)
	dc.SetFontFace(ff.legendTitle)
	dc.DrawStringAnchored(style.LegendTitle, x0+boxW/2, y0+legendGap, 0.5, 0.8)

	dc.SetFontFace(ff.legend)
	rowsTop := y0 + legendGap + titleH + legendGap/2
	for i, s := range lines {
		cy := rowsTop + (float64(i)+0.5)*rowH
		hx := x0 + legendGap

		dc.SetColor(s.color)
		dc.SetLineWidth(lineW)
		dc.DrawLine(hx, cy, hx+handleLen, cy)
		dc.Stroke()
		drawMarker(dc, hx+handleLen/2, cy, markerR, s.color, style.px(markerEdge))

		dc.SetColor(textColor)
		dc.DrawStringAnchored(s.name, hx+handleLen+legendGap, cy, 0, 0.35)
	}
}
