package charts

import (
	"fmt"
	"image/color"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

// Style is everything the renderer needs besides the data. Sizes are in
// points and converted with DPI, except the canvas size which is in pixels.
type Style struct {
	WidthPx  int
	HeightPx int
	DPI      int

	Title       string
	XLabel      string
	YLabel      string
	LegendTitle string
	MonthLayout string // x tick label format

	MaxXTicks  int
	LineWidth  float64
	MarkerSize float64 // diameter
	FontScale  float64
}

// DefaultStyle is an 8in square canvas at 64 dpi.
func DefaultStyle() Style {
	return Style{
		WidthPx:     512,
		HeightPx:    512,
		DPI:         64,
		Title:       "Monthly Revenue by Customer Segment (Synthetic)",
		XLabel:      "Month (2024)",
		YLabel:      "Revenue (USD)",
		LegendTitle: "Segment",
		MonthLayout: "Jan",
		MaxXTicks:   6,
		LineWidth:   2,
		MarkerSize:  8.1,
		FontScale:   0.9,
	}
}

func (s Style) validate() error {
	if s.WidthPx <= 0 || s.HeightPx <= 0 || s.DPI <= 0 {
		return fmt.Errorf("invalid canvas %dx%d at %d dpi", s.WidthPx, s.HeightPx, s.DPI)
	}
	if s.MaxXTicks < 2 {
		return fmt.Errorf("max x ticks must be at least 2, got %d", s.MaxXTicks)
	}
	if s.FontScale <= 0 {
		return fmt.Errorf("font scale must be positive, got %g", s.FontScale)
	}
	return nil
}

// px converts points to pixels.
func (s Style) px(pt float64) float64 {
	return pt * float64(s.DPI) / 72
}

// Font sizes of the "talk" plotting context, in points, before FontScale.
const (
	titleFontSize       = 18.0
	labelFontSize       = 18.0
	tickFontSize        = 16.5
	legendFontSize      = 16.5
	legendTitleFontSize = 18.0

	gridLineWidth  = 1.5   // pt
	spineLineWidth = 1.875 // pt
	markerEdge     = 1.0   // pt
)

var (
	// Seaborn "deep" palette, in hue order.
	palette = []color.RGBA{
		{0x4C, 0x72, 0xB0, 0xFF},
		{0xDD, 0x84, 0x52, 0xFF},
		{0x55, 0xA8, 0x68, 0xFF},
		{0xC4, 0x4E, 0x52, 0xFF},
		{0x81, 0x72, 0xB3, 0xFF},
		{0x93, 0x78, 0x60, 0xFF},
		{0xDA, 0x8B, 0xC3, 0xFF},
		{0x8C, 0x8C, 0x8C, 0xFF},
		{0xCC, 0xB9, 0x74, 0xFF},
		{0x64, 0xB5, 0xCD, 0xFF},
	}

	gridColor  = color.RGBA{0xCC, 0xCC, 0xCC, 0xFF}
	textColor  = color.RGBA{0x26, 0x26, 0x26, 0xFF}
	background = color.White
)

func seriesColor(i int) color.RGBA {
	return palette[i%len(palette)]
}

var (
	regularFont     *truetype.Font
	regularFontErr  error
	regularFontOnce sync.Once
)

// fontFace returns the embedded Go Regular face at size points.
func (s Style) fontFace(size float64) (font.Face, error) {
	regularFontOnce.Do(func() {
		regularFont, regularFontErr = truetype.Parse(goregular.TTF)
	})
	if regularFontErr != nil {
		return nil, fmt.Errorf("failed to parse embedded font: %w", regularFontErr)
	}
	return truetype.NewFace(regularFont, &truetype.Options{
		Size:    size * s.FontScale,
		DPI:     float64(s.DPI),
		Hinting: font.HintingFull,
	}), nil
}
