package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds every parameter of a run. Nothing is read from files, env or
// flags: the defaults below are the configuration.
type Config struct {
	Generator GeneratorConfig `mapstructure:"generator"`
	Chart     ChartConfig     `mapstructure:"chart"`
	Segments  []SegmentConfig `mapstructure:"segments"`
}

type GeneratorConfig struct {
	Seed       uint64 `mapstructure:"seed"`
	StartMonth string `mapstructure:"start_month"` // YYYY-MM, first of month is implied
	Months     int    `mapstructure:"months"`
}

// ChartConfig describes the output image. Sizes are in points unless noted.
type ChartConfig struct {
	OutputPath   string  `mapstructure:"output_path"`
	WidthInches  float64 `mapstructure:"width_inches"`
	HeightInches float64 `mapstructure:"height_inches"`
	DPI          int     `mapstructure:"dpi"`
	Title        string  `mapstructure:"title"`
	XLabel       string  `mapstructure:"x_label"`
	YLabel       string  `mapstructure:"y_label"`
	LegendTitle  string  `mapstructure:"legend_title"`
	MaxXTicks    int     `mapstructure:"max_x_ticks"`
	LineWidth    float64 `mapstructure:"line_width"`
	MarkerSize   float64 `mapstructure:"marker_size"` // diameter
	FontScale    float64 `mapstructure:"font_scale"`
}

type SegmentConfig struct {
	Name              string  `mapstructure:"name"`
	Base              float64 `mapstructure:"base"`
	SeasonalAmplitude float64 `mapstructure:"seasonal_amplitude"`
	MonthlyGrowthRate float64 `mapstructure:"monthly_growth_rate"`
	PhaseOffset       float64 `mapstructure:"phase_offset"`
}

const startMonthLayout = "2006-01"

// StartTime returns the first month as a UTC first-of-month date.
func (g GeneratorConfig) StartTime() (time.Time, error) {
	t, err := time.Parse(startMonthLayout, g.StartMonth)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid generator.start_month %q: %w", g.StartMonth, err)
	}
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC), nil
}

// WidthPx and HeightPx are the canvas size in pixels.
func (c ChartConfig) WidthPx() int {
	return int(c.WidthInches*float64(c.DPI) + 0.5)
}

func (c ChartConfig) HeightPx() int {
	return int(c.HeightInches*float64(c.DPI) + 0.5)
}

// LoadConfig builds the run configuration from the built-in defaults.
func LoadConfig() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// setDefaults sets every key. Segment order matters: noise is drawn in this order.
func setDefaults(v *viper.Viper) {
	// Generator
	v.SetDefault("generator.seed", 42)
	v.SetDefault("generator.start_month", "2024-01")
	v.SetDefault("generator.months", 12)

	// Chart: 8in x 8in at 64 dpi = 512 x 512 px
	v.SetDefault("chart.output_path", "chart.png")
	v.SetDefault("chart.width_inches", 8.0)
	v.SetDefault("chart.height_inches", 8.0)
	v.SetDefault("chart.dpi", 64)
	v.SetDefault("chart.title", "Monthly Revenue by Customer Segment (Synthetic)")
	v.SetDefault("chart.x_label", "Month (2024)")
	v.SetDefault("chart.y_label", "Revenue (USD)")
	v.SetDefault("chart.legend_title", "Segment")
	v.SetDefault("chart.max_x_ticks", 6)
	v.SetDefault("chart.line_width", 2.0)
	v.SetDefault("chart.marker_size", 8.1)
	v.SetDefault("chart.font_scale", 0.9)

	// Segments
	v.SetDefault("segments", []map[string]any{
		{"name": "Enterprise", "base": 120_000.0, "seasonal_amplitude": 0.08, "monthly_growth_rate": 0.004, "phase_offset": 0.0},
		{"name": "SMB", "base": 75_000.0, "seasonal_amplitude": 0.12, "monthly_growth_rate": 0.006, "phase_offset": 0.3},
		{"name": "Consumer", "base": 90_000.0, "seasonal_amplitude": 0.18, "monthly_growth_rate": 0.008, "phase_offset": 0.6},
	})
}

func validateConfig(cfg *Config) error {
	if _, err := cfg.Generator.StartTime(); err != nil {
		return err
	}
	if cfg.Generator.Months <= 0 {
		return fmt.Errorf("generator.months must be positive, got %d", cfg.Generator.Months)
	}

	if cfg.Chart.OutputPath == "" {
		return fmt.Errorf("chart.output_path is required")
	}
	if cfg.Chart.DPI <= 0 || cfg.Chart.WidthInches <= 0 || cfg.Chart.HeightInches <= 0 {
		return fmt.Errorf("chart size must be positive: %gx%g in at %d dpi",
			cfg.Chart.WidthInches, cfg.Chart.HeightInches, cfg.Chart.DPI)
	}
	if cfg.Chart.MaxXTicks < 2 {
		return fmt.Errorf("chart.max_x_ticks must be at least 2, got %d", cfg.Chart.MaxXTicks)
	}
	if cfg.Chart.LineWidth <= 0 || cfg.Chart.FontScale <= 0 {
		return fmt.Errorf("chart.line_width and chart.font_scale must be positive")
	}

	if len(cfg.Segments) == 0 {
		return fmt.Errorf("at least one segment is required")
	}
	seen := make(map[string]bool, len(cfg.Segments))
	for _, s := range cfg.Segments {
		if seen[s.Name] {
			return fmt.Errorf("duplicate segment %q", s.Name)
		}
		seen[s.Name] = true
	}

	return nil
}
