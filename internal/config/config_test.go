package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, uint64(42), cfg.Generator.Seed)
	assert.Equal(t, 12, cfg.Generator.Months)

	start, err := cfg.Generator.StartTime()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), start)

	assert.Equal(t, "chart.png", cfg.Chart.OutputPath)
	assert.Equal(t, 512, cfg.Chart.WidthPx())
	assert.Equal(t, 512, cfg.Chart.HeightPx())
	assert.Equal(t, "Monthly Revenue by Customer Segment (Synthetic)", cfg.Chart.Title)
	assert.Equal(t, "Month (2024)", cfg.Chart.XLabel)
	assert.Equal(t, "Revenue (USD)", cfg.Chart.YLabel)
	assert.Equal(t, "Segment", cfg.Chart.LegendTitle)
	assert.Equal(t, 6, cfg.Chart.MaxXTicks)
	assert.Equal(t, 2.0, cfg.Chart.LineWidth)
}

func TestLoadConfig_SegmentsInDeclarationOrder(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	want := []SegmentConfig{
		{Name: "Enterprise", Base: 120000, SeasonalAmplitude: 0.08, MonthlyGrowthRate: 0.004, PhaseOffset: 0.0},
		{Name: "SMB", Base: 75000, SeasonalAmplitude: 0.12, MonthlyGrowthRate: 0.006, PhaseOffset: 0.3},
		{Name: "Consumer", Base: 90000, SeasonalAmplitude: 0.18, MonthlyGrowthRate: 0.008, PhaseOffset: 0.6},
	}
	assert.Equal(t, want, cfg.Segments)
}

func decodeWith(t *testing.T, overrides map[string]any) *Config {
	t.Helper()
	v := viper.New()
	setDefaults(v)
	for k, val := range overrides {
		v.Set(k, val)
	}
	var cfg Config
	require.NoError(t, v.Unmarshal(&cfg))
	return &cfg
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name      string
		overrides map[string]any
		wantErr   string
	}{
		{"defaults", nil, ""},
		{"bad start month", map[string]any{"generator.start_month": "2024/01"}, "start_month"},
		{"zero months", map[string]any{"generator.months": 0}, "generator.months"},
		{"empty output", map[string]any{"chart.output_path": ""}, "output_path"},
		{"zero dpi", map[string]any{"chart.dpi": 0}, "chart size"},
		{"one tick", map[string]any{"chart.max_x_ticks": 1}, "max_x_ticks"},
		{"no segments", map[string]any{"segments": []map[string]any{}}, "segment"},
		{"duplicate segment", map[string]any{"segments": []map[string]any{
			{"name": "SMB", "base": 1.0},
			{"name": "SMB", "base": 2.0},
		}}, "duplicate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateConfig(decodeWith(t, tt.overrides))
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
