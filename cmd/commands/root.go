package commands

// Root command for Cobra CLI
// Generates the synthetic revenue table, renders chart.png and prints a per-segment summary
// Takes no flags and no arguments: every parameter is a built-in default

import (
	"fmt"
	"io"
	"os"
	"time"

	"revenue-chart/internal/config"
	"revenue-chart/internal/features/charts"
	"revenue-chart/internal/features/revenue"
	"revenue-chart/internal/infra/log"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var rootCmd = &cobra.Command{
	Use:   "revenue-chart",
	Short: "Render a synthetic monthly revenue chart by customer segment",
	Long: `revenue-chart generates twelve months of synthetic revenue for three customer
segments from a fixed seed and renders them as a line chart to chart.png (512x512 px).`,
	Version:       "1.0.0",
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runChart,
}

func Execute() error {
	defer log.Sync()
	return rootCmd.Execute()
}

func runChart(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.LogError("Failed to load config", zap.Error(err))
		return err
	}
	return run(cfg, cmd.OutOrStdout())
}

// run executes the pipeline: generate, render, summarize.
func run(cfg *config.Config, out io.Writer) error {
	started := time.Now()

	start, err := cfg.Generator.StartTime()
	if err != nil {
		return err
	}

	records, err := revenue.Generate(
		revenue.NewSeededNoise(cfg.Generator.Seed),
		segmentsFromConfig(cfg.Segments),
		start,
		cfg.Generator.Months,
	)
	if err != nil {
		log.LogError("Failed to generate revenue data", zap.Error(err))
		return fmt.Errorf("failed to generate revenue data: %w", err)
	}
	log.LogInfo("Generated synthetic revenue",
		zap.Int("records", len(records)),
		zap.Int("segments", len(cfg.Segments)),
		zap.Uint64("seed", cfg.Generator.Seed))

	if info, err := os.Stat(cfg.Chart.OutputPath); err == nil {
		log.LogWarn("Overwriting existing chart",
			zap.String("filename", cfg.Chart.OutputPath),
			zap.Int64("fileSize", info.Size()))
	}

	path, err := charts.GenerateRevenueChart(records, styleFromConfig(cfg.Chart), cfg.Chart.OutputPath)
	if err != nil {
		log.LogError("Failed to render chart", zap.Error(err))
		return fmt.Errorf("failed to render chart: %w", err)
	}

	if err := revenue.PrintSummary(out, revenue.Summarize(records)); err != nil {
		return fmt.Errorf("failed to print summary: %w", err)
	}

	log.LogSuccess("Chart saved to "+path, log.Since(started))
	return nil
}

func segmentsFromConfig(in []config.SegmentConfig) []revenue.Segment {
	out := make([]revenue.Segment, 0, len(in))
	for _, s := range in {
		out = append(out, revenue.Segment{
			Name:              s.Name,
			Base:              s.Base,
			SeasonalAmplitude: s.SeasonalAmplitude,
			MonthlyGrowthRate: s.MonthlyGrowthRate,
			PhaseOffset:       s.PhaseOffset,
		})
	}
	return out
}

func styleFromConfig(c config.ChartConfig) charts.Style {
	style := charts.DefaultStyle()
	style.WidthPx = c.WidthPx()
	style.HeightPx = c.HeightPx()
	style.DPI = c.DPI
	style.Title = c.Title
	style.XLabel = c.XLabel
	style.YLabel = c.YLabel
	style.LegendTitle = c.LegendTitle
	style.MaxXTicks = c.MaxXTicks
	style.LineWidth = c.LineWidth
	style.MarkerSize = c.MarkerSize
	style.FontScale = c.FontScale
	return style
}
