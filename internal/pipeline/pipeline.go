package pipeline

import (
	"fmt"
	"image"
	"log/slog"

	"fleetviz/internal/aggregate"
	"fleetviz/internal/loader"
	"fleetviz/internal/models"
	"fleetviz/internal/render"
)

// Default input files written by the simulator
const (
	DefaultModesInput = "mode_stats.csv"
	DefaultStatsInput = "output.csv"
)

// Sink receives the finished figure
type Sink interface {
	Show(title string, img image.Image) error
}

// ModeArchive stores aggregated mode-time rows
type ModeArchive interface {
	SaveModeSummaries(source string, rows []models.AggregatedRow) (*models.Run, error)
}

// StatsArchive stores per-type statistics rows
type StatsArchive interface {
	SaveTypeStats(source string, rows []models.StatsRow) (*models.Run, error)
}

// Modes runs load, group-by mean, stacked chart
type Modes struct {
	Sink    Sink
	Archive ModeArchive // optional
	Options render.Options
}

// Run executes the pipeline on path, or on DefaultModesInput when path is empty
func (p *Modes) Run(path string) error {
	if path == "" {
		path = DefaultModesInput
	}

	table, err := loader.Load(path)
	if err != nil {
		return err
	}
	slog.Info("Loaded mode statistics", "path", path, "rows", table.Len(), "columns", len(table.Columns))

	rows, err := aggregate.Modes(table)
	if err != nil {
		return fmt.Errorf("failed to aggregate %s: %w", path, err)
	}
	slog.Info("Aggregated time in mode", "vehicle_types", len(rows))
	for _, r := range rows {
		slog.Debug("Vehicle type summary",
			"vehicle_type", r.VehicleType,
			"records", r.Records,
			"idle", r.Means[models.ModeIdle],
			"wait_chg", r.Means[models.ModeWaitChg],
			"chg_done", r.Means[models.ModeChgDone],
			"chg", r.Means[models.ModeChg],
			"fly", r.Means[models.ModeFly],
		)
	}

	if p.Archive != nil {
		run, err := p.Archive.SaveModeSummaries(path, rows)
		if err != nil {
			return fmt.Errorf("failed to archive run: %w", err)
		}
		slog.Info("Archived run", "run_id", run.ID, "pipeline", run.Pipeline)
	}

	return showModes(p.Sink, p.Options, rows)
}

// Stats runs load, validated passthrough, dashboard grid
type Stats struct {
	Sink    Sink
	Archive StatsArchive // optional
	Options render.Options
}

const dashboardTitle = "Vehicle Type Statistics"

// Run executes the pipeline on path, or on DefaultStatsInput when path is empty
func (p *Stats) Run(path string) error {
	if path == "" {
		path = DefaultStatsInput
	}

	table, err := loader.Load(path)
	if err != nil {
		return err
	}
	slog.Info("Loaded vehicle type statistics", "path", path, "rows", table.Len(), "columns", len(table.Columns))

	rows, err := aggregate.Stats(table)
	if err != nil {
		return fmt.Errorf("failed to validate %s: %w", path, err)
	}

	if p.Archive != nil {
		run, err := p.Archive.SaveTypeStats(path, rows)
		if err != nil {
			return fmt.Errorf("failed to archive run: %w", err)
		}
		slog.Info("Archived run", "run_id", run.ID, "pipeline", run.Pipeline)
	}

	return showStats(p.Sink, p.Options, rows)
}

func showModes(sink Sink, opts render.Options, rows []models.AggregatedRow) error {
	plan := render.PlanModes(rows)
	img, err := render.Modes(plan, opts)
	if err != nil {
		return err
	}

	if err := sink.Show(plan.Title, img); err != nil {
		return fmt.Errorf("failed to display chart: %w", err)
	}
	return nil
}

func showStats(sink Sink, opts render.Options, rows []models.StatsRow) error {
	img, err := render.Dashboard(render.PlanDashboard(rows), opts)
	if err != nil {
		return err
	}

	if err := sink.Show(dashboardTitle, img); err != nil {
		return fmt.Errorf("failed to display chart: %w", err)
	}
	return nil
}
