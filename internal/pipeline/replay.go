package pipeline

import (
	"fmt"
	"io"
	"log/slog"
	"text/tabwriter"
	"time"

	"fleetviz/internal/models"
	"fleetviz/internal/render"
)

// RunReader reads archived runs back out of the archive
type RunReader interface {
	Get(runID string) (*models.Run, error)
	ModeSummaries(runID string) ([]models.AggregatedRow, error)
	TypeStats(runID string) ([]models.StatsRow, error)
	Recent(pipeline string, limit int) ([]models.Run, error)
}

// Replay re-renders an archived run without reading its source file again
type Replay struct {
	Runs         RunReader
	Sink         Sink
	ModeOptions  render.Options
	StatsOptions render.Options
}

// Run looks up runID and draws it with the chart of the pipeline that produced it
func (p *Replay) Run(runID string) error {
	run, err := p.Runs.Get(runID)
	if err != nil {
		return err
	}
	slog.Info("Replaying archived run", "run_id", run.ID, "pipeline", run.Pipeline, "source", run.Source, "rows", run.RowCount)

	switch run.Pipeline {
	case models.PipelineModes:
		rows, err := p.Runs.ModeSummaries(run.ID)
		if err != nil {
			return err
		}
		return showModes(p.Sink, p.ModeOptions, rows)
	case models.PipelineStats:
		rows, err := p.Runs.TypeStats(run.ID)
		if err != nil {
			return err
		}
		return showStats(p.Sink, p.StatsOptions, rows)
	default:
		return fmt.Errorf("run %s has unknown pipeline %q", run.ID, run.Pipeline)
	}
}

// ListRuns writes the newest archived runs of a pipeline as an aligned table
func ListRuns(w io.Writer, runs RunReader, pipeline string, limit int) error {
	list, err := runs.Recent(pipeline, limit)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tPIPELINE\tCREATED\tROWS\tSOURCE")
	for _, r := range list {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n", r.ID, r.Pipeline, r.CreatedAt.Format(time.RFC3339), r.RowCount, r.Source)
	}
	return tw.Flush()
}
