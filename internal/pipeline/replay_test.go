package pipeline

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"fleetviz/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errNoRun = errors.New("run not found")

// mockRunReader serves runs from memory
type mockRunReader struct {
	runs      map[string]models.Run
	modeRows  map[string][]models.AggregatedRow
	statsRows map[string][]models.StatsRow
	recent    []models.Run
	pipeline  string
	limit     int
}

func (m *mockRunReader) Get(runID string) (*models.Run, error) {
	run, ok := m.runs[runID]
	if !ok {
		return nil, errNoRun
	}
	return &run, nil
}

func (m *mockRunReader) ModeSummaries(runID string) ([]models.AggregatedRow, error) {
	return m.modeRows[runID], nil
}

func (m *mockRunReader) TypeStats(runID string) ([]models.StatsRow, error) {
	return m.statsRows[runID], nil
}

func (m *mockRunReader) Recent(pipeline string, limit int) ([]models.Run, error) {
	m.pipeline = pipeline
	m.limit = limit
	return m.recent, nil
}

func newMockRunReader() *mockRunReader {
	return &mockRunReader{
		runs: map[string]models.Run{
			"m1": {ID: "m1", Pipeline: models.PipelineModes, Source: "mode_stats.csv", RowCount: 1},
			"s1": {ID: "s1", Pipeline: models.PipelineStats, Source: "output.csv", RowCount: 1},
			"x1": {ID: "x1", Pipeline: "histogram"},
		},
		modeRows: map[string][]models.AggregatedRow{
			"m1": {{VehicleType: "A", Records: 2, Means: models.ModeTimes{2, 0, 0, 1, 2}}},
		},
		statsRows: map[string][]models.StatsRow{
			"s1": {{VehicleType: "A", Values: [models.NumMetrics]float64{5, 1.2, 120, 0.6, 1, 6000}}},
		},
	}
}

func TestReplay_Modes(t *testing.T) {
	sink := &mockSink{}
	p := &Replay{Runs: newMockRunReader(), Sink: sink, ModeOptions: testOptions, StatsOptions: testOptions}

	require.NoError(t, p.Run("m1"))
	require.Len(t, sink.images, 1)
	assert.Equal(t, "Average Time Distribution by Vehicle Type", sink.titles[0])
	assert.Equal(t, testOptions.Width, sink.images[0].Bounds().Dx())
}

func TestReplay_Stats(t *testing.T) {
	sink := &mockSink{}
	p := &Replay{Runs: newMockRunReader(), Sink: sink, ModeOptions: testOptions, StatsOptions: testOptions}

	require.NoError(t, p.Run("s1"))
	require.Len(t, sink.titles, 1)
	assert.Equal(t, dashboardTitle, sink.titles[0])
}

func TestReplay_UnknownRun(t *testing.T) {
	sink := &mockSink{}
	p := &Replay{Runs: newMockRunReader(), Sink: sink, ModeOptions: testOptions, StatsOptions: testOptions}

	assert.ErrorIs(t, p.Run("missing"), errNoRun)
	assert.Empty(t, sink.images)
}

func TestReplay_UnknownPipeline(t *testing.T) {
	p := &Replay{Runs: newMockRunReader(), Sink: &mockSink{}, ModeOptions: testOptions, StatsOptions: testOptions}

	err := p.Run("x1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "histogram")
}

func TestListRuns(t *testing.T) {
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	runs := newMockRunReader()
	runs.recent = []models.Run{
		{ID: "m2", Pipeline: models.PipelineModes, Source: "b.csv", RowCount: 4, CreatedAt: created.Add(time.Hour)},
		{ID: "m1", Pipeline: models.PipelineModes, Source: "a.csv", RowCount: 3, CreatedAt: created},
	}

	var buf bytes.Buffer
	require.NoError(t, ListRuns(&buf, runs, models.PipelineModes, 5))

	assert.Equal(t, models.PipelineModes, runs.pipeline)
	assert.Equal(t, 5, runs.limit)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, []string{"ID", "PIPELINE", "CREATED", "ROWS", "SOURCE"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"m2", models.PipelineModes, "2024-03-01T13:00:00Z", "4", "b.csv"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"m1", models.PipelineModes, "2024-03-01T12:00:00Z", "3", "a.csv"}, strings.Fields(lines[2]))
}
