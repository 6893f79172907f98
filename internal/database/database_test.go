package database

import (
	"path/filepath"
	"testing"
	"time"

	"fleetviz/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *DB {
	db, err := New(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	require.NotNil(t, db)

	t.Cleanup(func() {
		assert.NoError(t, db.Close())
	})
	return db
}

func TestNew(t *testing.T) {
	db := setupTestDB(t)

	// Schema creation is idempotent
	assert.NoError(t, db.initSchema())
}

func TestSaveModeSummaries(t *testing.T) {
	repo := setupTestDB(t).Runs()

	rows := []models.AggregatedRow{
		{VehicleType: "Echo", Records: 3, Means: models.ModeTimes{0.1, 0.2, 0.3, 0.15, 0.25}},
		{VehicleType: "Alpha", Records: 1, Means: models.ModeTimes{0.5, 0, 0, 0.2, 0.3}},
	}

	run, err := repo.SaveModeSummaries("mode_stats.csv", rows)
	require.NoError(t, err)
	require.NotNil(t, run)
	assert.NotEmpty(t, run.ID)
	assert.Equal(t, models.PipelineModes, run.Pipeline)
	assert.Equal(t, 2, run.RowCount)

	got, err := repo.ModeSummaries(run.ID)
	require.NoError(t, err)
	assert.Equal(t, rows, got)
}

func TestSaveTypeStats(t *testing.T) {
	repo := setupTestDB(t).Runs()

	rows := []models.StatsRow{
		{VehicleType: "Beta", Values: [models.NumMetrics]float64{3, 0.4, 50, 0.2, 0, 700}},
		{VehicleType: "Alpha", Values: [models.NumMetrics]float64{5, 1.2, 120, 0.6, 1, 6000}},
	}

	run, err := repo.SaveTypeStats("output.csv", rows)
	require.NoError(t, err)
	assert.Equal(t, models.PipelineStats, run.Pipeline)

	got, err := repo.TypeStats(run.ID)
	require.NoError(t, err)
	assert.Equal(t, rows, got)
}

func TestSave_EmptyRun(t *testing.T) {
	repo := setupTestDB(t).Runs()

	run, err := repo.SaveModeSummaries("empty.csv", nil)
	require.NoError(t, err)
	assert.Equal(t, 0, run.RowCount)

	got, err := repo.ModeSummaries(run.ID)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRecent(t *testing.T) {
	repo := setupTestDB(t).Runs()

	first, err := repo.SaveModeSummaries("a.csv", nil)
	require.NoError(t, err)
	second, err := repo.SaveModeSummaries("b.csv", nil)
	require.NoError(t, err)
	_, err = repo.SaveTypeStats("c.csv", nil)
	require.NoError(t, err)

	runs, err := repo.Recent(models.PipelineModes, 10)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, second.ID, runs[0].ID)
	assert.Equal(t, first.ID, runs[1].ID)
	assert.Equal(t, "b.csv", runs[0].Source)

	runs, err = repo.Recent(models.PipelineModes, 1)
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}

func TestGet(t *testing.T) {
	repo := setupTestDB(t).Runs()

	saved, err := repo.SaveTypeStats("output.csv", []models.StatsRow{
		{VehicleType: "Alpha", Values: [models.NumMetrics]float64{5, 1.2, 120, 0.6, 1, 6000}},
	})
	require.NoError(t, err)

	run, err := repo.Get(saved.ID)
	require.NoError(t, err)
	assert.Equal(t, saved.ID, run.ID)
	assert.Equal(t, models.PipelineStats, run.Pipeline)
	assert.Equal(t, "output.csv", run.Source)
	assert.Equal(t, 1, run.RowCount)
	assert.WithinDuration(t, saved.CreatedAt, run.CreatedAt, time.Second)
}

func TestGet_NotFound(t *testing.T) {
	repo := setupTestDB(t).Runs()

	run, err := repo.Get("no-such-run")
	assert.Nil(t, run)
	assert.ErrorIs(t, err, ErrRunNotFound)
}
