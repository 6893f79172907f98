package render

import (
	"testing"

	"fleetviz/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanModes(t *testing.T) {
	rows := []models.AggregatedRow{
		{VehicleType: "Charlie", Records: 2, Means: models.ModeTimes{0.1, 0.2, 0.3, 0.15, 0.25}},
		{VehicleType: "Alpha", Records: 1, Means: models.ModeTimes{0.5, 0, 0, 0.2, 0.3}},
	}

	plan := PlanModes(rows)

	assert.Equal(t, "Average Time Distribution by Vehicle Type", plan.Title)
	assert.Equal(t, "Vehicle Type", plan.XLabel)
	assert.Equal(t, "Proportion of Time", plan.YLabel)
	assert.Equal(t, "Mode", plan.LegendTitle)
	assert.Equal(t, 45.0, plan.TickRotationDegrees)
	assert.Equal(t, []string{"Charlie", "Alpha"}, plan.Categories)

	require.Len(t, plan.Series, 5)
	var names, labels, colors []string
	for _, s := range plan.Series {
		names = append(names, s.Name)
		labels = append(labels, s.Label)
		colors = append(colors, s.Color)
		assert.Len(t, s.Values, len(rows))
	}
	assert.Equal(t, []string{"Idle", "Wait_Chg", "Chg_Done", "Chg", "Fly"}, names)
	assert.Equal(t, []string{"Idle", "Waiting to Charge", "Charge Complete", "Charge", "Flying"}, labels)
	assert.Equal(t, []string{"1f77b4", "ff7f0e", "2ca02c", "d62728", "aa00bb"}, colors)

	assert.Equal(t, []float64{0.1, 0.5}, plan.Series[0].Values)
	assert.Equal(t, []float64{0.25, 0.3}, plan.Series[4].Values)
}

func TestPlanModes_ColorsArePositional(t *testing.T) {
	// Swapping values must not move colours between modes
	a := PlanModes([]models.AggregatedRow{{VehicleType: "A", Means: models.ModeTimes{5, 4, 3, 2, 1}}})
	b := PlanModes([]models.AggregatedRow{{VehicleType: "A", Means: models.ModeTimes{1, 2, 3, 4, 5}}})

	for i := range a.Series {
		assert.Equal(t, a.Series[i].Color, b.Series[i].Color)
		assert.Equal(t, a.Series[i].Label, b.Series[i].Label)
	}
}

func TestPlanDashboard(t *testing.T) {
	rows := []models.StatsRow{
		{VehicleType: "Alpha", Values: [models.NumMetrics]float64{5, 1.2, 120, 0.6, 1, 6000}},
		{VehicleType: "Beta", Values: [models.NumMetrics]float64{3, 0.4, 50, 0.2, 0, 700}},
	}

	plan := PlanDashboard(rows)

	assert.Equal(t, 2, plan.Rows)
	assert.Equal(t, 3, plan.Cols)
	require.Len(t, plan.Panels, 6)

	cells := [][2]int{{0, 0}, {0, 1}, {0, 2}, {1, 0}, {1, 1}, {1, 2}}
	titles := []string{
		"Vehicle count",
		"Average flight time per flight (hours)",
		"Average distance per flight (miles)",
		"Average charge session time (hours)",
		"Total faults",
		"Total passenger miles",
	}
	for i, p := range plan.Panels {
		assert.Equal(t, cells[i], [2]int{p.Row, p.Col})
		assert.Equal(t, titles[i], p.Title)
		assert.Equal(t, models.Metric(i), p.Metric)
		assert.Equal(t, []string{"Alpha", "Beta"}, p.Categories)
		assert.Equal(t, []float64{rows[0].Values[i], rows[1].Values[i]}, p.Values)
	}
}
