package render

import "fleetviz/internal/models"

// Series is one named run of values, one value per plan category
type Series struct {
	Name   string // source column
	Label  string // legend text
	Color  string // hex RGB without '#'
	Values []float64
}

// ModePlan describes the stacked time-in-mode chart
type ModePlan struct {
	Title               string
	XLabel              string
	YLabel              string
	LegendTitle         string
	TickRotationDegrees float64
	Categories          []string
	Series              []Series // bottom to top; legend lists them in the same order
}

// Panel is one bar chart of the statistics dashboard
type Panel struct {
	Row, Col   int
	Metric     models.Metric
	Title      string
	Categories []string
	Values     []float64
}

// DashboardPlan describes the fixed grid of per-metric bar charts
type DashboardPlan struct {
	Rows, Cols int
	Panels     []Panel // row-major
}

const (
	dashboardRows = 2
	dashboardCols = 3
)

// PlanModes lays out one stacked bar per vehicle type in aggregator order.
// Segments follow the fixed mode order regardless of their values.
func PlanModes(rows []models.AggregatedRow) ModePlan {
	plan := ModePlan{
		Title:               "Average Time Distribution by Vehicle Type",
		XLabel:              "Vehicle Type",
		YLabel:              "Proportion of Time",
		LegendTitle:         "Mode",
		TickRotationDegrees: 45,
		Categories:          make([]string, len(rows)),
	}
	for i, r := range rows {
		plan.Categories[i] = r.VehicleType
	}

	for _, m := range models.Modes() {
		s := Series{
			Name:   m.Column(),
			Label:  m.Label(),
			Color:  m.Color(),
			Values: make([]float64, len(rows)),
		}
		for i, r := range rows {
			s.Values[i] = r.Means[m]
		}
		plan.Series = append(plan.Series, s)
	}
	return plan
}

// PlanDashboard assigns metric i to grid cell (i/3, i%3)
func PlanDashboard(rows []models.StatsRow) DashboardPlan {
	categories := make([]string, len(rows))
	for i, r := range rows {
		categories[i] = r.VehicleType
	}

	plan := DashboardPlan{Rows: dashboardRows, Cols: dashboardCols}
	for _, m := range models.Metrics() {
		p := Panel{
			Row:        int(m) / dashboardCols,
			Col:        int(m) % dashboardCols,
			Metric:     m,
			Title:      m.Title(),
			Categories: categories,
			Values:     make([]float64, len(rows)),
		}
		for i, r := range rows {
			p.Values[i] = r.Value(m)
		}
		plan.Panels = append(plan.Panels, p)
	}
	return plan
}
