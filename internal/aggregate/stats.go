package aggregate

import "fleetviz/internal/models"

// Stats validates a per-type statistics table and returns its rows unchanged.
// The input is already one row per vehicle type, so no grouping or reduction happens here.
func Stats(t *models.Table) ([]models.StatsRow, error) {
	if err := requireColumns(t, models.MetricColumns()); err != nil {
		return nil, err
	}

	values, err := numericColumns(t, models.MetricColumns())
	if err != nil {
		return nil, err
	}

	rows := make([]models.StatsRow, t.Len())
	for i, rec := range t.Rows {
		rows[i].VehicleType = rec[models.VehicleTypeColumn]
		copy(rows[i].Values[:], values[i])
	}
	return rows, nil
}
