package aggregate

import "fleetviz/internal/models"

// accumulator is the running sum and count for one vehicle type
type accumulator struct {
	sum   models.ModeTimes
	count int
}

// Modes groups records by VehicleType and averages each mode column within a group.
// Groups are returned in the order their first record appeared in the table.
func Modes(t *models.Table) ([]models.AggregatedRow, error) {
	if err := requireColumns(t, models.ModeColumns()); err != nil {
		return nil, err
	}

	// Parse every cell before touching any accumulator so a bad row never yields partial output
	values, err := numericColumns(t, models.ModeColumns())
	if err != nil {
		return nil, err
	}

	groups := make(map[string]*accumulator)
	order := make([]string, 0)

	for i, rec := range t.Rows {
		key := rec[models.VehicleTypeColumn]
		acc, exists := groups[key]
		if !exists {
			acc = &accumulator{}
			groups[key] = acc
			order = append(order, key)
		}
		for m := range acc.sum {
			acc.sum[m] += values[i][m]
		}
		acc.count++
	}

	rows := make([]models.AggregatedRow, 0, len(order))
	for _, key := range order {
		acc := groups[key]
		row := models.AggregatedRow{VehicleType: key, Records: acc.count}
		for m := range acc.sum {
			row.Means[m] = acc.sum[m] / float64(acc.count)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// requireColumns checks VehicleType plus the given columns exist
func requireColumns(t *models.Table, columns []string) error {
	required := append([]string{models.VehicleTypeColumn}, columns...)
	if missing := t.Missing(required...); len(missing) > 0 {
		return &MissingColumnError{Columns: missing}
	}
	return nil
}
