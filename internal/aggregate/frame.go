package aggregate

import (
	"math"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"fleetviz/internal/models"
)

// numericColumns reads the named columns as finite floats, one slice per row in column order.
// Cells are loaded as strings and converted by gota, so unparseable text comes back as NaN
// and is reported with the original cell value. The first bad cell in row-major order wins.
func numericColumns(t *models.Table, columns []string) ([][]float64, error) {
	if t.Len() == 0 {
		return [][]float64{}, nil
	}

	df := dataframe.LoadRecords(t.Records(),
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	).Select(columns)
	if df.Err != nil {
		return nil, df.Err
	}

	cols := make([][]float64, len(columns))
	for c, name := range columns {
		col := df.Col(name)
		if col.Err != nil {
			return nil, col.Err
		}
		cols[c] = col.Float()
	}

	out := make([][]float64, t.Len())
	for i := range out {
		out[i] = make([]float64, len(columns))
		for c, name := range columns {
			v := cols[c][i]
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, &ValueError{Row: i + 1, Column: name, Value: t.Rows[i][name]}
			}
			out[i][c] = v
		}
	}
	return out, nil
}
