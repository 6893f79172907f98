package models

import "time"

// VehicleTypeColumn is the grouping key shared by both pipelines
const VehicleTypeColumn = "VehicleType"

// Mode is a vehicle operating mode. The iota order is the stacking order of the mode chart.
type Mode int

const (
	ModeIdle Mode = iota
	ModeWaitChg
	ModeChgDone
	ModeChg
	ModeFly
	NumModes
)

var modeColumns = [NumModes]string{"Idle", "Wait_Chg", "Chg_Done", "Chg", "Fly"}

var modeLabels = [NumModes]string{"Idle", "Waiting to Charge", "Charge Complete", "Charge", "Flying"}

// Hex colours, assigned by position
var modeColors = [NumModes]string{"1f77b4", "ff7f0e", "2ca02c", "d62728", "aa00bb"}

// Modes returns every mode in stacking order
func Modes() []Mode {
	out := make([]Mode, NumModes)
	for i := range out {
		out[i] = Mode(i)
	}
	return out
}

// ModeColumns returns the CSV column names of all modes in stacking order
func ModeColumns() []string {
	return modeColumns[:]
}

// Column is the CSV header name for the mode
func (m Mode) Column() string {
	if m < 0 || m >= NumModes {
		return ""
	}
	return modeColumns[m]
}

// Label is the human-readable legend text for the mode
func (m Mode) Label() string {
	if m < 0 || m >= NumModes {
		return ""
	}
	return modeLabels[m]
}

// Color is the hex RGB colour (no leading '#') of the mode's chart segment
func (m Mode) Color() string {
	if m < 0 || m >= NumModes {
		return ""
	}
	return modeColors[m]
}

func (m Mode) String() string {
	return m.Column()
}

// ModeTimes holds one value per mode, indexed by Mode
type ModeTimes [NumModes]float64

// AggregatedRow is the mean time-in-mode for one vehicle type
type AggregatedRow struct {
	VehicleType string
	Records     int // number of input rows averaged
	Means       ModeTimes
}

// Metric is one column of the per-type statistics file. The iota order is the dashboard cell order.
type Metric int

const (
	MetricVehicleCount Metric = iota
	MetricFlightTimePerFlight
	MetricDistPerFlight
	MetricChgSessionTime
	MetricTotalFaults
	MetricTotalPassengerMiles
	NumMetrics
)

var metricColumns = [NumMetrics]string{
	"VehicleCount",
	"FlightTimePerFlight(Hours)",
	"DistPerFlight",
	"ChgSessionTime",
	"TotalFaults",
	"TotalPassengerMiles",
}

var metricTitles = [NumMetrics]string{
	"Vehicle count",
	"Average flight time per flight (hours)",
	"Average distance per flight (miles)",
	"Average charge session time (hours)",
	"Total faults",
	"Total passenger miles",
}

// Metrics returns every metric in dashboard order
func Metrics() []Metric {
	out := make([]Metric, NumMetrics)
	for i := range out {
		out[i] = Metric(i)
	}
	return out
}

// MetricColumns returns the CSV column names of all metrics in dashboard order
func MetricColumns() []string {
	return metricColumns[:]
}

// Column is the CSV header name for the metric
func (m Metric) Column() string {
	if m < 0 || m >= NumMetrics {
		return ""
	}
	return metricColumns[m]
}

// Title is the dashboard panel title for the metric
func (m Metric) Title() string {
	if m < 0 || m >= NumMetrics {
		return ""
	}
	return metricTitles[m]
}

func (m Metric) String() string {
	return m.Column()
}

// StatsRow carries the pre-aggregated statistics of one vehicle type
type StatsRow struct {
	VehicleType string
	Values      [NumMetrics]float64
}

// Value returns the row's value for metric m
func (r StatsRow) Value(m Metric) float64 {
	if m < 0 || m >= NumMetrics {
		return 0
	}
	return r.Values[m]
}

// Pipeline names
const (
	PipelineModes = "modes"
	PipelineStats = "stats"
)

// Run is one archived pipeline invocation
type Run struct {
	ID        string
	Pipeline  string
	Source    string
	RowCount  int
	CreatedAt time.Time
}
