package database

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"fleetviz/internal/models"

	"github.com/google/uuid"
)

// ErrRunNotFound is returned when no archived run has the requested id
var ErrRunNotFound = errors.New("run not found")

type RunRepository interface {
	SaveModeSummaries(source string, rows []models.AggregatedRow) (*models.Run, error)
	SaveTypeStats(source string, rows []models.StatsRow) (*models.Run, error)
	ModeSummaries(runID string) ([]models.AggregatedRow, error)
	TypeStats(runID string) ([]models.StatsRow, error)
	Get(runID string) (*models.Run, error)
	Recent(pipeline string, limit int) ([]models.Run, error)
}

type runRepository struct {
	db *sql.DB
}

func NewRunRepository(db *sql.DB) RunRepository {
	return &runRepository{db: db}
}

// SaveModeSummaries archives one mode-time run and its rows in a single transaction
func (r *runRepository) SaveModeSummaries(source string, rows []models.AggregatedRow) (*models.Run, error) {
	return r.save(models.PipelineModes, source, len(rows), `INSERT INTO mode_summaries (
		run_id, position, vehicle_type, records, idle, wait_chg, chg_done, chg, fly
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`, func(stmt *sql.Stmt, runID string) error {
		for i, row := range rows {
			if _, err := stmt.Exec(
				runID, i, row.VehicleType, row.Records,
				row.Means[models.ModeIdle],
				row.Means[models.ModeWaitChg],
				row.Means[models.ModeChgDone],
				row.Means[models.ModeChg],
				row.Means[models.ModeFly],
			); err != nil {
				return fmt.Errorf("failed to insert mode summary: %w", err)
			}
		}
		return nil
	})
}

// SaveTypeStats archives one stats-dashboard run and its rows in a single transaction
func (r *runRepository) SaveTypeStats(source string, rows []models.StatsRow) (*models.Run, error) {
	return r.save(models.PipelineStats, source, len(rows), `INSERT INTO type_stats (
		run_id, position, vehicle_type, vehicle_count, flight_time_per_flight,
		dist_per_flight, chg_session_time, total_faults, total_passenger_miles
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`, func(stmt *sql.Stmt, runID string) error {
		for i, row := range rows {
			if _, err := stmt.Exec(
				runID, i, row.VehicleType,
				row.Value(models.MetricVehicleCount),
				row.Value(models.MetricFlightTimePerFlight),
				row.Value(models.MetricDistPerFlight),
				row.Value(models.MetricChgSessionTime),
				row.Value(models.MetricTotalFaults),
				row.Value(models.MetricTotalPassengerMiles),
			); err != nil {
				return fmt.Errorf("failed to insert type stats: %w", err)
			}
		}
		return nil
	})
}

func (r *runRepository) save(pipeline, source string, count int, insert string, exec func(*sql.Stmt, string) error) (*models.Run, error) {
	run := &models.Run{
		ID:        uuid.NewString(),
		Pipeline:  pipeline,
		Source:    source,
		RowCount:  count,
		CreatedAt: time.Now().UTC(),
	}

	tx, err := r.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`INSERT INTO runs (id, pipeline, source, row_count, created_at) VALUES (?, ?, ?, ?, ?)`,
		run.ID, run.Pipeline, run.Source, run.RowCount, run.CreatedAt,
	); err != nil {
		return nil, fmt.Errorf("failed to insert run: %w", err)
	}

	stmt, err := tx.Prepare(insert)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	if err := exec(stmt, run.ID); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return run, nil
}

// ModeSummaries returns the archived rows of a mode-time run in display order
func (r *runRepository) ModeSummaries(runID string) ([]models.AggregatedRow, error) {
	rows, err := r.db.Query(`SELECT vehicle_type, records, idle, wait_chg, chg_done, chg, fly
		FROM mode_summaries WHERE run_id = ? ORDER BY position`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query mode summaries: %w", err)
	}
	defer rows.Close()

	var out []models.AggregatedRow
	for rows.Next() {
		var row models.AggregatedRow
		if err := rows.Scan(
			&row.VehicleType, &row.Records,
			&row.Means[models.ModeIdle],
			&row.Means[models.ModeWaitChg],
			&row.Means[models.ModeChgDone],
			&row.Means[models.ModeChg],
			&row.Means[models.ModeFly],
		); err != nil {
			return nil, fmt.Errorf("failed to scan mode summary: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// TypeStats returns the archived rows of a stats-dashboard run in input order
func (r *runRepository) TypeStats(runID string) ([]models.StatsRow, error) {
	rows, err := r.db.Query(`SELECT vehicle_type, vehicle_count, flight_time_per_flight,
		dist_per_flight, chg_session_time, total_faults, total_passenger_miles
		FROM type_stats WHERE run_id = ? ORDER BY position`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query type stats: %w", err)
	}
	defer rows.Close()

	var out []models.StatsRow
	for rows.Next() {
		var row models.StatsRow
		if err := rows.Scan(
			&row.VehicleType,
			&row.Values[models.MetricVehicleCount],
			&row.Values[models.MetricFlightTimePerFlight],
			&row.Values[models.MetricDistPerFlight],
			&row.Values[models.MetricChgSessionTime],
			&row.Values[models.MetricTotalFaults],
			&row.Values[models.MetricTotalPassengerMiles],
		); err != nil {
			return nil, fmt.Errorf("failed to scan type stats: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// Get returns the run header for runID
func (r *runRepository) Get(runID string) (*models.Run, error) {
	var run models.Run
	err := r.db.QueryRow(`SELECT id, pipeline, source, row_count, created_at
		FROM runs WHERE id = ?`, runID).Scan(&run.ID, &run.Pipeline, &run.Source, &run.RowCount, &run.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query run: %w", err)
	}
	return &run, nil
}

// Recent lists the newest runs of a pipeline, newest first
func (r *runRepository) Recent(pipeline string, limit int) ([]models.Run, error) {
	rows, err := r.db.Query(`SELECT id, pipeline, source, row_count, created_at
		FROM runs WHERE pipeline = ? ORDER BY created_at DESC, rowid DESC LIMIT ?`, pipeline, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var out []models.Run
	for rows.Next() {
		var run models.Run
		if err := rows.Scan(&run.ID, &run.Pipeline, &run.Source, &run.RowCount, &run.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		out = append(out, run)
	}
	return out, rows.Err()
}
