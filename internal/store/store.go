// Package store provides SQLite-backed persistence for sampled environment
// grids. The generator itself never caches or persists anything; this is the
// consumer-side backing store for tools that want to keep a sampled window
// around instead of re-evaluating it.
package store

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/envfield/internal/grid"
	"github.com/talgya/envfield/pkg/envfield"
)

// DB wraps a SQLite connection for grid persistence.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS grids (
		id TEXT PRIMARY KEY,
		seed INTEGER NOT NULL,
		min_x REAL NOT NULL,
		min_y REAL NOT NULL,
		max_x REAL NOT NULL,
		max_y REAL NOT NULL,
		width INTEGER NOT NULL,
		height INTEGER NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS grid_samples (
		grid_id TEXT NOT NULL,
		idx INTEGER NOT NULL,
		x REAL NOT NULL,
		y REAL NOT NULL,
		valid INTEGER NOT NULL,
		virtual_latitude REAL NOT NULL,
		temperature REAL NOT NULL,
		pressure REAL NOT NULL,
		wind_angle REAL NOT NULL,
		wind_magnitude REAL NOT NULL,
		shelf REAL NOT NULL,
		persistence_value REAL NOT NULL,
		persistence_normalized REAL NOT NULL,
		land_base REAL NOT NULL,
		elevation_value REAL NOT NULL,
		elevation_normalized REAL NOT NULL,
		current_angle REAL NOT NULL,
		current_magnitude REAL NOT NULL,
		PRIMARY KEY (grid_id, idx)
	);

	CREATE TABLE IF NOT EXISTS grid_meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_samples_grid ON grid_samples(grid_id);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// GridInfo describes a stored grid without its samples.
type GridInfo struct {
	ID        string  `db:"id"`
	Seed      int64   `db:"seed"`
	MinX      float64 `db:"min_x"`
	MinY      float64 `db:"min_y"`
	MaxX      float64 `db:"max_x"`
	MaxY      float64 `db:"max_y"`
	Width     int     `db:"width"`
	Height    int     `db:"height"`
	CreatedAt string  `db:"created_at"`
}

// SaveGrid writes a sampled grid and returns its generated id.
func (db *DB) SaveGrid(g *grid.Grid, seed int64) (string, error) {
	id := uuid.NewString()
	slog.Info("saving grid", "id", id, "cells", len(g.Cells))

	tx, err := db.conn.Beginx()
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`INSERT INTO grids
		(id, seed, min_x, min_y, max_x, max_y, width, height, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, seed, g.Window.MinX, g.Window.MinY, g.Window.MaxX, g.Window.MaxY,
		g.Width, g.Height, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return "", fmt.Errorf("insert grid: %w", err)
	}

	stmt, err := tx.Preparex(`INSERT INTO grid_samples
		(grid_id, idx, x, y, valid,
		 virtual_latitude, temperature, pressure, wind_angle, wind_magnitude,
		 shelf, persistence_value, persistence_normalized, land_base,
		 elevation_value, elevation_normalized, current_angle, current_magnitude)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", err
	}
	defer stmt.Close()

	for i, c := range g.Cells {
		valid := 0
		if c.Valid {
			valid = 1
		}
		f := c.Factors

		_, err := stmt.Exec(
			id, i, c.X, c.Y, valid,
			f.VirtualLatitude, f.SurfaceTemperature, f.AtmospherePressure,
			f.WindAngle, f.WindMagnitude,
			f.Elevation.Shelf, f.Elevation.Persistence.Value, f.Elevation.Persistence.Normalized,
			f.Elevation.LandBase, f.Elevation.Elevation.Value, f.Elevation.Elevation.Normalized,
			f.OceanCurrentAngle, f.OceanCurrentMagnitude,
		)
		if err != nil {
			return "", fmt.Errorf("insert sample %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}

	slog.Info("grid saved", "id", id)
	return id, nil
}

// LoadGrid reads a stored grid back, samples included.
func (db *DB) LoadGrid(id string) (*grid.Grid, error) {
	var info GridInfo
	if err := db.conn.Get(&info, "SELECT * FROM grids WHERE id = ?", id); err != nil {
		return nil, fmt.Errorf("load grid %s: %w", id, err)
	}

	type sampleRow struct {
		Idx                   int     `db:"idx"`
		X                     float64 `db:"x"`
		Y                     float64 `db:"y"`
		Valid                 int     `db:"valid"`
		VirtualLatitude       float64 `db:"virtual_latitude"`
		Temperature           float64 `db:"temperature"`
		Pressure              float64 `db:"pressure"`
		WindAngle             float64 `db:"wind_angle"`
		WindMagnitude         float64 `db:"wind_magnitude"`
		Shelf                 float64 `db:"shelf"`
		PersistenceValue      float64 `db:"persistence_value"`
		PersistenceNormalized float64 `db:"persistence_normalized"`
		LandBase              float64 `db:"land_base"`
		ElevationValue        float64 `db:"elevation_value"`
		ElevationNormalized   float64 `db:"elevation_normalized"`
		CurrentAngle          float64 `db:"current_angle"`
		CurrentMagnitude      float64 `db:"current_magnitude"`
	}

	var rows []sampleRow
	err := db.conn.Select(&rows,
		"SELECT idx, x, y, valid, virtual_latitude, temperature, pressure, wind_angle, wind_magnitude, shelf, persistence_value, persistence_normalized, land_base, elevation_value, elevation_normalized, current_angle, current_magnitude FROM grid_samples WHERE grid_id = ? ORDER BY idx",
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("load samples for %s: %w", id, err)
	}
	if len(rows) != info.Width*info.Height {
		return nil, fmt.Errorf("grid %s has %d samples, expected %d", id, len(rows), info.Width*info.Height)
	}

	g := &grid.Grid{
		Window: grid.Window{MinX: info.MinX, MinY: info.MinY, MaxX: info.MaxX, MaxY: info.MaxY},
		Width:  info.Width,
		Height: info.Height,
		Cells:  make([]grid.Cell, len(rows)),
	}

	for _, r := range rows {
		g.Cells[r.Idx] = grid.Cell{
			X:     r.X,
			Y:     r.Y,
			Valid: r.Valid != 0,
			Factors: envfield.EnvironmentFactors{
				VirtualLatitude:    r.VirtualLatitude,
				SurfaceTemperature: r.Temperature,
				AtmospherePressure: r.Pressure,
				WindAngle:          r.WindAngle,
				WindMagnitude:      r.WindMagnitude,
				Elevation: envfield.PrimitiveElevationFactors{
					Shelf: r.Shelf,
					Persistence: envfield.ValueWithNormalized{
						Value:      r.PersistenceValue,
						Normalized: r.PersistenceNormalized,
					},
					LandBase: r.LandBase,
					Elevation: envfield.ValueWithNormalized{
						Value:      r.ElevationValue,
						Normalized: r.ElevationNormalized,
					},
				},
				OceanCurrentAngle:     r.CurrentAngle,
				OceanCurrentMagnitude: r.CurrentMagnitude,
			},
		}
	}

	return g, nil
}

// ListGrids returns stored grid descriptors, newest first.
func (db *DB) ListGrids() ([]GridInfo, error) {
	var infos []GridInfo
	err := db.conn.Select(&infos, "SELECT * FROM grids ORDER BY created_at DESC")
	return infos, err
}

// SaveMeta stores a key-value pair alongside the grids.
func (db *DB) SaveMeta(key, value string) error {
	_, err := db.conn.Exec(
		"INSERT OR REPLACE INTO grid_meta (key, value) VALUES (?, ?)",
		key, value,
	)
	return err
}

// GetMeta retrieves a metadata value.
func (db *DB) GetMeta(key string) (string, error) {
	var value string
	err := db.conn.Get(&value, "SELECT value FROM grid_meta WHERE key = ?", key)
	return value, err
}
