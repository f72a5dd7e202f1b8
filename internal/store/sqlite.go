// Package store archives enriched batches in a local SQLite database so
// browsing and exporting work offline from the latest import.
package store

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/almehdi/jobview/internal/model"
)

// SnapshotStore keeps one row per imported batch plus its records.
type SnapshotStore struct {
	db *sql.DB
}

// Open opens (or creates) the snapshot database at dbPath and ensures the
// schema exists.
func Open(dbPath string) (*SnapshotStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	// Verify the connection is alive.
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging sqlite db: %w", err)
	}

	schema := []string{
		`CREATE TABLE IF NOT EXISTS snapshots (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			imported_at    DATETIME DEFAULT CURRENT_TIMESTAMP,
			source         TEXT NOT NULL,
			total          INTEGER NOT NULL,
			pre_resolved   INTEGER NOT NULL,
			newly_resolved INTEGER NOT NULL,
			failed         INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS applications (
			snapshot_id   INTEGER NOT NULL REFERENCES snapshots(id) ON DELETE CASCADE,
			ord           INTEGER NOT NULL,
			app_id        TEXT NOT NULL,
			title         TEXT,
			company       TEXT,
			location      TEXT,
			work_style    TEXT,
			status        TEXT,
			applied_raw   TEXT,
			applied_unix  INTEGER,
			received_raw  TEXT,
			received_unix INTEGER,
			logo_url      TEXT,
			link          TEXT,
			lat           REAL,
			lng           REAL,
			has_coords    INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (snapshot_id, ord)
		)`,
	}
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("creating schema: %w", err)
		}
	}

	return &SnapshotStore{db: db}, nil
}

// Save records a new snapshot and returns its id. The whole batch is
// written in one transaction; a failed save leaves no partial snapshot.
func (s *SnapshotStore) Save(source string, apps []model.Application, stats model.ResolutionStats) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin snapshot tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		`INSERT INTO snapshots (source, total, pre_resolved, newly_resolved, failed) VALUES (?, ?, ?, ?, ?)`,
		source, stats.Total, stats.PreResolved, stats.NewlyResolved, stats.Failed,
	)
	if err != nil {
		return 0, fmt.Errorf("insert snapshot: %w", err)
	}
	snapshotID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("snapshot id: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO applications
		(snapshot_id, ord, app_id, title, company, location, work_style, status,
		 applied_raw, applied_unix, received_raw, received_unix, logo_url, link,
		 lat, lng, has_coords)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for ord, app := range apps {
		var lat, lng sql.NullFloat64
		hasCoords := 0
		if app.Coords != nil {
			lat = sql.NullFloat64{Float64: app.Coords.Lat, Valid: true}
			lng = sql.NullFloat64{Float64: app.Coords.Lng, Valid: true}
			hasCoords = 1
		}
		if _, err := stmt.Exec(
			snapshotID, ord, app.ID, app.Title, app.Company, app.Location,
			app.WorkStyle, app.Status,
			app.AppliedAt.Raw, nullableUnix(app.AppliedAt),
			app.ReceivedAt.Raw, nullableUnix(app.ReceivedAt),
			app.LogoURL, app.Link, lat, lng, hasCoords,
		); err != nil {
			return 0, fmt.Errorf("insert application %s: %w", app.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit snapshot: %w", err)
	}
	return snapshotID, nil
}

// Latest loads the most recent snapshot's batch and stats. Returns
// sql.ErrNoRows (wrapped) when no snapshot has been saved yet.
func (s *SnapshotStore) Latest() ([]model.Application, model.ResolutionStats, error) {
	var (
		snapshotID int64
		stats      model.ResolutionStats
	)
	err := s.db.QueryRow(
		`SELECT id, total, pre_resolved, newly_resolved, failed
		 FROM snapshots ORDER BY id DESC LIMIT 1`,
	).Scan(&snapshotID, &stats.Total, &stats.PreResolved, &stats.NewlyResolved, &stats.Failed)
	if err != nil {
		return nil, model.ResolutionStats{}, fmt.Errorf("loading latest snapshot: %w", err)
	}

	rows, err := s.db.Query(
		`SELECT app_id, title, company, location, work_style, status,
		        applied_raw, applied_unix, received_raw, received_unix,
		        logo_url, link, lat, lng, has_coords
		 FROM applications WHERE snapshot_id = ? ORDER BY ord`,
		snapshotID,
	)
	if err != nil {
		return nil, model.ResolutionStats{}, fmt.Errorf("loading applications: %w", err)
	}
	defer rows.Close()

	var apps []model.Application
	for rows.Next() {
		var (
			app          model.Application
			appliedUnix  sql.NullInt64
			receivedUnix sql.NullInt64
			lat, lng     sql.NullFloat64
			hasCoords    int
		)
		if err := rows.Scan(
			&app.ID, &app.Title, &app.Company, &app.Location, &app.WorkStyle,
			&app.Status, &app.AppliedAt.Raw, &appliedUnix, &app.ReceivedAt.Raw,
			&receivedUnix, &app.LogoURL, &app.Link, &lat, &lng, &hasCoords,
		); err != nil {
			return nil, model.ResolutionStats{}, fmt.Errorf("scanning application: %w", err)
		}
		restoreTime(&app.AppliedAt, appliedUnix)
		restoreTime(&app.ReceivedAt, receivedUnix)
		if hasCoords == 1 && lat.Valid && lng.Valid {
			app.Coords = &model.Coordinates{Lat: lat.Float64, Lng: lng.Float64}
		}
		apps = append(apps, app)
	}
	if err := rows.Err(); err != nil {
		return nil, model.ResolutionStats{}, fmt.Errorf("reading applications: %w", err)
	}

	return apps, stats, nil
}

// Close closes the underlying database connection.
func (s *SnapshotStore) Close() error {
	return s.db.Close()
}

func nullableUnix(d model.DateField) sql.NullInt64 {
	if d.Time == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: d.Time.Unix(), Valid: true}
}

func restoreTime(d *model.DateField, unix sql.NullInt64) {
	if !unix.Valid {
		return
	}
	t := time.Unix(unix.Int64, 0).UTC()
	d.Time = &t
}
