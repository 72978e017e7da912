// Package store persists the most recent analysis snapshot: the raw daily
// series that backed it plus the rendered output contract. It deliberately
// keeps only a short history; this is transient local storage for the
// "last analysis" feature, not an archive.
package store

import (
	"database/sql"
	"time"
)

// snapshotRetention is how many snapshots survive a save. The newest one is
// the feature; the rest is a small debugging tail.
const snapshotRetention = 10

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Snapshot is one persisted analysis.
type Snapshot struct {
	ID          int64
	CreatedAt   time.Time
	Latitude    float64
	Longitude   float64
	TargetDate  time.Time
	DataSource  string
	Probability int
	SeriesJSON  string
	ResultJSON  string
}

// SaveSnapshot inserts a snapshot and prunes anything older than the
// retention window.
func (s *Store) SaveSnapshot(snap Snapshot) (int64, error) {
	createdAt := snap.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	res, err := s.db.Exec(`
		INSERT INTO snapshots (created_at, latitude, longitude, target_date, data_source, probability, series_json, result_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, createdAt, snap.Latitude, snap.Longitude, snap.TargetDate, snap.DataSource, snap.Probability, snap.SeriesJSON, snap.ResultJSON)
	if err != nil {
		return 0, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	_, err = s.db.Exec(`
		DELETE FROM snapshots
		WHERE id NOT IN (SELECT id FROM snapshots ORDER BY id DESC LIMIT ?)
	`, snapshotRetention)
	return id, err
}

// LatestSnapshot returns the most recent snapshot, or nil when none exists.
func (s *Store) LatestSnapshot() (*Snapshot, error) {
	row := s.db.QueryRow(`
		SELECT id, created_at, latitude, longitude, target_date, data_source, probability, series_json, result_json
		FROM snapshots
		ORDER BY id DESC
		LIMIT 1
	`)

	var snap Snapshot
	err := row.Scan(&snap.ID, &snap.CreatedAt, &snap.Latitude, &snap.Longitude, &snap.TargetDate, &snap.DataSource, &snap.Probability, &snap.SeriesJSON, &snap.ResultJSON)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &snap, nil
}

// CountSnapshots reports how many snapshots are currently retained.
func (s *Store) CountSnapshots() (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM snapshots`).Scan(&n)
	return n, err
}
