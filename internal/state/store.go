// Package state persists fetched introspection documents as versioned
// schema snapshots in SQLite. Snapshot history is what the evolution
// command replays when tracking compatibility across versions.
package state

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// ErrSnapshotNotFound is returned when a snapshot lookup matches nothing.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// Snapshot is one stored introspection document.
type Snapshot struct {
	// ID is the snapshot's UUID.
	ID string
	// Endpoint is the endpoint name the document was fetched from.
	Endpoint string
	// Label is an optional caller-supplied version label.
	Label string
	// Document is the raw introspection JSON.
	Document []byte
	// Checksum is the sha256 of Document, used to spot identical refetches.
	Checksum string
	// CreatedAt is the storage timestamp (UTC).
	CreatedAt time.Time
}

// SnapshotStore implements snapshot persistence on SQLite.
type SnapshotStore struct {
	db   *sql.DB
	path string
}

// NewSnapshotStore creates a new store instance. Call Open before use.
func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{}
}

// Open opens a connection to the SQLite database.
// Use ":memory:" for an in-memory database.
func (s *SnapshotStore) Open(path string) error {
	dsn := path
	if path != ":memory:" {
		dsn = fmt.Sprintf("%s?_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)", path)
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return fmt.Errorf("failed to open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	s.db = db
	s.path = path
	return nil
}

// Close closes the database connection.
func (s *SnapshotStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveSnapshot stores a new snapshot for the endpoint and returns it.
func (s *SnapshotStore) SaveSnapshot(endpoint, label string, document []byte) (*Snapshot, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	sum := sha256.Sum256(document)
	snap := &Snapshot{
		ID:        uuid.New().String(),
		Endpoint:  endpoint,
		Label:     label,
		Document:  document,
		Checksum:  hex.EncodeToString(sum[:]),
		CreatedAt: time.Now().UTC(),
	}

	_, err := s.db.Exec(
		`INSERT INTO schema_snapshots (id, endpoint, label, document, checksum, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		snap.ID, snap.Endpoint, snap.Label, snap.Document, snap.Checksum, snap.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to save snapshot: %w", err)
	}

	return snap, nil
}

// GetSnapshot retrieves a snapshot by ID.
func (s *SnapshotStore) GetSnapshot(id string) (*Snapshot, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	row := s.db.QueryRow(
		`SELECT id, endpoint, label, document, checksum, created_at FROM schema_snapshots WHERE id = ?`,
		id,
	)
	return scanSnapshot(row)
}

// GetByLabel retrieves the most recent snapshot with the given label for an
// endpoint.
func (s *SnapshotStore) GetByLabel(endpoint, label string) (*Snapshot, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	row := s.db.QueryRow(
		`SELECT id, endpoint, label, document, checksum, created_at FROM schema_snapshots
		 WHERE endpoint = ? AND label = ?
		 ORDER BY created_at DESC, rowid DESC LIMIT 1`,
		endpoint, label,
	)
	return scanSnapshot(row)
}

// ListSnapshots returns all snapshots for an endpoint in storage order
// (oldest first). An empty endpoint returns every snapshot.
func (s *SnapshotStore) ListSnapshots(endpoint string) ([]*Snapshot, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	query := `SELECT id, endpoint, label, document, checksum, created_at FROM schema_snapshots`
	args := []any{}
	if endpoint != "" {
		query += ` WHERE endpoint = ?`
		args = append(args, endpoint)
	}
	query += ` ORDER BY created_at ASC, rowid ASC`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	defer rows.Close()

	var snaps []*Snapshot
	for rows.Next() {
		snap := &Snapshot{}
		var label sql.NullString
		if err := rows.Scan(&snap.ID, &snap.Endpoint, &label, &snap.Document, &snap.Checksum, &snap.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %w", err)
		}
		snap.Label = label.String
		snaps = append(snaps, snap)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate snapshots: %w", err)
	}

	return snaps, nil
}

// DeleteSnapshot removes a snapshot by ID.
func (s *SnapshotStore) DeleteSnapshot(id string) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}

	res, err := s.db.Exec(`DELETE FROM schema_snapshots WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrSnapshotNotFound
	}
	return nil
}

func scanSnapshot(row *sql.Row) (*Snapshot, error) {
	snap := &Snapshot{}
	var label sql.NullString
	err := row.Scan(&snap.ID, &snap.Endpoint, &label, &snap.Document, &snap.Checksum, &snap.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSnapshotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan snapshot: %w", err)
	}
	snap.Label = label.String
	return snap, nil
}
