// Package snapshot records the installed packages of one or more backends
// so that later listings can be compared against them.
package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"

	"pkgview/internal/config"
	"pkgview/pkg/manager"
)

const (
	bucketSnapshots = "snapshots"
	bucketMeta      = "snapshot_meta"
	keyLatest       = "latest_id"

	idLayout = "20060102-150405.000000"
)

// ErrNotFound is returned when no snapshot has the requested ID.
var ErrNotFound = errors.New("snapshot not found")

// PackageState represents a single installed package.
type PackageState struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Source  string `json:"source"` // Backend that listed it
}

// Snapshot represents the installed packages at a point in time.
type Snapshot struct {
	ID          string         `json:"id"`
	Timestamp   time.Time      `json:"timestamp"`
	Description string         `json:"description,omitempty"`
	Backends    []manager.Kind `json:"backends"`
	Packages    []PackageState `json:"packages"`
}

// New creates an empty snapshot stamped with the current time.
func New(description string) *Snapshot {
	now := time.Now()
	return &Snapshot{
		ID:          now.UTC().Format(idLayout),
		Timestamp:   now,
		Description: description,
		Packages:    []PackageState{},
	}
}

// Add appends the listing of one backend, keeping listing order.
func (s *Snapshot) Add(k manager.Kind, packages []manager.Package) {
	s.Backends = append(s.Backends, k)
	for _, pkg := range packages {
		s.Packages = append(s.Packages, PackageState{
			Name:    pkg.Name,
			Version: pkg.Version,
			Source:  k.String(),
		})
	}
}

// FormatTime returns a human-readable timestamp.
func (s *Snapshot) FormatTime() string {
	return s.Timestamp.Format("2006-01-02 15:04:05")
}

// PackageCount returns the total number of packages in the snapshot.
func (s *Snapshot) PackageCount() int {
	return len(s.Packages)
}

// PackagesBySource returns packages grouped by the backend that listed them.
func (s *Snapshot) PackagesBySource() map[string][]PackageState {
	result := make(map[string][]PackageState)
	for _, pkg := range s.Packages {
		result[pkg.Source] = append(result[pkg.Source], pkg)
	}
	return result
}

// Summary returns a brief description of the snapshot.
func (s *Snapshot) Summary() string {
	desc := s.Description
	if desc == "" {
		desc = "no description"
	}
	return fmt.Sprintf("%s - %s (%d packages)", s.ID, desc, len(s.Packages))
}

// Store manages snapshot storage using BoltDB.
type Store struct {
	db *bbolt.DB
}

// OpenDefault opens the snapshot database in the data directory.
func OpenDefault() (*Store, error) {
	if err := config.EnsureDataDir(); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return Open(config.SnapshotPath())
}

// Open opens or creates the snapshot database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create snapshot directory: %w", err)
	}

	db, err := bbolt.Open(path, 0600, &bbolt.Options{
		Timeout: 1 * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot database: %w", err)
	}

	// Ensure buckets exist
	err = db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists([]byte(bucketSnapshots)); err != nil {
			return err
		}
		if _, err := tx.CreateBucketIfNotExists([]byte(bucketMeta)); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize buckets: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Save saves a snapshot to the database.
func (s *Store) Save(snap *Snapshot) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(bucketSnapshots))

		data, err := json.Marshal(snap)
		if err != nil {
			return fmt.Errorf("failed to marshal snapshot: %w", err)
		}

		key := []byte(snap.ID)
		if err := bucket.Put(key, data); err != nil {
			return fmt.Errorf("failed to save snapshot: %w", err)
		}

		return tx.Bucket([]byte(bucketMeta)).Put([]byte(keyLatest), key)
	})
}

// Get retrieves a snapshot by ID.
func (s *Store) Get(id string) (*Snapshot, error) {
	var snap *Snapshot

	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket([]byte(bucketSnapshots)).Get([]byte(id))
		if data == nil {
			return fmt.Errorf("%w: %s", ErrNotFound, id)
		}

		var snapshot Snapshot
		if err := json.Unmarshal(data, &snapshot); err != nil {
			return fmt.Errorf("failed to unmarshal snapshot: %w", err)
		}
		snap = &snapshot
		return nil
	})

	return snap, err
}

// Latest returns the most recently saved snapshot, or ErrNotFound when
// the store is empty.
func (s *Store) Latest() (*Snapshot, error) {
	var id []byte

	err := s.db.View(func(tx *bbolt.Tx) error {
		latest := tx.Bucket([]byte(bucketMeta)).Get([]byte(keyLatest))
		if latest != nil && tx.Bucket([]byte(bucketSnapshots)).Get(latest) != nil {
			id = append([]byte(nil), latest...)
			return nil
		}

		// Fall back to the newest key when the latest one was deleted.
		k, _ := tx.Bucket([]byte(bucketSnapshots)).Cursor().Last()
		if k != nil {
			id = append([]byte(nil), k...)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if id == nil {
		return nil, ErrNotFound
	}

	return s.Get(string(id))
}

// List returns snapshots newest first. A limit of zero or less returns all.
func (s *Store) List(limit int) ([]Snapshot, error) {
	var snapshots []Snapshot

	err := s.db.View(func(tx *bbolt.Tx) error {
		cursor := tx.Bucket([]byte(bucketSnapshots)).Cursor()

		// Start from the end (most recent) and go backwards
		for k, v := cursor.Last(); k != nil && (limit <= 0 || len(snapshots) < limit); k, v = cursor.Prev() {
			var snap Snapshot
			if err := json.Unmarshal(v, &snap); err != nil {
				continue // Skip malformed entries
			}
			snapshots = append(snapshots, snap)
		}

		return nil
	})

	return snapshots, err
}

// Delete removes a snapshot by ID.
func (s *Store) Delete(id string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(bucketSnapshots))
		if bucket.Get([]byte(id)) == nil {
			return fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return bucket.Delete([]byte(id))
	})
}

// Count returns the total number of snapshots.
func (s *Store) Count() (int, error) {
	var count int

	err := s.db.View(func(tx *bbolt.Tx) error {
		count = tx.Bucket([]byte(bucketSnapshots)).Stats().KeyN
		return nil
	})

	return count, err
}

// Prune removes old snapshots, keeping only the keep most recent ones.
// It returns the number of snapshots deleted.
func (s *Store) Prune(keep int) (int, error) {
	if keep < 0 {
		keep = 0
	}

	var deleted int

	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(bucketSnapshots))

		// IDs sort by creation time, so everything before the last keep
		// keys is older.
		var keys [][]byte
		cursor := bucket.Cursor()
		for k, _ := cursor.First(); k != nil; k, _ = cursor.Next() {
			keys = append(keys, append([]byte(nil), k...))
		}

		if len(keys) <= keep {
			return nil
		}

		for _, k := range keys[:len(keys)-keep] {
			if err := bucket.Delete(k); err != nil {
				return err
			}
			deleted++
		}

		return nil
	})

	return deleted, err
}
