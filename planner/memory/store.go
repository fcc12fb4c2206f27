// Package memory provides the durable append-only log of past assignment
// outcomes consumed by the learning stage.
package memory

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// HistoricalRecord is a past concrete assignment outcome. Records are
// immutable once appended.
type HistoricalRecord struct {
	PartID       string  `json:"part_id"`
	MachineID    string  `json:"machine_id"`
	OperatorID   string  `json:"operator_id"`
	OperatorName string  `json:"operator_name"`
	Success      bool    `json:"success"`
	TimeTaken    float64 `json:"time_taken"`
	Risk         float64 `json:"risk"`
}

// ErrCorrupt marks a store file that exists but cannot be decoded. Unlike a
// missing file this aborts the run: silently discarding history would lose
// every past outcome on the next append.
var ErrCorrupt = errors.New("memory store corrupt")

// Store persists HistoricalRecords as a single JSON array on disk.
//
// Appends are serialized by a process-wide mutex around the
// read-append-rewrite sequence, so N concurrent runs that each append yield
// exactly N new records. The rewrite goes to a temp file in the same
// directory and is renamed into place, keeping the on-disk document
// well-formed even if the process dies mid-write.
type Store struct {
	path string
	mu   sync.Mutex
}

// NewStore creates a Store backed by the given file path. The file is
// created on first append; a missing file reads as an empty history.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Read returns the full ordered history. A missing file is an empty
// history, not an error. A present but undecodable file returns ErrCorrupt.
func (s *Store) Read() ([]HistoricalRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readLocked()
}

func (s *Store) readLocked() ([]HistoricalRecord, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return []HistoricalRecord{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading memory store %s: %w", s.path, err)
	}

	var records []HistoricalRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, s.path, err)
	}
	return records, nil
}

// Append adds one record to the end of the log. The read-append-rewrite
// sequence runs under the store mutex; the caller observes it as atomic.
func (s *Store) Append(record HistoricalRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.readLocked()
	if err != nil {
		return err
	}
	records = append(records, record)

	data, err := json.MarshalIndent(records, "", "    ")
	if err != nil {
		return fmt.Errorf("encoding memory store: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".memory-*.json")
	if err != nil {
		return fmt.Errorf("creating temp file for memory store: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("writing memory store: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("closing memory store temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replacing memory store %s: %w", s.path, err)
	}
	return nil
}
