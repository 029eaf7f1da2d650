// Package storage persists the report collection as a single JSON document
// keyed by guild ID. The whole file is rewritten on every mutation; there is
// no partial-write protection and no durability guarantee beyond the
// overwrite itself.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"reportbot/backend/internal/models"
)

// ErrNotFound is returned when a report ID does not exist for a guild.
var ErrNotFound = errors.New("report not found")

type Storage interface {
	Append(guildID string, report *models.Report) (int, error)
	GetByID(guildID string, id int) (*models.Report, error)
	UpdateStatus(guildID string, id int, status string) error
	ListByStatus(guildID, status string) ([]*models.Report, error)
	All(guildID string) ([]*models.Report, error)
}

// Service is the file-backed Storage implementation. The mutex guards the
// in-memory map because gateway events are dispatched concurrently.
type Service struct {
	path string

	mu      sync.Mutex
	reports map[string][]*models.Report
}

// NewService loads the persisted collection from path, creating the parent
// directory and an empty file if none exists yet.
func NewService(path string) (*Service, error) {
	s := &Service{
		path:    path,
		reports: make(map[string][]*models.Report),
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		if err := s.save(); err != nil {
			return nil, fmt.Errorf("failed to initialize reports file: %w", err)
		}
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read reports file: %w", err)
	}
	if err := json.Unmarshal(data, &s.reports); err != nil {
		return nil, fmt.Errorf("failed to parse reports file %s: %w", path, err)
	}
	return s, nil
}

// save rewrites the full collection. Callers must hold mu.
func (s *Service) save() error {
	data, err := json.MarshalIndent(s.reports, "", "    ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o644)
}

// Append assigns the next ID for the guild, appends the record and persists.
func (s *Service) Append(guildID string, report *models.Report) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := 1
	seq := s.reports[guildID]
	if n := len(seq); n > 0 {
		id = seq[n-1].ID + 1
	}
	report.ID = id
	s.reports[guildID] = append(seq, report)

	if err := s.save(); err != nil {
		return 0, err
	}
	return id, nil
}

func (s *Service) GetByID(guildID string, id int) (*models.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := s.findLocked(guildID, id)
	if r == nil {
		return nil, ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (s *Service) UpdateStatus(guildID string, id int, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := s.findLocked(guildID, id)
	if r == nil {
		return ErrNotFound
	}
	r.Status = status
	return s.save()
}

// ListByStatus returns the guild's reports with the given status in
// insertion order. models.StatusAll acts as a wildcard.
func (s *Service) ListByStatus(guildID, status string) ([]*models.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*models.Report, 0)
	for _, r := range s.reports[guildID] {
		if status != models.StatusAll && r.Status != status {
			continue
		}
		cp := *r
		out = append(out, &cp)
	}
	return out, nil
}

func (s *Service) All(guildID string) ([]*models.Report, error) {
	return s.ListByStatus(guildID, models.StatusAll)
}

// findLocked returns the live record with the given ID. Callers must hold mu.
func (s *Service) findLocked(guildID string, id int) *models.Report {
	for _, r := range s.reports[guildID] {
		if r.ID == id {
			return r
		}
	}
	return nil
}
