// Package store holds the visualization session's storm set. Storms arrive
// from an ingestion stage (synthetic generator or Kafka consumer), pass
// through validation and repair on the way in, and are read concurrently by
// the serving layer. Stored storms are never mutated in place; a data
// refresh replaces them wholesale.
package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/couchcryptid/storm-track-viz/internal/domain"
	"github.com/couchcryptid/storm-track-viz/internal/observability"
)

// Store is a thread-safe map of storm id to validated storm.
type Store struct {
	mu     sync.RWMutex
	storms map[string]domain.Storm

	logger  *slog.Logger
	metrics *observability.Metrics
}

// New creates an empty session store.
func New(logger *slog.Logger, metrics *observability.Metrics) *Store {
	return &Store{
		storms:  make(map[string]domain.Storm),
		logger:  logger,
		metrics: metrics,
	}
}

// Upsert validates, repairs, and stores one storm. Hard validation errors
// reject the record and are returned as the diagnostic the caller should
// surface; soft warnings are logged and counted but the storm is stored.
func (s *Store) Upsert(storm domain.Storm) error {
	if storm.ID == "" {
		s.metrics.ValidationRejects.Inc()
		return errors.New("storm has no id")
	}

	if result := domain.ValidateStorm(storm); len(result.Warnings) > 0 {
		s.metrics.ValidationWarnings.Add(float64(len(result.Warnings)))
		s.logger.Warn("storm has validation warnings",
			"id", storm.ID, "warnings", len(result.Warnings))
	}

	clean, err := domain.ValidateAndSanitizeStorm(storm)
	if err != nil {
		s.metrics.ValidationRejects.Inc()
		return fmt.Errorf("upsert rejected: %w", err)
	}

	s.mu.Lock()
	s.storms[clean.ID] = *clean
	s.metrics.StormsLoaded.Set(float64(len(s.storms)))
	s.mu.Unlock()
	return nil
}

// ReplaceAll swaps in a fresh data refresh. Each storm is validated
// individually; rejects are collected into the joined error while accepted
// storms still replace the previous set.
func (s *Store) ReplaceAll(storms []domain.Storm) (int, error) {
	next := make(map[string]domain.Storm, len(storms))
	var errs []error
	for _, storm := range storms {
		clean, err := domain.ValidateAndSanitizeStorm(storm)
		if err != nil {
			s.metrics.ValidationRejects.Inc()
			errs = append(errs, err)
			continue
		}
		if clean.ID == "" {
			s.metrics.ValidationRejects.Inc()
			errs = append(errs, errors.New("storm has no id"))
			continue
		}
		next[clean.ID] = *clean
	}

	s.mu.Lock()
	s.storms = next
	s.metrics.StormsLoaded.Set(float64(len(s.storms)))
	s.mu.Unlock()

	return len(next), errors.Join(errs...)
}

// Get returns one storm by id.
func (s *Store) Get(id string) (domain.Storm, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	storm, ok := s.storms[id]
	return storm, ok
}

// Snapshot returns all storms sorted by id, for deterministic iteration.
func (s *Store) Snapshot() []domain.Storm {
	s.mu.RLock()
	out := make([]domain.Storm, 0, len(s.storms))
	for _, storm := range s.storms {
		out = append(out, storm)
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Len reports how many storms the session holds.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.storms)
}

// CheckReadiness reports ready once at least one storm is loaded.
func (s *Store) CheckReadiness(_ context.Context) error {
	if s.Len() == 0 {
		return errors.New("no storms loaded yet")
	}
	return nil
}
