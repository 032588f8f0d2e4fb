package categories

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/slumbersage/gjirafa50/internal/scraper"
	"github.com/slumbersage/gjirafa50/logger"
)

// Loader fetches a fresh category tree from the upstream site
type Loader interface {
	Categories(ctx context.Context) (*scraper.Categories, error)
}

// Snapshot is one immutable category tree
type Snapshot struct {
	Categories *scraper.Categories
	FetchedAt  time.Time
}

// Store holds the current category snapshot. Reads never block; Refresh
// replaces the whole snapshot at once.
type Store struct {
	loader  Loader
	current atomic.Pointer[Snapshot]
	log     *logger.Logger
}

// NewStore creates an empty store backed by loader
func NewStore(loader Loader) *Store {
	return &Store{
		loader: loader,
		log:    logger.ForComponent("categories"),
	}
}

// Refresh loads the category tree and swaps it in. On failure the previous
// snapshot stays in place.
func (s *Store) Refresh(ctx context.Context) (*Snapshot, error) {
	categories, err := s.loader.Categories(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to refresh categories")
		return nil, err
	}

	snapshot := &Snapshot{Categories: categories, FetchedAt: time.Now()}
	s.current.Store(snapshot)

	s.log.Info().Int("categories", categories.Len()).Msg("Category snapshot refreshed")
	return snapshot, nil
}

// Snapshot returns the current snapshot, or nil before the first
// successful refresh.
func (s *Store) Snapshot() *Snapshot {
	return s.current.Load()
}
