package diskcache

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dhyanpatel/TourneyFlights/internal/domain"
	"github.com/dhyanpatel/TourneyFlights/internal/ports/output"

	"github.com/sirupsen/logrus"
)

// Compile-time check to ensure Cache implements QuoteCache interface
var _ output.QuoteCache = (*Cache)(nil)

// Cache struct - Output adapter for the on-disk quote cache.
// One file per (origin, destination, depart, return) key; the file holds the
// raw provider payload and its modification time is the sole staleness
// signal. Eviction is lazy: a stale file is removed when a read finds it.
type Cache struct {
	dir string
}

// New creates a disk cache rooted at dir. The directory is created on the
// first write, not here, so a read-only run never touches the filesystem.
func New(dir string) *Cache {
	return &Cache{dir: dir}
}

// Get returns the cached payload for the route if the file exists and is
// newer than maxAge. A stale file is deleted before reporting a miss, so a
// checked entry is never returned stale and never lingers on disk.
func (c *Cache) Get(query domain.RouteQuery, maxAge time.Duration) ([]byte, time.Duration, bool) {
	path := c.path(query)

	info, err := os.Stat(path)
	if err != nil {
		return nil, 0, false
	}

	age := time.Since(info.ModTime())
	if age > maxAge {
		if err := os.Remove(path); err != nil {
			logrus.Warnf("Failed to remove stale cache file %s: %v", path, err)
		}
		return nil, 0, false
	}

	payload, err := os.ReadFile(path)
	if err != nil {
		logrus.Warnf("Failed to read cache file %s: %v", path, err)
		return nil, 0, false
	}

	return payload, age, true
}

// Put persists the payload for the route, overwriting any prior entry.
// The returned error is for logging only; a cache write failure must never
// fail the lookup, the in-memory payload is still usable.
func (c *Cache) Put(query domain.RouteQuery, payload []byte) error {
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}
	if err := os.WriteFile(c.path(query), payload, 0o644); err != nil {
		return fmt.Errorf("write cache file: %w", err)
	}
	return nil
}

// path builds the deterministic cache filename for a route. Dates are exact;
// a one-day-shifted search is a different key.
func (c *Cache) path(query domain.RouteQuery) string {
	name := fmt.Sprintf("quotes_%s_%s_%s_%s.json",
		query.Origin,
		query.Destination,
		query.Depart.Format(domain.OnlyDate),
		query.Return.Format(domain.OnlyDate),
	)
	return filepath.Join(c.dir, name)
}
