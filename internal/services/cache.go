package services

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/statsight/sportsdash/internal/sports"
)

// FileCache persists normalized payloads to disk, one JSON file per
// (sport, season) key. The file's modification time is the write
// timestamp; there is no separate metadata. The cache is an
// optimization, never a durability guarantee: every failure mode on
// read degrades to a miss and write failures are logged and swallowed.
type FileCache struct {
	dir    string
	ttl    time.Duration
	logger *logrus.Logger
}

// NewFileCache creates the cache directory if needed
func NewFileCache(dir string, ttl time.Duration, logger *logrus.Logger) (*FileCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	return &FileCache{dir: dir, ttl: ttl, logger: logger}, nil
}

// Get returns the cached payload for the key, or ok=false when the
// file is absent, older than the freshness window, or unreadable.
// Corrupt entries are a miss, not an error.
func (c *FileCache) Get(sport sports.Sport, season string) ([]sports.EntityRecord, bool) {
	path := c.entryPath(sport, season)

	info, err := os.Stat(path)
	if err != nil {
		return nil, false
	}
	if time.Since(info.ModTime()) > c.ttl {
		return nil, false
	}

	data, err := os.ReadFile(path)
	if err != nil {
		c.logger.Warnf("Cache read failed for %s/%s: %v", sport, season, err)
		return nil, false
	}

	var records []sports.EntityRecord
	if err := json.Unmarshal(data, &records); err != nil {
		c.logger.Warnf("Discarding corrupt cache entry %s: %v", filepath.Base(path), err)
		return nil, false
	}

	return records, true
}

// Put writes the payload for the key, overwriting any previous entry.
// Best-effort: concurrent writers to the same key race and the last
// write wins, which is harmless because payloads are reproducible from
// the same upstream query.
func (c *FileCache) Put(sport sports.Sport, season string, records []sports.EntityRecord) {
	data, err := json.Marshal(records)
	if err != nil {
		c.logger.Warnf("Cache marshal failed for %s/%s: %v", sport, season, err)
		return
	}

	if err := os.WriteFile(c.entryPath(sport, season), data, 0o644); err != nil {
		c.logger.Warnf("Cache write failed for %s/%s: %v", sport, season, err)
	}
}

// Sweep deletes entries older than the freshness window and returns
// how many were removed. Stale files would be ignored by Get anyway;
// sweeping just bounds disk growth.
func (c *FileCache) Sweep() int {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		c.logger.Warnf("Cache sweep failed: %v", err)
		return 0
	}

	removed := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if time.Since(info.ModTime()) > c.ttl {
			if err := os.Remove(filepath.Join(c.dir, entry.Name())); err == nil {
				removed++
			}
		}
	}

	if removed > 0 {
		c.logger.Infof("Cache sweep removed %d expired entries", removed)
	}
	return removed
}

// entryPath derives the cache file name deterministically from both
// key fields
func (c *FileCache) entryPath(sport sports.Sport, season string) string {
	return filepath.Join(c.dir, fmt.Sprintf("%s_%s.json", sport, sanitizeKeyPart(season)))
}

// sanitizeKeyPart keeps file names flat: anything outside [A-Za-z0-9-]
// becomes an underscore
func sanitizeKeyPart(part string) string {
	var b strings.Builder
	for _, r := range part {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
