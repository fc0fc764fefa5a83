// Reelmatch - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package poster

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/reelmatch/internal/metrics"
)

// Key prefix for cached poster paths, keyed by TMDB id.
const posterKeyPrefix = "poster:"

// gcDiscardRatio is the fraction of a value log file that must be stale
// before badger rewrites it.
const gcDiscardRatio = 0.5

// CacheEntry is a cached metadata answer. Missing records a confirmed
// absence so the service is not asked again before the entry expires.
type CacheEntry struct {
	Path      string    `json:"path,omitempty"`
	Missing   bool      `json:"missing,omitempty"`
	FetchedAt time.Time `json:"fetched_at"`
}

// Store is a badger-backed cache of poster paths with per-entry TTL.
type Store struct {
	db  *badger.DB
	ttl time.Duration
}

// OpenStore opens the cache at path, or an in-memory cache when path is empty.
func OpenStore(path string, ttl time.Duration) (*Store, error) {
	opts := badger.DefaultOptions(path)
	if path == "" {
		opts = badger.DefaultOptions("").WithInMemory(true)
	}
	opts.Logger = nil
	opts.ValueLogFileSize = 16 << 20

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open poster cache: %w", err)
	}
	return &Store{db: db, ttl: ttl}, nil
}

func posterKey(externalID int64) []byte {
	return []byte(posterKeyPrefix + strconv.FormatInt(externalID, 10))
}

// Get returns the cached entry for externalID. Expired entries are
// invisible; badger drops them on read.
func (s *Store) Get(externalID int64) (CacheEntry, bool, error) {
	var entry CacheEntry
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(posterKey(externalID))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &entry)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return CacheEntry{}, false, nil
	}
	if err != nil {
		return CacheEntry{}, false, fmt.Errorf("get poster %d: %w", externalID, err)
	}
	return entry, true, nil
}

// Put stores entry with the store TTL.
func (s *Store) Put(externalID int64, entry CacheEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal poster entry: %w", err)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		e := badger.NewEntry(posterKey(externalID), data)
		if s.ttl > 0 {
			e = e.WithTTL(s.ttl)
		}
		return txn.SetEntry(e)
	})
}

// Count returns the number of live entries.
func (s *Store) Count() (int, error) {
	count := 0
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(posterKeyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			count++
		}
		return nil
	})
	return count, err
}

// RunGC runs one value log GC pass. It reports whether a file was
// rewritten; an in-memory store has no value log and always reports false.
func (s *Store) RunGC() (bool, error) {
	if s.db.Opts().InMemory {
		metrics.BadgerGCRuns.WithLabelValues("noop").Inc()
		return false, nil
	}
	err := s.db.RunValueLogGC(gcDiscardRatio)
	switch {
	case err == nil:
		metrics.BadgerGCRuns.WithLabelValues("rewritten").Inc()
		return true, nil
	case errors.Is(err, badger.ErrNoRewrite), errors.Is(err, badger.ErrRejected):
		metrics.BadgerGCRuns.WithLabelValues("noop").Inc()
		return false, nil
	default:
		metrics.BadgerGCRuns.WithLabelValues("error").Inc()
		return false, fmt.Errorf("poster cache gc: %w", err)
	}
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
