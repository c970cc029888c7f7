// Package cache persists the most recent campaign extraction so later runs
// can skip the expensive member query. There is exactly one slot: every fresh
// extraction overwrites it, last write wins.
package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

// Unlimited is the sentinel record limit meaning no limit was applied to the
// extraction. It is deliberately an exported constant rather than a bare zero
// so a genuine zero-record request can never be confused with it.
const Unlimited = 0

const slotFile = "campaign_ids_cache.json"

// Entry is the single persisted extraction slot. It stores identifiers and
// counts only; full campaign payloads are always re-fetched from Salesforce.
type Entry struct {
	RecordIDs    []string       `json:"recordIds"`
	MemberCounts map[string]int `json:"memberCounts"`
	TotalQueried int            `json:"totalQueried"`
	ExtractedAt  time.Time      `json:"extractionTimestamp"`
	Limit        int            `json:"limit"`
	WindowMonths int            `json:"window"`
}

// Store reads and writes the slot file under a fixed directory.
type Store struct {
	dir    string
	logger zerolog.Logger
}

func NewStore(dir string, logger zerolog.Logger) *Store {
	return &Store{dir: dir, logger: logger}
}

func (s *Store) path() string {
	return filepath.Join(s.dir, slotFile)
}

// Load reads the slot. An absent or unreadable file is a cache miss, never an
// error. A corrupt slot degrades to a fresh extraction.
func (s *Store) Load() *Entry {
	data, err := os.ReadFile(s.path())
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn().Err(err).Str("path", s.path()).Msg("cache unreadable, treating as miss")
		}
		return nil
	}

	var e Entry
	if err := json.Unmarshal(data, &e); err != nil {
		s.logger.Warn().Err(err).Str("path", s.path()).Msg("cache corrupt, treating as miss")
		return nil
	}

	age := int(time.Since(e.ExtractedAt).Hours() / 24)
	s.logger.Info().
		Int("campaigns", len(e.RecordIDs)).
		Int("age_days", age).
		Int("window_months", e.WindowMonths).
		Int("limit", e.Limit).
		Msg("found campaign cache")
	return &e
}

// Compatible reports whether a cached entry can serve a new extraction
// request. The lookback window must match exactly: different windows are
// different record sets, never substitutable. The limit check passes when
// either side is Unlimited or the cached limit covers the requested one: a
// broader extraction can always serve a narrower request.
func Compatible(e *Entry, windowMonths, limit int) bool {
	if e == nil {
		return false
	}
	if e.WindowMonths != windowMonths {
		return false
	}
	return e.Limit == Unlimited || limit == Unlimited || e.Limit >= limit
}

// Save overwrites the slot atomically: the entry is written to a temp file in
// the same directory and renamed over the slot, so a half-written file is
// never visible. A write failure here is fatal for the caller's run.
func (s *Store) Save(ids []string, counts map[string]int, totalQueried, limit, windowMonths int) error {
	e := Entry{
		RecordIDs:    ids,
		MemberCounts: counts,
		TotalQueried: totalQueried,
		ExtractedAt:  time.Now().UTC(),
		Limit:        limit,
		WindowMonths: windowMonths,
	}

	data, err := json.MarshalIndent(e, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal cache entry: %w", err)
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, slotFile+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp cache file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write cache entry: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp cache file: %w", err)
	}
	if err := os.Rename(tmpName, s.path()); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace cache slot: %w", err)
	}

	s.logger.Info().
		Int("campaigns", len(ids)).
		Int("queried", totalQueried).
		Msg("saved campaign cache")
	return nil
}

// Clear deletes the slot. A missing slot is not an error.
func (s *Store) Clear() error {
	if err := os.Remove(s.path()); err != nil {
		if os.IsNotExist(err) {
			s.logger.Info().Msg("no cache found to clear")
			return nil
		}
		return fmt.Errorf("clear cache: %w", err)
	}
	s.logger.Info().Msg("campaign cache cleared")
	return nil
}

// Info summarizes the current slot for operator display. Returns nil when the
// slot is absent or unreadable.
type Info struct {
	ExtractedAt  time.Time
	AgeDays      int
	Campaigns    int
	TotalMembers int
	TotalQueried int
	Limit        int
	WindowMonths int
}

func (s *Store) Info() *Info {
	e := s.Load()
	if e == nil {
		return nil
	}
	total := 0
	for _, n := range e.MemberCounts {
		total += n
	}
	return &Info{
		ExtractedAt:  e.ExtractedAt,
		AgeDays:      int(time.Since(e.ExtractedAt).Hours() / 24),
		Campaigns:    len(e.RecordIDs),
		TotalMembers: total,
		TotalQueried: e.TotalQueried,
		Limit:        e.Limit,
		WindowMonths: e.WindowMonths,
	}
}
