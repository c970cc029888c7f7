package cache

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(t.TempDir(), zerolog.Nop())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := testStore(t)

	ids := []string{"701A", "701B", "701C"}
	counts := map[string]int{"701A": 5, "701B": 2, "701C": 9}

	if err := s.Save(ids, counts, 16, 1000, 12); err != nil {
		t.Fatalf("Save: %v", err)
	}

	e := s.Load()
	if e == nil {
		t.Fatal("Load returned nil after Save")
	}
	if len(e.RecordIDs) != 3 || e.RecordIDs[0] != "701A" || e.RecordIDs[2] != "701C" {
		t.Errorf("ids = %v, want original order preserved", e.RecordIDs)
	}
	if e.MemberCounts["701B"] != 2 {
		t.Errorf("count for 701B = %d, want 2", e.MemberCounts["701B"])
	}
	if e.TotalQueried != 16 {
		t.Errorf("TotalQueried = %d, want 16", e.TotalQueried)
	}
	if e.Limit != 1000 || e.WindowMonths != 12 {
		t.Errorf("limit/window = %d/%d, want 1000/12", e.Limit, e.WindowMonths)
	}
	if e.ExtractedAt.IsZero() {
		t.Error("ExtractedAt not set")
	}
}

func TestLoadMissing(t *testing.T) {
	s := testStore(t)
	if e := s.Load(); e != nil {
		t.Errorf("Load on empty dir = %+v, want nil", e)
	}
}

func TestLoadCorrupt(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(dir, zerolog.Nop())

	if err := os.WriteFile(filepath.Join(dir, slotFile), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if e := s.Load(); e != nil {
		t.Errorf("Load on corrupt slot = %+v, want nil (miss)", e)
	}
}

func TestSaveOverwritesSlot(t *testing.T) {
	s := testStore(t)

	if err := s.Save([]string{"old"}, map[string]int{"old": 1}, 1, Unlimited, 6); err != nil {
		t.Fatal(err)
	}
	if err := s.Save([]string{"new1", "new2"}, map[string]int{"new1": 1, "new2": 1}, 2, 50, 12); err != nil {
		t.Fatal(err)
	}

	e := s.Load()
	if e == nil {
		t.Fatal("Load returned nil")
	}
	if len(e.RecordIDs) != 2 || e.RecordIDs[0] != "new1" {
		t.Errorf("ids = %v, want second extraction only", e.RecordIDs)
	}
	if e.WindowMonths != 12 {
		t.Errorf("window = %d, want 12 from second save", e.WindowMonths)
	}
}

func TestCompatible(t *testing.T) {
	tests := []struct {
		name   string
		entry  *Entry
		window int
		limit  int
		want   bool
	}{
		{"nil entry", nil, 12, 100, false},
		{"exact match", &Entry{WindowMonths: 12, Limit: 100}, 12, 100, true},
		{"window mismatch", &Entry{WindowMonths: 6, Limit: 100}, 12, 100, false},
		{"cached covers smaller request", &Entry{WindowMonths: 12, Limit: 1000}, 12, 100, true},
		{"cached smaller than request", &Entry{WindowMonths: 12, Limit: 100}, 12, 1000, false},
		{"cached unlimited serves any limit", &Entry{WindowMonths: 12, Limit: Unlimited}, 12, 1000, true},
		{"requested unlimited", &Entry{WindowMonths: 12, Limit: 100}, 12, Unlimited, true},
		{"both unlimited", &Entry{WindowMonths: 12, Limit: Unlimited}, 12, Unlimited, true},
		{"unlimited but wrong window", &Entry{WindowMonths: 6, Limit: Unlimited}, 12, Unlimited, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Compatible(tt.entry, tt.window, tt.limit); got != tt.want {
				t.Errorf("Compatible(window=%d, limit=%d) = %v, want %v", tt.window, tt.limit, got, tt.want)
			}
		})
	}
}

func TestClear(t *testing.T) {
	s := testStore(t)

	// Clearing an empty slot is fine.
	if err := s.Clear(); err != nil {
		t.Fatalf("Clear on empty: %v", err)
	}

	if err := s.Save([]string{"701A"}, map[string]int{"701A": 1}, 1, 10, 12); err != nil {
		t.Fatal(err)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if e := s.Load(); e != nil {
		t.Errorf("Load after Clear = %+v, want nil", e)
	}
}

func TestInfo(t *testing.T) {
	s := testStore(t)

	if i := s.Info(); i != nil {
		t.Errorf("Info on empty slot = %+v, want nil", i)
	}

	counts := map[string]int{"a": 3, "b": 4}
	if err := s.Save([]string{"a", "b"}, counts, 7, 500, 12); err != nil {
		t.Fatal(err)
	}

	i := s.Info()
	if i == nil {
		t.Fatal("Info returned nil after Save")
	}
	if i.Campaigns != 2 {
		t.Errorf("Campaigns = %d, want 2", i.Campaigns)
	}
	if i.TotalMembers != 7 {
		t.Errorf("TotalMembers = %d, want 7", i.TotalMembers)
	}
	if i.TotalQueried != 7 {
		t.Errorf("TotalQueried = %d, want 7", i.TotalQueried)
	}
	if i.Limit != 500 || i.WindowMonths != 12 {
		t.Errorf("limit/window = %d/%d, want 500/12", i.Limit, i.WindowMonths)
	}
}
