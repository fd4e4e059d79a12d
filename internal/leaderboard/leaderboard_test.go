package leaderboard

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func newTestStore(b Backend) *Store {
	s := NewStore(b, log.New(io.Discard))
	s.now = func() time.Time { return time.Date(2024, 3, 7, 12, 0, 0, 0, time.UTC) }
	return s
}

func TestReadMissingAndMalformed(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"missing", nil},
		{"malformed", []byte("{not json")},
		{"null", []byte("null")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStore(NewMemoryBackend(tt.data))
			got, err := s.Read(context.Background())
			if err != nil {
				t.Fatalf("Read: %v", err)
			}
			if got == nil || len(got) != 0 {
				t.Errorf("Read = %v, want empty", got)
			}
		})
	}
}

type failingBackend struct{}

func (failingBackend) Read(context.Context) ([]byte, error) { return nil, errors.New("boom") }
func (failingBackend) Write(context.Context, []byte) error  { return errors.New("boom") }

func TestReadBackendError(t *testing.T) {
	s := newTestStore(failingBackend{})
	if _, err := s.Read(context.Background()); err == nil {
		t.Error("expected backend error")
	}
	if _, err := s.Submit(context.Background(), "x", 1); err == nil {
		t.Error("expected submit error")
	}
}

func TestLoadSeedsOnce(t *testing.T) {
	ctx := context.Background()
	mem := NewMemoryBackend(nil)
	s := newTestStore(mem)

	if err := s.Load(ctx); err != nil {
		t.Fatalf("Load: %v", err)
	}
	first, _ := mem.Read(ctx)
	if err := s.Load(ctx); err != nil {
		t.Fatalf("second Load: %v", err)
	}
	second, _ := mem.Read(ctx)
	if string(first) != string(second) {
		t.Errorf("Load not idempotent:\n%s\n%s", first, second)
	}

	entries, _ := s.Read(ctx)
	if len(entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(entries))
	}
	want := Entry{Name: "ANDREW LUCK", Score: 121212121212121212, Date: "3/7/2024"}
	if entries[0] != want {
		t.Errorf("seed = %+v, want %+v", entries[0], want)
	}
}

func TestLoadKeepsExistingEntries(t *testing.T) {
	ctx := context.Background()
	existing := []Entry{{Name: "AMY", Score: 900, Date: "1/1/2024"}}
	data, _ := json.Marshal(existing)
	s := newTestStore(NewMemoryBackend(data))

	if err := s.Load(ctx); err != nil {
		t.Fatalf("Load: %v", err)
	}
	entries, _ := s.Read(ctx)
	if len(entries) != 2 || entries[0].Name != SeedName || entries[1].Name != "AMY" {
		t.Errorf("entries = %+v", entries)
	}
}

func TestSubmit(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(NewMemoryBackend(nil))

	got, err := s.Submit(ctx, "  lou ", 1500)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if len(got) != 1 || got[0].Name != "LOU" || got[0].Score != 1500 || got[0].Date != "3/7/2024" {
		t.Errorf("entries = %+v", got)
	}

	got, _ = s.Submit(ctx, "   ", 3000)
	if got[0].Name != DefaultName || got[0].Score != 3000 {
		t.Errorf("first entry = %+v, want PLAYER/3000", got[0])
	}
}

func TestNormalizeNameStripsControlBytes(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"\x1b[2Jlou\x07", "[2JLOU"},
		{"l\u00f6u", "LU"},
		{"\x1b\x07\t", DefaultName},
		{" amy ", "AMY"},
	}
	for _, tt := range tests {
		if got := NormalizeName(tt.in); got != tt.want {
			t.Errorf("NormalizeName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSubmitKeepsTopTen(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(NewMemoryBackend(nil))
	for i := 1; i <= 12; i++ {
		if _, err := s.Submit(ctx, "p", int64(i*100)); err != nil {
			t.Fatal(err)
		}
	}
	entries, _ := s.Read(ctx)
	if len(entries) != Size {
		t.Fatalf("entries = %d, want %d", len(entries), Size)
	}
	for i := 1; i < len(entries); i++ {
		if entries[i-1].Score < entries[i].Score {
			t.Fatalf("not sorted at %d: %+v", i, entries)
		}
	}
	if entries[0].Score != 1200 || entries[Size-1].Score != 300 {
		t.Errorf("range = %d..%d, want 1200..300", entries[0].Score, entries[Size-1].Score)
	}

	// Too low to place: the record is unchanged apart from the rewrite.
	got, _ := s.Submit(ctx, "low", 5)
	if HighlightIndex(got, 5) != -1 {
		t.Error("low score should not be kept")
	}
}

func TestSubmitTiesKeepOrder(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(NewMemoryBackend(nil))
	s.Submit(ctx, "first", 500)
	got, _ := s.Submit(ctx, "second", 500)
	if got[0].Name != "FIRST" || got[1].Name != "SECOND" {
		t.Errorf("tie order = %s, %s", got[0].Name, got[1].Name)
	}
	if i := HighlightIndex(got, 500); i != 0 {
		t.Errorf("HighlightIndex = %d, want 0", i)
	}
}

func TestFileBackend(t *testing.T) {
	ctx := context.Background()
	fb := FileBackend{Path: filepath.Join(t.TempDir(), "nested", "scores.json")}

	if _, err := fb.Read(ctx); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Read on missing file = %v, want ErrNotFound", err)
	}

	s := newTestStore(fb)
	if err := s.Load(ctx); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, err := s.Submit(ctx, "lou", 42); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	reopened := newTestStore(FileBackend{Path: fb.Path})
	entries, err := reopened.Read(ctx)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(entries) != 2 || entries[1].Name != "LOU" {
		t.Errorf("entries = %+v", entries)
	}
}
