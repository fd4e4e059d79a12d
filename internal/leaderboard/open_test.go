package leaderboard

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
)

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.json")
	s, err := Open(context.Background(), Location{Path: path}, log.New(io.Discard))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("seeded file missing: %v", err)
	}
	entries, _ := s.Read(context.Background())
	if len(entries) != 1 || entries[0].Name != SeedName {
		t.Errorf("entries = %+v", entries)
	}
}

func TestOpenMemory(t *testing.T) {
	s, err := Open(context.Background(), Location{}, log.New(io.Discard))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, ok := s.backend.(*MemoryBackend); !ok {
		t.Errorf("backend = %T, want *MemoryBackend", s.backend)
	}
}
