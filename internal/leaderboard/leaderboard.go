// Package leaderboard keeps the top ten scores in a single JSON record.
// The record lives behind a Backend: a local file, an S3 object or memory.
package leaderboard

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// Size is the number of entries kept.
const Size = 10

// DefaultName replaces a blank player name.
const DefaultName = "PLAYER"

// DateLayout formats entry dates as a short local date.
const DateLayout = "1/2/2006"

// Legacy seed entry restored by Load when missing.
const (
	SeedName  = "ANDREW LUCK"
	SeedScore = int64(121212121212121212)
)

// ErrNotFound is returned by a Backend when no record exists yet.
var ErrNotFound = errors.New("leaderboard: record not found")

// Entry is one leaderboard row.
type Entry struct {
	Name  string `json:"name"`
	Score int64  `json:"score"`
	Date  string `json:"date"`
}

// Backend stores the serialized leaderboard record.
type Backend interface {
	Read(ctx context.Context) ([]byte, error)
	Write(ctx context.Context, data []byte) error
}

// Store reads and updates the leaderboard. Updates are serialized so
// concurrent submissions from several sessions do not lose entries.
type Store struct {
	mu      sync.Mutex
	backend Backend
	logger  *log.Logger
	now     func() time.Time
}

// NewStore creates a store over b.
func NewStore(b Backend, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.Default()
	}
	return &Store{backend: b, logger: logger, now: time.Now}
}

// Read returns the stored entries. A missing or malformed record reads as
// an empty leaderboard; only backend failures are returned as errors.
func (s *Store) Read(ctx context.Context) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read(ctx)
}

func (s *Store) read(ctx context.Context) ([]Entry, error) {
	data, err := s.backend.Read(ctx)
	if errors.Is(err, ErrNotFound) {
		return []Entry{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read leaderboard: %w", err)
	}
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		s.logger.Warn("malformed leaderboard, treating as empty", "err", err)
		return []Entry{}, nil
	}
	if entries == nil {
		entries = []Entry{}
	}
	return entries, nil
}

// Write replaces the stored record with entries.
func (s *Store) Write(ctx context.Context, entries []Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(ctx, entries)
}

func (s *Store) write(ctx context.Context, entries []Entry) error {
	if entries == nil {
		entries = []Entry{}
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encode leaderboard: %w", err)
	}
	if err := s.backend.Write(ctx, data); err != nil {
		return fmt.Errorf("write leaderboard: %w", err)
	}
	return nil
}

// Load makes sure the legacy seed entry is present. It writes only when
// the seed had to be added, so repeated calls leave the record unchanged.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.read(ctx)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if e.Name == SeedName && e.Score == SeedScore {
			return nil
		}
	}
	entries = append(entries, Entry{Name: SeedName, Score: SeedScore, Date: s.date()})
	return s.write(ctx, rank(entries))
}

// Submit records a score under name and returns the updated top entries.
// The name is trimmed and uppercased; a blank name becomes DefaultName.
func (s *Store) Submit(ctx context.Context, name string, score int64) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.read(ctx)
	if err != nil {
		return nil, err
	}
	entries = append(entries, Entry{Name: NormalizeName(name), Score: score, Date: s.date()})
	entries = rank(entries)
	if err := s.write(ctx, entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *Store) date() string {
	return s.now().Format(DateLayout)
}

// NormalizeName strips non-printable bytes, then trims and uppercases a
// player name.
func NormalizeName(name string) string {
	name = strings.ToUpper(strings.TrimSpace(Printable(name)))
	if name == "" {
		return DefaultName
	}
	return name
}

// Printable keeps only printable ASCII bytes, so a name can be written to
// a terminal without carrying control sequences.
func Printable(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 0x20 || r > 0x7e {
			return -1
		}
		return r
	}, s)
}

// rank sorts by score descending, keeping insertion order for ties, and
// truncates to Size.
func rank(entries []Entry) []Entry {
	slices.SortStableFunc(entries, func(a, b Entry) int {
		return cmp.Compare(b.Score, a.Score)
	})
	if len(entries) > Size {
		entries = entries[:Size]
	}
	return entries
}

// HighlightIndex returns the index of the first entry with the given
// score, or -1.
func HighlightIndex(entries []Entry, score int64) int {
	return slices.IndexFunc(entries, func(e Entry) bool { return e.Score == score })
}
