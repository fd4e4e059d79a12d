package leaderboard

import (
	"context"

	"github.com/charmbracelet/log"
)

// Location selects where the record is kept. Bucket wins over Path; with
// neither set the leaderboard only lives in memory.
type Location struct {
	Path   string
	Bucket string
	Key    string
	Region string
}

// DefaultKey is the S3 object key used when none is configured.
const DefaultKey = "rocketman/leaderboard.json"

// Open builds a store for loc and seeds it.
func Open(ctx context.Context, loc Location, logger *log.Logger) (*Store, error) {
	if logger == nil {
		logger = log.Default()
	}

	var backend Backend
	switch {
	case loc.Bucket != "":
		key := loc.Key
		if key == "" {
			key = DefaultKey
		}
		b, err := NewS3Backend(ctx, loc.Region, loc.Bucket, key)
		if err != nil {
			return nil, err
		}
		backend = b
		logger.Info("leaderboard in s3", "bucket", loc.Bucket, "key", key)
	case loc.Path != "":
		backend = FileBackend{Path: loc.Path}
		logger.Info("leaderboard in file", "path", loc.Path)
	default:
		backend = NewMemoryBackend(nil)
		logger.Warn("no leaderboard location configured, scores are kept in memory")
	}

	s := NewStore(backend, logger)
	if err := s.Load(ctx); err != nil {
		return nil, err
	}
	return s, nil
}
