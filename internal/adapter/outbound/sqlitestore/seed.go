package sqlitestore

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/goodfoods/goodfoods/internal/domain"
)

type seedFile struct {
	Venues []domain.Venue `yaml:"venues"`
}

// Seed loads the venue catalogue from a YAML file into the store when
// the venues table is empty. An already-populated database is left
// untouched so manual edits survive restarts.
func (s *Store) Seed(ctx context.Context, path string) error {
	venues := s.Venues()

	count, err := venues.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		s.logger.Debug("Venue table already populated, skipping seed", slog.Int("count", count))
		return nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading seed file %q: %w", path, err)
	}

	var seed seedFile
	if err := yaml.Unmarshal(raw, &seed); err != nil {
		return fmt.Errorf("parsing seed file %q: %w", path, err)
	}

	for _, v := range seed.Venues {
		if v.ID == "" || v.Name == "" {
			s.logger.Warn("Skipping seed venue with missing id or name", slog.String("id", v.ID))
			continue
		}
		if err := venues.Insert(ctx, v); err != nil {
			return err
		}
	}
	s.logger.Info("Seeded venue catalogue", slog.Int("count", len(seed.Venues)), slog.String("path", path))
	return nil
}
