// Package seed parses seed command flags and loads fixtures into the store.
package seed

import (
	"context"
	"errors"
	"flag"

	"github.com/louisbranch/constellation/internal/panel/storage/sqlite"
	entrypoint "github.com/louisbranch/constellation/internal/platform/cmd"
	"github.com/louisbranch/constellation/internal/seed"
)

// Config holds seed command configuration.
type Config struct {
	DBPath string `env:"CONSTELLATION_PANEL_DB" envDefault:"panel.db"`
	File   string `env:"CONSTELLATION_SEED_FILE" envDefault:"seed.yaml"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "Path to the panel SQLite database")
	fs.StringVar(&cfg.File, "file", cfg.File, "Path to the YAML seed fixture")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run loads the fixture file and writes it through the store.
func Run(ctx context.Context, cfg Config) error {
	if cfg.File == "" {
		return errors.New("seed file is required")
	}
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceSeed, func(ctx context.Context) error {
		fixture, err := seed.Load(cfg.File)
		if err != nil {
			return err
		}
		store, err := sqlite.Open(cfg.DBPath)
		if err != nil {
			return err
		}
		defer store.Close()
		return seed.Apply(ctx, store, fixture)
	})
}
