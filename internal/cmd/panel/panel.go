// Package panel parses panel command flags and starts the observer gateway.
package panel

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"time"

	"github.com/louisbranch/constellation/internal/panel/gateway"
	"github.com/louisbranch/constellation/internal/panel/storage/sqlite"
	"github.com/louisbranch/constellation/internal/panel/stream"
	entrypoint "github.com/louisbranch/constellation/internal/platform/cmd"
)

const shutdownTimeout = 5 * time.Second

// Config holds panel command configuration.
type Config struct {
	Port   int    `env:"CONSTELLATION_PANEL_PORT" envDefault:"8080"`
	Addr   string `env:"CONSTELLATION_PANEL_ADDR"`
	DBPath string `env:"CONSTELLATION_PANEL_DB" envDefault:"panel.db"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.IntVar(&cfg.Port, "port", cfg.Port, "The panel server port")
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "The panel server listen address (overrides -port)")
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "Path to the panel SQLite database")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the panel gateway service.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServicePanel, func(ctx context.Context) error {
		store, err := sqlite.Open(cfg.DBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		streamed := stream.NewStore(store, stream.NewFeed())
		hub := gateway.NewHub(streamed, streamed.Feed())
		mux := http.NewServeMux()
		hub.Routes(mux)

		addr := cfg.Addr
		if addr == "" {
			addr = fmt.Sprintf(":%d", cfg.Port)
		}
		server := &http.Server{Addr: addr, Handler: mux}

		errCh := make(chan error, 1)
		go func() {
			errCh <- server.ListenAndServe()
		}()

		select {
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		case err := <-errCh:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err
		}
	})
}
