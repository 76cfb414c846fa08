package seed

import (
	"flag"
	"testing"
)

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("seed", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.DBPath != "panel.db" {
		t.Fatalf("expected default db path, got %q", cfg.DBPath)
	}
	if cfg.File != "seed.yaml" {
		t.Fatalf("expected default seed file, got %q", cfg.File)
	}
}

func TestParseConfigOverrides(t *testing.T) {
	fs := flag.NewFlagSet("seed", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-db", "/tmp/other.db", "-file", "fixtures/demo.yaml"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.DBPath != "/tmp/other.db" {
		t.Fatalf("expected db override, got %q", cfg.DBPath)
	}
	if cfg.File != "fixtures/demo.yaml" {
		t.Fatalf("expected file override, got %q", cfg.File)
	}
}
