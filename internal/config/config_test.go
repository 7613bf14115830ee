package config

import (
	"flag"
	"slices"
	"testing"
)

func newFlagSet() *flag.FlagSet {
	return flag.NewFlagSet("test", flag.ContinueOnError)
}

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"TRANSLIT_DATA_DIR", "PORT", "CORS_ALLOWED_ORIGINS", "RESOLVE_CACHE_SIZE", "TRANSLIT_WORKERS"} {
		t.Setenv(k, "")
	}
	cfg, err := Load(newFlagSet(), nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DataDir != "data" {
		t.Errorf("DataDir = %q, want %q", cfg.DataDir, "data")
	}
	if cfg.Port != ":8080" {
		t.Errorf("Port = %q, want %q", cfg.Port, ":8080")
	}
	if !slices.Equal(cfg.AllowedOrigins, []string{"*"}) {
		t.Errorf("AllowedOrigins = %v, want [*]", cfg.AllowedOrigins)
	}
	if cfg.Workers < 1 {
		t.Errorf("Workers = %d, want >= 1", cfg.Workers)
	}
}

func TestLoadEnvironment(t *testing.T) {
	t.Setenv("TRANSLIT_DATA_DIR", "/srv/osl")
	t.Setenv("PORT", "9000")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.example, http://b.example")
	t.Setenv("RESOLVE_CACHE_SIZE", "0")
	t.Setenv("TRANSLIT_WORKERS", "3")

	cfg, err := Load(newFlagSet(), nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DataDir != "/srv/osl" {
		t.Errorf("DataDir = %q, want %q", cfg.DataDir, "/srv/osl")
	}
	if cfg.Port != ":9000" {
		t.Errorf("Port = %q, want %q", cfg.Port, ":9000")
	}
	want := []string{"http://a.example", "http://b.example"}
	if !slices.Equal(cfg.AllowedOrigins, want) {
		t.Errorf("AllowedOrigins = %v, want %v", cfg.AllowedOrigins, want)
	}
	if cfg.CacheSize != 0 {
		t.Errorf("CacheSize = %d, want 0", cfg.CacheSize)
	}
	if cfg.Workers != 3 {
		t.Errorf("Workers = %d, want 3", cfg.Workers)
	}
}

func TestLoadFlagsWinOverEnvironment(t *testing.T) {
	t.Setenv("TRANSLIT_DATA_DIR", "/srv/osl")
	t.Setenv("TRANSLIT_WORKERS", "3")

	cfg, err := Load(newFlagSet(), []string{"-data", "testdata", "-workers", "2"})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DataDir != "testdata" {
		t.Errorf("DataDir = %q, want %q", cfg.DataDir, "testdata")
	}
	if cfg.Workers != 2 {
		t.Errorf("Workers = %d, want 2", cfg.Workers)
	}
}

func TestLoadBadNumber(t *testing.T) {
	t.Setenv("RESOLVE_CACHE_SIZE", "lots")
	if _, err := Load(newFlagSet(), nil); err == nil {
		t.Error("Load with RESOLVE_CACHE_SIZE=lots: want error")
	}
}
