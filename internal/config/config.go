// Package config gathers the settings shared by the translit commands from
// a .env file, the environment and command-line flags.
package config

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds the settings shared by the server and the batch commands.
type Config struct {
	// DataDir holds sl.json, epsd2-sl.json, the built tables and an
	// optional corrections.yaml.
	DataDir        string
	Port           string
	AllowedOrigins []string
	CacheSize      int
	Workers        int
}

// Load registers the shared flags on fs, parses args and applies the
// environment. An environment variable replaces a flag's default but never
// a flag given explicitly.
func Load(fs *flag.FlagSet, args []string) (*Config, error) {
	_ = godotenv.Load()

	dataDir := fs.String("data", "data", "directory with sign list, tables and corrections")
	port := fs.String("port", ":8080", "listen address")
	origins := fs.String("origins", "*", "comma-separated CORS allowed origins")
	cacheSize := fs.Int("cache", 65536, "resolved wordforms kept in memory (0 disables)")
	workers := fs.Int("workers", runtime.NumCPU(), "records processed in parallel")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if v := env("TRANSLIT_DATA_DIR"); v != "" && !set["data"] {
		*dataDir = v
	}
	if v := env("PORT"); v != "" && !set["port"] {
		if strings.HasPrefix(v, ":") {
			*port = v
		} else {
			*port = ":" + v
		}
	}
	if v := env("CORS_ALLOWED_ORIGINS"); v != "" && !set["origins"] {
		*origins = v
	}
	if !set["cache"] {
		if err := envInt("RESOLVE_CACHE_SIZE", cacheSize); err != nil {
			return nil, err
		}
	}
	if !set["workers"] {
		if err := envInt("TRANSLIT_WORKERS", workers); err != nil {
			return nil, err
		}
	}

	return &Config{
		DataDir:        *dataDir,
		Port:           *port,
		AllowedOrigins: splitList(*origins),
		CacheSize:      max(*cacheSize, 0),
		Workers:        max(*workers, 1),
	}, nil
}

func env(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func envInt(key string, dst *int) error {
	raw := env(key)
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = v
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
