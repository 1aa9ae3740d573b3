package config

import (
	"fmt"
	"os"
	"strings"

	pkgstrings "opinfo/pkg/platform/strings"
)

// DefaultDatabasePaths are read when OPINFO_DATABASE_PATHS is unset. The
// second file holds local additions to the shipped provider database.
var DefaultDatabasePaths = []string{
	"/usr/share/opinfo/serviceproviders.yaml",
	"/usr/share/opinfo/additional_providers.yaml",
}

// Config captures where operator records come from and how loudly to log.
type Config struct {
	DatabasePaths []string
	PostgresDSN   string
	LogLevel      string
}

// UsePostgres reports whether records are read from PostgreSQL instead of
// the YAML files.
func (c Config) UsePostgres() bool {
	return c.PostgresDSN != ""
}

// FromEnv builds a Config from environment variables so main stays lean.
func FromEnv() (Config, error) {
	paths := pkgstrings.SplitList(os.Getenv("OPINFO_DATABASE_PATHS"))
	if len(paths) == 0 {
		paths = append([]string(nil), DefaultDatabasePaths...)
	}

	level := strings.ToLower(strings.TrimSpace(os.Getenv("OPINFO_LOG_LEVEL")))
	if level == "" {
		level = "info"
	}
	switch level {
	case "debug", "info", "warn", "error":
	default:
		return Config{}, fmt.Errorf("invalid OPINFO_LOG_LEVEL %q", level)
	}

	return Config{
		DatabasePaths: paths,
		PostgresDSN:   strings.TrimSpace(os.Getenv("OPINFO_POSTGRES_DSN")),
		LogLevel:      level,
	}, nil
}
