// Package cli holds the opinfo command tree. Commands read their settings
// from the environment through internal/platform/config.
package cli

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"opinfo/internal/operator/ports"
	"opinfo/internal/operator/source/postgres"
	"opinfo/internal/operator/source/yamlfile"
	"opinfo/internal/platform/config"
	"opinfo/internal/platform/logger"
)

// NewRootCommand builds the opinfo command with all subcommands attached.
// Command output goes to out; logs go to errOut.
func NewRootCommand(out, errOut io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:   "opinfo",
		Short: "Identify the mobile operator behind a cellular subscription",
		Long: `opinfo resolves modem identity values (MCCMNC, IMSI, ICCID, SID, NID and
operator name) against the mobile operator database and prints the effective
operator profile.

Databases are read from the YAML files in OPINFO_DATABASE_PATHS, or from
PostgreSQL when OPINFO_POSTGRES_DSN is set.`,
		SilenceUsage: true,
	}
	root.SetOut(out)
	root.SetErr(errOut)

	root.AddCommand(checkCommand(), resolveCommand())
	return root
}

// environment is what every command needs before doing real work.
type environment struct {
	cfg    config.Config
	logger *slog.Logger
	source ports.Source
	close  func() error
}

func loadEnvironment(cmd *cobra.Command) (*environment, error) {
	cfg, err := config.FromEnv()
	if err != nil {
		return nil, err
	}
	log := logger.NewWithWriter(cmd.ErrOrStderr(), cfg.LogLevel)

	env := &environment{cfg: cfg, logger: log, close: func() error { return nil }}
	if cfg.UsePostgres() {
		db, err := postgres.Open(cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		src, err := postgres.New(db, postgres.WithLogger(log))
		if err != nil {
			db.Close()
			return nil, err
		}
		env.source = src
		env.close = db.Close
		return env, nil
	}

	src, err := yamlfile.New(cfg.DatabasePaths, yamlfile.WithLogger(log))
	if err != nil {
		return nil, err
	}
	env.source = src
	return env, nil
}

