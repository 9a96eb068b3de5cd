package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/urfave/cli/v2"

	"github.com/riskibarqy/decksite-ingest/internal/app"
	"github.com/riskibarqy/decksite-ingest/internal/config"
	"github.com/riskibarqy/decksite-ingest/internal/platform/logging"
)

// defaultMigrationDirs are tried in order when --dir is not given.
var defaultMigrationDirs = []string{"./db/migrations", "/app/db/migrations"}

type migrationAction func(c *cli.Context, m *migrate.Migrate) error

func newApp(logger *logging.Logger) *cli.App {
	run := func(action migrationAction) cli.ActionFunc {
		return withMigrator(logger, action)
	}

	return &cli.App{
		Name:  "migration",
		Usage: "apply decksite schema migrations",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "dir",
				Usage:   "migrations directory",
				EnvVars: []string{"MIGRATIONS_DIR", "MIGRATIONS_PATH"},
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "up",
				Usage: "apply all pending migrations",
				Action: run(func(_ *cli.Context, m *migrate.Migrate) error {
					return report(logger, "migrations applied", m.Up())
				}),
			},
			{
				Name:      "down",
				Usage:     "roll back migrations (one by default)",
				ArgsUsage: "[steps]",
				Action: run(func(c *cli.Context, m *migrate.Migrate) error {
					steps, err := parseSteps(c.Args().First())
					if err != nil {
						return err
					}
					return report(logger, fmt.Sprintf("rolled back %d migrations", steps), m.Steps(-steps))
				}),
			},
			{
				Name:      "goto",
				Aliases:   []string{"migrate"},
				Usage:     "migrate up or down to a target version",
				ArgsUsage: "<version>",
				Action: run(func(c *cli.Context, m *migrate.Migrate) error {
					target, err := parseVersionArg(c.Args().First(), "goto")
					if err != nil {
						return err
					}
					return report(logger, fmt.Sprintf("migrated to %d", target), m.Migrate(target))
				}),
			},
			{
				Name:      "force",
				Usage:     "set the version without running migrations",
				ArgsUsage: "<version>",
				Action: run(func(c *cli.Context, m *migrate.Migrate) error {
					version, err := parseVersionArg(c.Args().First(), "force")
					if err != nil {
						return err
					}
					if version > uint(^uint(0)>>1) {
						return fmt.Errorf("version %d is too large for this platform", version)
					}
					if err := m.Force(int(version)); err != nil {
						return fmt.Errorf("force version %d: %w", version, err)
					}
					logger.Info("forced version", "version", version)
					return nil
				}),
			},
			{
				Name:  "version",
				Usage: "print the applied version",
				Action: run(func(c *cli.Context, m *migrate.Migrate) error {
					version, dirty, err := m.Version()
					switch {
					case errors.Is(err, migrate.ErrNilVersion):
						_, err = fmt.Fprintln(c.App.Writer, "version: none\ndirty: false")
						return err
					case err != nil:
						return fmt.Errorf("read version: %w", err)
					}
					_, err = fmt.Fprintf(c.App.Writer, "version: %d\ndirty: %t\n", version, dirty)
					return err
				}),
			},
		},
	}
}

// withMigrator opens a migrator for the configured database, runs action and
// closes the migrator again.
func withMigrator(logger *logging.Logger, action migrationAction) cli.ActionFunc {
	return func(c *cli.Context) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		dir, err := resolveMigrationsDir(c.String("dir"))
		if err != nil {
			return err
		}

		source := "file://" + filepath.ToSlash(dir)
		m, err := migrate.New(source, app.DatabaseURL(cfg))
		if err != nil {
			return fmt.Errorf("open migrator: %w", err)
		}
		defer func() {
			srcErr, dbErr := m.Close()
			if err := errors.Join(srcErr, dbErr); err != nil {
				logger.Warn("close migrator", "error", err)
			}
		}()

		logger.Debug("migrator ready", "source", source)
		return action(c, m)
	}
}

// report logs done on success and treats migrate.ErrNoChange as success.
func report(logger *logging.Logger, done string, err error) error {
	switch {
	case errors.Is(err, migrate.ErrNoChange):
		logger.Info("schema already up to date")
		return nil
	case err != nil:
		return err
	}
	logger.Info(done)
	return nil
}

func parseSteps(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 1, nil
	}
	steps, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid down steps %q: %w", raw, err)
	}
	if steps < 1 {
		return 0, fmt.Errorf("down steps must be at least 1, got %d", steps)
	}
	return steps, nil
}

func parseVersionArg(raw, command string) (uint, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, fmt.Errorf("%s requires a version argument", command)
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid version %q: %w", raw, err)
	}
	return uint(v), nil
}

func resolveMigrationsDir(explicit string) (string, error) {
	candidates := defaultMigrationDirs
	if explicit = strings.TrimSpace(explicit); explicit != "" {
		candidates = []string{explicit}
	}
	for _, candidate := range candidates {
		abs, err := filepath.Abs(candidate)
		if err != nil {
			continue
		}
		if info, err := os.Stat(abs); err == nil && info.IsDir() {
			return abs, nil
		}
	}
	return "", fmt.Errorf("no migrations directory among %s", strings.Join(candidates, ", "))
}
