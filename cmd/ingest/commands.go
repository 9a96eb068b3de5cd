package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/urfave/cli/v2"

	"github.com/riskibarqy/decksite-ingest/internal/app"
	"github.com/riskibarqy/decksite-ingest/internal/config"
	"github.com/riskibarqy/decksite-ingest/internal/domain/alias"
	"github.com/riskibarqy/decksite-ingest/internal/platform/logging"
	"github.com/riskibarqy/decksite-ingest/internal/usecase"
)

type cliState struct {
	logger *logging.Logger
}

func newApp(logger *logging.Logger) *cli.App {
	st := &cliState{logger: logger}
	return &cli.App{
		Name:  "ingest",
		Usage: "pull tournaments from gatherling into the decksite database",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "log at debug level"},
		},
		Before: func(c *cli.Context) error {
			if c.Bool("verbose") {
				st.logger = logging.NewConsole(logging.LevelDebug)
			}
			logging.SetDefault(st.logger)
			return nil
		},
		Commands: []*cli.Command{
			scrapeCommand(st),
			replayCommand(st),
			seriesCommand(st),
			aliasCommand(st),
		},
	}
}

func withContainer(c *cli.Context, st *cliState, fn func(ctr *app.Container) error) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	ctr, err := app.New(c.Context, cfg, st.logger)
	if err != nil {
		return err
	}
	defer func() { _ = ctr.Close() }()

	return fn(ctr)
}

func scrapeCommand(st *cliState) *cli.Command {
	return &cli.Command{
		Name:  "scrape",
		Usage: "fetch recent events and ingest every registered series",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "json", Usage: "print the batch report as JSON"},
		},
		Action: func(c *cli.Context) error {
			return withContainer(c, st, func(ctr *app.Container) error {
				report, err := ctr.Ingestion.RunBatch(c.Context)
				if err != nil {
					return err
				}
				return finishScrape(c.App.Writer, report, c.Bool("json"))
			})
		},
	}
}

func replayCommand(st *cliState) *cli.Command {
	return &cli.Command{
		Name:      "replay",
		Usage:     "ingest one tournament from the recent feed, ignoring the series allow-list",
		ArgsUsage: "<tournament name>",
		Action: func(c *cli.Context) error {
			name := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
			if name == "" {
				return cli.Exit("replay requires a tournament name", 2)
			}
			return withContainer(c, st, func(ctr *app.Container) error {
				events, err := ctr.Gatherling.FetchRecentEvents(c.Context)
				if err != nil {
					return err
				}
				for _, raw := range events {
					if raw.Name != name {
						continue
					}
					outcome, err := ctr.Ingestion.IngestTournament(c.Context, raw)
					if err != nil {
						return err
					}
					printOutcome(c.App.Writer, outcome)
					if outcome.Status == usecase.IngestionStatusFailed {
						return cli.Exit("tournament failed", 2)
					}
					return nil
				}
				return fmt.Errorf("%w: tournament %q is not in the recent feed", usecase.ErrNotFound, name)
			})
		},
	}
}

func seriesCommand(st *cliState) *cli.Command {
	return &cli.Command{
		Name:  "series",
		Usage: "manage the registered series allow-list",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "print registered series",
				Action: func(c *cli.Context) error {
					return withContainer(c, st, func(ctr *app.Container) error {
						items, err := ctr.Series.List(c.Context)
						if err != nil {
							return err
						}
						for _, item := range items {
							fmt.Fprintln(c.App.Writer, item.Name)
						}
						return nil
					})
				},
			},
			{
				Name:      "add",
				Usage:     "register a series",
				ArgsUsage: "<series name>",
				Action: func(c *cli.Context) error {
					name, err := requireName(c, "series add")
					if err != nil {
						return err
					}
					return withContainer(c, st, func(ctr *app.Container) error {
						if err := ctr.Series.Add(c.Context, name); err != nil {
							return err
						}
						st.logger.Info("series registered", "series", name)
						return nil
					})
				},
			},
			{
				Name:      "remove",
				Usage:     "unregister a series",
				ArgsUsage: "<series name>",
				Action: func(c *cli.Context) error {
					name, err := requireName(c, "series remove")
					if err != nil {
						return err
					}
					return withContainer(c, st, func(ctr *app.Container) error {
						if err := ctr.Series.Remove(c.Context, name); err != nil {
							return err
						}
						st.logger.Info("series removed", "series", name)
						return nil
					})
				},
			},
		},
	}
}

func aliasCommand(st *cliState) *cli.Command {
	return &cli.Command{
		Name:  "alias",
		Usage: "manage competitor aliases",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "print known aliases",
				Action: func(c *cli.Context) error {
					return withContainer(c, st, func(ctr *app.Container) error {
						items, err := ctr.Aliases.List(c.Context)
						if err != nil {
							return err
						}
						printAliases(c.App.Writer, items)
						return nil
					})
				},
			},
			{
				Name:      "add",
				Usage:     "map an alternate spelling to an MTGO username",
				ArgsUsage: "<alias> <mtgo username>",
				Action: func(c *cli.Context) error {
					if c.Args().Len() != 2 {
						return cli.Exit("alias add requires <alias> <mtgo username>", 2)
					}
					item := alias.Alias{Alias: c.Args().Get(0), MTGOUsername: c.Args().Get(1)}
					return withContainer(c, st, func(ctr *app.Container) error {
						if err := ctr.Aliases.Add(c.Context, item); err != nil {
							return err
						}
						st.logger.Info("alias saved", "alias", item.Alias, "mtgo_username", item.MTGOUsername)
						return nil
					})
				},
			},
		},
	}
}

func requireName(c *cli.Context, command string) (string, error) {
	name := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if name == "" {
		return "", cli.Exit(command+" requires a series name", 2)
	}
	return name, nil
}

// finishScrape prints the report and exits 2 when any tournament failed,
// in either output mode.
func finishScrape(w io.Writer, report usecase.BatchReport, asJSON bool) error {
	if asJSON {
		if err := writeJSON(w, report); err != nil {
			return err
		}
	} else {
		printReport(w, report)
	}
	if report.Failed > 0 {
		return cli.Exit(fmt.Sprintf("%d tournament(s) failed", report.Failed), 2)
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	out, err := sonic.ConfigStd.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}
