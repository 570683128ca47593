package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/Takshak-CS/F1-Database-Analytics/migrations"
	"github.com/Takshak-CS/F1-Database-Analytics/pkg/f1"
	"github.com/Takshak-CS/F1-Database-Analytics/pkg/f1/config"
	"github.com/Takshak-CS/F1-Database-Analytics/pkg/f1/dashboard"
	"github.com/Takshak-CS/F1-Database-Analytics/pkg/f1/infra"
	"github.com/Takshak-CS/F1-Database-Analytics/pkg/f1/logging"
	"github.com/Takshak-CS/F1-Database-Analytics/pkg/f1/migration"
)

const CLIVersion = "v0.1.0"

func main() {
	app := &cli.Command{
		Name:    "f1dash",
		Usage:   "Formula 1 database dashboard",
		Version: CLIVersion,
		Action:  serve,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Start the HTTP API and the metrics server",
				Action: serve,
			},
			{
				Name:  "migrate",
				Usage: "Create and seed the sqlite demo database",
				Action: func(ctx context.Context, _ *cli.Command) error {
					return withContainer(func(c *infra.Container) error {
						if c.SQL.Dialect() != "sqlite" {
							return fmt.Errorf("migrations only provision the sqlite demo database, DB_DIALECT is %q", c.SQL.Dialect())
						}

						return migration.Run(ctx, migrations.All(), c.SQL, c.Logger)
					})
				},
			},
			{
				Name:  "queries",
				Usage: "List the demonstration queries",
				Action: func(_ context.Context, _ *cli.Command) error {
					return printQueries(os.Stdout, (&dashboard.Service{}).NamedQueries())
				},
			},
			{
				Name:  "query",
				Usage: "Run a demonstration query by name or slug",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "name",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					name := cmd.StringArg("name")
					if name == "" {
						return fmt.Errorf("please provide a query name, e.g.: f1dash query top-drivers")
					}

					return withService(func(s *dashboard.Service) error {
						res, err := s.RunNamedQuery(ctx, name)
						if err != nil {
							return err
						}

						return printTable(os.Stdout, res.Table)
					})
				},
			},
			{
				Name:  "standings",
				Usage: "Print the driver and team standings of a season",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "year",
						Usage: "Championship year (default: CHAMPIONSHIP_YEAR)",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return withService(func(s *dashboard.Service) error {
						page, err := s.Standings(ctx, int(cmd.Int("year")))
						if err != nil {
							return err
						}

						if err := printTable(os.Stdout, page.Drivers); err != nil {
							return err
						}

						fmt.Fprintln(os.Stdout)

						return printTable(os.Stdout, page.Teams)
					})
				},
			},
			{
				Name:  "audit",
				Usage: "Print the latest audit log entries",
				Flags: []cli.Flag{
					&cli.StringSliceFlag{
						Name:  "table",
						Usage: "Only entries for these tables",
					},
					&cli.StringSliceFlag{
						Name:  "action",
						Usage: "Only entries with these actions",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return withService(func(s *dashboard.Service) error {
						page, err := s.AuditLog(ctx, dashboard.AuditFilter{
							Tables:  cmd.StringSlice("table"),
							Actions: cmd.StringSlice("action"),
						})
						if err != nil {
							return err
						}

						if err := printMetrics(os.Stdout, page.Summary); err != nil {
							return err
						}

						fmt.Fprintln(os.Stdout)

						return printTable(os.Stdout, page.Entries)
					})
				},
			},
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func serve(_ context.Context, _ *cli.Command) error {
	f1.New().Run()
	return nil
}

// withContainer builds a container for a one-shot command. Logs go to LOG_FILE, or nowhere, so that
// stdout only carries the output.
func withContainer(fn func(c *infra.Container) error) error {
	logger := logging.NewFileLogger(os.Getenv("LOG_FILE"))

	c := infra.NewContainerWithLogger(config.NewEnvFile("./configs", logger), logger)
	defer c.Close()

	return fn(c)
}

func withService(fn func(s *dashboard.Service) error) error {
	return withContainer(func(c *infra.Container) error {
		return fn(c.Dashboard)
	})
}
