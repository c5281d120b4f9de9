package main

import (
	"context"
	"fmt"
	"os"
	"ui-market/internal/config"
	"ui-market/internal/data"
	"ui-market/internal/logger"
	"ui-market/internal/service"

	"github.com/jmoiron/sqlx"
	"github.com/urfave/cli/v3"
)

func main() {
	app := &cli.Command{
		Name:  "catalogctl",
		Usage: "Operate the UI component catalog from the terminal",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging",
			},
		},
		Commands: []*cli.Command{
			MigrateCommand(),
			ListCommand(),
			SuggestCommand(),
			KeywordsCommand(),
			StatsCommand(),
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render(err.Error()))
		os.Exit(1)
	}
}

// env is what every catalog command needs.
type env struct {
	cfg *config.Config
	log logger.Logger
	db  *sqlx.DB
}

func openEnv(c *cli.Command) (*env, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if c.Bool("debug") {
		cfg.Log.Level = "debug"
	}
	log := logger.New(cfg.Log, os.Stderr)

	db, err := data.NewDB(cfg.DB)
	if err != nil {
		return nil, err
	}
	log.Debug("Connected to the catalog database")
	return &env{cfg: cfg, log: log, db: db}, nil
}

func (e *env) catalog() *service.CatalogService {
	return service.NewCatalogService(
		data.NewSQLComponentRepository(e.db),
		data.NewCategoryRepository(e.db),
		data.NewKeywordRepository(e.db),
	)
}

func (e *env) Close() error {
	return e.db.Close()
}
