package main

import (
	"context"
	"errors"
	"fmt"
	"ui-market/internal/catalog"
	"ui-market/internal/config"
	"ui-market/internal/data"
	"ui-market/internal/service"

	"github.com/urfave/cli/v3"
)

// MigrateCommand applies the SQL migrations.
func MigrateCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "Apply pending database migrations",
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			if err := data.ApplyMigrations(cfg.DB.DSN, cfg.DB.MigrationsPath); err != nil {
				return err
			}
			fmt.Println(successStyle.Render("Migrations applied"))
			return nil
		},
	}
}

// ListCommand prints one page of the filtered listing. Filter flags take raw
// strings and go through the same normalizer as the web query string.
func ListCommand() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List components matching a filter",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "search", Usage: "Substring of the component name"},
			&cli.StringFlag{Name: "category", Usage: "Category slug, name or id"},
			&cli.StringFlag{Name: "keyword", Usage: "Exact keyword"},
			&cli.StringFlag{Name: "free", Usage: `Only free components ("true")`},
			&cli.StringFlag{Name: "featured", Usage: `Only featured components ("true")`},
			&cli.StringFlag{Name: "new", Usage: `Only new components ("true")`},
			&cli.StringFlag{Name: "ai", Usage: `Only AI components ("true")`},
			&cli.StringFlag{Name: "min-price", Usage: "Lowest price"},
			&cli.StringFlag{Name: "max-price", Usage: "Highest price"},
			&cli.StringFlag{Name: "page", Usage: "Page number", Value: "1"},
			&cli.IntFlag{Name: "limit", Usage: "Page size (defaults to catalog.page_size)"},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			e, err := openEnv(c)
			if err != nil {
				return err
			}
			defer e.Close()

			limit := c.Int("limit")
			if limit <= 0 {
				limit = e.cfg.Catalog.PageSize
			}
			f := catalog.NewFilter(listParams(c.String), limit)
			result, err := e.catalog().GetComponents(ctx, f)
			if err != nil {
				return err
			}
			fmt.Print(renderListing(result))
			return nil
		},
	}
}

// listParams maps CLI flags onto filter parameters.
func listParams(flag func(name string) string) map[string]string {
	names := map[string]string{
		"search":    catalog.ParamSearch,
		"category":  catalog.ParamCategory,
		"keyword":   catalog.ParamKeyword,
		"free":      catalog.ParamIsFree,
		"featured":  catalog.ParamIsFeatured,
		"new":       catalog.ParamIsNew,
		"ai":        catalog.ParamIsAI,
		"min-price": catalog.ParamMinPrice,
		"max-price": catalog.ParamMaxPrice,
		"page":      catalog.ParamPage,
	}
	params := make(map[string]string, len(names))
	for flagName, param := range names {
		if v := flag(flagName); v != "" {
			params[param] = v
		}
	}
	return params
}

// SuggestCommand prints autocomplete suggestions with the match highlighted.
func SuggestCommand() *cli.Command {
	return &cli.Command{
		Name:      "suggest",
		Usage:     "Show autocomplete suggestions for a query",
		ArgsUsage: "<query>",
		Action: func(ctx context.Context, c *cli.Command) error {
			query := c.Args().First()
			if query == "" {
				return errors.New("a query is required")
			}
			e, err := openEnv(c)
			if err != nil {
				return err
			}
			defer e.Close()

			suggestions, err := e.catalog().GetAutocompleteSuggestions(ctx, query)
			if err != nil {
				return err
			}
			if len(suggestions) == 0 {
				fmt.Println(metaStyle.Render("No suggestions"))
				return nil
			}
			for _, s := range suggestions {
				fmt.Println(renderSuggestion(s))
			}
			return nil
		},
	}
}

// KeywordsCommand lists keywords, optionally for one category.
func KeywordsCommand() *cli.Command {
	return &cli.Command{
		Name:  "keywords",
		Usage: "List the keywords in use",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "category", Usage: "Category slug or name"},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			e, err := openEnv(c)
			if err != nil {
				return err
			}
			defer e.Close()

			svc := e.catalog()
			var keywords []string
			if category := c.String("category"); category != "" {
				keywords, err = svc.GetKeywordsBySpecificCategory(ctx, category)
			} else {
				keywords, err = svc.GetAllUniqueKeywords(ctx)
			}
			if err != nil {
				return err
			}
			for _, k := range keywords {
				fmt.Println(k)
			}
			return nil
		},
	}
}

// StatsCommand prints the admin dashboard figures.
func StatsCommand() *cli.Command {
	return &cli.Command{
		Name:  "stats",
		Usage: "Show catalog and sales statistics",
		Action: func(ctx context.Context, c *cli.Command) error {
			e, err := openEnv(c)
			if err != nil {
				return err
			}
			defer e.Close()

			stats, err := service.NewStatsService(data.NewStatsRepository(e.db), nil).Dashboard(ctx)
			if err != nil {
				return err
			}
			fmt.Print(renderStats(stats))
			return nil
		},
	}
}
