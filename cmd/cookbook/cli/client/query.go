package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mwantia/cookbook/pkg/db/store"
	"github.com/mwantia/cookbook/pkg/query"
	"github.com/mwantia/cookbook/pkg/service"
	"github.com/spf13/cobra"

	config "github.com/mwantia/cookbook/internal/config/server"
)

var resources = map[string]*query.Resource{
	"users":   query.Users,
	"recipes": query.Recipes,
}

func NewQueryCommand() *cobra.Command {
	var req query.Request
	var explain bool
	var sqlOnly bool

	cmd := &cobra.Command{
		Use:   "query <users|recipes>",
		Short: "Run a listing query against the database",
		Long: `Translate filter, sort and pagination parameters into SQL and run them
against the configured database. The same syntax is accepted by the
list endpoints of the API, e.g.

  cookbook query recipes --filter "category:Dessert;author_last_name:Koch" --sort title-`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"users", "recipes"},
		RunE: func(cmd *cobra.Command, args []string) error {
			res, ok := resources[args[0]]
			if !ok {
				return fmt.Errorf("unknown resource '%s' (expected users or recipes)", args[0])
			}

			cfg, err := config.LoadServerConfig()
			if err != nil {
				return fmt.Errorf("failed to load server configuration: %w", err)
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			db, err := store.Open(cfg.Database)
			if err != nil {
				return err
			}

			opts := []query.Option{
				query.WithMaxLimit(cfg.Pagination.MaxLimit),
				query.WithMaxPage(cfg.Pagination.MaxPage),
			}
			translator := query.NewTranslator(append(opts, query.WithPlaceholder(db.Placeholder()))...)
			stmt, err := translator.Translate(res, req)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if sqlOnly {
				fmt.Fprintln(out, stmt.SQL)
				fmt.Fprintf(out, "-- args: %v\n", stmt.Args)
				return nil
			}

			if err := db.Connect(ctx); err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}
			defer db.Close()

			if cfg.Database.AutoMigrate {
				if err := db.Migrate(ctx); err != nil {
					return fmt.Errorf("failed to migrate database: %w", err)
				}
			}

			if explain {
				plan, ms, err := query.Explain(ctx, db, stmt)
				if err != nil {
					return err
				}
				fmt.Fprint(out, plan)
				fmt.Fprintf(out, "-- execution time: %.3f ms\n", ms)
				return nil
			}

			page, err := list(ctx, db, res, req, opts)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(page)
		},
	}

	cmd.Flags().StringVarP(&req.Filter, "filter", "f", "", "filter as key:value pairs separated by ';'")
	cmd.Flags().StringVarP(&req.Sort, "sort", "s", query.DefaultRequest.Sort, "sort column with optional + or - suffix")
	cmd.Flags().IntVarP(&req.Limit, "limit", "l", query.DefaultRequest.Limit, "rows per page")
	cmd.Flags().IntVarP(&req.Page, "page", "p", query.DefaultRequest.Page, "zero-based page index")
	cmd.Flags().BoolVar(&explain, "explain", false, "print the postgres execution plan instead of rows")
	cmd.Flags().BoolVar(&sqlOnly, "sql", false, "print the translated statement without running it")

	return cmd
}

func list(ctx context.Context, db store.Store, res *query.Resource, req query.Request, opts []query.Option) (*service.Page, error) {
	if res == query.Recipes {
		return service.NewRecipeService(db, opts...).List(ctx, req)
	}
	return service.NewUserService(db, opts...).List(ctx, req)
}
