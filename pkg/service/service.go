package service

import (
	"context"
	"fmt"
	"strconv"

	sq "github.com/Masterminds/squirrel"
	"github.com/mwantia/cookbook/pkg/db/store"
	"github.com/mwantia/cookbook/pkg/errors"
	"github.com/mwantia/cookbook/pkg/query"
)

// Database is the storage capability the services depend on. store.Store
// satisfies it.
type Database interface {
	store.Executor

	WithTx(ctx context.Context, fn func(tx store.Executor) error) error
}

// Page is one page of a listing.
type Page struct {
	Total       int         `json:"total"`
	CurrentPage int         `json:"currentPage"`
	Offset      int         `json:"offset"`
	Items       []store.Row `json:"items"`
}

// lister runs translated listing statements for a single resource.
type lister struct {
	db         store.Executor
	translator *query.Translator
	resource   *query.Resource
	empty      string
}

func newLister(db store.Executor, res *query.Resource, empty string, opts []query.Option) lister {
	opts = append([]query.Option{query.WithPlaceholder(db.Placeholder())}, opts...)
	return lister{
		db:         db,
		translator: query.NewTranslator(opts...),
		resource:   res,
		empty:      empty,
	}
}

func (l lister) list(ctx context.Context, req query.Request) (*Page, error) {
	stmt, err := l.translator.Translate(l.resource, req)
	if err != nil {
		return nil, err
	}

	rows, err := l.db.Query(ctx, stmt.SQL, stmt.Args...)
	if err != nil {
		return nil, errors.Database(fmt.Sprintf("failed to list %s", l.resource.Name()), err)
	}
	if len(rows) == 0 {
		return nil, errors.NotFound("%s", l.empty)
	}

	return &Page{
		Total:       len(rows),
		CurrentPage: stmt.Page,
		Offset:      stmt.Offset,
		Items:       rows,
	}, nil
}

func builder(exec store.Executor) sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(exec.Placeholder())
}

func queryRows(ctx context.Context, exec store.Executor, b sq.Sqlizer) ([]store.Row, error) {
	sql, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}
	return exec.Query(ctx, sql, args...)
}

func execStmt(ctx context.Context, exec store.Executor, b sq.Sqlizer) (int64, error) {
	sql, args, err := b.ToSql()
	if err != nil {
		return 0, err
	}
	return exec.Exec(ctx, sql, args...)
}

// returningID runs an INSERT ... RETURNING id and reads the generated id.
func returningID(ctx context.Context, exec store.Executor, b sq.InsertBuilder, conflict string) (int64, error) {
	suffix := "RETURNING id"
	if conflict != "" {
		suffix = conflict + " " + suffix
	}

	rows, err := queryRows(ctx, exec, b.Suffix(suffix))
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, fmt.Errorf("insert returned no id")
	}
	return toInt64(rows[0]["id"])
}

// lookupID returns the id of the first row or 0 when there is none.
func lookupID(ctx context.Context, exec store.Executor, b sq.SelectBuilder) (int64, error) {
	rows, err := queryRows(ctx, exec, b.Limit(1))
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return toInt64(rows[0]["id"])
}

func toInt64(v any) (int64, error) {
	switch n := v.(type) {
	case int64:
		return n, nil
	case int32:
		return int64(n), nil
	case int:
		return int64(n), nil
	case uint:
		return int64(n), nil
	case uint64:
		return int64(n), nil
	case float64:
		return int64(n), nil
	case string:
		return strconv.ParseInt(n, 10, 64)
	default:
		return 0, fmt.Errorf("unexpected id type %T", v)
	}
}

// passthrough keeps classified errors and wraps everything else as a
// database failure.
func passthrough(message string, err error) error {
	if err == nil {
		return nil
	}
	if errors.CodeOf(err) != errors.ErrCodeInternal {
		return err
	}
	return errors.Database(message, err)
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
