package query

import (
	"fmt"
	"math"

	sq "github.com/Masterminds/squirrel"
	"github.com/mwantia/cookbook/pkg/errors"
)

const (
	DefaultMaxLimit = 100
	DefaultMaxPage  = 10_000_000

	// MaxOffset bounds limit * page so the offset fits a 32-bit integer on
	// every driver.
	MaxOffset = math.MaxInt32
)

// Statement is a rendered listing query ready for a single round-trip.
type Statement struct {
	SQL    string
	Args   []any
	Limit  int
	Page   int
	Offset int
}

type Translator struct {
	placeholder sq.PlaceholderFormat
	maxLimit    int
	maxPage     int
}

type Option func(*Translator)

// WithPlaceholder selects the bind variable format of the target driver.
func WithPlaceholder(p sq.PlaceholderFormat) Option {
	return func(t *Translator) {
		t.placeholder = p
	}
}

func WithMaxLimit(n int) Option {
	return func(t *Translator) {
		if n > 0 {
			t.maxLimit = n
		}
	}
}

func WithMaxPage(n int) Option {
	return func(t *Translator) {
		if n >= 0 {
			t.maxPage = n
		}
	}
}

func NewTranslator(opts ...Option) *Translator {
	t := &Translator{
		placeholder: sq.Dollar,
		maxLimit:    DefaultMaxLimit,
		maxPage:     DefaultMaxPage,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Translate validates req against res and renders the listing statement.
// Filter values, limit and offset are always bound parameters.
func (t *Translator) Translate(res *Resource, req Request) (*Statement, error) {
	stmt, err := t.translate(res, req)
	if err != nil {
		queryRejections.WithLabelValues(res.name).Inc()
		return nil, err
	}
	return stmt, nil
}

func (t *Translator) translate(res *Resource, req Request) (*Statement, error) {
	predicates, err := ParseFilter(res, req.Filter)
	if err != nil {
		return nil, err
	}

	order, err := ParseSort(res, req.Sort)
	if err != nil {
		return nil, err
	}

	if req.Limit < 1 || req.Limit > t.maxLimit {
		return nil, errors.Validation(`Query parameter "limit" must be between 1 and %d.`, t.maxLimit)
	}
	if req.Page < 0 || req.Page > t.maxPage {
		return nil, errors.Validation(`Query parameter "page" must be between 0 and %d.`, t.maxPage)
	}
	if req.Page > 0 && req.Limit > MaxOffset/req.Page {
		return nil, errors.Validation(`Query parameters "limit" and "page" address an offset beyond %d.`, MaxOffset)
	}
	offset := req.Limit * req.Page

	builder := sq.StatementBuilder.
		PlaceholderFormat(t.placeholder).
		Select(res.columns...).
		From(res.from)
	for _, join := range res.joins {
		builder = builder.LeftJoin(join)
	}
	for _, p := range predicates {
		builder = builder.Where(p)
	}

	sql, args, err := builder.
		OrderBy(order.String()).
		Suffix("LIMIT ? OFFSET ?", req.Limit, offset).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to render %s query: %w", res.name, err)
	}

	return &Statement{
		SQL:    sql,
		Args:   args,
		Limit:  req.Limit,
		Page:   req.Page,
		Offset: offset,
	}, nil
}
