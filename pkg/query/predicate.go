package query

// Predicate is a single WHERE restriction. Implementations render SQL text
// with '?' bind variables only; the statement builder rewrites them into the
// driver's placeholder format.
type Predicate interface {
	ToSql() (string, []any, error)

	predicate()
}

// Equal restricts Column to a bound Value. Column always comes from a
// resource whitelist, never from the caller.
type Equal struct {
	Column string
	Value  string
}

func (e Equal) ToSql() (string, []any, error) {
	return e.Column + " = ?", []any{e.Value}, nil
}

func (Equal) predicate() {}
