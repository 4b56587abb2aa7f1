package service

import (
	"context"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/mwantia/cookbook/pkg/db/store"
)

type call struct {
	sql  string
	args []any
}

// fakeDB records every statement and answers queries through respond.
type fakeDB struct {
	respond  func(sql string, args []any) ([]store.Row, error)
	affected int64
	execErr  error

	calls      []call
	txs        int
	rolledBack int
}

func (f *fakeDB) Query(_ context.Context, sql string, args ...any) ([]store.Row, error) {
	f.calls = append(f.calls, call{sql: sql, args: args})
	if f.respond == nil {
		return nil, nil
	}
	return f.respond(sql, args)
}

func (f *fakeDB) Exec(_ context.Context, sql string, args ...any) (int64, error) {
	f.calls = append(f.calls, call{sql: sql, args: args})
	return f.affected, f.execErr
}

func (f *fakeDB) Placeholder() sq.PlaceholderFormat {
	return sq.Dollar
}

func (f *fakeDB) WithTx(_ context.Context, fn func(tx store.Executor) error) error {
	f.txs++
	if err := fn(f); err != nil {
		f.rolledBack++
		return err
	}
	return nil
}

func (f *fakeDB) statements(prefix string) []call {
	var out []call
	for _, c := range f.calls {
		if strings.HasPrefix(c.sql, prefix) {
			out = append(out, c)
		}
	}
	return out
}

// sequenceIDs answers every RETURNING id with the next id in sequence.
func sequenceIDs(next *int64) func(string, []any) ([]store.Row, error) {
	return func(sql string, _ []any) ([]store.Row, error) {
		*next++
		return []store.Row{{"id": *next}}, nil
	}
}
