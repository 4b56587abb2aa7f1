package query

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/mwantia/cookbook/pkg/db/store"
)

var executionTime = regexp.MustCompile(`Execution Time:\s+([0-9.]+)\s+ms`)

// Explain runs the statement under EXPLAIN ANALYZE and returns the plan text
// together with the reported execution time in milliseconds. PostgreSQL only.
func Explain(ctx context.Context, exec store.Executor, stmt *Statement) (string, float64, error) {
	if exec.Placeholder() != sq.Dollar {
		return "", 0, fmt.Errorf("explain is only supported on postgres")
	}

	rows, err := exec.Query(ctx, "EXPLAIN (ANALYZE, BUFFERS, FORMAT TEXT) "+stmt.SQL, stmt.Args...)
	if err != nil {
		return "", 0, fmt.Errorf("failed to explain query: %w", err)
	}

	var plan strings.Builder
	for _, row := range rows {
		if line, ok := row["QUERY PLAN"].(string); ok {
			plan.WriteString(line)
			plan.WriteString("\n")
		}
	}

	out := plan.String()
	m := executionTime.FindStringSubmatch(out)
	if m == nil {
		return out, 0, fmt.Errorf("execution time not found in plan")
	}

	ms, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return out, 0, fmt.Errorf("failed to parse execution time %q: %w", m[1], err)
	}
	return out, ms, nil
}
