// Package errors provides the structured error taxonomy shared by the query
// translator, the resource services and the HTTP layer.
//
// Three classes matter to callers:
//
//   - ErrCodeValidation: malformed filter or sort syntax, unknown columns,
//     out-of-range pagination, invalid request bodies.
//   - ErrCodeNotFound: the query ran but produced no rows.
//   - ErrCodeDatabase: the storage round-trip failed.
//
// Example usage:
//
//	rows, err := exec.Query(ctx, stmt.SQL, stmt.Args...)
//	if err != nil {
//	    return nil, errors.Database("failed to list users", err)
//	}
package errors
