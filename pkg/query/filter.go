package query

import (
	"fmt"
	"strings"

	"github.com/mwantia/cookbook/pkg/errors"
)

const (
	filterSeparator = ";"
	valueSeparator  = ":"
)

// ParseFilter turns "key:value;key2:value2" into equality predicates in
// encounter order. Each token is split on its first ':' so values may contain
// colons. A key repeated for the same column replaces the earlier value but
// keeps its position.
func ParseFilter(res *Resource, raw string) ([]Predicate, error) {
	if raw == "" {
		return nil, nil
	}

	var predicates []Predicate
	positions := make(map[string]int)

	for _, token := range strings.Split(raw, filterSeparator) {
		key, value, ok := strings.Cut(token, valueSeparator)
		if !ok {
			return nil, errors.NewWithContext(errors.ErrCodeValidation,
				fmt.Sprintf(`Filter query parameter "%s" is incomplete. Make sure the key:value pair is complete.`, token),
				map[string]any{
					"filter": raw,
				})
		}

		column, ok := res.filters[key]
		if !ok {
			return nil, errors.NewWithContext(errors.ErrCodeValidation,
				fmt.Sprintf(`The parameter "%s" is not available for filtering.`, key),
				map[string]any{
					"parameter": key,
					"available": res.FilterKeys(),
				})
		}

		p := Equal{Column: column, Value: value}
		if i, seen := positions[column]; seen {
			predicates[i] = p
			continue
		}
		positions[column] = len(predicates)
		predicates = append(predicates, p)
	}

	return predicates, nil
}
