package query

import (
	"fmt"

	"github.com/mwantia/cookbook/pkg/errors"
)

type Direction int

const (
	Asc Direction = iota
	Desc
)

func (d Direction) String() string {
	if d == Desc {
		return "desc"
	}
	return "asc"
}

// Sort is the single ORDER BY column of a listing.
type Sort struct {
	Column    string
	Direction Direction
}

func (s Sort) String() string {
	return s.Column + " " + s.Direction.String()
}

// ParseSort reads "column+", "column-" or "column". An empty value selects the
// resource default.
func ParseSort(res *Resource, raw string) (Sort, error) {
	if raw == "" {
		raw = res.defaultSort
	}

	name, dir := raw, Asc
	switch raw[len(raw)-1] {
	case '+':
		name = raw[:len(raw)-1]
	case '-':
		name, dir = raw[:len(raw)-1], Desc
	}

	column, ok := res.sorts[name]
	if !ok {
		return Sort{}, errors.NewWithContext(errors.ErrCodeValidation,
			fmt.Sprintf(`The parameter "%s" is not available for sorting.`, name),
			map[string]any{
				"parameter": name,
				"available": res.SortKeys(),
			})
	}

	return Sort{Column: column, Direction: dir}, nil
}
