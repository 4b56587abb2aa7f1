package query

import (
	"testing"

	"github.com/mwantia/cookbook/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSort(t *testing.T) {
	tests := []struct {
		name     string
		resource *Resource
		raw      string
		expected string
		errMsg   string
	}{
		{name: "default", resource: Users, raw: "", expected: "tu.id asc"},
		{name: "explicit ascending", resource: Users, raw: "last_name+", expected: "tu.last_name asc"},
		{name: "descending", resource: Users, raw: "email-", expected: "tu.email desc"},
		{name: "no suffix", resource: Recipes, raw: "first_created", expected: "tr.first_created asc"},
		{name: "alias to joined column", resource: Recipes, raw: "category-", expected: "tc.name desc"},
		{name: "other suffix kept", resource: Users, raw: "id*", errMsg: `The parameter "id*" is not available for sorting.`},
		{name: "unknown column", resource: Users, raw: "language+", errMsg: `The parameter "language" is not available for sorting.`},
		{name: "only direction", resource: Users, raw: "-", errMsg: `The parameter "" is not available for sorting.`},
		{name: "recipe only column on users", resource: Users, raw: "first_created-", errMsg: `"first_created"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := ParseSort(tt.resource, tt.raw)
			if tt.errMsg != "" {
				require.Error(t, err)
				assert.True(t, errors.IsValidation(err))
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, s.String())
		})
	}
}

func TestResourceKeys(t *testing.T) {
	assert.Equal(t, []string{"author_email", "author_last_name", "category", "id", "title"}, Recipes.FilterKeys())
	assert.Equal(t, []string{"author_email", "author_last_name", "category", "first_created", "id", "title"}, Recipes.SortKeys())
	assert.Equal(t, "users", Users.Name())
}
