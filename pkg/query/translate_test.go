package query

import (
	"testing"

	sq "github.com/Masterminds/squirrel"
	"github.com/mwantia/cookbook/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const usersBase = `SELECT tu.id, tu.first_name, tu.last_name, tu.email, tu.language, tc.iso2 as "country_iso2" ` +
	`FROM t_user tu LEFT JOIN t_country tc on tu.country_id = tc.id`

func TestTranslate_UsersFilteredByLastName(t *testing.T) {
	stmt, err := NewTranslator().Translate(Users, Request{
		Filter: "last_name:Carlsen",
		Limit:  5,
		Page:   0,
	})
	require.NoError(t, err)

	assert.Equal(t, usersBase+" WHERE tu.last_name = $1 ORDER BY tu.id asc LIMIT $2 OFFSET $3", stmt.SQL)
	assert.Equal(t, []any{"Carlsen", 5, 0}, stmt.Args)
	assert.Equal(t, 0, stmt.Offset)
}

func TestTranslate_RecipesSortedDescending(t *testing.T) {
	stmt, err := NewTranslator().Translate(Recipes, Request{
		Sort:  "title-",
		Limit: 10,
		Page:  2,
	})
	require.NoError(t, err)

	assert.NotContains(t, stmt.SQL, "WHERE")
	assert.Contains(t, stmt.SQL, "FROM t_recipe tr LEFT JOIN t_user tu on tu.id = tr.author_user_id")
	assert.Contains(t, stmt.SQL, "LEFT JOIN t_textblock tt2 on tt2.id = tr.steps_textblock_id")
	assert.Contains(t, stmt.SQL, "ORDER BY tr.title desc LIMIT $1 OFFSET $2")
	assert.Equal(t, []any{10, 20}, stmt.Args)
	assert.Equal(t, 20, stmt.Offset)
	assert.Equal(t, 2, stmt.Page)
}

func TestTranslate_UnknownFilterKey(t *testing.T) {
	before := testutil.ToFloat64(queryRejections.WithLabelValues("users"))

	stmt, err := NewTranslator().Translate(Users, Request{Filter: "bogus:x", Limit: 5})
	require.Error(t, err)
	assert.Nil(t, stmt)
	assert.True(t, errors.IsValidation(err))
	assert.Contains(t, err.Error(), `"bogus"`)
	assert.Contains(t, err.Error(), "filtering")

	assert.Equal(t, before+1, testutil.ToFloat64(queryRejections.WithLabelValues("users")))
}

func TestTranslate_MultipleFiltersKeepOrder(t *testing.T) {
	stmt, err := NewTranslator().Translate(Recipes, Request{
		Filter: "category:Dessert;author_email:a@b.c;title:Flan",
		Limit:  5,
	})
	require.NoError(t, err)

	assert.Contains(t, stmt.SQL, "WHERE tc.name = $1 AND tu.email = $2 AND tr.title = $3 ORDER BY tr.id asc LIMIT $4 OFFSET $5")
	assert.Equal(t, []any{"Dessert", "a@b.c", "Flan", 5, 0}, stmt.Args)
}

func TestTranslate_DuplicateFilterKeyLastWins(t *testing.T) {
	stmt, err := NewTranslator().Translate(Users, Request{
		Filter: "first_name:Jane;email:j@x.io;first_name:John",
		Limit:  5,
	})
	require.NoError(t, err)

	assert.Contains(t, stmt.SQL, "WHERE tu.first_name = $1 AND tu.email = $2 ORDER BY")
	assert.Equal(t, []any{"John", "j@x.io", 5, 0}, stmt.Args)
}

func TestTranslate_FilterValueIsBound(t *testing.T) {
	stmt, err := NewTranslator().Translate(Users, Request{
		Filter: "last_name:x' OR '1'='1",
		Limit:  5,
	})
	require.NoError(t, err)

	assert.NotContains(t, stmt.SQL, "'1'='1")
	assert.Equal(t, "x' OR '1'='1", stmt.Args[0])
}

func TestTranslate_QuestionPlaceholder(t *testing.T) {
	stmt, err := NewTranslator(WithPlaceholder(sq.Question)).Translate(Users, Request{
		Filter: "id:3",
		Sort:   "email-",
		Limit:  2,
		Page:   1,
	})
	require.NoError(t, err)

	assert.Equal(t, usersBase+" WHERE tu.id = ? ORDER BY tu.email desc LIMIT ? OFFSET ?", stmt.SQL)
	assert.Equal(t, []any{"3", 2, 2}, stmt.Args)
}

func TestTranslate_Pagination(t *testing.T) {
	tests := []struct {
		name   string
		limit  int
		page   int
		offset int
		valid  bool
	}{
		{name: "first page", limit: 5, page: 0, offset: 0, valid: true},
		{name: "third page", limit: 10, page: 2, offset: 20, valid: true},
		{name: "max limit", limit: 100, page: 1, offset: 100, valid: true},
		{name: "zero limit", limit: 0, page: 0},
		{name: "negative limit", limit: -1, page: 0},
		{name: "limit above max", limit: 101, page: 0},
		{name: "negative page", limit: 5, page: -1},
		{name: "page above max", limit: 5, page: DefaultMaxPage + 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmt, err := NewTranslator().Translate(Users, Request{Limit: tt.limit, Page: tt.page})
			if !tt.valid {
				require.Error(t, err)
				assert.True(t, errors.IsValidation(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.offset, stmt.Offset)
			assert.Equal(t, []any{tt.limit, tt.offset}, stmt.Args)
		})
	}
}

func TestTranslate_CustomCaps(t *testing.T) {
	tr := NewTranslator(WithMaxLimit(10), WithMaxPage(3))

	_, err := tr.Translate(Users, Request{Limit: 11})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "between 1 and 10")

	_, err = tr.Translate(Users, Request{Limit: 10, Page: 4})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "between 0 and 3")

	_, err = tr.Translate(Users, Request{Limit: 10, Page: 3})
	require.NoError(t, err)
}

func TestTranslate_FilterCheckedBeforeSort(t *testing.T) {
	_, err := NewTranslator().Translate(Users, Request{Filter: "bogus:x", Sort: "nope+", Limit: 5})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bogus")
}

func TestTranslate_OffsetBound(t *testing.T) {
	tr := NewTranslator(WithMaxLimit(1_000_000), WithMaxPage(1_000_000))

	_, err := tr.Translate(Users, Request{Sort: "id+", Limit: 1_000_000, Page: 1_000_000})
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))
	assert.Contains(t, err.Error(), `address an offset beyond 2147483647`)

	stmt, err := tr.Translate(Users, Request{Sort: "id+", Limit: 1_000, Page: 2_147_483})
	require.NoError(t, err)
	assert.Equal(t, 2_147_483_000, stmt.Offset)
}
