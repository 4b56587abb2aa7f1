package service

import (
	"context"
	"strings"
	"testing"

	"github.com/mwantia/cookbook/pkg/db/store"
	"github.com/mwantia/cookbook/pkg/errors"
	"github.com/mwantia/cookbook/pkg/query"
	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func float(v float64) *float64 {
	return &v
}

func text(v string) *string {
	return &v
}

func pancakes() RecipeInput {
	return RecipeInput{
		Title:       "Pancakes",
		Category:    CategoryInput{Name: "Breakfast", Text: "Morning dishes"},
		Description: "Fluffy pancakes",
		Steps:       "Mix and fry",
		Ingredients: []IngredientInput{
			{Name: "egg", NamePlural: "eggs", MeasurementUnit: "piece", MeasurementQuantity: float(2)},
			{Name: "flour", NamePlural: "flour", Text: text("wheat"), MeasurementUnit: "g", MeasurementQuantity: float(250)},
		},
	}
}

func TestRecipeList(t *testing.T) {
	db := &fakeDB{
		respond: func(string, []any) ([]store.Row, error) {
			return []store.Row{{"id": int64(1), "title": "Pancakes"}}, nil
		},
	}
	svc := NewRecipeService(db)

	page, err := svc.List(context.Background(), query.Request{Sort: "title-", Limit: 10, Page: 2})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Total)
	assert.Equal(t, 20, page.Offset)

	require.Len(t, db.calls, 1)
	assert.Contains(t, db.calls[0].sql, "ORDER BY tr.title desc LIMIT $1 OFFSET $2")
	assert.Equal(t, []any{10, 20}, db.calls[0].args)
}

func TestRecipeList_Empty(t *testing.T) {
	_, err := NewRecipeService(&fakeDB{}).List(context.Background(), query.Request{Limit: 5})
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
	assert.Contains(t, err.Error(), "No recipes found.")
}

func TestRecipeCreate(t *testing.T) {
	var next int64
	db := &fakeDB{respond: sequenceIDs(&next)}
	svc := NewRecipeService(db)

	created, err := svc.Create(context.Background(), 1, pancakes())
	require.NoError(t, err)

	assert.Equal(t, 1, db.txs)
	assert.Zero(t, db.rolledBack)
	assert.Equal(t, "Breakfast", created.CategoryName)
	require.Len(t, created.Ingredients, 2)
	assert.Equal(t, "eggs", created.Ingredients[0].NamePlural)
	assert.Nil(t, created.Ingredients[0].Description)
	assert.Equal(t, "wheat", *created.Ingredients[1].Description)
	assert.Equal(t, 250.0, created.Ingredients[1].MeasurementQuantity)

	// author check, category text, category, description, steps, recipe,
	// then five statements per ingredient
	assert.Len(t, db.calls, 6+2*5)
	assert.Len(t, db.statements("INSERT INTO t_textblock"), 5)
	assert.Len(t, db.statements("INSERT INTO t_recipe_ingredient"), 2)

	category := db.statements("INSERT INTO t_category")
	require.Len(t, category, 1)
	assert.Contains(t, category[0].sql, "ON CONFLICT (name) DO UPDATE SET name = excluded.name RETURNING id")

	recipe := db.statements("INSERT INTO t_recipe ")
	require.Len(t, recipe, 1)
	assert.Equal(t, int64(6), created.ID)

	link := db.statements("INSERT INTO t_recipe_ingredient")[0]
	assert.True(t, strings.HasSuffix(link.sql, "DO NOTHING"))
	assert.Equal(t, created.ID, link.args[0])
}

func TestRecipeCreate_UnknownAuthor(t *testing.T) {
	db := &fakeDB{}
	svc := NewRecipeService(db)

	_, err := svc.Create(context.Background(), 42, pancakes())
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
	assert.Equal(t, 1, db.rolledBack)
	assert.Len(t, db.calls, 1)
}

func TestRecipeCreate_FailureRollsBack(t *testing.T) {
	var next int64
	ids := sequenceIDs(&next)
	db := &fakeDB{
		respond: func(sql string, args []any) ([]store.Row, error) {
			if strings.HasPrefix(sql, "INSERT INTO t_measurement_unit") {
				return nil, pkgerrors.New("unique violation")
			}
			return ids(sql, args)
		},
	}
	svc := NewRecipeService(db)

	_, err := svc.Create(context.Background(), 1, pancakes())
	require.Error(t, err)
	assert.True(t, errors.IsDatabase(err))
	assert.Contains(t, err.Error(), "unique violation")
	assert.Equal(t, 1, db.rolledBack)
	assert.Empty(t, db.statements("INSERT INTO t_recipe_ingredient"))
}
