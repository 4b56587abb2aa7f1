package service

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/mwantia/cookbook/pkg/db/store"
	"github.com/mwantia/cookbook/pkg/errors"
	"github.com/mwantia/cookbook/pkg/query"
)

type CategoryInput struct {
	Name string `json:"name" validate:"required"`
	Text string `json:"text"`
}

type IngredientInput struct {
	Name                string   `json:"name"                 validate:"required"`
	Text                *string  `json:"text,omitempty"`
	NamePlural          string   `json:"name_plural"          validate:"required"`
	MeasurementUnit     string   `json:"measurement_unit"     validate:"required"`
	MeasurementQuantity *float64 `json:"measurement_quantity" validate:"required,gte=0"`
}

// RecipeInput is the body of a recipe submission.
type RecipeInput struct {
	Title       string            `json:"title"       validate:"required"`
	Category    CategoryInput     `json:"category"`
	Ingredients []IngredientInput `json:"ingredient"  validate:"dive"`
	Description string            `json:"description"`
	Steps       string            `json:"steps"`
}

type CreatedIngredient struct {
	Name                string  `json:"name"`
	NamePlural          string  `json:"namePlural"`
	Description         *string `json:"description"`
	MeasurementUnit     string  `json:"measurementUnit"`
	MeasurementQuantity float64 `json:"measurementQuantity"`
}

type CreatedRecipe struct {
	ID           int64               `json:"id"`
	Title        string              `json:"title"`
	Description  string              `json:"description"`
	CategoryName string              `json:"categoryName"`
	CategoryText string              `json:"categoryText"`
	Steps        string              `json:"steps"`
	Ingredients  []CreatedIngredient `json:"ingredients"`
}

type RecipeService struct {
	db      Database
	recipes lister
}

func NewRecipeService(db Database, opts ...query.Option) *RecipeService {
	return &RecipeService{
		db:      db,
		recipes: newLister(db, query.Recipes, "No recipes found.", opts),
	}
}

func (s *RecipeService) List(ctx context.Context, req query.Request) (*Page, error) {
	return s.recipes.list(ctx, req)
}

// Create stores a recipe with its category, text blocks and ingredients in
// one transaction. Categories, recipes, ingredients, units and quantities are
// reused when they already exist.
func (s *RecipeService) Create(ctx context.Context, authorID int64, in RecipeInput) (*CreatedRecipe, error) {
	created := &CreatedRecipe{
		Title:        in.Title,
		Description:  in.Description,
		CategoryName: in.Category.Name,
		CategoryText: in.Category.Text,
		Steps:        in.Steps,
		Ingredients:  make([]CreatedIngredient, 0, len(in.Ingredients)),
	}

	err := s.db.WithTx(ctx, func(tx store.Executor) error {
		author, err := lookupID(ctx, tx, builder(tx).Select("id").From("t_user").Where(sq.Eq{"id": authorID}))
		if err != nil {
			return err
		}
		if author == 0 {
			return errors.NotFound("User is not available.")
		}

		categoryText, err := insertTextblock(ctx, tx, in.Category.Text, authorID)
		if err != nil {
			return err
		}
		categoryID, err := returningID(ctx, tx, builder(tx).
			Insert("t_category").
			Columns("name", "description_textblock_id", "first_created_by").
			Values(in.Category.Name, categoryText, authorID),
			"ON CONFLICT (name) DO UPDATE SET name = excluded.name")
		if err != nil {
			return err
		}

		descriptionID, err := insertTextblock(ctx, tx, in.Description, authorID)
		if err != nil {
			return err
		}
		stepsID, err := insertTextblock(ctx, tx, in.Steps, authorID)
		if err != nil {
			return err
		}

		recipeID, err := returningID(ctx, tx, builder(tx).
			Insert("t_recipe").
			Columns("title", "description_textblock_id", "author_user_id", "steps_textblock_id", "category_id", "first_created_by").
			Values(in.Title, descriptionID, authorID, stepsID, categoryID, authorID),
			"ON CONFLICT (title, description_textblock_id, steps_textblock_id, category_id) DO UPDATE SET title = excluded.title")
		if err != nil {
			return err
		}
		created.ID = recipeID

		for _, ing := range in.Ingredients {
			if err := addIngredient(ctx, tx, recipeID, authorID, ing); err != nil {
				return err
			}
			created.Ingredients = append(created.Ingredients, CreatedIngredient{
				Name:                ing.Name,
				NamePlural:          ing.NamePlural,
				Description:         ing.Text,
				MeasurementUnit:     ing.MeasurementUnit,
				MeasurementQuantity: *ing.MeasurementQuantity,
			})
		}
		return nil
	})
	if err != nil {
		return nil, passthrough("failed to create recipe", err)
	}
	return created, nil
}

func addIngredient(ctx context.Context, tx store.Executor, recipeID, authorID int64, ing IngredientInput) error {
	var text any
	if ing.Text != nil {
		text = *ing.Text
	}
	textID, err := insertTextblock(ctx, tx, text, authorID)
	if err != nil {
		return err
	}

	ingredientID, err := returningID(ctx, tx, builder(tx).
		Insert("t_ingredient").
		Columns("name", "ingredient_description_textblock", "name_plural", "created_by").
		Values(ing.Name, textID, ing.NamePlural, authorID),
		"ON CONFLICT (name, name_plural) DO UPDATE SET name = excluded.name")
	if err != nil {
		return err
	}

	quantityID, err := returningID(ctx, tx, builder(tx).
		Insert("t_measurement_quantity").
		Columns("quantity", "first_created_by").
		Values(*ing.MeasurementQuantity, authorID),
		"ON CONFLICT (quantity) DO UPDATE SET quantity = excluded.quantity")
	if err != nil {
		return err
	}

	unitID, err := returningID(ctx, tx, builder(tx).
		Insert("t_measurement_unit").
		Columns("unit", "first_created_by").
		Values(ing.MeasurementUnit, authorID),
		"ON CONFLICT (unit) DO UPDATE SET unit = excluded.unit")
	if err != nil {
		return err
	}

	_, err = execStmt(ctx, tx, builder(tx).
		Insert("t_recipe_ingredient").
		Columns("recipe_id", "ingredient_id", "measurement_unit_id", "measurement_quantity_id", "first_created_by").
		Values(recipeID, ingredientID, unitID, quantityID, authorID).
		Suffix("ON CONFLICT (recipe_id, ingredient_id, measurement_unit_id, measurement_quantity_id) DO NOTHING"))
	return err
}

func insertTextblock(ctx context.Context, tx store.Executor, text any, authorID int64) (int64, error) {
	return returningID(ctx, tx, builder(tx).
		Insert("t_textblock").
		Columns("text", "first_created_by").
		Values(text, authorID), "")
}
