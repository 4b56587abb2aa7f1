package models

import "time"

// Textblock stores free text referenced by recipes, categories and ingredients
type Textblock struct {
	ID             uint   `gorm:"primaryKey"`
	Text           string `gorm:"type:text"`
	FirstCreatedBy *uint

	FirstCreated time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Textblock) TableName() string {
	return "t_textblock"
}

// Category groups recipes, e.g. "grilled dishes"
type Category struct {
	ID                     uint   `gorm:"primaryKey"`
	Name                   string `gorm:"type:text;not null;uniqueIndex"`
	DescriptionTextblockID *uint
	FirstCreatedBy         *uint

	FirstCreated time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Category) TableName() string {
	return "t_category"
}

// Recipe is unique per title, description, steps and category
type Recipe struct {
	ID                     uint   `gorm:"primaryKey"`
	Title                  string `gorm:"type:text;not null;uniqueIndex:idx_recipe_identity"`
	DescriptionTextblockID *uint  `gorm:"uniqueIndex:idx_recipe_identity"`
	StepsTextblockID       *uint  `gorm:"uniqueIndex:idx_recipe_identity"`
	CategoryID             *uint  `gorm:"uniqueIndex:idx_recipe_identity"`
	AuthorUserID           *uint  `gorm:"index"`
	FirstCreatedBy         *uint

	FirstCreated time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Recipe) TableName() string {
	return "t_recipe"
}

// Ingredient is unique per singular and plural name
type Ingredient struct {
	ID                             uint   `gorm:"primaryKey"`
	Name                           string `gorm:"type:text;not null;uniqueIndex:idx_ingredient_name"`
	NamePlural                     string `gorm:"type:text;not null;uniqueIndex:idx_ingredient_name"`
	IngredientDescriptionTextblock *uint  `gorm:"column:ingredient_description_textblock"`
	CreatedBy                      *uint
}

func (Ingredient) TableName() string {
	return "t_ingredient"
}

type MeasurementUnit struct {
	ID             uint   `gorm:"primaryKey"`
	Unit           string `gorm:"type:text;not null;uniqueIndex"`
	FirstCreatedBy *uint
}

func (MeasurementUnit) TableName() string {
	return "t_measurement_unit"
}

type MeasurementQuantity struct {
	ID             uint    `gorm:"primaryKey"`
	Quantity       float64 `gorm:"not null;uniqueIndex"`
	FirstCreatedBy *uint
}

func (MeasurementQuantity) TableName() string {
	return "t_measurement_quantity"
}

// RecipeIngredient links an ingredient with its measurement to a recipe
type RecipeIngredient struct {
	ID                    uint `gorm:"primaryKey"`
	RecipeID              uint `gorm:"not null;uniqueIndex:idx_recipe_ingredient"`
	IngredientID          uint `gorm:"not null;uniqueIndex:idx_recipe_ingredient"`
	MeasurementUnitID     uint `gorm:"not null;uniqueIndex:idx_recipe_ingredient"`
	MeasurementQuantityID uint `gorm:"not null;uniqueIndex:idx_recipe_ingredient"`
	FirstCreatedBy        *uint
}

func (RecipeIngredient) TableName() string {
	return "t_recipe_ingredient"
}
