package models

// RecipeIngredient is one composition row: the gram quantity of a single
// ingredient inside a recipe. Rows are owned by their recipe and are replaced
// wholesale whenever the recipe's ingredient set changes.
type RecipeIngredient struct {
	ID           uint `gorm:"primaryKey" json:"id"`
	RecipeID     uint `gorm:"not null;uniqueIndex:idx_recipe_ingredient" json:"recipe_id"`
	IngredientID uint `gorm:"not null;uniqueIndex:idx_recipe_ingredient;index" json:"ingredient_id"`
	Grams        int  `gorm:"not null" json:"grams"`

	Ingredient *Ingredient `gorm:"foreignKey:IngredientID" json:"ingredient,omitempty"`
}
