package models

import (
	"time"

	"gorm.io/datatypes"
)

// Recipe is a named dish assembled from ingredients. The macro columns are
// derived from its composition rows and stay nil until the first aggregation.
type Recipe struct {
	ID          uint               `gorm:"primaryKey" json:"id"`
	Version     int                `gorm:"not null;default:1" json:"version"`
	Name        string             `gorm:"type:varchar(50);uniqueIndex;not null" json:"name"`
	MealType    MealType           `gorm:"type:varchar(16);not null" json:"meal_type"`
	LastUpdate  datatypes.Date     `gorm:"not null" json:"last_update"`
	Grams       *int               `json:"grams"`
	Carbs       *float64           `json:"carbs"`
	Protein     *float64           `json:"protein"`
	Fat         *float64           `json:"fat"`
	Kcal        *float64           `json:"kcal"`
	Ingredients []RecipeIngredient `gorm:"foreignKey:RecipeID" json:"ingredients,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}
