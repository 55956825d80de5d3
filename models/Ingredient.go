package models

import "time"

// Ingredient is an atomic food item with a fixed macro profile per 100 grams.
type Ingredient struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"name"`
	Carbs     float64   `gorm:"not null" json:"carbs"`
	Protein   float64   `gorm:"not null" json:"protein"`
	Fat       float64   `gorm:"not null" json:"fat"`
	Kcal      float64   `gorm:"not null" json:"kcal"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
