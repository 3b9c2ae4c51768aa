// internal/domain/recipe.go
package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MealType tags a recipe or restaurant with when/how it is eaten.
type MealType string

const (
	MealTypeBreakfast MealType = "breakfast"
	MealTypeLunch     MealType = "lunch"
	MealTypeDinner    MealType = "dinner"
	MealTypeDessert   MealType = "dessert"
	MealTypeSides     MealType = "sides"
	MealTypeSnacks    MealType = "snacks"
	MealTypeDrinks    MealType = "drinks"
	MealTypeSavoury   MealType = "savoury"
	MealTypeSweet     MealType = "sweet"
)

// AllMealTypes lists every valid meal type tag, in display order.
var AllMealTypes = []MealType{
	MealTypeBreakfast,
	MealTypeLunch,
	MealTypeDinner,
	MealTypeDessert,
	MealTypeSides,
	MealTypeSnacks,
	MealTypeDrinks,
	MealTypeSavoury,
	MealTypeSweet,
}

// IsValidMealType reports whether t is one of the known meal type tags.
func IsValidMealType(t MealType) bool {
	for _, mt := range AllMealTypes {
		if mt == t {
			return true
		}
	}
	return false
}

// Recipe represents a single recipe in the personal catalog.
type Recipe struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Link        string             `bson:"link" json:"link"` // Source URL the recipe was saved from
	Name        string             `bson:"name,omitempty" json:"name,omitempty"`
	Cuisine     string             `bson:"cuisine,omitempty" json:"cuisine,omitempty"`
	IsFavorite  bool               `bson:"isFavorite" json:"isFavorite"`
	Ingredients []string           `bson:"ingredients" json:"ingredients"`
	MealTypes   []MealType         `bson:"mealTypes" json:"mealTypes"`
	Notes       string             `bson:"notes,omitempty" json:"notes,omitempty"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	ImageURL    string             `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// HasMealType reports whether the recipe carries the given tag.
func (r *Recipe) HasMealType(t MealType) bool {
	for _, mt := range r.MealTypes {
		if mt == t {
			return true
		}
	}
	return false
}

// IsSide reports whether the recipe is eligible as a side dish.
// Sides are ordinary recipes tagged "sides", not a separate entity.
func (r *Recipe) IsSide() bool {
	return r.HasMealType(MealTypeSides)
}
