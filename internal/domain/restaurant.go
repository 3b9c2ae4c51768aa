// internal/domain/restaurant.go
package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Dish is a dish tried at a restaurant, with an optional 1-5 star rating.
type Dish struct {
	Name   string `bson:"name" json:"name"`
	Rating *int   `bson:"rating,omitempty" json:"rating,omitempty"`
}

// Restaurant represents a saved restaurant in the catalog.
type Restaurant struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Link       string             `bson:"link" json:"link"`
	Name       string             `bson:"name,omitempty" json:"name,omitempty"`
	Suburb     string             `bson:"suburb" json:"suburb"`
	Cuisine    string             `bson:"cuisine,omitempty" json:"cuisine,omitempty"`
	MealTypes  []MealType         `bson:"mealTypes" json:"mealTypes"`
	IsFavorite bool               `bson:"isFavorite" json:"isFavorite"`
	Dishes     []Dish             `bson:"dishes" json:"dishes"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// HasMealType reports whether the restaurant carries the given tag.
func (r *Restaurant) HasMealType(t MealType) bool {
	for _, mt := range r.MealTypes {
		if mt == t {
			return true
		}
	}
	return false
}
