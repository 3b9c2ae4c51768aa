// internal/domain/usage.go
package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UsageRecord is an append-only log entry marking that a recipe was
// cooked, optionally linked to the plan it was made from. Records are
// never updated or deleted; repeat makes produce repeat records, which
// is how popularity accumulates. Deleting a plan does not remove its
// usage records.
type UsageRecord struct {
	ID         primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	RecipeID   primitive.ObjectID  `bson:"recipeId" json:"recipeId"`
	MealPlanID *primitive.ObjectID `bson:"mealPlanId,omitempty" json:"mealPlanId,omitempty"`
	MadeAt     time.Time           `bson:"madeAt" json:"madeAt"`
}
