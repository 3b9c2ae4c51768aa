package repository

import (
	"context"

	"plateful/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for repository layer
var (
	ErrNotFound     = RepositoryError("not found")
	ErrUpdateFailed = RepositoryError("update failed")
	ErrDeleteFailed = RepositoryError("delete failed")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// RecipeFilter narrows catalog listings. Zero values mean "no filter".
type RecipeFilter struct {
	Cuisine    string
	MealType   domain.MealType
	Favorite   *bool
	NameSearch string // case-insensitive substring match on name
}

// RecipeRepository defines the interface for interacting with recipe data.
type RecipeRepository interface {
	Create(ctx context.Context, recipe *domain.Recipe) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Recipe, error)
	List(ctx context.Context, filter RecipeFilter) ([]domain.Recipe, error)
	ListByMealType(ctx context.Context, mealType domain.MealType) ([]domain.Recipe, error)
	Update(ctx context.Context, recipe *domain.Recipe) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	Cuisines(ctx context.Context) ([]string, error)
}

// RestaurantFilter narrows restaurant listings.
type RestaurantFilter struct {
	Cuisine    string
	Suburb     string
	MealType   domain.MealType
	Favorite   *bool
	NameSearch string
}

// RestaurantRepository defines the interface for interacting with restaurant data.
type RestaurantRepository interface {
	Create(ctx context.Context, restaurant *domain.Restaurant) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Restaurant, error)
	List(ctx context.Context, filter RestaurantFilter) ([]domain.Restaurant, error)
	Update(ctx context.Context, restaurant *domain.Restaurant) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	Cuisines(ctx context.Context) ([]string, error)
	Suburbs(ctx context.Context) ([]string, error)
}

// MealPlanRepository defines the interface for interacting with meal plan data.
type MealPlanRepository interface {
	Create(ctx context.Context, plan *domain.MealPlan) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.MealPlan, error)
	List(ctx context.Context, status *domain.PlanStatus) ([]domain.MealPlan, error)
	Update(ctx context.Context, plan *domain.MealPlan) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	// Count returns the total number of stored plans, across all
	// statuses. The recommendation rotation offset is derived from it.
	Count(ctx context.Context) (int64, error)
}

// UsageRepository defines the interface for the append-only recipe usage ledger.
// There is deliberately no Update or Delete: usage history is immutable
// and survives plan deletion.
type UsageRepository interface {
	Insert(ctx context.Context, record *domain.UsageRecord) (primitive.ObjectID, error)
	ListByRecipe(ctx context.Context, recipeID primitive.ObjectID) ([]domain.UsageRecord, error)
	CountByRecipe(ctx context.Context, recipeID primitive.ObjectID) (int64, error)
	// CountAll aggregates usage counts per recipe. Recipes never made
	// are absent from the map.
	CountAll(ctx context.Context) (map[primitive.ObjectID]int64, error)
}
