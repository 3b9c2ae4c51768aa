package mongo

import (
	"context"
	"errors"
	"time"

	"plateful/internal/domain"
	"plateful/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const recipeCollectionName = "recipes"

// mongoRecipeRepository implements repository.RecipeRepository
type mongoRecipeRepository struct {
	collection *mongo.Collection
}

// NewMongoRecipeRepository creates a new Recipe repository backed by MongoDB.
func NewMongoRecipeRepository(db *mongo.Database) repository.RecipeRepository {
	return &mongoRecipeRepository{
		collection: db.Collection(recipeCollectionName),
	}
}

// Create inserts a new recipe into the database.
func (r *mongoRecipeRepository) Create(ctx context.Context, recipe *domain.Recipe) (primitive.ObjectID, error) {
	if recipe.Link == "" {
		return primitive.NilObjectID, errors.New("recipe link is required")
	}

	recipe.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	recipe.CreatedAt = now
	recipe.UpdatedAt = now
	if recipe.Ingredients == nil {
		recipe.Ingredients = []string{}
	}
	if recipe.MealTypes == nil {
		recipe.MealTypes = []domain.MealType{}
	}

	result, err := r.collection.InsertOne(ctx, recipe)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

// GetByID retrieves a recipe by its ID.
func (r *mongoRecipeRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Recipe, error) {
	var recipe domain.Recipe
	filter := bson.M{"_id": id}

	err := r.collection.FindOne(ctx, filter).Decode(&recipe)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &recipe, nil
}

// buildRecipeFilter translates a RecipeFilter into a Mongo query document.
func buildRecipeFilter(f repository.RecipeFilter) bson.M {
	filter := bson.M{}
	if f.Cuisine != "" {
		filter["cuisine"] = f.Cuisine
	}
	if f.MealType != "" {
		filter["mealTypes"] = f.MealType
	}
	if f.Favorite != nil {
		filter["isFavorite"] = *f.Favorite
	}
	if f.NameSearch != "" {
		filter["name"] = bson.M{"$regex": primitive.Regex{Pattern: f.NameSearch, Options: "i"}}
	}
	return filter
}

// List retrieves recipes matching the filter, oldest first.
// Catalog order is creation order, which keeps recommendation
// tie-breaking stable across calls.
func (r *mongoRecipeRepository) List(ctx context.Context, f repository.RecipeFilter) ([]domain.Recipe, error) {
	var recipes []domain.Recipe

	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})

	cursor, err := r.collection.Find(ctx, buildRecipeFilter(f), findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &recipes); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return recipes, nil
}

// ListByMealType retrieves all recipes carrying the given meal type tag.
func (r *mongoRecipeRepository) ListByMealType(ctx context.Context, mealType domain.MealType) ([]domain.Recipe, error) {
	return r.List(ctx, repository.RecipeFilter{MealType: mealType})
}

// Update modifies an existing recipe and bumps UpdatedAt.
func (r *mongoRecipeRepository) Update(ctx context.Context, recipe *domain.Recipe) error {
	if recipe.ID == primitive.NilObjectID {
		return errors.New("recipe ID is required for update")
	}

	filter := bson.M{"_id": recipe.ID}
	update := bson.M{
		"$set": bson.M{
			"link":        recipe.Link,
			"name":        recipe.Name,
			"cuisine":     recipe.Cuisine,
			"isFavorite":  recipe.IsFavorite,
			"ingredients": recipe.Ingredients,
			"mealTypes":   recipe.MealTypes,
			"notes":       recipe.Notes,
			"description": recipe.Description,
			"imageUrl":    recipe.ImageURL,
			"updatedAt":   time.Now().UTC(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes a recipe by ID.
func (r *mongoRecipeRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Cuisines returns the distinct non-empty cuisines in the catalog.
func (r *mongoRecipeRepository) Cuisines(ctx context.Context) ([]string, error) {
	values, err := r.collection.Distinct(ctx, "cuisine", bson.M{"cuisine": bson.M{"$nin": bson.A{nil, ""}}})
	if err != nil {
		return nil, err
	}
	cuisines := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			cuisines = append(cuisines, s)
		}
	}
	return cuisines, nil
}

// EnsureRecipeIndexes creates necessary indexes. Call during startup.
func EnsureRecipeIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "isFavorite", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "cuisine", Value: 1}},
			Options: options.Index().SetSparse(true),
		},
		{
			// Multikey index over the tags array covers the sides lookup
			Keys:    bson.D{{Key: "mealTypes", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "createdAt", Value: 1}},
			Options: options.Index(),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		// log.Printf("WARN: Failed to create indexes for %s: %v", collection.Name(), err)
	}
}
