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

const usageCollectionName = "recipe_usage"

// mongoUsageRepository implements repository.UsageRepository.
// The collection is append-only: records are inserted and read, never
// updated or removed.
type mongoUsageRepository struct {
	collection *mongo.Collection
}

// NewMongoUsageRepository creates a new usage ledger repository backed by MongoDB.
func NewMongoUsageRepository(db *mongo.Database) repository.UsageRepository {
	return &mongoUsageRepository{
		collection: db.Collection(usageCollectionName),
	}
}

// Insert appends a new usage record. No uniqueness constraint: repeat
// makes of the same recipe are expected.
func (r *mongoUsageRepository) Insert(ctx context.Context, record *domain.UsageRecord) (primitive.ObjectID, error) {
	if record.RecipeID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("usage record requires a recipeId")
	}

	record.ID = primitive.NewObjectID()
	if record.MadeAt.IsZero() {
		record.MadeAt = time.Now().UTC()
	}

	result, err := r.collection.InsertOne(ctx, record)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted usage ID")
	}
	return insertedID, nil
}

// ListByRecipe retrieves all usage records for one recipe, newest first.
func (r *mongoUsageRepository) ListByRecipe(ctx context.Context, recipeID primitive.ObjectID) ([]domain.UsageRecord, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "madeAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{"recipeId": recipeID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []domain.UsageRecord
	if err = cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// CountByRecipe returns the total historical usage count for one recipe.
func (r *mongoUsageRepository) CountByRecipe(ctx context.Context, recipeID primitive.ObjectID) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"recipeId": recipeID})
}

// CountAll aggregates usage counts per recipe via $group. Recipes with
// no usage records are absent from the result.
func (r *mongoUsageRepository) CountAll(ctx context.Context) (map[primitive.ObjectID]int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$recipeId"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	counts := make(map[primitive.ObjectID]int64)
	for cursor.Next(ctx) {
		var row struct {
			RecipeID primitive.ObjectID `bson:"_id"`
			Count    int64              `bson:"count"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, err
		}
		counts[row.RecipeID] = row.Count
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return counts, nil
}

// EnsureUsageIndexes creates necessary indexes. Call during startup.
func EnsureUsageIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "recipeId", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "mealPlanId", Value: 1}},
			Options: options.Index().SetSparse(true),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		// log.Printf("WARN: Failed to create indexes for %s: %v", collection.Name(), err)
	}
}
