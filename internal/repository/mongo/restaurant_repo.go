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

const restaurantCollectionName = "restaurants"

// mongoRestaurantRepository implements repository.RestaurantRepository
type mongoRestaurantRepository struct {
	collection *mongo.Collection
}

// NewMongoRestaurantRepository creates a new Restaurant repository backed by MongoDB.
func NewMongoRestaurantRepository(db *mongo.Database) repository.RestaurantRepository {
	return &mongoRestaurantRepository{
		collection: db.Collection(restaurantCollectionName),
	}
}

// Create inserts a new restaurant into the database.
func (r *mongoRestaurantRepository) Create(ctx context.Context, restaurant *domain.Restaurant) (primitive.ObjectID, error) {
	if restaurant.Link == "" || restaurant.Suburb == "" {
		return primitive.NilObjectID, errors.New("restaurant link and suburb are required")
	}

	restaurant.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	restaurant.CreatedAt = now
	restaurant.UpdatedAt = now
	if restaurant.MealTypes == nil {
		restaurant.MealTypes = []domain.MealType{}
	}
	if restaurant.Dishes == nil {
		restaurant.Dishes = []domain.Dish{}
	}

	result, err := r.collection.InsertOne(ctx, restaurant)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

// GetByID retrieves a restaurant by its ID.
func (r *mongoRestaurantRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Restaurant, error) {
	var restaurant domain.Restaurant
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&restaurant)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &restaurant, nil
}

// List retrieves restaurants matching the filter, oldest first.
func (r *mongoRestaurantRepository) List(ctx context.Context, f repository.RestaurantFilter) ([]domain.Restaurant, error) {
	filter := bson.M{}
	if f.Cuisine != "" {
		filter["cuisine"] = f.Cuisine
	}
	if f.Suburb != "" {
		filter["suburb"] = f.Suburb
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

	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var restaurants []domain.Restaurant
	if err = cursor.All(ctx, &restaurants); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return restaurants, nil
}

// Update modifies an existing restaurant and bumps UpdatedAt.
func (r *mongoRestaurantRepository) Update(ctx context.Context, restaurant *domain.Restaurant) error {
	if restaurant.ID == primitive.NilObjectID {
		return errors.New("restaurant ID is required for update")
	}

	filter := bson.M{"_id": restaurant.ID}
	update := bson.M{
		"$set": bson.M{
			"link":       restaurant.Link,
			"name":       restaurant.Name,
			"suburb":     restaurant.Suburb,
			"cuisine":    restaurant.Cuisine,
			"mealTypes":  restaurant.MealTypes,
			"isFavorite": restaurant.IsFavorite,
			"dishes":     restaurant.Dishes,
			"updatedAt":  time.Now().UTC(),
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

// Delete removes a restaurant by ID.
func (r *mongoRestaurantRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Cuisines returns the distinct non-empty cuisines across restaurants.
func (r *mongoRestaurantRepository) Cuisines(ctx context.Context) ([]string, error) {
	return r.distinctStrings(ctx, "cuisine")
}

// Suburbs returns the distinct non-empty suburbs across restaurants.
func (r *mongoRestaurantRepository) Suburbs(ctx context.Context) ([]string, error) {
	return r.distinctStrings(ctx, "suburb")
}

func (r *mongoRestaurantRepository) distinctStrings(ctx context.Context, field string) ([]string, error) {
	values, err := r.collection.Distinct(ctx, field, bson.M{field: bson.M{"$nin": bson.A{nil, ""}}})
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out, nil
}

// EnsureRestaurantIndexes creates necessary indexes. Call during startup.
func EnsureRestaurantIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "isFavorite", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "suburb", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "cuisine", Value: 1}},
			Options: options.Index().SetSparse(true),
		},
		{
			Keys:    bson.D{{Key: "mealTypes", Value: 1}},
			Options: options.Index(),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		// log.Printf("WARN: Failed to create indexes for %s: %v", collection.Name(), err)
	}
}
