package service

import (
	"context"
	"errors"
	"fmt"

	"plateful/internal/domain"
	"plateful/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrRestaurantNotFound = errors.New("restaurant not found")
)

// RestaurantInput carries the caller-supplied fields for creating or
// updating a restaurant.
type RestaurantInput struct {
	Link       string
	Name       string
	Suburb     string
	Cuisine    string
	MealTypes  []domain.MealType
	IsFavorite bool
	Dishes     []domain.Dish
}

// RestaurantService handles catalog CRUD for restaurants.
type RestaurantService interface {
	CreateRestaurant(ctx context.Context, input RestaurantInput) (*domain.Restaurant, error)
	GetRestaurantByID(ctx context.Context, id primitive.ObjectID) (*domain.Restaurant, error)
	ListRestaurants(ctx context.Context, filter repository.RestaurantFilter) ([]domain.Restaurant, error)
	UpdateRestaurant(ctx context.Context, id primitive.ObjectID, input RestaurantInput) (*domain.Restaurant, error)
	ToggleFavorite(ctx context.Context, id primitive.ObjectID) (*domain.Restaurant, error)
	DeleteRestaurant(ctx context.Context, id primitive.ObjectID) error
	GetCuisines(ctx context.Context) ([]string, error)
	GetSuburbs(ctx context.Context) ([]string, error)
}

type restaurantService struct {
	restaurantRepo repository.RestaurantRepository
}

// NewRestaurantService creates a new instance of restaurantService.
func NewRestaurantService(restaurantRepo repository.RestaurantRepository) RestaurantService {
	return &restaurantService{restaurantRepo: restaurantRepo}
}

func validateRestaurantInput(input RestaurantInput) error {
	if input.Link == "" {
		return fmt.Errorf("%w: link is required", ErrValidationFailed)
	}
	if input.Suburb == "" {
		return fmt.Errorf("%w: suburb is required", ErrValidationFailed)
	}
	for _, mt := range input.MealTypes {
		if !domain.IsValidMealType(mt) {
			return fmt.Errorf("%w: unknown meal type %q", ErrValidationFailed, mt)
		}
	}
	for _, d := range input.Dishes {
		if d.Name == "" {
			return fmt.Errorf("%w: dish name is required", ErrValidationFailed)
		}
		if d.Rating != nil && (*d.Rating < 1 || *d.Rating > 5) {
			return fmt.Errorf("%w: dish rating must be 1-5", ErrValidationFailed)
		}
	}
	return nil
}

func (s *restaurantService) CreateRestaurant(ctx context.Context, input RestaurantInput) (*domain.Restaurant, error) {
	if err := validateRestaurantInput(input); err != nil {
		return nil, err
	}

	restaurant := &domain.Restaurant{
		Link:       input.Link,
		Name:       input.Name,
		Suburb:     input.Suburb,
		Cuisine:    input.Cuisine,
		MealTypes:  input.MealTypes,
		IsFavorite: input.IsFavorite,
		Dishes:     input.Dishes,
	}

	id, err := s.restaurantRepo.Create(ctx, restaurant)
	if err != nil {
		return nil, err
	}
	return s.restaurantRepo.GetByID(ctx, id)
}

func (s *restaurantService) GetRestaurantByID(ctx context.Context, id primitive.ObjectID) (*domain.Restaurant, error) {
	restaurant, err := s.restaurantRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRestaurantNotFound
		}
		return nil, err
	}
	return restaurant, nil
}

func (s *restaurantService) ListRestaurants(ctx context.Context, filter repository.RestaurantFilter) ([]domain.Restaurant, error) {
	if filter.MealType != "" && !domain.IsValidMealType(filter.MealType) {
		return nil, fmt.Errorf("%w: unknown meal type %q", ErrValidationFailed, filter.MealType)
	}
	return s.restaurantRepo.List(ctx, filter)
}

func (s *restaurantService) UpdateRestaurant(ctx context.Context, id primitive.ObjectID, input RestaurantInput) (*domain.Restaurant, error) {
	if err := validateRestaurantInput(input); err != nil {
		return nil, err
	}

	existing, err := s.restaurantRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRestaurantNotFound
		}
		return nil, err
	}

	existing.Link = input.Link
	existing.Name = input.Name
	existing.Suburb = input.Suburb
	existing.Cuisine = input.Cuisine
	existing.MealTypes = input.MealTypes
	existing.IsFavorite = input.IsFavorite
	existing.Dishes = input.Dishes

	if err := s.restaurantRepo.Update(ctx, existing); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRestaurantNotFound
		}
		return nil, err
	}
	return existing, nil
}

func (s *restaurantService) ToggleFavorite(ctx context.Context, id primitive.ObjectID) (*domain.Restaurant, error) {
	existing, err := s.restaurantRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRestaurantNotFound
		}
		return nil, err
	}

	existing.IsFavorite = !existing.IsFavorite

	if err := s.restaurantRepo.Update(ctx, existing); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRestaurantNotFound
		}
		return nil, err
	}
	return existing, nil
}

func (s *restaurantService) DeleteRestaurant(ctx context.Context, id primitive.ObjectID) error {
	err := s.restaurantRepo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrRestaurantNotFound
		}
		return err
	}
	return nil
}

func (s *restaurantService) GetCuisines(ctx context.Context) ([]string, error) {
	return s.restaurantRepo.Cuisines(ctx)
}

func (s *restaurantService) GetSuburbs(ctx context.Context) ([]string, error) {
	return s.restaurantRepo.Suburbs(ctx)
}
