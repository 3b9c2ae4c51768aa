package service

import (
	"context"
	"errors"
	"fmt"

	"plateful/internal/domain"
	"plateful/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrValidationFailed = errors.New("validation failed")
)

// RecipeInput carries the caller-supplied fields for creating or
// updating a recipe.
type RecipeInput struct {
	Link        string
	Name        string
	Cuisine     string
	IsFavorite  bool
	Ingredients []string
	MealTypes   []domain.MealType
	Notes       string
	Description string
	ImageURL    string
}

// RecipeService handles catalog CRUD for recipes.
type RecipeService interface {
	CreateRecipe(ctx context.Context, input RecipeInput) (*domain.Recipe, error)
	GetRecipeByID(ctx context.Context, recipeID primitive.ObjectID) (*domain.Recipe, error)
	ListRecipes(ctx context.Context, filter repository.RecipeFilter) ([]domain.Recipe, error)
	UpdateRecipe(ctx context.Context, recipeID primitive.ObjectID, input RecipeInput) (*domain.Recipe, error)
	ToggleFavorite(ctx context.Context, recipeID primitive.ObjectID) (*domain.Recipe, error)
	DeleteRecipe(ctx context.Context, recipeID primitive.ObjectID) error
	GetCuisines(ctx context.Context) ([]string, error)
}

type recipeService struct {
	recipeRepo repository.RecipeRepository
}

// NewRecipeService creates a new instance of recipeService.
func NewRecipeService(recipeRepo repository.RecipeRepository) RecipeService {
	return &recipeService{recipeRepo: recipeRepo}
}

func validateRecipeInput(input RecipeInput) error {
	if input.Link == "" {
		return fmt.Errorf("%w: link is required", ErrValidationFailed)
	}
	for _, mt := range input.MealTypes {
		if !domain.IsValidMealType(mt) {
			return fmt.Errorf("%w: unknown meal type %q", ErrValidationFailed, mt)
		}
	}
	return nil
}

func (s *recipeService) CreateRecipe(ctx context.Context, input RecipeInput) (*domain.Recipe, error) {
	if err := validateRecipeInput(input); err != nil {
		return nil, err
	}

	recipe := &domain.Recipe{
		Link:        input.Link,
		Name:        input.Name,
		Cuisine:     input.Cuisine,
		IsFavorite:  input.IsFavorite,
		Ingredients: input.Ingredients,
		MealTypes:   input.MealTypes,
		Notes:       input.Notes,
		Description: input.Description,
		ImageURL:    input.ImageURL,
	}

	recipeID, err := s.recipeRepo.Create(ctx, recipe)
	if err != nil {
		return nil, err
	}
	// Fetch again so DB-populated timestamps come back with the result.
	return s.recipeRepo.GetByID(ctx, recipeID)
}

func (s *recipeService) GetRecipeByID(ctx context.Context, recipeID primitive.ObjectID) (*domain.Recipe, error) {
	recipe, err := s.recipeRepo.GetByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}
	return recipe, nil
}

func (s *recipeService) ListRecipes(ctx context.Context, filter repository.RecipeFilter) ([]domain.Recipe, error) {
	if filter.MealType != "" && !domain.IsValidMealType(filter.MealType) {
		return nil, fmt.Errorf("%w: unknown meal type %q", ErrValidationFailed, filter.MealType)
	}
	return s.recipeRepo.List(ctx, filter)
}

func (s *recipeService) UpdateRecipe(ctx context.Context, recipeID primitive.ObjectID, input RecipeInput) (*domain.Recipe, error) {
	if err := validateRecipeInput(input); err != nil {
		return nil, err
	}

	existing, err := s.recipeRepo.GetByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}

	existing.Link = input.Link
	existing.Name = input.Name
	existing.Cuisine = input.Cuisine
	existing.IsFavorite = input.IsFavorite
	existing.Ingredients = input.Ingredients
	existing.MealTypes = input.MealTypes
	existing.Notes = input.Notes
	existing.Description = input.Description
	existing.ImageURL = input.ImageURL

	if err := s.recipeRepo.Update(ctx, existing); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}
	return existing, nil
}

func (s *recipeService) ToggleFavorite(ctx context.Context, recipeID primitive.ObjectID) (*domain.Recipe, error) {
	existing, err := s.recipeRepo.GetByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}

	existing.IsFavorite = !existing.IsFavorite

	if err := s.recipeRepo.Update(ctx, existing); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}
	return existing, nil
}

// DeleteRecipe removes the recipe. Meal plan entries and usage records
// referencing it are left alone; readers tolerate the stale reference.
func (s *recipeService) DeleteRecipe(ctx context.Context, recipeID primitive.ObjectID) error {
	err := s.recipeRepo.Delete(ctx, recipeID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrRecipeNotFound
		}
		return err
	}
	return nil
}

func (s *recipeService) GetCuisines(ctx context.Context) ([]string, error) {
	return s.recipeRepo.Cuisines(ctx)
}
