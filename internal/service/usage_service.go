package service

import (
	"context"
	"errors"
	"time"

	"plateful/internal/domain"
	"plateful/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrRecipeNotFound = errors.New("recipe not found")
)

// UsageService is the append-only ledger of "recipe was made" events.
// It is the source of truth for popularity ranking.
type UsageService interface {
	// RecordUsage appends a usage record for the recipe, optionally
	// linked to a plan. Repeat calls for the same recipe are valid;
	// that is how popularity accumulates.
	RecordUsage(ctx context.Context, recipeID primitive.ObjectID, mealPlanID *primitive.ObjectID) (*domain.UsageRecord, error)
	CountByRecipe(ctx context.Context, recipeID primitive.ObjectID) (int64, error)
	CountAll(ctx context.Context) (map[primitive.ObjectID]int64, error)
	HistoryForRecipe(ctx context.Context, recipeID primitive.ObjectID) ([]domain.UsageRecord, error)
}

type usageService struct {
	usageRepo  repository.UsageRepository
	recipeRepo repository.RecipeRepository
}

// NewUsageService creates a new instance of usageService.
func NewUsageService(usageRepo repository.UsageRepository, recipeRepo repository.RecipeRepository) UsageService {
	return &usageService{
		usageRepo:  usageRepo,
		recipeRepo: recipeRepo,
	}
}

// RecordUsage verifies the recipe exists and appends a record with
// madeAt = now. No read-then-write race: the insert is a pure append
// with no uniqueness constraint.
func (s *usageService) RecordUsage(ctx context.Context, recipeID primitive.ObjectID, mealPlanID *primitive.ObjectID) (*domain.UsageRecord, error) {
	if recipeID == primitive.NilObjectID {
		return nil, ErrRecipeNotFound
	}

	if _, err := s.recipeRepo.GetByID(ctx, recipeID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}

	record := &domain.UsageRecord{
		RecipeID:   recipeID,
		MealPlanID: mealPlanID,
		MadeAt:     time.Now().UTC(),
	}

	id, err := s.usageRepo.Insert(ctx, record)
	if err != nil {
		return nil, err
	}
	record.ID = id
	return record, nil
}

// CountByRecipe returns the total historical usage count for one recipe.
func (s *usageService) CountByRecipe(ctx context.Context, recipeID primitive.ObjectID) (int64, error) {
	return s.usageRepo.CountByRecipe(ctx, recipeID)
}

// CountAll returns aggregate counts for every recipe with at least one
// usage record. Callers treat absent recipes as count 0.
func (s *usageService) CountAll(ctx context.Context) (map[primitive.ObjectID]int64, error) {
	return s.usageRepo.CountAll(ctx)
}

// HistoryForRecipe lists the raw usage records for one recipe.
func (s *usageService) HistoryForRecipe(ctx context.Context, recipeID primitive.ObjectID) ([]domain.UsageRecord, error) {
	return s.usageRepo.ListByRecipe(ctx, recipeID)
}
