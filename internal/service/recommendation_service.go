package service

import (
	"context"
	"sort"

	"plateful/internal/domain"
	"plateful/internal/repository"
)

// Recommendation window sizes. The rotation offset is scaled by the
// same number, so each newly created plan shifts the window by one full
// window width.
const (
	topMadeWindow = 6
	sidesWindow   = 4
)

// RankedRecipe is a recipe annotated with its historical usage count.
type RankedRecipe struct {
	Recipe     domain.Recipe
	UsageCount int64
}

// RecommendationService surfaces rotating "most made" slices of the
// catalog. It only reads; every call recomputes from the latest ledger
// and plan count, so there is no rotation cursor to invalidate.
type RecommendationService interface {
	// GetTopMadeRecipes returns up to 6 recipes ranked by usage count,
	// rotated by the total number of stored plans.
	GetTopMadeRecipes(ctx context.Context) ([]RankedRecipe, error)
	// GetRecommendedSides is the same ranking restricted to recipes
	// tagged "sides", with a window of 4.
	GetRecommendedSides(ctx context.Context) ([]RankedRecipe, error)
}

type recommendationService struct {
	recipeRepo   repository.RecipeRepository
	usageRepo    repository.UsageRepository
	mealPlanRepo repository.MealPlanRepository
}

// NewRecommendationService creates a new instance of recommendationService.
func NewRecommendationService(
	recipeRepo repository.RecipeRepository,
	usageRepo repository.UsageRepository,
	mealPlanRepo repository.MealPlanRepository,
) RecommendationService {
	return &recommendationService{
		recipeRepo:   recipeRepo,
		usageRepo:    usageRepo,
		mealPlanRepo: mealPlanRepo,
	}
}

func (s *recommendationService) GetTopMadeRecipes(ctx context.Context) ([]RankedRecipe, error) {
	recipes, err := s.recipeRepo.List(ctx, repository.RecipeFilter{})
	if err != nil {
		return nil, err
	}
	return s.recommend(ctx, recipes, topMadeWindow)
}

func (s *recommendationService) GetRecommendedSides(ctx context.Context) ([]RankedRecipe, error) {
	sides, err := s.recipeRepo.ListByMealType(ctx, domain.MealTypeSides)
	if err != nil {
		return nil, err
	}
	return s.recommend(ctx, sides, sidesWindow)
}

// recommend ranks the given catalog slice by usage count and returns a
// rotated window over it.
func (s *recommendationService) recommend(ctx context.Context, recipes []domain.Recipe, window int) ([]RankedRecipe, error) {
	counts, err := s.usageRepo.CountAll(ctx)
	if err != nil {
		return nil, err
	}

	ranked := make([]RankedRecipe, len(recipes))
	for i, r := range recipes {
		ranked[i] = RankedRecipe{Recipe: r, UsageCount: counts[r.ID]}
	}

	// Stable sort keeps catalog order among equal counts, so never-made
	// recipes trail the made ones in their original order.
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].UsageCount > ranked[j].UsageCount
	})

	totalPlans, err := s.mealPlanRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	return rotateWindow(ranked, totalPlans, window), nil
}

// rotateWindow rotates ranked left by (totalPlans * window) mod len and
// returns the first window entries. Pure function of its inputs: the
// rotation has no stored cursor, so concurrent readers always agree
// with the latest plan count. A window over an empty or short catalog
// just returns what exists.
func rotateWindow(ranked []RankedRecipe, totalPlans int64, window int) []RankedRecipe {
	n := len(ranked)
	if n == 0 {
		return []RankedRecipe{}
	}

	offset := int(totalPlans*int64(window)) % n
	if offset < 0 {
		offset += n
	}

	rotated := make([]RankedRecipe, 0, n)
	rotated = append(rotated, ranked[offset:]...)
	rotated = append(rotated, ranked[:offset]...)

	if window > n {
		window = n
	}
	return rotated[:window]
}
