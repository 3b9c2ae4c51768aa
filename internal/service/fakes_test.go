package service

import (
	"context"
	"strings"
	"time"

	"plateful/internal/domain"
	"plateful/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory repository fakes for service tests. Listing order matches
// insertion order, mirroring the Mongo repos' createdAt ascending sort.

type fakeRecipeRepo struct {
	recipes []domain.Recipe
}

func (f *fakeRecipeRepo) Create(_ context.Context, recipe *domain.Recipe) (primitive.ObjectID, error) {
	recipe.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	recipe.CreatedAt = now
	recipe.UpdatedAt = now
	f.recipes = append(f.recipes, *recipe)
	return recipe.ID, nil
}

func (f *fakeRecipeRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Recipe, error) {
	for i := range f.recipes {
		if f.recipes[i].ID == id {
			r := f.recipes[i]
			return &r, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeRecipeRepo) List(_ context.Context, filter repository.RecipeFilter) ([]domain.Recipe, error) {
	var out []domain.Recipe
	for _, r := range f.recipes {
		if filter.Cuisine != "" && r.Cuisine != filter.Cuisine {
			continue
		}
		if filter.MealType != "" && !r.HasMealType(filter.MealType) {
			continue
		}
		if filter.Favorite != nil && r.IsFavorite != *filter.Favorite {
			continue
		}
		if filter.NameSearch != "" && !strings.Contains(strings.ToLower(r.Name), strings.ToLower(filter.NameSearch)) {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeRecipeRepo) ListByMealType(ctx context.Context, mealType domain.MealType) ([]domain.Recipe, error) {
	return f.List(ctx, repository.RecipeFilter{MealType: mealType})
}

func (f *fakeRecipeRepo) Update(_ context.Context, recipe *domain.Recipe) error {
	for i := range f.recipes {
		if f.recipes[i].ID == recipe.ID {
			f.recipes[i] = *recipe
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeRecipeRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	for i := range f.recipes {
		if f.recipes[i].ID == id {
			f.recipes = append(f.recipes[:i], f.recipes[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeRecipeRepo) Cuisines(_ context.Context) ([]string, error) {
	seen := map[string]bool{}
	var out []string
	for _, r := range f.recipes {
		if r.Cuisine != "" && !seen[r.Cuisine] {
			seen[r.Cuisine] = true
			out = append(out, r.Cuisine)
		}
	}
	return out, nil
}

type fakeMealPlanRepo struct {
	plans []domain.MealPlan
}

func (f *fakeMealPlanRepo) Create(_ context.Context, plan *domain.MealPlan) (primitive.ObjectID, error) {
	plan.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	plan.CreatedAt = now
	plan.UpdatedAt = now
	f.plans = append(f.plans, *plan)
	return plan.ID, nil
}

func (f *fakeMealPlanRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.MealPlan, error) {
	for i := range f.plans {
		if f.plans[i].ID == id {
			p := f.plans[i]
			return &p, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeMealPlanRepo) List(_ context.Context, status *domain.PlanStatus) ([]domain.MealPlan, error) {
	var out []domain.MealPlan
	for _, p := range f.plans {
		if status != nil && p.Status != *status {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeMealPlanRepo) Update(_ context.Context, plan *domain.MealPlan) error {
	for i := range f.plans {
		if f.plans[i].ID == plan.ID {
			f.plans[i] = *plan
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeMealPlanRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	for i := range f.plans {
		if f.plans[i].ID == id {
			f.plans = append(f.plans[:i], f.plans[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeMealPlanRepo) Count(_ context.Context) (int64, error) {
	return int64(len(f.plans)), nil
}

type fakeUsageRepo struct {
	records []domain.UsageRecord
}

func (f *fakeUsageRepo) Insert(_ context.Context, record *domain.UsageRecord) (primitive.ObjectID, error) {
	record.ID = primitive.NewObjectID()
	if record.MadeAt.IsZero() {
		record.MadeAt = time.Now().UTC()
	}
	f.records = append(f.records, *record)
	return record.ID, nil
}

func (f *fakeUsageRepo) ListByRecipe(_ context.Context, recipeID primitive.ObjectID) ([]domain.UsageRecord, error) {
	var out []domain.UsageRecord
	for _, r := range f.records {
		if r.RecipeID == recipeID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeUsageRepo) CountByRecipe(_ context.Context, recipeID primitive.ObjectID) (int64, error) {
	var n int64
	for _, r := range f.records {
		if r.RecipeID == recipeID {
			n++
		}
	}
	return n, nil
}

func (f *fakeUsageRepo) CountAll(_ context.Context) (map[primitive.ObjectID]int64, error) {
	counts := make(map[primitive.ObjectID]int64)
	for _, r := range f.records {
		counts[r.RecipeID]++
	}
	return counts, nil
}

// addRecipe seeds the fake catalog and returns the new recipe's id.
func addRecipe(repo *fakeRecipeRepo, name string, mealTypes ...domain.MealType) primitive.ObjectID {
	recipe := &domain.Recipe{
		Link:      "https://example.com/" + name,
		Name:      name,
		MealTypes: mealTypes,
	}
	id, _ := repo.Create(context.Background(), recipe)
	return id
}

// addPlans inserts n empty plans so the rotation offset moves.
func addPlans(repo *fakeMealPlanRepo, n int) {
	for i := 0; i < n; i++ {
		_, _ = repo.Create(context.Background(), &domain.MealPlan{
			StartDate: "2024-06-01",
			EndDate:   "2024-06-07",
			NumDays:   7,
			Status:    domain.PlanStatusActive,
		})
	}
}
