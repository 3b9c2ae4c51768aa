package service

import (
	"context"
	"testing"

	"plateful/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newRecommendationFixture() (*fakeRecipeRepo, *fakeUsageRepo, *fakeMealPlanRepo, RecommendationService) {
	recipeRepo := &fakeRecipeRepo{}
	usageRepo := &fakeUsageRepo{}
	planRepo := &fakeMealPlanRepo{}
	svc := NewRecommendationService(recipeRepo, usageRepo, planRepo)
	return recipeRepo, usageRepo, planRepo, svc
}

func recordUsageN(usageRepo *fakeUsageRepo, recipeID primitive.ObjectID, n int) {
	for i := 0; i < n; i++ {
		_, _ = usageRepo.Insert(context.Background(), &domain.UsageRecord{RecipeID: recipeID})
	}
}

func rankedIDs(ranked []RankedRecipe) []primitive.ObjectID {
	ids := make([]primitive.ObjectID, len(ranked))
	for i, r := range ranked {
		ids[i] = r.Recipe.ID
	}
	return ids
}

func TestTopMadeEmptyCatalog(t *testing.T) {
	_, _, _, svc := newRecommendationFixture()

	got, err := svc.GetTopMadeRecipes(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty result for empty catalog, got %d entries", len(got))
	}
}

func TestTopMadeRanksByUsage(t *testing.T) {
	recipeRepo, usageRepo, _, svc := newRecommendationFixture()

	a := addRecipe(recipeRepo, "alpha")
	b := addRecipe(recipeRepo, "beta")
	c := addRecipe(recipeRepo, "gamma")

	recordUsageN(usageRepo, a, 2)
	recordUsageN(usageRepo, b, 1)
	// c never made

	got, err := svc.GetTopMadeRecipes(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 recipes, got %d", len(got))
	}

	if got[0].Recipe.ID != a || got[0].UsageCount != 2 {
		t.Errorf("expected alpha (count 2) first, got %s (count %d)", got[0].Recipe.Name, got[0].UsageCount)
	}
	if got[1].Recipe.ID != b || got[1].UsageCount != 1 {
		t.Errorf("expected beta (count 1) second, got %s (count %d)", got[1].Recipe.Name, got[1].UsageCount)
	}
	// Never-made recipes trail with count 0, in catalog order.
	if got[2].Recipe.ID != c || got[2].UsageCount != 0 {
		t.Errorf("expected gamma (count 0) last, got %s (count %d)", got[2].Recipe.Name, got[2].UsageCount)
	}
}

func TestTopMadeTiesKeepCatalogOrder(t *testing.T) {
	recipeRepo, _, _, svc := newRecommendationFixture()

	a := addRecipe(recipeRepo, "first")
	b := addRecipe(recipeRepo, "second")
	c := addRecipe(recipeRepo, "third")

	got, err := svc.GetTopMadeRecipes(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []primitive.ObjectID{a, b, c}
	for i, id := range rankedIDs(got) {
		if id != want[i] {
			t.Fatalf("tie order broken at %d: got %v, want %v", i, rankedIDs(got), want)
		}
	}
}

func TestTopMadeRotationByPlanCount(t *testing.T) {
	recipeRepo, usageRepo, planRepo, svc := newRecommendationFixture()

	// 7 recipes with strictly decreasing usage, so sorted order is
	// exactly insertion order.
	var ids []primitive.ObjectID
	for i, name := range []string{"r0", "r1", "r2", "r3", "r4", "r5", "r6"} {
		id := addRecipe(recipeRepo, name)
		recordUsageN(usageRepo, id, 7-i)
		ids = append(ids, id)
	}

	// totalPlans = 0: plain first-6 window.
	got, err := svc.GetTopMadeRecipes(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 6 {
		t.Fatalf("expected window of 6, got %d", len(got))
	}
	for i, id := range rankedIDs(got) {
		if id != ids[i] {
			t.Fatalf("totalPlans=0: expected sorted prefix, got rotation at %d", i)
		}
	}

	// totalPlans = 1: rotated left by 6 mod 7 = 6.
	addPlans(planRepo, 1)
	got, err = svc.GetTopMadeRecipes(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantOrder := []primitive.ObjectID{ids[6], ids[0], ids[1], ids[2], ids[3], ids[4]}
	for i, id := range rankedIDs(got) {
		if id != wantOrder[i] {
			t.Fatalf("totalPlans=1: expected %v, got %v", wantOrder, rankedIDs(got))
		}
	}
}

func TestTopMadeRotationPeriodic(t *testing.T) {
	recipeRepo, usageRepo, planRepo, svc := newRecommendationFixture()

	var ids []primitive.ObjectID
	for i, name := range []string{"a", "b", "c", "d", "e"} {
		id := addRecipe(recipeRepo, name)
		recordUsageN(usageRepo, id, 5-i)
		ids = append(ids, id)
	}
	n := len(ids)

	addPlans(planRepo, 3)
	first, err := svc.GetTopMadeRecipes(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Adding exactly N more plans wraps the rotation back around.
	addPlans(planRepo, n)
	second, err := svc.GetTopMadeRecipes(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	firstIDs, secondIDs := rankedIDs(first), rankedIDs(second)
	if len(firstIDs) != len(secondIDs) {
		t.Fatalf("window size changed: %d vs %d", len(firstIDs), len(secondIDs))
	}
	for i := range firstIDs {
		if firstIDs[i] != secondIDs[i] {
			t.Fatalf("rotation not periodic with period %d: %v vs %v", n, firstIDs, secondIDs)
		}
	}
}

func TestRecommendedSidesOnlySides(t *testing.T) {
	recipeRepo, usageRepo, _, svc := newRecommendationFixture()

	main := addRecipe(recipeRepo, "main-dish", domain.MealTypeDinner)
	side1 := addRecipe(recipeRepo, "fries", domain.MealTypeSides)
	side2 := addRecipe(recipeRepo, "slaw", domain.MealTypeSides, domain.MealTypeSavoury)

	recordUsageN(usageRepo, main, 10)
	recordUsageN(usageRepo, side2, 1)

	got, err := svc.GetRecommendedSides(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 sides, got %d", len(got))
	}
	if got[0].Recipe.ID != side2 {
		t.Errorf("expected most-made side first, got %s", got[0].Recipe.Name)
	}
	if got[1].Recipe.ID != side1 {
		t.Errorf("expected never-made side second, got %s", got[1].Recipe.Name)
	}
	for _, r := range got {
		if r.Recipe.ID == main {
			t.Error("non-side recipe leaked into side recommendations")
		}
	}
}

func TestRecommendedSidesWindowIsFour(t *testing.T) {
	recipeRepo, _, _, svc := newRecommendationFixture()

	for _, name := range []string{"s1", "s2", "s3", "s4", "s5", "s6"} {
		addRecipe(recipeRepo, name, domain.MealTypeSides)
	}

	got, err := svc.GetRecommendedSides(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 4 {
		t.Errorf("expected window of 4 sides, got %d", len(got))
	}
}

func TestRotateWindowSmallCatalog(t *testing.T) {
	recipeRepo, _, planRepo, svc := newRecommendationFixture()

	a := addRecipe(recipeRepo, "only-one")
	addPlans(planRepo, 5) // offset = 30 mod 1 = 0

	got, err := svc.GetTopMadeRecipes(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].Recipe.ID != a {
		t.Errorf("expected the single recipe back, got %v", rankedIDs(got))
	}
}
