package service

import (
	"context"
	"errors"
	"testing"

	"plateful/internal/domain"
	"plateful/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCreateRecipeRequiresLink(t *testing.T) {
	svc := NewRecipeService(&fakeRecipeRepo{})

	_, err := svc.CreateRecipe(context.Background(), RecipeInput{Name: "no link"})
	if !errors.Is(err, ErrValidationFailed) {
		t.Errorf("expected ErrValidationFailed, got %v", err)
	}
}

func TestCreateRecipeRejectsUnknownMealType(t *testing.T) {
	svc := NewRecipeService(&fakeRecipeRepo{})

	_, err := svc.CreateRecipe(context.Background(), RecipeInput{
		Link:      "https://example.com/r",
		MealTypes: []domain.MealType{"brunch"},
	})
	if !errors.Is(err, ErrValidationFailed) {
		t.Errorf("expected ErrValidationFailed, got %v", err)
	}
}

func TestCreateRecipeLinkOnly(t *testing.T) {
	repo := &fakeRecipeRepo{}
	svc := NewRecipeService(repo)

	// A bare link is a valid recipe; everything else is optional.
	recipe, err := svc.CreateRecipe(context.Background(), RecipeInput{Link: "https://example.com/r"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if recipe.ID.IsZero() {
		t.Error("expected an id assigned on create")
	}
	if recipe.CreatedAt.IsZero() {
		t.Error("expected createdAt populated")
	}
}

func TestToggleFavorite(t *testing.T) {
	repo := &fakeRecipeRepo{}
	svc := NewRecipeService(repo)
	id := addRecipe(repo, "pancakes", domain.MealTypeBreakfast)

	recipe, err := svc.ToggleFavorite(context.Background(), id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !recipe.IsFavorite {
		t.Error("expected favorite after first toggle")
	}

	recipe, err = svc.ToggleFavorite(context.Background(), id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if recipe.IsFavorite {
		t.Error("expected not favorite after second toggle")
	}
}

func TestGetRecipeNotFound(t *testing.T) {
	svc := NewRecipeService(&fakeRecipeRepo{})

	if _, err := svc.GetRecipeByID(context.Background(), primitive.NewObjectID()); !errors.Is(err, ErrRecipeNotFound) {
		t.Errorf("expected ErrRecipeNotFound, got %v", err)
	}
}

func TestListRecipesRejectsUnknownMealTypeFilter(t *testing.T) {
	svc := NewRecipeService(&fakeRecipeRepo{})

	_, err := svc.ListRecipes(context.Background(), repository.RecipeFilter{MealType: "elevenses"})
	if !errors.Is(err, ErrValidationFailed) {
		t.Errorf("expected ErrValidationFailed, got %v", err)
	}
}
