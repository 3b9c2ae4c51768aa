package wizard

import (
	"errors"
	"testing"
)

func validState() State {
	return NewDraft().SetStartDate("2024-06-01").ToggleRecipe("r1")
}

func TestNextWalksAllSteps(t *testing.T) {
	state := validState()

	step := StepDays
	for _, want := range []Step{StepRecipes, StepSides, StepReview} {
		next, err := Next(step, state)
		if err != nil {
			t.Fatalf("Next(%s): unexpected error %v", step, err)
		}
		if next != want {
			t.Fatalf("Next(%s): expected %s, got %s", step, want, next)
		}
		step = next
	}
}

func TestNextBlockedWithoutStartDate(t *testing.T) {
	state := validState().SetStartDate("")

	next, err := Next(StepDays, state)
	if !errors.Is(err, ErrStartDateRequired) {
		t.Errorf("expected ErrStartDateRequired, got %v", err)
	}
	if next != StepDays {
		t.Errorf("step advanced despite failed gate: %s", next)
	}
}

func TestNextBlockedWithEmptySelection(t *testing.T) {
	state := NewDraft().SetStartDate("2024-06-01")

	next, err := Next(StepRecipes, state)
	if !errors.Is(err, ErrNoRecipesSelected) {
		t.Errorf("expected ErrNoRecipesSelected, got %v", err)
	}
	if next != StepRecipes {
		t.Errorf("step advanced despite failed gate: %s", next)
	}

	// The gate opens once a recipe is selected.
	state = state.ToggleRecipe("r1")
	next, err = Next(StepRecipes, state)
	if err != nil {
		t.Fatalf("unexpected error after selecting a recipe: %v", err)
	}
	if next != StepSides {
		t.Errorf("expected sides, got %s", next)
	}
}

func TestSidesAreOptional(t *testing.T) {
	state := validState() // no sides selected

	next, err := Next(StepSides, state)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if next != StepReview {
		t.Errorf("expected review, got %s", next)
	}
}

func TestNoForwardFromReview(t *testing.T) {
	if _, err := Next(StepReview, validState()); !errors.Is(err, ErrAtLastStep) {
		t.Errorf("expected ErrAtLastStep, got %v", err)
	}
}

func TestBackIsNeverGated(t *testing.T) {
	// Back from recipes must succeed even with an empty selection.
	prev, err := Back(StepRecipes)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if prev != StepDays {
		t.Errorf("expected days, got %s", prev)
	}

	if _, err := Back(StepDays); !errors.Is(err, ErrAtFirstStep) {
		t.Errorf("expected ErrAtFirstStep, got %v", err)
	}
}

func TestUnknownStep(t *testing.T) {
	if _, err := Next(Step("nonsense"), validState()); !errors.Is(err, ErrUnknownStep) {
		t.Errorf("expected ErrUnknownStep, got %v", err)
	}
	if _, err := Back(Step("nonsense")); !errors.Is(err, ErrUnknownStep) {
		t.Errorf("expected ErrUnknownStep, got %v", err)
	}
}
