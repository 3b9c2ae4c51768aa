package wizard

import (
	"errors"

	"plateful/internal/domain"
)

// Step identifies one screen of the wizard.
type Step string

const (
	StepDays    Step = "days"
	StepRecipes Step = "recipes"
	StepSides   Step = "sides"
	StepReview  Step = "review"
)

// Steps is the fixed linear order of the wizard. No branching, no
// skipping; review is terminal (creating the plan is an action, not a
// transition).
var Steps = []Step{StepDays, StepRecipes, StepSides, StepReview}

// Step gate errors, surfaced to the user when Next is refused.
var (
	ErrUnknownStep       = errors.New("unknown wizard step")
	ErrStartDateRequired = errors.New("a start date is required")
	ErrNumDaysRequired   = errors.New("plan must cover at least 1 day")
	ErrNoRecipesSelected = errors.New("select at least one recipe")
	ErrAtFirstStep       = errors.New("already at the first step")
	ErrAtLastStep        = errors.New("already at the review step")
)

// IsValidStep reports whether s names a wizard step.
func IsValidStep(s Step) bool {
	return stepIndex(s) >= 0
}

func stepIndex(s Step) int {
	for i, step := range Steps {
		if step == s {
			return i
		}
	}
	return -1
}

// Validate checks the per-step gate for moving forward from step.
// Sides are optional, so the sides step (and review) always passes.
func Validate(step Step, s State) error {
	switch step {
	case StepDays:
		if s.StartDate == "" {
			return ErrStartDateRequired
		}
		if s.NumDays < domain.MinPlanDays {
			return ErrNumDaysRequired
		}
		return nil
	case StepRecipes:
		if len(s.RecipeIDs) == 0 {
			return ErrNoRecipesSelected
		}
		return nil
	case StepSides, StepReview:
		return nil
	}
	return ErrUnknownStep
}

// Next returns the step after current, gated by Validate. On a gate
// failure the current step is returned unchanged along with the error.
func Next(current Step, s State) (Step, error) {
	idx := stepIndex(current)
	if idx < 0 {
		return current, ErrUnknownStep
	}
	if idx == len(Steps)-1 {
		return current, ErrAtLastStep
	}
	if err := Validate(current, s); err != nil {
		return current, err
	}
	return Steps[idx+1], nil
}

// Back returns the step before current. Backward navigation is never
// gated.
func Back(current Step) (Step, error) {
	idx := stepIndex(current)
	if idx < 0 {
		return current, ErrUnknownStep
	}
	if idx == 0 {
		return current, ErrAtFirstStep
	}
	return Steps[idx-1], nil
}
