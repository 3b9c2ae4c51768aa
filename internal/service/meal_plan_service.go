package service

import (
	"context"
	"errors"
	"fmt"

	"plateful/internal/domain"
	"plateful/internal/repository"
	"plateful/internal/wizard"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrPlanNotFound      = errors.New("meal plan not found")
	ErrPlanEntryNotFound = errors.New("recipe is not part of this meal plan")
	ErrPlanValidation    = errors.New("meal plan validation failed")
)

// PlanEntryDetail is a plan entry joined with its recipe. Recipe is nil
// when the referenced recipe has been deleted since the plan was made;
// stale references are tolerated and rendered as "not found" by the UI.
type PlanEntryDetail struct {
	Entry  domain.PlanEntry
	Recipe *domain.Recipe
}

// PlanWithDetails is a plan plus the joined recipe details for each entry.
type PlanWithDetails struct {
	Plan    domain.MealPlan
	Entries []PlanEntryDetail
}

// MealPlanService assembles new plans from completed wizard drafts and
// mutates persisted plans (day assignment, status, mark-as-made).
type MealPlanService interface {
	// CreatePlan validates the draft, expands its selections into plan
	// entries (mains then sides, no day pre-assigned) and persists the
	// plan as active. No usage is recorded at creation time.
	CreatePlan(ctx context.Context, draft wizard.State) (*domain.MealPlan, error)

	GetPlan(ctx context.Context, planID primitive.ObjectID) (*domain.MealPlan, error)
	GetPlanWithDetails(ctx context.Context, planID primitive.ObjectID) (*PlanWithDetails, error)
	ListPlans(ctx context.Context, status *domain.PlanStatus) ([]domain.MealPlan, error)
	CountPlans(ctx context.Context) (int64, error)

	// AssignDay sets (or clears, when day is nil) the assigned day of
	// the entry matching recipeID. A non-nil day must be within
	// [1, plan.NumDays].
	AssignDay(ctx context.Context, planID, recipeID primitive.ObjectID, day *int) (*domain.MealPlan, error)
	// MarkAsMade records a usage event for the recipe against this
	// plan. The plan itself is not modified; calling it repeatedly for
	// the same recipe records independent events.
	MarkAsMade(ctx context.Context, planID, recipeID primitive.ObjectID) (*domain.UsageRecord, error)
	SetStatus(ctx context.Context, planID primitive.ObjectID, status domain.PlanStatus) (*domain.MealPlan, error)
	UpdateEntries(ctx context.Context, planID primitive.ObjectID, entries []domain.PlanEntry) (*domain.MealPlan, error)
	// DeletePlan removes the plan. Usage records referencing it are
	// kept, so recommendation quality does not regress when old plans
	// are cleaned up.
	DeletePlan(ctx context.Context, planID primitive.ObjectID) error
}

type mealPlanService struct {
	mealPlanRepo repository.MealPlanRepository
	recipeRepo   repository.RecipeRepository
	usageService UsageService
}

// NewMealPlanService creates a new instance of mealPlanService.
func NewMealPlanService(
	mealPlanRepo repository.MealPlanRepository,
	recipeRepo repository.RecipeRepository,
	usageService UsageService,
) MealPlanService {
	return &mealPlanService{
		mealPlanRepo: mealPlanRepo,
		recipeRepo:   recipeRepo,
		usageService: usageService,
	}
}

// CreatePlan re-validates the draft even though the wizard gates each
// step; the service is the authoritative gate against direct or
// malformed calls.
func (s *mealPlanService) CreatePlan(ctx context.Context, draft wizard.State) (*domain.MealPlan, error) {
	if draft.StartDate == "" {
		return nil, fmt.Errorf("%w: start date is required", ErrPlanValidation)
	}
	if draft.NumDays < domain.MinPlanDays || draft.NumDays > domain.MaxPlanDays {
		return nil, fmt.Errorf("%w: number of days must be between %d and %d",
			ErrPlanValidation, domain.MinPlanDays, domain.MaxPlanDays)
	}

	endDate, err := wizard.EndDate(draft.StartDate, draft.NumDays)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPlanValidation, err)
	}

	entries := make([]domain.PlanEntry, 0, len(draft.RecipeIDs)+len(draft.SideIDs))
	for _, idHex := range draft.SortedRecipeIDs() {
		recipeID, err := primitive.ObjectIDFromHex(idHex)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid recipe id %q", ErrPlanValidation, idHex)
		}
		entries = append(entries, domain.PlanEntry{RecipeID: recipeID, IsSide: false})
	}
	for _, idHex := range draft.SortedSideIDs() {
		recipeID, err := primitive.ObjectIDFromHex(idHex)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid side id %q", ErrPlanValidation, idHex)
		}
		entries = append(entries, domain.PlanEntry{RecipeID: recipeID, IsSide: true})
	}

	// Entries must reference existing recipes at creation time.
	for _, e := range entries {
		if _, err := s.recipeRepo.GetByID(ctx, e.RecipeID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrRecipeNotFound
			}
			return nil, err
		}
	}

	plan := &domain.MealPlan{
		StartDate: draft.StartDate,
		EndDate:   endDate,
		NumDays:   draft.NumDays,
		Entries:   entries,
		Status:    domain.PlanStatusActive,
	}

	planID, err := s.mealPlanRepo.Create(ctx, plan)
	if err != nil {
		return nil, err
	}
	plan.ID = planID
	return s.getPlan(ctx, planID)
}

func (s *mealPlanService) GetPlan(ctx context.Context, planID primitive.ObjectID) (*domain.MealPlan, error) {
	return s.getPlan(ctx, planID)
}

func (s *mealPlanService) getPlan(ctx context.Context, planID primitive.ObjectID) (*domain.MealPlan, error) {
	plan, err := s.mealPlanRepo.GetByID(ctx, planID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	return plan, nil
}

// GetPlanWithDetails joins each entry with its recipe. Deleted recipes
// produce a nil Recipe rather than an error.
func (s *mealPlanService) GetPlanWithDetails(ctx context.Context, planID primitive.ObjectID) (*PlanWithDetails, error) {
	plan, err := s.getPlan(ctx, planID)
	if err != nil {
		return nil, err
	}

	details := make([]PlanEntryDetail, 0, len(plan.Entries))
	for _, entry := range plan.Entries {
		recipe, err := s.recipeRepo.GetByID(ctx, entry.RecipeID)
		if err != nil {
			if !errors.Is(err, repository.ErrNotFound) {
				return nil, err
			}
			recipe = nil
		}
		details = append(details, PlanEntryDetail{Entry: entry, Recipe: recipe})
	}

	return &PlanWithDetails{Plan: *plan, Entries: details}, nil
}

func (s *mealPlanService) ListPlans(ctx context.Context, status *domain.PlanStatus) ([]domain.MealPlan, error) {
	return s.mealPlanRepo.List(ctx, status)
}

func (s *mealPlanService) CountPlans(ctx context.Context) (int64, error) {
	return s.mealPlanRepo.Count(ctx)
}

// AssignDay replaces the matching entry's assigned day. Out-of-range
// days are rejected here even though the UI only offers valid options;
// the API can be called directly.
func (s *mealPlanService) AssignDay(ctx context.Context, planID, recipeID primitive.ObjectID, day *int) (*domain.MealPlan, error) {
	plan, err := s.getPlan(ctx, planID)
	if err != nil {
		return nil, err
	}

	if day != nil && (*day < 1 || *day > plan.NumDays) {
		return nil, fmt.Errorf("%w: day %d is outside 1..%d", ErrPlanValidation, *day, plan.NumDays)
	}

	entry := plan.FindEntry(recipeID)
	if entry == nil {
		return nil, ErrPlanEntryNotFound
	}
	entry.AssignedDay = day

	if err := s.mealPlanRepo.Update(ctx, plan); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	return plan, nil
}

func (s *mealPlanService) MarkAsMade(ctx context.Context, planID, recipeID primitive.ObjectID) (*domain.UsageRecord, error) {
	plan, err := s.getPlan(ctx, planID)
	if err != nil {
		return nil, err
	}
	return s.usageService.RecordUsage(ctx, recipeID, &plan.ID)
}

// SetStatus applies any status to any plan. No transition table is
// enforced; the UI never offers invalid transitions.
func (s *mealPlanService) SetStatus(ctx context.Context, planID primitive.ObjectID, status domain.PlanStatus) (*domain.MealPlan, error) {
	if !domain.IsValidPlanStatus(status) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrPlanValidation, status)
	}

	plan, err := s.getPlan(ctx, planID)
	if err != nil {
		return nil, err
	}
	plan.Status = status

	if err := s.mealPlanRepo.Update(ctx, plan); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	return plan, nil
}

// UpdateEntries replaces the whole entries list. Last writer wins;
// plan editing is single-user and low-contention.
func (s *mealPlanService) UpdateEntries(ctx context.Context, planID primitive.ObjectID, entries []domain.PlanEntry) (*domain.MealPlan, error) {
	plan, err := s.getPlan(ctx, planID)
	if err != nil {
		return nil, err
	}

	for _, e := range entries {
		if e.AssignedDay != nil && (*e.AssignedDay < 1 || *e.AssignedDay > plan.NumDays) {
			return nil, fmt.Errorf("%w: day %d is outside 1..%d", ErrPlanValidation, *e.AssignedDay, plan.NumDays)
		}
	}

	if entries == nil {
		entries = []domain.PlanEntry{}
	}
	plan.Entries = entries

	if err := s.mealPlanRepo.Update(ctx, plan); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	return plan, nil
}

func (s *mealPlanService) DeletePlan(ctx context.Context, planID primitive.ObjectID) error {
	err := s.mealPlanRepo.Delete(ctx, planID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPlanNotFound
		}
		return err
	}
	return nil
}
