// internal/domain/meal_plan.go
package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PlanStatus type for the meal plan lifecycle
type PlanStatus string

const (
	PlanStatusDraft     PlanStatus = "draft"
	PlanStatusActive    PlanStatus = "active"
	PlanStatusCompleted PlanStatus = "completed"
)

// IsValidPlanStatus reports whether s is a known plan status.
func IsValidPlanStatus(s PlanStatus) bool {
	switch s {
	case PlanStatusDraft, PlanStatusActive, PlanStatusCompleted:
		return true
	}
	return false
}

// Plan length bounds. The wizard clamps to these and the assembler
// re-validates them.
const (
	MinPlanDays = 1
	MaxPlanDays = 14
)

// PlanEntry links a recipe into a meal plan. AssignedDay is a 1-indexed
// day of the plan, nil while unassigned. Order of entries in a plan
// carries no meaning; mains and sides are recovered by filtering IsSide.
type PlanEntry struct {
	RecipeID    primitive.ObjectID `bson:"recipeId" json:"recipeId"`
	AssignedDay *int               `bson:"assignedDay,omitempty" json:"assignedDay,omitempty"`
	IsSide      bool               `bson:"isSide" json:"isSide"`
}

// MealPlan represents a multi-day plan of recipes.
// Dates are calendar dates stored as "2006-01-02" strings;
// EndDate is always StartDate + NumDays - 1.
type MealPlan struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	StartDate string             `bson:"startDate" json:"startDate"`
	EndDate   string             `bson:"endDate" json:"endDate"`
	NumDays   int                `bson:"numDays" json:"numDays"`
	Entries   []PlanEntry        `bson:"entries" json:"entries"`
	Status    PlanStatus         `bson:"status" json:"status"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Mains returns the entries that are not sides.
func (p *MealPlan) Mains() []PlanEntry {
	return p.filterEntries(false)
}

// Sides returns the side-dish entries.
func (p *MealPlan) Sides() []PlanEntry {
	return p.filterEntries(true)
}

func (p *MealPlan) filterEntries(isSide bool) []PlanEntry {
	var out []PlanEntry
	for _, e := range p.Entries {
		if e.IsSide == isSide {
			out = append(out, e)
		}
	}
	return out
}

// FindEntry returns the first entry for recipeID, or nil if none matches.
func (p *MealPlan) FindEntry(recipeID primitive.ObjectID) *PlanEntry {
	for i := range p.Entries {
		if p.Entries[i].RecipeID == recipeID {
			return &p.Entries[i]
		}
	}
	return nil
}
