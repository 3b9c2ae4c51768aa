package api

import (
	"net/http"
	"time"

	"plateful/internal/domain"
	"plateful/internal/service"
	"plateful/internal/wizard"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MealPlanHandler holds the meal plan service dependency.
type MealPlanHandler struct {
	mealPlanService service.MealPlanService
}

// NewMealPlanHandler creates a new MealPlanHandler.
func NewMealPlanHandler(mealPlanService service.MealPlanService) *MealPlanHandler {
	return &MealPlanHandler{mealPlanService: mealPlanService}
}

// --- DTOs for API ---

// CreateMealPlanRequest is the terminal wizard submission: the draft
// fields as the client has been carrying them through the steps.
type CreateMealPlanRequest struct {
	StartDate string `json:"startDate" binding:"required"`
	NumDays   int    `json:"numDays" binding:"required"`
	// Comma-joined recipe id sets, exactly as encoded in the wizard's
	// navigable state.
	RecipeIDs string `json:"recipeIds"`
	SideIDs   string `json:"sideIds"`
}

// PlanEntryResponse is one entry of a plan.
type PlanEntryResponse struct {
	RecipeID    string `json:"recipeId"`
	AssignedDay *int   `json:"assignedDay,omitempty"`
	IsSide      bool   `json:"isSide"`
}

// PlanEntryDetailResponse is an entry joined with its recipe; Recipe is
// null when the recipe has since been deleted.
type PlanEntryDetailResponse struct {
	PlanEntryResponse
	Recipe *RecipeResponse `json:"recipe"`
}

// MealPlanResponse is the DTO for returning meal plan details.
type MealPlanResponse struct {
	ID        string              `json:"id"`
	StartDate string              `json:"startDate"`
	EndDate   string              `json:"endDate"`
	NumDays   int                 `json:"numDays"`
	Status    string              `json:"status"`
	Entries   []PlanEntryResponse `json:"entries"`
	CreatedAt time.Time           `json:"createdAt"`
	UpdatedAt time.Time           `json:"updatedAt"`
}

// MealPlanDetailResponse additionally carries joined recipe details and
// the display form of the plan's date range.
type MealPlanDetailResponse struct {
	MealPlanResponse
	DateRangeDisplay string                    `json:"dateRangeDisplay"`
	EntryDetails     []PlanEntryDetailResponse `json:"entryDetails"`
}

// UpdateMealPlanRequest is a permissive patch: either field may be
// omitted to leave it unchanged.
type UpdateMealPlanRequest struct {
	Status  *string              `json:"status"`
	Entries *[]PlanEntryResponse `json:"entries"`
}

// AssignDayRequest sets or clears an entry's assigned day.
type AssignDayRequest struct {
	RecipeID string `json:"recipeId" binding:"required"`
	Day      *int   `json:"day"`
}

// MarkAsMadeRequest names the recipe being marked as made.
type MarkAsMadeRequest struct {
	RecipeID string `json:"recipeId" binding:"required"`
}

// UsageRecordResponse is the DTO for a recorded usage event.
type UsageRecordResponse struct {
	ID         string    `json:"id"`
	RecipeID   string    `json:"recipeId"`
	MealPlanID string    `json:"mealPlanId,omitempty"`
	MadeAt     time.Time `json:"madeAt"`
}

// MapUsageRecordToResponse converts a domain.UsageRecord to its DTO.
func MapUsageRecordToResponse(r *domain.UsageRecord) UsageRecordResponse {
	resp := UsageRecordResponse{
		ID:       r.ID.Hex(),
		RecipeID: r.RecipeID.Hex(),
		MadeAt:   r.MadeAt,
	}
	if r.MealPlanID != nil {
		resp.MealPlanID = r.MealPlanID.Hex()
	}
	return resp
}

func mapPlanEntry(e domain.PlanEntry) PlanEntryResponse {
	return PlanEntryResponse{
		RecipeID:    e.RecipeID.Hex(),
		AssignedDay: e.AssignedDay,
		IsSide:      e.IsSide,
	}
}

// MapMealPlanToResponse converts a domain.MealPlan to its DTO.
func MapMealPlanToResponse(p *domain.MealPlan) MealPlanResponse {
	if p == nil {
		return MealPlanResponse{}
	}
	entries := make([]PlanEntryResponse, len(p.Entries))
	for i, e := range p.Entries {
		entries[i] = mapPlanEntry(e)
	}
	return MealPlanResponse{
		ID:        p.ID.Hex(),
		StartDate: p.StartDate,
		EndDate:   p.EndDate,
		NumDays:   p.NumDays,
		Status:    string(p.Status),
		Entries:   entries,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// --- Handler Methods ---

// CreateMealPlan handles POST /meal-plans. The body is the completed
// wizard draft; the service re-validates it as the authoritative gate.
func (h *MealPlanHandler) CreateMealPlan(c *gin.Context) {
	var req CreateMealPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	draft := wizard.State{
		NumDays:   req.NumDays,
		StartDate: req.StartDate,
		RecipeIDs: wizard.DecodeIDs(req.RecipeIDs),
		SideIDs:   wizard.DecodeIDs(req.SideIDs),
	}

	plan, err := h.mealPlanService.CreatePlan(c.Request.Context(), draft)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, MapMealPlanToResponse(plan))
}

// ListMealPlans handles GET /meal-plans with an optional status filter.
func (h *MealPlanHandler) ListMealPlans(c *gin.Context) {
	var status *domain.PlanStatus
	if raw := c.Query("status"); raw != "" {
		s := domain.PlanStatus(raw)
		if !domain.IsValidPlanStatus(s) {
			abortWithError(c, http.StatusBadRequest, "Unknown status filter.")
			return
		}
		status = &s
	}

	plans, err := h.mealPlanService.ListPlans(c.Request.Context(), status)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	responses := make([]MealPlanResponse, len(plans))
	for i := range plans {
		responses[i] = MapMealPlanToResponse(&plans[i])
	}
	c.JSON(http.StatusOK, responses)
}

// GetMealPlan handles GET /meal-plans/:planId, returning the plan with
// joined recipe details. Entries whose recipe was deleted keep a null
// recipe.
func (h *MealPlanHandler) GetMealPlan(c *gin.Context) {
	planID, ok := parseIDParam(c, "planId")
	if !ok {
		return
	}

	details, err := h.mealPlanService.GetPlanWithDetails(c.Request.Context(), planID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	entryDetails := make([]PlanEntryDetailResponse, len(details.Entries))
	for i, d := range details.Entries {
		entryDetails[i] = PlanEntryDetailResponse{PlanEntryResponse: mapPlanEntry(d.Entry)}
		if d.Recipe != nil {
			recipe := MapRecipeToResponse(d.Recipe)
			entryDetails[i].Recipe = &recipe
		}
	}

	c.JSON(http.StatusOK, MealPlanDetailResponse{
		MealPlanResponse: MapMealPlanToResponse(&details.Plan),
		DateRangeDisplay: wizard.FormatDateRange(details.Plan.StartDate, details.Plan.NumDays),
		EntryDetails:     entryDetails,
	})
}

// UpdateMealPlan handles PATCH /meal-plans/:planId (status and/or entries).
func (h *MealPlanHandler) UpdateMealPlan(c *gin.Context) {
	planID, ok := parseIDParam(c, "planId")
	if !ok {
		return
	}

	var req UpdateMealPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	var plan *domain.MealPlan
	var err error

	if req.Status != nil {
		plan, err = h.mealPlanService.SetStatus(c.Request.Context(), planID, domain.PlanStatus(*req.Status))
		if err != nil {
			respondServiceError(c, err)
			return
		}
	}
	if req.Entries != nil {
		entries := make([]domain.PlanEntry, len(*req.Entries))
		for i, e := range *req.Entries {
			recipeID, idErr := primitive.ObjectIDFromHex(e.RecipeID)
			if idErr != nil {
				abortWithError(c, http.StatusBadRequest, "Invalid recipe id in entries.")
				return
			}
			entries[i] = domain.PlanEntry{
				RecipeID:    recipeID,
				AssignedDay: e.AssignedDay,
				IsSide:      e.IsSide,
			}
		}
		plan, err = h.mealPlanService.UpdateEntries(c.Request.Context(), planID, entries)
		if err != nil {
			respondServiceError(c, err)
			return
		}
	}

	if plan == nil {
		// Empty patch: return the current plan unchanged.
		plan, err = h.mealPlanService.GetPlan(c.Request.Context(), planID)
		if err != nil {
			respondServiceError(c, err)
			return
		}
	}
	c.JSON(http.StatusOK, MapMealPlanToResponse(plan))
}

// AssignDay handles PUT /meal-plans/:planId/entries/day.
func (h *MealPlanHandler) AssignDay(c *gin.Context) {
	planID, ok := parseIDParam(c, "planId")
	if !ok {
		return
	}

	var req AssignDayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	recipeID, err := primitive.ObjectIDFromHex(req.RecipeID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid recipeId format.")
		return
	}

	plan, err := h.mealPlanService.AssignDay(c.Request.Context(), planID, recipeID, req.Day)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapMealPlanToResponse(plan))
}

// MarkAsMade handles POST /meal-plans/:planId/made.
func (h *MealPlanHandler) MarkAsMade(c *gin.Context) {
	planID, ok := parseIDParam(c, "planId")
	if !ok {
		return
	}

	var req MarkAsMadeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	recipeID, err := primitive.ObjectIDFromHex(req.RecipeID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid recipeId format.")
		return
	}

	record, err := h.mealPlanService.MarkAsMade(c.Request.Context(), planID, recipeID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, MapUsageRecordToResponse(record))
}

// DeleteMealPlan handles DELETE /meal-plans/:planId. Usage history for
// the plan's recipes is retained.
func (h *MealPlanHandler) DeleteMealPlan(c *gin.Context) {
	planID, ok := parseIDParam(c, "planId")
	if !ok {
		return
	}

	if err := h.mealPlanService.DeletePlan(c.Request.Context(), planID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// CountMealPlans handles GET /meal-plans/count.
func (h *MealPlanHandler) CountMealPlans(c *gin.Context) {
	count, err := h.mealPlanService.CountPlans(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}
