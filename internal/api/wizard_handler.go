package api

import (
	"net/http"
	"strconv"

	"plateful/internal/wizard"

	"github.com/gin-gonic/gin"
)

// WizardHandler exposes the wizard's state machine over HTTP. The
// client owns the draft and round-trips it through query parameters;
// these endpoints only decode, validate and answer transition
// questions. Nothing is stored server-side until the plan is created.
type WizardHandler struct{}

// NewWizardHandler creates a new WizardHandler.
func NewWizardHandler() *WizardHandler {
	return &WizardHandler{}
}

// WizardStateResponse echoes the decoded draft plus derived values the
// step screens need.
type WizardStateResponse struct {
	SessionID        string   `json:"sessionId,omitempty"`
	Step             string   `json:"step"`
	NumDays          int      `json:"numDays"`
	StartDate        string   `json:"startDate"`
	RecipeIDs        string   `json:"recipeIds"`
	SideIDs          string   `json:"sideIds"`
	EndDate          string   `json:"endDate,omitempty"`
	DateRangeDisplay string   `json:"dateRangeDisplay,omitempty"`
	Steps            []string `json:"steps"`
	CanGoBack        bool     `json:"canGoBack"`
	CanGoForward     bool     `json:"canGoForward"`
	ValidationError  string   `json:"validationError,omitempty"`
}

// StartSession handles POST /wizard/sessions: a fresh draft with a
// random session id, 7 days and today's start date.
func (h *WizardHandler) StartSession(c *gin.Context) {
	draft := wizard.NewDraft()
	c.JSON(http.StatusCreated, buildStateResponse(wizard.StepDays, draft, draft.SessionID))
}

// GetStepState handles GET /wizard/steps/:step. The draft fields come
// in as query parameters exactly as the client carries them in its
// navigable state.
func (h *WizardHandler) GetStepState(c *gin.Context) {
	step := wizard.Step(c.Param("step"))
	if !wizard.IsValidStep(step) {
		abortWithError(c, http.StatusNotFound, "Unknown wizard step.")
		return
	}

	state := decodeStateQuery(c)
	c.JSON(http.StatusOK, buildStateResponse(step, state, c.Query("sessionId")))
}

// Transition handles POST /wizard/steps/:step/:direction where
// direction is "next" or "back". Next is refused (409, state echoed
// unchanged) when the current step's gate fails.
func (h *WizardHandler) Transition(c *gin.Context) {
	step := wizard.Step(c.Param("step"))
	if !wizard.IsValidStep(step) {
		abortWithError(c, http.StatusNotFound, "Unknown wizard step.")
		return
	}

	state := decodeStateQuery(c)
	sessionID := c.Query("sessionId")

	var next wizard.Step
	var err error
	switch c.Param("direction") {
	case "next":
		next, err = wizard.Next(step, state)
	case "back":
		next, err = wizard.Back(step)
	default:
		abortWithError(c, http.StatusNotFound, "Unknown transition.")
		return
	}

	if err != nil {
		resp := buildStateResponse(step, state, sessionID)
		resp.ValidationError = err.Error()
		c.JSON(http.StatusConflict, resp)
		return
	}
	c.JSON(http.StatusOK, buildStateResponse(next, state, sessionID))
}

// decodeStateQuery reconstructs the draft from query parameters,
// clamping numDays and dropping empty id segments. Decode(encode(x))
// recovers the same selection sets regardless of order.
func decodeStateQuery(c *gin.Context) wizard.State {
	state := wizard.State{
		NumDays:   wizard.DefaultNumDays,
		StartDate: c.DefaultQuery("startDate", wizard.TodayISO()),
		RecipeIDs: wizard.DecodeIDs(c.Query("recipeIds")),
		SideIDs:   wizard.DecodeIDs(c.Query("sideIds")),
	}
	if raw := c.Query("numDays"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			state = state.SetNumDays(n)
		}
	}
	return state
}

func buildStateResponse(step wizard.Step, state wizard.State, sessionID string) WizardStateResponse {
	steps := make([]string, len(wizard.Steps))
	for i, s := range wizard.Steps {
		steps[i] = string(s)
	}

	resp := WizardStateResponse{
		SessionID:    sessionID,
		Step:         string(step),
		NumDays:      state.NumDays,
		StartDate:    state.StartDate,
		RecipeIDs:    wizard.EncodeIDs(state.RecipeIDs),
		SideIDs:      wizard.EncodeIDs(state.SideIDs),
		Steps:        steps,
		CanGoBack:    step != wizard.Steps[0],
		CanGoForward: step != wizard.Steps[len(wizard.Steps)-1] && wizard.Validate(step, state) == nil,
	}

	if state.StartDate != "" {
		if end, err := wizard.EndDate(state.StartDate, state.NumDays); err == nil {
			resp.EndDate = end
			resp.DateRangeDisplay = wizard.FormatDateRange(state.StartDate, state.NumDays)
		}
	}
	return resp
}
