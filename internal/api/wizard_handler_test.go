package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func newWizardRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	handler := NewWizardHandler()
	group := router.Group("/api/v1/wizard")
	{
		group.POST("/sessions", handler.StartSession)
		group.GET("/steps/:step", handler.GetStepState)
		group.POST("/steps/:step/:direction", handler.Transition)
	}
	return router
}

func doWizardRequest(t *testing.T, router *gin.Engine, method, target string) (*httptest.ResponseRecorder, WizardStateResponse) {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, nil)
	router.ServeHTTP(w, req)

	var resp WizardStateResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("%s %s: bad response body %q: %v", method, target, w.Body.String(), err)
	}
	return w, resp
}

func TestStartSession(t *testing.T) {
	router := newWizardRouter()

	w, resp := doWizardRequest(t, router, http.MethodPost, "/api/v1/wizard/sessions")
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", w.Code)
	}
	if resp.SessionID == "" {
		t.Error("expected a session id")
	}
	if resp.Step != "days" {
		t.Errorf("expected to start on days, got %q", resp.Step)
	}
	if resp.NumDays != 7 {
		t.Errorf("expected 7 day default, got %d", resp.NumDays)
	}
	if resp.StartDate == "" || resp.EndDate == "" {
		t.Error("expected start and end dates populated")
	}
	if resp.CanGoBack {
		t.Error("first step must not offer back")
	}
}

func TestGetStepStateDecodesQuery(t *testing.T) {
	router := newWizardRouter()

	w, resp := doWizardRequest(t, router, http.MethodGet,
		"/api/v1/wizard/steps/recipes?startDate=2024-06-01&numDays=5&recipeIds=b,a&sideIds=")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if resp.NumDays != 5 {
		t.Errorf("expected 5 days, got %d", resp.NumDays)
	}
	if resp.EndDate != "2024-06-05" {
		t.Errorf("expected end date 2024-06-05, got %q", resp.EndDate)
	}
	if resp.DateRangeDisplay != "Jun 1 - Jun 5, 2024" {
		t.Errorf("unexpected display range %q", resp.DateRangeDisplay)
	}
	if resp.RecipeIDs != "a,b" {
		t.Errorf("expected canonical sorted encoding, got %q", resp.RecipeIDs)
	}
	if !resp.CanGoForward {
		t.Error("recipes step with a selection should allow forward")
	}
}

func TestGetStepStateClampsNumDays(t *testing.T) {
	router := newWizardRouter()

	_, resp := doWizardRequest(t, router, http.MethodGet,
		"/api/v1/wizard/steps/days?startDate=2024-06-01&numDays=99")
	if resp.NumDays != 14 {
		t.Errorf("expected numDays clamped to 14, got %d", resp.NumDays)
	}
}

func TestGetStepStateUnknownStep(t *testing.T) {
	router := newWizardRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/wizard/steps/checkout", nil)
	router.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown step, got %d", w.Code)
	}
}

func TestTransitionNext(t *testing.T) {
	router := newWizardRouter()

	w, resp := doWizardRequest(t, router, http.MethodPost,
		"/api/v1/wizard/steps/days/next?startDate=2024-06-01&numDays=5")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if resp.Step != "recipes" {
		t.Errorf("expected recipes, got %q", resp.Step)
	}
}

func TestTransitionNextBlockedByGate(t *testing.T) {
	router := newWizardRouter()

	// Recipes step with no selection: the gate refuses forward.
	w, resp := doWizardRequest(t, router, http.MethodPost,
		"/api/v1/wizard/steps/recipes/next?startDate=2024-06-01&numDays=5")
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", w.Code)
	}
	if resp.Step != "recipes" {
		t.Errorf("expected state echoed on the same step, got %q", resp.Step)
	}
	if resp.ValidationError == "" {
		t.Error("expected a validation error message")
	}
}

func TestTransitionBack(t *testing.T) {
	router := newWizardRouter()

	// Back is never gated, even with an empty selection.
	w, resp := doWizardRequest(t, router, http.MethodPost,
		"/api/v1/wizard/steps/recipes/back?startDate=2024-06-01")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if resp.Step != "days" {
		t.Errorf("expected days, got %q", resp.Step)
	}
}

func TestTransitionUnknownDirection(t *testing.T) {
	router := newWizardRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/wizard/steps/days/sideways", nil)
	router.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown direction, got %d", w.Code)
	}
}
