package api

import (
	"net/http"
	"time"

	"plateful/internal/domain"
	"plateful/internal/repository"
	"plateful/internal/service"

	"github.com/gin-gonic/gin"
)

// RecipeHandler holds the recipe service dependency.
type RecipeHandler struct {
	recipeService service.RecipeService
	usageService  service.UsageService
}

// NewRecipeHandler creates a new RecipeHandler.
func NewRecipeHandler(recipeService service.RecipeService, usageService service.UsageService) *RecipeHandler {
	return &RecipeHandler{recipeService: recipeService, usageService: usageService}
}

// --- DTOs for API ---

// RecipeRequest defines the expected JSON for creating or updating a recipe.
type RecipeRequest struct {
	Link        string   `json:"link" binding:"required,url"`
	Name        string   `json:"name"`
	Cuisine     string   `json:"cuisine"`
	IsFavorite  bool     `json:"isFavorite"`
	Ingredients []string `json:"ingredients"`
	MealTypes   []string `json:"mealTypes"`
	Notes       string   `json:"notes"`
	Description string   `json:"description"`
	ImageURL    string   `json:"imageUrl" binding:"omitempty,url"`
}

// RecipeResponse is the DTO for returning recipe details.
type RecipeResponse struct {
	ID          string    `json:"id"`
	Link        string    `json:"link"`
	Name        string    `json:"name,omitempty"`
	Cuisine     string    `json:"cuisine,omitempty"`
	IsFavorite  bool      `json:"isFavorite"`
	Ingredients []string  `json:"ingredients"`
	MealTypes   []string  `json:"mealTypes"`
	Notes       string    `json:"notes,omitempty"`
	Description string    `json:"description,omitempty"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// MapRecipeToResponse converts a domain.Recipe to RecipeResponse DTO.
func MapRecipeToResponse(r *domain.Recipe) RecipeResponse {
	if r == nil {
		return RecipeResponse{}
	}
	mealTypes := make([]string, len(r.MealTypes))
	for i, mt := range r.MealTypes {
		mealTypes[i] = string(mt)
	}
	return RecipeResponse{
		ID:          r.ID.Hex(),
		Link:        r.Link,
		Name:        r.Name,
		Cuisine:     r.Cuisine,
		IsFavorite:  r.IsFavorite,
		Ingredients: r.Ingredients,
		MealTypes:   mealTypes,
		Notes:       r.Notes,
		Description: r.Description,
		ImageURL:    r.ImageURL,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

// MapRecipesToResponse converts a slice of domain.Recipe to response DTOs.
func MapRecipesToResponse(recipes []domain.Recipe) []RecipeResponse {
	responses := make([]RecipeResponse, len(recipes))
	for i, r := range recipes {
		responses[i] = MapRecipeToResponse(&r)
	}
	return responses
}

func toMealTypes(raw []string) []domain.MealType {
	out := make([]domain.MealType, len(raw))
	for i, s := range raw {
		out[i] = domain.MealType(s)
	}
	return out
}

func recipeInputFromRequest(req RecipeRequest) service.RecipeInput {
	return service.RecipeInput{
		Link:        req.Link,
		Name:        req.Name,
		Cuisine:     req.Cuisine,
		IsFavorite:  req.IsFavorite,
		Ingredients: req.Ingredients,
		MealTypes:   toMealTypes(req.MealTypes),
		Notes:       req.Notes,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	}
}

// --- Handler Methods ---

// CreateRecipe handles POST /recipes.
func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	var req RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	recipe, err := h.recipeService.CreateRecipe(c.Request.Context(), recipeInputFromRequest(req))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, MapRecipeToResponse(recipe))
}

// ListRecipes handles GET /recipes with optional cuisine, mealType,
// favorite and search query filters.
func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	filter := repository.RecipeFilter{
		Cuisine:    c.Query("cuisine"),
		MealType:   domain.MealType(c.Query("mealType")),
		NameSearch: c.Query("search"),
	}
	if fav := c.Query("favorite"); fav != "" {
		isFav := fav == "true"
		filter.Favorite = &isFav
	}

	recipes, err := h.recipeService.ListRecipes(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapRecipesToResponse(recipes))
}

// GetRecipe handles GET /recipes/:recipeId.
func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	recipeID, ok := parseIDParam(c, "recipeId")
	if !ok {
		return
	}

	recipe, err := h.recipeService.GetRecipeByID(c.Request.Context(), recipeID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapRecipeToResponse(recipe))
}

// UpdateRecipe handles PUT /recipes/:recipeId.
func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	recipeID, ok := parseIDParam(c, "recipeId")
	if !ok {
		return
	}

	var req RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	recipe, err := h.recipeService.UpdateRecipe(c.Request.Context(), recipeID, recipeInputFromRequest(req))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapRecipeToResponse(recipe))
}

// ToggleFavorite handles POST /recipes/:recipeId/favorite.
func (h *RecipeHandler) ToggleFavorite(c *gin.Context) {
	recipeID, ok := parseIDParam(c, "recipeId")
	if !ok {
		return
	}

	recipe, err := h.recipeService.ToggleFavorite(c.Request.Context(), recipeID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapRecipeToResponse(recipe))
}

// DeleteRecipe handles DELETE /recipes/:recipeId.
func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	recipeID, ok := parseIDParam(c, "recipeId")
	if !ok {
		return
	}

	if err := h.recipeService.DeleteRecipe(c.Request.Context(), recipeID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetCuisines handles GET /recipes/cuisines.
func (h *RecipeHandler) GetCuisines(c *gin.Context) {
	cuisines, err := h.recipeService.GetCuisines(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cuisines": cuisines})
}

// GetMealTypes handles GET /recipes/meal-types.
func (h *RecipeHandler) GetMealTypes(c *gin.Context) {
	mealTypes := make([]string, len(domain.AllMealTypes))
	for i, mt := range domain.AllMealTypes {
		mealTypes[i] = string(mt)
	}
	c.JSON(http.StatusOK, gin.H{"mealTypes": mealTypes})
}

// GetUsageCount handles GET /recipes/:recipeId/usage.
func (h *RecipeHandler) GetUsageCount(c *gin.Context) {
	recipeID, ok := parseIDParam(c, "recipeId")
	if !ok {
		return
	}

	count, err := h.usageService.CountByRecipe(c.Request.Context(), recipeID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipeId": recipeID.Hex(), "usageCount": count})
}
