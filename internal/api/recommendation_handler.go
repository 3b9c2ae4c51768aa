package api

import (
	"net/http"

	"plateful/internal/service"

	"github.com/gin-gonic/gin"
)

// RecommendationHandler holds the recommendation service dependency.
type RecommendationHandler struct {
	recommendationService service.RecommendationService
}

// NewRecommendationHandler creates a new RecommendationHandler.
func NewRecommendationHandler(recommendationService service.RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{recommendationService: recommendationService}
}

// RankedRecipeResponse is a recipe annotated with its usage count.
type RankedRecipeResponse struct {
	RecipeResponse
	UsageCount int64 `json:"usageCount"`
}

func mapRankedRecipes(ranked []service.RankedRecipe) []RankedRecipeResponse {
	responses := make([]RankedRecipeResponse, len(ranked))
	for i, r := range ranked {
		responses[i] = RankedRecipeResponse{
			RecipeResponse: MapRecipeToResponse(&r.Recipe),
			UsageCount:     r.UsageCount,
		}
	}
	return responses
}

// GetTopMadeRecipes handles GET /recommendations/recipes: the rotating
// top-6 most-made slice of the catalog.
func (h *RecommendationHandler) GetTopMadeRecipes(c *gin.Context) {
	ranked, err := h.recommendationService.GetTopMadeRecipes(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapRankedRecipes(ranked))
}

// GetRecommendedSides handles GET /recommendations/sides: the rotating
// top-4 slice of side-tagged recipes.
func (h *RecommendationHandler) GetRecommendedSides(c *gin.Context) {
	ranked, err := h.recommendationService.GetRecommendedSides(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapRankedRecipes(ranked))
}
