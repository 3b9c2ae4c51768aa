package api

import (
	"net/http"

	"plateful/internal/service"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	router *gin.Engine,
	recipeService service.RecipeService,
	restaurantService service.RestaurantService,
	mealPlanService service.MealPlanService,
	recommendationService service.RecommendationService,
	usageService service.UsageService,
	previewService service.PreviewService,
) {

	recipeHandler := NewRecipeHandler(recipeService, usageService)
	restaurantHandler := NewRestaurantHandler(restaurantService)
	mealPlanHandler := NewMealPlanHandler(mealPlanService)
	recommendationHandler := NewRecommendationHandler(recommendationService)
	wizardHandler := NewWizardHandler()
	previewHandler := NewPreviewHandler(previewService)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		// --- Recipe Routes ---
		recipeGroup := apiV1.Group("/recipes")
		{
			recipeGroup.POST("", recipeHandler.CreateRecipe)
			recipeGroup.GET("", recipeHandler.ListRecipes)
			// Static segments before the :recipeId wildcard
			recipeGroup.GET("/cuisines", recipeHandler.GetCuisines)
			recipeGroup.GET("/meal-types", recipeHandler.GetMealTypes)
			recipeGroup.GET("/:recipeId", recipeHandler.GetRecipe)
			recipeGroup.PUT("/:recipeId", recipeHandler.UpdateRecipe)
			recipeGroup.DELETE("/:recipeId", recipeHandler.DeleteRecipe)
			recipeGroup.POST("/:recipeId/favorite", recipeHandler.ToggleFavorite)
			recipeGroup.GET("/:recipeId/usage", recipeHandler.GetUsageCount)
		}

		// --- Restaurant Routes ---
		restaurantGroup := apiV1.Group("/restaurants")
		{
			restaurantGroup.POST("", restaurantHandler.CreateRestaurant)
			restaurantGroup.GET("", restaurantHandler.ListRestaurants)
			restaurantGroup.GET("/facets", restaurantHandler.GetFacets)
			restaurantGroup.GET("/:restaurantId", restaurantHandler.GetRestaurant)
			restaurantGroup.PUT("/:restaurantId", restaurantHandler.UpdateRestaurant)
			restaurantGroup.DELETE("/:restaurantId", restaurantHandler.DeleteRestaurant)
			restaurantGroup.POST("/:restaurantId/favorite", restaurantHandler.ToggleFavorite)
		}

		// --- Meal Plan Routes ---
		planGroup := apiV1.Group("/meal-plans")
		{
			planGroup.POST("", mealPlanHandler.CreateMealPlan)
			planGroup.GET("", mealPlanHandler.ListMealPlans)
			planGroup.GET("/count", mealPlanHandler.CountMealPlans)
			planGroup.GET("/:planId", mealPlanHandler.GetMealPlan)
			planGroup.PATCH("/:planId", mealPlanHandler.UpdateMealPlan)
			planGroup.DELETE("/:planId", mealPlanHandler.DeleteMealPlan)
			planGroup.PUT("/:planId/entries/day", mealPlanHandler.AssignDay)
			planGroup.POST("/:planId/made", mealPlanHandler.MarkAsMade)
		}

		// --- Recommendation Routes ---
		recGroup := apiV1.Group("/recommendations")
		{
			recGroup.GET("/recipes", recommendationHandler.GetTopMadeRecipes)
			recGroup.GET("/sides", recommendationHandler.GetRecommendedSides)
		}

		// --- Wizard Routes (stateless; client holds the draft) ---
		wizardGroup := apiV1.Group("/wizard")
		{
			wizardGroup.POST("/sessions", wizardHandler.StartSession)
			wizardGroup.GET("/steps/:step", wizardHandler.GetStepState)
			wizardGroup.POST("/steps/:step/:direction", wizardHandler.Transition)
		}

		// --- Link Preview ---
		apiV1.GET("/preview", previewHandler.GetPreview)
	}
}
