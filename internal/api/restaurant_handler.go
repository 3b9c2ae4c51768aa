package api

import (
	"net/http"
	"time"

	"plateful/internal/domain"
	"plateful/internal/repository"
	"plateful/internal/service"

	"github.com/gin-gonic/gin"
)

// RestaurantHandler holds the restaurant service dependency.
type RestaurantHandler struct {
	restaurantService service.RestaurantService
}

// NewRestaurantHandler creates a new RestaurantHandler.
func NewRestaurantHandler(restaurantService service.RestaurantService) *RestaurantHandler {
	return &RestaurantHandler{restaurantService: restaurantService}
}

// --- DTOs for API ---

// DishRequest is one dish tried at a restaurant.
type DishRequest struct {
	Name   string `json:"name" binding:"required"`
	Rating *int   `json:"rating" binding:"omitempty,min=1,max=5"`
}

// RestaurantRequest defines the expected JSON for creating or updating
// a restaurant.
type RestaurantRequest struct {
	Link       string        `json:"link" binding:"required,url"`
	Name       string        `json:"name"`
	Suburb     string        `json:"suburb" binding:"required"`
	Cuisine    string        `json:"cuisine"`
	MealTypes  []string      `json:"mealTypes"`
	IsFavorite bool          `json:"isFavorite"`
	Dishes     []DishRequest `json:"dishes"`
}

// RestaurantResponse is the DTO for returning restaurant details.
type RestaurantResponse struct {
	ID         string        `json:"id"`
	Link       string        `json:"link"`
	Name       string        `json:"name,omitempty"`
	Suburb     string        `json:"suburb"`
	Cuisine    string        `json:"cuisine,omitempty"`
	MealTypes  []string      `json:"mealTypes"`
	IsFavorite bool          `json:"isFavorite"`
	Dishes     []domain.Dish `json:"dishes"`
	CreatedAt  time.Time     `json:"createdAt"`
	UpdatedAt  time.Time     `json:"updatedAt"`
}

// MapRestaurantToResponse converts a domain.Restaurant to its DTO.
func MapRestaurantToResponse(r *domain.Restaurant) RestaurantResponse {
	if r == nil {
		return RestaurantResponse{}
	}
	mealTypes := make([]string, len(r.MealTypes))
	for i, mt := range r.MealTypes {
		mealTypes[i] = string(mt)
	}
	return RestaurantResponse{
		ID:         r.ID.Hex(),
		Link:       r.Link,
		Name:       r.Name,
		Suburb:     r.Suburb,
		Cuisine:    r.Cuisine,
		MealTypes:  mealTypes,
		IsFavorite: r.IsFavorite,
		Dishes:     r.Dishes,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}

// MapRestaurantsToResponse converts a slice of restaurants to DTOs.
func MapRestaurantsToResponse(restaurants []domain.Restaurant) []RestaurantResponse {
	responses := make([]RestaurantResponse, len(restaurants))
	for i, r := range restaurants {
		responses[i] = MapRestaurantToResponse(&r)
	}
	return responses
}

func restaurantInputFromRequest(req RestaurantRequest) service.RestaurantInput {
	dishes := make([]domain.Dish, len(req.Dishes))
	for i, d := range req.Dishes {
		dishes[i] = domain.Dish{Name: d.Name, Rating: d.Rating}
	}
	return service.RestaurantInput{
		Link:       req.Link,
		Name:       req.Name,
		Suburb:     req.Suburb,
		Cuisine:    req.Cuisine,
		MealTypes:  toMealTypes(req.MealTypes),
		IsFavorite: req.IsFavorite,
		Dishes:     dishes,
	}
}

// --- Handler Methods ---

// CreateRestaurant handles POST /restaurants.
func (h *RestaurantHandler) CreateRestaurant(c *gin.Context) {
	var req RestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	restaurant, err := h.restaurantService.CreateRestaurant(c.Request.Context(), restaurantInputFromRequest(req))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, MapRestaurantToResponse(restaurant))
}

// ListRestaurants handles GET /restaurants with optional filters.
func (h *RestaurantHandler) ListRestaurants(c *gin.Context) {
	filter := repository.RestaurantFilter{
		Cuisine:    c.Query("cuisine"),
		Suburb:     c.Query("suburb"),
		MealType:   domain.MealType(c.Query("mealType")),
		NameSearch: c.Query("search"),
	}
	if fav := c.Query("favorite"); fav != "" {
		isFav := fav == "true"
		filter.Favorite = &isFav
	}

	restaurants, err := h.restaurantService.ListRestaurants(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapRestaurantsToResponse(restaurants))
}

// GetRestaurant handles GET /restaurants/:restaurantId.
func (h *RestaurantHandler) GetRestaurant(c *gin.Context) {
	id, ok := parseIDParam(c, "restaurantId")
	if !ok {
		return
	}

	restaurant, err := h.restaurantService.GetRestaurantByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapRestaurantToResponse(restaurant))
}

// UpdateRestaurant handles PUT /restaurants/:restaurantId.
func (h *RestaurantHandler) UpdateRestaurant(c *gin.Context) {
	id, ok := parseIDParam(c, "restaurantId")
	if !ok {
		return
	}

	var req RestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	restaurant, err := h.restaurantService.UpdateRestaurant(c.Request.Context(), id, restaurantInputFromRequest(req))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapRestaurantToResponse(restaurant))
}

// ToggleFavorite handles POST /restaurants/:restaurantId/favorite.
func (h *RestaurantHandler) ToggleFavorite(c *gin.Context) {
	id, ok := parseIDParam(c, "restaurantId")
	if !ok {
		return
	}

	restaurant, err := h.restaurantService.ToggleFavorite(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapRestaurantToResponse(restaurant))
}

// DeleteRestaurant handles DELETE /restaurants/:restaurantId.
func (h *RestaurantHandler) DeleteRestaurant(c *gin.Context) {
	id, ok := parseIDParam(c, "restaurantId")
	if !ok {
		return
	}

	if err := h.restaurantService.DeleteRestaurant(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetFacets handles GET /restaurants/facets (distinct cuisines and suburbs).
func (h *RestaurantHandler) GetFacets(c *gin.Context) {
	cuisines, err := h.restaurantService.GetCuisines(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	suburbs, err := h.restaurantService.GetSuburbs(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cuisines": cuisines, "suburbs": suburbs})
}
