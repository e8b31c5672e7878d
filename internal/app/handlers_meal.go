package app

import (
	"github.com/dishcovery/dishcovery/internal/domain/matching"
	"github.com/dishcovery/dishcovery/internal/domain/models"
	"github.com/dishcovery/dishcovery/internal/domain/repositories"
	apperrors "github.com/dishcovery/dishcovery/internal/pkg/errors"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func (a *Application) listMeals(c *gin.Context) {
	page, limit := getPagination(c)

	filter := repositories.MealFilter{
		Category: matching.NormalizeCategory(c.Query("category")),
		Area:     c.Query("area"),
		Search:   c.Query("search"),
		Page:     page,
		Limit:    limit,
	}

	meals, total, err := a.repos.Meal.List(c.Request.Context(), filter)
	if err != nil {
		errorResponse(c, apperrors.DatabaseError(err))
		return
	}

	paginatedResponse(c, meals, page, limit, total)
}

func (a *Application) listAreas(c *gin.Context) {
	areas, err := a.repos.Meal.ListAreas(c.Request.Context())
	if err != nil {
		errorResponse(c, apperrors.DatabaseError(err))
		return
	}

	successResponse(c, areas)
}

// getMeal resolves either a local object id or an upstream idMeal, so
// links built from synced catalog data keep working
func (a *Application) getMeal(c *gin.Context) {
	idStr := c.Param("id")

	var meal *models.Meal
	var err error
	if id, parseErr := primitive.ObjectIDFromHex(idStr); parseErr == nil {
		meal, err = a.repos.Meal.GetByID(c.Request.Context(), id)
	} else {
		meal, err = a.repos.Meal.GetByMealDBID(c.Request.Context(), idStr)
	}
	if err != nil {
		errorResponse(c, apperrors.DatabaseError(err))
		return
	}
	if meal == nil {
		errorResponse(c, apperrors.NotFound("meal"))
		return
	}

	successResponse(c, meal)
}

// searchByIngredientsRequest accepts ingredients as either a
// comma-separated string or an array of strings
type searchByIngredientsRequest struct {
	Ingredients any      `json:"ingredients"`
	AICategory  string   `json:"aiCategory"`
	Allergies   []string `json:"allergies"`
}

func (a *Application) searchByIngredients(c *gin.Context) {
	var req searchByIngredientsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, apperrors.InvalidInput(err.Error()))
		return
	}

	ingredients, err := matching.ParseIngredients(req.Ingredients)
	if err != nil {
		errorResponse(c, apperrors.InvalidInput(err.Error()))
		return
	}

	query := matching.Query{
		Ingredients: ingredients,
		Category:    matching.NormalizeCategory(req.AICategory),
		Allergies:   req.Allergies,
	}

	// Narrow the candidate set in the database when a category filter
	// applies; the ranking itself is in-process
	var catalog []models.Meal
	if query.Category != "" {
		catalog, err = a.repos.Meal.ListByCategory(c.Request.Context(), query.Category)
	} else {
		catalog, err = a.repos.Meal.ListAll(c.Request.Context())
	}
	if err != nil {
		errorResponse(c, apperrors.DatabaseError(err))
		return
	}

	dishes := matching.Match(catalog, query)
	if len(dishes) == 0 {
		errorResponse(c, apperrors.NoMatches("no dishes match the given ingredients"))
		return
	}

	a.logger.Info("ingredient search",
		zap.Int("ingredients", len(ingredients)),
		zap.String("category", string(query.Category)),
		zap.Int("matches", len(dishes)))

	successResponse(c, gin.H{
		"count":  len(dishes),
		"dishes": dishes,
	})
}
