package app

import (
	"github.com/dishcovery/dishcovery/internal/app/middleware"
	"github.com/dishcovery/dishcovery/internal/domain/models"
	apperrors "github.com/dishcovery/dishcovery/internal/pkg/errors"
	"github.com/gin-gonic/gin"
)

type rateMealRequest struct {
	Rating int `json:"rating" binding:"required,min=1,max=5"`
}

// rateMeal records or replaces the caller's rating for a meal and
// refreshes the aggregate stored on the meal document
func (a *Application) rateMeal(c *gin.Context) {
	mealID, ok := getObjectID(c, "id")
	if !ok {
		return
	}

	var req rateMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, apperrors.InvalidInput("rating must be an integer between 1 and 5"))
		return
	}

	meal, err := a.repos.Meal.GetByID(c.Request.Context(), mealID)
	if err != nil {
		errorResponse(c, apperrors.DatabaseError(err))
		return
	}
	if meal == nil {
		errorResponse(c, apperrors.NotFound("meal"))
		return
	}

	userID, _ := middleware.GetUserID(c)
	rating := &models.Rating{
		MealID: mealID,
		UserID: userID,
		Rating: req.Rating,
	}
	if err := a.repos.Rating.Upsert(c.Request.Context(), rating); err != nil {
		errorResponse(c, apperrors.DatabaseError(err))
		return
	}

	summary, err := a.repos.Rating.Summarize(c.Request.Context(), mealID)
	if err != nil {
		errorResponse(c, apperrors.DatabaseError(err))
		return
	}
	if err := a.repos.Meal.UpdateRatingSummary(c.Request.Context(), mealID, summary); err != nil {
		errorResponse(c, apperrors.DatabaseError(err))
		return
	}

	successResponse(c, gin.H{
		"rating":  req.Rating,
		"summary": summary,
	})
}

func (a *Application) getMealRating(c *gin.Context) {
	mealID, ok := getObjectID(c, "id")
	if !ok {
		return
	}

	summary, err := a.repos.Rating.Summarize(c.Request.Context(), mealID)
	if err != nil {
		errorResponse(c, apperrors.DatabaseError(err))
		return
	}

	successResponse(c, summary)
}
