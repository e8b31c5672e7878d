package app

import (
	"github.com/dishcovery/dishcovery/internal/app/middleware"
	"github.com/dishcovery/dishcovery/internal/domain/models"
	"github.com/dishcovery/dishcovery/internal/domain/services"
	apperrors "github.com/dishcovery/dishcovery/internal/pkg/errors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// authPayload is the signup/login response: the account plus a fresh token
type authPayload struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

func (a *Application) signup(c *gin.Context) {
	var req services.SignupInput
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, apperrors.InvalidInput(err.Error()))
		return
	}

	user, token, err := a.auth.Signup(c.Request.Context(), req)
	if err != nil {
		errorResponse(c, err)
		return
	}

	createdResponse(c, authPayload{Token: token, User: user})
}

func (a *Application) login(c *gin.Context) {
	var req services.LoginInput
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, apperrors.InvalidInput(err.Error()))
		return
	}

	user, token, err := a.auth.Login(c.Request.Context(), req)
	if err != nil {
		errorResponse(c, err)
		return
	}

	successResponse(c, authPayload{Token: token, User: user})
}

func (a *Application) currentUser(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	user, err := a.repos.User.GetByID(c.Request.Context(), userID)
	if err != nil {
		errorResponse(c, apperrors.DatabaseError(err))
		return
	}
	if user == nil {
		errorResponse(c, apperrors.NotFound("user"))
		return
	}

	successResponse(c, user)
}

// toggleLikedRecipe adds the recipe to the user's liked list, or removes
// it when already present, and keeps the recipe's like counter in step
func (a *Application) toggleLikedRecipe(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	recipeID := c.Param("recipeId")

	liked, err := a.repos.User.ToggleLikedRecipe(c.Request.Context(), userID, recipeID)
	if err != nil {
		errorResponse(c, apperrors.DatabaseError(err))
		return
	}

	a.logger.Info("liked recipe toggled",
		zap.String("user_id", userID.Hex()),
		zap.String("recipe_id", recipeID),
		zap.Bool("liked", liked))

	successResponse(c, gin.H{"recipe_id": recipeID, "liked": liked})
}
