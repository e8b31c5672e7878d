package app

import (
	"strconv"

	"github.com/dishcovery/dishcovery/internal/app/middleware"
	"github.com/dishcovery/dishcovery/internal/domain/models"
	apperrors "github.com/dishcovery/dishcovery/internal/pkg/errors"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// ==================== Community recipes ====================

type createCommunityRecipeRequest struct {
	Name        string                       `json:"name" binding:"required"`
	Category    string                       `json:"category"`
	Country     string                       `json:"country"`
	Ingredients []models.CommunityIngredient `json:"ingredients" binding:"required,min=1"`
	Steps       []string                     `json:"steps" binding:"required,min=1"`
	Image       string                       `json:"image"`
	VideoLink   string                       `json:"video_link"`
}

func (a *Application) listCommunityRecipes(c *gin.Context) {
	page, limit := getPagination(c)

	recipes, total, err := a.repos.CommunityRecipe.List(c.Request.Context(), page, limit)
	if err != nil {
		errorResponse(c, apperrors.DatabaseError(err))
		return
	}

	paginatedResponse(c, recipes, page, limit, total)
}

func (a *Application) createCommunityRecipe(c *gin.Context) {
	var req createCommunityRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, apperrors.InvalidInput(err.Error()))
		return
	}

	userID, _ := middleware.GetUserID(c)
	user, err := a.repos.User.GetByID(c.Request.Context(), userID)
	if err != nil {
		errorResponse(c, apperrors.DatabaseError(err))
		return
	}
	if user == nil {
		errorResponse(c, apperrors.Unauthorized("account no longer exists"))
		return
	}

	recipe := &models.CommunityRecipe{
		Name:        req.Name,
		Category:    req.Category,
		Country:     req.Country,
		Ingredients: req.Ingredients,
		Steps:       req.Steps,
		Image:       req.Image,
		VideoLink:   req.VideoLink,
		UserID:      userID,
		Username:    user.Username,
	}

	if err := a.repos.CommunityRecipe.Create(c.Request.Context(), recipe); err != nil {
		errorResponse(c, apperrors.DatabaseError(err))
		return
	}

	a.logger.Info("community recipe created",
		zap.String("recipe_id", recipe.ID.Hex()),
		zap.String("user_id", userID.Hex()))

	createdResponse(c, recipe)
}

func (a *Application) getCommunityRecipe(c *gin.Context) {
	id, ok := getObjectID(c, "id")
	if !ok {
		return
	}

	recipe, err := a.repos.CommunityRecipe.GetByID(c.Request.Context(), id)
	if err != nil {
		errorResponse(c, apperrors.DatabaseError(err))
		return
	}
	if recipe == nil {
		errorResponse(c, apperrors.NotFound("recipe"))
		return
	}

	successResponse(c, recipe)
}

// deleteCommunityRecipe removes a recipe, owner only
func (a *Application) deleteCommunityRecipe(c *gin.Context) {
	id, ok := getObjectID(c, "id")
	if !ok {
		return
	}
	userID, _ := middleware.GetUserID(c)

	recipe, err := a.repos.CommunityRecipe.GetByID(c.Request.Context(), id)
	if err != nil {
		errorResponse(c, apperrors.DatabaseError(err))
		return
	}
	if recipe == nil {
		errorResponse(c, apperrors.NotFound("recipe"))
		return
	}
	if recipe.UserID != userID {
		errorResponse(c, apperrors.Forbidden("only the author can delete this recipe"))
		return
	}

	if err := a.repos.CommunityRecipe.Delete(c.Request.Context(), id); err != nil {
		errorResponse(c, apperrors.DatabaseError(err))
		return
	}

	successResponse(c, gin.H{"deleted": true})
}

// likeCommunityRecipe toggles the user's like and keeps the recipe's
// counter in step with the user's liked list
func (a *Application) likeCommunityRecipe(c *gin.Context) {
	id, ok := getObjectID(c, "id")
	if !ok {
		return
	}
	userID, _ := middleware.GetUserID(c)

	recipe, err := a.repos.CommunityRecipe.GetByID(c.Request.Context(), id)
	if err != nil {
		errorResponse(c, apperrors.DatabaseError(err))
		return
	}
	if recipe == nil {
		errorResponse(c, apperrors.NotFound("recipe"))
		return
	}

	liked, err := a.repos.User.ToggleLikedRecipe(c.Request.Context(), userID, id.Hex())
	if err != nil {
		errorResponse(c, apperrors.DatabaseError(err))
		return
	}

	delta := -1
	if liked {
		delta = 1
	}
	if err := a.repos.CommunityRecipe.AdjustLikes(c.Request.Context(), id, delta); err != nil {
		errorResponse(c, apperrors.DatabaseError(err))
		return
	}

	successResponse(c, gin.H{"recipe_id": id.Hex(), "liked": liked})
}

// ==================== Comments ====================

type createCommentRequest struct {
	Text     string `json:"text" binding:"required"`
	ParentID string `json:"parent_id"`
}

func (a *Application) listComments(c *gin.Context) {
	id, ok := getObjectID(c, "id")
	if !ok {
		return
	}

	comments, err := a.repos.CommunityComment.ListByRecipe(c.Request.Context(), id)
	if err != nil {
		errorResponse(c, apperrors.DatabaseError(err))
		return
	}

	successResponse(c, comments)
}

func (a *Application) createComment(c *gin.Context) {
	recipeID, ok := getObjectID(c, "id")
	if !ok {
		return
	}

	var req createCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, apperrors.InvalidInput(err.Error()))
		return
	}

	var parentID *primitive.ObjectID
	if req.ParentID != "" {
		pid, err := primitive.ObjectIDFromHex(req.ParentID)
		if err != nil {
			errorResponse(c, apperrors.InvalidInput("invalid parent_id format"))
			return
		}
		parentID = &pid
	}

	userID, _ := middleware.GetUserID(c)
	user, err := a.repos.User.GetByID(c.Request.Context(), userID)
	if err != nil {
		errorResponse(c, apperrors.DatabaseError(err))
		return
	}
	if user == nil {
		errorResponse(c, apperrors.Unauthorized("account no longer exists"))
		return
	}

	recipe, err := a.repos.CommunityRecipe.GetByID(c.Request.Context(), recipeID)
	if err != nil {
		errorResponse(c, apperrors.DatabaseError(err))
		return
	}
	if recipe == nil {
		errorResponse(c, apperrors.NotFound("recipe"))
		return
	}

	comment := &models.CommunityComment{
		RecipeID: recipeID,
		UserID:   userID,
		Username: user.Username,
		Text:     req.Text,
		ParentID: parentID,
	}

	if err := a.repos.CommunityComment.Create(c.Request.Context(), comment); err != nil {
		errorResponse(c, apperrors.DatabaseError(err))
		return
	}

	createdResponse(c, comment)
}

func (a *Application) deleteComment(c *gin.Context) {
	id, ok := getObjectID(c, "id")
	if !ok {
		return
	}
	userID, _ := middleware.GetUserID(c)

	if err := a.repos.CommunityComment.Delete(c.Request.Context(), id, userID); err != nil {
		// Scoped delete: not found and not-yours are indistinguishable
		errorResponse(c, apperrors.NotFound("comment"))
		return
	}

	successResponse(c, gin.H{"deleted": true})
}

// ==================== Chat ====================

type postChatMessageRequest struct {
	Message  string `json:"message"`
	ImageURL string `json:"image_url"`
}

func (a *Application) chatHistory(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	messages, err := a.repos.Chat.Recent(c.Request.Context(), limit)
	if err != nil {
		errorResponse(c, apperrors.DatabaseError(err))
		return
	}

	successResponse(c, messages)
}

func (a *Application) postChatMessage(c *gin.Context) {
	var req postChatMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, apperrors.InvalidInput(err.Error()))
		return
	}
	if req.Message == "" && req.ImageURL == "" {
		errorResponse(c, apperrors.InvalidInput("message or image_url is required"))
		return
	}

	userID, _ := middleware.GetUserID(c)
	user, err := a.repos.User.GetByID(c.Request.Context(), userID)
	if err != nil {
		errorResponse(c, apperrors.DatabaseError(err))
		return
	}
	if user == nil {
		errorResponse(c, apperrors.Unauthorized("account no longer exists"))
		return
	}

	msg := &models.ChatMessage{
		UserID:   userID,
		Username: user.Username,
		Message:  req.Message,
		ImageURL: req.ImageURL,
	}

	if err := a.repos.Chat.Append(c.Request.Context(), msg); err != nil {
		errorResponse(c, apperrors.DatabaseError(err))
		return
	}

	createdResponse(c, msg)
}
