package app

import (
	"net/http"
	"strconv"
	"time"

	apperrors "github.com/dishcovery/dishcovery/internal/pkg/errors"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// APIResponse is the standard API response format
type APIResponse struct {
	Success   bool                `json:"success"`
	Data      interface{}         `json:"data,omitempty"`
	Error     *apperrors.APIError `json:"error,omitempty"`
	Meta      *APIMeta            `json:"meta,omitempty"`
	Timestamp string              `json:"timestamp"`
}

type APIMeta struct {
	Page       int   `json:"page,omitempty"`
	PerPage    int   `json:"per_page,omitempty"`
	Total      int64 `json:"total,omitempty"`
	TotalPages int   `json:"total_pages,omitempty"`
}

func successResponse(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{
		Success:   true,
		Data:      data,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func createdResponse(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{
		Success:   true,
		Data:      data,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func paginatedResponse(c *gin.Context, data interface{}, page, perPage int, total int64) {
	totalPages := int(total) / perPage
	if int(total)%perPage > 0 {
		totalPages++
	}

	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Data:    data,
		Meta: &APIMeta{
			Page:       page,
			PerPage:    perPage,
			Total:      total,
			TotalPages: totalPages,
		},
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// errorResponse renders any error in the standard envelope. Errors that
// are not APIError values are treated as internal failures so raw
// database messages never leak to clients.
func errorResponse(c *gin.Context, err error) {
	apiErr, ok := err.(*apperrors.APIError)
	if !ok {
		apiErr = apperrors.Internal("internal server error")
	}

	c.JSON(apiErr.HTTPStatus, APIResponse{
		Success:   false,
		Error:     apiErr,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func getObjectID(c *gin.Context, param string) (primitive.ObjectID, bool) {
	idStr := c.Param(param)
	id, err := primitive.ObjectIDFromHex(idStr)
	if err != nil {
		errorResponse(c, apperrors.InvalidInput("invalid id format"))
		return primitive.NilObjectID, false
	}
	return id, true
}

func getPagination(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}

// Health and info endpoints

func (a *Application) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (a *Application) readinessCheck(c *gin.Context) {
	if err := a.mongodb.Health(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":    "not ready",
			"reason":    "database unavailable",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "ready",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (a *Application) apiInfo(c *gin.Context) {
	successResponse(c, gin.H{
		"name":        "Dishcovery",
		"version":     "0.1.0",
		"description": "Recipe discovery service with ingredient matching and guided cooking",
	})
}
