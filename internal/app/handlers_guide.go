package app

import (
	apperrors "github.com/dishcovery/dishcovery/internal/pkg/errors"
	"github.com/gin-gonic/gin"
)

type analyzeStepRequest struct {
	StepText string `json:"stepText" binding:"required"`
	Language string `json:"language"`
}

// analyzeStep turns one free-text cooking instruction into a timer
// estimate, a flame level and a tip. The analysis itself cannot fail;
// the only error path here is a bad request body.
func (a *Application) analyzeStep(c *gin.Context) {
	var req analyzeStepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, apperrors.InvalidInput("stepText is required"))
		return
	}

	analysis := a.analyzer.Analyze(c.Request.Context(), req.StepText, req.Language)
	successResponse(c, analysis)
}
