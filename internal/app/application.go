package app

import (
	"net/http"
	"strings"
	"time"

	"github.com/dishcovery/dishcovery/internal/app/middleware"
	"github.com/dishcovery/dishcovery/internal/domain/services"
	"github.com/dishcovery/dishcovery/internal/domain/stepguide"
	"github.com/dishcovery/dishcovery/internal/infrastructure/config"
	"github.com/dishcovery/dishcovery/internal/infrastructure/database"
	"github.com/dishcovery/dishcovery/internal/infrastructure/gemini"
	"github.com/dishcovery/dishcovery/internal/infrastructure/repositories"
	"github.com/dishcovery/dishcovery/internal/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Application holds all application dependencies and services
type Application struct {
	config   *config.Config
	logger   *logger.Logger
	mongodb  *database.MongoDB
	repos    *repositories.Provider
	auth     *services.AuthService
	analyzer *stepguide.Analyzer
	router   *gin.Engine
}

// New creates a new Application instance
func New(cfg *config.Config, log *logger.Logger, mongodb *database.MongoDB) (*Application, error) {
	repos := repositories.NewProvider(mongodb)

	// Augmentation is optional; without it step analysis runs on
	// heuristics alone
	var augmenter stepguide.Augmenter
	if cfg.GeminiEnabled() {
		augmenter = gemini.NewClient(cfg.Gemini, log)
	} else {
		log.Info("step augmentation not configured, running heuristics only")
	}

	app := &Application{
		config:   cfg,
		logger:   log,
		mongodb:  mongodb,
		repos:    repos,
		auth:     services.NewAuthService(repos.User, cfg.JWT, log),
		analyzer: stepguide.NewAnalyzer(augmenter, log),
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	app.router = gin.New()
	app.router.Use(gin.Recovery())
	app.router.Use(app.loggerMiddleware())
	app.router.Use(app.corsMiddleware())

	app.setupRoutes()

	return app, nil
}

// Router returns the HTTP handler
func (a *Application) Router() http.Handler {
	return a.router
}

// setupRoutes configures all application routes
func (a *Application) setupRoutes() {
	// Health check endpoints
	a.router.GET("/health", a.healthCheck)
	a.router.GET("/ready", a.readinessCheck)

	v1 := a.router.Group("/api/v1")
	{
		v1.GET("/info", a.apiInfo)

		requireAuth := middleware.RequireAuth(a.auth)

		// Accounts
		auth := v1.Group("/auth")
		{
			auth.POST("/signup", a.signup)
			auth.POST("/login", a.login)
			auth.GET("/me", requireAuth, a.currentUser)
			auth.POST("/likes/:recipeId", requireAuth, a.toggleLikedRecipe)
		}

		// Meal catalog
		meals := v1.Group("/meals")
		{
			meals.GET("", a.listMeals)
			meals.GET("/areas", a.listAreas)
			meals.GET("/:id", a.getMeal)
			meals.POST("/search-by-ingredients", a.searchByIngredients)
			meals.GET("/:id/rating", a.getMealRating)
			meals.PUT("/:id/rating", requireAuth, a.rateMeal)
		}

		// Step-by-step cooking guide
		guide := v1.Group("/guide")
		{
			guide.POST("/analyze-step", a.analyzeStep)
		}

		// Community recipes, comments and chat
		community := v1.Group("/community")
		{
			community.GET("/recipes", a.listCommunityRecipes)
			community.POST("/recipes", requireAuth, a.createCommunityRecipe)
			community.GET("/recipes/:id", a.getCommunityRecipe)
			community.DELETE("/recipes/:id", requireAuth, a.deleteCommunityRecipe)
			community.POST("/recipes/:id/like", requireAuth, a.likeCommunityRecipe)
			community.GET("/recipes/:id/comments", a.listComments)
			community.POST("/recipes/:id/comments", requireAuth, a.createComment)
			community.DELETE("/comments/:id", requireAuth, a.deleteComment)

			community.GET("/chat", a.chatHistory)
			community.POST("/chat", requireAuth, a.postChatMessage)
		}
	}
}

// Middleware

func (a *Application) loggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Skip logging for health checks
		if c.Request.URL.Path == "/health" || c.Request.URL.Path == "/ready" {
			c.Next()
			return
		}

		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		if raw != "" {
			path = path + "?" + raw
		}

		a.logger.Info("HTTP request",
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

func (a *Application) corsMiddleware() gin.HandlerFunc {
	allowedMethods := strings.Join(a.config.CORS.AllowedMethods, ", ")
	allowedHeaders := strings.Join(a.config.CORS.AllowedHeaders, ", ")

	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin == "" {
			origin = "*"
		}

		c.Header("Access-Control-Allow-Origin", origin)
		c.Header("Access-Control-Allow-Methods", allowedMethods)
		c.Header("Access-Control-Allow-Headers", allowedHeaders)
		c.Header("Access-Control-Allow-Credentials", "true")
		c.Header("Access-Control-Max-Age", "86400")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
