package app

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dishcovery/dishcovery/internal/domain/models"
	"github.com/dishcovery/dishcovery/internal/domain/repositories"
	"github.com/dishcovery/dishcovery/internal/domain/services"
	"github.com/dishcovery/dishcovery/internal/domain/stepguide"
	"github.com/dishcovery/dishcovery/internal/infrastructure/config"
	infrarepos "github.com/dishcovery/dishcovery/internal/infrastructure/repositories"
	"github.com/dishcovery/dishcovery/internal/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// stubMealRepo serves a fixed catalog from memory
type stubMealRepo struct {
	catalog []models.Meal
}

func (s *stubMealRepo) GetByID(_ context.Context, id primitive.ObjectID) (*models.Meal, error) {
	for i := range s.catalog {
		if s.catalog[i].ID == id {
			return &s.catalog[i], nil
		}
	}
	return nil, nil
}

func (s *stubMealRepo) GetByMealDBID(_ context.Context, idMeal string) (*models.Meal, error) {
	for i := range s.catalog {
		if s.catalog[i].MealDBID == idMeal {
			return &s.catalog[i], nil
		}
	}
	return nil, nil
}

func (s *stubMealRepo) Upsert(_ context.Context, meal *models.Meal) error {
	s.catalog = append(s.catalog, *meal)
	return nil
}

func (s *stubMealRepo) List(_ context.Context, _ repositories.MealFilter) ([]models.Meal, int64, error) {
	return s.catalog, int64(len(s.catalog)), nil
}

func (s *stubMealRepo) ListByCategory(_ context.Context, category models.DietCategory) ([]models.Meal, error) {
	var out []models.Meal
	for _, m := range s.catalog {
		if m.AICategory == category {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *stubMealRepo) ListAll(_ context.Context) ([]models.Meal, error) {
	return s.catalog, nil
}

func (s *stubMealRepo) ListAreas(_ context.Context) ([]string, error) {
	return []string{"Indian", "Italian"}, nil
}

func (s *stubMealRepo) UpdateRatingSummary(_ context.Context, _ primitive.ObjectID, _ models.RatingSummary) error {
	return nil
}

func newTestApp(t *testing.T, meals repositories.MealRepository) *Application {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log, err := logger.New(config.LoggingConfig{Level: "error", Format: "console", Output: "stdout"})
	require.NoError(t, err)

	cfg := &config.Config{}
	cfg.CORS.AllowedMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	cfg.CORS.AllowedHeaders = []string{"Authorization", "Content-Type"}

	a := &Application{
		config: cfg,
		logger: log,
		repos:  &infrarepos.Provider{Meal: meals},
		auth: services.NewAuthService(nil, config.JWTConfig{
			Secret:         "test-secret",
			AccessTokenTTL: time.Hour,
		}, log),
		analyzer: stepguide.NewAnalyzer(nil, log),
	}

	a.router = gin.New()
	a.router.Use(gin.Recovery())
	a.setupRoutes()
	return a
}

func doJSON(t *testing.T, a *Application, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestHealthCheck(t *testing.T) {
	a := newTestApp(t, &stubMealRepo{})

	w := doJSON(t, a, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSearchByIngredients(t *testing.T) {
	a := newTestApp(t, &stubMealRepo{catalog: []models.Meal{
		{
			Name:        "Veg Curry",
			Ingredients: []string{"Onion", "Tomato", "Spinach"},
			AICategory:  models.DietVegetarian,
		},
		{
			Name:        "Chicken Roast",
			Ingredients: []string{"Chicken", "Garlic"},
			AICategory:  models.DietNonVeg,
		},
	}})

	w := doJSON(t, a, http.MethodPost, "/api/v1/meals/search-by-ingredients", gin.H{
		"ingredients": []string{"onion", "tomato"},
		"aiCategory":  "veg",
	})
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeResponse(t, w)
	assert.Equal(t, true, resp["success"])

	data := resp["data"].(map[string]any)
	assert.EqualValues(t, 1, data["count"])

	dishes := data["dishes"].([]any)
	require.Len(t, dishes, 1)

	dish := dishes[0].(map[string]any)
	assert.Equal(t, "Veg Curry", dish["strMeal"])
	assert.EqualValues(t, 2, dish["matchScore"])
	assert.Equal(t, []any{"Spinach"}, dish["missingIngredients"])
}

func TestSearchByIngredientsAcceptsCommaString(t *testing.T) {
	a := newTestApp(t, &stubMealRepo{catalog: []models.Meal{
		{Name: "Dal", Ingredients: []string{"lentil", "salt"}, AICategory: models.DietVegetarian},
	}})

	w := doJSON(t, a, http.MethodPost, "/api/v1/meals/search-by-ingredients", gin.H{
		"ingredients": "Lentil, Salt",
	})
	require.Equal(t, http.StatusOK, w.Code)

	data := decodeResponse(t, w)["data"].(map[string]any)
	assert.EqualValues(t, 1, data["count"])
}

func TestSearchByIngredientsRejectsBadInput(t *testing.T) {
	a := newTestApp(t, &stubMealRepo{})

	tests := []struct {
		name string
		body gin.H
	}{
		{"numeric ingredients", gin.H{"ingredients": 42}},
		{"empty string", gin.H{"ingredients": " , , "}},
		{"missing field", gin.H{"aiCategory": "veg"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, a, http.MethodPost, "/api/v1/meals/search-by-ingredients", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)

			resp := decodeResponse(t, w)
			assert.Equal(t, false, resp["success"])
		})
	}
}

func TestSearchByIngredientsNoMatches(t *testing.T) {
	a := newTestApp(t, &stubMealRepo{catalog: []models.Meal{
		{Name: "Dal", Ingredients: []string{"lentil"}, AICategory: models.DietVegetarian},
	}})

	w := doJSON(t, a, http.MethodPost, "/api/v1/meals/search-by-ingredients", gin.H{
		"ingredients": []string{"dragonfruit"},
	})
	require.Equal(t, http.StatusNotFound, w.Code)

	resp := decodeResponse(t, w)
	errObj := resp["error"].(map[string]any)
	assert.Equal(t, "NO_MATCHES", errObj["code"])
}

func TestAnalyzeStep(t *testing.T) {
	a := newTestApp(t, &stubMealRepo{})

	w := doJSON(t, a, http.MethodPost, "/api/v1/guide/analyze-step", gin.H{
		"stepText": "Simmer the sauce for 10 minutes.",
	})
	require.Equal(t, http.StatusOK, w.Code)

	data := decodeResponse(t, w)["data"].(map[string]any)
	assert.EqualValues(t, 10, data["estimated_time"])
	assert.Equal(t, "Low", data["flame_level"])
	assert.NotEmpty(t, data["tip"])
}

func TestAnalyzeStepRequiresBody(t *testing.T) {
	a := newTestApp(t, &stubMealRepo{})

	w := doJSON(t, a, http.MethodPost, "/api/v1/guide/analyze-step", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProtectedRouteRequiresToken(t *testing.T) {
	a := newTestApp(t, &stubMealRepo{})

	w := doJSON(t, a, http.MethodGet, "/api/v1/auth/me", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGetMealByMealDBID(t *testing.T) {
	a := newTestApp(t, &stubMealRepo{catalog: []models.Meal{
		{ID: primitive.NewObjectID(), MealDBID: "52772", Name: "Teriyaki Chicken"},
	}})

	w := doJSON(t, a, http.MethodGet, "/api/v1/meals/52772", nil)
	require.Equal(t, http.StatusOK, w.Code)

	data := decodeResponse(t, w)["data"].(map[string]any)
	assert.Equal(t, "Teriyaki Chicken", data["strMeal"])
}
