package mealdb

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dishcovery/dishcovery/internal/infrastructure/config"
	"github.com/dishcovery/dishcovery/internal/pkg/logger"
	"github.com/go-resty/resty/v2"
)

const defaultTimeout = 15 * time.Second

// Client talks to TheMealDB public API
type Client struct {
	http    *resty.Client
	baseURL string
	logger  *logger.Logger
}

// NewClient creates a new TheMealDB client
func NewClient(cfg config.MealDBConfig, log *logger.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		http:    resty.New().SetTimeout(timeout),
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		logger:  log.WithComponent("mealdb"),
	}
}

// ListEntry is one row of a category listing
type ListEntry struct {
	IDMeal       string `json:"idMeal"`
	StrMeal      string `json:"strMeal"`
	StrMealThumb string `json:"strMealThumb"`
}

type filterResponse struct {
	Meals []ListEntry `json:"meals"`
}

type lookupResponse struct {
	Meals []map[string]any `json:"meals"`
}

// FilterByCategory lists the meals in one upstream category. A category
// with no meals comes back as an empty slice, not an error.
func (c *Client) FilterByCategory(ctx context.Context, category string) ([]ListEntry, error) {
	var out filterResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("c", category).
		SetResult(&out).
		Get(c.baseURL + "/filter.php")
	if err != nil {
		return nil, fmt.Errorf("mealdb filter request failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("mealdb filter returned status %d", resp.StatusCode())
	}
	return out.Meals, nil
}

// Record is one full meal document as TheMealDB returns it: a flat
// object with strIngredient1..strIngredient20 and matching strMeasureN
// keys, most of them null.
type Record map[string]any

// Lookup fetches the full record for one meal id. Returns nil when the
// id is unknown upstream.
func (c *Client) Lookup(ctx context.Context, idMeal string) (Record, error) {
	var out lookupResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("i", idMeal).
		SetResult(&out).
		Get(c.baseURL + "/lookup.php")
	if err != nil {
		return nil, fmt.Errorf("mealdb lookup request failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("mealdb lookup returned status %d", resp.StatusCode())
	}
	if len(out.Meals) == 0 {
		return nil, nil
	}
	return Record(out.Meals[0]), nil
}

// String reads a string field from the record, mapping null to ""
func (r Record) String(key string) string {
	s, _ := r[key].(string)
	return strings.TrimSpace(s)
}

// Ingredients extracts the populated strIngredientN / strMeasureN pairs
func (r Record) Ingredients() (ingredients, measures []string) {
	for i := 1; i <= 20; i++ {
		ing := r.String(fmt.Sprintf("strIngredient%d", i))
		mea := r.String(fmt.Sprintf("strMeasure%d", i))
		if ing != "" {
			ingredients = append(ingredients, ing)
		}
		if mea != "" {
			measures = append(measures, mea)
		}
	}
	return ingredients, measures
}
