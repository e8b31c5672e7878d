package services

import (
	"context"
	"fmt"

	"github.com/dishcovery/dishcovery/internal/domain/models"
	"github.com/dishcovery/dishcovery/internal/domain/repositories"
	"github.com/dishcovery/dishcovery/internal/infrastructure/mealdb"
	"github.com/dishcovery/dishcovery/internal/pkg/logger"
	"go.uber.org/zap"
)

// syncCategories is the set of upstream categories pulled during a full
// catalog sync.
var syncCategories = []string{
	"Beef", "Chicken", "Dessert", "Lamb", "Pasta", "Pork", "Seafood",
	"Vegetarian", "Miscellaneous", "Breakfast", "Goat", "Vegan",
	"Side", "Starter",
}

// SyncService imports the TheMealDB catalog into the local meals collection
type SyncService struct {
	meals  repositories.MealRepository
	client *mealdb.Client
	logger *logger.Logger
}

// NewSyncService creates a new sync service
func NewSyncService(meals repositories.MealRepository, client *mealdb.Client, log *logger.Logger) *SyncService {
	return &SyncService{
		meals:  meals,
		client: client,
		logger: log.WithComponent("sync"),
	}
}

// SyncResult summarizes one sync run
type SyncResult struct {
	Skipped  bool `json:"skipped"`
	Imported int  `json:"imported"`
	Failed   int  `json:"failed"`
}

// Run performs a full catalog sync. When the meals collection already has
// documents and force is false the run is a no-op, so the server can call
// this on startup without re-importing on every boot.
func (s *SyncService) Run(ctx context.Context, force bool) (SyncResult, error) {
	if !force {
		_, total, err := s.meals.List(ctx, repositories.MealFilter{Limit: 1})
		if err != nil {
			return SyncResult{}, fmt.Errorf("failed to check existing catalog: %w", err)
		}
		if total > 0 {
			s.logger.Info("catalog already populated, skipping sync", zap.Int64("meals", total))
			return SyncResult{Skipped: true}, nil
		}
	}

	var result SyncResult
	for _, category := range syncCategories {
		entries, err := s.client.FilterByCategory(ctx, category)
		if err != nil {
			s.logger.Warn("failed to list category, continuing",
				zap.String("category", category), zap.Error(err))
			continue
		}

		for _, entry := range entries {
			if err := ctx.Err(); err != nil {
				return result, err
			}
			if err := s.importMeal(ctx, entry.IDMeal); err != nil {
				result.Failed++
				s.logger.Warn("failed to import meal",
					zap.String("idMeal", entry.IDMeal), zap.Error(err))
				continue
			}
			result.Imported++
		}

		s.logger.Info("synced category",
			zap.String("category", category), zap.Int("meals", len(entries)))
	}

	s.logger.Info("catalog sync finished",
		zap.Int("imported", result.Imported), zap.Int("failed", result.Failed))
	return result, nil
}

func (s *SyncService) importMeal(ctx context.Context, idMeal string) error {
	record, err := s.client.Lookup(ctx, idMeal)
	if err != nil {
		return err
	}
	if record == nil {
		return fmt.Errorf("meal %s not found upstream", idMeal)
	}

	ingredients, measures := record.Ingredients()
	meal := &models.Meal{
		MealDBID:     record.String("idMeal"),
		Name:         record.String("strMeal"),
		Category:     record.String("strCategory"),
		Area:         record.String("strArea"),
		Instructions: record.String("strInstructions"),
		Thumbnail:    record.String("strMealThumb"),
		Tags:         record.String("strTags"),
		Youtube:      record.String("strYoutube"),
		Ingredients:  ingredients,
		Measures:     measures,
		AICategory:   ClassifyDiet(record.String("strCategory"), ingredients),
	}

	return s.meals.Upsert(ctx, meal)
}
