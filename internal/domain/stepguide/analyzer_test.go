package stepguide

import (
	"context"
	"errors"
	"testing"

	"github.com/dishcovery/dishcovery/internal/infrastructure/config"
	"github.com/dishcovery/dishcovery/internal/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New(config.LoggingConfig{Level: "error", Format: "console", Output: "stdout"})
	require.NoError(t, err)
	return log
}

// stubAugmenter returns a canned augmentation or error
type stubAugmenter struct {
	aug *Augmentation
	err error
}

func (s *stubAugmenter) Suggest(_ context.Context, _, _ string) (*Augmentation, error) {
	return s.aug, s.err
}

func TestAnalyzeWithoutAugmenter(t *testing.T) {
	a := NewAnalyzer(nil, testLogger(t))

	got := a.Analyze(context.Background(), "simmer for 10-12 minutes", "")

	assert.NotEmpty(t, got.Tip)
	require.NotNil(t, got.EstimatedTimeMinutes)
	assert.InDelta(t, 11, *got.EstimatedTimeMinutes, 1e-9)
	assert.Equal(t, FlameLow, got.FlameLevel)
	require.NotNil(t, got.Raw)
	assert.Nil(t, got.Raw.AI)
}

func TestAnalyzeNoPatternStillReturnsTip(t *testing.T) {
	a := NewAnalyzer(nil, testLogger(t))

	got := a.Analyze(context.Background(), "mix well", "English")

	assert.NotEmpty(t, got.Tip)
	assert.Nil(t, got.EstimatedTimeMinutes)
	assert.Equal(t, Flame(""), got.FlameLevel)
}

func TestAnalyzeAugmenterErrorFallsBack(t *testing.T) {
	a := NewAnalyzer(&stubAugmenter{err: errors.New("service down")}, testLogger(t))

	got := a.Analyze(context.Background(), "boil for 5 minutes", "English")

	assert.Equal(t, "Bring to a rolling boil, then lower the flame as instructed.", got.Tip)
	require.NotNil(t, got.EstimatedTimeMinutes)
	assert.InDelta(t, 5, *got.EstimatedTimeMinutes, 1e-9)
	require.NotNil(t, got.Raw)
	assert.Nil(t, got.Raw.AI)
}

func TestAnalyzeMergePrefersPresentAugmentedValues(t *testing.T) {
	mins := 7.0
	a := NewAnalyzer(&stubAugmenter{aug: &Augmentation{
		EstimatedTimeMinutes: &mins,
		FlameLevel:           "Medium",
		Tip:                  "Stir continuously.",
	}}, testLogger(t))

	got := a.Analyze(context.Background(), "boil for 5 minutes", "English")

	assert.Equal(t, "Stir continuously.", got.Tip)
	require.NotNil(t, got.EstimatedTimeMinutes)
	assert.InDelta(t, 7, *got.EstimatedTimeMinutes, 1e-9)
	assert.Equal(t, FlameMedium, got.FlameLevel)
	require.NotNil(t, got.Raw)
	assert.NotNil(t, got.Raw.AI)
}

func TestAnalyzeMergeNeverLosesHeuristicValues(t *testing.T) {
	// Augmentation with empty tip, unknown flame, and no duration must
	// leave the heuristic triple intact.
	a := NewAnalyzer(&stubAugmenter{aug: &Augmentation{
		FlameLevel: "scorching",
	}}, testLogger(t))

	got := a.Analyze(context.Background(), "simmer for 3 minutes", "English")

	assert.Equal(t, "Simmer gently; don't let it boil aggressively to preserve flavor.", got.Tip)
	require.NotNil(t, got.EstimatedTimeMinutes)
	assert.InDelta(t, 3, *got.EstimatedTimeMinutes, 1e-9)
	assert.Equal(t, FlameLow, got.FlameLevel)
}

func TestAnalyzeNilAugmentationIsDegradedMode(t *testing.T) {
	a := NewAnalyzer(&stubAugmenter{}, testLogger(t))

	got := a.Analyze(context.Background(), "fry the onions in oil", "English")

	assert.Equal(t, FlameHigh, got.FlameLevel)
	assert.NotEmpty(t, got.Tip)
	require.NotNil(t, got.Raw)
	assert.Nil(t, got.Raw.AI)
}
