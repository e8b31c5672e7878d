package gemini

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

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

func TestParseAugmentationEnvelopes(t *testing.T) {
	inner := `{"estimated_time_minutes": 4, "flame_level": "Medium", "tip": "Watch the edges."}`

	cases := map[string]string{
		"outputText":      `{"outputText": "` + escaped(inner) + `"}`,
		"result":          `{"result": "` + escaped(inner) + `"}`,
		"choices text":    `{"choices": [{"text": "` + escaped(inner) + `"}]}`,
		"choices message": `{"choices": [{"message": {"role": "assistant", "content": "` + escaped(inner) + `"}}]}`,
		"candidates":      `{"candidates": [{"content": "` + escaped(inner) + `"}]}`,
		"bare object":     inner,
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			aug := parseAugmentation([]byte(body))
			require.NotNil(t, aug)
			require.NotNil(t, aug.EstimatedTimeMinutes, "envelope %s", name)
			assert.InDelta(t, 4, *aug.EstimatedTimeMinutes, 1e-9)
			assert.Equal(t, "Medium", aug.FlameLevel)
			assert.Equal(t, "Watch the edges.", aug.Tip)
		})
	}
}

func escaped(s string) string {
	out := ""
	for _, r := range s {
		if r == '"' {
			out += `\"`
			continue
		}
		out += string(r)
	}
	return out
}

func TestParseAugmentationKeyAliases(t *testing.T) {
	aug := parseAugmentation([]byte(`{"estimated_time": "2.5", "heat": "Low", "advice": "Keep covered."}`))
	require.NotNil(t, aug.EstimatedTimeMinutes)
	assert.InDelta(t, 2.5, *aug.EstimatedTimeMinutes, 1e-9)
	assert.Equal(t, "Low", aug.FlameLevel)
	assert.Equal(t, "Keep covered.", aug.Tip)
}

func TestParseAugmentationNonNumericDurationIgnored(t *testing.T) {
	aug := parseAugmentation([]byte(`{"estimated_time_minutes": "a while", "flame_level": "High", "tip": "Careful."}`))
	assert.Nil(t, aug.EstimatedTimeMinutes)
	assert.Equal(t, "High", aug.FlameLevel)
}

func TestParseAugmentationNoJSONBecomesTip(t *testing.T) {
	aug := parseAugmentation([]byte(`just keep stirring until golden`))
	assert.Nil(t, aug.EstimatedTimeMinutes)
	assert.Empty(t, aug.FlameLevel)
	assert.Equal(t, "just keep stirring until golden", aug.Tip)
}

func TestSuggestUnconfiguredReturnsNothing(t *testing.T) {
	c := NewClient(config.GeminiConfig{}, testLogger(t))
	aug, err := c.Suggest(context.Background(), "boil for 5 minutes", "English")
	assert.NoError(t, err)
	assert.Nil(t, aug)
}

func TestSuggestHappyPath(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"outputText": "{\"estimated_time_minutes\": 8, \"flame_level\": \"High\", \"tip\": \"Preheat first.\"}"}`))
	}))
	defer srv.Close()

	c := NewClient(config.GeminiConfig{
		Endpoint: srv.URL,
		APIKey:   "test-key",
		Model:    "gemini-1.5-flash",
		Timeout:  2 * time.Second,
	}, testLogger(t))

	aug, err := c.Suggest(context.Background(), "sear the steak", "English")
	require.NoError(t, err)
	require.NotNil(t, aug)
	require.NotNil(t, aug.EstimatedTimeMinutes)
	assert.InDelta(t, 8, *aug.EstimatedTimeMinutes, 1e-9)
	assert.Equal(t, "High", aug.FlameLevel)
	assert.Equal(t, "Preheat first.", aug.Tip)
}

func TestSuggestNon2xxIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewClient(config.GeminiConfig{Endpoint: srv.URL, APIKey: "k", Timeout: time.Second}, testLogger(t))
	aug, err := c.Suggest(context.Background(), "boil water", "English")
	assert.Error(t, err)
	assert.Nil(t, aug)
}

func TestSuggestHonorsContextCancellation(t *testing.T) {
	blocked := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-blocked
	}))
	defer srv.Close()
	defer close(blocked)

	c := NewClient(config.GeminiConfig{Endpoint: srv.URL, APIKey: "k", Timeout: 10 * time.Second}, testLogger(t))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := c.Suggest(ctx, "boil water", "English")
	assert.Error(t, err)
}
