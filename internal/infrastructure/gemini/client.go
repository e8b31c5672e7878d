package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/dishcovery/dishcovery/internal/domain/stepguide"
	"github.com/dishcovery/dishcovery/internal/infrastructure/config"
	"github.com/dishcovery/dishcovery/internal/pkg/logger"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const defaultTimeout = 5 * time.Second

// Client calls an external text-generation endpoint to refine step
// analysis. It implements stepguide.Augmenter. Every failure mode
// (network, non-2xx, unparsable body) comes back as an error that the
// analyzer swallows; this client never needs to succeed.
type Client struct {
	http   *resty.Client
	config config.GeminiConfig
	logger *logger.Logger
}

// NewClient creates a new augmentation client
func NewClient(cfg config.GeminiConfig, log *logger.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	httpClient := resty.New().
		SetTimeout(timeout).
		SetAuthToken(cfg.APIKey).
		SetHeader("Content-Type", "application/json")

	return &Client{
		http:   httpClient,
		config: cfg,
		logger: log.WithComponent("gemini"),
	}
}

type generateRequest struct {
	Prompt      string  `json:"prompt"`
	Model       string  `json:"model,omitempty"`
	MaxTokens   int     `json:"maxTokens,omitempty"`
	Temperature float64 `json:"temperature,omitempty"`
}

// Suggest asks the service for a strict JSON refinement of one step.
func (c *Client) Suggest(ctx context.Context, stepText, language string) (*stepguide.Augmentation, error) {
	if c.config.Endpoint == "" || c.config.APIKey == "" {
		return nil, nil
	}

	prompt := fmt.Sprintf(`Extract (if present) duration in minutes and a recommended flame level (Low, Medium, High) from the following cooking step.
Answer in %s.
Return ONLY a JSON object with keys: "estimated_time_minutes" (number or null), "flame_level" (one of "Low","Medium","High" or null), and "tip" (short string).
Input: """%s"""`, language, stepText)

	req := generateRequest{
		Prompt:      prompt,
		Model:       c.config.Model,
		MaxTokens:   250,
		Temperature: 0.2,
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(req).
		Post(c.config.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("augmentation request failed: %w", err)
	}
	if resp.IsError() {
		c.logger.Warn("augmentation service returned error status",
			zap.Int("status", resp.StatusCode()),
			zap.Int("body_len", len(resp.Body())),
		)
		return nil, fmt.Errorf("augmentation service status %d", resp.StatusCode())
	}

	return parseAugmentation(resp.Body()), nil
}

// envelopeStrategy extracts the generated text from one known response
// envelope shape. Strategies are tried in order; the first success wins.
type envelopeStrategy func(map[string]any) (string, bool)

var envelopeStrategies = []envelopeStrategy{
	func(m map[string]any) (string, bool) { s, ok := m["outputText"].(string); return s, ok && s != "" },
	func(m map[string]any) (string, bool) { s, ok := m["result"].(string); return s, ok && s != "" },
	func(m map[string]any) (string, bool) {
		s, ok := firstElement(m, "choices", "text")
		return s, ok
	},
	func(m map[string]any) (string, bool) {
		choices, ok := m["choices"].([]any)
		if !ok || len(choices) == 0 {
			return "", false
		}
		choice, ok := choices[0].(map[string]any)
		if !ok {
			return "", false
		}
		message, ok := choice["message"].(map[string]any)
		if !ok {
			return "", false
		}
		s, ok := message["content"].(string)
		return s, ok && s != ""
	},
	func(m map[string]any) (string, bool) {
		s, ok := firstElement(m, "candidates", "content")
		return s, ok
	},
}

func firstElement(m map[string]any, listKey, textKey string) (string, bool) {
	list, ok := m[listKey].([]any)
	if !ok || len(list) == 0 {
		return "", false
	}
	item, ok := list[0].(map[string]any)
	if !ok {
		return "", false
	}
	s, ok := item[textKey].(string)
	return s, ok && s != ""
}

var jsonObjectRe = regexp.MustCompile(`(?s)\{.*\}`)

// parseAugmentation tolerantly digs the model's JSON answer out of
// whatever envelope the service wrapped it in. It always returns a
// non-nil Augmentation; fields it could not recover stay empty.
func parseAugmentation(body []byte) *stepguide.Augmentation {
	generated := string(body)

	var envelope map[string]any
	if err := json.Unmarshal(body, &envelope); err == nil {
		for _, strategy := range envelopeStrategies {
			if text, ok := strategy(envelope); ok {
				generated = text
				break
			}
		}
	}

	aug := &stepguide.Augmentation{
		RawResponse: json.RawMessage(body),
		RawText:     generated,
	}

	match := jsonObjectRe.FindString(generated)
	if match == "" {
		// No JSON anywhere; treat the whole generation as a tip
		aug.Tip = strings.TrimSpace(generated)
		return aug
	}

	var parsed map[string]any
	if err := json.Unmarshal([]byte(match), &parsed); err != nil {
		return aug
	}

	aug.EstimatedTimeMinutes = floatField(parsed, "estimated_time_minutes", "estimated_time")
	aug.FlameLevel = stringField(parsed, "flame_level", "heat")
	aug.Tip = stringField(parsed, "tip", "advice")
	return aug
}

// floatField reads the first present key as a number, accepting numeric
// strings. Non-numeric values are ignored rather than coerced.
func floatField(m map[string]any, keys ...string) *float64 {
	for _, key := range keys {
		v, ok := m[key]
		if !ok || v == nil {
			continue
		}
		switch t := v.(type) {
		case float64:
			return &t
		case string:
			if f, err := strconv.ParseFloat(strings.TrimSpace(t), 64); err == nil {
				return &f
			}
		}
	}
	return nil
}

func stringField(m map[string]any, keys ...string) string {
	for _, key := range keys {
		if s, ok := m[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}
