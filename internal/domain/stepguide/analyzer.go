package stepguide

import (
	"context"
	"encoding/json"

	"github.com/dishcovery/dishcovery/internal/pkg/logger"
	"go.uber.org/zap"
)

// Analysis is the result of analyzing one cooking step. Tip is always
// populated; the other fields are nil/empty when neither the heuristics
// nor the augmentation produced a value.
type Analysis struct {
	Tip                  string   `json:"tip"`
	EstimatedTimeMinutes *float64 `json:"estimated_time"`
	FlameLevel           Flame    `json:"flame_level,omitempty"`
	Raw                  *Debug   `json:"raw,omitempty"`
}

// Debug carries the heuristic intermediates and, when the augmentation
// ran, its parsed output. Diagnostic only.
type Debug struct {
	Heuristics HeuristicResult `json:"heuristics"`
	AI         *Augmentation   `json:"ai,omitempty"`
}

// HeuristicResult is the deterministic pass over the step text
type HeuristicResult struct {
	ExtractedMinutes *float64 `json:"extracted_minutes"`
	ExtractedFlame   Flame    `json:"extracted_flame,omitempty"`
	SimpleTip        string   `json:"simple_tip"`
}

// Augmentation is what the external text-generation service suggested
// for a step. Any field may be absent; absent fields never override the
// heuristic result.
type Augmentation struct {
	EstimatedTimeMinutes *float64        `json:"estimated_time_minutes"`
	FlameLevel           string          `json:"flame_level,omitempty"`
	Tip                  string          `json:"tip,omitempty"`
	RawResponse          json.RawMessage `json:"raw_response,omitempty"`
	RawText              string          `json:"raw_text,omitempty"`
}

// Augmenter is the optional external refinement service. Implementations
// must honor ctx cancellation and bound their own request time; errors
// are treated as "no augmentation available", never surfaced to callers.
type Augmenter interface {
	Suggest(ctx context.Context, stepText, language string) (*Augmentation, error)
}

// Analyzer turns one free-text cooking instruction into a timer estimate,
// a flame level, and a tip. The deterministic heuristics always run to
// completion first, so a usable fallback exists before the augmentation
// call is even attempted.
type Analyzer struct {
	augmenter Augmenter // nil when augmentation is not configured
	logger    *logger.Logger
}

// NewAnalyzer creates an Analyzer. Pass a nil augmenter to run on
// heuristics alone; that is a fully supported configuration, not an
// error state.
func NewAnalyzer(augmenter Augmenter, log *logger.Logger) *Analyzer {
	return &Analyzer{
		augmenter: augmenter,
		logger:    log.WithComponent("stepguide"),
	}
}

// Analyze never fails: the worst case is the pure heuristic result.
func (a *Analyzer) Analyze(ctx context.Context, stepText, language string) Analysis {
	if language == "" {
		language = "English"
	}

	heur := HeuristicResult{
		ExtractedFlame: ExtractFlameLevel(stepText),
		SimpleTip:      TipFor(stepText),
	}
	if mins, ok := ExtractDurationMinutes(stepText); ok {
		heur.ExtractedMinutes = &mins
	}

	result := Analysis{
		Tip:                  heur.SimpleTip,
		EstimatedTimeMinutes: heur.ExtractedMinutes,
		FlameLevel:           heur.ExtractedFlame,
		Raw:                  &Debug{Heuristics: heur},
	}

	if a.augmenter == nil {
		return result
	}

	aug, err := a.augmenter.Suggest(ctx, stepText, language)
	if err != nil {
		a.logger.Warn("step augmentation failed, using heuristics", zap.Error(err))
		return result
	}
	if aug == nil {
		return result
	}

	result.Raw.AI = aug

	// Augmented values win only when present; a missing or non-numeric
	// duration must not clobber the heuristic one.
	if aug.Tip != "" {
		result.Tip = aug.Tip
	}
	if flame := ParseFlame(aug.FlameLevel); flame != "" {
		result.FlameLevel = flame
	}
	if aug.EstimatedTimeMinutes != nil {
		result.EstimatedTimeMinutes = aug.EstimatedTimeMinutes
	}

	return result
}
