package stepguide

import (
	"regexp"
	"strconv"
	"strings"
)

// Flame is a recommended burner level. The empty value means the text
// gave no usable heat cue.
type Flame string

const (
	FlameLow    Flame = "Low"
	FlameMedium Flame = "Medium"
	FlameHigh   Flame = "High"
)

// ParseFlame maps free-form text onto the closed flame set, returning ""
// for anything unrecognized
func ParseFlame(s string) Flame {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return FlameLow
	case "medium":
		return FlameMedium
	case "high":
		return FlameHigh
	}
	return ""
}

var (
	rangeMinutesRe = regexp.MustCompile(`([0-9]+)\s*-\s*([0-9]+)\s*(?:minutes|mins|min)\b`)
	rangeSecondsRe = regexp.MustCompile(`([0-9]+)\s*-\s*([0-9]+)\s*(?:seconds|secs|sec)\b`)
	minutesRe      = regexp.MustCompile(`(?:for|about|around|approximately)?\s*([0-9]+(?:[.,][0-9]+)?)\s*(?:minutes|minute|mins|min)\b`)
	secondsRe      = regexp.MustCompile(`(?:for|about|around|approximately)?\s*([0-9]+(?:[.,][0-9]+)?)\s*(?:seconds|second|secs|sec)\b`)
	shortFormRe    = regexp.MustCompile(`([0-9]+(?:[.,][0-9]+)?)\s*(?:m|min)\b`)
)

// ExtractDurationMinutes scans one instruction for a cooking duration and
// returns it in minutes. Rules are tried in a fixed priority order:
// minute ranges, second ranges, single minute values (hedge words like
// "about" tolerated, decimal comma accepted), single second values, then
// terse short forms like "3 min". The first rule that matches wins; ok is
// false when nothing matched.
func ExtractDurationMinutes(text string) (minutes float64, ok bool) {
	if text == "" {
		return 0, false
	}
	t := strings.ToLower(text)

	if m := rangeMinutesRe.FindStringSubmatch(t); m != nil {
		a, b := parseDecimal(m[1]), parseDecimal(m[2])
		return (a + b) / 2, true
	}
	if m := rangeSecondsRe.FindStringSubmatch(t); m != nil {
		a, b := parseDecimal(m[1]), parseDecimal(m[2])
		return ((a + b) / 2) / 60, true
	}
	if m := minutesRe.FindStringSubmatch(t); m != nil {
		return parseDecimal(m[1]), true
	}
	if m := secondsRe.FindStringSubmatch(t); m != nil {
		return parseDecimal(m[1]) / 60, true
	}
	if m := shortFormRe.FindStringSubmatch(t); m != nil {
		return parseDecimal(m[1]), true
	}
	return 0, false
}

func parseDecimal(s string) float64 {
	f, _ := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	return f
}

var (
	highRe     = regexp.MustCompile(`\b(high heat|high flame|high)\b`)
	oilRe      = regexp.MustCompile(`\boil\b`)
	mediumRe   = regexp.MustCompile(`\b(medium heat|medium flame|medium|moderate|rolling boil|gentle boil)\b`)
	lowRe      = regexp.MustCompile(`\b(low heat|low flame|simmer|gentle|gentle simmer|very low)\b`)
	simmerRe   = regexp.MustCompile(`\bsimmer\b`)
	bringBoilRe = regexp.MustCompile(`\bbring( to)? a boil\b`)
)

// ExtractFlameLevel classifies one instruction by keyword presence.
// High-heat cues (including frying oil) outrank medium cues, which
// outrank simmer/low cues; a bare "bring to a boil" is the last resort
// before giving up. A step mentioning both "simmer" and "bring to a
// boil" therefore resolves to Low.
func ExtractFlameLevel(text string) Flame {
	if text == "" {
		return ""
	}
	t := strings.ToLower(text)

	if highRe.MatchString(t) || oilRe.MatchString(t) {
		return FlameHigh
	}
	if mediumRe.MatchString(t) {
		return FlameMedium
	}
	if lowRe.MatchString(t) {
		return FlameLow
	}
	if simmerRe.MatchString(t) {
		return FlameLow
	}
	if bringBoilRe.MatchString(t) {
		return FlameHigh
	}
	return ""
}

var (
	tipSimmerRe = regexp.MustCompile(`\b(simmer|simmering)\b`)
	tipBoilRe   = regexp.MustCompile(`\b(boil|bring to a boil)\b`)
	tipFryRe    = regexp.MustCompile(`\b(fry|sauté|saute|fry until)\b`)
	tipBakeRe   = regexp.MustCompile(`\b(bake|roast)\b`)
)

const genericTip = "Times and heat are approximate - keep an eye on texture, color and aroma for best results."

// TipFor returns a short actionable hint for the step. It always returns
// a non-empty string; the generic tip covers steps with no recognized
// keyword.
func TipFor(text string) string {
	t := strings.ToLower(text)
	switch {
	case tipSimmerRe.MatchString(t):
		return "Simmer gently; don't let it boil aggressively to preserve flavor."
	case tipBoilRe.MatchString(t):
		return "Bring to a rolling boil, then lower the flame as instructed."
	case tipFryRe.MatchString(t):
		return "Use medium heat and keep stirring occasionally to avoid burning."
	case tipBakeRe.MatchString(t):
		return "Use appropriate oven temperature; oven times may vary."
	}
	return genericTip
}
