package stepguide

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractDurationMinutes(t *testing.T) {
	cases := []struct {
		text string
		want float64
		ok   bool
	}{
		{"boil for 10-12 minutes", 11, true},
		{"microwave for 30-40 seconds", 35.0 / 60, true},
		{"simmer for 90 seconds", 1.5, true},
		{"cook for 5 minutes", 5, true},
		{"stir for about 2.5 minutes", 2.5, true},
		{"rest for approximately 1,5 minutes", 1.5, true},
		{"fry for 45 seconds", 0.75, true},
		{"boil 3 min", 3, true},
		{"Bake for 20 Minutes at 180C", 20, true},
		{"mix well", 0, false},
		{"", 0, false},
	}

	for _, tc := range cases {
		got, ok := ExtractDurationMinutes(tc.text)
		require.Equal(t, tc.ok, ok, "input %q", tc.text)
		if ok {
			assert.InDelta(t, tc.want, got, 1e-9, "input %q", tc.text)
		}
	}
}

func TestExtractDurationRangeBeatsSingle(t *testing.T) {
	// The range rule must win even though "12 minutes" alone would also
	// match the single-value rule.
	got, ok := ExtractDurationMinutes("simmer for 10-12 minutes, stirring")
	require.True(t, ok)
	assert.InDelta(t, 11, got, 1e-9)

	// A seconds range outranks a later single minutes value.
	got, ok = ExtractDurationMinutes("blanch 30-60 secs then chill 5 minutes")
	require.True(t, ok)
	assert.InDelta(t, 0.75, got, 1e-9)
}

func TestExtractFlameLevel(t *testing.T) {
	cases := []struct {
		text string
		want Flame
	}{
		{"heat the oil on high flame", FlameHigh},
		{"cook on high heat", FlameHigh},
		{"add the oil to the pan", FlameHigh},
		{"keep at medium heat", FlameMedium},
		{"a moderate flame works best", FlameMedium},
		{"maintain a rolling boil", FlameMedium},
		{"let it simmer gently", FlameLow},
		{"reduce to low heat", FlameLow},
		{"simmer until thick", FlameLow},
		{"bring to a boil", FlameHigh},
		{"bring a boil", FlameHigh},
		{"chop the onions finely", ""},
		{"", ""},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, ExtractFlameLevel(tc.text), "input %q", tc.text)
	}
}

func TestExtractFlameLevelPriorityChain(t *testing.T) {
	// Simmer cues outrank the generic "bring to a boil" fallback.
	assert.Equal(t, FlameLow, ExtractFlameLevel("bring to a boil, then simmer"))
	// High-heat cues outrank everything.
	assert.Equal(t, FlameHigh, ExtractFlameLevel("heat oil, then simmer"))
}

func TestTipForAlwaysReturnsSomething(t *testing.T) {
	assert.NotEmpty(t, TipFor("simmer the sauce"))
	assert.NotEmpty(t, TipFor("bake at 200C"))
	assert.NotEmpty(t, TipFor("saute the garlic"))
	assert.NotEmpty(t, TipFor("boil the pasta"))
	assert.NotEmpty(t, TipFor("mix well"))
	assert.NotEmpty(t, TipFor(""))

	// Keyword tips differ from the generic fallback
	assert.NotEqual(t, TipFor("mix well"), TipFor("simmer the sauce"))
}

func TestParseFlame(t *testing.T) {
	assert.Equal(t, FlameLow, ParseFlame("low"))
	assert.Equal(t, FlameMedium, ParseFlame(" Medium "))
	assert.Equal(t, FlameHigh, ParseFlame("HIGH"))
	assert.Equal(t, Flame(""), ParseFlame("blazing"))
	assert.Equal(t, Flame(""), ParseFlame(""))
}
