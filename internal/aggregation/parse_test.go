package aggregation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"poisurvey/internal/survey"
)

func TestParseList(t *testing.T) {
	tests := []struct {
		cell string
		want []string
	}{
		{``, []string{}},
		{`[]`, []string{}},
		{`["Reading","Music"]`, []string{"Reading", "Music"}},
		{`['Reading', 'Movies/TV', "Art & Museums"]`, []string{"Reading", "Movies/TV", "Art & Museums"}},
		{`['It\'s fine']`, []string{"It's fine"}},
	}
	for _, tt := range tests {
		got, err := ParseList(tt.cell)
		require.NoError(t, err, tt.cell)
		assert.Equal(t, tt.want, got, tt.cell)
	}

	for _, bad := range []string{`Reading, Music`, `['open`, `[Reading]`} {
		_, err := ParseList(bad)
		assert.Error(t, err, bad)
	}
}

func TestPreferenceScoreIsPure(t *testing.T) {
	for range 3 {
		s, ok := PreferenceScore("Version A")
		assert.True(t, ok)
		assert.Equal(t, 1.0, s)
	}
	s, ok := PreferenceScore("Version B")
	assert.True(t, ok)
	assert.Equal(t, -1.0, s)
	s, ok = PreferenceScore("Both equally")
	assert.True(t, ok)
	assert.Equal(t, 0.0, s)

	for _, v := range []string{"", "A", "B", "No Selection", "version a"} {
		_, ok := PreferenceScore(v)
		assert.False(t, ok, v)
	}
}

func TestLikertScore(t *testing.T) {
	s, ok := LikertScore(survey.RatingScale, "Strongly Agree")
	assert.True(t, ok)
	assert.Equal(t, 5.0, s)

	s, ok = LikertScore(survey.TrustScale, "Not at all")
	assert.True(t, ok)
	assert.Equal(t, 1.0, s)

	s, ok = LikertScore(survey.ClarityScale, "Neutral")
	assert.True(t, ok)
	assert.Equal(t, 3.0, s)

	_, ok = LikertScore(survey.TrustScale, "Agree")
	assert.False(t, ok)
}

func TestParseNumber(t *testing.T) {
	n, ok := ParseNumber("4")
	assert.True(t, ok)
	assert.Equal(t, 4.0, n)
	_, ok = ParseNumber("No Selection")
	assert.False(t, ok)
	_, ok = ParseNumber("")
	assert.False(t, ok)
}
