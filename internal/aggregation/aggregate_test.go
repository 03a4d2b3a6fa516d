package aggregation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregateUsers_FirstNonEmptyDemographics(t *testing.T) {
	processed := &Table{Rows: []Row{
		{"user_id": "u1", "city": "", "engaging_preference_score": "1"},
		{"user_id": "u1", "city": "Rome", "engaging_preference_score": "1"},
		{"user_id": "u1", "city": "Milan", "engaging_preference_score": "-1"},
		{"user_id": "", "city": "Nowhere"},
	}}

	users := AggregateUsers(processed)
	require.Len(t, users, 1)
	assert.Equal(t, "Rome", users[0]["city"])
	assert.Equal(t, "3", users[0]["response_count"])
	assert.Equal(t, "0.3333", users[0]["engaging_preference_score"])
	assert.Equal(t, "", users[0]["manual_trust"])
}

func TestColumnMean(t *testing.T) {
	tbl := &Table{Rows: []Row{{"x": "1"}, {"x": ""}, {"x": "4"}}}
	m, ok := ColumnMean(tbl, "x")
	require.True(t, ok)
	assert.InDelta(t, 2.5, m, 1e-9)

	_, ok = ColumnMean(tbl, "y")
	assert.False(t, ok)
}

func TestUserAggregateColumns(t *testing.T) {
	cols := UserAggregateColumns()
	assert.Equal(t, "user_id", cols[0])
	assert.Equal(t, "response_count", cols[len(cols)-1])
	assert.Contains(t, cols, "description_preference_score")
	assert.Contains(t, cols, "ai_clarity")
}
