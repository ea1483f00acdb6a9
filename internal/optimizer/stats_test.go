package optimizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarizeEmpty(t *testing.T) {
	assert.Nil(t, Summarize(nil))
	assert.Nil(t, Summarize([]Item{}))
}

func TestSummarize(t *testing.T) {
	items := []Item{
		{"A", 2000, 1500},
		{"B", 4000, 3500},
		{"C", 5000, 4000},
		{"D", 3000, 2500},
	}

	s := Summarize(items)
	require.NotNil(t, s)

	assert.Equal(t, 4, s.Count)
	assert.Equal(t, 14000, s.TotalCost)
	assert.Equal(t, 11500, s.TotalBenefit)
	assert.InDelta(t, 3500.0, s.MeanCost, 1e-9)
	assert.InDelta(t, 2875.0, s.MeanBenefit, 1e-9)
	// (0.75 + 0.875 + 0.8 + 0.8333...) / 4
	assert.InDelta(t, 0.81458333, s.MeanRatio, 1e-6)
	assert.Equal(t, 2000, s.MinCost)
	assert.Equal(t, 5000, s.MaxCost)
	assert.Equal(t, 1500, s.MinBenefit)
	assert.Equal(t, 4000, s.MaxBenefit)
}

func TestSummarizeSingleItem(t *testing.T) {
	s := Summarize([]Item{{"solo", 4, 10}})
	require.NotNil(t, s)

	assert.Equal(t, 1, s.Count)
	assert.InDelta(t, 2.5, s.MeanRatio, 1e-9)
	assert.Equal(t, s.MinCost, s.MaxCost)
	assert.Equal(t, s.MinBenefit, s.MaxBenefit)
}
