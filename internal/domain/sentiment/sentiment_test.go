package sentiment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLabelBands(t *testing.T) {
	tests := []struct {
		score     float64
		wantEmoji string
		wantLabel string
	}{
		{0.6, "🤩", "Very Positive"},
		{0.5, "🤩", "Very Positive"},
		{0.1, "😊", "Positive"},
		{0.0, "😐", "Neutral"},
		{-0.3, "😕", "Negative"},
		{-0.5, "😢", "Very Negative"},
		{-0.7, "😢", "Very Negative"},
	}
	for _, tt := range tests {
		emoji, label := Label(tt.score)
		assert.Equal(t, tt.wantEmoji, emoji, "score %v", tt.score)
		assert.Equal(t, tt.wantLabel, label, "score %v", tt.score)
	}
}

func TestTrend(t *testing.T) {
	assert.Equal(t, "Positive", Trend(0.2))
	assert.Equal(t, "Negative", Trend(-0.01))
	assert.Equal(t, "Neutral", Trend(0))
}

func TestMean(t *testing.T) {
	assert.Equal(t, 0.0, Mean(nil))
	assert.InDelta(t, 0.25, Mean([]float64{0.5, 0.0}), 1e-9)
}

func TestClean(t *testing.T) {
	got := Clean("Check https://example.com/x?y=1 NOW, it's #1!")
	assert.Equal(t, "check  now its 1", got)
}

func TestScoreSign(t *testing.T) {
	assert.Greater(t, Score("I love this amazing, wonderful product"), 0.0)
	assert.Less(t, Score("terrible awful horrible experience"), 0.0)
	assert.Equal(t, 0.0, Score("https://example.com"))
	scored := Score("great hardware with a disappointing battery")
	assert.GreaterOrEqual(t, scored, -1.0)
	assert.LessOrEqual(t, scored, 1.0)
}
