package classify

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeywordClassifierIndustries(t *testing.T) {
	tests := []struct {
		name    string
		startup string
		pitch   string
		want    []string
	}{
		{
			name:    "ranked by match count",
			startup: "MediTrack",
			pitch:   "AI platform using machine learning for healthcare diagnosis and clinical workflow automation in the cloud",
			want:    []string{"Healthcare Technology", "AI and Machine Learning", "Enterprise Software"},
		},
		{
			name:    "tie keeps taxonomy order",
			startup: "PayBird",
			pitch:   "banking app",
			want:    []string{"Financial Technology", "Mobile Applications"},
		},
		{
			name:    "no match falls back to default triad",
			startup: "Acme",
			pitch:   "we make things better",
			want:    []string{"Technology", "Software", "Consumer"},
		},
	}

	c := KeywordClassifier{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.Industries(context.Background(), tt.startup, tt.pitch)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestKeywordClassifierNeverExceedsThree(t *testing.T) {
	pitch := "ai fintech health shopping saas education security energy iot mobile banking learning cloud app"
	got, err := KeywordClassifier{}.Industries(context.Background(), "Everything", pitch)
	require.NoError(t, err)
	assert.Len(t, got, 3)
}
