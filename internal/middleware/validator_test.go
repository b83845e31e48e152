package middleware

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateStartupName(t *testing.T) {
	assert.NoError(t, ValidateStartupName("PayFlow"))
	assert.Error(t, ValidateStartupName(""))
	assert.Error(t, ValidateStartupName("   "))
	assert.Error(t, ValidateStartupName(strings.Repeat("x", 81)))
}

func TestValidatePitch(t *testing.T) {
	assert.NoError(t, ValidatePitch("Instant payments for small businesses"))
	assert.Error(t, ValidatePitch(""))
	assert.NoError(t, ValidatePitch(strings.Repeat("x", 200)))
	assert.Error(t, ValidatePitch(strings.Repeat("x", 201)))
}

func TestValidateTimePeriod(t *testing.T) {
	tests := []struct {
		period string
		ok     bool
	}{
		{"", true},
		{"Last Month", true},
		{"Last 3 Months", true},
		{"Last 6 Months", true},
		{"Last Year", true},
		{"Any Time", true},
		{"Yesterday", false},
		{"last month", false},
	}
	for _, tc := range tests {
		t.Run(tc.period, func(t *testing.T) {
			err := ValidateTimePeriod(tc.period)
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidateRegion(t *testing.T) {
	assert.NoError(t, ValidateRegion(""))
	assert.NoError(t, ValidateRegion("Global"))
	assert.NoError(t, ValidateRegion("Indonesia"))
	assert.Error(t, ValidateRegion("Mars"))
}

func TestValidateAnalysisID(t *testing.T) {
	assert.NoError(t, ValidateAnalysisID("a3bb1890-6d7f-4cde-9121-ab1234567890"))
	assert.Error(t, ValidateAnalysisID(""))
	assert.Error(t, ValidateAnalysisID("not-a-uuid"))
	assert.Error(t, ValidateAnalysisID("A3BB1890-6D7F-4CDE-9121-AB1234567890"))
}

func TestSanitizeString(t *testing.T) {
	assert.Equal(t, "hello world", SanitizeString("hello\x00 world"))
	assert.Equal(t, "tabbed\tok", SanitizeString("  tabbed\tok \x07 "))
}

func TestValidateLimitAndDays(t *testing.T) {
	assert.Equal(t, 20, ValidateLimit(0))
	assert.Equal(t, 100, ValidateLimit(500))
	assert.Equal(t, 42, ValidateLimit(42))

	assert.Equal(t, 7, ValidateDays(-1))
	assert.Equal(t, 365, ValidateDays(1000))
	assert.Equal(t, 30, ValidateDays(30))
}
