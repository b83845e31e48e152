package middleware

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/bryanwahyu/rivalscan/internal/domain/analysis"
)

// Input validation and sanitization utilities

const (
	maxStartupNameLen = 80
	maxPitchLen       = 200
)

// ValidateStartupName checks the startup name form field
func ValidateStartupName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("startup name cannot be empty")
	}
	if utf8.RuneCountInString(name) > maxStartupNameLen {
		return fmt.Errorf("startup name too long (max %d characters)", maxStartupNameLen)
	}
	return nil
}

// ValidatePitch checks the pitch form field
func ValidatePitch(pitch string) error {
	pitch = strings.TrimSpace(pitch)
	if pitch == "" {
		return fmt.Errorf("pitch cannot be empty")
	}
	if utf8.RuneCountInString(pitch) > maxPitchLen {
		return fmt.Errorf("pitch too long (max %d characters)", maxPitchLen)
	}
	return nil
}

// ValidateTimePeriod checks the period against the supported options. Empty
// is fine, the service defaults it.
func ValidateTimePeriod(period string) error {
	if period == "" {
		return nil
	}
	for _, p := range analysis.Periods() {
		if analysis.TimePeriod(period) == p {
			return nil
		}
	}
	return fmt.Errorf("invalid time period: %s", period)
}

// ValidateRegion checks the region against the supported options
func ValidateRegion(region string) error {
	if region == "" {
		return nil
	}
	for _, r := range analysis.Regions() {
		if analysis.Region(region) == r {
			return nil
		}
	}
	return fmt.Errorf("invalid region: %s", region)
}

// ValidateAnalysisID validates analysis ID format
func ValidateAnalysisID(id string) error {
	if id == "" {
		return fmt.Errorf("analysis ID cannot be empty")
	}

	// UUID pattern
	pattern := `^[a-f0-9]{8}-[a-f0-9]{4}-[a-f0-9]{4}-[a-f0-9]{4}-[a-f0-9]{12}$`
	matched, _ := regexp.MatchString(pattern, id)
	if !matched {
		return fmt.Errorf("invalid analysis ID format")
	}

	return nil
}

// SanitizeString removes dangerous characters from strings
func SanitizeString(input string) string {
	// Remove null bytes
	input = strings.ReplaceAll(input, "\x00", "")

	// Remove control characters
	var result strings.Builder
	for _, r := range input {
		if r >= 32 || r == '\t' || r == '\n' {
			result.WriteRune(r)
		}
	}

	return strings.TrimSpace(result.String())
}

// ValidateLimit validates pagination limit
func ValidateLimit(limit int) int {
	if limit <= 0 {
		return 20 // default
	}
	if limit > 100 {
		return 100 // max limit
	}
	return limit
}

// ValidateDays validates days parameter
func ValidateDays(days int) int {
	if days <= 0 {
		return 7 // default
	}
	if days > 365 {
		return 365 // max 1 year
	}
	return days
}
