package planning

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// estimatePattern matches estimate strings like "4h", "2d", "1w", "30m"
var estimatePattern = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*(m|h|d|w)$`)

// Duration constants for estimates
const (
	MinutesPerHour = 60
	HoursPerDay    = 8 // Assume 8-hour work day
	DaysPerWeek    = 5 // Assume 5-day work week
)

// Estimate represents a time estimate for a task.
type Estimate struct {
	raw      string
	duration time.Duration
}

// ParseEstimate parses a string estimate into an Estimate value object.
// Supported formats: "30m", "4h", "2d", "1w"
func ParseEstimate(s string) (Estimate, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return Estimate{}, nil // Empty estimate is valid
	}

	matches := estimatePattern.FindStringSubmatch(s)
	if matches == nil {
		return Estimate{}, fmt.Errorf("invalid estimate format: %s (expected: 30m, 4h, 2d, or 1w)", s)
	}

	value, err := strconv.ParseFloat(matches[1], 64)
	if err != nil {
		return Estimate{}, fmt.Errorf("invalid estimate value: %s", matches[1])
	}

	unit := matches[2]
	var duration time.Duration

	switch unit {
	case "m":
		duration = time.Duration(value * float64(time.Minute))
	case "h":
		duration = time.Duration(value * float64(time.Hour))
	case "d":
		duration = time.Duration(value * float64(HoursPerDay) * float64(time.Hour))
	case "w":
		duration = time.Duration(value * float64(DaysPerWeek) * float64(HoursPerDay) * float64(time.Hour))
	}

	return Estimate{raw: s, duration: duration}, nil
}

// MustParseEstimate parses an estimate or panics. Use only in tests.
func MustParseEstimate(s string) Estimate {
	e, err := ParseEstimate(s)
	if err != nil {
		panic(err)
	}
	return e
}

// EstimateFromMinutes builds an Estimate from a raw minute count.
func EstimateFromMinutes(minutes int) Estimate {
	if minutes <= 0 {
		return Estimate{}
	}
	return Estimate{
		raw:      fmt.Sprintf("%dm", minutes),
		duration: time.Duration(minutes) * time.Minute,
	}
}

// String returns the original string representation of the estimate.
func (e Estimate) String() string {
	return e.raw
}

// Duration returns the duration of the estimate.
func (e Estimate) Duration() time.Duration {
	return e.duration
}

// Minutes returns the estimate as whole minutes.
func (e Estimate) Minutes() int {
	return int(e.duration / time.Minute)
}

// Hours returns the estimate in hours.
func (e Estimate) Hours() float64 {
	return e.duration.Hours()
}

// Days returns the estimate in work days (8-hour days).
func (e Estimate) Days() float64 {
	return e.duration.Hours() / float64(HoursPerDay)
}

// IsZero returns true if the estimate is empty.
func (e Estimate) IsZero() bool {
	return e.raw == ""
}
