package planning_test

import (
	"testing"
	"time"

	"github.com/felixgeelhaar/planalyze/pkg/domain/planning"
)

func TestParseEstimate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Duration
		wantErr bool
	}{
		{name: "minutes", input: "30m", want: 30 * time.Minute},
		{name: "hours", input: "4h", want: 4 * time.Hour},
		{name: "days", input: "2d", want: 16 * time.Hour},
		{name: "weeks", input: "1w", want: 40 * time.Hour},
		{name: "fractional hours", input: "1.5h", want: 90 * time.Minute},
		{name: "uppercase", input: "4H", want: 4 * time.Hour},
		{name: "inner whitespace", input: "4 h", want: 4 * time.Hour},
		{name: "surrounding whitespace", input: "  4h  ", want: 4 * time.Hour},
		{name: "empty is valid", input: "", want: 0},
		{name: "unknown unit", input: "4x", wantErr: true},
		{name: "missing value", input: "h", wantErr: true},
		{name: "negative value", input: "-4h", wantErr: true},
		{name: "trailing garbage", input: "4h later", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := planning.ParseEstimate(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseEstimate(%q) succeeded, want error", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseEstimate(%q) error: %v", tt.input, err)
			}
			if e.Duration() != tt.want {
				t.Errorf("Duration() = %v, want %v", e.Duration(), tt.want)
			}
		})
	}
}

func TestEstimateFromMinutes(t *testing.T) {
	e := planning.EstimateFromMinutes(150)

	if e.Minutes() != 150 {
		t.Errorf("Minutes() = %d, want 150", e.Minutes())
	}
	if e.Hours() != 2.5 {
		t.Errorf("Hours() = %v, want 2.5", e.Hours())
	}
	if e.String() != "150m" {
		t.Errorf("String() = %q, want 150m", e.String())
	}

	if !planning.EstimateFromMinutes(0).IsZero() {
		t.Error("zero minutes should yield a zero estimate")
	}
	if !planning.EstimateFromMinutes(-10).IsZero() {
		t.Error("negative minutes should yield a zero estimate")
	}
}

func TestEstimateDays(t *testing.T) {
	e := planning.MustParseEstimate("2d")
	if e.Days() != 2 {
		t.Errorf("Days() = %v, want 2", e.Days())
	}
}
