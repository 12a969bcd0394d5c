package clubbook

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		input    string
		expected Date
		err      bool
	}{
		{"2025-01-15", NewDate(2025, time.January, 15), false},
		{"2025-7-1", NewDate(2025, time.July, 1), false},
		{"2021-04-01T00:00:00Z", NewDate(2021, time.April, 1), false},
		{"today", Today(), false},
		{"", Today(), false},
		{"invalid-date", Date{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if (err != nil) != tt.err {
				t.Errorf("ParseDate(%q) error = %v, wantErr %v", tt.input, err, tt.err)
				return
			}
			if !tt.err && got != tt.expected {
				t.Errorf("ParseDate(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestDaysBetween(t *testing.T) {
	tests := []struct {
		from, to string
		want     int
	}{
		{"2024-01-01", "2024-01-01", 0},
		{"2024-01-01", "2024-01-31", 30},
		{"2024-02-01", "2024-03-01", 29}, // leap year
		{"2024-03-01", "2024-02-01", -29},
	}
	for _, tt := range tests {
		if got := MustParse(tt.from).DaysBetween(MustParse(tt.to)); got != tt.want {
			t.Errorf("DaysBetween(%s, %s) = %d, want %d", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestSpan(t *testing.T) {
	tests := []struct {
		start, end string
		months     int
		days       int
	}{
		{"2024-01-01", "2024-01-01", 0, 0},
		{"2024-01-01", "2024-01-16", 0, 15},
		{"2024-01-01", "2024-02-01", 1, 0},
		{"2024-01-01", "2024-03-15", 2, 14},
		{"2024-01-15", "2024-02-14", 0, 30},
		{"2024-01-15", "2024-02-15", 1, 0},
		{"2024-01-31", "2024-02-29", 0, 29}, // Jan 31 + 1 month normalizes to Mar 2
		{"2024-01-01", "2025-01-01", 12, 0},
		{"2024-03-01", "2024-01-01", 0, 0}, // end before start
	}
	for _, tt := range tests {
		t.Run(tt.start+".."+tt.end, func(t *testing.T) {
			months, days := MustParse(tt.start).Span(MustParse(tt.end))
			if months != tt.months || days != tt.days {
				t.Errorf("Span(%s, %s) = (%d, %d), want (%d, %d)",
					tt.start, tt.end, months, days, tt.months, tt.days)
			}
		})
	}
}

// Span and AddMonth must agree on what one month later means, otherwise the
// leftover days could come out negative.
func TestSpanNeverNegative(t *testing.T) {
	start := NewDate(2024, time.January, 31)
	for i := 0; i < 120; i++ {
		end := start.Add(i)
		months, days := start.Span(end)
		if months < 0 || days < 0 {
			t.Fatalf("Span(%s, %s) = (%d, %d), negative component", start, end, months, days)
		}
	}
}
