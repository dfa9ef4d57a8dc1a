package utils

import "testing"

func TestValidDates(t *testing.T) {
	cases := []struct {
		name  string
		dates []string
		want  bool
	}{
		{"empty", nil, true},
		{"single", []string{"2026-09-01"}, true},
		{"many", []string{"2026-09-01", "2026-09-02", "2026-10-15"}, true},
		{"bad format", []string{"09/01/2026"}, false},
		{"impossible date", []string{"2026-02-30"}, false},
		{"duplicate", []string{"2026-09-01", "2026-09-01"}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ValidDates(tc.dates); got != tc.want {
				t.Fatalf("ValidDates(%v) = %v, want %v", tc.dates, got, tc.want)
			}
		})
	}
}

func TestFormatRFC3339(t *testing.T) {
	if got := FormatRFC3339(0); got != "" {
		t.Fatalf("zero timestamp should format empty, got %q", got)
	}
	if got := FormatRFC3339(1756684800); got != "2025-09-01T00:00:00Z" {
		t.Fatalf("unexpected formatting: %q", got)
	}
}
