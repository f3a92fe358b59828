package calendar

import (
	"errors"
	"testing"
	"time"
)

func TestResolve(t *testing.T) {
	jul24 := Month{2024, time.July}
	jan25 := Month{2025, time.January}

	cases := []struct {
		name     string
		header   string
		snapshot Month
		want     Month
	}{
		{"plain_n", "N", jul24, jul24},
		{"n_lowercase_trimmed", "  n ", jul24, jul24},
		{"n_plus", "N+3", jul24, Month{2024, time.October}},
		{"n_plus_year_rollover", "N+6", jul24, Month{2025, time.January}},
		{"n_minus_year_rollover", "N-2", jan25, Month{2024, time.November}},
		{"n_plus_zero", "N+0", jul24, jul24},
		{"absolute_label", "Sep-24", jul24, Month{2024, time.September}},
		{"absolute_label_trimmed", " Des-24 ", jul24, Month{2024, time.December}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Resolve(tc.header, tc.snapshot)
			if err != nil {
				t.Fatalf("Resolve(%q): %v", tc.header, err)
			}
			if got != tc.want {
				t.Fatalf("Resolve(%q)=%v, want %v", tc.header, got, tc.want)
			}
		})
	}
}

func TestResolveInvalid(t *testing.T) {
	for _, header := range []string{"", "N+", "N-x", "Month-24", "N*2"} {
		if _, err := Resolve(header, Month{2024, time.July}); !errors.Is(err, ErrInvalidLabel) {
			t.Fatalf("Resolve(%q) err=%v, want ErrInvalidLabel", header, err)
		}
	}
}
