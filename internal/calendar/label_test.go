package calendar

import (
	"errors"
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	cases := []struct {
		label string
		want  Month
	}{
		{"Jan-24", Month{2024, time.January}},
		{"Mei-24", Month{2024, time.May}},
		{"Agu-24", Month{2024, time.August}},
		{"Okt-25", Month{2025, time.October}},
		{"Des-99", Month{1999, time.December}},
		{"Jul-70", Month{1970, time.July}},
		{"Jun-69", Month{2069, time.June}},
	}
	for _, tc := range cases {
		got, err := Parse(tc.label)
		if err != nil {
			t.Fatalf("Parse(%q): %v", tc.label, err)
		}
		if got != tc.want {
			t.Fatalf("Parse(%q)=%v, want %v", tc.label, got, tc.want)
		}
	}
}

func TestParseInvalid(t *testing.T) {
	for _, label := range []string{"", "Jul", "May-24", "jul-24", "Jul-xx", "Jul--4"} {
		if _, err := Parse(label); !errors.Is(err, ErrInvalidLabel) {
			t.Fatalf("Parse(%q) err=%v, want ErrInvalidLabel", label, err)
		}
	}
}

func TestFormat(t *testing.T) {
	if got, err := Format(Month{2024, time.August}); err != nil || got != "Agu-24" {
		t.Fatalf("Format=%q err=%v, want Agu-24", got, err)
	}
	if got, err := Format(Month{2009, time.January}); err != nil || got != "Jan-09" {
		t.Fatalf("Format=%q err=%v, want Jan-09", got, err)
	}
	if _, err := Format(Month{2024, time.Month(13)}); !errors.Is(err, ErrInvalidMonthIndex) {
		t.Fatalf("Format out-of-range err=%v, want ErrInvalidMonthIndex", err)
	}
}

func TestRoundTrip(t *testing.T) {
	for _, name := range monthNames {
		label := name + "-24"
		m, err := Parse(label)
		if err != nil {
			t.Fatalf("Parse(%q): %v", label, err)
		}
		back, err := Format(m)
		if err != nil {
			t.Fatalf("Format(%v): %v", m, err)
		}
		if back != label {
			t.Fatalf("round trip %q -> %v -> %q", label, m, back)
		}
	}
	for year := 1970; year <= 2069; year++ {
		for mo := time.January; mo <= time.December; mo++ {
			m := Month{year, mo}
			label, err := Format(m)
			if err != nil {
				t.Fatalf("Format(%v): %v", m, err)
			}
			back, err := Parse(label)
			if err != nil {
				t.Fatalf("Parse(%q): %v", label, err)
			}
			if back != m {
				t.Fatalf("round trip %v -> %q -> %v", m, label, back)
			}
		}
	}
}

func TestAddAndCompare(t *testing.T) {
	jan25 := Month{2025, time.January}
	if got := jan25.Add(-2); got != (Month{2024, time.November}) {
		t.Fatalf("Add(-2)=%v", got)
	}
	if got := (Month{2024, time.November}).Add(3); got != (Month{2025, time.February}) {
		t.Fatalf("Add(3)=%v", got)
	}
	if !(Month{2024, time.December}).Before(jan25) {
		t.Fatal("Des-24 should sort before Jan-25")
	}
	if jan25.Compare(jan25) != 0 {
		t.Fatal("Compare self != 0")
	}
}
