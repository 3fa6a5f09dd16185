package dates

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParseBothLayouts(t *testing.T) {
	want := date(2026, time.March, 15)
	for _, in := range []string{"2026-03-15", "15/03/2026", " 15/03/2026 "} {
		got, err := Parse(in)
		if err != nil {
			t.Fatalf("Parse(%q) returned error: %v", in, err)
		}
		if !got.Equal(want) {
			t.Fatalf("Parse(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "hoy", "2026/03/15", "31-02-2026"} {
		if _, err := Parse(in); err == nil {
			t.Fatalf("Parse(%q) should fail", in)
		}
	}
}

func TestAge(t *testing.T) {
	cases := []struct {
		name  string
		birth time.Time
		now   time.Time
		want  int
	}{
		{"birthday passed", date(1990, time.January, 10), date(2026, time.August, 31), 36},
		{"birthday today", date(1990, time.August, 31), date(2026, time.August, 31), 36},
		{"birthday pending", date(1990, time.December, 1), date(2026, time.August, 31), 35},
		{"newborn", date(2026, time.August, 1), date(2026, time.August, 31), 0},
		{"future birth", date(2027, time.January, 1), date(2026, time.August, 31), -1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Age(tc.birth, tc.now); got != tc.want {
				t.Fatalf("Age = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestFormats(t *testing.T) {
	d := date(2026, time.March, 5)
	if got := FormatFrontend(d); got != "05/03/2026" {
		t.Fatalf("FormatFrontend = %q", got)
	}
	if got := FormatISO(d); got != "2026-03-05" {
		t.Fatalf("FormatISO = %q", got)
	}
}
