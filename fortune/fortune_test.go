package fortune

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestParseMethod(t *testing.T) {
	cases := []struct {
		in   string
		want Method
	}{
		{"", MethodAll},
		{"all", MethodAll},
		{"tarot", MethodTarot},
		{" ZhouYi ", MethodZhouYi},
		{"guangong", MethodGuangong},
	}
	for _, tc := range cases {
		got, err := ParseMethod(tc.in)
		if err != nil {
			t.Fatalf("ParseMethod(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ParseMethod(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}

	if _, err := ParseMethod("astrology"); !errors.Is(err, ErrUnknownMethod) {
		t.Fatalf("expected ErrUnknownMethod, got %v", err)
	}
}

func TestDraw_SingleMethod(t *testing.T) {
	for _, m := range Methods() {
		r, err := Draw("Will it rain?", m)
		if err != nil {
			t.Fatalf("draw %s: %v", m, err)
		}
		if len(r) != 1 {
			t.Fatalf("draw %s: expected exactly one entry, got %d", m, len(r))
		}
		f, ok := r[string(m)]
		if !ok {
			t.Fatalf("draw %s: missing entry keyed by method", m)
		}
		if f.Method != m || f.Symbol == "" || f.Title == "" || f.Meaning == "" {
			t.Fatalf("draw %s: incomplete fortune %+v", m, f)
		}
		if f.Prompt != "Will it rain?" {
			t.Fatalf("draw %s: prompt not carried, got %q", m, f.Prompt)
		}
	}
}

func TestDraw_All(t *testing.T) {
	r, err := Draw("career", MethodAll)
	if err != nil {
		t.Fatalf("draw all: %v", err)
	}
	if len(r) != len(Methods()) {
		t.Fatalf("expected %d entries, got %d", len(Methods()), len(r))
	}
	for _, m := range Methods() {
		if _, ok := r[string(m)]; !ok {
			t.Fatalf("missing entry for %s", m)
		}
	}
}

func TestDraw_UnknownMethod(t *testing.T) {
	if _, err := Draw("x", Method("runes")); !errors.Is(err, ErrUnknownMethod) {
		t.Fatalf("expected ErrUnknownMethod, got %v", err)
	}
}

func TestSummary(t *testing.T) {
	r, err := Draw("love", MethodAll)
	if err != nil {
		t.Fatalf("draw: %v", err)
	}
	summary := r.Summary()
	parts := strings.Split(summary, "\n\n")
	if len(parts) != 3 {
		t.Fatalf("expected 3 blank-line separated entries, got %d: %q", len(parts), summary)
	}
	for i, m := range Methods() {
		f := r[string(m)]
		want := string(m) + " (" + f.Symbol + "): " + f.Title
		if parts[i] != want {
			t.Fatalf("line %d = %q, want %q", i, parts[i], want)
		}
	}
}

func TestDailySeeder_Deterministic(t *testing.T) {
	day := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)
	d := &Drawer{Seeder: DailySeeder{Now: func() time.Time { return day }}}

	a, err := d.Draw("Should I move abroad?", MethodAll)
	if err != nil {
		t.Fatalf("draw a: %v", err)
	}
	b, err := d.Draw("  should I   move abroad?", MethodAll)
	if err != nil {
		t.Fatalf("draw b: %v", err)
	}
	if a.Summary() != b.Summary() {
		t.Fatalf("same prompt on the same day diverged:\n%s\n---\n%s", a.Summary(), b.Summary())
	}
}

func TestDailySeeder_VariesByDay(t *testing.T) {
	s1 := DailySeeder{Now: func() time.Time { return time.Date(2025, 3, 14, 23, 0, 0, 0, time.UTC) }}
	s2 := DailySeeder{Now: func() time.Time { return time.Date(2025, 3, 15, 1, 0, 0, 0, time.UTC) }}
	if s1.Seed("q", MethodTarot) == s2.Seed("q", MethodTarot) {
		t.Fatalf("expected different seeds on different days")
	}
	if s1.Seed("q", MethodTarot) == s1.Seed("q", MethodZhouYi) {
		t.Fatalf("expected different seeds per method")
	}
}

func TestZhouYiSymbols(t *testing.T) {
	if got := string(rune(0x4DC0)); got != "䷀" {
		t.Fatalf("unexpected first hexagram symbol %q", got)
	}
	if got := string(rune(0x4DC0 + len(hexagrams) - 1)); got != "䷿" {
		t.Fatalf("unexpected last hexagram symbol %q", got)
	}
}
