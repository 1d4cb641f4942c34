package timeutil

import (
	"testing"
	"time"
)

func TestParseWindowDefault(t *testing.T) {
	dur, label, err := ParseWindow("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dur != 7*24*time.Hour {
		t.Fatalf("expected one week, got %v", dur)
	}
	if label != "1w" {
		t.Fatalf("expected label 1w, got %s", label)
	}
}

func TestParseWindowComposite(t *testing.T) {
	dur, label, err := ParseWindow("1w2d6h30m")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := (7*24+2*24+6)*time.Hour + 30*time.Minute
	if dur != want {
		t.Fatalf("expected %v, got %v", want, dur)
	}
	if label != "1w2d6h30m" {
		t.Fatalf("unexpected label: %s", label)
	}
}

func TestParseWindowMonths(t *testing.T) {
	dur, label, err := ParseWindow("2mo")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dur != 60*24*time.Hour {
		t.Fatalf("expected sixty days, got %v", dur)
	}
	if label != "2mo" {
		t.Fatalf("unexpected label: %s", label)
	}
}

func TestParseWindowLongUnits(t *testing.T) {
	dur, _, err := ParseWindow("3 days")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dur != 3*24*time.Hour {
		t.Fatalf("expected three days, got %v", dur)
	}
}

func TestParseWindowInvalid(t *testing.T) {
	for _, in := range []string{"noop", "3y", "-1d", "0s"} {
		if _, _, err := ParseWindow(in); err == nil {
			t.Fatalf("expected error for %q", in)
		}
	}
}
