// Package timeutil parses the human window strings used to scope
// reports, like "1w" or "2w3d".
package timeutil

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// DefaultWindow is used when no window is given.
const DefaultWindow = 7 * 24 * time.Hour

// windowUnits in descending size, also the formatting order. Months
// are fixed at 30 days; report windows are approximate by nature.
var windowUnits = []struct {
	label string
	size  time.Duration
}{
	{"mo", 30 * 24 * time.Hour},
	{"w", 7 * 24 * time.Hour},
	{"d", 24 * time.Hour},
	{"h", time.Hour},
	{"m", time.Minute},
	{"s", time.Second},
}

func unitFor(label string) (time.Duration, bool) {
	switch label {
	case "mo", "month", "months":
		return 30 * 24 * time.Hour, true
	case "w", "wk", "wks", "week", "weeks":
		return 7 * 24 * time.Hour, true
	case "d", "day", "days":
		return 24 * time.Hour, true
	case "h", "hr", "hrs", "hour", "hours":
		return time.Hour, true
	case "m", "min", "mins", "minute", "minutes":
		return time.Minute, true
	case "s", "sec", "secs", "second", "seconds":
		return time.Second, true
	}
	return 0, false
}

// ParseWindow parses a window like "1w", "3d", or "1w2d6h" into a
// duration plus its canonical compact form. Empty input means the
// default window of one week.
func ParseWindow(input string) (time.Duration, string, error) {
	rest := strings.ToLower(strings.TrimSpace(input))
	if rest == "" {
		return DefaultWindow, FormatWindow(DefaultWindow), nil
	}

	total := time.Duration(0)
	for rest != "" {
		i := 0
		for i < len(rest) && unicode.IsDigit(rune(rest[i])) {
			i++
		}
		if i == 0 {
			return 0, "", fmt.Errorf("timeutil: invalid window segment %q", rest)
		}
		value, err := strconv.ParseInt(rest[:i], 10, 64)
		if err != nil {
			return 0, "", fmt.Errorf("timeutil: invalid window value %q: %w", rest[:i], err)
		}
		rest = strings.TrimSpace(rest[i:])

		j := 0
		for j < len(rest) && unicode.IsLetter(rune(rest[j])) {
			j++
		}
		size, ok := unitFor(rest[:j])
		if !ok {
			return 0, "", fmt.Errorf("timeutil: unknown window unit %q", rest[:j])
		}
		rest = strings.TrimSpace(rest[j:])

		total += time.Duration(value) * size
	}

	if total <= 0 {
		return 0, "", fmt.Errorf("timeutil: window must be positive")
	}
	return total, FormatWindow(total), nil
}

// FormatWindow renders a duration in compact window tokens,
// largest unit first.
func FormatWindow(d time.Duration) string {
	if d <= 0 {
		return "0s"
	}
	var b strings.Builder
	rest := d
	for _, u := range windowUnits {
		if rest < u.size {
			continue
		}
		fmt.Fprintf(&b, "%d%s", rest/u.size, u.label)
		rest %= u.size
	}
	if b.Len() == 0 {
		return "0s"
	}
	return b.String()
}
