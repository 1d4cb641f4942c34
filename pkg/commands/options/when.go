package options

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/chrono/pkg/event"
)

const (
	layoutDay  = "2006-01-02"
	layoutTime = "2006-01-02 15:04"
)

// WhenOptions captures the start and optional end of an event. A value
// with a clock time sets time precision; a bare date keeps day
// precision.
type WhenOptions struct {
	On  string
	End string
}

func AddWhenArgs(cmd *cobra.Command, o *WhenOptions) {
	cmd.Flags().StringVar(&o.On, "on", "",
		"When the event happens, '2006-01-02' or '2006-01-02 15:04'. Defaults to today.")
	cmd.Flags().StringVar(&o.End, "end", "",
		"When a spanning event finishes, same formats as --on.")
}

// Start resolves the --on flag, defaulting to the current day.
func (o *WhenOptions) Start() (time.Time, event.Precision, error) {
	if strings.TrimSpace(o.On) == "" {
		return event.StartOfDay(time.Now()), event.PrecisionDay, nil
	}
	return parseWhen(o.On)
}

// Until resolves the --end flag when present.
func (o *WhenOptions) Until() (*time.Time, event.Precision, error) {
	if strings.TrimSpace(o.End) == "" {
		return nil, event.PrecisionDay, nil
	}
	t, p, err := parseWhen(o.End)
	if err != nil {
		return nil, p, err
	}
	return &t, p, nil
}

func parseWhen(v string) (time.Time, event.Precision, error) {
	v = strings.TrimSpace(v)
	if t, err := time.ParseInLocation(layoutTime, v, time.Local); err == nil {
		return t, event.PrecisionTime, nil
	}
	if t, err := time.ParseInLocation(layoutDay, v, time.Local); err == nil {
		return t, event.PrecisionDay, nil
	}
	return time.Time{}, event.PrecisionDay,
		fmt.Errorf("cannot parse %q, want %q or %q", v, layoutDay, layoutTime)
}
