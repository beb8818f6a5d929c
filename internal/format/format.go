// Package format turns timestamps, durations and rates into display strings.
package format

import (
	"fmt"
	"strings"
	"time"
)

const (
	NotAvailable = "N/A"
	InvalidDate  = "Invalid date"
	Unlimited    = "Unlimited"

	dateLayout     = "Jan 2, 2006"
	dateTimeLayout = "Jan 2, 2006, 3:04 PM"
)

// accepted input layouts, most specific first
var isoLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseISO parses the ISO-8601 variants the platform emits.
func ParseISO(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	var lastErr error
	for _, layout := range isoLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// Date formats an ISO timestamp as "Mar 10, 2025".
func Date(value string) string {
	return formatISO(value, dateLayout)
}

// DateTime formats an ISO timestamp as "Mar 10, 2025, 2:30 PM".
func DateTime(value string) string {
	return formatISO(value, dateTimeLayout)
}

// Time formats an already parsed timestamp the same way Date does; zero renders as N/A.
func Time(t time.Time) string {
	if t.IsZero() {
		return NotAvailable
	}
	return t.Format(dateLayout)
}

func formatISO(value, layout string) string {
	if strings.TrimSpace(value) == "" {
		return NotAvailable
	}
	t, err := ParseISO(value)
	if err != nil {
		return InvalidDate
	}
	return t.Format(layout)
}

// Duration renders a minute count as "45 minutes", "1 hour" or "2 hours 5 minutes".
func Duration(minutes int) string {
	if minutes < 0 {
		return NotAvailable
	}
	if minutes < 60 {
		return plural(minutes, "minute")
	}

	hours := minutes / 60
	rest := minutes % 60
	if rest == 0 {
		return plural(hours, "hour")
	}
	return plural(hours, "hour") + " " + plural(rest, "minute")
}

// TimeLimit is Duration with 0 meaning no limit.
func TimeLimit(minutes int) string {
	if minutes == 0 {
		return Unlimited
	}
	return Duration(minutes)
}

// Seconds renders a second count as "3m 7s".
func Seconds(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%dm %ds", seconds/60, seconds%60)
}

// Percent renders a 0..1 rate as a percentage with the given precision.
func Percent(rate float64, decimals int) string {
	return fmt.Sprintf("%.*f%%", decimals, rate*100)
}

// Score renders an already scaled 0..100 value.
func Score(value float64, decimals int) string {
	return fmt.Sprintf("%.*f%%", decimals, value)
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
