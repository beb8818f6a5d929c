package format

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"rfc3339", "2025-03-10T14:30:00Z", "Mar 10, 2025"},
		{"fractional seconds", "2025-03-10T14:30:00.123456Z", "Mar 10, 2025"},
		{"date only", "2025-12-01", "Dec 1, 2025"},
		{"empty", "", NotAvailable},
		{"garbage", "yesterday", InvalidDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Date(tt.input))
		})
	}
}

func TestDateTime(t *testing.T) {
	assert.Equal(t, "Mar 10, 2025, 2:30 PM", DateTime("2025-03-10T14:30:00Z"))
	assert.Equal(t, "Mar 10, 2025, 9:05 AM", DateTime("2025-03-10T09:05:00Z"))
	assert.Equal(t, NotAvailable, DateTime("  "))
	assert.Equal(t, InvalidDate, DateTime("10/03/2025"))
}

func TestTime(t *testing.T) {
	assert.Equal(t, NotAvailable, Time(time.Time{}))
	assert.Equal(t, "Jan 2, 2026", Time(time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)))
}

func TestDuration(t *testing.T) {
	tests := []struct {
		minutes int
		want    string
	}{
		{0, "0 minutes"},
		{1, "1 minute"},
		{45, "45 minutes"},
		{60, "1 hour"},
		{61, "1 hour 1 minute"},
		{125, "2 hours 5 minutes"},
		{180, "3 hours"},
		{-1, NotAvailable},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Duration(tt.minutes), "minutes=%d", tt.minutes)
	}
}

func TestTimeLimit(t *testing.T) {
	assert.Equal(t, Unlimited, TimeLimit(0))
	assert.Equal(t, "1 hour 30 minutes", TimeLimit(90))
}

func TestSeconds(t *testing.T) {
	assert.Equal(t, "0m 0s", Seconds(0))
	assert.Equal(t, "0m 59s", Seconds(59))
	assert.Equal(t, "3m 7s", Seconds(187))
	assert.Equal(t, "0m 0s", Seconds(-4))
}

func TestPercent(t *testing.T) {
	assert.Equal(t, "72.5%", Percent(0.725, 1))
	assert.Equal(t, "100%", Percent(1, 0))
	assert.Equal(t, "68.0%", Score(68, 1))
}
