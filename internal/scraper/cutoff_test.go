package scraper

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateDate(t *testing.T) {
	cutoff := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		raw     string
		outcome Outcome
	}{
		{"after cutoff", "Feb 1, 2024", Keep},
		{"exactly on cutoff is kept", "Jan 5, 2024", Keep},
		{"day before cutoff", "Jan 4, 2024", Stop},
		{"well before cutoff", "Sep 30, 2023", Stop},
		{"zero-padded day", "Jan 05, 2024", Keep},
		{"zero-padded before cutoff", "Jan 04, 2024", Stop},
		{"surrounding whitespace", "  Feb 1, 2024  ", Keep},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome, day, err := EvaluateDate(tt.raw, cutoff)
			require.NoError(t, err)
			assert.Equal(t, tt.outcome, outcome)
			assert.Equal(t, time.UTC, day.Location())
			assert.Equal(t, 0, day.Hour(), "parsed date is truncated to start of day")
		})
	}
}

func TestEvaluateDateUnparseable(t *testing.T) {
	cutoff := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)

	for _, raw := range []string{"N/A", "", "2024-01-05", "5 January 2024"} {
		outcome, _, err := EvaluateDate(raw, cutoff)
		assert.Equal(t, Unparseable, outcome, "raw=%q", raw)
		assert.Error(t, err, "raw=%q", raw)
	}
}

func TestEvaluateDateMidCutoffInstant(t *testing.T) {
	// Cutoff instants carry a time-of-day component (now minus a window).
	// A record dated the same calendar day but compared at 00:00 is older
	// than a mid-day cutoff instant and must stop the crawl.
	cutoff := time.Date(2024, 1, 5, 13, 30, 0, 0, time.UTC)

	outcome, _, err := EvaluateDate("Jan 5, 2024", cutoff)
	require.NoError(t, err)
	assert.Equal(t, Stop, outcome)

	outcome, _, err = EvaluateDate("Jan 6, 2024", cutoff)
	require.NoError(t, err)
	assert.Equal(t, Keep, outcome)
}

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "keep", Keep.String())
	assert.Equal(t, "stop", Stop.String())
	assert.Equal(t, "unparseable", Unparseable.String())
}
