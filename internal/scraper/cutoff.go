package scraper

import (
	"strings"
	"time"
)

// Outcome is the cutoff gate's verdict for one record.
type Outcome int

const (
	// Keep: the record is on or after the cutoff day.
	Keep Outcome = iota
	// Stop: the record is strictly older than the cutoff. The listing is
	// sorted newest-first, so every later record is older too and the whole
	// crawl can halt.
	Stop
	// Unparseable: neither accepted date layout matched. The record is
	// skipped; only a confirmed old date may stop the crawl.
	Unparseable
)

func (o Outcome) String() string {
	switch o {
	case Keep:
		return "keep"
	case Stop:
		return "stop"
	case Unparseable:
		return "unparseable"
	default:
		return "unknown"
	}
}

// Accepted listing date layouts, tried in order: day without leading zero
// ("Jan 5, 2024"), then zero-padded day ("Jan 05, 2024"). The "2" token
// already accepts a zero-padded day, so the second layout is kept only to
// state the accepted-format contract explicitly, not as a fallback.
var dateLayouts = []string{"Jan 2, 2006", "Jan 02, 2006"}

// EvaluateDate parses a record's displayed date and compares the start of
// that day (UTC) against the cutoff instant. A record dated exactly on the
// cutoff is kept; only strictly earlier dates stop the crawl. On
// Unparseable the parse error is returned for logging.
func EvaluateDate(raw string, cutoff time.Time) (Outcome, time.Time, error) {
	raw = strings.TrimSpace(raw)

	var lastErr error
	for _, layout := range dateLayouts {
		parsed, err := time.ParseInLocation(layout, raw, time.UTC)
		if err != nil {
			lastErr = err
			continue
		}

		day := time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC)
		if day.Before(cutoff) {
			return Stop, day, nil
		}
		return Keep, day, nil
	}

	return Unparseable, time.Time{}, lastErr
}
