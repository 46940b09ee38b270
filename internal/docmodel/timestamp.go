package docmodel

import (
	"fmt"
	"time"
)

// Precision records how much of an ISO-8601 timestamp literal was
// actually specified: the runtime value carries known precision/offset,
// not just an instant.
type Precision int

const (
	PrecisionYear Precision = iota
	PrecisionMonth
	PrecisionDay
	PrecisionMinute
	PrecisionSecond
	PrecisionFraction
)

// Timestamp is the TIMESTAMP payload: an instant plus the precision and
// UTC-offset knowledge the original text carried. PTS/SQL equality
// compare by instant only; the text form needs
// Precision/OffsetKnown to round-trip faithfully.
type Timestamp struct {
	Instant     time.Time
	Precision   Precision
	OffsetKnown bool
	OffsetMinutes int
}

// TimestampValue is the TIMESTAMP runtime value.
type TimestampValue struct{ V Timestamp }

func (TimestampValue) Type() Type { return TimestampType }

func NewTimestamp(ts Timestamp) Value { return TimestampValue{V: ts} }

// CompareInstants orders two timestamps by instant: timestamp equality
// compares the instant, not the textual form.
func CompareInstants(a, b Timestamp) int {
	switch {
	case a.Instant.Before(b.Instant):
		return -1
	case a.Instant.After(b.Instant):
		return 1
	default:
		return 0
	}
}

var isoLayouts = []struct {
	layout    string
	precision Precision
}{
	{"2006-01-02T15:04:05.999999999Z07:00", PrecisionFraction},
	{"2006-01-02T15:04:05Z07:00", PrecisionSecond},
	{"2006-01-02T15:04Z07:00", PrecisionMinute},
	{"2006-01-02", PrecisionDay},
	{"2006-01", PrecisionMonth},
	{"2006", PrecisionYear},
}

// ParseTimestamp parses an ISO-8601 literal per the evaluator's CAST(...
// AS TIMESTAMP) and the lexer's ION_LITERAL path. Failure is reported by
// the caller as EVALUATOR_CAST_FAILED.
func ParseTimestamp(s string) (Timestamp, error) {
	for _, l := range isoLayouts {
		if t, err := time.Parse(l.layout, s); err == nil {
			_, offset := t.Zone()
			return Timestamp{
				Instant:       t,
				Precision:     l.precision,
				OffsetKnown:   l.precision >= PrecisionMinute,
				OffsetMinutes: offset / 60,
			}, nil
		}
	}
	return Timestamp{}, fmt.Errorf("invalid ISO-8601 timestamp %q", s)
}

// String renders the timestamp back to ISO-8601 text at its recorded
// precision.
func (ts Timestamp) String() string {
	t := ts.Instant
	switch ts.Precision {
	case PrecisionYear:
		return t.Format("2006")
	case PrecisionMonth:
		return t.Format("2006-01")
	case PrecisionDay:
		return t.Format("2006-01-02")
	case PrecisionMinute:
		return t.Format("2006-01-02T15:04Z07:00")
	case PrecisionSecond:
		return t.Format("2006-01-02T15:04:05Z07:00")
	default:
		return t.Format("2006-01-02T15:04:05.999999999Z07:00")
	}
}
