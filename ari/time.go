package ari

import (
	"strconv"
	"time"

	"github.com/dtn-ace/ace/aritype"
)

// DTNEpoch is 2000-01-01T00:00:00Z, the fixed epoch integer TP/TD forms
// count from.
var DTNEpoch = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

// TP is an absolute timepoint: whole Seconds since DTNEpoch plus an
// optional Nanos fraction.
type TP struct {
	Seconds int64
	Nanos   int32
}

func (TP) Kind() aritype.LiteralType { return aritype.TypeTP }
func (t TP) String() string          { return "TP." + formatDecimalSeconds(t.Seconds, t.Nanos) }
func (t TP) Equal(other Value) bool {
	o, ok := other.(TP)
	return ok && o == t
}

// Time returns the absolute time t represents.
func (t TP) Time() time.Time {
	return DTNEpoch.Add(time.Duration(t.Seconds)*time.Second + time.Duration(t.Nanos)*time.Nanosecond)
}

// NewTPFromTime builds a TP from an absolute time.
func NewTPFromTime(tm time.Time) TP {
	d := tm.Sub(DTNEpoch)
	sec := int64(d / time.Second)
	nanos := int32(d % time.Second)
	return TP{Seconds: sec, Nanos: nanos}
}

// TD is a relative duration: whole Seconds plus an optional Nanos
// fraction. Seconds may be negative.
type TD struct {
	Seconds int64
	Nanos   int32
}

func (TD) Kind() aritype.LiteralType { return aritype.TypeTD }
func (t TD) String() string          { return "TD." + formatDecimalSeconds(t.Seconds, t.Nanos) }
func (t TD) Equal(other Value) bool {
	o, ok := other.(TD)
	return ok && o == t
}

// Duration returns the time.Duration t represents.
func (t TD) Duration() time.Duration {
	return time.Duration(t.Seconds)*time.Second + time.Duration(t.Nanos)*time.Nanosecond
}

// formatDecimalSeconds renders seconds when nanos is zero, "seconds.frac"
// otherwise, matching the text codec's canonical emission rule.
func formatDecimalSeconds(seconds int64, nanos int32) string {
	if nanos == 0 {
		return strconv.FormatInt(seconds, 10)
	}
	frac := nanos
	neg := frac < 0
	if neg {
		frac = -frac
	}
	fracStr := strconv.FormatInt(int64(frac), 10)
	for len(fracStr) < 9 {
		fracStr = "0" + fracStr
	}
	for len(fracStr) > 1 && fracStr[len(fracStr)-1] == '0' {
		fracStr = fracStr[:len(fracStr)-1]
	}
	sign := ""
	if seconds == 0 && neg {
		sign = "-"
	}
	return sign + strconv.FormatInt(seconds, 10) + "." + fracStr
}
