package aritext

import (
	"strconv"
	"strings"
	"time"

	"github.com/dtn-ace/ace/ari"
)

// parseTP interprets tok as either a decimal DTN-epoch seconds count or
// an ISO 8601 timestamp. Canonical emission is always the seconds form;
// the timestamp spelling is accepted on input only.
func (p *parser) parseTP(tok string) (ari.Value, error) {
	if strings.ContainsAny(tok, "TZ:") {
		tm, err := time.Parse(time.RFC3339Nano, tok)
		if err != nil {
			return nil, p.lexf("invalid TP literal %q: %v", tok, err)
		}
		return ari.NewTPFromTime(tm), nil
	}
	sec, nanos, err := p.parseDecimalSeconds(tok)
	if err != nil {
		return nil, err
	}
	return ari.TP{Seconds: sec, Nanos: nanos}, nil
}

// parseTD interprets tok as either decimal seconds or an ISO 8601
// duration (PnDTnHnMnS, optionally signed). Canonical emission is always
// the seconds form.
func (p *parser) parseTD(tok string) (ari.Value, error) {
	if strings.HasPrefix(tok, "P") || strings.HasPrefix(tok, "-P") || strings.HasPrefix(tok, "+P") {
		d, err := parseISODuration(tok)
		if err != nil {
			return nil, p.lexf("invalid TD literal %q: %v", tok, err)
		}
		return ari.TD{Seconds: int64(d / time.Second), Nanos: int32(d % time.Second)}, nil
	}
	sec, nanos, err := p.parseDecimalSeconds(tok)
	if err != nil {
		return nil, err
	}
	return ari.TD{Seconds: sec, Nanos: nanos}, nil
}

// parseISODuration parses the duration subset an ARI can carry: an
// optional sign, "P", an optional day count, and an optional T-part with
// hours, minutes, and (possibly fractional) seconds. Calendar units
// (years, months) have no fixed length in seconds and are rejected.
func parseISODuration(s string) (time.Duration, error) {
	neg := false
	switch {
	case strings.HasPrefix(s, "-"):
		neg = true
		s = s[1:]
	case strings.HasPrefix(s, "+"):
		s = s[1:]
	}
	if len(s) < 2 || s[0] != 'P' {
		return 0, strconv.ErrSyntax
	}
	s = s[1:]

	datePart, timePart, hasTime := strings.Cut(s, "T")
	var total time.Duration

	if datePart != "" {
		n, rest, err := cutNumber(datePart)
		if err != nil || rest != "D" {
			return 0, strconv.ErrSyntax
		}
		total += time.Duration(n * float64(24*time.Hour))
	}
	if hasTime {
		if timePart == "" {
			return 0, strconv.ErrSyntax
		}
		for _, unit := range []struct {
			suffix byte
			scale  time.Duration
		}{{'H', time.Hour}, {'M', time.Minute}, {'S', time.Second}} {
			if timePart == "" {
				break
			}
			idx := strings.IndexByte(timePart, unit.suffix)
			if idx < 0 {
				continue
			}
			n, rest, err := cutNumber(timePart[:idx+1])
			if err != nil || rest != string(unit.suffix) {
				return 0, strconv.ErrSyntax
			}
			total += time.Duration(n * float64(unit.scale))
			timePart = timePart[idx+1:]
		}
		if timePart != "" {
			return 0, strconv.ErrSyntax
		}
	}
	if neg {
		total = -total
	}
	return total, nil
}

// cutNumber splits a leading decimal number off s, returning the number
// and whatever follows it.
func cutNumber(s string) (float64, string, error) {
	i := 0
	for i < len(s) && (s[i] >= '0' && s[i] <= '9' || s[i] == '.') {
		i++
	}
	if i == 0 {
		return 0, s, strconv.ErrSyntax
	}
	n, err := strconv.ParseFloat(s[:i], 64)
	if err != nil {
		return 0, s, err
	}
	return n, s[i:], nil
}
