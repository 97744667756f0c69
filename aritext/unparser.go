package aritext

import (
	"encoding/hex"
	"net/url"
	"strconv"
	"strings"

	"github.com/dtn-ace/ace/ari"
	"github.com/dtn-ace/ace/aritype"
	"github.com/dtn-ace/ace/internal/aceerr"
)

// Unparse renders v as its canonical ari: URI-style text, the inverse of
// Parse. The "ari:" scheme prefix is added once, at the
// outermost call; nested values (container elements, reference
// parameters) are rendered without it.
func Unparse(v ari.Value) (string, error) {
	s, err := unparseValue(v)
	if err != nil {
		return "", err
	}
	return "ari:" + s, nil
}

func unparseValue(v ari.Value) (string, error) {
	if ref, ok := v.(ari.Reference); ok {
		return unparseReference(ref)
	}
	return unparseLiteral(v)
}

func unparseEntity(symbol string, enum uint64, hasSymbol, hasEnum bool) string {
	if hasSymbol {
		return url.PathEscape(symbol)
	}
	if hasEnum {
		return "!" + strconv.FormatUint(enum, 10)
	}
	return "!0"
}

func unparseReference(r ari.Reference) (string, error) {
	name, ok := aritype.NameForCode(aritype.SpaceObject, uint8(r.ObjType))
	if !ok {
		return "", aceerr.Typef(aceerr.Position{}, "unknown object type code %d", r.ObjType)
	}
	var b strings.Builder
	b.WriteByte('/')
	b.WriteString(unparseEntity(r.Namespace.Symbol, r.Namespace.Enum, r.Namespace.HasSymbol, r.Namespace.HasEnum))
	b.WriteByte('/')
	b.WriteString(name)
	b.WriteByte('.')
	b.WriteString(unparseEntity(r.Object.Symbol, r.Object.Enum, r.Object.HasSymbol, r.Object.HasEnum))
	if len(r.Params) > 0 {
		b.WriteByte('(')
		for i, p := range r.Params {
			if i > 0 {
				b.WriteByte(',')
			}
			s, err := unparseValue(p)
			if err != nil {
				return "", err
			}
			b.WriteString(s)
		}
		b.WriteByte(')')
	}
	return b.String(), nil
}

func unparseLiteral(v ari.Value) (string, error) {
	switch t := v.(type) {
	case ari.Undefined:
		return "/undefined", nil
	case ari.Null:
		return "NULL", nil
	case ari.Bool:
		if t {
			return "BOOL.true", nil
		}
		return "BOOL.false", nil
	case ari.Int:
		return t.Kind().String() + "." + intPayload(t), nil
	case ari.VAST:
		return "VAST." + strconv.FormatInt(int64(t), 10), nil
	case ari.UVAST:
		return "UVAST." + strconv.FormatUint(uint64(t), 10), nil
	case ari.Real32:
		return "REAL32." + strconv.FormatFloat(float64(t), 'g', -1, 32), nil
	case ari.Real64:
		return "REAL64." + strconv.FormatFloat(float64(t), 'g', -1, 64), nil
	case ari.Text:
		// Quoted so that sub-delims PathEscape leaves alone (commas,
		// parentheses, semicolons) cannot collide with the surrounding
		// grammar; PathEscape itself percent-encodes any inner quote.
		return `TEXT."` + url.PathEscape(string(t)) + `"`, nil
	case ari.Bytes:
		return "BYTES.h'" + hex.EncodeToString([]byte(t)) + "'", nil
	case ari.CBORItem:
		return "CBOR.h'" + hex.EncodeToString(t.Raw) + "'", nil
	case ari.Label:
		if t.IsEnum {
			return "LABEL." + strconv.FormatUint(t.Enum, 10), nil
		}
		return "LABEL." + url.PathEscape(t.Name), nil
	case ari.TP:
		return "TP." + formatDecimalSecondsText(t.Seconds, t.Nanos), nil
	case ari.TD:
		return "TD." + formatDecimalSecondsText(t.Seconds, t.Nanos), nil
	case ari.AC:
		return unparseAC(t)
	case ari.AM:
		return unparseAM(t)
	case ari.TBL:
		return unparseTBL(t)
	case ari.ExecSet:
		return unparseExecSet(t)
	case ari.RptSet:
		return unparseRptSet(t)
	default:
		return "", aceerr.Typef(aceerr.Position{}, "cannot unparse value of kind %s", v.Kind())
	}
}

func intPayload(i ari.Int) string {
	if i.Signed {
		return strconv.FormatInt(i.Value, 10)
	}
	return strconv.FormatUint(i.UValue, 10)
}

// formatDecimalSecondsText mirrors ari's unexported formatDecimalSeconds
// rule (integer form when Nanos is zero, trimmed decimal otherwise) since
// that helper is private to the ari package.
func formatDecimalSecondsText(seconds int64, nanos int32) string {
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

func unparseAC(a ari.AC) (string, error) {
	parts := make([]string, len(a.Elems))
	for i, e := range a.Elems {
		s, err := unparseValue(e)
		if err != nil {
			return "", err
		}
		parts[i] = s
	}
	return "AC(" + strings.Join(parts, ",") + ")", nil
}

func unparseAM(m ari.AM) (string, error) {
	parts := make([]string, len(m.Pairs))
	for i, pr := range m.Pairs {
		k, err := unparseValue(pr.Key)
		if err != nil {
			return "", err
		}
		v, err := unparseValue(pr.Value)
		if err != nil {
			return "", err
		}
		parts[i] = k + "=" + v
	}
	return "AM(" + strings.Join(parts, ",") + ")", nil
}

func unparseTBL(t ari.TBL) (string, error) {
	var b strings.Builder
	b.WriteString("TBL(c=")
	b.WriteString(strconv.Itoa(t.Cols))
	rows := t.Rows()
	for r := 0; r < rows; r++ {
		b.WriteByte(';')
		for c := 0; c < t.Cols; c++ {
			if c > 0 {
				b.WriteByte(',')
			}
			s, err := unparseValue(t.Flat[r*t.Cols+c])
			if err != nil {
				return "", err
			}
			b.WriteString(s)
		}
	}
	b.WriteByte(')')
	return b.String(), nil
}

func unparseExecSet(e ari.ExecSet) (string, error) {
	id, err := unparseValue(e.ID)
	if err != nil {
		return "", err
	}
	parts := make([]string, len(e.Targets))
	for i, t := range e.Targets {
		s, err := unparseValue(t)
		if err != nil {
			return "", err
		}
		parts[i] = s
	}
	return "EXECSET(" + id + ";" + strings.Join(parts, ",") + ")", nil
}

func unparseRptSet(r ari.RptSet) (string, error) {
	id, err := unparseValue(r.ID)
	if err != nil {
		return "", err
	}
	entries := make([]string, len(r.Entries))
	for i, e := range r.Entries {
		tm, err := unparseValue(e.Time)
		if err != nil {
			return "", err
		}
		src, err := unparseValue(e.Source)
		if err != nil {
			return "", err
		}
		values := make([]string, len(e.Values))
		for j, v := range e.Values {
			s, err := unparseValue(v)
			if err != nil {
				return "", err
			}
			values[j] = s
		}
		entries[i] = "(" + tm + "," + src + ",[" + strings.Join(values, ",") + "])"
	}
	return "RPTSET(" + id + ";" + strings.Join(entries, ",") + ")", nil
}
