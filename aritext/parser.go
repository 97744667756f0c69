package aritext

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/dtn-ace/ace/ari"
	"github.com/dtn-ace/ace/aritype"
)

// stopSet is the set of bytes that terminate a bare scalar payload token
// wherever it appears: at the top level, inside a container's element
// list, or inside a parameter list. Whitespace terminates a token too;
// it is insignificant outside quoted text strings.
const stopSet = ",)];= \t\r\n"

type parser struct {
	cursor
}

// Parse parses s, an ari: URI-style value, into an ari.Value.
func Parse(s string) (ari.Value, error) {
	p := &parser{cursor{s: s}}
	if strings.HasPrefix(p.s, "ari:") {
		p.pos = len("ari:")
	}
	v, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if !p.eof() {
		return nil, p.errf("unexpected trailing input: %s", p.s[p.pos:])
	}
	return v, nil
}

func (p *parser) parseValue() (ari.Value, error) {
	p.skipSpace()
	c, ok := p.peek()
	if !ok {
		return nil, p.errf("unexpected end of input, expected a value")
	}
	if c == '/' {
		return p.parseReferenceOrUndefined()
	}
	return p.parseLiteral()
}

func (p *parser) parseReferenceOrUndefined() (ari.Value, error) {
	if strings.HasPrefix(p.s[p.pos:], "/undefined") {
		rest := p.s[p.pos+len("/undefined"):]
		if rest == "" || strings.ContainsRune(stopSet, rune(rest[0])) {
			p.pos += len("/undefined")
			return ari.Undefined{}, nil
		}
	}
	if err := p.expect('/'); err != nil {
		return nil, err
	}
	nsToken := p.readUntil("/")
	if err := p.expect('/'); err != nil {
		return nil, err
	}
	ns, err := parseEntityRef(p, nsToken)
	if err != nil {
		return nil, err
	}
	otName := p.readUntil(".")
	if err := p.expect('.'); err != nil {
		return nil, err
	}
	otCode, ok := aritype.CodeForName(aritype.SpaceObject, otName)
	if !ok {
		return nil, p.errf("unknown object type %q", otName)
	}
	objToken := p.readUntil("(" + stopSet)
	obj, err := parseEntityRef(p, objToken)
	if err != nil {
		return nil, err
	}
	var params []ari.Value
	if c, ok := p.peek(); ok && c == '(' {
		p.advance()
		params, err = p.parseValueList(')')
		if err != nil {
			return nil, err
		}
		if err := p.expect(')'); err != nil {
			return nil, err
		}
	}
	nsRef := ari.NamespaceRef{Symbol: ns.symbol, Enum: ns.enum, HasSymbol: ns.hasSym, HasEnum: ns.hasEnum}
	objRef := ari.ObjectRef{Symbol: obj.symbol, Enum: obj.enum, HasSymbol: obj.hasSym, HasEnum: obj.hasEnum}
	ref, err := ari.NewReference(nsRef, aritype.ObjectType(otCode), objRef, params, 0, false)
	if err != nil {
		return nil, err
	}
	return ref, nil
}

// entityRef is the parsed form of a "name" or "!enum" token shared by
// namespace and object references.
type entityRef struct {
	symbol  string
	enum    uint64
	hasSym  bool
	hasEnum bool
}

func parseEntityRef(p *parser, token string) (entityRef, error) {
	if token == "" {
		return entityRef{}, p.errf("expected a namespace or object name")
	}
	if token[0] == '!' {
		n, err := strconv.ParseUint(token[1:], 10, 64)
		if err != nil {
			return entityRef{}, p.lexf("invalid numeric enumerator %q: %v", token, err)
		}
		return entityRef{enum: n, hasEnum: true}, nil
	}
	sym, err := url.PathUnescape(token)
	if err != nil {
		return entityRef{}, p.errf("invalid percent-encoding in %q: %v", token, err)
	}
	return entityRef{symbol: sym, hasSym: true}, nil
}

func (p *parser) parseValueList(close byte) ([]ari.Value, error) {
	var out []ari.Value
	p.skipSpace()
	if c, ok := p.peek(); ok && c == close {
		return out, nil
	}
	for {
		v, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		out = append(out, v)
		p.skipSpace()
		c, ok := p.peek()
		if !ok {
			return nil, p.errf("unexpected end of input, expected ',' or %q", close)
		}
		if c == ',' {
			p.advance()
			continue
		}
		if c == close {
			return out, nil
		}
		return nil, p.errf("unexpected %s, expected ',' or %q", p.describeNext(), close)
	}
}

func (p *parser) parseLiteral() (ari.Value, error) {
	typeName := p.readUntil(".(" + stopSet)
	upper := strings.ToUpper(typeName)
	// Width-free integer names are accepted on input as the usual short
	// spellings; the canonical emitted names carry the width.
	switch upper {
	case "BYTE":
		upper = "UINT8"
	case "INT":
		upper = "INT32"
	case "UINT":
		upper = "UINT32"
	}

	if upper == "NULL" {
		return ari.Null{}, nil
	}

	if c, ok := p.peek(); ok && c == '(' {
		return p.parseContainer(upper)
	}

	if err := p.expect('.'); err != nil {
		return nil, err
	}

	switch upper {
	case "BOOL":
		tok := p.readUntil(stopSet)
		switch tok {
		case "true":
			return ari.Bool(true), nil
		case "false":
			return ari.Bool(false), nil
		default:
			return nil, p.lexf("invalid BOOL literal %q", tok)
		}
	case "INT8", "UINT8", "INT16", "UINT16", "INT32", "UINT32", "INT64", "UINT64":
		return p.parseFixedInt(upper)
	case "VAST":
		tok := p.readUntil(stopSet)
		n, err := strconv.ParseInt(tok, 10, 64)
		if err != nil {
			return nil, p.lexf("invalid VAST literal %q: %v", tok, err)
		}
		return ari.VAST(n), nil
	case "UVAST":
		tok := p.readUntil(stopSet)
		n, err := strconv.ParseUint(tok, 10, 64)
		if err != nil {
			return nil, p.lexf("invalid UVAST literal %q: %v", tok, err)
		}
		return ari.UVAST(n), nil
	case "REAL32":
		tok := p.readUntil(stopSet)
		f, err := strconv.ParseFloat(tok, 32)
		if err != nil {
			return nil, p.lexf("invalid REAL32 literal %q: %v", tok, err)
		}
		return ari.Real32(f), nil
	case "REAL64":
		tok := p.readUntil(stopSet)
		f, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return nil, p.lexf("invalid REAL64 literal %q: %v", tok, err)
		}
		return ari.Real64(f), nil
	case "TEXT":
		var tok string
		if c, ok := p.peek(); ok && c == '"' {
			p.advance()
			tok = p.readUntil("\"")
			if err := p.expect('"'); err != nil {
				return nil, err
			}
		} else {
			tok = p.readUntil(stopSet)
		}
		s, err := url.PathUnescape(tok)
		if err != nil {
			return nil, p.errf("invalid percent-encoding in TEXT literal: %v", err)
		}
		return ari.Text(s), nil
	case "BYTES":
		b, err := p.parseByteString()
		if err != nil {
			return nil, err
		}
		return ari.Bytes(b), nil
	case "CBOR":
		b, err := p.parseByteString()
		if err != nil {
			return nil, err
		}
		return ari.CBORItem{Raw: b}, nil
	case "LABEL":
		tok := p.readUntil(stopSet)
		if n, err := strconv.ParseUint(tok, 10, 64); err == nil {
			return ari.Label{Enum: n, IsEnum: true}, nil
		}
		name, err := url.PathUnescape(tok)
		if err != nil {
			return nil, p.errf("invalid percent-encoding in LABEL literal: %v", err)
		}
		return ari.Label{Name: name}, nil
	case "TP":
		return p.parseTP(p.readUntil(stopSet))
	case "TD":
		return p.parseTD(p.readUntil(stopSet))
	default:
		return nil, p.errf("unknown literal type %q", typeName)
	}
}

func (p *parser) parseFixedInt(upper string) (ari.Value, error) {
	signed := !strings.HasPrefix(upper, "UINT")
	width, err := strconv.Atoi(strings.TrimPrefix(strings.TrimPrefix(upper, "U"), "INT"))
	if err != nil {
		return nil, p.errf("invalid integer type %q", upper)
	}
	tok := p.readUntil(stopSet)
	if signed {
		n, err := strconv.ParseInt(tok, 10, 64)
		if err != nil {
			return nil, p.lexf("invalid %s literal %q: %v", upper, tok, err)
		}
		return ari.NewInt(width, n)
	}
	n, err := strconv.ParseUint(tok, 10, 64)
	if err != nil {
		return nil, p.lexf("invalid %s literal %q: %v", upper, tok, err)
	}
	return ari.NewUint(width, n)
}

// parseDecimalSeconds parses "seconds" or "seconds.frac" into whole
// Seconds and a Nanos fraction, inverting ari's formatDecimalSeconds. The
// fraction carries the sign of the whole value, so "-0.5" and "-90.5"
// both yield a negative Nanos.
func (p *parser) parseDecimalSeconds(tok string) (int64, int32, error) {
	intPart, fracPart, hasFrac := strings.Cut(tok, ".")
	sec, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, 0, p.lexf("invalid time literal %q: %v", tok, err)
	}
	if !hasFrac || fracPart == "" {
		return sec, 0, nil
	}
	for len(fracPart) < 9 {
		fracPart += "0"
	}
	fracPart = fracPart[:9]
	nanos, err := strconv.ParseInt(fracPart, 10, 32)
	if err != nil {
		return 0, 0, p.lexf("invalid time fraction %q: %v", tok, err)
	}
	if strings.HasPrefix(tok, "-") {
		nanos = -nanos
	}
	return sec, int32(nanos), nil
}

func (p *parser) parseByteString() ([]byte, error) {
	tag := p.readUntil("'")
	if err := p.expect('\''); err != nil {
		return nil, err
	}
	content := p.readUntil("'")
	if err := p.expect('\''); err != nil {
		return nil, err
	}
	switch tag {
	case "h":
		return decodeHex(p, content)
	case "b32":
		return decodeBase32(p, content)
	case "b64":
		return decodeBase64(p, content)
	default:
		return nil, p.errf("unknown byte-string encoding tag %q", tag)
	}
}

func (p *parser) parseContainer(upper string) (ari.Value, error) {
	if err := p.expect('('); err != nil {
		return nil, err
	}
	switch upper {
	case "AC":
		elems, err := p.parseValueList(')')
		if err != nil {
			return nil, err
		}
		if err := p.expect(')'); err != nil {
			return nil, err
		}
		return ari.AC{Elems: elems}, nil
	case "AM":
		pairs, err := p.parseAMPairs()
		if err != nil {
			return nil, err
		}
		if err := p.expect(')'); err != nil {
			return nil, err
		}
		return ari.AM{Pairs: pairs}, nil
	case "TBL":
		return p.parseTBL()
	case "EXECSET":
		id, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		p.skipSpace()
		if err := p.expect(';'); err != nil {
			return nil, err
		}
		targets, err := p.parseValueList(')')
		if err != nil {
			return nil, err
		}
		if err := p.expect(')'); err != nil {
			return nil, err
		}
		return ari.ExecSet{ID: id, Targets: targets}, nil
	case "RPTSET":
		return p.parseRptSet()
	default:
		return nil, p.errf("unknown container type %q", upper)
	}
}

func (p *parser) parseAMPairs() ([]ari.AMPair, error) {
	var out []ari.AMPair
	p.skipSpace()
	if c, ok := p.peek(); ok && c == ')' {
		return out, nil
	}
	for {
		key, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		p.skipSpace()
		if err := p.expect('='); err != nil {
			return nil, err
		}
		val, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		out = append(out, ari.AMPair{Key: key, Value: val})
		p.skipSpace()
		c, ok := p.peek()
		if !ok {
			return nil, p.errf("unexpected end of input in AM, expected ',' or ')'")
		}
		if c == ',' {
			p.advance()
			continue
		}
		if c == ')' {
			return out, nil
		}
		return nil, p.errf("unexpected %s in AM, expected ',' or ')'", p.describeNext())
	}
}

func (p *parser) parseTBL() (ari.Value, error) {
	p.skipSpace()
	if err := p.consumeLiteral("c="); err != nil {
		return nil, err
	}
	numTok := p.readUntil(";) \t\r\n")
	cols, err := strconv.Atoi(numTok)
	if err != nil {
		return nil, p.lexf("invalid TBL column count %q: %v", numTok, err)
	}
	var flat []ari.Value
	for {
		p.skipSpace()
		c, ok := p.peek()
		if !ok {
			return nil, p.errf("unexpected end of input in TBL, expected ')'")
		}
		if c == ')' {
			p.advance()
			return ari.NewTBL(cols, flat)
		}
		if c == ';' || c == ',' {
			p.advance()
			continue
		}
		v, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		flat = append(flat, v)
	}
}

func (p *parser) parseRptSet() (ari.Value, error) {
	id, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if err := p.expect(';'); err != nil {
		return nil, err
	}
	var entries []ari.RptEntry
	p.skipSpace()
	if c, ok := p.peek(); !ok || c == ')' {
		if err := p.expect(')'); err != nil {
			return nil, err
		}
		return ari.RptSet{ID: id, Entries: entries}, nil
	}
	for {
		p.skipSpace()
		if err := p.expect('('); err != nil {
			return nil, err
		}
		tm, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		p.skipSpace()
		if err := p.expect(','); err != nil {
			return nil, err
		}
		src, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		p.skipSpace()
		if err := p.expect(','); err != nil {
			return nil, err
		}
		p.skipSpace()
		if err := p.expect('['); err != nil {
			return nil, err
		}
		values, err := p.parseValueList(']')
		if err != nil {
			return nil, err
		}
		if err := p.expect(']'); err != nil {
			return nil, err
		}
		p.skipSpace()
		if err := p.expect(')'); err != nil {
			return nil, err
		}
		entries = append(entries, ari.RptEntry{Time: tm, Source: src, Values: values})
		p.skipSpace()
		c, ok := p.peek()
		if !ok {
			return nil, p.errf("unexpected end of input in RPTSET, expected ',' or ')'")
		}
		if c == ',' {
			p.advance()
			continue
		}
		if c == ')' {
			p.advance()
			return ari.RptSet{ID: id, Entries: entries}, nil
		}
		return nil, p.errf("unexpected %s in RPTSET, expected ',' or ')'", p.describeNext())
	}
}
