package aricbor

import (
	"github.com/dtn-ace/ace/aceconfig"
	"github.com/dtn-ace/ace/ari"
	"github.com/dtn-ace/ace/aritype"
	"github.com/dtn-ace/ace/internal/aceerr"
)

// Encode renders v as a CBOR-tagged ARI, honoring cfg's chosen AM map
// form. Object references must already carry numeric namespace/object
// enumerators (resolution is the caller's job, done by the ace package's
// facade before reaching this codec).
func Encode(v ari.Value, cfg aceconfig.Config) ([]byte, error) {
	e := &encoder{}
	if _, ok := v.(ari.Undefined); ok {
		// Undefined is the bare simple value, with no outer ARI tag and
		// no [code,payload] wrapping.
		e.writeSimple(simpleUndefined)
		return e.buf, nil
	}
	e.writeTag(ARITag)
	if err := encodeContent(e, v, cfg); err != nil {
		return nil, err
	}
	return e.buf, nil
}

func encodeContent(e *encoder, v ari.Value, cfg aceconfig.Config) error {
	if ref, ok := v.(ari.Reference); ok {
		return encodeReference(e, ref, cfg)
	}
	code := v.Kind()
	e.writeArrayHeader(2)
	e.writeUint(uint64(code))
	return encodeLiteralPayload(e, code, v, cfg)
}

func encodeReference(e *encoder, ref ari.Reference, cfg aceconfig.Config) error {
	if !ref.Namespace.HasEnum {
		return aceerr.Resolutionf(aceerr.Position{}, "cannot binary-encode reference: namespace %s has no numeric enumerator", ref.Namespace)
	}
	if !ref.Object.HasEnum {
		return aceerr.Resolutionf(aceerr.Position{}, "cannot binary-encode reference: object %s has no numeric enumerator", ref.Object)
	}
	n := 3
	if len(ref.Params) > 0 {
		n = 4
	}
	e.writeArrayHeader(n)
	e.writeUint(ref.Namespace.Enum)
	e.writeUint(uint64(ref.ObjType))
	e.writeUint(ref.Object.Enum)
	if n == 4 {
		e.writeArrayHeader(len(ref.Params))
		for _, p := range ref.Params {
			if err := encodeContent(e, p, cfg); err != nil {
				return err
			}
		}
	}
	return nil
}

func encodeLiteralPayload(e *encoder, code aritype.LiteralType, v ari.Value, cfg aceconfig.Config) error {
	switch code {
	case aritype.TypeUndefined:
		e.writeSimple(simpleUndefined)
	case aritype.TypeNull:
		e.writeSimple(simpleNull)
	case aritype.TypeBool:
		b := v.(ari.Bool)
		if b {
			e.writeSimple(simpleTrue)
		} else {
			e.writeSimple(simpleFalse)
		}
	case aritype.TypeInt8, aritype.TypeInt16, aritype.TypeInt32, aritype.TypeInt64:
		e.writeInt(v.(ari.Int).Value)
	case aritype.TypeUint8, aritype.TypeUint16, aritype.TypeUint32, aritype.TypeUint64:
		e.writeUint(v.(ari.Int).UValue)
	case aritype.TypeVast:
		e.writeInt(int64(v.(ari.VAST)))
	case aritype.TypeUvast:
		e.writeUint(uint64(v.(ari.UVAST)))
	case aritype.TypeReal32:
		e.writeFloat32(float32(v.(ari.Real32)))
	case aritype.TypeReal64:
		e.writeFloat64(float64(v.(ari.Real64)))
	case aritype.TypeText:
		e.writeText(string(v.(ari.Text)))
	case aritype.TypeBytes:
		e.writeBytes([]byte(v.(ari.Bytes)))
	case aritype.TypeTP:
		tp := v.(ari.TP)
		encodeTimeValue(e, tp.Seconds, tp.Nanos)
	case aritype.TypeTD:
		td := v.(ari.TD)
		encodeTimeValue(e, td.Seconds, td.Nanos)
	case aritype.TypeLabel:
		l := v.(ari.Label)
		if l.IsEnum {
			e.writeUint(l.Enum)
		} else {
			e.writeText(l.Name)
		}
	case aritype.TypeCBOR:
		e.writeRaw(v.(ari.CBORItem).Raw)
	case aritype.TypeAC:
		ac := v.(ari.AC)
		e.writeArrayHeader(len(ac.Elems))
		for _, el := range ac.Elems {
			if err := encodeContent(e, el, cfg); err != nil {
				return err
			}
		}
	case aritype.TypeAM:
		am := v.(ari.AM)
		if cfg.CBORMapForm == aceconfig.IndefiniteLength {
			e.writeMapHeaderIndefinite()
			for _, p := range am.Pairs {
				if err := encodeContent(e, p.Key, cfg); err != nil {
					return err
				}
				if err := encodeContent(e, p.Value, cfg); err != nil {
					return err
				}
			}
			e.writeBreak()
		} else {
			e.writeMapHeaderDefinite(len(am.Pairs))
			for _, p := range am.Pairs {
				if err := encodeContent(e, p.Key, cfg); err != nil {
					return err
				}
				if err := encodeContent(e, p.Value, cfg); err != nil {
					return err
				}
			}
		}
	case aritype.TypeTBL:
		tbl := v.(ari.TBL)
		e.writeArrayHeader(1 + len(tbl.Flat))
		e.writeUint(uint64(tbl.Cols))
		for _, el := range tbl.Flat {
			if err := encodeContent(e, el, cfg); err != nil {
				return err
			}
		}
	case aritype.TypeExecSet:
		es := v.(ari.ExecSet)
		e.writeArrayHeader(2)
		if err := encodeContent(e, es.ID, cfg); err != nil {
			return err
		}
		e.writeArrayHeader(len(es.Targets))
		for _, t := range es.Targets {
			if err := encodeContent(e, t, cfg); err != nil {
				return err
			}
		}
	case aritype.TypeRptSet:
		rs := v.(ari.RptSet)
		e.writeArrayHeader(2)
		if err := encodeContent(e, rs.ID, cfg); err != nil {
			return err
		}
		e.writeArrayHeader(len(rs.Entries))
		for _, entry := range rs.Entries {
			e.writeArrayHeader(3)
			if err := encodeContent(e, entry.Time, cfg); err != nil {
				return err
			}
			if err := encodeContent(e, entry.Source, cfg); err != nil {
				return err
			}
			e.writeArrayHeader(len(entry.Values))
			for _, val := range entry.Values {
				if err := encodeContent(e, val, cfg); err != nil {
					return err
				}
			}
		}
	default:
		return aceerr.Typef(aceerr.Position{}, "cannot binary-encode literal-type code %s", code)
	}
	return nil
}

func encodeTimeValue(e *encoder, seconds int64, nanos int32) {
	if nanos == 0 {
		e.writeInt(seconds)
		return
	}
	e.writeArrayHeader(2)
	e.writeInt(seconds)
	e.writeInt(int64(nanos))
}

// Decode parses a CBOR-tagged ARI from b, returning the decoded value and
// the number of bytes consumed.
func Decode(b []byte) (ari.Value, int, error) {
	d := &decoder{b: b}
	// A bare, untagged simple-undefined byte is a complete ARI on its
	// own.
	if len(b) > 0 {
		peek := &decoder{b: b}
		h, err := peek.readHead()
		if err == nil && h.major == majOther && h.arg == simpleUndefined {
			return ari.Undefined{}, peek.off, nil
		}
	}
	h, err := d.readHead()
	if err != nil {
		return nil, 0, err
	}
	if h.major != majTag || h.arg != ARITag {
		return nil, 0, aceerr.Decodef(d.pos(), "expected ARI tag %d, got major %d arg %d", ARITag, h.major, h.arg)
	}
	v, err := decodeContent(d)
	if err != nil {
		return nil, 0, err
	}
	return v, d.off, nil
}

func decodeContent(d *decoder) (ari.Value, error) {
	h, err := d.readHead()
	if err != nil {
		return nil, err
	}
	switch h.major {
	case majArray:
		n := int(h.arg)
		switch n {
		case 2:
			code, err := decodeUintItem(d)
			if err != nil {
				return nil, err
			}
			if code >= uint64(aritype.TypeRptSet)+1 {
				return nil, aceerr.Decodef(d.pos(), "unknown literal-type code %d", code)
			}
			return decodeLiteralPayload(d, aritype.LiteralType(code))
		case 3, 4:
			return decodeReference(d, n)
		default:
			return nil, aceerr.Decodef(d.pos(), "unexpected array length %d at ARI content position", n)
		}
	case majOther:
		if h.arg == simpleUndefined {
			return ari.Undefined{}, nil
		}
		return nil, aceerr.Decodef(d.pos(), "unexpected simple value %d at ARI content position", h.arg)
	default:
		return nil, aceerr.Decodef(d.pos(), "unexpected major type %d at ARI content position", h.major)
	}
}

func decodeReference(d *decoder, n int) (ari.Value, error) {
	nsEnum, err := decodeUintItem(d)
	if err != nil {
		return nil, err
	}
	otCode, err := decodeUintItem(d)
	if err != nil {
		return nil, err
	}
	if otCode >= uint64(256) || !aritype.IsObjectType(uint8(otCode)) {
		return nil, aceerr.Decodef(d.pos(), "unknown object-type code %d", otCode)
	}
	objEnum, err := decodeUintItem(d)
	if err != nil {
		return nil, err
	}
	var params []ari.Value
	if n == 4 {
		ah, err := d.readHead()
		if err != nil {
			return nil, err
		}
		if ah.major != majArray {
			return nil, aceerr.Decodef(d.pos(), "expected parameter array, got major %d", ah.major)
		}
		params = make([]ari.Value, 0, ah.arg)
		for i := uint64(0); i < ah.arg; i++ {
			p, err := decodeContent(d)
			if err != nil {
				return nil, err
			}
			params = append(params, p)
		}
	}
	ns := ari.NamespaceRef{Enum: nsEnum, HasEnum: true}
	obj := ari.ObjectRef{Enum: objEnum, HasEnum: true}
	ref, err := ari.NewReference(ns, aritype.ObjectType(otCode), obj, params, 0, false)
	if err != nil {
		return nil, err
	}
	return ref, nil
}

// decodeUintItem reads one full CBOR item expected to be an unsigned
// integer (major 0), returning its value.
func decodeUintItem(d *decoder) (uint64, error) {
	h, err := d.readHead()
	if err != nil {
		return 0, err
	}
	if h.major != majUint {
		return 0, aceerr.Decodef(d.pos(), "expected an unsigned integer, got major type %d", h.major)
	}
	return h.arg, nil
}

// decodeSignedItem reads one full CBOR item expected to be an integer
// (major 0 or 1), returning its signed value.
func decodeSignedItem(d *decoder) (int64, error) {
	h, err := d.readHead()
	if err != nil {
		return 0, err
	}
	switch h.major {
	case majUint:
		return int64(h.arg), nil
	case majNeg:
		return -1 - int64(h.arg), nil
	default:
		return 0, aceerr.Decodef(d.pos(), "expected an integer, got major type %d", h.major)
	}
}

func decodeLiteralPayload(d *decoder, code aritype.LiteralType) (ari.Value, error) {
	switch code {
	case aritype.TypeUndefined:
		if _, err := expectSimple(d, simpleUndefined); err != nil {
			return nil, err
		}
		return ari.Undefined{}, nil
	case aritype.TypeNull:
		if _, err := expectSimple(d, simpleNull); err != nil {
			return nil, err
		}
		return ari.Null{}, nil
	case aritype.TypeBool:
		h, err := d.readHead()
		if err != nil {
			return nil, err
		}
		if h.major != majOther || (h.arg != simpleTrue && h.arg != simpleFalse) {
			return nil, aceerr.Decodef(d.pos(), "expected a boolean simple value")
		}
		return ari.Bool(h.arg == simpleTrue), nil
	case aritype.TypeInt8, aritype.TypeInt16, aritype.TypeInt32, aritype.TypeInt64:
		width := widthOf(code)
		n, err := decodeSignedItem(d)
		if err != nil {
			return nil, err
		}
		return ari.NewInt(width, n)
	case aritype.TypeUint8, aritype.TypeUint16, aritype.TypeUint32, aritype.TypeUint64:
		width := widthOf(code)
		n, err := decodeUintItem(d)
		if err != nil {
			return nil, err
		}
		return ari.NewUint(width, n)
	case aritype.TypeVast:
		n, err := decodeSignedItem(d)
		if err != nil {
			return nil, err
		}
		return ari.VAST(n), nil
	case aritype.TypeUvast:
		n, err := decodeUintItem(d)
		if err != nil {
			return nil, err
		}
		return ari.UVAST(n), nil
	case aritype.TypeReal32:
		f, err := d.readFloat32()
		if err != nil {
			return nil, err
		}
		return ari.Real32(f), nil
	case aritype.TypeReal64:
		f, err := d.readFloat64()
		if err != nil {
			return nil, err
		}
		return ari.Real64(f), nil
	case aritype.TypeText:
		s, err := decodeTextItem(d)
		if err != nil {
			return nil, err
		}
		return ari.Text(s), nil
	case aritype.TypeBytes:
		b, err := decodeBytesItem(d)
		if err != nil {
			return nil, err
		}
		return ari.Bytes(b), nil
	case aritype.TypeTP:
		sec, nanos, err := decodeTimeValue(d)
		if err != nil {
			return nil, err
		}
		return ari.TP{Seconds: sec, Nanos: nanos}, nil
	case aritype.TypeTD:
		sec, nanos, err := decodeTimeValue(d)
		if err != nil {
			return nil, err
		}
		return ari.TD{Seconds: sec, Nanos: nanos}, nil
	case aritype.TypeLabel:
		h, err := d.readHead()
		if err != nil {
			return nil, err
		}
		switch h.major {
		case majUint:
			return ari.Label{Enum: h.arg, IsEnum: true}, nil
		case majText:
			s, err := readTextBody(d, h)
			if err != nil {
				return nil, err
			}
			return ari.Label{Name: s}, nil
		default:
			return nil, aceerr.Decodef(d.pos(), "expected a LABEL payload (uint or text), got major %d", h.major)
		}
	case aritype.TypeCBOR:
		start := d.off
		if err := skipItem(d); err != nil {
			return nil, err
		}
		raw := make([]byte, d.off-start)
		copy(raw, d.b[start:d.off])
		return ari.CBORItem{Raw: raw}, nil
	case aritype.TypeAC:
		h, err := d.readHead()
		if err != nil {
			return nil, err
		}
		if h.major != majArray {
			return nil, aceerr.Decodef(d.pos(), "expected an AC array, got major %d", h.major)
		}
		elems := make([]ari.Value, 0, h.arg)
		for i := uint64(0); i < h.arg; i++ {
			el, err := decodeContent(d)
			if err != nil {
				return nil, err
			}
			elems = append(elems, el)
		}
		return ari.AC{Elems: elems}, nil
	case aritype.TypeAM:
		h, err := d.readHead()
		if err != nil {
			return nil, err
		}
		if h.major != majMap {
			return nil, aceerr.Decodef(d.pos(), "expected an AM map, got major %d", h.major)
		}
		var pairs []ari.AMPair
		if h.indefinite {
			for {
				if d.off < len(d.b) && d.b[d.off] == breakByte {
					d.off++
					break
				}
				k, err := decodeContent(d)
				if err != nil {
					return nil, err
				}
				v, err := decodeContent(d)
				if err != nil {
					return nil, err
				}
				pairs = append(pairs, ari.AMPair{Key: k, Value: v})
			}
		} else {
			pairs = make([]ari.AMPair, 0, h.arg)
			for i := uint64(0); i < h.arg; i++ {
				k, err := decodeContent(d)
				if err != nil {
					return nil, err
				}
				v, err := decodeContent(d)
				if err != nil {
					return nil, err
				}
				pairs = append(pairs, ari.AMPair{Key: k, Value: v})
			}
		}
		return ari.AM{Pairs: pairs}, nil
	case aritype.TypeTBL:
		h, err := d.readHead()
		if err != nil {
			return nil, err
		}
		if h.major != majArray || h.arg < 1 {
			return nil, aceerr.Decodef(d.pos(), "expected a TBL array with a leading column count")
		}
		cols, err := decodeUintItem(d)
		if err != nil {
			return nil, err
		}
		flat := make([]ari.Value, 0, h.arg-1)
		for i := uint64(1); i < h.arg; i++ {
			el, err := decodeContent(d)
			if err != nil {
				return nil, err
			}
			flat = append(flat, el)
		}
		return ari.NewTBL(int(cols), flat)
	case aritype.TypeExecSet:
		h, err := d.readHead()
		if err != nil {
			return nil, err
		}
		if h.major != majArray || h.arg != 2 {
			return nil, aceerr.Decodef(d.pos(), "expected a 2-element EXECSET array")
		}
		id, err := decodeContent(d)
		if err != nil {
			return nil, err
		}
		th, err := d.readHead()
		if err != nil {
			return nil, err
		}
		if th.major != majArray {
			return nil, aceerr.Decodef(d.pos(), "expected an EXECSET targets array")
		}
		targets := make([]ari.Value, 0, th.arg)
		for i := uint64(0); i < th.arg; i++ {
			t, err := decodeContent(d)
			if err != nil {
				return nil, err
			}
			targets = append(targets, t)
		}
		return ari.ExecSet{ID: id, Targets: targets}, nil
	case aritype.TypeRptSet:
		h, err := d.readHead()
		if err != nil {
			return nil, err
		}
		if h.major != majArray || h.arg != 2 {
			return nil, aceerr.Decodef(d.pos(), "expected a 2-element RPTSET array")
		}
		id, err := decodeContent(d)
		if err != nil {
			return nil, err
		}
		eh, err := d.readHead()
		if err != nil {
			return nil, err
		}
		if eh.major != majArray {
			return nil, aceerr.Decodef(d.pos(), "expected an RPTSET entries array")
		}
		entries := make([]ari.RptEntry, 0, eh.arg)
		for i := uint64(0); i < eh.arg; i++ {
			entryH, err := d.readHead()
			if err != nil {
				return nil, err
			}
			if entryH.major != majArray || entryH.arg != 3 {
				return nil, aceerr.Decodef(d.pos(), "expected a 3-element RPTSET entry array")
			}
			tm, err := decodeContent(d)
			if err != nil {
				return nil, err
			}
			src, err := decodeContent(d)
			if err != nil {
				return nil, err
			}
			vh, err := d.readHead()
			if err != nil {
				return nil, err
			}
			if vh.major != majArray {
				return nil, aceerr.Decodef(d.pos(), "expected an RPTSET entry values array")
			}
			values := make([]ari.Value, 0, vh.arg)
			for j := uint64(0); j < vh.arg; j++ {
				v, err := decodeContent(d)
				if err != nil {
					return nil, err
				}
				values = append(values, v)
			}
			entries = append(entries, ari.RptEntry{Time: tm, Source: src, Values: values})
		}
		return ari.RptSet{ID: id, Entries: entries}, nil
	default:
		return nil, aceerr.Decodef(d.pos(), "unknown literal-type code %s", code)
	}
}

func widthOf(code aritype.LiteralType) int {
	switch code {
	case aritype.TypeInt8, aritype.TypeUint8:
		return 8
	case aritype.TypeInt16, aritype.TypeUint16:
		return 16
	case aritype.TypeInt32, aritype.TypeUint32:
		return 32
	default:
		return 64
	}
}

func expectSimple(d *decoder, want byte) (byte, error) {
	h, err := d.readHead()
	if err != nil {
		return 0, err
	}
	if h.major != majOther || byte(h.arg) != want {
		return 0, aceerr.Decodef(d.pos(), "expected simple value %d, got major %d arg %d", want, h.major, h.arg)
	}
	return byte(h.arg), nil
}

func decodeTimeValue(d *decoder) (int64, int32, error) {
	startOff := d.off
	h, err := d.readHead()
	if err != nil {
		return 0, 0, err
	}
	if h.major == majArray {
		if h.arg != 2 {
			return 0, 0, aceerr.Decodef(d.pos(), "expected a 2-element time array")
		}
		sec, err := decodeSignedItem(d)
		if err != nil {
			return 0, 0, err
		}
		nanos, err := decodeSignedItem(d)
		if err != nil {
			return 0, 0, err
		}
		return sec, int32(nanos), nil
	}
	d.off = startOff
	sec, err := decodeSignedItem(d)
	if err != nil {
		return 0, 0, err
	}
	return sec, 0, nil
}

func decodeTextItem(d *decoder) (string, error) {
	h, err := d.readHead()
	if err != nil {
		return "", err
	}
	if h.major != majText {
		return "", aceerr.Decodef(d.pos(), "expected a text string, got major %d", h.major)
	}
	return readTextBody(d, h)
}

func readTextBody(d *decoder, h head) (string, error) {
	if h.indefinite {
		return "", aceerr.Decodef(d.pos(), "indefinite-length text strings are not supported")
	}
	b, err := d.readN(int(h.arg))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func decodeBytesItem(d *decoder) ([]byte, error) {
	h, err := d.readHead()
	if err != nil {
		return nil, err
	}
	if h.major != majBytes {
		return nil, aceerr.Decodef(d.pos(), "expected a byte string, got major %d", h.major)
	}
	if h.indefinite {
		return nil, aceerr.Decodef(d.pos(), "indefinite-length byte strings are not supported")
	}
	b, err := d.readN(int(h.arg))
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out, nil
}

// skipItem advances d past one full, arbitrary CBOR item without
// interpreting it, used to capture the raw bytes of a preserved,
// opaque CBOR.Item payload.
func skipItem(d *decoder) error {
	h, err := d.readHead()
	if err != nil {
		return err
	}
	switch h.major {
	case majUint, majNeg:
		return nil
	case majBytes, majText:
		if h.indefinite {
			for {
				if d.off < len(d.b) && d.b[d.off] == breakByte {
					d.off++
					return nil
				}
				if err := skipItem(d); err != nil {
					return err
				}
			}
		}
		_, err := d.readN(int(h.arg))
		return err
	case majArray:
		n := h.arg
		if h.indefinite {
			for {
				if d.off < len(d.b) && d.b[d.off] == breakByte {
					d.off++
					return nil
				}
				if err := skipItem(d); err != nil {
					return err
				}
			}
		}
		for i := uint64(0); i < n; i++ {
			if err := skipItem(d); err != nil {
				return err
			}
		}
		return nil
	case majMap:
		n := h.arg
		if h.indefinite {
			for {
				if d.off < len(d.b) && d.b[d.off] == breakByte {
					d.off++
					return nil
				}
				if err := skipItem(d); err != nil {
					return err
				}
				if err := skipItem(d); err != nil {
					return err
				}
			}
		}
		for i := uint64(0); i < n; i++ {
			if err := skipItem(d); err != nil {
				return err
			}
			if err := skipItem(d); err != nil {
				return err
			}
		}
		return nil
	case majTag:
		return skipItem(d)
	case majOther:
		if h.arg == additionalFloat32 {
			return nil
		}
		if h.arg == additionalFloat64 {
			return nil
		}
		return nil
	default:
		return aceerr.Decodef(d.pos(), "cannot skip unknown major type %d", h.major)
	}
}
