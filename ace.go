// Package ace is the transcoder facade: the single entry point that
// chains decode, catalog resolution, and encode into one call, so a
// caller need not touch aritext/aricbor/admcat directly.
package ace

import (
	"strings"

	"github.com/dtn-ace/ace/aceconfig"
	"github.com/dtn-ace/ace/admcat"
	"github.com/dtn-ace/ace/ari"
	"github.com/dtn-ace/ace/aricbor"
	"github.com/dtn-ace/ace/aritext"
	"github.com/dtn-ace/ace/internal/aceclog"
	"github.com/dtn-ace/ace/internal/aceerr"
)

// Form identifies an ARI's wire representation.
type Form int

const (
	// FormText is the ari: URI-style textual form (aritext).
	FormText Form = iota
	// FormCBOR is raw binary CBOR bytes (aricbor).
	FormCBOR
	// FormCBORHex is FormCBOR rendered as a hex string, the form most
	// convenient for copy-paste and for the CLI's --outform flag.
	FormCBORHex
)

func (f Form) String() string {
	switch f {
	case FormText:
		return "text"
	case FormCBOR:
		return "cbor"
	case FormCBORHex:
		return "cborhex"
	default:
		return "unknown"
	}
}

// Transcoder is a configured decode/resolve/encode pipeline over one
// Catalog. It is safe for concurrent use once built: Catalog is treated
// as read-only and Config is copied by value into every call.
type Transcoder struct {
	Catalog *admcat.Catalog
	Config  aceconfig.Config
	log     aceclog.Clog
}

// NewTranscoder builds a Transcoder over cat using cfg. A nil cat is
// valid: resolution then always fails closed per cfg.MustLookup/
// MustNickname, and References decode/encode using only their numeric or
// symbolic sides as given.
func NewTranscoder(cat *admcat.Catalog, cfg aceconfig.Config) *Transcoder {
	return &Transcoder{Catalog: cat, Config: cfg, log: aceclog.NewLogger("ace ")}
}

// LogMode enables or disables the facade's diagnostic logging. Output is
// off until enabled; the codecs themselves never log.
func (tc *Transcoder) LogMode(enable bool) {
	tc.log.LogMode(enable)
}

// SetLogProvider swaps the facade's logging backend, e.g. for
// aceclog.NewZapLogger.
func (tc *Transcoder) SetLogProvider(p aceclog.LogProvider) {
	tc.log.SetLogProvider(p)
}

// Decode parses raw bytes/text in form into an ari.Value, without
// consulting the catalog.
func (tc *Transcoder) Decode(form Form, data []byte) (ari.Value, error) {
	switch form {
	case FormText:
		return aritext.Parse(string(data))
	case FormCBOR:
		v, _, err := aricbor.Decode(data)
		return v, err
	case FormCBORHex:
		raw, err := decodeHex(data)
		if err != nil {
			return nil, aceerr.Decodef(aceerr.Position{}, "invalid hex input: %v", err)
		}
		v, _, err := aricbor.Decode(raw)
		return v, err
	default:
		return nil, aceerr.Typef(aceerr.Position{}, "unknown form %d", form)
	}
}

// Encode renders v in form.
func (tc *Transcoder) Encode(v ari.Value, form Form) ([]byte, error) {
	switch form {
	case FormText:
		s, err := aritext.Unparse(v)
		if err != nil {
			return nil, err
		}
		return []byte(s), nil
	case FormCBOR:
		return aricbor.Encode(v, tc.Config)
	case FormCBORHex:
		raw, err := aricbor.Encode(v, tc.Config)
		if err != nil {
			return nil, err
		}
		return []byte(encodeHex(raw)), nil
	default:
		return nil, aceerr.Typef(aceerr.Position{}, "unknown form %d", form)
	}
}

// Resolve walks v, filling in whichever side (symbolic or numeric) of
// every namespace/object identifier is missing, using tc.Catalog, and
// checking declared parameter arity/types where the catalog supplies a
// signature.
//
// Resolution is mandatory (an unresolved or unknown reference is an
// error) only when tc.Config.MustLookup or tc.Config.MustNickname is
// set; otherwise an unresolvable reference is left as-is.
func (tc *Transcoder) Resolve(v ari.Value) (ari.Value, error) {
	switch t := v.(type) {
	case ari.Reference:
		return tc.resolveReference(t)
	case ari.AC:
		elems := make([]ari.Value, len(t.Elems))
		for i, e := range t.Elems {
			r, err := tc.Resolve(e)
			if err != nil {
				return nil, err
			}
			elems[i] = r
		}
		return ari.AC{Elems: elems}, nil
	case ari.AM:
		pairs := make([]ari.AMPair, len(t.Pairs))
		for i, p := range t.Pairs {
			k, err := tc.Resolve(p.Key)
			if err != nil {
				return nil, err
			}
			val, err := tc.Resolve(p.Value)
			if err != nil {
				return nil, err
			}
			pairs[i] = ari.AMPair{Key: k, Value: val}
		}
		return ari.AM{Pairs: pairs}, nil
	case ari.TBL:
		flat := make([]ari.Value, len(t.Flat))
		for i, e := range t.Flat {
			r, err := tc.Resolve(e)
			if err != nil {
				return nil, err
			}
			flat[i] = r
		}
		return ari.NewTBL(t.Cols, flat)
	case ari.ExecSet:
		id, err := tc.Resolve(t.ID)
		if err != nil {
			return nil, err
		}
		targets := make([]ari.Value, len(t.Targets))
		for i, tgt := range t.Targets {
			r, err := tc.Resolve(tgt)
			if err != nil {
				return nil, err
			}
			targets[i] = r
		}
		return ari.ExecSet{ID: id, Targets: targets}, nil
	case ari.RptSet:
		id, err := tc.Resolve(t.ID)
		if err != nil {
			return nil, err
		}
		entries := make([]ari.RptEntry, len(t.Entries))
		for i, e := range t.Entries {
			tm, err := tc.Resolve(e.Time)
			if err != nil {
				return nil, err
			}
			src, err := tc.Resolve(e.Source)
			if err != nil {
				return nil, err
			}
			values := make([]ari.Value, len(e.Values))
			for j, val := range e.Values {
				r, err := tc.Resolve(val)
				if err != nil {
					return nil, err
				}
				values[j] = r
			}
			entries[i] = ari.RptEntry{Time: tm, Source: src, Values: values}
		}
		return ari.RptSet{ID: id, Entries: entries}, nil
	default:
		return v, nil
	}
}

func (tc *Transcoder) resolveReference(r ari.Reference) (ari.Value, error) {
	if tc.Catalog == nil {
		if tc.Config.MustLookup || tc.Config.MustNickname {
			return nil, aceerr.Resolutionf(aceerr.Position{}, "reference %s cannot be resolved: no catalog configured", r)
		}
		return r, nil
	}

	ns, ok := tc.lookupNamespace(r.Namespace)
	if !ok {
		if tc.Config.MustLookup {
			return nil, aceerr.Resolutionf(aceerr.Position{}, "unknown namespace %s", r.Namespace)
		}
		return r, nil
	}
	newNS := ari.NamespaceRef{
		Symbol: ns.Symbol, HasSymbol: true,
		Enum: ns.Enum, HasEnum: true,
	}

	var key interface{}
	if r.Object.HasSymbol {
		key = r.Object.Symbol
	} else {
		key = r.Object.Enum
	}
	desc, ok := tc.Catalog.ResolveObject(ns, r.ObjType, key)
	if !ok {
		if tc.Config.MustLookup {
			return nil, aceerr.Resolutionf(aceerr.Position{}, "unknown object %s in namespace %s", r.Object, ns.Symbol)
		}
		return r, nil
	}
	if tc.Config.MustNickname && !r.Object.HasSymbol {
		return nil, aceerr.Resolutionf(aceerr.Position{}, "object %s was referenced by numeric enumerator, but MustNickname requires a symbolic nickname", r.Object)
	}
	newObj := ari.ObjectRef{
		Symbol: desc.Name, HasSymbol: true,
		Enum: desc.Enum, HasEnum: true,
	}

	params := r.Params
	if sig := tc.Catalog.SignatureOf(desc); sig != nil {
		if len(params) != len(sig) {
			return nil, aceerr.Signaturef(aceerr.Position{}, "object %s expects %d parameters, got %d", desc.Name, len(sig), len(params))
		}
		for i, ps := range sig {
			if params[i].Kind() != ps.Type && !isReferenceValue(params[i]) {
				return nil, aceerr.Typef(aceerr.Position{}, "object %s parameter %q: expected %s, got %s", desc.Name, ps.Name, ps.Type, params[i].Kind())
			}
		}
	}

	resolved, err := ari.NewReference(newNS, r.ObjType, newObj, params, len(params), true)
	if err != nil {
		return nil, err
	}
	return resolved, nil
}

func (tc *Transcoder) lookupNamespace(ns ari.NamespaceRef) (*admcat.Namespace, bool) {
	if ns.HasSymbol {
		if n, ok := tc.Catalog.ResolveNamespace(ns.Symbol); ok {
			return n, true
		}
	}
	if ns.HasEnum {
		if n, ok := tc.Catalog.ResolveNamespaceByEnum(ns.Enum); ok {
			return n, true
		}
	}
	return nil, false
}

func isReferenceValue(v ari.Value) bool {
	_, ok := v.(ari.Reference)
	return ok
}

// Transcode runs Decode, then Resolve when resolution is needed, then
// Encode.
// Resolution is skipped only when inForm and outForm are the
// same form family and neither MustLookup nor MustNickname is set,
// since no symbolic/numeric gap-filling is then observable.
func (tc *Transcoder) Transcode(inForm Form, data []byte, outForm Form) ([]byte, error) {
	tc.log.Debug("transcode %s -> %s (%d bytes in)", inForm, outForm, len(data))
	v, err := tc.Decode(inForm, data)
	if err != nil {
		return nil, err
	}
	if tc.needsResolution(inForm, outForm) {
		v, err = tc.Resolve(v)
		if err != nil {
			return nil, err
		}
	}
	return tc.Encode(v, outForm)
}

func (tc *Transcoder) needsResolution(inForm, outForm Form) bool {
	if tc.Config.MustLookup || tc.Config.MustNickname {
		return true
	}
	return formFamily(inForm) != formFamily(outForm)
}

func formFamily(f Form) string {
	if f == FormText {
		return "text"
	}
	return "binary"
}

func decodeHex(data []byte) ([]byte, error) {
	s := strings.TrimSpace(string(data))
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		s = s[2:]
	}
	if len(s)%2 != 0 {
		return nil, aceerr.Decodef(aceerr.Position{Offset: len(s)}, "odd-length hex input")
	}
	out := make([]byte, len(s)/2)
	for i := 0; i < len(out); i++ {
		hi, err := hexDigit(s[i*2])
		if err != nil {
			return nil, err
		}
		lo, err := hexDigit(s[i*2+1])
		if err != nil {
			return nil, err
		}
		out[i] = hi<<4 | lo
	}
	return out, nil
}

func hexDigit(c byte) (byte, error) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', nil
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, nil
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, nil
	default:
		return 0, aceerr.Decodef(aceerr.Position{}, "invalid hex digit %q", c)
	}
}

func encodeHex(b []byte) string {
	const digits = "0123456789abcdef"
	out := make([]byte, len(b)*2)
	for i, v := range b {
		out[i*2] = digits[v>>4]
		out[i*2+1] = digits[v&0xf]
	}
	return string(out)
}
