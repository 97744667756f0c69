package ace

import (
	"testing"

	"github.com/dtn-ace/ace/aceconfig"
	"github.com/dtn-ace/ace/admcat"
	"github.com/dtn-ace/ace/ari"
	"github.com/dtn-ace/ace/aritype"
)

func buildCatalog(t *testing.T) *admcat.Catalog {
	t.Helper()
	cat := admcat.NewCatalog()
	ns := admcat.NewNamespace("IANA:ion_admin", 1)
	ctrl := ns.Table(aritype.ObjCtrl)
	if err := ctrl.Add(&admcat.ObjectDescriptor{
		Name: "node_contact_add",
		Enum: 5,
		Signature: []admcat.ParamSpec{
			{Name: "start", Type: aritype.TypeUvast},
			{Name: "stop", Type: aritype.TypeUvast},
		},
	}); err != nil {
		t.Fatal(err)
	}
	if err := cat.AddADM(ns); err != nil {
		t.Fatal(err)
	}
	return cat
}

func symbolicRef(t *testing.T) ari.Reference {
	t.Helper()
	start := ari.UVAST(100)
	stop := ari.UVAST(200)
	ref, err := ari.NewReference(
		ari.NamespaceRef{Symbol: "IANA:ion_admin", HasSymbol: true},
		aritype.ObjCtrl,
		ari.ObjectRef{Symbol: "node_contact_add", HasSymbol: true},
		[]ari.Value{start, stop},
		0, false,
	)
	if err != nil {
		t.Fatal(err)
	}
	return ref
}

func TestResolveFillsNumericSide(t *testing.T) {
	tc := NewTranscoder(buildCatalog(t), aceconfig.DefaultConfig())
	resolved, err := tc.Resolve(symbolicRef(t))
	if err != nil {
		t.Fatal(err)
	}
	ref, ok := resolved.(ari.Reference)
	if !ok || !ref.Namespace.HasEnum || ref.Namespace.Enum != 1 {
		t.Fatalf("expected namespace enumerator to be filled in, got %+v", resolved)
	}
	if !ref.Object.HasEnum || ref.Object.Enum != 5 {
		t.Fatalf("expected object enumerator to be filled in, got %+v", resolved)
	}
	if !ref.IsResolved() {
		t.Fatal("expected the reference to be marked resolved")
	}
}

func TestResolveRejectsArityMismatch(t *testing.T) {
	tc := NewTranscoder(buildCatalog(t), aceconfig.DefaultConfig())
	one := ari.UVAST(1)
	ref, err := ari.NewReference(
		ari.NamespaceRef{Symbol: "IANA:ion_admin", HasSymbol: true},
		aritype.ObjCtrl,
		ari.ObjectRef{Symbol: "node_contact_add", HasSymbol: true},
		[]ari.Value{one},
		0, false,
	)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := tc.Resolve(ref); err == nil {
		t.Fatal("expected a signature error for the wrong parameter count")
	}
}

func TestResolveMustLookupFailsOnUnknownObject(t *testing.T) {
	cfg := aceconfig.DefaultConfig()
	cfg.MustLookup = true
	tc := NewTranscoder(buildCatalog(t), cfg)
	ref, err := ari.NewReference(
		ari.NamespaceRef{Symbol: "IANA:ion_admin", HasSymbol: true},
		aritype.ObjCtrl,
		ari.ObjectRef{Symbol: "missing_object", HasSymbol: true},
		nil, 0, false,
	)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := tc.Resolve(ref); err == nil {
		t.Fatal("expected a resolution error under MustLookup for an unknown object")
	}
}

func TestTranscodeTextToBinaryAndBack(t *testing.T) {
	tc := NewTranscoder(buildCatalog(t), aceconfig.DefaultConfig())
	text := "/IANA:ion_admin/CTRL.node_contact_add(UVAST.100,UVAST.200)"
	cborBytes, err := tc.Transcode(FormText, []byte(text), FormCBOR)
	if err != nil {
		t.Fatalf("text->cbor transcode: %v", err)
	}
	back, err := tc.Transcode(FormCBOR, cborBytes, FormText)
	if err != nil {
		t.Fatalf("cbor->text transcode: %v", err)
	}
	v1, err := tc.Decode(FormText, []byte(text))
	if err != nil {
		t.Fatal(err)
	}
	v2, err := tc.Decode(FormText, back)
	if err != nil {
		t.Fatal(err)
	}
	if !v1.Equal(v2) {
		t.Fatalf("round trip through binary changed semantics: %v vs %v", v1, v2)
	}
}

func TestTranscodeSameFamilySkipsResolution(t *testing.T) {
	cfg := aceconfig.DefaultConfig()
	cfg.MustLookup = false
	// No catalog at all: text->text must not need resolution.
	tc := NewTranscoder(nil, cfg)
	text := "/!1/CTRL.!5(UVAST.100)"
	out, err := tc.Transcode(FormText, []byte(text), FormText)
	if err != nil {
		t.Fatalf("text->text transcode without a catalog should not require resolution: %v", err)
	}
	if string(out) != "ari:"+text {
		t.Fatalf("Transcode(text->text) = %q, want %q", out, "ari:"+text)
	}
}

func TestFormCBORHexAcceptsPrefixAndRejectsOddLength(t *testing.T) {
	tc := NewTranscoder(nil, aceconfig.DefaultConfig())
	v := ari.UVAST(42)
	hexBytes, err := tc.Encode(v, FormCBORHex)
	if err != nil {
		t.Fatal(err)
	}
	got, err := tc.Decode(FormCBORHex, []byte("0x"+string(hexBytes)))
	if err != nil {
		t.Fatalf("Decode with 0x prefix: %v", err)
	}
	if !got.Equal(v) {
		t.Fatalf("0x-prefixed decode = %v, want %v", got, v)
	}
	if _, err := tc.Decode(FormCBORHex, []byte(string(hexBytes)+"f")); err == nil {
		t.Fatal("expected a decode error for odd-length hex input")
	}
}

func TestFormCBORHexRoundTrip(t *testing.T) {
	tc := NewTranscoder(nil, aceconfig.DefaultConfig())
	v := ari.UVAST(42)
	hexBytes, err := tc.Encode(v, FormCBORHex)
	if err != nil {
		t.Fatal(err)
	}
	got, err := tc.Decode(FormCBORHex, hexBytes)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(v) {
		t.Fatalf("FormCBORHex round trip = %v, want %v", got, v)
	}
}
