package ari

import (
	"testing"

	"github.com/dtn-ace/ace/aritype"
)

func TestNewReferenceSignatureArity(t *testing.T) {
	ns := NamespaceRef{Symbol: "IANA:ion_admin", HasSymbol: true, Enum: 1, HasEnum: true}
	obj := ObjectRef{Symbol: "node_contact_add", HasSymbol: true, Enum: 5, HasEnum: true}
	one, _ := NewInt(32, 1)

	if _, err := NewReference(ns, aritype.ObjCtrl, obj, []Value{one}, 2, true); err == nil {
		t.Fatal("expected a SignatureError for an arity mismatch")
	}
	ref, err := NewReference(ns, aritype.ObjCtrl, obj, []Value{one}, 1, true)
	if err != nil {
		t.Fatalf("unexpected error for a matching arity: %v", err)
	}
	if !ref.IsResolved() {
		t.Fatal("reference with both symbol and enum on each side, and a known signature, must be resolved")
	}
}

func TestNewReferenceUnresolvedWhenSignatureUnknown(t *testing.T) {
	ns := NamespaceRef{Symbol: "IANA:ion_admin", HasSymbol: true}
	obj := ObjectRef{Symbol: "node_contact_add", HasSymbol: true}
	ref, err := NewReference(ns, aritype.ObjCtrl, obj, nil, 0, false)
	if err != nil {
		t.Fatal(err)
	}
	if ref.IsResolved() {
		t.Fatal("a reference built with an unknown signature must not be marked resolved")
	}
}

func TestReferenceEqual(t *testing.T) {
	ns := NamespaceRef{Symbol: "IANA:ion_admin", HasSymbol: true}
	obj := ObjectRef{Symbol: "node_contact_add", HasSymbol: true}
	one, _ := NewInt(32, 1)
	a, _ := NewReference(ns, aritype.ObjCtrl, obj, []Value{one}, 0, false)
	b, _ := NewReference(ns, aritype.ObjCtrl, obj, []Value{one}, 0, false)
	if !a.Equal(b) {
		t.Fatal("structurally identical references must be equal")
	}
	other := ObjectRef{Symbol: "other", HasSymbol: true}
	c, _ := NewReference(ns, aritype.ObjCtrl, other, []Value{one}, 0, false)
	if a.Equal(c) {
		t.Fatal("references to different objects must not be equal")
	}
}
