package admcat

import (
	"testing"

	"github.com/dtn-ace/ace/aritype"
)

func buildIonAdmin(t *testing.T) *Catalog {
	t.Helper()
	cat := NewCatalog()
	ns := NewNamespace("IANA:ion_admin", 1)
	ctrl := ns.Table(aritype.ObjCtrl)
	if err := ctrl.Add(&ObjectDescriptor{
		Name: "node_contact_add",
		Enum: 5,
		Signature: []ParamSpec{
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

func TestResolveNamespaceBothDirections(t *testing.T) {
	cat := buildIonAdmin(t)
	ns, ok := cat.ResolveNamespace("IANA:ion_admin")
	if !ok || ns.Enum != 1 {
		t.Fatalf("ResolveNamespace failed: %v %v", ns, ok)
	}
	ns2, ok := cat.ResolveNamespaceByEnum(1)
	if !ok || ns2.Symbol != "IANA:ion_admin" {
		t.Fatalf("ResolveNamespaceByEnum failed: %v %v", ns2, ok)
	}
}

func TestResolveObjectByNameAndEnum(t *testing.T) {
	cat := buildIonAdmin(t)
	ns, _ := cat.ResolveNamespace("IANA:ion_admin")
	byName, ok := cat.ResolveObject(ns, aritype.ObjCtrl, "node_contact_add")
	if !ok || byName.Enum != 5 {
		t.Fatalf("ResolveObject by name failed: %v %v", byName, ok)
	}
	byEnum, ok := cat.ResolveObject(ns, aritype.ObjCtrl, uint64(5))
	if !ok || byEnum.Name != "node_contact_add" {
		t.Fatalf("ResolveObject by enum failed: %v %v", byEnum, ok)
	}
	if _, ok := cat.ResolveObject(ns, aritype.ObjCtrl, "missing"); ok {
		t.Fatal("expected missing object to not resolve")
	}
}

func TestAddADMRejectsCollisions(t *testing.T) {
	cat := buildIonAdmin(t)
	dup := NewNamespace("IANA:ion_admin", 2)
	if err := cat.AddADM(dup); err == nil {
		t.Fatal("expected duplicate moniker to be rejected")
	}
	dupEnum := NewNamespace("other", 1)
	if err := cat.AddADM(dupEnum); err == nil {
		t.Fatal("expected duplicate enumerator to be rejected")
	}
}

func TestObjectTableRejectsCollisions(t *testing.T) {
	ns := NewNamespace("ns", 10)
	tbl := ns.Table(aritype.ObjCtrl)
	if err := tbl.Add(&ObjectDescriptor{Name: "a", Enum: 1}); err != nil {
		t.Fatal(err)
	}
	if err := tbl.Add(&ObjectDescriptor{Name: "a", Enum: 2}); err == nil {
		t.Fatal("expected duplicate name to be rejected")
	}
	if err := tbl.Add(&ObjectDescriptor{Name: "b", Enum: 1}); err == nil {
		t.Fatal("expected duplicate enumerator to be rejected")
	}
}
