package admfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dtn-ace/ace/admcat"
	"github.com/dtn-ace/ace/aritype"
)

const sampleADM = `{
	"moniker": "IANA:ion_admin",
	"enum": 1,
	"version": "1.0",
	"organization": "JPL",
	"objects": {
		"CTRL": [
			{
				"name": "node_contact_add",
				"enum": 5,
				"parameters": [
					{"name": "start", "type": "UVAST"},
					{"name": "stop", "type": "UVAST"}
				]
			}
		],
		"CONST": [
			{"name": "node_name", "enum": 1, "value_type": "TEXT"}
		]
	}
}`

func writeSample(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "ion_admin.json")
	if err := os.WriteFile(path, []byte(sampleADM), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadBuildsNamespace(t *testing.T) {
	ns, err := Load(writeSample(t))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if ns.Symbol != "IANA:ion_admin" || ns.Enum != 1 {
		t.Fatalf("unexpected namespace: %+v", ns)
	}
	desc := findDescriptor(t, ns.Table(aritype.ObjCtrl).All(), "node_contact_add")
	if desc.Enum != 5 || len(desc.Signature) != 2 {
		t.Fatalf("unexpected CTRL descriptor: %+v", desc)
	}
	if desc.Signature[0].Type != aritype.TypeUvast {
		t.Fatalf("unexpected parameter type: %v", desc.Signature[0].Type)
	}

	nameDesc := findDescriptor(t, ns.Table(aritype.ObjConst).All(), "node_name")
	if nameDesc.ValueType == nil || *nameDesc.ValueType != aritype.TypeText {
		t.Fatalf("unexpected CONST descriptor: %+v", nameDesc)
	}
}

func findDescriptor(t *testing.T, all []*admcat.ObjectDescriptor, name string) *admcat.ObjectDescriptor {
	t.Helper()
	for _, d := range all {
		if d.Name == name {
			return d
		}
	}
	t.Fatalf("descriptor %q not found", name)
	return nil
}

func TestLoadRejectsUnknownObjectType(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")
	bad := `{"moniker":"x","enum":1,"objects":{"NOTATYPE":[{"name":"a","enum":1}]}}`
	if err := os.WriteFile(path, []byte(bad), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected an error for an unknown object type")
	}
}

func TestLoadRejectsMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
