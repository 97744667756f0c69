// Package admfile loads an ADM definition from a JSON file on disk into
// an admcat.Namespace, memory-mapping the file rather than read()-ing it,
// since ADM definitions (and object catalogs assembled from many of
// them) can be large and are read-only for the lifetime of a
// transcoding session.
package admfile

import (
	"encoding/json"
	"os"

	mmap "github.com/edsrzf/mmap-go"

	"github.com/dtn-ace/ace/admcat"
	"github.com/dtn-ace/ace/aritype"
	"github.com/dtn-ace/ace/internal/aceerr"
)

// paramDoc is one declared parameter of an ADM object, as it appears in
// the JSON source.
type paramDoc struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// objectDoc is one ADM-declared object, as it appears in the JSON
// source.
type objectDoc struct {
	Name       string     `json:"name"`
	Enum       uint64     `json:"enum"`
	Parameters []paramDoc `json:"parameters,omitempty"`
	ValueType  string     `json:"value_type,omitempty"`
}

// namespaceDoc is the top-level shape of an ADM definition file.
type namespaceDoc struct {
	Moniker      string                 `json:"moniker"`
	Enum         uint64                 `json:"enum"`
	Version      string                 `json:"version,omitempty"`
	Organization string                 `json:"organization,omitempty"`
	Objects      map[string][]objectDoc `json:"objects"`
}

// Load reads the ADM definition at path and builds an admcat.Namespace
// from it.
func Load(path string) (*admcat.Namespace, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, aceerr.Decodef(aceerr.Position{}, "opening ADM file %s: %v", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, aceerr.Decodef(aceerr.Position{}, "statting ADM file %s: %v", path, err)
	}
	if info.Size() == 0 {
		return nil, aceerr.Decodef(aceerr.Position{}, "ADM file %s is empty", path)
	}

	data, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, aceerr.Decodef(aceerr.Position{}, "memory-mapping ADM file %s: %v", path, err)
	}
	defer data.Unmap()

	var doc namespaceDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, aceerr.Decodef(aceerr.Position{}, "parsing ADM file %s: %v", path, err)
	}
	return buildNamespace(doc)
}

func buildNamespace(doc namespaceDoc) (*admcat.Namespace, error) {
	ns := admcat.NewNamespace(doc.Moniker, doc.Enum)
	ns.Version = doc.Version
	ns.Organization = doc.Organization

	for otName, objs := range doc.Objects {
		otCode, ok := aritype.CodeForName(aritype.SpaceObject, otName)
		if !ok {
			return nil, aceerr.Decodef(aceerr.Position{}, "ADM %s: unknown object type %q", doc.Moniker, otName)
		}
		table := ns.Table(aritype.ObjectType(otCode))
		for _, od := range objs {
			desc, err := buildDescriptor(doc.Moniker, od)
			if err != nil {
				return nil, err
			}
			if err := table.Add(desc); err != nil {
				return nil, err
			}
		}
	}
	return ns, nil
}

func buildDescriptor(moniker string, od objectDoc) (*admcat.ObjectDescriptor, error) {
	sig := make([]admcat.ParamSpec, len(od.Parameters))
	for i, pd := range od.Parameters {
		lt, ok := aritype.CodeForName(aritype.SpaceLiteral, pd.Type)
		if !ok {
			return nil, aceerr.Decodef(aceerr.Position{}, "ADM %s object %s: unknown parameter type %q", moniker, od.Name, pd.Type)
		}
		sig[i] = admcat.ParamSpec{Name: pd.Name, Type: aritype.LiteralType(lt)}
	}
	desc := &admcat.ObjectDescriptor{Name: od.Name, Enum: od.Enum, Signature: sig}
	if od.ValueType != "" {
		lt, ok := aritype.CodeForName(aritype.SpaceLiteral, od.ValueType)
		if !ok {
			return nil, aceerr.Decodef(aceerr.Position{}, "ADM %s object %s: unknown value type %q", moniker, od.Name, od.ValueType)
		}
		vt := aritype.LiteralType(lt)
		desc.ValueType = &vt
	}
	return desc, nil
}
