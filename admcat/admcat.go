// Package admcat is the in-memory ADM catalog: it resolves symbolic
// namespace/object names to numeric identifiers and supplies the parameter
// signatures the transcoder facade (package ace) checks during resolution.
//
// A Catalog is built once (via AddADM) and treated as read-only
// afterwards; concurrent codec calls share it by pointer without
// coordination.
package admcat

import (
	"github.com/dtn-ace/ace/ari"
	"github.com/dtn-ace/ace/aritype"
	"github.com/dtn-ace/ace/internal/aceerr"
)

// ParamSpec is one entry of an object's declared parameter signature.
type ParamSpec struct {
	Name    string
	Type    aritype.LiteralType
	Default ari.Value // nil when the parameter has no default
}

// ObjectDescriptor is one ADM-declared object: its name/enumerator pair,
// its parameter signature, and, for value-bearing object types
// (CONST/VAR/EDD), the declared type of its value.
type ObjectDescriptor struct {
	Name      string
	Enum      uint64
	Signature []ParamSpec
	ValueType *aritype.LiteralType
}

// ObjectTable holds all objects of one object-type within one namespace.
type ObjectTable struct {
	byName map[string]*ObjectDescriptor
	byEnum map[uint64]*ObjectDescriptor
	all    []*ObjectDescriptor
}

func newObjectTable() *ObjectTable {
	return &ObjectTable{
		byName: make(map[string]*ObjectDescriptor),
		byEnum: make(map[uint64]*ObjectDescriptor),
	}
}

// Add installs desc, rejecting a name or enumerator collision within this
// table: names and enumerators are unique per namespace+object-type.
func (t *ObjectTable) Add(desc *ObjectDescriptor) error {
	if _, exists := t.byName[desc.Name]; exists {
		return aceerr.Resolutionf(aceerr.Position{}, "duplicate object name %q", desc.Name)
	}
	if _, exists := t.byEnum[desc.Enum]; exists {
		return aceerr.Resolutionf(aceerr.Position{}, "duplicate object enumerator %d for name %q", desc.Enum, desc.Name)
	}
	t.byName[desc.Name] = desc
	t.byEnum[desc.Enum] = desc
	t.all = append(t.all, desc)
	return nil
}

// All returns every descriptor in this table, in insertion order.
func (t *ObjectTable) All() []*ObjectDescriptor {
	return t.all
}

// Namespace describes one ADM: its symbolic name, numeric enumerator, and
// the per-object-type tables of objects it declares.
type Namespace struct {
	Symbol       string
	Enum         uint64
	Version      string
	Organization string
	Objects      map[aritype.ObjectType]*ObjectTable
}

// NewNamespace builds an empty namespace ready to receive objects via
// the tables Table returns.
func NewNamespace(symbol string, enum uint64) *Namespace {
	return &Namespace{
		Symbol:  symbol,
		Enum:    enum,
		Objects: make(map[aritype.ObjectType]*ObjectTable),
	}
}

// Table returns ns's table for ot, creating it on first use.
func (ns *Namespace) Table(ot aritype.ObjectType) *ObjectTable {
	t, ok := ns.Objects[ot]
	if !ok {
		t = newObjectTable()
		ns.Objects[ot] = t
	}
	return t
}

// Catalog maps namespace monikers and enumerators to Namespace records. It
// spans one transcoding session.
type Catalog struct {
	byMoniker map[string]*Namespace
	byEnum    map[uint64]*Namespace
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		byMoniker: make(map[string]*Namespace),
		byEnum:    make(map[uint64]*Namespace),
	}
}

// AddADM installs ns, rejecting a moniker or enumerator already present in
// the catalog: namespace enumerators are unique across the catalog.
func (c *Catalog) AddADM(ns *Namespace) error {
	if _, exists := c.byMoniker[ns.Symbol]; exists {
		return aceerr.Resolutionf(aceerr.Position{}, "duplicate namespace moniker %q", ns.Symbol)
	}
	if _, exists := c.byEnum[ns.Enum]; exists {
		return aceerr.Resolutionf(aceerr.Position{}, "duplicate namespace enumerator %d for moniker %q", ns.Enum, ns.Symbol)
	}
	c.byMoniker[ns.Symbol] = ns
	c.byEnum[ns.Enum] = ns
	return nil
}

// ResolveNamespace looks up a namespace by its symbolic moniker.
func (c *Catalog) ResolveNamespace(symbol string) (*Namespace, bool) {
	ns, ok := c.byMoniker[symbol]
	return ns, ok
}

// ResolveNamespaceByEnum looks up a namespace by its numeric enumerator.
func (c *Catalog) ResolveNamespaceByEnum(enum uint64) (*Namespace, bool) {
	ns, ok := c.byEnum[enum]
	return ns, ok
}

// ResolveObject looks up an object within ns's ot table by either a string
// name or a uint64 enumerator.
func (c *Catalog) ResolveObject(ns *Namespace, ot aritype.ObjectType, nameOrEnum interface{}) (*ObjectDescriptor, bool) {
	table, ok := ns.Objects[ot]
	if !ok {
		return nil, false
	}
	switch v := nameOrEnum.(type) {
	case string:
		d, ok := table.byName[v]
		return d, ok
	case uint64:
		d, ok := table.byEnum[v]
		return d, ok
	default:
		return nil, false
	}
}

// SignatureOf returns desc's declared parameter signature.
func (c *Catalog) SignatureOf(desc *ObjectDescriptor) []ParamSpec {
	return desc.Signature
}
