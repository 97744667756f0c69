package ari

import (
	"strconv"
	"strings"

	"github.com/dtn-ace/ace/aritype"
	"github.com/dtn-ace/ace/internal/aceerr"
)

// NamespaceRef names a namespace by symbol, by enumerator, or by both.
// At least one of Symbol/HasSymbol and Enum/HasEnum must be set.
type NamespaceRef struct {
	Symbol    string
	Enum      uint64
	HasSymbol bool
	HasEnum   bool
}

func (n NamespaceRef) String() string {
	if n.HasSymbol {
		return n.Symbol
	}
	return "!" + strconv.FormatUint(n.Enum, 10)
}

func (n NamespaceRef) equal(o NamespaceRef) bool {
	if n.HasSymbol && o.HasSymbol && n.Symbol != o.Symbol {
		return false
	}
	if n.HasEnum && o.HasEnum && n.Enum != o.Enum {
		return false
	}
	return n.HasSymbol == o.HasSymbol && n.HasEnum == o.HasEnum
}

// ObjectRef names an object within a namespace's object-type table by
// symbol, by enumerator, or by both.
type ObjectRef struct {
	Symbol    string
	Enum      uint64
	HasSymbol bool
	HasEnum   bool
}

func (o ObjectRef) String() string {
	if o.HasSymbol {
		return o.Symbol
	}
	return "!" + strconv.FormatUint(o.Enum, 10)
}

func (o ObjectRef) equal(p ObjectRef) bool {
	if o.HasSymbol && p.HasSymbol && o.Symbol != p.Symbol {
		return false
	}
	if o.HasEnum && p.HasEnum && o.Enum != p.Enum {
		return false
	}
	return o.HasSymbol == p.HasSymbol && o.HasEnum == p.HasEnum
}

// Reference is an ARI: a pointer to an ADM-defined object plus its actual
// parameter list. It is fully resolved once both the namespace and the
// object carry their symbolic and numeric identifiers and every
// parameter's declared type is known.
type Reference struct {
	Namespace NamespaceRef
	ObjType   aritype.ObjectType
	Object    ObjectRef
	Params    []Value
	Resolved  bool
}

// NewReference builds a Reference, checking the parameter count against
// the signature arity when sigKnown is set. An unknown signature leaves
// arity unchecked and the reference unresolved.
func NewReference(ns NamespaceRef, ot aritype.ObjectType, obj ObjectRef, params []Value, sigArity int, sigKnown bool) (Reference, error) {
	if sigKnown && len(params) != sigArity {
		return Reference{}, aceerr.Signaturef(aceerr.Position{}, "object %s expects %d parameters, got %d", obj, sigArity, len(params))
	}
	return Reference{
		Namespace: ns,
		ObjType:   ot,
		Object:    obj,
		Params:    params,
		Resolved:  sigKnown && ns.HasSymbol && ns.HasEnum && obj.HasSymbol && obj.HasEnum,
	}, nil
}

func (Reference) Kind() aritype.LiteralType {
	// A Reference's Kind is not a literal type; callers distinguish
	// references from literals via a type assertion to ari.Reference,
	// mirroring how the text/binary codecs dispatch on object-type code
	// rather than literal-type code for this one variant.
	return aritype.TypeUndefined
}

func (r Reference) String() string {
	parts := make([]string, len(r.Params))
	for i, p := range r.Params {
		parts[i] = p.String()
	}
	name, _ := aritype.NameForCode(aritype.SpaceObject, uint8(r.ObjType))
	return "/" + r.Namespace.String() + "/" + name + "." + r.Object.String() + "(" + strings.Join(parts, ",") + ")"
}

func (r Reference) Equal(other Value) bool {
	o, ok := other.(Reference)
	if !ok || r.ObjType != o.ObjType || len(r.Params) != len(o.Params) {
		return false
	}
	if !r.Namespace.equal(o.Namespace) || !r.Object.equal(o.Object) {
		return false
	}
	for i, p := range r.Params {
		if !p.Equal(o.Params[i]) {
			return false
		}
	}
	return true
}

// IsResolved reports whether both sides of every identifier in r are
// known and r was built against a known signature.
func (r Reference) IsResolved() bool {
	return r.Resolved
}

