// Package aritype is the authoritative, build-time-fixed enumeration of the
// two AMM code spaces: literal-type codes (the primitive and container
// value shapes) and object-type codes (the kinds of ADM-defined object an
// ARI can reference).
//
// Name matching is ASCII case-insensitive; canonical emission is
// upper-case. The numeric assignments below are this module's own closed,
// internally consistent registry; see DESIGN.md for why they are not
// claimed bit-exact against draft-birrane-dtn-adm-03.
package aritype

import (
	"strconv"
	"strings"
)

// LiteralType identifies a primitive or container AMM value shape.
type LiteralType uint8

// The closed set of literal-type codes.
const (
	TypeUndefined LiteralType = iota
	TypeNull
	TypeBool
	TypeInt8
	TypeUint8
	TypeInt16
	TypeUint16
	TypeInt32
	TypeUint32
	TypeInt64
	TypeUint64
	TypeVast
	TypeUvast
	TypeReal32
	TypeReal64
	TypeText
	TypeBytes
	TypeTP
	TypeTD
	TypeLabel
	TypeCBOR
	TypeAC
	TypeAM
	TypeTBL
	TypeExecSet
	TypeRptSet

	numLiteralTypes
)

const literalNames = "UNDEFINED|NULL|BOOL|INT8|UINT8|INT16|UINT16|INT32|UINT32|INT64|UINT64|VAST|UVAST|REAL32|REAL64|TEXT|BYTES|TP|TD|LABEL|CBOR|AC|AM|TBL|EXECSET|RPTSET"

var literalNameTable [numLiteralTypes]string

func init() {
	parts := strings.Split(literalNames, "|")
	for i, name := range parts {
		literalNameTable[i] = name
	}
}

// String returns the canonical upper-case name of t, or a numeric
// placeholder for an out-of-range value.
func (t LiteralType) String() string {
	if int(t) < len(literalNameTable) {
		return literalNameTable[t]
	}
	return "LIT<" + strconv.Itoa(int(t)) + ">"
}

// IsContainer reports whether t holds nested AMM values.
func (t LiteralType) IsContainer() bool {
	switch t {
	case TypeAC, TypeAM, TypeTBL, TypeExecSet, TypeRptSet:
		return true
	default:
		return false
	}
}

// IsPrimitive reports whether t is a scalar (non-container, non-undefined,
// non-null) value shape.
func (t LiteralType) IsPrimitive() bool {
	switch t {
	case TypeBool, TypeInt8, TypeUint8, TypeInt16, TypeUint16,
		TypeInt32, TypeUint32, TypeInt64, TypeUint64, TypeVast, TypeUvast,
		TypeReal32, TypeReal64, TypeText, TypeBytes, TypeTP, TypeTD, TypeLabel:
		return true
	default:
		return false
	}
}

// ObjectType identifies a kind of ADM-defined object.
type ObjectType uint8

// The closed set of object-type codes.
const (
	ObjConst ObjectType = iota
	ObjCtrl
	ObjEdd
	ObjVar
	ObjOper
	ObjRptt
	ObjTblt
	ObjIdent
	ObjMac
	ObjSbr
	ObjTbr

	numObjectTypes
)

const objectNames = "CONST|CTRL|EDD|VAR|OPER|RPTT|TBLT|IDENT|MAC|SBR|TBR"

var objectNameTable [numObjectTypes]string

func init() {
	parts := strings.Split(objectNames, "|")
	for i, name := range parts {
		objectNameTable[i] = name
	}
}

func (t ObjectType) String() string {
	if int(t) < len(objectNameTable) {
		return objectNameTable[t]
	}
	return "OBJ<" + strconv.Itoa(int(t)) + ">"
}

// Space selects which code space a name/code lookup applies to.
type Space int

const (
	SpaceLiteral Space = iota
	SpaceObject
)

var (
	literalByName = make(map[string]LiteralType, numLiteralTypes)
	objectByName  = make(map[string]ObjectType, numObjectTypes)
)

func init() {
	for i, name := range literalNameTable {
		literalByName[name] = LiteralType(i)
	}
	for i, name := range objectNameTable {
		objectByName[name] = ObjectType(i)
	}
}

// CodeForName looks up the numeric code for name within space. Matching is
// ASCII case-insensitive; name need not already be upper-case.
func CodeForName(space Space, name string) (uint8, bool) {
	upper := strings.ToUpper(name)
	switch space {
	case SpaceLiteral:
		t, ok := literalByName[upper]
		return uint8(t), ok
	case SpaceObject:
		t, ok := objectByName[upper]
		return uint8(t), ok
	default:
		return 0, false
	}
}

// NameForCode returns the canonical upper-case name for code within space.
func NameForCode(space Space, code uint8) (string, bool) {
	switch space {
	case SpaceLiteral:
		if code >= uint8(numLiteralTypes) {
			return "", false
		}
		return literalNameTable[code], true
	case SpaceObject:
		if code >= uint8(numObjectTypes) {
			return "", false
		}
		return objectNameTable[code], true
	default:
		return "", false
	}
}

// IsContainer reports whether code, interpreted as a literal-type code, is
// a container shape.
func IsContainer(code uint8) bool { return LiteralType(code).IsContainer() }

// IsPrimitive reports whether code, interpreted as a literal-type code, is
// a scalar shape.
func IsPrimitive(code uint8) bool { return LiteralType(code).IsPrimitive() }

// IsObjectType reports whether code is a recognized object-type code.
func IsObjectType(code uint8) bool { return code < uint8(numObjectTypes) }

