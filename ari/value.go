// Package ari is the in-memory algebraic representation of an AMM value or
// ARI: the recursively-typed structure the text and binary codecs parse
// into and unparse/encode from.
//
// A Value is immutable once constructed; every constructor validates its
// argument and returns an error instead of building a value that would
// violate a structural invariant (integer range, TBL divisibility, ...).
package ari

import (
	"math"
	"strconv"

	"github.com/dtn-ace/ace/aritype"
	"github.com/dtn-ace/ace/internal/aceerr"
)

// Value is implemented by every AMM value variant. Equal is structural and
// type-aware: two values of different Kind are never equal, even when
// numerically the same.
type Value interface {
	Kind() aritype.LiteralType
	Equal(other Value) bool
	String() string
}

// Undefined is the absence of a value, distinct from Null.
type Undefined struct{}

func (Undefined) Kind() aritype.LiteralType { return aritype.TypeUndefined }
func (Undefined) String() string            { return "undefined" }
func (Undefined) Equal(other Value) bool {
	_, ok := other.(Undefined)
	return ok
}

// Null is the AMM null value.
type Null struct{}

func (Null) Kind() aritype.LiteralType { return aritype.TypeNull }
func (Null) String() string            { return "null" }
func (Null) Equal(other Value) bool {
	_, ok := other.(Null)
	return ok
}

// Bool is a boolean value.
type Bool bool

func (Bool) Kind() aritype.LiteralType { return aritype.TypeBool }
func (b Bool) String() string {
	if b {
		return "true"
	}
	return "false"
}
func (b Bool) Equal(other Value) bool {
	o, ok := other.(Bool)
	return ok && o == b
}

// intRange reports the inclusive [min,max] range for a signed integer of
// the given bit width.
func intRange(width int) (min, max int64) {
	switch width {
	case 8:
		return math.MinInt8, math.MaxInt8
	case 16:
		return math.MinInt16, math.MaxInt16
	case 32:
		return math.MinInt32, math.MaxInt32
	case 64:
		return math.MinInt64, math.MaxInt64
	default:
		return 0, 0
	}
}

// uintRange reports the inclusive [0,max] range for an unsigned integer of
// the given bit width.
func uintRange(width int) (max uint64) {
	switch width {
	case 8:
		return math.MaxUint8
	case 16:
		return math.MaxUint16
	case 32:
		return math.MaxUint32
	case 64:
		return math.MaxUint64
	default:
		return 0
	}
}

func literalTypeForInt(width int, signed bool) (aritype.LiteralType, bool) {
	switch {
	case width == 8 && signed:
		return aritype.TypeInt8, true
	case width == 8 && !signed:
		return aritype.TypeUint8, true
	case width == 16 && signed:
		return aritype.TypeInt16, true
	case width == 16 && !signed:
		return aritype.TypeUint16, true
	case width == 32 && signed:
		return aritype.TypeInt32, true
	case width == 32 && !signed:
		return aritype.TypeUint32, true
	case width == 64 && signed:
		return aritype.TypeInt64, true
	case width == 64 && !signed:
		return aritype.TypeUint64, true
	default:
		return 0, false
	}
}

// Int is a fixed-width signed or unsigned integer scalar, width in
// {8,16,32,64}. Equality never coerces across width or signedness: a
// 32-bit UINT and a 32-bit INT holding the same numeric value are unequal,
// and so are two Int values of different width.
type Int struct {
	Width  int
	Signed bool
	Value  int64  // valid when Signed
	UValue uint64 // valid when !Signed
}

// NewInt constructs a signed Int of the given width, rejecting a value
// outside the width's signed range.
func NewInt(width int, value int64) (Int, error) {
	min, max := intRange(width)
	if _, ok := literalTypeForInt(width, true); !ok {
		return Int{}, aceerr.Typef(aceerr.Position{}, "unsupported signed integer width %d", width)
	}
	if value < min || value > max {
		return Int{}, aceerr.Typef(aceerr.Position{}, "value %d out of range for signed %d-bit integer", value, width)
	}
	return Int{Width: width, Signed: true, Value: value}, nil
}

// NewUint constructs an unsigned Int of the given width, rejecting a value
// outside the width's unsigned range.
func NewUint(width int, value uint64) (Int, error) {
	max := uintRange(width)
	if _, ok := literalTypeForInt(width, false); !ok {
		return Int{}, aceerr.Typef(aceerr.Position{}, "unsupported unsigned integer width %d", width)
	}
	if value > max {
		return Int{}, aceerr.Typef(aceerr.Position{}, "value %d out of range for unsigned %d-bit integer", value, width)
	}
	return Int{Width: width, Signed: false, UValue: value}, nil
}

func (i Int) Kind() aritype.LiteralType {
	t, _ := literalTypeForInt(i.Width, i.Signed)
	return t
}

func (i Int) String() string {
	if i.Signed {
		return i.Kind().String() + "." + strconv.FormatInt(i.Value, 10)
	}
	return i.Kind().String() + "." + strconv.FormatUint(i.UValue, 10)
}

func (i Int) Equal(other Value) bool {
	o, ok := other.(Int)
	if !ok {
		return false
	}
	if i.Width != o.Width || i.Signed != o.Signed {
		return false
	}
	if i.Signed {
		return i.Value == o.Value
	}
	return i.UValue == o.UValue
}

// VAST is a 64-bit signed "very large" integer, distinct from Int{Width:64,
// Signed:true} even though its range is identical.
type VAST int64

func (VAST) Kind() aritype.LiteralType { return aritype.TypeVast }
func (v VAST) String() string          { return "VAST." + strconv.FormatInt(int64(v), 10) }
func (v VAST) Equal(other Value) bool {
	o, ok := other.(VAST)
	return ok && o == v
}

// UVAST is a 64-bit unsigned "very large" integer.
type UVAST uint64

func (UVAST) Kind() aritype.LiteralType { return aritype.TypeUvast }
func (u UVAST) String() string          { return "UVAST." + strconv.FormatUint(uint64(u), 10) }
func (u UVAST) Equal(other Value) bool {
	o, ok := other.(UVAST)
	return ok && o == u
}

// Real32 is an IEEE 754 binary32 value.
type Real32 float32

func (Real32) Kind() aritype.LiteralType { return aritype.TypeReal32 }
func (r Real32) String() string          { return "REAL32." + strconv.FormatFloat(float64(r), 'g', -1, 32) }
func (r Real32) Equal(other Value) bool {
	o, ok := other.(Real32)
	return ok && o == r
}

// Real64 is an IEEE 754 binary64 value.
type Real64 float64

func (Real64) Kind() aritype.LiteralType { return aritype.TypeReal64 }
func (r Real64) String() string          { return "REAL64." + strconv.FormatFloat(float64(r), 'g', -1, 64) }
func (r Real64) Equal(other Value) bool {
	o, ok := other.(Real64)
	return ok && o == r
}

// Text is a UTF-8 text string.
type Text string

func (Text) Kind() aritype.LiteralType { return aritype.TypeText }
func (t Text) String() string          { return string(t) }
func (t Text) Equal(other Value) bool {
	o, ok := other.(Text)
	return ok && o == t
}

// Bytes is an opaque byte string.
type Bytes []byte

func (Bytes) Kind() aritype.LiteralType { return aritype.TypeBytes }
func (b Bytes) String() string          { return "h'" + hexLower(b) + "'" }
func (b Bytes) Equal(other Value) bool {
	o, ok := other.(Bytes)
	if !ok || len(o) != len(b) {
		return false
	}
	for i := range b {
		if b[i] != o[i] {
			return false
		}
	}
	return true
}

// Label is a short, interned identifier, carried as either an integer
// enumerator or as text (never both).
type Label struct {
	Enum   uint64
	Name   string
	IsEnum bool
}

func (Label) Kind() aritype.LiteralType { return aritype.TypeLabel }
func (l Label) String() string {
	if l.IsEnum {
		return "LABEL." + strconv.FormatUint(l.Enum, 10)
	}
	return "LABEL." + l.Name
}
func (l Label) Equal(other Value) bool {
	o, ok := other.(Label)
	return ok && o.IsEnum == l.IsEnum && o.Enum == l.Enum && o.Name == l.Name
}

// CBORItem is a nested, opaque CBOR item preserved bit-exactly: its Raw
// bytes are the item as originally encoded, unknown tags included.
type CBORItem struct {
	Raw []byte
}

func (CBORItem) Kind() aritype.LiteralType { return aritype.TypeCBOR }
func (c CBORItem) String() string          { return "CBOR.h'" + hexLower(c.Raw) + "'" }
func (c CBORItem) Equal(other Value) bool {
	o, ok := other.(CBORItem)
	if !ok || len(o.Raw) != len(c.Raw) {
		return false
	}
	for i := range c.Raw {
		if c.Raw[i] != o.Raw[i] {
			return false
		}
	}
	return true
}

func hexLower(b []byte) string {
	const digits = "0123456789abcdef"
	out := make([]byte, len(b)*2)
	for i, v := range b {
		out[i*2] = digits[v>>4]
		out[i*2+1] = digits[v&0xf]
	}
	return string(out)
}
