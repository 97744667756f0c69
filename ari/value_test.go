package ari

import "testing"

func TestIntWidthAndSignCrossTypeInequality(t *testing.T) {
	u32, err := NewUint(32, 1)
	if err != nil {
		t.Fatal(err)
	}
	i32, err := NewInt(32, 1)
	if err != nil {
		t.Fatal(err)
	}
	if u32.Equal(i32) || i32.Equal(u32) {
		t.Fatal("UINT.1 must not equal INT.1 even though numerically the same")
	}
	if u32.Equal(UVAST(1)) {
		t.Fatal("UINT32.1 must not equal UVAST.1")
	}
	if VAST(1).Equal(UVAST(1)) {
		t.Fatal("VAST.1 must not equal UVAST.1")
	}

	i16a, _ := NewInt(16, 5)
	i16b, _ := NewInt(16, 5)
	if !i16a.Equal(i16b) {
		t.Fatal("two identical Int values of the same width/sign must be equal")
	}

	i16, _ := NewInt(16, 5)
	i32b, _ := NewInt(32, 5)
	if i16.Equal(i32b) {
		t.Fatal("Int values of different widths must not be equal even with the same value")
	}
}

func TestIntRangeRejection(t *testing.T) {
	if _, err := NewInt(16, 32767); err != nil {
		t.Fatalf("INT16.32767 must be in range: %v", err)
	}
	if _, err := NewInt(16, 32768); err == nil {
		t.Fatal("INT16.32768 must be rejected as out of range")
	}
	if _, err := NewInt(32, 32768); err != nil {
		t.Fatalf("INT32.32768 must be in range: %v", err)
	}
	if _, err := NewUint(8, 256); err == nil {
		t.Fatal("UINT8.256 must be rejected as out of range")
	}
	if _, err := NewUint(8, 255); err != nil {
		t.Fatalf("UINT8.255 must be in range: %v", err)
	}
}

func TestUndefinedDistinctFromNull(t *testing.T) {
	if (Undefined{}).Equal(Null{}) {
		t.Fatal("undefined must not equal null")
	}
}

func TestBytesEqual(t *testing.T) {
	a := Bytes{0xde, 0xad, 0xbe, 0xef}
	b := Bytes{0xde, 0xad, 0xbe, 0xef}
	c := Bytes{0xde, 0xad, 0xbe, 0xf0}
	if !a.Equal(b) {
		t.Fatal("identical byte strings must be equal")
	}
	if a.Equal(c) {
		t.Fatal("differing byte strings must not be equal")
	}
	if a.String() != "h'deadbeef'" {
		t.Fatalf("unexpected byte string rendering: %s", a.String())
	}
}

func TestACEqual(t *testing.T) {
	a := AC{Elems: []Value{Bool(true), Int8Must(t, 1)}}
	b := AC{Elems: []Value{Bool(true), Int8Must(t, 1)}}
	c := AC{Elems: []Value{Bool(false), Int8Must(t, 1)}}
	if !a.Equal(b) {
		t.Fatal("equal AC values must compare equal")
	}
	if a.Equal(c) {
		t.Fatal("differing AC values must not compare equal")
	}
}

// Int8Must is a small test helper building a signed 8-bit Int.
func Int8Must(t *testing.T, v int64) Int {
	t.Helper()
	i, err := NewInt(8, v)
	if err != nil {
		t.Fatal(err)
	}
	return i
}
