package ari

import "testing"

func TestNewTBLDivisibility(t *testing.T) {
	one := Bool(true)
	flat := []Value{one, one, one, one}
	if _, err := NewTBL(2, flat); err != nil {
		t.Fatalf("4 elements over 2 columns must be valid: %v", err)
	}
	if _, err := NewTBL(3, flat); err == nil {
		t.Fatal("4 elements over 3 columns must be rejected as not divisible")
	}
}

func TestTBLRows(t *testing.T) {
	a, _ := NewInt(32, 1)
	b, _ := NewInt(32, 2)
	c, _ := NewInt(32, 3)
	d, _ := NewInt(32, 4)
	tbl, err := NewTBL(2, []Value{a, b, c, d})
	if err != nil {
		t.Fatal(err)
	}
	if tbl.Rows() != 2 {
		t.Fatalf("expected 2 rows, got %d", tbl.Rows())
	}
}

func TestAMGetPreservesOrderAndLookup(t *testing.T) {
	k1 := Text("a")
	k2 := Text("b")
	v1, _ := NewInt(32, 1)
	v2, _ := NewInt(32, 2)
	m := AM{Pairs: []AMPair{{Key: k1, Value: v1}, {Key: k2, Value: v2}}}
	got, ok := m.Get(k2)
	if !ok || !got.Equal(v2) {
		t.Fatalf("Get(b) = %v, %v", got, ok)
	}
	if _, ok := m.Get(Text("missing")); ok {
		t.Fatal("Get of an absent key must report not-found")
	}
}

func TestExecSetEqual(t *testing.T) {
	id := Text("set1")
	a, _ := NewInt(32, 1)
	b, _ := NewInt(32, 1)
	x := ExecSet{ID: id, Targets: []Value{a}}
	y := ExecSet{ID: id, Targets: []Value{b}}
	if !x.Equal(y) {
		t.Fatal("ExecSets with equal id and targets must be equal")
	}
}
