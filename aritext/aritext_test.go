package aritext

import (
	"testing"

	"github.com/dtn-ace/ace/ari"
	"github.com/dtn-ace/ace/aritype"
)

func roundTrip(t *testing.T, v ari.Value) {
	t.Helper()
	s, err := Unparse(v)
	if err != nil {
		t.Fatalf("Unparse(%v) error: %v", v, err)
	}
	got, err := Parse(s)
	if err != nil {
		t.Fatalf("Parse(%q) error: %v", s, err)
	}
	if !got.Equal(v) {
		t.Fatalf("round trip mismatch via %q: got %v, want %v", s, got, v)
	}
}

func TestRoundTripScalars(t *testing.T) {
	i16, _ := ari.NewInt(16, -30000)
	u8, _ := ari.NewUint(8, 255)
	cases := []ari.Value{
		ari.Null{},
		ari.Bool(true),
		ari.Bool(false),
		i16,
		u8,
		ari.VAST(-123456789),
		ari.UVAST(123456789),
		ari.Real32(1.25),
		ari.Real64(-2.5),
		ari.Text("hello world"),
		ari.Bytes{0xde, 0xad, 0xbe, 0xef},
		ari.Label{IsEnum: true, Enum: 7},
		ari.Label{Name: "my-label"},
		ari.TP{Seconds: 742896970},
		ari.TP{Seconds: 5, Nanos: 500000000},
		ari.TD{Seconds: -3, Nanos: 0},
		ari.CBORItem{Raw: []byte{0x01, 0x02, 0x03}},
	}
	for _, v := range cases {
		roundTrip(t, v)
	}
}

func TestRoundTripContainers(t *testing.T) {
	one, _ := ari.NewInt(32, 1)
	two, _ := ari.NewInt(32, 2)
	ac := ari.AC{Elems: []ari.Value{one, two}}
	am := ari.AM{Pairs: []ari.AMPair{{Key: ari.Text("k"), Value: one}}}
	tbl, _ := ari.NewTBL(2, []ari.Value{one, two, two, one})
	es := ari.ExecSet{ID: ari.UVAST(1), Targets: []ari.Value{ac}}
	rs := ari.RptSet{
		ID: ari.UVAST(2),
		Entries: []ari.RptEntry{
			{Time: ari.TP{Seconds: 1}, Source: ari.UVAST(3), Values: []ari.Value{one, two}},
		},
	}
	for _, v := range []ari.Value{ac, am, tbl, es, rs} {
		roundTrip(t, v)
	}
}

func TestRoundTripReference(t *testing.T) {
	one, _ := ari.NewInt(32, 1)
	ns := ari.NamespaceRef{Symbol: "IANA:ion_admin", HasSymbol: true}
	obj := ari.ObjectRef{Symbol: "node_contact_add", HasSymbol: true}
	ref, err := ari.NewReference(ns, aritype.ObjCtrl, obj, []ari.Value{one}, 0, false)
	if err != nil {
		t.Fatal(err)
	}
	roundTrip(t, ref)

	enumNs := ari.NamespaceRef{Enum: 1, HasEnum: true}
	enumObj := ari.ObjectRef{Enum: 5, HasEnum: true}
	enumRef, err := ari.NewReference(enumNs, aritype.ObjCtrl, enumObj, nil, 0, false)
	if err != nil {
		t.Fatal(err)
	}
	roundTrip(t, enumRef)
}

func TestUndefinedTextForm(t *testing.T) {
	s, err := Unparse(ari.Undefined{})
	if err != nil {
		t.Fatal(err)
	}
	if s != "ari:/undefined" {
		t.Fatalf("Unparse(Undefined) = %q, want %q", s, "ari:/undefined")
	}
	v, err := Parse(s)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := v.(ari.Undefined); !ok {
		t.Fatalf("Parse(%q) = %v, want Undefined", s, v)
	}
}

func TestParseNestedUndefinedInAC(t *testing.T) {
	v, err := Parse("AC(/undefined,BOOL.true)")
	if err != nil {
		t.Fatal(err)
	}
	ac, ok := v.(ari.AC)
	if !ok || len(ac.Elems) != 2 {
		t.Fatalf("unexpected parse result: %v", v)
	}
	if _, ok := ac.Elems[0].(ari.Undefined); !ok {
		t.Fatalf("expected first AC element to be Undefined, got %v", ac.Elems[0])
	}
}

func TestParseByteStringEncodings(t *testing.T) {
	v, err := Parse("BYTES.h'deadbeef'")
	if err != nil {
		t.Fatal(err)
	}
	want := ari.Bytes{0xde, 0xad, 0xbe, 0xef}
	if !v.Equal(want) {
		t.Fatalf("Parse hex byte string = %v, want %v", v, want)
	}
}

func TestRoundTripTextWithStructuralCharacters(t *testing.T) {
	cases := []ari.Text{
		"a,b",
		"f(x)=y;z",
		"quote\"inside",
		"trailing space ",
	}
	for _, v := range cases {
		roundTrip(t, v)
	}
	one, _ := ari.NewInt(32, 1)
	roundTrip(t, ari.AC{Elems: []ari.Value{ari.Text("a,b"), one}})
}

func TestParseQuotedText(t *testing.T) {
	v, err := Parse(`TEXT."hello%20world"`)
	if err != nil {
		t.Fatal(err)
	}
	if !v.Equal(ari.Text("hello world")) {
		t.Fatalf("Parse quoted TEXT = %v, want %q", v, "hello world")
	}
}

func TestParseWidthFreeIntegerAliases(t *testing.T) {
	u32, _ := ari.NewUint(32, 2)
	i32, _ := ari.NewInt(32, -7)
	u8, _ := ari.NewUint(8, 200)
	cases := []struct {
		in   string
		want ari.Value
	}{
		{"UINT.2", u32},
		{"INT.-7", i32},
		{"BYTE.200", u8},
	}
	for _, tt := range cases {
		got, err := Parse(tt.in)
		if err != nil {
			t.Fatalf("Parse(%q) error: %v", tt.in, err)
		}
		if !got.Equal(tt.want) {
			t.Errorf("Parse(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseIgnoresWhitespaceOutsideQuotes(t *testing.T) {
	spaced, err := Parse("AC( UVAST.1 , UVAST.2 )")
	if err != nil {
		t.Fatal(err)
	}
	tight, err := Parse("AC(UVAST.1,UVAST.2)")
	if err != nil {
		t.Fatal(err)
	}
	if !spaced.Equal(tight) {
		t.Fatalf("whitespace changed parse result: %v vs %v", spaced, tight)
	}

	tbl, err := Parse("TBL(c=2; UVAST.1, UVAST.2; UVAST.3, UVAST.4)")
	if err != nil {
		t.Fatal(err)
	}
	if got := tbl.(ari.TBL); got.Cols != 2 || got.Rows() != 2 {
		t.Fatalf("unexpected spaced TBL parse: %v", tbl)
	}
}

func TestParseTimeISOForms(t *testing.T) {
	tp, err := Parse("TP.2000-01-01T00:01:40Z")
	if err != nil {
		t.Fatal(err)
	}
	if !tp.Equal(ari.TP{Seconds: 100}) {
		t.Fatalf("ISO TP parse = %v, want TP.100", tp)
	}
	td, err := Parse("TD.PT1M30S")
	if err != nil {
		t.Fatal(err)
	}
	if !td.Equal(ari.TD{Seconds: 90}) {
		t.Fatalf("ISO TD parse = %v, want TD.90", td)
	}
	tdDay, err := Parse("TD.P1DT0.5S")
	if err != nil {
		t.Fatal(err)
	}
	if !tdDay.Equal(ari.TD{Seconds: 86400, Nanos: 500000000}) {
		t.Fatalf("ISO TD day parse = %v, want TD.86400.5", tdDay)
	}
	if _, err := Parse("TD.P1Y"); err == nil {
		t.Fatal("expected calendar-unit durations to be rejected")
	}
}

func TestRoundTripNegativeFractionalTD(t *testing.T) {
	roundTrip(t, ari.TD{Seconds: -90, Nanos: -500000000})
	roundTrip(t, ari.TD{Seconds: 0, Nanos: -500000000})
}

func TestParseRejectsUnknownLiteralType(t *testing.T) {
	if _, err := Parse("FROB.1"); err == nil {
		t.Fatal("expected a syntax error for an unknown literal type")
	}
}

func TestParseRejectsMissingClosingParen(t *testing.T) {
	if _, err := Parse("AC(BOOL.true"); err == nil {
		t.Fatal("expected a syntax error for an unterminated AC")
	}
}

func TestParseRejectsOutOfRangeInt(t *testing.T) {
	if _, err := Parse("INT8.200"); err == nil {
		t.Fatal("expected a type error for an out-of-range INT8 literal")
	}
}

func TestParseTBLCanonicalForm(t *testing.T) {
	v, err := Parse("TBL(c=2;INT32.1,INT32.2;INT32.3,INT32.4)")
	if err != nil {
		t.Fatal(err)
	}
	tbl, ok := v.(ari.TBL)
	if !ok || tbl.Cols != 2 || tbl.Rows() != 2 {
		t.Fatalf("unexpected TBL parse result: %v", v)
	}
}
