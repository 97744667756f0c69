package ari

import (
	"strconv"
	"strings"

	"github.com/dtn-ace/ace/aritype"
	"github.com/dtn-ace/ace/internal/aceerr"
)

// AC is an ordered sequence of AMM values (Array Container).
type AC struct {
	Elems []Value
}

func (AC) Kind() aritype.LiteralType { return aritype.TypeAC }
func (a AC) String() string {
	parts := make([]string, len(a.Elems))
	for i, e := range a.Elems {
		parts[i] = e.String()
	}
	return "AC(" + strings.Join(parts, ",") + ")"
}
func (a AC) Equal(other Value) bool {
	o, ok := other.(AC)
	if !ok || len(o.Elems) != len(a.Elems) {
		return false
	}
	for i, e := range a.Elems {
		if !e.Equal(o.Elems[i]) {
			return false
		}
	}
	return true
}

// AMPair is one key/value pair of an AM, in source/insertion order.
type AMPair struct {
	Key   Value
	Value Value
}

// AM is an ordered mapping from AMM value to AMM value (Array Map). Key
// order is preserved; it is not sorted or hashed.
type AM struct {
	Pairs []AMPair
}

func (AM) Kind() aritype.LiteralType { return aritype.TypeAM }
func (m AM) String() string {
	parts := make([]string, len(m.Pairs))
	for i, p := range m.Pairs {
		parts[i] = p.Key.String() + "=" + p.Value.String()
	}
	return "AM(" + strings.Join(parts, ",") + ")"
}
func (m AM) Equal(other Value) bool {
	o, ok := other.(AM)
	if !ok || len(o.Pairs) != len(m.Pairs) {
		return false
	}
	for i, p := range m.Pairs {
		if !p.Key.Equal(o.Pairs[i].Key) || !p.Value.Equal(o.Pairs[i].Value) {
			return false
		}
	}
	return true
}

// Get returns the value bound to key, scanning pairs in order (AM is a
// small ordered list, not a hash map).
func (m AM) Get(key Value) (Value, bool) {
	for _, p := range m.Pairs {
		if p.Key.Equal(key) {
			return p.Value, true
		}
	}
	return nil, false
}

// TBL is a column count plus a row-major flat sequence of values. Row
// count is len(Flat)/Cols; construction fails if that is not exact.
type TBL struct {
	Cols int
	Flat []Value
}

// NewTBL validates that len(flat) is a multiple of cols before building a
// TBL.
func NewTBL(cols int, flat []Value) (TBL, error) {
	if cols <= 0 {
		return TBL{}, aceerr.Typef(aceerr.Position{}, "TBL column count must be positive, got %d", cols)
	}
	if len(flat)%cols != 0 {
		return TBL{}, aceerr.Typef(aceerr.Position{}, "TBL flat length %d is not a multiple of column count %d", len(flat), cols)
	}
	return TBL{Cols: cols, Flat: flat}, nil
}

// Rows returns the row count implied by Cols and len(Flat).
func (t TBL) Rows() int {
	if t.Cols == 0 {
		return 0
	}
	return len(t.Flat) / t.Cols
}

func (TBL) Kind() aritype.LiteralType { return aritype.TypeTBL }
func (t TBL) String() string {
	var b strings.Builder
	b.WriteString("TBL(c=")
	b.WriteString(strconv.Itoa(t.Cols))
	rows := t.Rows()
	for r := 0; r < rows; r++ {
		b.WriteByte(';')
		for c := 0; c < t.Cols; c++ {
			if c > 0 {
				b.WriteByte(',')
			}
			b.WriteString(t.Flat[r*t.Cols+c].String())
		}
	}
	b.WriteByte(')')
	return b.String()
}
func (t TBL) Equal(other Value) bool {
	o, ok := other.(TBL)
	if !ok || o.Cols != t.Cols || len(o.Flat) != len(t.Flat) {
		return false
	}
	for i, v := range t.Flat {
		if !v.Equal(o.Flat[i]) {
			return false
		}
	}
	return true
}

// ExecSet is a target-identifier plus an ordered sequence of ARIs to
// execute. Its byte layout is still under revision in the draft; this
// module's choice is recorded in DESIGN.md.
type ExecSet struct {
	ID      Value
	Targets []Value
}

func (ExecSet) Kind() aritype.LiteralType { return aritype.TypeExecSet }
func (e ExecSet) String() string {
	parts := make([]string, len(e.Targets))
	for i, t := range e.Targets {
		parts[i] = t.String()
	}
	return "EXECSET(" + e.ID.String() + ";" + strings.Join(parts, ",") + ")"
}
func (e ExecSet) Equal(other Value) bool {
	o, ok := other.(ExecSet)
	if !ok || !e.ID.Equal(o.ID) || len(o.Targets) != len(e.Targets) {
		return false
	}
	for i, t := range e.Targets {
		if !t.Equal(o.Targets[i]) {
			return false
		}
	}
	return true
}

// RptEntry is one report entry within an RptSet.
type RptEntry struct {
	Time   Value
	Source Value
	Values []Value
}

func (e RptEntry) equal(o RptEntry) bool {
	if !e.Time.Equal(o.Time) || !e.Source.Equal(o.Source) || len(e.Values) != len(o.Values) {
		return false
	}
	for i, v := range e.Values {
		if !v.Equal(o.Values[i]) {
			return false
		}
	}
	return true
}

// RptSet is a target-identifier plus an ordered sequence of report
// entries. Its byte layout is still under revision in the draft; this
// module's choice is recorded in DESIGN.md.
type RptSet struct {
	ID      Value
	Entries []RptEntry
}

func (RptSet) Kind() aritype.LiteralType { return aritype.TypeRptSet }
func (r RptSet) String() string {
	parts := make([]string, len(r.Entries))
	for i, e := range r.Entries {
		parts[i] = "(" + e.Time.String() + "," + e.Source.String() + ")"
	}
	return "RPTSET(" + r.ID.String() + ";" + strings.Join(parts, ",") + ")"
}
func (r RptSet) Equal(other Value) bool {
	o, ok := other.(RptSet)
	if !ok || !r.ID.Equal(o.ID) || len(o.Entries) != len(r.Entries) {
		return false
	}
	for i, e := range r.Entries {
		if !e.equal(o.Entries[i]) {
			return false
		}
	}
	return true
}
