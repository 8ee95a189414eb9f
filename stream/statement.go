package stream

import (
	"bytes"

	"github.com/hdlio/hif/endian"
	"github.com/hdlio/hif/format"
)

var engineLE = endian.GetLittleEndianEngine()

// TupleEntry is one element of a statement's io or attr list: a category-
// tagged (lhs, rhs) pair of byte sequences. An empty RHS makes the entry
// "bare", carrying only a left side; bare entries always report RHS category
// String.
type TupleEntry struct {
	// Input is true for an input or attribute entry, false for an output.
	Input bool

	LHS []byte
	RHS []byte

	LHSCat format.IDCat
	RHSCat format.IDCat
}

// Equal reports component-wise equality.
func (e TupleEntry) Equal(other TupleEntry) bool {
	return e.Input == other.Input &&
		e.LHSCat == other.LHSCat &&
		e.RHSCat == other.RHSCat &&
		bytes.Equal(e.LHS, other.LHS) &&
		bytes.Equal(e.RHS, other.RHS)
}

// RHSInt64 interprets the RHS as a little-endian signed 64-bit integer.
// It reports false unless the RHS is an 8-byte Base2 payload.
func (e TupleEntry) RHSInt64() (int64, bool) {
	if e.RHSCat != format.CatBase2 || len(e.RHS) != 8 {
		return 0, false
	}

	return int64(engineLE.Uint64(e.RHS)), true
}

// Statement is one atomic record of the stream: a class, a 12-bit type, an
// optional instance name, and ordered io and attr tuple-entry lists.
type Statement struct {
	Class format.StatementClass

	// Type is a tool-defined 12-bit discriminator. Values above 4095 are a
	// caller bug and make Writer.Add panic.
	Type uint16

	// Instance is the optional instance name; empty means no instance.
	Instance []byte

	IO   []TupleEntry
	Attr []TupleEntry
}

// NewNode creates an empty statement of class Node.
func NewNode() Statement { return Statement{Class: format.ClassNode} }

// NewAssign creates an empty statement of class Assign.
func NewAssign() Statement { return Statement{Class: format.ClassAssign} }

// NewAttr creates an empty statement of class Attr.
func NewAttr() Statement { return Statement{Class: format.ClassAttr} }

// NewOpenCall creates an empty statement of class OpenCall.
func NewOpenCall() Statement { return Statement{Class: format.ClassOpenCall} }

// NewClosedCall creates an empty statement of class ClosedCall.
func NewClosedCall() Statement { return Statement{Class: format.ClassClosedCall} }

// NewOpenDef creates an empty statement of class OpenDef.
func NewOpenDef() Statement { return Statement{Class: format.ClassOpenDef} }

// NewClosedDef creates an empty statement of class ClosedDef.
func NewClosedDef() Statement { return Statement{Class: format.ClassClosedDef} }

// NewEnd creates an empty statement of class End.
func NewEnd() Statement { return Statement{Class: format.ClassEnd} }

// NewUse creates an empty statement of class Use.
func NewUse() Statement { return Statement{Class: format.ClassUse} }

func (s Statement) IsNode() bool       { return s.Class == format.ClassNode }
func (s Statement) IsAssign() bool     { return s.Class == format.ClassAssign }
func (s Statement) IsAttr() bool       { return s.Class == format.ClassAttr }
func (s Statement) IsOpenCall() bool   { return s.Class == format.ClassOpenCall }
func (s Statement) IsClosedCall() bool { return s.Class == format.ClassClosedCall }
func (s Statement) IsOpenDef() bool    { return s.Class == format.ClassOpenDef }
func (s Statement) IsClosedDef() bool  { return s.Class == format.ClassClosedDef }
func (s Statement) IsEnd() bool        { return s.Class == format.ClassEnd }
func (s Statement) IsUse() bool        { return s.Class == format.ClassUse }

// AddEntry appends a fully specified tuple entry to the io list.
func (s *Statement) AddEntry(e TupleEntry) *Statement {
	s.IO = append(s.IO, e)

	return s
}

// AddInput appends an input pair with String categories. An empty rhs makes
// the entry bare.
func (s *Statement) AddInput(lhs, rhs string) *Statement {
	s.IO = append(s.IO, stringEntry(true, lhs, rhs))

	return s
}

// AddInputInt64 appends an input pair whose rhs is the little-endian Base2
// encoding of v.
func (s *Statement) AddInputInt64(lhs string, v int64) *Statement {
	s.IO = append(s.IO, int64Entry(true, lhs, v))

	return s
}

// AddOutput appends an output pair with String categories. An empty rhs
// makes the entry bare.
func (s *Statement) AddOutput(lhs, rhs string) *Statement {
	s.IO = append(s.IO, stringEntry(false, lhs, rhs))

	return s
}

// AddOutputInt64 appends an output pair whose rhs is the little-endian Base2
// encoding of v.
func (s *Statement) AddOutputInt64(lhs string, v int64) *Statement {
	s.IO = append(s.IO, int64Entry(false, lhs, v))

	return s
}

// AddAttr appends an attribute pair with String categories. An empty rhs
// makes the entry bare.
func (s *Statement) AddAttr(lhs, rhs string) *Statement {
	s.Attr = append(s.Attr, stringEntry(true, lhs, rhs))

	return s
}

// Equal reports component-wise equality: class, type, instance, and both
// tuple-entry lists in order.
func (s Statement) Equal(other Statement) bool {
	if s.Class != other.Class || s.Type != other.Type || !bytes.Equal(s.Instance, other.Instance) {
		return false
	}

	return entriesEqual(s.IO, other.IO) && entriesEqual(s.Attr, other.Attr)
}

func entriesEqual(a, b []TupleEntry) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}

	return true
}

func stringEntry(input bool, lhs, rhs string) TupleEntry {
	return TupleEntry{
		Input:  input,
		LHS:    []byte(lhs),
		RHS:    []byte(rhs),
		LHSCat: format.CatString,
		RHSCat: format.CatString,
	}
}

func int64Entry(input bool, lhs string, v int64) TupleEntry {
	rhs := make([]byte, 8)
	engineLE.PutUint64(rhs, uint64(v))

	return TupleEntry{
		Input:  input,
		LHS:    []byte(lhs),
		RHS:    rhs,
		LHSCat: format.CatString,
		RHSCat: format.CatBase2,
	}
}
