// Package hif implements the Hardware Interchange Format, a binary container
// for streams of hardware-design statements exchanged between the stages of
// a compiler or linter toolchain.
//
// A hif document is a directory of paired chunk files <N>.st and <N>.id. The
// statement file carries bit-packed statements; the identifier file is a
// side table that amortises repeated identifier strings by interning them
// into dense indices on first occurrence. Writer and reader round-trip
// statement streams exactly, in order, without interpreting their meaning.
//
// # Basic Usage
//
// Writing a session:
//
//	wr, err := hif.Create("netlist.hif", "mytool", "1.4.0")
//	if err != nil {
//	    return err
//	}
//	stmt := hif.NewAssign()
//	stmt.Instance = []byte("adder0")
//	stmt.AddInput("A", "0")
//	stmt.AddOutput("Z", "")
//	if err := wr.Add(stmt); err != nil {
//	    return err
//	}
//	if err := wr.Close(); err != nil {
//	    return err
//	}
//
// Reading it back:
//
//	rd, err := hif.Open("netlist.hif")
//	if err != nil {
//	    return err
//	}
//	defer rd.Close()
//	err = rd.Each(func(stmt hif.Statement) {
//	    stmt.Dump(os.Stdout)
//	})
//
// This package is a thin wrapper over the stream package, which holds the
// session types; the wire primitives live in the section package.
package hif

import (
	"github.com/hdlio/hif/stream"
)

// FormatVersion is the container format revision this module reads and
// writes.
const FormatVersion = stream.FormatVersion

// Statement is one atomic record of the stream.
type Statement = stream.Statement

// TupleEntry is one element of a statement's io or attr list.
type TupleEntry = stream.TupleEntry

// Writer is a writing session over a chunk directory.
type Writer = stream.Writer

// Reader is a reading session over a chunk directory.
type Reader = stream.Reader

// Statement constructors, one per class.
var (
	NewNode       = stream.NewNode
	NewAssign     = stream.NewAssign
	NewAttr       = stream.NewAttr
	NewOpenCall   = stream.NewOpenCall
	NewClosedCall = stream.NewClosedCall
	NewOpenDef    = stream.NewOpenDef
	NewClosedDef  = stream.NewClosedDef
	NewEnd        = stream.NewEnd
	NewUse        = stream.NewUse
)

// Create starts a writer session over dir, recording tool and toolVersion in
// the mandatory header statement. An existing directory is reused only if it
// contains nothing but chunk files, which are removed first.
func Create(dir, tool, toolVersion string, opts ...stream.WriterOption) (*Writer, error) {
	return stream.NewWriter(dir, tool, toolVersion, opts...)
}

// Open opens a session directory for reading and validates its chunk
// pairing and header statement.
func Open(dir string) (*Reader, error) {
	return stream.NewReader(dir)
}
