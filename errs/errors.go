// Package errs defines the sentinel errors shared across the hif packages.
//
// Callers can match them with errors.Is after they have been wrapped with
// additional context by the encoder, decoder, or session layers.
package errs

import "errors"

var (
	// ErrInvalidCategory is returned when an identifier record carries a
	// category tag outside the closed set.
	ErrInvalidCategory = errors.New("invalid identifier category")

	// ErrInvalidClass is returned when a statement header carries a class tag
	// outside the closed set.
	ErrInvalidClass = errors.New("invalid statement class")

	// ErrRefIndexOutOfRange is returned when a statement reference targets an
	// identifier index the identifier table does not contain.
	ErrRefIndexOutOfRange = errors.New("reference index out of range")

	// ErrReservedIndex is returned when a statement reference targets the
	// reserved identifier index 31.
	ErrReservedIndex = errors.New("reference targets reserved index")

	// ErrUnbalancedEntry is returned when a list terminator appears while a
	// non-terminal reference is still pending.
	ErrUnbalancedEntry = errors.New("list terminator inside pending tuple entry")

	// ErrDanglingReference is returned when two consecutive non-terminal
	// references appear without an intervening terminal.
	ErrDanglingReference = errors.New("tuple entry missing terminal reference")

	// ErrTruncatedStatement is returned when the statement file ends in the
	// middle of a statement.
	ErrTruncatedStatement = errors.New("truncated statement")

	// ErrTruncatedIdentifier is returned when the identifier file ends in the
	// middle of an identifier record.
	ErrTruncatedIdentifier = errors.New("truncated identifier record")

	// ErrIdentifierOverflow names a chunk accumulating more identifiers than
	// the reference encoding can address. No function in this module returns
	// it: the writer panics on an index past section.MaxRefIndex.
	ErrIdentifierOverflow = errors.New("identifier table overflow")

	// ErrMissingHeader is returned when a chunk does not start with the
	// mandatory header statement.
	ErrMissingHeader = errors.New("missing header statement")

	// ErrUnsupportedVersion is returned when the header statement carries an
	// unknown format version.
	ErrUnsupportedVersion = errors.New("unsupported format version")

	// ErrChunkPairMismatch is returned when the .st and .id files of a
	// directory do not pair up stem by stem.
	ErrChunkPairMismatch = errors.New("statement/identifier chunk mismatch")

	// ErrUnexpectedFile is returned when a session directory contains a file
	// that is not a chunk file.
	ErrUnexpectedFile = errors.New("unexpected file in session directory")

	// ErrNoChunks is returned when a session directory contains no chunk
	// files at all.
	ErrNoChunks = errors.New("no chunk files in session directory")

	// ErrShortWrite is returned when the underlying file accepts fewer bytes
	// than the sink handed it.
	ErrShortWrite = errors.New("short write")

	// ErrSessionClosed names use of a writer or reader after Close. No
	// function in this module returns it: Writer.Add panics after Close, and
	// Reader.Next reports false with a nil Err.
	ErrSessionClosed = errors.New("session closed")
)
