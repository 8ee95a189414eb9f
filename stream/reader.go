package stream

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hdlio/hif/errs"
	"github.com/hdlio/hif/format"
	"github.com/hdlio/hif/internal/mmap"
	"github.com/hdlio/hif/section"
)

// readerState tracks the per-chunk decode lifecycle. Errors jump straight to
// stateClosed.
type readerState uint8

const (
	stateUnopened readerState = iota
	stateHeaderParsed
	stateIterating
	stateDrained
	stateClosed
)

type chunkFiles struct {
	stem   string
	stPath string
	idPath string
}

type idEntry struct {
	cat  format.IDCat
	data []byte
}

// Reader iterates the statements of a session directory in writer order.
//
// The statement files are memory-mapped and scanned lazily; identifier
// payloads are copied out of the mapping while the resolver is built, so
// statements handed to the caller stay valid after Close.
//
// A Reader is not safe for concurrent use, but any number of Readers may
// iterate the same frozen directory at once.
type Reader struct {
	dir    string
	chunks []chunkFiles

	tool        string
	toolVersion string

	cur   int
	st    *mmap.Region
	ids   []idEntry
	data  []byte
	pos   int
	state readerState

	current Statement
	err     error
}

// NewReader opens a session directory for reading. It validates the chunk
// pairing, builds the identifier resolver of the first chunk, and parses its
// header statement. Any mismatch refuses the session.
func NewReader(dir string) (*Reader, error) {
	chunks, err := scanDir(dir)
	if err != nil {
		return nil, err
	}

	r := &Reader{dir: dir, chunks: chunks}
	if err := r.openChunk(0); err != nil {
		r.Close()

		return nil, err
	}

	return r, nil
}

// Tool returns the tool name recorded in the session header.
func (r *Reader) Tool() string { return r.tool }

// ToolVersion returns the tool version recorded in the session header.
func (r *Reader) ToolVersion() string { return r.toolVersion }

// Each invokes fn once per statement in writer order. A decode error
// terminates iteration and is returned; statements already delivered remain
// valid.
func (r *Reader) Each(fn func(Statement)) error {
	for r.Next() {
		fn(r.current)
	}

	return r.err
}

// Next advances to the next statement, crossing chunk boundaries as needed.
// It reports false when the session is drained or a decode error occurred;
// Err distinguishes the two.
func (r *Reader) Next() bool {
	if r.state == stateClosed || r.state == stateDrained {
		return false
	}

	for r.pos >= len(r.data) {
		if r.cur+1 >= len(r.chunks) {
			r.state = stateDrained

			return false
		}
		if err := r.openChunk(r.cur + 1); err != nil {
			r.fail(err)

			return false
		}
	}

	stmt, err := r.decodeStatement()
	if err != nil {
		r.fail(err)

		return false
	}

	r.current = stmt
	r.state = stateIterating

	return true
}

// Current returns the statement Next advanced to.
func (r *Reader) Current() Statement {
	return r.current
}

// Err returns the error that terminated iteration, if any.
func (r *Reader) Err() error {
	return r.err
}

// Close unmaps the statement file and marks the session closed. Statements
// already delivered remain valid. Close is idempotent.
func (r *Reader) Close() error {
	r.state = stateClosed
	if r.st == nil {
		return nil
	}

	err := r.st.Close()
	r.st = nil
	r.data = nil

	return err
}

func (r *Reader) fail(err error) {
	r.err = err
	_ = r.Close()
}

// scanDir enumerates dir and pairs the chunk files stem by stem.
func scanDir(dir string) ([]chunkFiles, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("hif: read session directory: %w", err)
	}

	var stStems, idStems []string
	for _, entry := range entries {
		name := entry.Name()
		switch {
		case entry.IsDir():
			return nil, fmt.Errorf("%w: %s", errs.ErrUnexpectedFile, name)
		case strings.HasSuffix(name, ".st"):
			stStems = append(stStems, strings.TrimSuffix(name, ".st"))
		case strings.HasSuffix(name, ".id"):
			idStems = append(idStems, strings.TrimSuffix(name, ".id"))
		default:
			return nil, fmt.Errorf("%w: %s", errs.ErrUnexpectedFile, name)
		}
	}

	if len(stStems) == 0 && len(idStems) == 0 {
		return nil, fmt.Errorf("%w: %s", errs.ErrNoChunks, dir)
	}

	// Shorter stems sort first so decimal chunk numbers iterate in write
	// order ("2" before "10"); ties fall back to lexicographic.
	byStem := func(stems []string) func(i, j int) bool {
		return func(i, j int) bool {
			if len(stems[i]) != len(stems[j]) {
				return len(stems[i]) < len(stems[j])
			}

			return stems[i] < stems[j]
		}
	}
	sort.Slice(stStems, byStem(stStems))
	sort.Slice(idStems, byStem(idStems))
	if len(stStems) != len(idStems) {
		return nil, fmt.Errorf("%w: %d .st files, %d .id files",
			errs.ErrChunkPairMismatch, len(stStems), len(idStems))
	}

	chunks := make([]chunkFiles, len(stStems))
	for i, stem := range stStems {
		if stem != idStems[i] {
			return nil, fmt.Errorf("%w: %s.st paired with %s.id",
				errs.ErrChunkPairMismatch, stem, idStems[i])
		}
		chunks[i] = chunkFiles{
			stem:   stem,
			stPath: filepath.Join(dir, stem+".st"),
			idPath: filepath.Join(dir, stem+".id"),
		}
	}

	return chunks, nil
}

// openChunk replaces the current chunk state with chunk n: resolver built
// from the identifier file, statement file mapped, header statement parsed.
func (r *Reader) openChunk(n int) error {
	if r.st != nil {
		if err := r.st.Close(); err != nil {
			return err
		}
		r.st = nil
	}

	c := r.chunks[n]

	idRegion, err := mmap.Map(c.idPath)
	if err != nil {
		return err
	}
	ids, err := buildResolver(idRegion.Bytes())
	closeErr := idRegion.Close()
	if err != nil {
		return fmt.Errorf("hif: %s: %w", c.idPath, err)
	}
	if closeErr != nil {
		return closeErr
	}

	st, err := mmap.Map(c.stPath)
	if err != nil {
		return err
	}

	r.cur = n
	r.st = st
	r.ids = ids
	r.data = st.Bytes()
	r.pos = 0
	r.state = stateUnopened

	if err := r.parseHeader(n == 0); err != nil {
		return fmt.Errorf("hif: %s: %w", c.stPath, err)
	}
	r.state = stateHeaderParsed

	return nil
}

// buildResolver scans the identifier file once, decoding records
// sequentially into a dense array. Payloads are copied out of the mapping.
// The reserved index 31 is skipped in lockstep with the writer.
func buildResolver(data []byte) ([]idEntry, error) {
	var ids []idEntry
	pos := 0
	for pos < len(data) {
		if len(ids) == section.ReservedRefIndex {
			ids = append(ids, idEntry{})
		}

		cat, payload, n, err := section.DecodeIDRecord(data[pos:])
		if err != nil {
			return nil, fmt.Errorf("identifier record at offset %d: %w", pos, err)
		}

		ids = append(ids, idEntry{cat: cat, data: append([]byte(nil), payload...)})
		pos += n
	}

	return ids, nil
}

// parseHeader consumes the mandatory first statement of the current chunk.
func (r *Reader) parseHeader(first bool) error {
	if len(r.data) == 0 {
		return errs.ErrMissingHeader
	}

	header, err := r.decodeStatement()
	if err != nil {
		return fmt.Errorf("%w: %w", errs.ErrMissingHeader, err)
	}
	if header.Class != format.ClassAttr || len(header.Attr) != 3 {
		return errs.ErrMissingHeader
	}

	hif, tool, version := header.Attr[0], header.Attr[1], header.Attr[2]
	if !bytes.Equal(hif.LHS, []byte("HIF")) ||
		!bytes.Equal(tool.LHS, []byte("tool")) ||
		!bytes.Equal(version.LHS, []byte("version")) {
		return errs.ErrMissingHeader
	}
	if string(hif.RHS) != FormatVersion {
		return fmt.Errorf("%w: %q", errs.ErrUnsupportedVersion, hif.RHS)
	}

	if first {
		r.tool = string(tool.RHS)
		r.toolVersion = string(version.RHS)
	}

	return nil
}

func (r *Reader) decodeStatement() (Statement, error) {
	header, err := section.ParseStatementHeader(r.data[r.pos:])
	if err != nil {
		return Statement{}, err
	}
	r.pos += section.StatementHeaderSize

	stmt := Statement{Class: header.Class, Type: header.Type}

	if r.pos >= len(r.data) {
		return Statement{}, fmt.Errorf("%w: missing instance reference", errs.ErrTruncatedStatement)
	}
	if r.data[r.pos] == section.Terminator {
		r.pos++
	} else {
		index, _, n, err := section.DecodeRef(r.data[r.pos:])
		if err != nil {
			return Statement{}, err
		}
		entry, err := r.lookup(index)
		if err != nil {
			return Statement{}, err
		}
		r.pos += n
		stmt.Instance = entry.data
	}

	if stmt.IO, err = r.decodeList(); err != nil {
		return Statement{}, err
	}
	if stmt.Attr, err = r.decodeList(); err != nil {
		return Statement{}, err
	}

	return stmt, nil
}

// decodeList consumes reference words up to the terminator, re-assembling
// tuple entries from (non-terminal, terminal) pairs and terminal singletons.
func (r *Reader) decodeList() ([]TupleEntry, error) {
	var entries []TupleEntry
	var pending *idEntry

	for {
		if r.pos >= len(r.data) {
			return nil, fmt.Errorf("%w: unterminated list", errs.ErrTruncatedStatement)
		}

		if r.data[r.pos] == section.Terminator {
			r.pos++
			if pending != nil {
				return nil, errs.ErrUnbalancedEntry
			}

			return entries, nil
		}

		index, role, n, err := section.DecodeRef(r.data[r.pos:])
		if err != nil {
			return nil, err
		}
		entry, err := r.lookup(index)
		if err != nil {
			return nil, err
		}
		r.pos += n

		if role&section.RoleLast == 0 {
			if pending != nil {
				return nil, errs.ErrDanglingReference
			}
			pending = entry

			continue
		}

		te := TupleEntry{
			Input:  role&section.RoleInput != 0,
			RHSCat: format.CatString,
		}
		if pending != nil {
			te.LHS = pending.data
			te.LHSCat = pending.cat
			te.RHS = entry.data
			te.RHSCat = entry.cat
			pending = nil
		} else {
			te.LHS = entry.data
			te.LHSCat = entry.cat
		}
		entries = append(entries, te)
	}
}

func (r *Reader) lookup(index uint32) (*idEntry, error) {
	if index == section.ReservedRefIndex {
		return nil, fmt.Errorf("%w: index %d", errs.ErrReservedIndex, index)
	}
	if int(index) >= len(r.ids) {
		return nil, fmt.Errorf("%w: index %d, table size %d",
			errs.ErrRefIndexOutOfRange, index, len(r.ids))
	}

	return &r.ids[index], nil
}
