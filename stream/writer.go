package stream

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/hdlio/hif/errs"
	"github.com/hdlio/hif/format"
	"github.com/hdlio/hif/internal/intern"
	"github.com/hdlio/hif/internal/options"
	"github.com/hdlio/hif/internal/sink"
	"github.com/hdlio/hif/section"
)

// FormatVersion is the container format revision written into the header
// statement of every chunk.
const FormatVersion = "0.0.1"

// DefaultRotateLimit is the identifier count past which the writer starts a
// new chunk. The reference encoding reserves index width for it.
const DefaultRotateLimit = 1 << 20

// chunkFilePattern matches the only directory entries a session may contain.
var chunkFilePattern = regexp.MustCompile(`^[0-9][^/]*\.(st|id)$`)

// WriterOption configures a Writer.
type WriterOption = options.Option[*Writer]

// WithRotateLimit overrides the identifier count that triggers chunk
// rotation. Intended range is 1 to DefaultRotateLimit.
func WithRotateLimit(limit int) WriterOption {
	return options.New(func(w *Writer) error {
		if limit <= 0 || limit > DefaultRotateLimit {
			return fmt.Errorf("rotate limit %d out of range (1..%d)", limit, DefaultRotateLimit)
		}
		w.rotateLimit = limit

		return nil
	})
}

// Writer owns a session directory and appends statements to it.
//
// The writer assumes exclusive ownership of the directory for the duration
// of the session. Statements are buffered through byte sinks; Close drains
// everything exactly once. A Writer is not safe for concurrent use.
type Writer struct {
	dir         string
	tool        string
	toolVersion string
	rotateLimit int

	st    *sink.Sink
	id    *sink.Sink
	table *intern.Table
	chunk int

	scratch []byte
	closed  bool
}

// NewWriter creates a writer session over dir, recording tool and
// toolVersion in the mandatory header statement.
//
// An existing directory is reused only if every entry in it is a chunk file;
// those are removed. A missing directory is created with mode 0755.
func NewWriter(dir, tool, toolVersion string, opts ...WriterOption) (*Writer, error) {
	w := &Writer{
		dir:         dir,
		tool:        tool,
		toolVersion: toolVersion,
		rotateLimit: DefaultRotateLimit,
	}
	if err := options.Apply(w, opts...); err != nil {
		return nil, err
	}

	if err := prepareDir(dir); err != nil {
		return nil, err
	}
	if err := w.openChunk(0); err != nil {
		return nil, err
	}

	return w, nil
}

// Add encodes one statement and appends it to the current chunk.
//
// Preconditions, violated only by caller bugs and enforced with panics:
// the class tag is valid, the type fits in 12 bits, attribute entries have a
// non-empty lhs, and the writer has not been closed. I/O errors from the
// sinks are returned.
func (w *Writer) Add(stmt Statement) error {
	if w.closed {
		panic("hif: Add on closed writer")
	}
	if !stmt.Class.Valid() {
		panic(fmt.Sprintf("hif: invalid statement class %d", stmt.Class))
	}
	if stmt.Type > section.MaxType {
		panic(fmt.Sprintf("hif: statement type %d exceeds %d", stmt.Type, section.MaxType))
	}
	for _, e := range stmt.Attr {
		if len(e.LHS) == 0 {
			panic("hif: attribute entry with empty lhs")
		}
	}

	if err := w.rotateIfNeeded(stmt); err != nil {
		return err
	}

	w.encode(stmt)

	return w.sinkErr()
}

// Tool returns the tool name recorded in the header statement.
func (w *Writer) Tool() string { return w.tool }

// ToolVersion returns the tool version recorded in the header statement.
func (w *Writer) ToolVersion() string { return w.toolVersion }

// Close drains both sinks and closes the chunk files. The first error seen
// across the session is returned. Close is idempotent.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true

	return w.closeSinks()
}

func prepareDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		if mkErr := os.Mkdir(dir, 0o755); mkErr != nil {
			return fmt.Errorf("hif: create session directory: %w", mkErr)
		}

		return nil
	}
	if err != nil {
		return fmt.Errorf("hif: read session directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !chunkFilePattern.MatchString(entry.Name()) {
			return fmt.Errorf("%w: %s", errs.ErrUnexpectedFile, entry.Name())
		}
	}
	for _, entry := range entries {
		if err := os.Remove(filepath.Join(dir, entry.Name())); err != nil {
			return fmt.Errorf("hif: clean session directory: %w", err)
		}
	}

	return nil
}

func (w *Writer) openChunk(n int) error {
	st, err := sink.Create(filepath.Join(w.dir, fmt.Sprintf("%d.st", n)))
	if err != nil {
		return err
	}
	id, err := sink.Create(filepath.Join(w.dir, fmt.Sprintf("%d.id", n)))
	if err != nil {
		_ = st.Close()

		return err
	}

	w.st = st
	w.id = id
	w.table = intern.New()
	w.chunk = n

	header := NewAttr()
	header.AddAttr("HIF", FormatVersion)
	header.AddAttr("tool", w.tool)
	header.AddAttr("version", w.toolVersion)
	w.encode(header)

	return w.sinkErr()
}

// rotateIfNeeded starts a new chunk when the statement could push the
// identifier table past the rotation limit: up to two fresh identifiers per
// tuple entry plus the instance.
func (w *Writer) rotateIfNeeded(stmt Statement) error {
	needed := 2*(len(stmt.IO)+len(stmt.Attr)) + 1
	if w.table.Len()+needed <= w.rotateLimit {
		return nil
	}

	if err := w.closeSinks(); err != nil {
		return err
	}

	return w.openChunk(w.chunk + 1)
}

func (w *Writer) closeSinks() error {
	err := w.st.Close()
	if idErr := w.id.Close(); err == nil {
		err = idErr
	}

	return err
}

func (w *Writer) encode(stmt Statement) {
	h := section.StatementHeader{Class: stmt.Class, Type: stmt.Type}.Bytes()
	w.st.Add8(h[0])
	w.st.Add8(h[1])

	if len(stmt.Instance) == 0 {
		w.st.Add8(section.Terminator)
	} else {
		w.writeRef(format.CatString, stmt.Instance, section.RoleInstance)
	}

	w.encodeList(stmt.IO)
	w.encodeList(stmt.Attr)
}

func (w *Writer) encodeList(entries []TupleEntry) {
	for _, e := range entries {
		role := uint8(0)
		if e.Input {
			role = section.RoleInput
		}

		if len(e.RHS) == 0 {
			w.writeRef(e.LHSCat, e.LHS, role|section.RoleLast)

			continue
		}

		w.writeRef(e.LHSCat, e.LHS, role)
		w.writeRef(e.RHSCat, e.RHS, role|section.RoleLast)
	}
	w.st.Add8(section.Terminator)
}

// writeRef interns the identifier and appends its reference word to the
// statement sink. A first occurrence emits the identifier record before the
// reference that needs it.
func (w *Writer) writeRef(cat format.IDCat, data []byte, role uint8) {
	index, fresh := w.table.Intern(cat, data)
	if index > section.MaxRefIndex {
		panic(fmt.Sprintf("hif: identifier index %d exceeds reference width", index))
	}

	if fresh {
		w.scratch = section.AppendIDRecord(w.scratch[:0], cat, data)
		w.id.Add(w.scratch)
	}

	w.scratch = section.AppendRef(w.scratch[:0], index, role)
	w.st.Add(w.scratch)
}

func (w *Writer) sinkErr() error {
	if err := w.st.Err(); err != nil {
		return err
	}

	return w.id.Err()
}
