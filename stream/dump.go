package stream

import (
	"fmt"
	"io"

	"github.com/hdlio/hif/format"
)

// Dump writes a human-readable rendering of the statement to w. The exact
// text is a debugging aid, not a stable interface.
func (s Statement) Dump(w io.Writer) {
	fmt.Fprintf(w, "hif.%s", s.Class)

	if len(s.Instance) > 0 {
		fmt.Fprintf(w, " %q", s.Instance)
	}
	if s.Type != 0 {
		fmt.Fprintf(w, " type(%d)", s.Type)
	}

	// Leaf statements with no io or attrs omit the braces entirely.
	if len(s.IO) == 0 && len(s.Attr) == 0 {
		fmt.Fprintln(w)

		return
	}

	fmt.Fprintln(w, " {")

	if len(s.IO) > 0 {
		fmt.Fprintln(w, "  io {")
		for i, e := range s.IO {
			dir := "out"
			if e.Input {
				dir = "in "
			}
			fmt.Fprintf(w, "    %%%d.%s (", i, dir)
			dumpValue(w, e.LHS, e.LHSCat)
			dumpRHS(w, e)
			fmt.Fprintln(w, ")")
		}
		fmt.Fprintln(w, "  }")
	}

	if len(s.Attr) > 0 {
		fmt.Fprintln(w, "  attributes {")
		for i, e := range s.Attr {
			fmt.Fprintf(w, "    @.%d(", i)
			dumpValue(w, e.LHS, e.LHSCat)
			dumpRHS(w, e)
			fmt.Fprintln(w, ")")
		}
		fmt.Fprintln(w, "  }")
	}

	fmt.Fprintln(w, "}")
}

func dumpRHS(w io.Writer, e TupleEntry) {
	if len(e.RHS) == 0 {
		return
	}
	fmt.Fprint(w, " = ")
	dumpValue(w, e.RHS, e.RHSCat)
}

func dumpValue(w io.Writer, data []byte, cat format.IDCat) {
	switch {
	case cat == format.CatString:
		fmt.Fprintf(w, "%q", data)
	case cat == format.CatBase2 && len(data) == 8:
		fmt.Fprintf(w, "%d :: i64", int64(engineLE.Uint64(data)))
	default:
		fmt.Fprintf(w, "0x%x :: %s", data, cat)
	}
}
