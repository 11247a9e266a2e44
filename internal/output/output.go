// Package output carries the stdout printer through the command
// context. Primary data (worktree paths, tables, JSON) goes through the
// Printer; diagnostics go through the log package on stderr. The split
// is what makes --print-path composable: scripts read stdout and get
// exactly one path.
package output

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

type ctxKey struct{}

// Printer writes primary command output.
type Printer struct {
	w io.Writer
}

// WithPrinter attaches a Printer for w to the context.
func WithPrinter(ctx context.Context, w io.Writer) context.Context {
	return context.WithValue(ctx, ctxKey{}, &Printer{w: w})
}

// FromContext returns the context's Printer, or one writing to
// os.Stdout when none is attached.
func FromContext(ctx context.Context) *Printer {
	if p, ok := ctx.Value(ctxKey{}).(*Printer); ok {
		return p
	}
	return &Printer{w: os.Stdout}
}

// Path prints a worktree path on its own line. This is the entire
// stdout contract of --print-path, so nothing else may share the line.
func (p *Printer) Path(path string) {
	fmt.Fprintln(p.w, path)
}

// JSON writes v as indented JSON, for the --json listing output.
func (p *Printer) JSON(v any) error {
	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Print writes output without a trailing newline.
func (p *Printer) Print(a ...any) {
	fmt.Fprint(p.w, a...)
}

// Printf writes formatted output.
func (p *Printer) Printf(format string, a ...any) {
	fmt.Fprintf(p.w, format, a...)
}

// Println writes a line of output.
func (p *Printer) Println(a ...any) {
	fmt.Fprintln(p.w, a...)
}
