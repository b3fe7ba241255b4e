// Package printer renders arenas and format descriptors to a text sink for
// diagnostics. It never mutates what it prints; a sink write failure is the
// operation's failure.
package printer

import "io"

const DefaultIndentSize = 2

// Mode specifies the output form.
type Mode string

const (
	// ModeText outputs human-readable text.
	ModeText Mode = "text"

	// ModeJSON outputs JSON.
	ModeJSON Mode = "json"
)

// Options controls printing behavior.
type Options struct {
	// Mode specifies the output form (text, json).
	// Default: ModeText
	Mode Mode

	// IndentSize is the number of spaces per indent level (text mode only).
	// Default: 2
	IndentSize int

	// ShowMethods includes the implementation type and class source of each
	// format.
	// Default: true
	ShowMethods bool
}

// DefaultOptions returns sensible defaults for printing.
func DefaultOptions() Options {
	return Options{
		Mode:        ModeText,
		IndentSize:  DefaultIndentSize,
		ShowMethods: true,
	}
}

// Printer writes arena and format diagnostics to a sink.
type Printer struct {
	w    io.Writer
	opts Options
}

// New returns a printer writing to w with the given options.
func New(w io.Writer, opts Options) *Printer {
	if opts.Mode == "" {
		opts.Mode = ModeText
	}
	if opts.IndentSize <= 0 {
		opts.IndentSize = DefaultIndentSize
	}
	return &Printer{w: w, opts: opts}
}
