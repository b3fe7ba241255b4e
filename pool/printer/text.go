package printer

import (
	"fmt"
	"strings"

	"github.com/joshuapare/poolkit/pool"
)

// Arena prints the arena's summary and every live format in construction
// order.
func (p *Printer) Arena(a *pool.Arena) error {
	if p.opts.Mode == ModeJSON {
		return p.arenaJSON(a)
	}
	return p.arenaText(a)
}

// Format prints one descriptor.
func (p *Printer) Format(f *pool.Format) error {
	if p.opts.Mode == ModeJSON {
		return p.formatJSON(f)
	}
	return p.formatText(f, 0)
}

func (p *Printer) arenaText(a *pool.Arena) error {
	formats := a.Formats()
	_, err := fmt.Fprintf(p.w, "Arena %d: formats=%d storage=%d/%d next-serial=%d\n",
		a.Serial(), len(formats), a.StorageInUse(), a.StorageLimit(), a.FormatSerial())
	if err != nil {
		return err
	}
	for _, f := range formats {
		if err := p.formatText(f, 1); err != nil {
			return err
		}
	}
	return nil
}

func (p *Printer) formatText(f *pool.Format, depth int) error {
	indent := strings.Repeat(" ", depth*p.opts.IndentSize)
	_, err := fmt.Fprintf(p.w, "%sFormat %d: arena=%d alignment=%d variety=%s\n",
		indent, f.Serial(), f.Arena().Serial(), f.Alignment(), f.Variety())
	if err != nil {
		return err
	}
	if p.opts.ShowMethods {
		_, err = fmt.Fprintf(p.w, "%s  methods=%T class=%s\n",
			indent, f.Methods(), classSource(f))
		if err != nil {
			return err
		}
	}
	return nil
}

// classSource reports whether class extraction is client-supplied or the
// VarietyA default.
func classSource(f *pool.Format) string {
	if _, ok := f.Methods().(pool.Classer); ok {
		return "client"
	}
	return "default"
}
