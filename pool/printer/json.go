package printer

import (
	"encoding/json"
	"fmt"

	"github.com/joshuapare/poolkit/pool"
)

// arenaDoc is the JSON projection of an arena.
type arenaDoc struct {
	Serial       uint32      `json:"serial"`
	NextSerial   uint32      `json:"next_format_serial"`
	StorageInUse int64       `json:"storage_in_use"`
	StorageLimit int64       `json:"storage_limit"`
	Formats      []formatDoc `json:"formats"`
}

// formatDoc is the JSON projection of a format descriptor.
type formatDoc struct {
	Serial    uint32 `json:"serial"`
	Arena     uint32 `json:"arena"`
	Alignment uint32 `json:"alignment"`
	Variety   string `json:"variety"`
	Methods   string `json:"methods,omitempty"`
	Class     string `json:"class,omitempty"`
}

func (p *Printer) arenaJSON(a *pool.Arena) error {
	formats := a.Formats()
	doc := arenaDoc{
		Serial:       a.Serial(),
		NextSerial:   a.FormatSerial(),
		StorageInUse: a.StorageInUse(),
		StorageLimit: a.StorageLimit(),
		Formats:      make([]formatDoc, 0, len(formats)),
	}
	for _, f := range formats {
		doc.Formats = append(doc.Formats, p.formatDoc(f))
	}
	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

func (p *Printer) formatJSON(f *pool.Format) error {
	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")
	return enc.Encode(p.formatDoc(f))
}

func (p *Printer) formatDoc(f *pool.Format) formatDoc {
	doc := formatDoc{
		Serial:    f.Serial(),
		Arena:     f.Arena().Serial(),
		Alignment: f.Alignment(),
		Variety:   f.Variety().String(),
	}
	if p.opts.ShowMethods {
		doc.Methods = fmt.Sprintf("%T", f.Methods())
		doc.Class = classSource(f)
	}
	return doc
}
