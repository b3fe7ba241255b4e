package telemetry

import "fmt"

// Kind identifies the lifecycle transition an Event records.
type Kind uint8

const (
	KindArenaCreate Kind = iota + 1
	KindArenaDestroy
	KindFormatCreate
	KindFormatDestroy
)

var kindNames = map[Kind]string{
	KindArenaCreate:   "ArenaCreate",
	KindArenaDestroy:  "ArenaDestroy",
	KindFormatCreate:  "FormatCreate",
	KindFormatDestroy: "FormatDestroy",
}

// String returns the event kind name, or a numeric fallback for unknown kinds.
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Event is one telemetry record. Fields that do not apply to a kind are left
// zero and omitted from the encoded form.
type Event struct {
	// Kind is the lifecycle transition being recorded.
	Kind Kind `msgpack:"k"`

	// Time is the emission time in Unix nanoseconds.
	Time int64 `msgpack:"t"`

	// ArenaSerial identifies the arena involved.
	ArenaSerial uint32 `msgpack:"a"`

	// FormatSerial identifies the format for format events.
	FormatSerial uint32 `msgpack:"f,omitempty"`

	// Alignment is the format's alignment for KindFormatCreate.
	Alignment uint32 `msgpack:"al,omitempty"`

	// Variety is the format's variety tag for KindFormatCreate.
	Variety uint8 `msgpack:"v,omitempty"`
}
