package pool

import "fmt"

// Variety selects how a format extracts an object's class identifier.
type Variety uint8

const (
	// VarietyA permits default class extraction: if the implementation does
	// not provide Classer, the class is read from the word at offset zero of
	// the object. Client layouts may depend on that exact convention.
	VarietyA Variety = iota + 1

	// VarietyB requires the implementation to provide Classer; omitting it
	// is a contract violation.
	VarietyB
)

var varietyNames = map[Variety]string{
	VarietyA: "A",
	VarietyB: "B",
}

// String returns "A" or "B", or a numeric fallback for unrecognized values.
func (v Variety) String() string {
	if s, ok := varietyNames[v]; ok {
		return s
	}
	return fmt.Sprintf("Variety(%d)", uint8(v))
}

// valid reports whether v is one of the two recognized varieties.
func (v Variety) valid() bool {
	return v == VarietyA || v == VarietyB
}
