package telemetry

import (
	"errors"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"
)

// ErrCorruptStream indicates a record could not be decoded as an event.
var ErrCorruptStream = errors.New("telemetry: corrupt event stream")

// Reader decodes a telemetry stream produced by an Emitter.
type Reader struct {
	dec *msgpack.Decoder
}

// NewReader returns a reader decoding events from r.
func NewReader(r io.Reader) *Reader {
	return &Reader{dec: msgpack.NewDecoder(r)}
}

// Next returns the next event in the stream, or io.EOF when the stream is
// exhausted. A decode failure mid-stream wraps ErrCorruptStream.
func (r *Reader) Next() (Event, error) {
	var ev Event
	err := r.dec.Decode(&ev)
	if err == nil {
		if ev.Kind < KindArenaCreate || ev.Kind > KindFormatDestroy {
			return Event{}, fmt.Errorf("%w: unknown kind %d", ErrCorruptStream, ev.Kind)
		}
		return ev, nil
	}
	if errors.Is(err, io.EOF) {
		return Event{}, io.EOF
	}
	return Event{}, fmt.Errorf("%w: %v", ErrCorruptStream, err)
}

// ReadAll drains the stream and returns every event in order.
func ReadAll(r io.Reader) ([]Event, error) {
	tr := NewReader(r)
	var events []Event
	for {
		ev, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return events, nil
		}
		if err != nil {
			return events, err
		}
		events = append(events, ev)
	}
}
