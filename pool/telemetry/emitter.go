package telemetry

import (
	"io"
	"sync"

	"github.com/vmihailenco/msgpack/v5"
)

// Emitter serializes events to an underlying writer. It is safe for
// concurrent use; events from concurrent emitters interleave whole-record.
type Emitter struct {
	mu  sync.Mutex
	enc *msgpack.Encoder
	err error
}

// NewEmitter returns an emitter writing msgpack-encoded events to w.
func NewEmitter(w io.Writer) *Emitter {
	return &Emitter{enc: msgpack.NewEncoder(w)}
}

// Emit writes one event. After the first write failure the emitter is dead:
// every later Emit returns the original error without touching the writer.
func (e *Emitter) Emit(ev Event) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.err != nil {
		return e.err
	}
	if err := e.enc.Encode(&ev); err != nil {
		e.err = err
		return err
	}
	return nil
}

// Err returns the first write error encountered, if any.
func (e *Emitter) Err() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.err
}
