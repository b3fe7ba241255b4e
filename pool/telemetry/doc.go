// Package telemetry records arena and format lifecycle events as a compact
// binary stream for offline diagnosis.
//
// # Overview
//
// An Emitter serializes Event records to any io.Writer using msgpack; a
// Reader decodes a stream back into events. The arena emits an event on each
// lifecycle transition (arena create/destroy, format create/destroy) when it
// is configured with an emitter, so a log captures the full descriptor
// history of a process without instrumenting call sites.
//
// # Failure Isolation
//
// The arena never lets telemetry failures affect protocol state: a failed
// write is remembered by the Emitter and reported through Err(), and all
// subsequent emissions become no-ops. Callers that care about log integrity
// should check Err() before relying on the stream.
//
// # Usage
//
//	f, _ := os.Create("pool.events")
//	em := telemetry.NewEmitter(f)
//	a := pool.NewArena(pool.ArenaOpts{Telemetry: em})
//	// ... use the arena ...
//	a.Destroy()
//	if err := em.Err(); err != nil {
//	    log.Printf("telemetry incomplete: %v", err)
//	}
//
// Decode with a Reader, or with `poolctl events pool.events`.
package telemetry
