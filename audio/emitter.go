// Package audio holds the beat emitter contract and its implementations. An emitter turns a beat decision into
// something audible (or observable); it must never block or fail the caller for long.
package audio

import (
	"errors"
	"sync"

	"github.com/robmorgan/orbit/trigger"
)

// Emitter receives one call per beat.
type Emitter interface {
	Emit(kind trigger.NoteKind) error
}

// Func adapts an ordinary function to the Emitter interface.
type Func func(kind trigger.NoteKind) error

// Emit calls f(kind).
func (f Func) Emit(kind trigger.NoteKind) error {
	return f(kind)
}

// Fanout forwards each beat to every emitter in order, joining their errors.
type Fanout []Emitter

func (f Fanout) Emit(kind trigger.NoteKind) error {
	var errs []error
	for _, e := range f {
		if err := e.Emit(kind); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Nop discards every beat.
type Nop struct{}

func (Nop) Emit(trigger.NoteKind) error { return nil }

// Recorder remembers every beat it receives. It is the test double for emitters and is safe for concurrent use.
type Recorder struct {
	mu    sync.Mutex
	kinds []trigger.NoteKind

	// Err, when set, is returned from every Emit after recording the beat.
	Err error
}

func (r *Recorder) Emit(kind trigger.NoteKind) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.kinds = append(r.kinds, kind)
	return r.Err
}

// Kinds returns the recorded beats in arrival order.
func (r *Recorder) Kinds() []trigger.NoteKind {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]trigger.NoteKind, len(r.kinds))
	copy(out, r.kinds)
	return out
}

// Count returns the number of recorded beats.
func (r *Recorder) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.kinds)
}

// Reset forgets every recorded beat.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.kinds = nil
}
