package audio

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/robmorgan/orbit/logger"
	"github.com/robmorgan/orbit/trigger"
	"github.com/sirupsen/logrus"
)

var (
	// ErrQueueFull is returned when a beat is dropped because the emitter is behind.
	ErrQueueFull = errors.New("audio: emit queue full, beat dropped")
	// ErrClosed is returned when emitting through a closed Async.
	ErrClosed = errors.New("audio: emitter closed")
)

// Async decouples a possibly slow emitter from the caller. Beats are queued and delivered in order by a single
// goroutine; Emit never blocks, and beats arriving while the queue is full are dropped.
type Async struct {
	next    Emitter
	queue   chan trigger.NoteKind
	quit    chan struct{}
	done    chan struct{}
	once    sync.Once
	dropped atomic.Uint64
}

// NewAsync starts delivering beats to next through a queue of the given size.
func NewAsync(next Emitter, size int) *Async {
	if size < 1 {
		size = 1
	}
	a := &Async{
		next:  next,
		queue: make(chan trigger.NoteKind, size),
		quit:  make(chan struct{}),
		done:  make(chan struct{}),
	}
	go a.run()
	return a
}

func (a *Async) Emit(kind trigger.NoteKind) error {
	select {
	case <-a.quit:
		return ErrClosed
	default:
	}

	select {
	case a.queue <- kind:
		return nil
	default:
		a.dropped.Add(1)
		return ErrQueueFull
	}
}

// Dropped returns how many beats were discarded because the queue was full.
func (a *Async) Dropped() uint64 {
	return a.dropped.Load()
}

// Close stops delivery and waits for the in-flight beat, if any. Queued beats are discarded.
func (a *Async) Close() {
	a.once.Do(func() { close(a.quit) })
	<-a.done
}

func (a *Async) run() {
	defer close(a.done)
	for {
		select {
		case <-a.quit:
			return
		case kind := <-a.queue:
			if err := a.deliver(kind); err != nil {
				logger.GetProjectLogger().WithFields(logrus.Fields{"kind": kind}).Debugf("beat not delivered: %v", err)
			}
		}
	}
}

func (a *Async) deliver(kind trigger.NoteKind) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("emitter panicked: %v", r)
		}
	}()
	return a.next.Emit(kind)
}
