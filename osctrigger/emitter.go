// Package osctrigger sends beats to OSC receivers such as synthesizers, DAWs or lighting desks.
package osctrigger

import (
	"github.com/gruntwork-io/go-commons/errors"
	"github.com/hypebeast/go-osc/osc"
	"github.com/robmorgan/orbit/trigger"
)

// DefaultAddress is the OSC address pattern beats are sent to.
const DefaultAddress = "/orbit/beat"

// Sender is the part of an OSC client the emitter needs.
type Sender interface {
	Send(packet osc.Packet) error
}

// Emitter sends one OSC message per beat: `<address> <kind name> <accent 0|1>`.
type Emitter struct {
	client  Sender
	address string
}

// NewEmitter creates an Emitter sending UDP packets to host:port. OSC over UDP is connectionless, so an absent
// receiver only shows up as dropped beats.
func NewEmitter(host string, port int, address string) *Emitter {
	return NewEmitterWithSender(osc.NewClient(host, port), address)
}

// NewEmitterWithSender creates an Emitter on top of an existing client.
func NewEmitterWithSender(client Sender, address string) *Emitter {
	if address == "" {
		address = DefaultAddress
	}
	return &Emitter{
		client:  client,
		address: address,
	}
}

func (e *Emitter) Emit(kind trigger.NoteKind) error {
	var accent int32
	if kind == trigger.Accent {
		accent = 1
	}
	msg := osc.NewMessage(e.address, kind.String(), accent)
	if err := e.client.Send(msg); err != nil {
		return errors.WithStackTrace(err)
	}
	return nil
}
