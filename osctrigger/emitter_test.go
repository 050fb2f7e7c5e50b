package osctrigger

import (
	"errors"
	"net"
	"testing"
	"time"

	"github.com/hypebeast/go-osc/osc"
	"github.com/robmorgan/orbit/trigger"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	packets []osc.Packet
	err     error
}

func (f *fakeSender) Send(packet osc.Packet) error {
	f.packets = append(f.packets, packet)
	return f.err
}

func TestEmitBuildsMessage(t *testing.T) {
	t.Parallel()

	sender := &fakeSender{}
	e := NewEmitterWithSender(sender, "")

	require.NoError(t, e.Emit(trigger.Accent))
	require.NoError(t, e.Emit(trigger.Regular))
	require.Len(t, sender.packets, 2)

	msg := sender.packets[0].(*osc.Message)
	require.Equal(t, DefaultAddress, msg.Address)
	require.Equal(t, []interface{}{"accent", int32(1)}, msg.Arguments)

	msg = sender.packets[1].(*osc.Message)
	require.Equal(t, []interface{}{"regular", int32(0)}, msg.Arguments)
}

func TestEmitReturnsSendErrors(t *testing.T) {
	t.Parallel()

	e := NewEmitterWithSender(&fakeSender{err: errors.New("network unreachable")}, "/click")
	require.Error(t, e.Emit(trigger.Regular))
}

func TestEmitOverUDP(t *testing.T) {
	t.Parallel()

	conn, err := net.ListenPacket("udp", "127.0.0.1:0")
	require.NoError(t, err)
	defer conn.Close()

	port := conn.LocalAddr().(*net.UDPAddr).Port
	e := NewEmitter("127.0.0.1", port, "/metronome/click")
	require.NoError(t, e.Emit(trigger.Accent))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	buf := make([]byte, 1024)
	n, _, err := conn.ReadFrom(buf)
	require.NoError(t, err)

	packet, err := osc.ParsePacket(string(buf[:n]))
	require.NoError(t, err)
	msg := packet.(*osc.Message)
	require.Equal(t, "/metronome/click", msg.Address)
	require.Equal(t, []interface{}{"accent", int32(1)}, msg.Arguments)
}
