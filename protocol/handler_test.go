package protocol_test

import (
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/Alia5/moonproto/protocol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouterPing(t *testing.T) {
	now := func() time.Time { return time.UnixMicro(5000) }
	r := protocol.NewRouter(slog.New(slog.NewTextHandler(io.Discard, nil)))
	r.Register(protocol.MsgPing, protocol.PingHandler(now))

	in, err := protocol.Marshal(&protocol.Ping{Seq: 4, ClientTime: 77})
	require.NoError(t, err)

	out, err := r.Handle(in)
	require.NoError(t, err)

	reply, err := protocol.Unmarshal(out)
	require.NoError(t, err)
	assert.Equal(t, &protocol.Pong{Seq: 4, ClientTime: 77, ServerTime: 5000}, reply)
}

func TestRouterUnhandledAndErrors(t *testing.T) {
	r := protocol.NewRouter(nil)

	out, err := r.Handle([]byte{0x11, 0x01, 0x01})
	assert.NoError(t, err)
	assert.Nil(t, out)

	_, err = r.Handle([]byte{0x99})
	assert.ErrorIs(t, err, protocol.ErrUnknownMessage)

	boom := errors.New("boom")
	r.Register(protocol.MsgMouseClick, func(protocol.Message, *slog.Logger) (protocol.Message, error) {
		return nil, boom
	})
	_, err = r.Handle([]byte{0x11, 0x01, 0x01})
	assert.ErrorIs(t, err, boom)

	r.Register(protocol.MsgKeyboard, protocol.PingHandler(nil))
	_, err = r.Handle([]byte{0x10, 0x01, 0x00, 0x41, 0x00})
	assert.Error(t, err)
}
