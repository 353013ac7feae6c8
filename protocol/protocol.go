// Package protocol defines the binary messages exchanged with the streaming
// host. Every message is a one byte type tag followed by a fixed payload,
// written into and read from a buffer.ByteBuffer.
//
// Host-to-client stream messages use big-endian fields; client-to-host input
// messages use little-endian fields.
package protocol

import (
	"errors"
	"fmt"

	"github.com/Alia5/moonproto/buffer"
)

// MsgType is the leading type byte of every message.
type MsgType uint8

const (
	MsgVideoFrame      MsgType = 0x01
	MsgKeyboard        MsgType = 0x10
	MsgMouseClick      MsgType = 0x11
	MsgMouseAbsolute   MsgType = 0x12
	MsgMouseRelative   MsgType = 0x13
	MsgTouch           MsgType = 0x14
	MsgControllerEvent MsgType = 0x15
	MsgControllerState MsgType = 0x16
	MsgControl         MsgType = 0x20
	MsgStreamInit      MsgType = 0x30
	MsgStreamError     MsgType = 0x31
	MsgStreamSetup     MsgType = 0x32
	MsgPing            MsgType = 0x40
	MsgPong            MsgType = 0x41
)

func (t MsgType) String() string {
	switch t {
	case MsgVideoFrame:
		return "VideoFrame"
	case MsgKeyboard:
		return "Keyboard"
	case MsgMouseClick:
		return "MouseClick"
	case MsgMouseAbsolute:
		return "MouseAbsolute"
	case MsgMouseRelative:
		return "MouseRelative"
	case MsgTouch:
		return "Touch"
	case MsgControllerEvent:
		return "ControllerEvent"
	case MsgControllerState:
		return "ControllerState"
	case MsgControl:
		return "Control"
	case MsgStreamInit:
		return "StreamInit"
	case MsgStreamError:
		return "StreamError"
	case MsgStreamSetup:
		return "StreamSetup"
	case MsgPing:
		return "Ping"
	case MsgPong:
		return "Pong"
	}
	return fmt.Sprintf("MsgType(0x%02x)", uint8(t))
}

// LittleEndian reports the byte order of multi-byte fields for t.
func (t MsgType) LittleEndian() bool {
	return t >= MsgKeyboard && t <= MsgControllerState
}

// Message is a wire message.
type Message interface {
	Type() MsgType
	// Size is the encoded length including the type byte.
	Size() int
	// EncodeInto writes the type byte and payload at b's position.
	EncodeInto(b *buffer.ByteBuffer) error
	// DecodeFrom reads the payload; the type byte has already been consumed.
	DecodeFrom(b *buffer.ByteBuffer) error
}

// ErrUnknownMessage is returned when decoding an unrecognised type byte.
var ErrUnknownMessage = errors.New("protocol: unknown message type")

// ErrEmptyMessage is returned by Unmarshal for empty input.
var ErrEmptyMessage = errors.New("protocol: empty message")

// New returns an empty message for t.
func New(t MsgType) (Message, error) {
	switch t {
	case MsgVideoFrame:
		return &VideoFrame{}, nil
	case MsgKeyboard:
		return &Keyboard{}, nil
	case MsgMouseClick:
		return &MouseClick{}, nil
	case MsgMouseAbsolute:
		return &MouseAbsolute{}, nil
	case MsgMouseRelative:
		return &MouseRelative{}, nil
	case MsgTouch:
		return &Touch{}, nil
	case MsgControllerEvent:
		return &ControllerEvent{}, nil
	case MsgControllerState:
		return &ControllerState{}, nil
	case MsgControl:
		return &ControlMessage{}, nil
	case MsgStreamInit:
		return &StreamInit{}, nil
	case MsgStreamError:
		return &StreamError{}, nil
	case MsgStreamSetup:
		return &StreamSetup{}, nil
	case MsgPing:
		return &Ping{}, nil
	case MsgPong:
		return &Pong{}, nil
	}
	return nil, fmt.Errorf("%w: 0x%02x", ErrUnknownMessage, uint8(t))
}

// Marshal encodes m into a freshly sized buffer using m's byte order.
func Marshal(m Message) ([]byte, error) {
	b := buffer.New(m.Size(), m.Type().LittleEndian())
	if err := m.EncodeInto(b); err != nil {
		return nil, err
	}
	b.Flip()
	return b.Bytes(), nil
}

// Unmarshal decodes one message from data.
func Unmarshal(data []byte) (Message, error) {
	if len(data) == 0 {
		return nil, ErrEmptyMessage
	}
	return Decode(buffer.Wrap(data, MsgType(data[0]).LittleEndian()))
}

// Decode reads a type byte and the matching payload from b. b must already
// use the byte order of the message it holds.
func Decode(b *buffer.ByteBuffer) (Message, error) {
	t, err := b.GetU8()
	if err != nil {
		return nil, err
	}
	m, err := New(MsgType(t))
	if err != nil {
		return nil, err
	}
	if err := m.DecodeFrom(b); err != nil {
		return nil, fmt.Errorf("decode %s: %w", m.Type(), err)
	}
	return m, nil
}

// writer accumulates the first write error so encoders can stay linear.
type writer struct {
	b   *buffer.ByteBuffer
	err error
}

func (w *writer) u8(v uint8) {
	if w.err == nil {
		w.err = w.b.PutU8(v)
	}
}

func (w *writer) boolean(v bool) {
	if w.err == nil {
		w.err = w.b.PutBool(v)
	}
}

func (w *writer) u16(v uint16) {
	if w.err == nil {
		w.err = w.b.PutU16(v)
	}
}

func (w *writer) i16(v int16) {
	if w.err == nil {
		w.err = w.b.PutI16(v)
	}
}

func (w *writer) u32(v uint32) {
	if w.err == nil {
		w.err = w.b.PutU32(v)
	}
}

func (w *writer) u64(v uint64) {
	if w.err == nil {
		w.err = w.b.PutU64(v)
	}
}

func (w *writer) f32(v float32) {
	if w.err == nil {
		w.err = w.b.PutF32(v)
	}
}

func (w *writer) bytes(v []byte) {
	if w.err == nil {
		w.err = w.b.PutU8Array(v)
	}
}

func (w *writer) utf8(v string) {
	if w.err == nil {
		w.err = w.b.PutUTF8(v)
	}
}

// reader is the decoding counterpart of writer.
type reader struct {
	b   *buffer.ByteBuffer
	err error
}

func (r *reader) u8() uint8 {
	if r.err != nil {
		return 0
	}
	v, err := r.b.GetU8()
	r.err = err
	return v
}

func (r *reader) boolean() bool {
	if r.err != nil {
		return false
	}
	v, err := r.b.GetBool()
	r.err = err
	return v
}

func (r *reader) u16() uint16 {
	if r.err != nil {
		return 0
	}
	v, err := r.b.GetU16()
	r.err = err
	return v
}

func (r *reader) i16() int16 {
	if r.err != nil {
		return 0
	}
	v, err := r.b.GetI16()
	r.err = err
	return v
}

func (r *reader) u32() uint32 {
	if r.err != nil {
		return 0
	}
	v, err := r.b.GetU32()
	r.err = err
	return v
}

func (r *reader) u64() uint64 {
	if r.err != nil {
		return 0
	}
	v, err := r.b.GetU64()
	r.err = err
	return v
}

func (r *reader) f32() float32 {
	if r.err != nil {
		return 0
	}
	v, err := r.b.GetF32()
	r.err = err
	return v
}

func (r *reader) bytes(n int) []byte {
	if r.err != nil {
		return nil
	}
	out := make([]byte, n)
	r.err = r.b.Get(out, 0, n)
	return out
}

// rest reads everything up to the limit.
func (r *reader) rest() []byte {
	return r.bytes(r.b.Limit() - r.b.Position())
}
