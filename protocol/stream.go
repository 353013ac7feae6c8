package protocol

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/Alia5/moonproto/buffer"
)

// StreamCodec identifies the codec of a video stream.
type StreamCodec uint8

const (
	StreamCodecH264     StreamCodec = 0x01
	StreamCodecH264High StreamCodec = 0x02
	StreamCodecH265     StreamCodec = 0x10
)

// Video frame flags.
const (
	FrameFlagKeyframe uint8 = 0x01
)

// VideoFrame carries one encoded access unit.
//
//	type(1) codec(1) flags(1) pts(8) width(2) height(2) data(...)
type VideoFrame struct {
	Codec    StreamCodec
	Keyframe bool
	// PTS in microseconds since stream start.
	PTS    uint64
	Width  uint16
	Height uint16
	Data   []byte
}

const videoFrameHeaderSize = 15

func (m *VideoFrame) Type() MsgType { return MsgVideoFrame }
func (m *VideoFrame) Size() int     { return videoFrameHeaderSize + len(m.Data) }

func (m *VideoFrame) EncodeInto(b *buffer.ByteBuffer) error {
	w := writer{b: b}
	w.u8(uint8(MsgVideoFrame))
	w.u8(uint8(m.Codec))
	var flags uint8
	if m.Keyframe {
		flags |= FrameFlagKeyframe
	}
	w.u8(flags)
	w.u64(m.PTS)
	w.u16(m.Width)
	w.u16(m.Height)
	w.bytes(m.Data)
	return w.err
}

func (m *VideoFrame) DecodeFrom(b *buffer.ByteBuffer) error {
	r := reader{b: b}
	m.Codec = StreamCodec(r.u8())
	m.Keyframe = r.u8()&FrameFlagKeyframe != 0
	m.PTS = r.u64()
	m.Width = r.u16()
	m.Height = r.u16()
	m.Data = r.rest()
	return r.err
}

func (m *VideoFrame) MarshalBinary() ([]byte, error) { return Marshal(m) }

// StreamInit announces the stream parameters before the first frame.
//
//	type(1) codec(1) width(2) height(2) fps(1) audioChannels(1) sampleRate(4) touch(1)
type StreamInit struct {
	Codec          StreamCodec
	Width          uint16
	Height         uint16
	FPS            uint8
	AudioChannels  uint8
	SampleRate     uint32
	TouchSupported bool
}

func (m *StreamInit) Type() MsgType { return MsgStreamInit }
func (m *StreamInit) Size() int     { return 13 }

func (m *StreamInit) EncodeInto(b *buffer.ByteBuffer) error {
	w := writer{b: b}
	w.u8(uint8(MsgStreamInit))
	w.u8(uint8(m.Codec))
	w.u16(m.Width)
	w.u16(m.Height)
	w.u8(m.FPS)
	w.u8(m.AudioChannels)
	w.u32(m.SampleRate)
	w.boolean(m.TouchSupported)
	return w.err
}

func (m *StreamInit) DecodeFrom(b *buffer.ByteBuffer) error {
	r := reader{b: b}
	m.Codec = StreamCodec(r.u8())
	m.Width = r.u16()
	m.Height = r.u16()
	m.FPS = r.u8()
	m.AudioChannels = r.u8()
	m.SampleRate = r.u32()
	m.TouchSupported = r.boolean()
	return r.err
}

func (m *StreamInit) MarshalBinary() ([]byte, error) { return Marshal(m) }

// StreamError reports a fatal stream problem to the client.
//
//	type(1) length(2) message(length)
type StreamError struct {
	Message string
}

func (m *StreamError) Type() MsgType { return MsgStreamError }
func (m *StreamError) Size() int     { return 3 + len(validText(m.Message, math.MaxUint16)) }

func (m *StreamError) EncodeInto(b *buffer.ByteBuffer) error {
	text := validText(m.Message, math.MaxUint16)
	w := writer{b: b}
	w.u8(uint8(MsgStreamError))
	w.u16(uint16(len(text)))
	w.utf8(text)
	return w.err
}

func (m *StreamError) DecodeFrom(b *buffer.ByteBuffer) error {
	r := reader{b: b}
	n := r.u16()
	m.Message = string(r.bytes(int(n)))
	return r.err
}

func (m *StreamError) MarshalBinary() ([]byte, error) { return Marshal(m) }

// Ping is sent by the client to measure round trip time.
//
//	type(1) seq(4) clientTime(8)
type Ping struct {
	Seq uint32
	// ClientTime in microseconds, echoed back in the Pong.
	ClientTime uint64
}

func (m *Ping) Type() MsgType { return MsgPing }
func (m *Ping) Size() int     { return 13 }

func (m *Ping) EncodeInto(b *buffer.ByteBuffer) error {
	w := writer{b: b}
	w.u8(uint8(MsgPing))
	w.u32(m.Seq)
	w.u64(m.ClientTime)
	return w.err
}

func (m *Ping) DecodeFrom(b *buffer.ByteBuffer) error {
	r := reader{b: b}
	m.Seq = r.u32()
	m.ClientTime = r.u64()
	return r.err
}

func (m *Ping) MarshalBinary() ([]byte, error) { return Marshal(m) }

// Pong answers a Ping.
//
//	type(1) seq(4) clientTime(8) serverTime(8)
type Pong struct {
	Seq        uint32
	ClientTime uint64
	ServerTime uint64
}

func (m *Pong) Type() MsgType { return MsgPong }
func (m *Pong) Size() int     { return 21 }

func (m *Pong) EncodeInto(b *buffer.ByteBuffer) error {
	w := writer{b: b}
	w.u8(uint8(MsgPong))
	w.u32(m.Seq)
	w.u64(m.ClientTime)
	w.u64(m.ServerTime)
	return w.err
}

func (m *Pong) DecodeFrom(b *buffer.ByteBuffer) error {
	r := reader{b: b}
	m.Seq = r.u32()
	m.ClientTime = r.u64()
	m.ServerTime = r.u64()
	return r.err
}

func (m *Pong) MarshalBinary() ([]byte, error) { return Marshal(m) }

// Answer builds the Pong for p.
func (p *Ping) Answer(serverTime uint64) *Pong {
	return &Pong{Seq: p.Seq, ClientTime: p.ClientTime, ServerTime: serverTime}
}

// validText returns s as valid UTF-8 truncated on a rune boundary to at most
// n bytes.
func validText(s string, n int) string {
	if !utf8.ValidString(s) {
		s = strings.ToValidUTF8(s, string(utf8.RuneError))
	}
	if len(s) <= n {
		return s
	}
	cut := n
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
