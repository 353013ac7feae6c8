package protocol

import (
	"encoding/json"
	"math"

	"github.com/Alia5/moonproto/buffer"
	"github.com/Alia5/moonproto/videoformat"
	"github.com/google/uuid"
)

// StreamConfig is the JSON session request sent when a stream is opened.
type StreamConfig struct {
	Type                  string `json:"type" yaml:"type"`
	HostID                int    `json:"host_id" yaml:"host_id"`
	AppID                 int    `json:"app_id" yaml:"app_id"`
	SessionID             string `json:"session_id,omitempty" yaml:"session_id,omitempty"`
	Width                 int    `json:"width" yaml:"width"`
	Height                int    `json:"height" yaml:"height"`
	FPS                   int    `json:"fps" yaml:"fps"`
	Bitrate               int    `json:"bitrate" yaml:"bitrate"`
	PacketSize            int    `json:"packet_size" yaml:"packet_size"`
	PlayAudioLocal        bool   `json:"play_audio_local" yaml:"play_audio_local"`
	VideoSupportedFormats uint32 `json:"video_supported_formats" yaml:"video_supported_formats"`
	ClientUniqueID        string `json:"client_unique_id,omitempty" yaml:"client_unique_id,omitempty"`
}

// DefaultStreamConfig returns a 1080p60 request that only advertises H264
// and carries a fresh client id.
func DefaultStreamConfig() StreamConfig {
	return StreamConfig{
		Type:                  "authenticate_and_init",
		Width:                 1920,
		Height:                1080,
		FPS:                   60,
		Bitrate:               20000,
		PacketSize:            1024,
		VideoSupportedFormats: videoformat.StandardSupport().Bits(),
		ClientUniqueID:        uuid.NewString(),
	}
}

// WithFormats returns c advertising the negotiated formats.
func (c StreamConfig) WithFormats(res videoformat.Result) StreamConfig {
	c.VideoSupportedFormats = res.Bits
	return c
}

// Setup converts c to its binary form. Out of range numbers saturate.
func (c StreamConfig) Setup() *StreamSetup {
	return &StreamSetup{
		Width:                 uint16(clamp(c.Width, math.MaxUint16)),
		Height:                uint16(clamp(c.Height, math.MaxUint16)),
		FPS:                   uint8(clamp(c.FPS, math.MaxUint8)),
		Bitrate:               uint32(clamp(c.Bitrate, math.MaxUint32)),
		PacketSize:            uint16(clamp(c.PacketSize, math.MaxUint16)),
		VideoSupportedFormats: c.VideoSupportedFormats,
		PlayAudioLocal:        c.PlayAudioLocal,
		ClientUniqueID:        c.ClientUniqueID,
	}
}

func clamp(v int, hi int64) int64 {
	if v < 0 {
		return 0
	}
	if int64(v) > hi {
		return hi
	}
	return int64(v)
}

// StreamSetup is the binary stream setup request.
//
//	type(1) width(2) height(2) fps(1) bitrate(4) packetSize(2)
//	videoSupportedFormats(4) playAudioLocal(1) idLen(1) clientUniqueID(idLen)
type StreamSetup struct {
	Width                 uint16
	Height                uint16
	FPS                   uint8
	Bitrate               uint32
	PacketSize            uint16
	VideoSupportedFormats uint32
	PlayAudioLocal        bool
	ClientUniqueID        string
}

const streamSetupHeaderSize = 18

func (m *StreamSetup) Type() MsgType { return MsgStreamSetup }
func (m *StreamSetup) Size() int {
	return streamSetupHeaderSize + len(validText(m.ClientUniqueID, math.MaxUint8))
}

func (m *StreamSetup) EncodeInto(b *buffer.ByteBuffer) error {
	id := validText(m.ClientUniqueID, math.MaxUint8)
	w := writer{b: b}
	w.u8(uint8(MsgStreamSetup))
	w.u16(m.Width)
	w.u16(m.Height)
	w.u8(m.FPS)
	w.u32(m.Bitrate)
	w.u16(m.PacketSize)
	w.u32(m.VideoSupportedFormats)
	w.boolean(m.PlayAudioLocal)
	w.u8(uint8(len(id)))
	w.utf8(id)
	return w.err
}

func (m *StreamSetup) DecodeFrom(b *buffer.ByteBuffer) error {
	r := reader{b: b}
	m.Width = r.u16()
	m.Height = r.u16()
	m.FPS = r.u8()
	m.Bitrate = r.u32()
	m.PacketSize = r.u16()
	m.VideoSupportedFormats = r.u32()
	m.PlayAudioLocal = r.boolean()
	n := r.u8()
	m.ClientUniqueID = string(r.bytes(int(n)))
	return r.err
}

func (m *StreamSetup) MarshalBinary() ([]byte, error) { return Marshal(m) }

// Formats decodes the advertised format bits.
func (m *StreamSetup) Formats() videoformat.Support {
	return videoformat.SupportFromBits(m.VideoSupportedFormats)
}

// ControlMessage toggles stream features at runtime. The payload is JSON.
type ControlMessage struct {
	SetVideoEnabled *bool `json:"set_video_enabled,omitempty"`
}

// VideoEnabled builds a control message switching video on or off.
func VideoEnabled(on bool) *ControlMessage {
	return &ControlMessage{SetVideoEnabled: &on}
}

func (m *ControlMessage) Type() MsgType { return MsgControl }

func (m *ControlMessage) Size() int {
	payload, err := json.Marshal(m)
	if err != nil {
		return 1
	}
	return 1 + len(payload)
}

func (m *ControlMessage) EncodeInto(b *buffer.ByteBuffer) error {
	payload, err := json.Marshal(m)
	if err != nil {
		return err
	}
	w := writer{b: b}
	w.u8(uint8(MsgControl))
	w.bytes(payload)
	return w.err
}

func (m *ControlMessage) DecodeFrom(b *buffer.ByteBuffer) error {
	r := reader{b: b}
	payload := r.rest()
	if r.err != nil {
		return r.err
	}
	*m = ControlMessage{}
	return json.Unmarshal(payload, m)
}

func (m *ControlMessage) MarshalBinary() ([]byte, error) { return Marshal(m) }
