package protocol

import (
	"github.com/Alia5/moonproto/buffer"
	"github.com/Alia5/moonproto/gamepad"
)

// ControllerEvent kinds.
const (
	ControllerConnected    uint8 = 0
	ControllerDisconnected uint8 = 1
)

// ControllerEvent announces a controller arriving or leaving.
//
//	type(1) id(1) event(1) controllerType(1) supportedButtons(4) capabilities(2)
type ControllerEvent struct {
	ID               uint8
	Event            uint8
	ControllerType   gamepad.Type
	SupportedButtons gamepad.ButtonFlags
	Capabilities     gamepad.Capabilities
}

// NewControllerConnected builds the connect event for a standard-mapped pad.
func NewControllerConnected(id uint8, typ gamepad.Type, caps gamepad.Capabilities) *ControllerEvent {
	return &ControllerEvent{
		ID:               id,
		Event:            ControllerConnected,
		ControllerType:   typ,
		SupportedButtons: gamepad.SupportedButtons,
		Capabilities:     caps,
	}
}

func (m *ControllerEvent) Type() MsgType { return MsgControllerEvent }
func (m *ControllerEvent) Size() int     { return 10 }

func (m *ControllerEvent) EncodeInto(b *buffer.ByteBuffer) error {
	w := writer{b: b}
	w.u8(uint8(MsgControllerEvent))
	w.u8(m.ID)
	w.u8(m.Event)
	w.u8(uint8(m.ControllerType))
	w.u32(uint32(m.SupportedButtons))
	w.u16(uint16(m.Capabilities))
	return w.err
}

func (m *ControllerEvent) DecodeFrom(b *buffer.ByteBuffer) error {
	r := reader{b: b}
	m.ID = r.u8()
	m.Event = r.u8()
	m.ControllerType = gamepad.Type(r.u8())
	m.SupportedButtons = gamepad.ButtonFlags(r.u32())
	m.Capabilities = gamepad.Capabilities(r.u16())
	return r.err
}

func (m *ControllerEvent) MarshalBinary() ([]byte, error) { return Marshal(m) }

// ControllerState is the full state of one controller.
//
//	type(1) id(1) buttons(4) lt(1) rt(1) lx(2) ly(2) rx(2) ry(2)
type ControllerState struct {
	ID           uint8
	Buttons      gamepad.ButtonFlags
	LeftTrigger  uint8
	RightTrigger uint8
	LeftStickX   int16
	LeftStickY   int16
	RightStickX  int16
	RightStickY  int16
}

// ControllerStateFromSnapshot quantises s for the wire. Buttons the host does
// not accept are dropped.
func ControllerStateFromSnapshot(id uint8, s gamepad.Snapshot) *ControllerState {
	s = s.Masked()
	return &ControllerState{
		ID:           id,
		Buttons:      s.Buttons,
		LeftTrigger:  gamepad.TriggerByte(s.LeftTrigger),
		RightTrigger: gamepad.TriggerByte(s.RightTrigger),
		LeftStickX:   gamepad.AxisShort(s.LeftStickX),
		LeftStickY:   gamepad.AxisShort(s.LeftStickY),
		RightStickX:  gamepad.AxisShort(s.RightStickX),
		RightStickY:  gamepad.AxisShort(s.RightStickY),
	}
}

func (m *ControllerState) Type() MsgType { return MsgControllerState }
func (m *ControllerState) Size() int     { return 16 }

func (m *ControllerState) EncodeInto(b *buffer.ByteBuffer) error {
	w := writer{b: b}
	w.u8(uint8(MsgControllerState))
	w.u8(m.ID)
	w.u32(uint32(m.Buttons))
	w.u8(m.LeftTrigger)
	w.u8(m.RightTrigger)
	w.i16(m.LeftStickX)
	w.i16(m.LeftStickY)
	w.i16(m.RightStickX)
	w.i16(m.RightStickY)
	return w.err
}

func (m *ControllerState) DecodeFrom(b *buffer.ByteBuffer) error {
	r := reader{b: b}
	m.ID = r.u8()
	m.Buttons = gamepad.ButtonFlags(r.u32())
	m.LeftTrigger = r.u8()
	m.RightTrigger = r.u8()
	m.LeftStickX = r.i16()
	m.LeftStickY = r.i16()
	m.RightStickX = r.i16()
	m.RightStickY = r.i16()
	return r.err
}

func (m *ControllerState) MarshalBinary() ([]byte, error) { return Marshal(m) }
