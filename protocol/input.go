package protocol

import "github.com/Alia5/moonproto/buffer"

// Keyboard is a key press or release.
//
//	type(1) isDown(1) modifiers(1) keycode(2)
type Keyboard struct {
	Down      bool
	Modifiers uint8
	Keycode   uint16
}

func (m *Keyboard) Type() MsgType { return MsgKeyboard }
func (m *Keyboard) Size() int     { return 5 }

func (m *Keyboard) EncodeInto(b *buffer.ByteBuffer) error {
	w := writer{b: b}
	w.u8(uint8(MsgKeyboard))
	w.boolean(m.Down)
	w.u8(m.Modifiers)
	w.u16(m.Keycode)
	return w.err
}

func (m *Keyboard) DecodeFrom(b *buffer.ByteBuffer) error {
	r := reader{b: b}
	m.Down = r.boolean()
	m.Modifiers = r.u8()
	m.Keycode = r.u16()
	return r.err
}

func (m *Keyboard) MarshalBinary() ([]byte, error) { return Marshal(m) }

// Mouse buttons as sent in MouseClick.
const (
	MouseButtonLeft   uint8 = 1
	MouseButtonMiddle uint8 = 2
	MouseButtonRight  uint8 = 3
	MouseButtonBack   uint8 = 4
	MouseButtonFwd    uint8 = 5
)

// MouseClick is a mouse button press or release.
//
//	type(1) isDown(1) button(1)
type MouseClick struct {
	Down   bool
	Button uint8
}

func (m *MouseClick) Type() MsgType { return MsgMouseClick }
func (m *MouseClick) Size() int     { return 3 }

func (m *MouseClick) EncodeInto(b *buffer.ByteBuffer) error {
	w := writer{b: b}
	w.u8(uint8(MsgMouseClick))
	w.boolean(m.Down)
	w.u8(m.Button)
	return w.err
}

func (m *MouseClick) DecodeFrom(b *buffer.ByteBuffer) error {
	r := reader{b: b}
	m.Down = r.boolean()
	m.Button = r.u8()
	return r.err
}

func (m *MouseClick) MarshalBinary() ([]byte, error) { return Marshal(m) }

// MouseAbsolute positions the pointer relative to a reference surface.
//
//	type(1) x(4) y(4) refWidth(2) refHeight(2)
type MouseAbsolute struct {
	X, Y                 float32
	RefWidth, RefHeight uint16
}

func (m *MouseAbsolute) Type() MsgType { return MsgMouseAbsolute }
func (m *MouseAbsolute) Size() int     { return 13 }

func (m *MouseAbsolute) EncodeInto(b *buffer.ByteBuffer) error {
	w := writer{b: b}
	w.u8(uint8(MsgMouseAbsolute))
	w.f32(m.X)
	w.f32(m.Y)
	w.u16(m.RefWidth)
	w.u16(m.RefHeight)
	return w.err
}

func (m *MouseAbsolute) DecodeFrom(b *buffer.ByteBuffer) error {
	r := reader{b: b}
	m.X = r.f32()
	m.Y = r.f32()
	m.RefWidth = r.u16()
	m.RefHeight = r.u16()
	return r.err
}

func (m *MouseAbsolute) MarshalBinary() ([]byte, error) { return Marshal(m) }

// MouseRelative moves the pointer by a delta.
//
//	type(1) dx(4) dy(4)
type MouseRelative struct {
	DX, DY float32
}

func (m *MouseRelative) Type() MsgType { return MsgMouseRelative }
func (m *MouseRelative) Size() int     { return 9 }

func (m *MouseRelative) EncodeInto(b *buffer.ByteBuffer) error {
	w := writer{b: b}
	w.u8(uint8(MsgMouseRelative))
	w.f32(m.DX)
	w.f32(m.DY)
	return w.err
}

func (m *MouseRelative) DecodeFrom(b *buffer.ByteBuffer) error {
	r := reader{b: b}
	m.DX = r.f32()
	m.DY = r.f32()
	return r.err
}

func (m *MouseRelative) MarshalBinary() ([]byte, error) { return Marshal(m) }

// Touch event types.
const (
	TouchDown   uint8 = 0
	TouchMotion uint8 = 1
	TouchUp     uint8 = 2
)

// Touch is a single touch point event.
//
//	type(1) eventType(1) slot(1) x(4) y(4)
type Touch struct {
	Event uint8
	Slot  uint8
	X, Y  float32
}

func (m *Touch) Type() MsgType { return MsgTouch }
func (m *Touch) Size() int     { return 11 }

func (m *Touch) EncodeInto(b *buffer.ByteBuffer) error {
	w := writer{b: b}
	w.u8(uint8(MsgTouch))
	w.u8(m.Event)
	w.u8(m.Slot)
	w.f32(m.X)
	w.f32(m.Y)
	return w.err
}

func (m *Touch) DecodeFrom(b *buffer.ByteBuffer) error {
	r := reader{b: b}
	m.Event = r.u8()
	m.Slot = r.u8()
	m.X = r.f32()
	m.Y = r.f32()
	return r.err
}

func (m *Touch) MarshalBinary() ([]byte, error) { return Marshal(m) }
