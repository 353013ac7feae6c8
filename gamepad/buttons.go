// Package gamepad converts raw controller readings laid out in the W3C
// "standard" gamepad mapping into the compact button/axis state the
// streaming host understands.
package gamepad

import "strings"

// Button is a semantic controller button.
type Button uint8

const (
	ButtonNone Button = iota
	ButtonA
	ButtonB
	ButtonX
	ButtonY
	ButtonLB
	ButtonRB
	ButtonBack
	ButtonPlay
	ButtonLSClick
	ButtonRSClick
	ButtonUp
	ButtonDown
	ButtonLeft
	ButtonRight
	ButtonSpecial
	ButtonPaddle1
	ButtonPaddle2
	ButtonPaddle3
	ButtonPaddle4
	ButtonTouchpad
	ButtonMisc

	buttonCount
)

// ButtonFlagsV1 assigns each button its wire bit. The assignment is shared
// with the host; changing it requires a protocol version bump.
var ButtonFlagsV1 = [buttonCount]ButtonFlags{
	ButtonNone:     0,
	ButtonUp:       0x0001,
	ButtonDown:     0x0002,
	ButtonLeft:     0x0004,
	ButtonRight:    0x0008,
	ButtonPlay:     0x0010,
	ButtonBack:     0x0020,
	ButtonLSClick:  0x0040,
	ButtonRSClick:  0x0080,
	ButtonLB:       0x0100,
	ButtonRB:       0x0200,
	ButtonSpecial:  0x0400,
	ButtonA:        0x1000,
	ButtonB:        0x2000,
	ButtonX:        0x4000,
	ButtonY:        0x8000,
	ButtonPaddle1:  0x010000,
	ButtonPaddle2:  0x020000,
	ButtonPaddle3:  0x040000,
	ButtonPaddle4:  0x080000,
	ButtonTouchpad: 0x100000,
	ButtonMisc:     0x200000,
}

var buttonNames = [buttonCount]string{
	ButtonNone:     "none",
	ButtonA:        "a",
	ButtonB:        "b",
	ButtonX:        "x",
	ButtonY:        "y",
	ButtonLB:       "lb",
	ButtonRB:       "rb",
	ButtonBack:     "back",
	ButtonPlay:     "play",
	ButtonLSClick:  "ls",
	ButtonRSClick:  "rs",
	ButtonUp:       "up",
	ButtonDown:     "down",
	ButtonLeft:     "left",
	ButtonRight:    "right",
	ButtonSpecial:  "special",
	ButtonPaddle1:  "paddle1",
	ButtonPaddle2:  "paddle2",
	ButtonPaddle3:  "paddle3",
	ButtonPaddle4:  "paddle4",
	ButtonTouchpad: "touchpad",
	ButtonMisc:     "misc",
}

// Flag returns the wire bit for b, or 0 for ButtonNone and unknown values.
func (b Button) Flag() ButtonFlags {
	if b >= buttonCount {
		return 0
	}
	return ButtonFlagsV1[b]
}

func (b Button) String() string {
	if b >= buttonCount {
		return "unknown"
	}
	return buttonNames[b]
}

// ButtonFlags is a set of pressed buttons in wire representation.
type ButtonFlags uint32

// SupportedButtons is every button reachable through the standard mapping.
// Paddles, touchpad and misc have no standard slot and are never reported.
const SupportedButtons ButtonFlags = 0x0001 | 0x0002 | 0x0004 | 0x0008 |
	0x0010 | 0x0020 | 0x0040 | 0x0080 |
	0x0100 | 0x0200 | 0x0400 |
	0x1000 | 0x2000 | 0x4000 | 0x8000

// Has reports whether b is in the set.
func (f ButtonFlags) Has(b Button) bool {
	flag := b.Flag()
	return flag != 0 && f&flag == flag
}

// Set returns f with b added.
func (f ButtonFlags) Set(b Button) ButtonFlags {
	return f | b.Flag()
}

// Buttons lists the buttons in the set in enumeration order.
func (f ButtonFlags) Buttons() []Button {
	var out []Button
	for b := ButtonNone + 1; b < buttonCount; b++ {
		if f.Has(b) {
			out = append(out, b)
		}
	}
	return out
}

func (f ButtonFlags) String() string {
	bs := f.Buttons()
	if len(bs) == 0 {
		return "none"
	}
	names := make([]string, len(bs))
	for i, b := range bs {
		names[i] = b.String()
	}
	return strings.Join(names, "|")
}

// Type identifies the controller family announced to the host.
type Type uint8

const (
	TypeUnknown Type = iota
	TypeXbox
	TypePlayStation
	TypeNintendo
)

// Capabilities is the capability bit set announced on connect.
type Capabilities uint16

const (
	CapAnalogTriggers Capabilities = 0x01
	CapRumble         Capabilities = 0x02
	CapTriggerRumble  Capabilities = 0x04
	CapTouchpad       Capabilities = 0x08
	CapAccel          Capabilities = 0x10
	CapGyro           Capabilities = 0x20
	CapBattery        Capabilities = 0x40
	CapRGBLED         Capabilities = 0x80
)
