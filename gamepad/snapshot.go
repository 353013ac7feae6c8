package gamepad

import "math"

// ButtonReading is one physical button as reported by the hardware.
type ButtonReading struct {
	Pressed bool    `json:"pressed" yaml:"pressed"`
	Value   float64 `json:"value" yaml:"value"`
}

// Reading is a raw controller report in standard mapping order.
// Reports may be shorter than the standard layout.
type Reading struct {
	Buttons []ButtonReading `json:"buttons" yaml:"buttons"`
	Axes    []float64       `json:"axes" yaml:"axes"`
}

// Snapshot is the semantic controller state for one poll.
type Snapshot struct {
	Buttons      ButtonFlags
	LeftTrigger  float64
	RightTrigger float64
	LeftStickX   float64
	LeftStickY   float64
	RightStickX  float64
	RightStickY  float64
}

// Extract converts r into a Snapshot. Missing buttons count as unpressed and
// missing axes or triggers as 0. Button flags are not masked against
// SupportedButtons; see Snapshot.Masked.
func Extract(r Reading, remap RemapConfig) Snapshot {
	var s Snapshot
	for i, btn := range r.Buttons {
		if !btn.Pressed {
			continue
		}
		s.Buttons |= remap.Lookup(i).Flag()
	}

	s.LeftTrigger = buttonValue(r.Buttons, LeftTriggerIndex)
	s.RightTrigger = buttonValue(r.Buttons, RightTriggerIndex)

	s.LeftStickX = axisValue(r.Axes, AxisLeftX)
	s.LeftStickY = axisValue(r.Axes, AxisLeftY)
	s.RightStickX = axisValue(r.Axes, AxisRightX)
	s.RightStickY = axisValue(r.Axes, AxisRightY)
	return s
}

func buttonValue(bs []ButtonReading, i int) float64 {
	if i >= len(bs) {
		return 0
	}
	return bs[i].Value
}

func axisValue(axes []float64, i int) float64 {
	if i >= len(axes) {
		return 0
	}
	return axes[i]
}

// Masked returns s with every flag the host does not accept cleared.
func (s Snapshot) Masked() Snapshot {
	s.Buttons &= SupportedButtons
	return s
}

// TriggerByte quantises a trigger value in [0,1] to 0..255.
func TriggerByte(v float64) uint8 {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	if v >= 1 {
		return math.MaxUint8
	}
	return uint8(math.Round(v * math.MaxUint8))
}

// AxisShort quantises a stick value in [-1,1] to -32767..32767.
func AxisShort(v float64) int16 {
	if math.IsNaN(v) {
		return 0
	}
	if v <= -1 {
		return -math.MaxInt16
	}
	if v >= 1 {
		return math.MaxInt16
	}
	return int16(math.Round(v * math.MaxInt16))
}
