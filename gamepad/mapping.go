package gamepad

// Standard mapping indices that carry analog trigger values instead of flags.
const (
	LeftTriggerIndex  = 6
	RightTriggerIndex = 7
)

// Standard mapping axis indices.
const (
	AxisLeftX = iota
	AxisLeftY
	AxisRightX
	AxisRightY
)

// StandardButtonMap maps W3C standard gamepad button indices to semantic
// buttons. The trigger slots map to ButtonNone.
var StandardButtonMap = [17]Button{
	0:                 ButtonA,
	1:                 ButtonB,
	2:                 ButtonX,
	3:                 ButtonY,
	4:                 ButtonLB,
	5:                 ButtonRB,
	LeftTriggerIndex:  ButtonNone,
	RightTriggerIndex: ButtonNone,
	8:                 ButtonBack,
	9:                 ButtonPlay,
	10:                ButtonLSClick,
	11:                ButtonRSClick,
	12:                ButtonUp,
	13:                ButtonDown,
	14:                ButtonLeft,
	15:                ButtonRight,
	16:                ButtonSpecial,
}

// RemapConfig swaps face buttons after table lookup, for controllers whose
// printed labels differ from the Xbox layout.
type RemapConfig struct {
	InvertAB bool `json:"invertAB" yaml:"invertAB"`
	InvertXY bool `json:"invertXY" yaml:"invertXY"`
}

// Apply returns the button b maps to under c. Applying the same config
// twice yields b again.
func (c RemapConfig) Apply(b Button) Button {
	if c.InvertAB {
		switch b {
		case ButtonA:
			return ButtonB
		case ButtonB:
			return ButtonA
		}
	}
	if c.InvertXY {
		switch b {
		case ButtonX:
			return ButtonY
		case ButtonY:
			return ButtonX
		}
	}
	return b
}

// Lookup returns the semantic button for a standard mapping index with c
// applied. Out of range indices and trigger slots yield ButtonNone.
func (c RemapConfig) Lookup(index int) Button {
	if index < 0 || index >= len(StandardButtonMap) {
		return ButtonNone
	}
	return c.Apply(StandardButtonMap[index])
}
