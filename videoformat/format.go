// Package videoformat negotiates which video codec profiles the local
// decoding pipeline accepts and encodes the result as the support bitmask
// sent to the streaming host.
package videoformat

import "strings"

// Format is a codec profile distinguished during negotiation.
type Format uint8

const (
	H264 Format = iota
	H264High8_444
	H265
	H265Main10
	H265Rext8_444
	H265Rext10_444
	AV1Main8
	AV1Main10
	AV1High8_444
	AV1High10_444

	// FormatCount is the number of known formats.
	FormatCount
)

// FormatBitsV1 is the host-facing bit assigned to every format.
// Reordering requires a protocol version bump.
var FormatBitsV1 = [FormatCount]uint32{
	H264:           0x0001,
	H264High8_444:  0x0004,
	H265:           0x0100,
	H265Main10:     0x0200,
	H265Rext8_444:  0x0400,
	H265Rext10_444: 0x0800,
	AV1Main8:       0x1000,
	AV1Main10:      0x2000,
	AV1High8_444:   0x4000,
	AV1High10_444:  0x8000,
}

var formatNames = [FormatCount]string{
	H264:           "H264",
	H264High8_444:  "H264_HIGH8_444",
	H265:           "H265",
	H265Main10:     "H265_MAIN10",
	H265Rext8_444:  "H265_REXT8_444",
	H265Rext10_444: "H265_REXT10_444",
	AV1Main8:       "AV1_MAIN8",
	AV1Main10:      "AV1_MAIN10",
	AV1High8_444:   "AV1_HIGH8_444",
	AV1High10_444:  "AV1_HIGH10_444",
}

// Baseline is assumed decodable everywhere.
const Baseline = H264

// Formats lists every format in enumeration order.
func Formats() []Format {
	out := make([]Format, FormatCount)
	for i := range out {
		out[i] = Format(i)
	}
	return out
}

// Bit returns the wire bit of f, or 0 for unknown values.
func (f Format) Bit() uint32 {
	if f >= FormatCount {
		return 0
	}
	return FormatBitsV1[f]
}

func (f Format) String() string {
	if f >= FormatCount {
		return "UNKNOWN"
	}
	return formatNames[f]
}

// ParseFormat resolves a format name as produced by String, case-insensitively.
func ParseFormat(s string) (Format, bool) {
	for i, n := range formatNames {
		if strings.EqualFold(n, s) {
			return Format(i), true
		}
	}
	return 0, false
}

// MarshalText implements encoding.TextMarshaler.
func (f Format) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *Format) UnmarshalText(b []byte) error {
	v, ok := ParseFormat(string(b))
	if !ok {
		return &UnknownFormatError{Name: string(b)}
	}
	*f = v
	return nil
}

// UnknownFormatError is returned when a format name cannot be resolved.
type UnknownFormatError struct {
	Name string
}

func (e *UnknownFormatError) Error() string {
	return "videoformat: unknown format " + e.Name
}

// Support records which formats are decodable.
type Support [FormatCount]bool

// StandardSupport returns the starting point of every negotiation: only the
// baseline format is marked supported.
func StandardSupport() Support {
	var s Support
	s[Baseline] = true
	return s
}

// Bits returns the OR of the bits of every supported format.
func (s Support) Bits() uint32 {
	var bits uint32
	for i, ok := range s {
		if ok {
			bits |= FormatBitsV1[i]
		}
	}
	return bits
}

// SupportFromBits is the inverse of Support.Bits. Unknown bits are ignored.
func SupportFromBits(bits uint32) Support {
	var s Support
	for i, bit := range FormatBitsV1 {
		s[i] = bits&bit != 0
	}
	return s
}

// Supported lists the supported formats in enumeration order.
func (s Support) Supported() []Format {
	var out []Format
	for i, ok := range s {
		if ok {
			out = append(out, Format(i))
		}
	}
	return out
}

// Mark sets f supported. Marks never clear an existing entry.
func (s *Support) Mark(f Format, ok bool) {
	if f < FormatCount && ok {
		s[f] = true
	}
}
