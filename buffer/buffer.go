// Package buffer provides a fixed-capacity byte buffer with explicit read and
// write cursors, used to build and parse every moonproto wire message.
//
// A ByteBuffer starts in write mode. Flip switches it to read mode: the
// current position becomes the read limit and the position returns to 0.
// Writes are bounded by the storage capacity, reads by the limit.
package buffer

import (
	"encoding/binary"
	"math"
	"strings"
	"unicode/utf8"
)

// ByteBuffer is a cursor over a fixed byte region.
// It is not safe for concurrent use.
type ByteBuffer struct {
	storage      []byte
	position     int
	limit        int
	littleEndian bool
	order        binary.ByteOrder
}

// New allocates a buffer with the given capacity. The byte order used for
// multi-byte values is fixed for the lifetime of the buffer.
func New(capacity int, littleEndian bool) *ByteBuffer {
	if capacity < 0 {
		capacity = 0
	}
	return &ByteBuffer{
		storage:      make([]byte, capacity),
		littleEndian: littleEndian,
		order:        byteOrder(littleEndian),
	}
}

// Wrap copies data into a new buffer that is already flipped, so it can be
// read from immediately.
func Wrap(data []byte, littleEndian bool) *ByteBuffer {
	b := New(len(data), littleEndian)
	copy(b.storage, data)
	b.limit = len(data)
	return b
}

func byteOrder(littleEndian bool) binary.ByteOrder {
	if littleEndian {
		return binary.LittleEndian
	}
	return binary.BigEndian
}

// Position returns the next read/write offset.
func (b *ByteBuffer) Position() int { return b.position }

// Limit returns the read boundary set by the last Flip.
func (b *ByteBuffer) Limit() int { return b.limit }

// Cap returns the storage capacity.
func (b *ByteBuffer) Cap() int { return len(b.storage) }

// Remaining returns how many bytes can still be written.
func (b *ByteBuffer) Remaining() int { return len(b.storage) - b.position }

// LittleEndian reports the byte order chosen at construction.
func (b *ByteBuffer) LittleEndian() bool { return b.littleEndian }

// Flip switches from write mode to read mode.
func (b *ByteBuffer) Flip() {
	b.limit = b.position
	b.position = 0
}

// Reset returns the buffer to its initial write-mode state.
// Storage contents are left untouched.
func (b *ByteBuffer) Reset() {
	b.position = 0
	b.limit = 0
}

// Bytes returns a copy of the readable region [0, limit).
func (b *ByteBuffer) Bytes() []byte {
	out := make([]byte, b.limit)
	copy(out, b.storage[:b.limit])
	return out
}

// reserve checks that n bytes can be written at the current position and
// returns the slice to write into, advancing the position.
func (b *ByteBuffer) reserve(op string, n int) ([]byte, error) {
	if n < 0 || b.position+n > len(b.storage) {
		return nil, &BoundsError{Op: op, Position: b.position, Size: n, Bound: len(b.storage)}
	}
	s := b.storage[b.position : b.position+n]
	b.position += n
	return s, nil
}

// take checks that n bytes can be read at the current position and returns
// them, advancing the position.
func (b *ByteBuffer) take(op string, n int) ([]byte, error) {
	if n < 0 || b.position+n > b.limit {
		return nil, &BoundsError{Op: op, Position: b.position, Size: n, Bound: b.limit}
	}
	s := b.storage[b.position : b.position+n]
	b.position += n
	return s, nil
}

func (b *ByteBuffer) PutU8(v uint8) error {
	s, err := b.reserve("PutU8", 1)
	if err != nil {
		return err
	}
	s[0] = v
	return nil
}

func (b *ByteBuffer) PutI8(v int8) error {
	s, err := b.reserve("PutI8", 1)
	if err != nil {
		return err
	}
	s[0] = uint8(v)
	return nil
}

// PutBool writes a single byte, 1 for true and 0 for false.
func (b *ByteBuffer) PutBool(v bool) error {
	s, err := b.reserve("PutBool", 1)
	if err != nil {
		return err
	}
	s[0] = 0
	if v {
		s[0] = 1
	}
	return nil
}

func (b *ByteBuffer) PutU16(v uint16) error {
	s, err := b.reserve("PutU16", 2)
	if err != nil {
		return err
	}
	b.order.PutUint16(s, v)
	return nil
}

func (b *ByteBuffer) PutI16(v int16) error {
	s, err := b.reserve("PutI16", 2)
	if err != nil {
		return err
	}
	b.order.PutUint16(s, uint16(v))
	return nil
}

func (b *ByteBuffer) PutU32(v uint32) error {
	s, err := b.reserve("PutU32", 4)
	if err != nil {
		return err
	}
	b.order.PutUint32(s, v)
	return nil
}

func (b *ByteBuffer) PutI32(v int32) error {
	s, err := b.reserve("PutI32", 4)
	if err != nil {
		return err
	}
	b.order.PutUint32(s, uint32(v))
	return nil
}

func (b *ByteBuffer) PutU64(v uint64) error {
	s, err := b.reserve("PutU64", 8)
	if err != nil {
		return err
	}
	b.order.PutUint64(s, v)
	return nil
}

// PutF32 writes an IEEE-754 single precision float.
func (b *ByteBuffer) PutF32(v float32) error {
	s, err := b.reserve("PutF32", 4)
	if err != nil {
		return err
	}
	b.order.PutUint32(s, math.Float32bits(v))
	return nil
}

// PutU8Array copies data verbatim.
func (b *ByteBuffer) PutU8Array(data []byte) error {
	s, err := b.reserve("PutU8Array", len(data))
	if err != nil {
		return err
	}
	copy(s, data)
	return nil
}

// PutUTF8 writes the UTF-8 encoding of text without a length prefix.
// Invalid sequences are replaced with U+FFFD. If the encoded text does not
// fit into the remaining capacity nothing is written and a *BoundsError is
// returned.
func (b *ByteBuffer) PutUTF8(text string) error {
	if !utf8.ValidString(text) {
		text = strings.ToValidUTF8(text, string(utf8.RuneError))
	}
	s, err := b.reserve("PutUTF8", len(text))
	if err != nil {
		return err
	}
	copy(s, text)
	return nil
}

func (b *ByteBuffer) GetU8() (uint8, error) {
	s, err := b.take("GetU8", 1)
	if err != nil {
		return 0, err
	}
	return s[0], nil
}

func (b *ByteBuffer) GetI8() (int8, error) {
	s, err := b.take("GetI8", 1)
	if err != nil {
		return 0, err
	}
	return int8(s[0]), nil
}

// GetBool reads a single byte; any non-zero value is true.
func (b *ByteBuffer) GetBool() (bool, error) {
	s, err := b.take("GetBool", 1)
	if err != nil {
		return false, err
	}
	return s[0] != 0, nil
}

func (b *ByteBuffer) GetU16() (uint16, error) {
	s, err := b.take("GetU16", 2)
	if err != nil {
		return 0, err
	}
	return b.order.Uint16(s), nil
}

func (b *ByteBuffer) GetI16() (int16, error) {
	s, err := b.take("GetI16", 2)
	if err != nil {
		return 0, err
	}
	return int16(b.order.Uint16(s)), nil
}

func (b *ByteBuffer) GetU32() (uint32, error) {
	s, err := b.take("GetU32", 4)
	if err != nil {
		return 0, err
	}
	return b.order.Uint32(s), nil
}

func (b *ByteBuffer) GetI32() (int32, error) {
	s, err := b.take("GetI32", 4)
	if err != nil {
		return 0, err
	}
	return int32(b.order.Uint32(s)), nil
}

func (b *ByteBuffer) GetU64() (uint64, error) {
	s, err := b.take("GetU64", 8)
	if err != nil {
		return 0, err
	}
	return b.order.Uint64(s), nil
}

func (b *ByteBuffer) GetF32() (float32, error) {
	s, err := b.take("GetF32", 4)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(b.order.Uint32(s)), nil
}

// Get copies length bytes from the current position into dst[offset:].
func (b *ByteBuffer) Get(dst []byte, offset, length int) error {
	if offset < 0 || length < 0 || offset+length > len(dst) {
		return &BoundsError{Op: "Get", Position: offset, Size: length, Bound: len(dst)}
	}
	s, err := b.take("Get", length)
	if err != nil {
		return err
	}
	copy(dst[offset:offset+length], s)
	return nil
}
