package gamepad_test

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/Alia5/moonproto/gamepad"
	"github.com/stretchr/testify/assert"
)

func pressed(indices ...int) []gamepad.ButtonReading {
	bs := make([]gamepad.ButtonReading, 17)
	for _, i := range indices {
		bs[i] = gamepad.ButtonReading{Pressed: true, Value: 1}
	}
	return bs
}

func TestExtractButtons(t *testing.T) {
	type testCase struct {
		name     string
		reading  gamepad.Reading
		remap    gamepad.RemapConfig
		expected gamepad.ButtonFlags
	}

	cases := []testCase{
		{
			name:     "nothing pressed",
			reading:  gamepad.Reading{Buttons: pressed()},
			expected: 0,
		},
		{
			name:     "a and b",
			reading:  gamepad.Reading{Buttons: pressed(0, 1)},
			expected: 0x1000 | 0x2000,
		},
		{
			name:     "dpad and special",
			reading:  gamepad.Reading{Buttons: pressed(12, 15, 16)},
			expected: 0x0001 | 0x0008 | 0x0400,
		},
		{
			name:     "shoulders, sticks, back, play",
			reading:  gamepad.Reading{Buttons: pressed(4, 5, 8, 9, 10, 11)},
			expected: 0x0100 | 0x0200 | 0x0020 | 0x0010 | 0x0040 | 0x0080,
		},
		{
			name:     "trigger slots contribute no flag",
			reading:  gamepad.Reading{Buttons: pressed(6, 7)},
			expected: 0,
		},
		{
			name:     "invert ab",
			reading:  gamepad.Reading{Buttons: pressed(0)},
			remap:    gamepad.RemapConfig{InvertAB: true},
			expected: gamepad.ButtonB.Flag(),
		},
		{
			name:     "invert xy",
			reading:  gamepad.Reading{Buttons: pressed(2)},
			remap:    gamepad.RemapConfig{InvertXY: true},
			expected: gamepad.ButtonY.Flag(),
		},
		{
			name:     "both inversions",
			reading:  gamepad.Reading{Buttons: pressed(0, 3)},
			remap:    gamepad.RemapConfig{InvertAB: true, InvertXY: true},
			expected: gamepad.ButtonB.Flag() | gamepad.ButtonX.Flag(),
		},
		{
			name: "extra buttons beyond the standard layout are ignored",
			reading: gamepad.Reading{Buttons: append(pressed(0),
				gamepad.ButtonReading{Pressed: true, Value: 1},
				gamepad.ButtonReading{Pressed: true, Value: 1})},
			expected: gamepad.ButtonA.Flag(),
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := gamepad.Extract(tc.reading, tc.remap)
			assert.Equal(t, tc.expected, s.Buttons)
		})
	}
}

func TestExtractAnalog(t *testing.T) {
	bs := pressed()
	bs[gamepad.LeftTriggerIndex] = gamepad.ButtonReading{Pressed: true, Value: 0.25}
	bs[gamepad.RightTriggerIndex] = gamepad.ButtonReading{Value: 0.75}

	s := gamepad.Extract(gamepad.Reading{
		Buttons: bs,
		Axes:    []float64{-0.5, 0.5, 1, -1},
	}, gamepad.RemapConfig{})

	assert.Equal(t, gamepad.ButtonFlags(0), s.Buttons)
	assert.Equal(t, 0.25, s.LeftTrigger)
	assert.Equal(t, 0.75, s.RightTrigger)
	assert.Equal(t, -0.5, s.LeftStickX)
	assert.Equal(t, 0.5, s.LeftStickY)
	assert.Equal(t, 1.0, s.RightStickX)
	assert.Equal(t, -1.0, s.RightStickY)
}

func TestExtractPartialReport(t *testing.T) {
	r := gamepad.Reading{
		Buttons: []gamepad.ButtonReading{
			{Pressed: true, Value: 1},
			{},
			{},
			{Pressed: true, Value: 1},
		},
		Axes: []float64{0.1, -0.2},
	}

	s := gamepad.Extract(r, gamepad.RemapConfig{})
	assert.Equal(t, gamepad.ButtonA.Flag()|gamepad.ButtonY.Flag(), s.Buttons)
	assert.Zero(t, s.LeftTrigger)
	assert.Zero(t, s.RightTrigger)
	assert.Equal(t, 0.1, s.LeftStickX)
	assert.Equal(t, -0.2, s.LeftStickY)
	assert.Zero(t, s.RightStickX)
	assert.Zero(t, s.RightStickY)

	assert.Equal(t, gamepad.Snapshot{}, gamepad.Extract(gamepad.Reading{}, gamepad.RemapConfig{}))
}

func TestRemapInvolution(t *testing.T) {
	configs := []gamepad.RemapConfig{
		{},
		{InvertAB: true},
		{InvertXY: true},
		{InvertAB: true, InvertXY: true},
	}
	for _, c := range configs {
		for i := range gamepad.StandardButtonMap {
			b := gamepad.StandardButtonMap[i]
			assert.Equal(t, b, c.Apply(c.Apply(b)), "config %+v index %d", c, i)
		}
	}
}

func TestRemapIndependence(t *testing.T) {
	ab := gamepad.RemapConfig{InvertAB: true}
	xy := gamepad.RemapConfig{InvertXY: true}

	assert.Equal(t, gamepad.ButtonX, ab.Apply(gamepad.ButtonX))
	assert.Equal(t, gamepad.ButtonY, ab.Apply(gamepad.ButtonY))
	assert.Equal(t, gamepad.ButtonA, xy.Apply(gamepad.ButtonA))
	assert.Equal(t, gamepad.ButtonB, xy.Apply(gamepad.ButtonB))

	assert.Equal(t, gamepad.ButtonNone, ab.Lookup(gamepad.LeftTriggerIndex))
	assert.Equal(t, gamepad.ButtonNone, ab.Lookup(17))
	assert.Equal(t, gamepad.ButtonNone, ab.Lookup(-1))
}

func TestSupportedButtons(t *testing.T) {
	var all gamepad.ButtonFlags
	for _, b := range gamepad.StandardButtonMap {
		all |= b.Flag()
	}
	assert.Equal(t, gamepad.SupportedButtons, all)

	s := gamepad.Snapshot{Buttons: gamepad.ButtonA.Flag() | gamepad.ButtonPaddle1.Flag() | gamepad.ButtonTouchpad.Flag()}
	assert.Equal(t, gamepad.ButtonA.Flag(), s.Masked().Buttons)
}

func TestButtonFlags(t *testing.T) {
	f := gamepad.ButtonFlags(0).Set(gamepad.ButtonA).Set(gamepad.ButtonUp)
	assert.True(t, f.Has(gamepad.ButtonA))
	assert.True(t, f.Has(gamepad.ButtonUp))
	assert.False(t, f.Has(gamepad.ButtonB))
	assert.False(t, f.Has(gamepad.ButtonNone))
	assert.Equal(t, []gamepad.Button{gamepad.ButtonA, gamepad.ButtonUp}, f.Buttons())
	assert.Equal(t, "a|up", f.String())
	assert.Equal(t, "none", gamepad.ButtonFlags(0).String())
}

func TestQuantise(t *testing.T) {
	assert.Equal(t, uint8(0), gamepad.TriggerByte(-0.5))
	assert.Equal(t, uint8(0), gamepad.TriggerByte(math.NaN()))
	assert.Equal(t, uint8(128), gamepad.TriggerByte(0.5))
	assert.Equal(t, uint8(255), gamepad.TriggerByte(1.2))

	assert.Equal(t, int16(-32767), gamepad.AxisShort(-3))
	assert.Equal(t, int16(0), gamepad.AxisShort(0))
	assert.Equal(t, int16(16384), gamepad.AxisShort(0.5))
	assert.Equal(t, int16(32767), gamepad.AxisShort(1))
}

func TestPoll(t *testing.T) {
	readings := []gamepad.Reading{
		{Buttons: pressed(0)},
		{Buttons: pressed(0)},
		{Buttons: pressed(0, 1)},
	}
	i := 0
	src := gamepad.SourceFunc(func() (gamepad.Reading, bool) {
		if i >= len(readings) {
			return gamepad.Reading{}, false
		}
		r := readings[i]
		i++
		return r, true
	})

	var got []gamepad.ButtonFlags
	err := gamepad.Poll(context.Background(), src, time.Millisecond, gamepad.RemapConfig{}, func(s gamepad.Snapshot) error {
		got = append(got, s.Buttons)
		return nil
	})
	assert.ErrorIs(t, err, gamepad.ErrDisconnected)
	assert.Equal(t, []gamepad.ButtonFlags{
		gamepad.ButtonA.Flag(),
		gamepad.ButtonA.Flag() | gamepad.ButtonB.Flag(),
	}, got)
}

func TestPollStops(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	src := gamepad.SourceFunc(func() (gamepad.Reading, bool) { return gamepad.Reading{}, true })

	calls := 0
	err := gamepad.Poll(ctx, src, time.Millisecond, gamepad.RemapConfig{}, func(gamepad.Snapshot) error {
		calls++
		cancel()
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, 1, calls)

	boom := errors.New("boom")
	err = gamepad.Poll(context.Background(), src, time.Millisecond, gamepad.RemapConfig{}, func(gamepad.Snapshot) error {
		return boom
	})
	assert.ErrorIs(t, err, boom)
}

func TestPollRejectsNonPositiveInterval(t *testing.T) {
	src := gamepad.SourceFunc(func() (gamepad.Reading, bool) { return gamepad.Reading{}, true })
	for _, interval := range []time.Duration{0, -time.Second} {
		called := false
		err := gamepad.Poll(context.Background(), src, interval, gamepad.RemapConfig{}, func(gamepad.Snapshot) error {
			called = true
			return nil
		})
		assert.ErrorIs(t, err, gamepad.ErrInvalidInterval)
		assert.False(t, called)
	}
}
