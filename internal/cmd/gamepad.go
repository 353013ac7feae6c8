package cmd

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Alia5/moonproto/gamepad"
	"github.com/Alia5/moonproto/internal/log"
	"github.com/Alia5/moonproto/protocol"
	"gopkg.in/yaml.v3"
)

var controllerTypes = map[string]gamepad.Type{
	"unknown":     gamepad.TypeUnknown,
	"xbox":        gamepad.TypeXbox,
	"playstation": gamepad.TypePlayStation,
	"nintendo":    gamepad.TypeNintendo,
}

// Gamepad replays recorded controller readings and prints the controller
// state messages they produce, one hex encoded message per line.
type Gamepad struct {
	Input    string        `arg:"" optional:"" help:"Readings file (.json, .yaml, .yml) or - for JSON on stdin" default:"-"`
	ID       uint8         `help:"Controller slot" name:"id" default:"0"`
	Type     string        `help:"Controller type announced on connect" default:"xbox" enum:"unknown,xbox,playstation,nintendo"`
	Connect  bool          `help:"Emit a controller connected event first"`
	InvertAB bool          `help:"Swap A and B" name:"invert-ab" env:"MOONPROTO_GAMEPAD_INVERT_AB"`
	InvertXY bool          `help:"Swap X and Y" name:"invert-xy" env:"MOONPROTO_GAMEPAD_INVERT_XY"`
	Interval time.Duration `help:"Sampling interval" default:"1ms"`

	In  io.Reader `kong:"-"`
	Out io.Writer `kong:"-"`
}

// Run is called by Kong when the gamepad command is executed.
func (g *Gamepad) Run(logger *slog.Logger, rawLogger log.RawLogger) error {
	readings, err := g.readings()
	if err != nil {
		return err
	}
	logger.Debug("replaying controller readings", "count", len(readings), "id", g.ID)

	out := output(g.Out)
	emit := func(m protocol.Message) error {
		data, err := protocol.Marshal(m)
		if err != nil {
			return err
		}
		rawLogger.Log("out", data)
		_, err = fmt.Fprintln(out, hex.EncodeToString(data))
		return err
	}

	if g.Connect {
		caps := gamepad.CapAnalogTriggers | gamepad.CapRumble
		if err := emit(protocol.NewControllerConnected(g.ID, controllerTypes[g.Type], caps)); err != nil {
			return err
		}
	}

	next := 0
	src := gamepad.SourceFunc(func() (gamepad.Reading, bool) {
		if next >= len(readings) {
			return gamepad.Reading{}, false
		}
		r := readings[next]
		next++
		return r, true
	})
	remap := gamepad.RemapConfig{InvertAB: g.InvertAB, InvertXY: g.InvertXY}

	interval := g.Interval
	if interval <= 0 {
		interval = time.Millisecond
	}
	err = gamepad.Poll(context.Background(), src, interval, remap, func(s gamepad.Snapshot) error {
		logger.Log(context.Background(), log.LevelTrace, "controller snapshot", "buttons", s.Buttons)
		return emit(protocol.ControllerStateFromSnapshot(g.ID, s))
	})
	if errors.Is(err, gamepad.ErrDisconnected) {
		if g.Connect {
			return emit(&protocol.ControllerEvent{ID: g.ID, Event: protocol.ControllerDisconnected})
		}
		return nil
	}
	return err
}

func (g *Gamepad) readings() ([]gamepad.Reading, error) {
	var (
		data []byte
		err  error
	)
	if g.Input == "-" || g.Input == "" {
		in := g.In
		if in == nil {
			in = os.Stdin
		}
		data, err = io.ReadAll(in)
	} else {
		data, err = os.ReadFile(g.Input)
	}
	if err != nil {
		return nil, err
	}

	var readings []gamepad.Reading
	switch strings.ToLower(filepath.Ext(g.Input)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &readings)
	default:
		err = json.Unmarshal(data, &readings)
	}
	if err != nil {
		return nil, fmt.Errorf("parse readings: %w", err)
	}
	return readings, nil
}
