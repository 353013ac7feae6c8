package cmd

import (
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/Alia5/moonproto/internal/log"
	"github.com/Alia5/moonproto/protocol"
)

// Decode prints hex encoded wire messages as JSON.
type Decode struct {
	Messages []string `arg:"" help:"Hex encoded messages; whitespace and colons are ignored"`
	Reply    bool     `help:"Also print the host reply for messages that have one"`

	Out io.Writer `kong:"-"`
}

type decodedMessage struct {
	Type    string           `json:"type"`
	Size    int              `json:"size"`
	Message protocol.Message `json:"message"`
	Reply   string           `json:"reply,omitempty"`
}

// Run is called by Kong when the decode command is executed.
func (d *Decode) Run(logger *slog.Logger, rawLogger log.RawLogger) error {
	out := output(d.Out)
	router := protocol.NewRouter(logger)
	router.Register(protocol.MsgPing, protocol.PingHandler(nil))

	for i, s := range d.Messages {
		data, err := hex.DecodeString(strings.NewReplacer(" ", "", ":", "", "\n", "", "\t", "").Replace(s))
		if err != nil {
			return fmt.Errorf("message %d: %w", i, err)
		}
		rawLogger.Log("in", data)

		m, err := protocol.Unmarshal(data)
		if err != nil {
			return fmt.Errorf("message %d: %w", i, err)
		}
		logger.Debug("decoded message", "index", i, "type", m.Type())
		res := decodedMessage{Type: m.Type().String(), Size: m.Size(), Message: m}

		if d.Reply {
			reply, err := router.Handle(data)
			if err != nil {
				return fmt.Errorf("message %d: %w", i, err)
			}
			if reply != nil {
				rawLogger.Log("out", reply)
				res.Reply = hex.EncodeToString(reply)
			}
		}
		if err := writeJSON(out, res); err != nil {
			return err
		}
	}
	return nil
}
