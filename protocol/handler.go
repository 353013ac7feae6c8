package protocol

import (
	"fmt"
	"log/slog"
	"time"
)

// HandlerFunc processes one decoded message. A nil reply means nothing is
// sent back.
type HandlerFunc func(m Message, logger *slog.Logger) (reply Message, err error)

// Router dispatches decoded messages by type.
type Router struct {
	handlers map[MsgType]HandlerFunc
	logger   *slog.Logger
}

// NewRouter creates an empty router.
func NewRouter(logger *slog.Logger) *Router {
	if logger == nil {
		logger = slog.Default()
	}
	return &Router{handlers: map[MsgType]HandlerFunc{}, logger: logger}
}

// Register sets the handler for t, replacing any previous one.
func (r *Router) Register(t MsgType, h HandlerFunc) {
	r.handlers[t] = h
}

// Handle decodes data, runs the matching handler and returns the encoded
// reply. Messages without a handler are dropped.
func (r *Router) Handle(data []byte) ([]byte, error) {
	m, err := Unmarshal(data)
	if err != nil {
		return nil, err
	}
	h, ok := r.handlers[m.Type()]
	if !ok {
		r.logger.Debug("no handler for message", "type", m.Type())
		return nil, nil
	}
	reply, err := h(m, r.logger)
	if err != nil {
		return nil, fmt.Errorf("handle %s: %w", m.Type(), err)
	}
	if reply == nil {
		return nil, nil
	}
	return Marshal(reply)
}

// PingHandler returns a handler answering pings with a pong stamped by now, in
// microseconds since the Unix epoch.
func PingHandler(now func() time.Time) HandlerFunc {
	if now == nil {
		now = time.Now
	}
	return func(m Message, logger *slog.Logger) (Message, error) {
		p, ok := m.(*Ping)
		if !ok {
			return nil, fmt.Errorf("ping handler got %s", m.Type())
		}
		logger.Debug("ping", "seq", p.Seq)
		return p.Answer(uint64(now().UnixMicro())), nil
	}
}
