package log

import (
	"encoding/hex"
	"fmt"
	"io"
	"sync"
	"time"
)

// RawLogger dumps encoded wire messages.
type RawLogger interface {
	// Log writes data labelled with a direction such as "in" or "out".
	Log(direction string, data []byte)
}

// NewRaw returns a RawLogger writing hex dumps to w. A nil writer disables
// raw logging.
func NewRaw(w io.Writer) RawLogger {
	if w == nil {
		return noopRaw{}
	}
	return &rawLogger{w: w, now: time.Now}
}

type noopRaw struct{}

func (noopRaw) Log(string, []byte) {}

type rawLogger struct {
	mu  sync.Mutex
	w   io.Writer
	now func() time.Time
}

func (l *rawLogger) Log(direction string, data []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = fmt.Fprintf(l.w, "%s %s %d bytes\n%s",
		l.now().Format("2006-01-02T15:04:05.000000Z07:00"), direction, len(data), hex.Dump(data))
}
