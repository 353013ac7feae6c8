package gamepad

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrDisconnected is returned by Poll when the source reports that the
// controller went away.
var ErrDisconnected = errors.New("gamepad: controller disconnected")

// ErrInvalidInterval is returned by Poll for a non-positive interval.
var ErrInvalidInterval = errors.New("gamepad: poll interval must be positive")

// Source yields the current hardware reading. ok is false once the
// controller is no longer connected.
type Source interface {
	Read() (r Reading, ok bool)
}

// SourceFunc adapts a function to Source.
type SourceFunc func() (Reading, bool)

func (f SourceFunc) Read() (Reading, bool) { return f() }

// Poll samples src every interval and calls fn with each snapshot that
// differs from the previous one. The first sample is always delivered.
// Poll returns nil when ctx is done, ErrDisconnected when src reports the
// controller gone, or the first error returned by fn.
func Poll(ctx context.Context, src Source, interval time.Duration, remap RemapConfig, fn func(Snapshot) error) error {
	if interval <= 0 {
		return fmt.Errorf("%w: %s", ErrInvalidInterval, interval)
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var last Snapshot
	first := true
	for {
		r, ok := src.Read()
		if !ok {
			return ErrDisconnected
		}
		s := Extract(r, remap)
		if first || s != last {
			if err := fn(s); err != nil {
				return err
			}
			last = s
			first = false
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}
