package videoformat

import (
	"context"
	"errors"
	"log/slog"
)

// StrategyNone is reported when no strategy was available.
const StrategyNone = "none"

// Result is the outcome of a negotiation.
type Result struct {
	Support  Support
	Bits     uint32
	Strategy string
}

// Negotiator runs an ordered list of strategies and keeps the result of the
// first one that is available. Results are never merged across strategies.
type Negotiator struct {
	strategies []Strategy
	logger     *slog.Logger
}

// NewNegotiator creates a negotiator over strategies in priority order.
func NewNegotiator(logger *slog.Logger, strategies ...Strategy) *Negotiator {
	return &Negotiator{strategies: strategies, logger: orDefault(logger)}
}

// New creates a negotiator over the standard strategy chain for p.
func New(p Platform, c Catalog, logger *slog.Logger) *Negotiator {
	return NewNegotiator(logger, Strategies(p, c)...)
}

// Negotiate runs to completion; ctx is only handed to the platform queries.
// With no strategy available the baseline support is returned.
func (n *Negotiator) Negotiate(ctx context.Context) Result {
	for _, s := range n.strategies {
		support, err := s.Detect(ctx, StandardSupport(), n.logger)
		if err != nil {
			if !errors.Is(err, ErrUnavailable) {
				n.logger.Warn("video format strategy failed", "strategy", s.Name(), "error", err)
			} else {
				n.logger.Debug("video format strategy unavailable", "strategy", s.Name(), "error", err)
			}
			continue
		}
		res := Result{Support: support, Bits: support.Bits(), Strategy: s.Name()}
		n.logger.Info("video formats negotiated", "strategy", res.Strategy, "formats", support.Supported(), "bits", res.Bits)
		return res
	}

	support := StandardSupport()
	n.logger.Warn("no video format detection available, using baseline", "formats", support.Supported())
	return Result{Support: support, Bits: support.Bits(), Strategy: StrategyNone}
}
