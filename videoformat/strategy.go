package videoformat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pion/webrtc/v4"
)

// ErrUnavailable is returned by a Strategy whose platform surface is missing.
var ErrUnavailable = errors.New("videoformat: strategy unavailable")

// Strategy is one capability detection technique. Detect starts from base
// and only ever turns entries on. It returns an error wrapping
// ErrUnavailable when it cannot run at all.
type Strategy interface {
	Name() string
	Detect(ctx context.Context, base Support, logger *slog.Logger) (Support, error)
}

// ReceiverStrategy matches catalog entries against a receiver's declared
// codec list.
type ReceiverStrategy struct {
	Capabilities ReceiverCapabilities
	Entries      []ReceiverEntry
}

func (s *ReceiverStrategy) Name() string { return "receiver-capabilities" }

func (s *ReceiverStrategy) Detect(ctx context.Context, base Support, logger *slog.Logger) (Support, error) {
	if s.Capabilities == nil {
		return base, ErrUnavailable
	}
	logger = orDefault(logger)
	var codecs []webrtc.RTPCodecCapability
	_, err := guard(func() (bool, error) {
		var err error
		codecs, err = s.Capabilities.VideoCodecs(ctx)
		return err == nil, err
	})
	if err != nil {
		return base, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	out := base
	for _, e := range s.Entries {
		for _, c := range codecs {
			if !strings.EqualFold(c.MimeType, e.MimeType) {
				continue
			}
			if hasAllParams(c.SDPFmtpLine, e.FmtpParams) {
				logger.Debug("receiver codec matched", "format", e.Format, "mime", c.MimeType, "fmtp", c.SDPFmtpLine)
				out.Mark(e.Format, true)
				break
			}
		}
	}
	return out, nil
}

func hasAllParams(line string, params []string) bool {
	for _, p := range params {
		if !strings.Contains(line, p) {
			return false
		}
	}
	return true
}

// DecoderStrategy probes a decoder with each catalog configuration in turn.
type DecoderStrategy struct {
	Checker DecoderConfigChecker
	Entries []DecoderEntry
}

func (s *DecoderStrategy) Name() string { return "decoder-config" }

func (s *DecoderStrategy) Detect(ctx context.Context, base Support, logger *slog.Logger) (Support, error) {
	if s.Checker == nil {
		return base, ErrUnavailable
	}
	logger = orDefault(logger)
	out := base
	for _, e := range s.Entries {
		ok, err := guard(func() (bool, error) { return s.Checker.IsConfigSupported(ctx, e.Config) })
		if err != nil {
			logger.Debug("decoder probe failed", "format", e.Format, "codec", e.Config.Codec, "error", err)
			continue
		}
		out.Mark(e.Format, ok)
	}
	return out, nil
}

// ContainerStrategy asks whether a minimal container wrapping each codec is
// playable.
type ContainerStrategy struct {
	Checker ContainerTypeChecker
	Entries []ContainerEntry
}

func (s *ContainerStrategy) Name() string { return "container-type" }

func (s *ContainerStrategy) Detect(_ context.Context, base Support, logger *slog.Logger) (Support, error) {
	if s.Checker == nil {
		return base, ErrUnavailable
	}
	logger = orDefault(logger)
	out := base
	for _, e := range s.Entries {
		ok, err := guard(func() (bool, error) { return s.Checker.IsTypeSupported(e.Type), nil })
		if err != nil {
			logger.Debug("container probe failed", "format", e.Format, "type", e.Type, "error", err)
			continue
		}
		out.Mark(e.Format, ok)
	}
	return out, nil
}

// MediaElementStrategy queries a throwaway media element. Only
// CanPlayProbably counts as supported.
type MediaElementStrategy struct {
	Factory MediaElementFactory
	Entries []ContainerEntry
}

func (s *MediaElementStrategy) Name() string { return "media-element" }

func (s *MediaElementStrategy) Detect(_ context.Context, base Support, logger *slog.Logger) (Support, error) {
	if s.Factory == nil {
		return base, ErrUnavailable
	}
	el, err := s.Factory.NewMediaElement()
	if err != nil {
		return base, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	logger = orDefault(logger)
	out := base
	for _, e := range s.Entries {
		ok, err := guard(func() (bool, error) { return el.CanPlayType(e.Type) == CanPlayProbably, nil })
		if err != nil {
			logger.Debug("media element probe failed", "format", e.Format, "type", e.Type, "error", err)
			continue
		}
		out.Mark(e.Format, ok)
	}
	return out, nil
}

// guard runs a single probe, turning a panic into an error so one broken
// probe cannot abort the rest.
func guard(probe func() (bool, error)) (ok bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			ok = false
			err = fmt.Errorf("probe panicked: %v", r)
		}
	}()
	return probe()
}

func orDefault(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}
