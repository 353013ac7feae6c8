package videoformat

import (
	"context"

	"github.com/pion/webrtc/v4"
)

// ReceiverCapabilities lists the video codecs a receiver declares, in the
// shape of RTCRtpReceiver.getCapabilities("video").codecs.
type ReceiverCapabilities interface {
	VideoCodecs(ctx context.Context) ([]webrtc.RTPCodecCapability, error)
}

// DecoderConfigChecker asks whether a decoder could be configured with cfg.
type DecoderConfigChecker interface {
	IsConfigSupported(ctx context.Context, cfg DecoderConfig) (bool, error)
}

// ContainerTypeChecker asks whether a container/codec type string is
// playable, like MediaSource.isTypeSupported.
type ContainerTypeChecker interface {
	IsTypeSupported(typ string) bool
}

// CanPlay is a media element's confidence that it can play a type.
type CanPlay string

const (
	CanPlayNo       CanPlay = ""
	CanPlayMaybe    CanPlay = "maybe"
	CanPlayProbably CanPlay = "probably"
)

// MediaElement answers playability queries.
type MediaElement interface {
	CanPlayType(typ string) CanPlay
}

// MediaElementFactory creates throwaway media elements.
type MediaElementFactory interface {
	NewMediaElement() (MediaElement, error)
}

// Platform bundles the capability query surfaces available locally.
// A nil field means the surface does not exist.
type Platform struct {
	Receiver  ReceiverCapabilities
	Decoder   DecoderConfigChecker
	Container ContainerTypeChecker
	Media     MediaElementFactory
}

// Strategies builds the detection chain for p in priority order.
func Strategies(p Platform, c Catalog) []Strategy {
	return []Strategy{
		&ReceiverStrategy{Capabilities: p.Receiver, Entries: c.Receiver},
		&DecoderStrategy{Checker: p.Decoder, Entries: c.Decoder},
		&ContainerStrategy{Checker: p.Container, Entries: c.Container},
		&MediaElementStrategy{Factory: p.Media, Entries: c.Container},
	}
}
