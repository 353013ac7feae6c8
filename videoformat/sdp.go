package videoformat

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/pion/sdp/v3"
	"github.com/pion/webrtc/v4"
)

// SDPReceiver reports the video codecs declared in a session description,
// e.g. an offer produced by a browser peer connection.
type SDPReceiver struct {
	SDP string
}

func (r *SDPReceiver) VideoCodecs(_ context.Context) ([]webrtc.RTPCodecCapability, error) {
	return CodecsFromSDP(r.SDP)
}

// CodecsFromSDP collects rtpmap/fmtp pairs of every video media section.
func CodecsFromSDP(raw string) ([]webrtc.RTPCodecCapability, error) {
	var desc sdp.SessionDescription
	if err := desc.Unmarshal([]byte(raw)); err != nil {
		return nil, fmt.Errorf("parse sdp: %w", err)
	}

	var out []webrtc.RTPCodecCapability
	for _, md := range desc.MediaDescriptions {
		if md.MediaName.Media != "video" {
			continue
		}
		rtpmap := map[string]webrtc.RTPCodecCapability{}
		fmtp := map[string]string{}
		for _, a := range md.Attributes {
			pt, rest, ok := strings.Cut(a.Value, " ")
			if !ok {
				continue
			}
			switch a.Key {
			case "rtpmap":
				c, ok := parseRtpmap(rest)
				if ok {
					rtpmap[pt] = c
				}
			case "fmtp":
				fmtp[pt] = strings.TrimSpace(rest)
			}
		}
		for _, pt := range md.MediaName.Formats {
			c, ok := rtpmap[pt]
			if !ok {
				continue
			}
			c.SDPFmtpLine = fmtp[pt]
			out = append(out, c)
		}
	}
	return out, nil
}

// parseRtpmap parses "H264/90000" into a capability.
func parseRtpmap(v string) (webrtc.RTPCodecCapability, bool) {
	parts := strings.Split(strings.TrimSpace(v), "/")
	if len(parts) < 2 || parts[0] == "" {
		return webrtc.RTPCodecCapability{}, false
	}
	rate, err := strconv.ParseUint(parts[1], 10, 32)
	if err != nil {
		return webrtc.RTPCodecCapability{}, false
	}
	return webrtc.RTPCodecCapability{
		MimeType:  "video/" + parts[0],
		ClockRate: uint32(rate),
	}, true
}

// PionReceiver reports the video codecs a local pion/webrtc stack would
// accept, taken from a receive-only video offer.
type PionReceiver struct {
	// MediaEngine to inspect. nil uses pion's default codecs.
	MediaEngine *webrtc.MediaEngine
}

func (p *PionReceiver) VideoCodecs(ctx context.Context) ([]webrtc.RTPCodecCapability, error) {
	m := p.MediaEngine
	if m == nil {
		m = &webrtc.MediaEngine{}
		if err := m.RegisterDefaultCodecs(); err != nil {
			return nil, fmt.Errorf("register codecs: %w", err)
		}
	}

	api := webrtc.NewAPI(webrtc.WithMediaEngine(m))
	pc, err := api.NewPeerConnection(webrtc.Configuration{})
	if err != nil {
		return nil, fmt.Errorf("peer connection: %w", err)
	}
	defer pc.Close()

	if _, err := pc.AddTransceiverFromKind(webrtc.RTPCodecTypeVideo, webrtc.RTPTransceiverInit{
		Direction: webrtc.RTPTransceiverDirectionRecvonly,
	}); err != nil {
		return nil, fmt.Errorf("add transceiver: %w", err)
	}

	offer, err := pc.CreateOffer(nil)
	if err != nil {
		return nil, fmt.Errorf("create offer: %w", err)
	}
	return (&SDPReceiver{SDP: offer.SDP}).VideoCodecs(ctx)
}
