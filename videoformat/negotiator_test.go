package videoformat_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/Alia5/moonproto/videoformat"
	"github.com/pion/webrtc/v4"
	"github.com/stretchr/testify/assert"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeReceiver struct {
	codecs []webrtc.RTPCodecCapability
	err    error
}

func (f *fakeReceiver) VideoCodecs(context.Context) ([]webrtc.RTPCodecCapability, error) {
	return f.codecs, f.err
}

type fakeDecoder struct {
	probe func(cfg videoformat.DecoderConfig) (bool, error)
	calls []string
}

func (f *fakeDecoder) IsConfigSupported(_ context.Context, cfg videoformat.DecoderConfig) (bool, error) {
	f.calls = append(f.calls, cfg.Codec)
	return f.probe(cfg)
}

type fakeContainer func(string) bool

func (f fakeContainer) IsTypeSupported(typ string) bool { return f(typ) }

type fakeMedia struct {
	answers map[string]videoformat.CanPlay
	err     error
}

func (f *fakeMedia) NewMediaElement() (videoformat.MediaElement, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f, nil
}

func (f *fakeMedia) CanPlayType(typ string) videoformat.CanPlay { return f.answers[typ] }

func supportOf(formats ...videoformat.Format) videoformat.Support {
	var s videoformat.Support
	for _, f := range formats {
		s.Mark(f, true)
	}
	return s
}

func everything(videoformat.DecoderConfig) (bool, error) { return true, nil }

func TestNegotiateBaselineOnly(t *testing.T) {
	n := videoformat.New(videoformat.Platform{}, videoformat.DefaultCatalog(), discardLogger())
	res := n.Negotiate(context.Background())

	assert.Equal(t, videoformat.StrategyNone, res.Strategy)
	assert.Equal(t, supportOf(videoformat.H264), res.Support)
	assert.Equal(t, uint32(0x0001), res.Bits)
}

func TestNegotiateStrategyExclusivity(t *testing.T) {
	dec := &fakeDecoder{probe: everything}
	p := videoformat.Platform{
		Receiver: &fakeReceiver{codecs: []webrtc.RTPCodecCapability{
			{MimeType: "video/H264", ClockRate: 90000, SDPFmtpLine: "level-asymmetry-allowed=1;packetization-mode=1;profile-level-id=42e01f"},
		}},
		Decoder:   dec,
		Container: fakeContainer(func(string) bool { return true }),
		Media:     &fakeMedia{answers: map[string]videoformat.CanPlay{}},
	}

	res := videoformat.New(p, videoformat.DefaultCatalog(), discardLogger()).Negotiate(context.Background())
	assert.Equal(t, "receiver-capabilities", res.Strategy)
	assert.Equal(t, supportOf(videoformat.H264), res.Support)
	assert.Equal(t, uint32(0x0001), res.Bits)
	assert.Empty(t, dec.calls, "later strategies must not run")
}

func TestReceiverMatching(t *testing.T) {
	type testCase struct {
		name     string
		codecs   []webrtc.RTPCodecCapability
		expected videoformat.Support
	}

	cases := []testCase{
		{
			name: "mime is case insensitive",
			codecs: []webrtc.RTPCodecCapability{
				{MimeType: "VIDEO/h265", SDPFmtpLine: "profile-id=1"},
			},
			expected: supportOf(videoformat.H264, videoformat.H265),
		},
		{
			name: "all params required",
			codecs: []webrtc.RTPCodecCapability{
				{MimeType: "video/H264", SDPFmtpLine: "profile-level-id=42e01f"},
			},
			expected: supportOf(videoformat.H264),
		},
		{
			name: "safari style bare mime",
			codecs: []webrtc.RTPCodecCapability{
				{MimeType: "video/AV1"},
				{MimeType: "video/H265"},
			},
			expected: supportOf(videoformat.H264, videoformat.H265, videoformat.AV1Main8),
		},
		{
			name: "hevc profiles",
			codecs: []webrtc.RTPCodecCapability{
				{MimeType: "video/H265", SDPFmtpLine: "level-id=93;profile-id=2;tier-flag=0"},
				{MimeType: "video/H265", SDPFmtpLine: "level-id=93;profile-id=4;tier-flag=0"},
			},
			expected: supportOf(videoformat.H264, videoformat.H265, videoformat.H265Main10, videoformat.H265Rext8_444),
		},
		{
			name: "high 444",
			codecs: []webrtc.RTPCodecCapability{
				{MimeType: "video/H264", SDPFmtpLine: "packetization-mode=1;profile-level-id=f4001f"},
				{MimeType: "video/AV1", SDPFmtpLine: "profile=1"},
			},
			expected: supportOf(videoformat.H264, videoformat.H264High8_444, videoformat.AV1Main8, videoformat.AV1High8_444),
		},
		{
			name:     "empty list still counts as available",
			expected: supportOf(videoformat.H264),
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := &videoformat.ReceiverStrategy{
				Capabilities: &fakeReceiver{codecs: tc.codecs},
				Entries:      videoformat.DefaultCatalog().Receiver,
			}
			got, err := s.Detect(context.Background(), videoformat.StandardSupport(), discardLogger())
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestReceiverErrorFallsThrough(t *testing.T) {
	p := videoformat.Platform{
		Receiver: &fakeReceiver{err: errors.New("not implemented")},
		Decoder: &fakeDecoder{probe: func(cfg videoformat.DecoderConfig) (bool, error) {
			return strings.HasPrefix(cfg.Codec, "av01.0"), nil
		}},
	}
	res := videoformat.New(p, videoformat.DefaultCatalog(), discardLogger()).Negotiate(context.Background())
	assert.Equal(t, "decoder-config", res.Strategy)
	assert.Equal(t, supportOf(videoformat.H264, videoformat.AV1Main8, videoformat.AV1Main10), res.Support)
	assert.Equal(t, uint32(0x3001), res.Bits)
}

func TestDecoderProbesAreIsolated(t *testing.T) {
	dec := &fakeDecoder{probe: func(cfg videoformat.DecoderConfig) (bool, error) {
		switch {
		case strings.HasPrefix(cfg.Codec, "hvc1.1"):
			panic("decoder exploded")
		case strings.HasPrefix(cfg.Codec, "hvc1.2"):
			return true, errors.New("NotSupportedError")
		case strings.HasPrefix(cfg.Codec, "avc1"):
			return false, nil
		}
		return true, nil
	}}
	catalog := videoformat.DefaultCatalog()
	s := &videoformat.DecoderStrategy{Checker: dec, Entries: catalog.Decoder}

	got, err := s.Detect(context.Background(), videoformat.StandardSupport(), discardLogger())
	assert.NoError(t, err)
	assert.Len(t, dec.calls, len(catalog.Decoder), "every probe runs")

	assert.True(t, got[videoformat.H264], "baseline is never downgraded")
	assert.False(t, got[videoformat.H264High8_444])
	assert.False(t, got[videoformat.H265], "panic counts as unsupported")
	assert.False(t, got[videoformat.H265Main10], "error counts as unsupported")
	assert.True(t, got[videoformat.H265Rext8_444])
	assert.True(t, got[videoformat.H265Rext10_444])
	assert.True(t, got[videoformat.AV1Main8])
	assert.True(t, got[videoformat.AV1High10_444])
}

func TestDecoderColorSpace(t *testing.T) {
	var seen []*videoformat.ColorSpace
	dec := &fakeDecoder{probe: func(cfg videoformat.DecoderConfig) (bool, error) {
		seen = append(seen, cfg.ColorSpace)
		return false, nil
	}}
	s := &videoformat.DecoderStrategy{Checker: dec, Entries: videoformat.DefaultCatalog().Decoder}
	_, err := s.Detect(context.Background(), videoformat.StandardSupport(), discardLogger())
	assert.NoError(t, err)
	if assert.NotEmpty(t, seen) && assert.NotNil(t, seen[0]) {
		assert.Equal(t, "bt709", seen[0].Primaries)
		assert.True(t, seen[0].FullRange)
	}
}

func TestContainerStrategy(t *testing.T) {
	p := videoformat.Platform{
		Container: fakeContainer(func(typ string) bool {
			return strings.Contains(typ, "hvc1.1.6") || strings.Contains(typ, "av01.0.04M.08")
		}),
		Media: &fakeMedia{answers: map[string]videoformat.CanPlay{
			`video/mp4; codecs="av01.1.04M.10"`: videoformat.CanPlayProbably,
		}},
	}
	res := videoformat.New(p, videoformat.DefaultCatalog(), discardLogger()).Negotiate(context.Background())
	assert.Equal(t, "container-type", res.Strategy)
	assert.Equal(t, supportOf(videoformat.H264, videoformat.H265, videoformat.AV1Main8), res.Support)
}

func TestMediaElementOnlyProbably(t *testing.T) {
	media := &fakeMedia{answers: map[string]videoformat.CanPlay{
		`video/mp4; codecs="hvc1.1.6.L93.B0"`:  videoformat.CanPlayProbably,
		`video/mp4; codecs="hvc1.2.4.L120.90"`: videoformat.CanPlayMaybe,
		`video/mp4; codecs="avc1.42E01E"`:      videoformat.CanPlayNo,
	}}
	res := videoformat.New(videoformat.Platform{Media: media}, videoformat.DefaultCatalog(), discardLogger()).
		Negotiate(context.Background())
	assert.Equal(t, "media-element", res.Strategy)
	assert.Equal(t, supportOf(videoformat.H264, videoformat.H265), res.Support)
}

func TestMediaElementConstructionFails(t *testing.T) {
	media := &fakeMedia{err: errors.New("no document")}
	res := videoformat.New(videoformat.Platform{Media: media}, videoformat.DefaultCatalog(), discardLogger()).
		Negotiate(context.Background())
	assert.Equal(t, videoformat.StrategyNone, res.Strategy)
	assert.Equal(t, supportOf(videoformat.H264), res.Support)
}

type erroringStrategy struct{}

func (erroringStrategy) Name() string { return "broken" }

func (erroringStrategy) Detect(_ context.Context, base videoformat.Support, _ *slog.Logger) (videoformat.Support, error) {
	return base, errors.New("broken")
}

func TestNegotiatorSkipsFailingStrategy(t *testing.T) {
	n := videoformat.NewNegotiator(discardLogger(),
		erroringStrategy{},
		&videoformat.ContainerStrategy{
			Checker: fakeContainer(func(string) bool { return true }),
			Entries: videoformat.DefaultCatalog().Container,
		},
	)
	res := n.Negotiate(context.Background())
	assert.Equal(t, "container-type", res.Strategy)
	assert.Equal(t, uint32(0xFF05), res.Bits)
}

func TestDefaultCatalogIsACopy(t *testing.T) {
	a := videoformat.DefaultCatalog()
	a.Receiver[0].MimeType = "video/VP8"
	a.Decoder[0].Config.ColorSpace.Primaries = "bt2020"
	b := videoformat.DefaultCatalog()
	assert.Equal(t, "video/H264", b.Receiver[0].MimeType)
	assert.Equal(t, "bt709", b.Decoder[0].Config.ColorSpace.Primaries)
}

type panickingReceiver struct{}

func (panickingReceiver) VideoCodecs(context.Context) ([]webrtc.RTPCodecCapability, error) {
	panic("receiver exploded")
}

func TestReceiverPanicFallsThrough(t *testing.T) {
	s := &videoformat.ReceiverStrategy{Capabilities: panickingReceiver{}, Entries: videoformat.DefaultCatalog().Receiver}
	got, err := s.Detect(context.Background(), videoformat.StandardSupport(), discardLogger())
	assert.ErrorIs(t, err, videoformat.ErrUnavailable)
	assert.Equal(t, videoformat.StandardSupport(), got)

	p := videoformat.Platform{
		Receiver: panickingReceiver{},
		Decoder: &fakeDecoder{probe: func(cfg videoformat.DecoderConfig) (bool, error) {
			return strings.HasPrefix(cfg.Codec, "hvc1.1"), nil
		}},
	}
	res := videoformat.New(p, videoformat.DefaultCatalog(), discardLogger()).Negotiate(context.Background())
	assert.Equal(t, "decoder-config", res.Strategy)
	assert.Equal(t, supportOf(videoformat.H264, videoformat.H265), res.Support)
}

func TestStrategiesAcceptNilLogger(t *testing.T) {
	catalog := videoformat.DefaultCatalog()
	strategies := []videoformat.Strategy{
		&videoformat.ReceiverStrategy{
			Capabilities: &fakeReceiver{codecs: []webrtc.RTPCodecCapability{{MimeType: "video/H265", SDPFmtpLine: "profile-id=1"}}},
			Entries:      catalog.Receiver,
		},
		&videoformat.DecoderStrategy{
			Checker: &fakeDecoder{probe: func(videoformat.DecoderConfig) (bool, error) { return false, errors.New("unsupported") }},
			Entries: catalog.Decoder,
		},
		&videoformat.ContainerStrategy{
			Checker: fakeContainer(func(string) bool { panic("container exploded") }),
			Entries: catalog.Container,
		},
		&videoformat.MediaElementStrategy{
			Factory: &fakeMedia{answers: map[string]videoformat.CanPlay{}},
			Entries: catalog.Container,
		},
	}

	for _, s := range strategies {
		t.Run(s.Name(), func(t *testing.T) {
			assert.NotPanics(t, func() {
				_, err := s.Detect(context.Background(), videoformat.StandardSupport(), nil)
				assert.NoError(t, err)
			})
		})
	}
}
