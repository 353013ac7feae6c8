package videoformat

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// DefaultGStreamerDecoders returns the decoder elements per codec family,
// hardware first. Each call returns a fresh map.
func DefaultGStreamerDecoders() map[string][]string {
	return map[string][]string{
		"h264": {"vah264dec", "nvh264dec", "avdec_h264"},
		"h265": {"vah265dec", "nvh265dec", "avdec_h265"},
		"av1":  {"vaav1dec", "nvav1dec", "dav1ddec", "av1dec"},
	}
}

// GStreamerDecoder answers decoder probes by asking gst-inspect whether a
// decoder element for the codec family is installed. Profile, bit depth and
// chroma details are not distinguished.
type GStreamerDecoder struct {
	Inspect  string
	Decoders map[string][]string

	// Run executes the inspector. nil runs it with os/exec.
	Run func(ctx context.Context, name string, args ...string) error
}

// LookupGStreamerDecoder finds gst-inspect-1.0 on PATH.
func LookupGStreamerDecoder() (*GStreamerDecoder, error) {
	path, err := exec.LookPath("gst-inspect-1.0")
	if err != nil {
		return nil, err
	}
	return &GStreamerDecoder{Inspect: path, Decoders: DefaultGStreamerDecoders()}, nil
}

func (g *GStreamerDecoder) IsConfigSupported(ctx context.Context, cfg DecoderConfig) (bool, error) {
	family := CodecFamily(cfg.Codec)
	decoders := g.Decoders
	if decoders == nil {
		decoders = DefaultGStreamerDecoders()
	}
	elements, ok := decoders[family]
	if !ok {
		return false, fmt.Errorf("no decoder elements for codec %q", cfg.Codec)
	}

	run := g.Run
	if run == nil {
		run = func(ctx context.Context, name string, args ...string) error {
			return exec.CommandContext(ctx, name, args...).Run()
		}
	}
	inspect := g.Inspect
	if inspect == "" {
		inspect = "gst-inspect-1.0"
	}
	for _, el := range elements {
		if err := run(ctx, inspect, "--exists", el); err == nil {
			return true, nil
		}
	}
	return false, nil
}

// CodecFamily maps a codec string such as "hvc1.1.6.L93.B0" to its family
// ("h264", "h265", "av1"). Unknown strings yield "".
func CodecFamily(codec string) string {
	prefix, _, _ := strings.Cut(strings.ToLower(codec), ".")
	switch prefix {
	case "avc1", "avc3":
		return "h264"
	case "hvc1", "hev1":
		return "h265"
	case "av01":
		return "av1"
	}
	return ""
}
