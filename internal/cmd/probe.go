package cmd

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Alia5/moonproto/internal/log"
	"github.com/Alia5/moonproto/protocol"
	"github.com/Alia5/moonproto/videoformat"
)

// Probe negotiates the supported video formats of a platform.
type Probe struct {
	Platform  string `help:"Platform description file (.json, .yaml, .yml, .toml)" type:"existingfile" env:"MOONPROTO_PROBE_PLATFORM"`
	SDP       string `help:"SDP offer whose video section is used as receiver capabilities" name:"sdp" type:"existingfile" env:"MOONPROTO_PROBE_SDP"`
	Pion      bool   `help:"Use the local WebRTC stack as receiver capabilities" env:"MOONPROTO_PROBE_PION"`
	GStreamer bool   `help:"Probe installed GStreamer decoder elements" name:"gstreamer" env:"MOONPROTO_PROBE_GSTREAMER"`

	Setup    bool   `help:"Also print the stream setup message for the result"`
	Width    int    `help:"Stream width" default:"1920" env:"MOONPROTO_STREAM_WIDTH"`
	Height   int    `help:"Stream height" default:"1080" env:"MOONPROTO_STREAM_HEIGHT"`
	FPS      int    `help:"Stream frame rate" name:"fps" default:"60" env:"MOONPROTO_STREAM_FPS"`
	Bitrate  int    `help:"Stream bitrate in kbps" default:"20000" env:"MOONPROTO_STREAM_BITRATE"`
	ClientID string `help:"Client unique id (default: random)" env:"MOONPROTO_CLIENT_ID"`

	Out io.Writer `kong:"-"`
}

type probeReport struct {
	Strategy string               `json:"strategy"`
	Formats  []videoformat.Format `json:"formats"`
	Bits     string               `json:"bits"`
	Setup    string               `json:"setup,omitempty"`
}

// Run is called by Kong when the probe command is executed.
func (p *Probe) Run(logger *slog.Logger, rawLogger log.RawLogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	platform, err := p.platform()
	if err != nil {
		return err
	}

	res := videoformat.New(platform, videoformat.DefaultCatalog(), logger).Negotiate(ctx)
	report := probeReport{
		Strategy: res.Strategy,
		Formats:  res.Support.Supported(),
		Bits:     fmt.Sprintf("0x%04x", res.Bits),
	}

	if p.Setup {
		cfg := p.streamConfig().WithFormats(res)
		data, err := protocol.Marshal(cfg.Setup())
		if err != nil {
			return err
		}
		rawLogger.Log("out", data)
		report.Setup = hex.EncodeToString(data)
	}

	return writeJSON(output(p.Out), report)
}

func (p *Probe) platform() (videoformat.Platform, error) {
	var platform videoformat.Platform
	if p.Platform != "" {
		sp, err := videoformat.LoadStaticPlatform(p.Platform)
		if err != nil {
			return platform, err
		}
		platform = sp.Platform()
	}
	if p.SDP != "" {
		raw, err := os.ReadFile(p.SDP)
		if err != nil {
			return platform, err
		}
		platform.Receiver = &videoformat.SDPReceiver{SDP: string(raw)}
	}
	if p.Pion {
		platform.Receiver = &videoformat.PionReceiver{}
	}
	if p.GStreamer {
		dec, err := videoformat.LookupGStreamerDecoder()
		if err != nil {
			return platform, fmt.Errorf("gstreamer: %w", err)
		}
		platform.Decoder = dec
	}
	return platform, nil
}

func (p *Probe) streamConfig() protocol.StreamConfig {
	cfg := protocol.DefaultStreamConfig()
	cfg.Width = p.Width
	cfg.Height = p.Height
	cfg.FPS = p.FPS
	cfg.Bitrate = p.Bitrate
	if p.ClientID != "" {
		cfg.ClientUniqueID = p.ClientID
	}
	return cfg
}
