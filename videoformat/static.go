package videoformat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/pelletier/go-toml"
	"github.com/pion/webrtc/v4"
	"gopkg.in/yaml.v3"
)

// StaticPlatform is a declarative description of a platform's capability
// surfaces. A nil section means the surface is not available.
type StaticPlatform struct {
	Receiver  *StaticReceiver  `json:"receiver,omitempty" yaml:"receiver,omitempty" toml:"receiver,omitempty"`
	Decoder   *StaticDecoder   `json:"decoder,omitempty" yaml:"decoder,omitempty" toml:"decoder,omitempty"`
	Container *StaticContainer `json:"container,omitempty" yaml:"container,omitempty" toml:"container,omitempty"`
	Media     *StaticMedia     `json:"media,omitempty" yaml:"media,omitempty" toml:"media,omitempty"`
}

type StaticCodec struct {
	MimeType    string `json:"mimeType" yaml:"mimeType" toml:"mimeType"`
	SDPFmtpLine string `json:"sdpFmtpLine" yaml:"sdpFmtpLine" toml:"sdpFmtpLine"`
}

type StaticReceiver struct {
	Codecs []StaticCodec `json:"codecs" yaml:"codecs" toml:"codecs"`
}

func (r *StaticReceiver) VideoCodecs(context.Context) ([]webrtc.RTPCodecCapability, error) {
	out := make([]webrtc.RTPCodecCapability, 0, len(r.Codecs))
	for _, c := range r.Codecs {
		out = append(out, webrtc.RTPCodecCapability{MimeType: c.MimeType, ClockRate: 90000, SDPFmtpLine: c.SDPFmtpLine})
	}
	return out, nil
}

// StaticDecoder accepts the listed codec strings. Codecs listed under
// Failing make the probe return an error.
type StaticDecoder struct {
	Supported []string `json:"supported" yaml:"supported" toml:"supported"`
	Failing   []string `json:"failing,omitempty" yaml:"failing,omitempty" toml:"failing,omitempty"`
}

func (d *StaticDecoder) IsConfigSupported(_ context.Context, cfg DecoderConfig) (bool, error) {
	if containsFold(d.Failing, cfg.Codec) {
		return false, fmt.Errorf("decoder rejected configuration %q", cfg.Codec)
	}
	return containsFold(d.Supported, cfg.Codec), nil
}

type StaticContainer struct {
	Types []string `json:"types" yaml:"types" toml:"types"`
}

func (c *StaticContainer) IsTypeSupported(typ string) bool {
	return slices.Contains(c.Types, typ)
}

type StaticMedia struct {
	Probably []string `json:"probably" yaml:"probably" toml:"probably"`
	Maybe    []string `json:"maybe,omitempty" yaml:"maybe,omitempty" toml:"maybe,omitempty"`
}

func (m *StaticMedia) NewMediaElement() (MediaElement, error) { return m, nil }

func (m *StaticMedia) CanPlayType(typ string) CanPlay {
	switch {
	case slices.Contains(m.Probably, typ):
		return CanPlayProbably
	case slices.Contains(m.Maybe, typ):
		return CanPlayMaybe
	}
	return CanPlayNo
}

func containsFold(list []string, s string) bool {
	return slices.ContainsFunc(list, func(v string) bool { return strings.EqualFold(v, s) })
}

// Platform exposes the sections present in p.
func (p *StaticPlatform) Platform() Platform {
	var out Platform
	if p.Receiver != nil {
		out.Receiver = p.Receiver
	}
	if p.Decoder != nil {
		out.Decoder = p.Decoder
	}
	if p.Container != nil {
		out.Container = p.Container
	}
	if p.Media != nil {
		out.Media = p.Media
	}
	return out
}

// ErrUnknownPlatformFormat is returned for description files whose
// extension is not .json, .yaml, .yml or .toml.
var ErrUnknownPlatformFormat = errors.New("videoformat: unknown platform description format")

// LoadStaticPlatform reads a platform description, choosing the decoder by
// file extension.
func LoadStaticPlatform(path string) (*StaticPlatform, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	p, err := ParseStaticPlatform(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// ParseStaticPlatform decodes a platform description in the format named by
// ext (".json", ".yaml", ".yml" or ".toml").
func ParseStaticPlatform(data []byte, ext string) (*StaticPlatform, error) {
	var p StaticPlatform
	var err error
	switch strings.ToLower(ext) {
	case ".json":
		err = json.Unmarshal(data, &p)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &p)
	case ".toml":
		err = toml.Unmarshal(data, &p)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPlatformFormat, ext)
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}
