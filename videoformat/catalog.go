package videoformat

// ReceiverEntry describes how a format shows up in a receiver capability
// list. An empty FmtpParams matches on mime type alone (Safari lists H265
// and AV1 without parameters).
type ReceiverEntry struct {
	Format     Format
	MimeType   string
	FmtpParams []string
}

// ColorSpace mirrors the colour description handed to a decoder probe.
type ColorSpace struct {
	Primaries string `json:"primaries" yaml:"primaries" toml:"primaries"`
	Transfer  string `json:"transfer" yaml:"transfer" toml:"transfer"`
	Matrix    string `json:"matrix" yaml:"matrix" toml:"matrix"`
	FullRange bool   `json:"fullRange" yaml:"fullRange" toml:"fullRange"`
}

// DecoderConfig is one decoder configuration to probe.
type DecoderConfig struct {
	Codec      string
	ColorSpace *ColorSpace
}

// DecoderEntry ties a decoder probe to a format.
type DecoderEntry struct {
	Format Format
	Config DecoderConfig
}

// ContainerEntry ties a container/codec type string to a format. The same
// strings serve the container-type and media-element strategies.
type ContainerEntry struct {
	Format Format
	Type   string
}

// Catalog is the immutable description of what to probe for each strategy.
type Catalog struct {
	Receiver  []ReceiverEntry
	Decoder   []DecoderEntry
	Container []ContainerEntry
}

var rec709 = ColorSpace{Primaries: "bt709", Transfer: "bt709", Matrix: "bt709", FullRange: true}

// DefaultCatalog returns a fresh copy of the built-in probe tables.
func DefaultCatalog() Catalog {
	cs := rec709
	return Catalog{
		Receiver: []ReceiverEntry{
			{Format: H264, MimeType: "video/H264", FmtpParams: []string{"packetization-mode=1", "profile-level-id=42e01f"}},
			{Format: H264, MimeType: "video/H264", FmtpParams: []string{"packetization-mode=1", "profile-level-id=42001f"}},
			{Format: H264High8_444, MimeType: "video/H264", FmtpParams: []string{"profile-level-id=f4"}},
			{Format: H265, MimeType: "video/H265"},
			{Format: H265, MimeType: "video/H265", FmtpParams: []string{"profile-id=1"}},
			{Format: H265Main10, MimeType: "video/H265", FmtpParams: []string{"profile-id=2"}},
			{Format: H265Rext8_444, MimeType: "video/H265", FmtpParams: []string{"profile-id=4"}},
			{Format: H265Rext10_444, MimeType: "video/H265", FmtpParams: []string{"profile-id=5"}},
			{Format: AV1Main8, MimeType: "video/AV1"},
			{Format: AV1Main8, MimeType: "video/AV1", FmtpParams: []string{"profile=0"}},
			{Format: AV1High8_444, MimeType: "video/AV1", FmtpParams: []string{"profile=1"}},
		},
		Decoder: []DecoderEntry{
			{Format: H264, Config: DecoderConfig{Codec: "avc1.42E01E", ColorSpace: &cs}},
			{Format: H264High8_444, Config: DecoderConfig{Codec: "avc1.F4002A"}},
			{Format: H265, Config: DecoderConfig{Codec: "hvc1.1.6.L93.B0"}},
			{Format: H265Main10, Config: DecoderConfig{Codec: "hvc1.2.4.L120.90"}},
			{Format: H265Rext8_444, Config: DecoderConfig{Codec: "hvc1.6.6.L93.90"}},
			{Format: H265Rext10_444, Config: DecoderConfig{Codec: "hvc1.6.10.L120.90"}},
			{Format: AV1Main8, Config: DecoderConfig{Codec: "av01.0.04M.08"}},
			{Format: AV1Main10, Config: DecoderConfig{Codec: "av01.0.04M.10"}},
			{Format: AV1High8_444, Config: DecoderConfig{Codec: "av01.1.04M.08"}},
			{Format: AV1High10_444, Config: DecoderConfig{Codec: "av01.1.04M.10"}},
		},
		Container: []ContainerEntry{
			{Format: H264, Type: `video/mp4; codecs="avc1.42E01E"`},
			{Format: H264High8_444, Type: `video/mp4; codecs="avc1.F4002A"`},
			{Format: H265, Type: `video/mp4; codecs="hvc1.1.6.L93.B0"`},
			{Format: H265Main10, Type: `video/mp4; codecs="hvc1.2.4.L120.90"`},
			{Format: H265Rext8_444, Type: `video/mp4; codecs="hvc1.6.6.L93.90"`},
			{Format: H265Rext10_444, Type: `video/mp4; codecs="hvc1.6.10.L120.90"`},
			{Format: AV1Main8, Type: `video/mp4; codecs="av01.0.04M.08"`},
			{Format: AV1Main10, Type: `video/mp4; codecs="av01.0.04M.10"`},
			{Format: AV1High8_444, Type: `video/mp4; codecs="av01.1.04M.08"`},
			{Format: AV1High10_444, Type: `video/mp4; codecs="av01.1.04M.10"`},
		},
	}
}
