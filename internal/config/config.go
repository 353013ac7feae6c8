// Package config defines the CLI structure and configuration for moonproto.
package config

import (
	"github.com/Alia5/moonproto/internal/cmd"
)

type Log struct {
	Level   string `help:"Log level: trace, debug, info, warn, error" default:"info" env:"MOONPROTO_LOG_LEVEL"`
	File    string `help:"Log file path (default: none; logs only to console)" env:"MOONPROTO_LOG_FILE"`
	RawFile string `help:"Raw packet log file path (default: none)" env:"MOONPROTO_LOG_RAW_FILE"`
}

// CLI is the root command structure for Kong CLI parsing.
type CLI struct {
	Config string `help:"Config file (.json, .yaml, .yml, .toml)" type:"path" env:"MOONPROTO_CONFIG"`

	Log `embed:"" prefix:"log."`

	Probe   cmd.Probe   `cmd:"" help:"Negotiate supported video formats"`
	Gamepad cmd.Gamepad `cmd:"" help:"Encode recorded controller readings as wire messages"`
	Decode  cmd.Decode  `cmd:"" help:"Decode hex encoded wire messages"`
}
