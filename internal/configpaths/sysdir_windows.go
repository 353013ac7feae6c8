//go:build windows

package configpaths

import (
	"os"
	"path/filepath"
)

// SystemConfigDir returns the machine wide config directory.
func SystemConfigDir() (string, error) {
	if pd := os.Getenv("ProgramData"); pd != "" {
		return filepath.Join(pd, AppName), nil
	}
	return DefaultConfigDir()
}
