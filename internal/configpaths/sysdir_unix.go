//go:build !windows

package configpaths

import (
	"os"
	"path/filepath"
)

// SystemConfigDir returns the machine wide config directory.
// On Unix, root uses /etc/moonproto.
func SystemConfigDir() (string, error) {
	if os.Geteuid() == 0 {
		return filepath.Join(string(os.PathSeparator), "etc", AppName), nil
	}
	return DefaultConfigDir()
}
