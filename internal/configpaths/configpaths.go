// Package configpaths locates moonproto configuration files.
package configpaths

import (
	"os"
	"path/filepath"
	"strings"
)

// AppName is the directory name used below the OS config roots.
const AppName = "moonproto"

const baseName = "config"

// DefaultConfigDir returns the per-user config directory.
func DefaultConfigDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, AppName), nil
}

// ConfigCandidatePaths lists config files per format in priority order.
// An explicit userCfg is only returned for its own format and replaces the
// default search.
func ConfigCandidatePaths(userCfg string) (jsonPaths, yamlPaths, tomlPaths []string) {
	if userCfg != "" {
		switch strings.ToLower(filepath.Ext(userCfg)) {
		case ".json":
			return []string{userCfg}, nil, nil
		case ".yaml", ".yml":
			return nil, []string{userCfg}, nil
		case ".toml":
			return nil, nil, []string{userCfg}
		}
		// unknown extension: let the JSON loader report it
		return []string{userCfg}, nil, nil
	}

	dirs := []string{"."}
	if d, err := DefaultConfigDir(); err == nil {
		dirs = append(dirs, d)
	}
	if d, err := SystemConfigDir(); err == nil && d != dirs[len(dirs)-1] {
		dirs = append(dirs, d)
	}

	for _, d := range dirs {
		jsonPaths = append(jsonPaths, filepath.Join(d, baseName+".json"))
		yamlPaths = append(yamlPaths,
			filepath.Join(d, baseName+".yaml"),
			filepath.Join(d, baseName+".yml"),
		)
		tomlPaths = append(tomlPaths, filepath.Join(d, baseName+".toml"))
	}
	return jsonPaths, yamlPaths, tomlPaths
}
