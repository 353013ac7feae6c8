package configpaths_test

import (
	"path/filepath"
	"testing"

	"github.com/Alia5/moonproto/internal/configpaths"
	"github.com/stretchr/testify/assert"
)

func TestConfigCandidatePathsUser(t *testing.T) {
	type testCase struct {
		name string
		path string
		json int
		yaml int
		toml int
	}

	cases := []testCase{
		{name: "json", path: "my.json", json: 1},
		{name: "yaml", path: "my.YAML", yaml: 1},
		{name: "yml", path: "my.yml", yaml: 1},
		{name: "toml", path: "my.toml", toml: 1},
		{name: "unknown", path: "my.conf", json: 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			j, y, tm := configpaths.ConfigCandidatePaths(tc.path)
			assert.Len(t, j, tc.json)
			assert.Len(t, y, tc.yaml)
			assert.Len(t, tm, tc.toml)
		})
	}
}

func TestConfigCandidatePathsDefault(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	j, y, tm := configpaths.ConfigCandidatePaths("")
	if assert.NotEmpty(t, j) {
		assert.Equal(t, filepath.Join(".", "config.json"), j[0])
	}
	assert.Equal(t, 2*len(j), len(y))
	assert.Equal(t, len(j), len(tm))

	dir, err := configpaths.DefaultConfigDir()
	if assert.NoError(t, err) {
		assert.Equal(t, "moonproto", filepath.Base(dir))
		assert.Contains(t, j, filepath.Join(dir, "config.json"))
	}
}
