// file: internal/config/config_test.go
// version: 1.0.0
// guid: 7b9c1d3e-5f6a-7b8c-9d0e-1f2a3b4c5d6f

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err, "an explicit missing file is an error")

	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, 70, cfg.Lookup.AcceptScore)
	assert.Equal(t, 80, cfg.Lookup.SuggestScore)
	assert.Equal(t, 80, cfg.Lookup.ShortCircuitScore)
	assert.Equal(t, 50, cfg.Limits.MaxAuthorLen)
	assert.Equal(t, 50, cfg.Limits.MaxSeriesLen)
	assert.Equal(t, 50, cfg.Limits.MaxTitleLen)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "abtools.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
lookup:
  accept_score: 75
  shortcircuit_score: 90
limits:
  max_title_len: 80
flags:
  audible_first: false
  use_goodreads: true
`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 75, cfg.Lookup.AcceptScore)
	assert.Equal(t, 80, cfg.Lookup.SuggestScore, "unset keys keep defaults")
	assert.Equal(t, 90, cfg.Lookup.ShortCircuitScore)
	assert.Equal(t, 80, cfg.Limits.MaxTitleLen)
	assert.Equal(t, 50, cfg.Limits.MaxAuthorLen)
	assert.False(t, cfg.Flags.IsOn("audible_first", true))
	assert.True(t, cfg.Flags.IsOn("use_goodreads", false))
}

func TestFlagsDefaultForUnknown(t *testing.T) {
	f := Flags{}
	assert.True(t, f.IsOn("anything", true))
	assert.False(t, f.IsOn("anything", false))
}
