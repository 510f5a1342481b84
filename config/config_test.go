package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/katalvlaran/ziptie/config"
	"github.com/katalvlaran/ziptie/ziptie"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeFile writes body to name inside a fresh temp dir and returns the path.
func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))

	return p
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoad_YAMLThenEnv(t *testing.T) {
	p := writeFile(t, "ziptie.yaml", `
name: retina
level: 1
max_cables: 32
activity_threshold: 0.2
describe_every: 100
snapshot:
  path: /tmp/zt.db
  every: 50
movie:
  stills_dir: frames
  fps: 24
`)
	t.Setenv(config.EnvMaxCables, "48")
	t.Setenv(config.EnvName, "cortex")

	cfg, err := config.Load(p)
	require.NoError(t, err)
	assert.Equal(t, "cortex", cfg.Name, "environment wins over the file")
	assert.Equal(t, 48, cfg.MaxCables)
	assert.Equal(t, 1, cfg.Level)
	assert.Equal(t, 0.2, cfg.ActivityThreshold)
	assert.Equal(t, 100, cfg.DescribeEvery)
	assert.Equal(t, config.Snapshot{Path: "/tmp/zt.db", Every: 50}, cfg.Snapshot)
	assert.Equal(t, "frames", cfg.Movie.StillsDir)
	assert.Equal(t, 24, cfg.Movie.FPS)
	assert.Equal(t, "-", cfg.Input, "unset fields keep their defaults")

	zt, err := ziptie.New(cfg.MaxCables, cfg.ZipTieOptions()...)
	require.NoError(t, err)
	assert.Equal(t, "cortex", zt.Name())
	assert.Equal(t, 50.0, zt.NucleationThreshold())
}

func TestLoad_Invalid(t *testing.T) {
	_, err := config.Load(writeFile(t, "bad.yaml", "max_cables: 0\n"))
	require.ErrorIs(t, err, config.ErrInvalid)

	_, err = config.Load(writeFile(t, "neg.yaml", "level: -2\n"))
	require.ErrorIs(t, err, config.ErrInvalid)

	t.Setenv(config.EnvLevel, "two")
	_, err = config.Load("")
	require.ErrorIs(t, err, config.ErrInvalid)
}

// TestLoadUnvalidated_DefersValidation lets a caller repair a value the
// file got wrong before validating.
func TestLoadUnvalidated_DefersValidation(t *testing.T) {
	p := writeFile(t, "zero.yaml", "max_cables: 0\nname: fixme\n")

	cfg, err := config.LoadUnvalidated(p)
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.MaxCables)
	assert.Equal(t, "fixme", cfg.Name)
	require.ErrorIs(t, cfg.Validate(), config.ErrInvalid)

	cfg.MaxCables = 8
	require.NoError(t, cfg.Validate())

	t.Setenv(config.EnvMaxCables, "many")
	_, err = config.LoadUnvalidated(p)
	require.ErrorIs(t, err, config.ErrInvalid, "malformed env values still fail")
}

func TestLoad_Errors(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)

	_, err = config.Load(writeFile(t, "broken.yaml", "max_cables: [1, 2\n"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := config.Default()
	require.NoError(t, cfg.Validate())

	cfg.ActivityThreshold = 2
	require.ErrorIs(t, cfg.Validate(), config.ErrInvalid)

	cfg = config.Default()
	cfg.Snapshot.Every = -1
	require.ErrorIs(t, cfg.Validate(), config.ErrInvalid)
}
