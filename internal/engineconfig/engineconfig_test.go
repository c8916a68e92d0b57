package engineconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rigid2d/internal/physics"
)

func writeFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sandbox.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(Default(), cfg))

	cfg, err = Load("")
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(Default(), cfg))
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := writeFile(t, `
physics:
  gravity: 980
  elasticity: 0.2
  workers: 4
sandbox:
  width: 1024
  scene: scenes/stack.yaml
logger:
  level: debug
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, float32(980), cfg.Physics.Gravity)
	assert.Equal(t, float32(0.2), cfg.Physics.Elasticity)
	assert.Equal(t, 4, cfg.Physics.Workers)
	assert.Equal(t, physics.DefaultConfig().Drag, cfg.Physics.Drag, "unset keys keep their default")
	assert.Equal(t, 1024, cfg.Sandbox.Width)
	assert.Equal(t, 450, cfg.Sandbox.Height)
	assert.Equal(t, "scenes/stack.yaml", cfg.Sandbox.Scene)
	assert.Equal(t, "debug", cfg.Logger.Level)
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("RIGID2D_PHYSICS_GRAVITY", "250")
	t.Setenv("RIGID2D_SANDBOX_TICK_RATE", "120")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, float32(250), cfg.Physics.Gravity)
	assert.Equal(t, 120, cfg.Sandbox.TickRate)
	assert.InDelta(t, 1.0/120, cfg.Sandbox.TickSeconds(), 1e-7)
}

func TestLoadRejectsInvalidSettings(t *testing.T) {
	_, err := Load(writeFile(t, "physics:\n  drag: 3\n"))
	assert.ErrorIs(t, err, physics.ErrInvalidConfig)

	_, err = Load(writeFile(t, "sandbox:\n  tick_rate: 0\n"))
	assert.ErrorIs(t, err, ErrInvalid)

	_, err = Load(writeFile(t, "physics: [unterminated\n"))
	assert.Error(t, err)
}

func TestSaveThenLoad(t *testing.T) {
	want := Default()
	want.Physics.Gravity = 123.5
	want.Physics.Slop = 0.25
	want.Sandbox.ShowFPS = false
	want.Sandbox.Scene = "demo.yaml"
	want.Logger.Compress = true

	path := filepath.Join(t.TempDir(), "config", "sandbox.yaml")
	require.NoError(t, Save(path, want))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(want, got))
}
