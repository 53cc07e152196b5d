package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestDefaultIsValid ensures the built-in settings pass validation unchanged.
func TestDefaultIsValid(t *testing.T) {
	t.Parallel()

	cfg := Default()
	require.NoError(t, Validate(cfg))
	require.Equal(t, Default(), cfg)
}

// TestValidate checks rejected values and filled defaults.
func TestValidate(t *testing.T) {
	t.Parallel()

	require.ErrorIs(t, Validate(nil), errConfigIsNotSet)

	cfg := Default()
	cfg.Audio.Backend = "alsa"
	require.ErrorIs(t, Validate(cfg), errBadBackend)

	cfg = Default()
	cfg.Audio.SampleRate = 0
	require.ErrorIs(t, Validate(cfg), errBadSampleRate)

	cfg = Default()
	cfg.Audio.Reverb.Wet = 1.5
	require.ErrorIs(t, Validate(cfg), errBadEffectMix)

	cfg = Default()
	cfg.Audio.Echo.DelayMs = -1
	require.ErrorIs(t, Validate(cfg), errNegativeDuration)

	cfg = Default()
	cfg.Chuff.MinDelay = cfg.Chuff.InitialDelay + 1
	require.ErrorIs(t, Validate(cfg), errBadChuffDelays)

	cfg = Default()
	cfg.Chuff.Count = 0
	require.ErrorIs(t, Validate(cfg), errBadChuffCount)

	cfg = Default()
	cfg.Whistle.CombinedTicks = -1
	require.ErrorIs(t, Validate(cfg), errNegativeDuration)

	cfg = Default()
	cfg.CounterCeiling = cfg.IdleThreshold
	require.ErrorIs(t, Validate(cfg), errBadCounterCeiling)

	cfg = Default()
	cfg.TickPeriod = 0
	cfg.IdleThreshold = 0
	cfg.Audio.Backend = ""
	cfg.Audio.Volume = -3
	require.NoError(t, Validate(cfg))
	require.Equal(t, 20*time.Millisecond, cfg.TickPeriod)
	require.Equal(t, 1, cfg.IdleThreshold)
	require.Equal(t, "ebiten", cfg.Audio.Backend)
	require.Zero(t, cfg.Audio.Volume)
}

// TestSaveLoadRoundtrip ensures settings are persisted and loaded back correctly.
func TestSaveLoadRoundtrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "locofx.yaml")

	cfg := Default()
	cfg.Seed = 99
	cfg.IdleThreshold = 123
	cfg.Audio.Backend = "oto"
	cfg.Whistle.Chord = [3]int{523, 659, 784}

	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, cfg, loaded)
}

// TestLoadPartialFileKeepsDefaults verifies unspecified keys fall back to defaults.
func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "partial.yaml")
	data := "tick_period: 5ms\nchuff:\n  count: 8\n"
	require.NoError(t, os.WriteFile(path, []byte(data), DefaultFilePermissions))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 5*time.Millisecond, cfg.TickPeriod)
	require.Equal(t, 8, cfg.Chuff.Count)
	require.Equal(t, Default().Chuff.InitialDelay, cfg.Chuff.InitialDelay)
	require.Equal(t, Default().Whistle, cfg.Whistle)
}

// TestLoadErrors covers a missing file and malformed YAML.
func TestLoadErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	_, err := Load(filepath.Join(dir, "missing.yaml"))
	require.ErrorContains(t, err, "read settings")

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("idle_threshold: [1, 2"), DefaultFilePermissions))
	_, err = Load(bad)
	require.ErrorContains(t, err, "unmarshal settings")
}

// TestSaveNil rejects a nil configuration.
func TestSaveNil(t *testing.T) {
	t.Parallel()

	require.ErrorIs(t, Save(filepath.Join(t.TempDir(), "x.yaml"), nil), errConfigIsNotSet)
}
