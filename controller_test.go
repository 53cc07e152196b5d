package locofx

import (
	"bytes"
	"context"
	"encoding/binary"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/cbegin/locofx/internal/arbiter"
	"github.com/cbegin/locofx/internal/config"
	"github.com/cbegin/locofx/internal/lighting"
)

func quickConfig() *config.Config {
	cfg := config.Default()
	cfg.Seed = 1234
	cfg.TickPeriod = 10 * time.Millisecond
	cfg.IdleThreshold = 5
	cfg.Audio.SampleRate = 8000
	cfg.Melody.BaseUnit = 200
	cfg.Chuff.Count = 4
	return cfg
}

func TestControllerMasterVolumeRuntimeAPI(t *testing.T) {
	ctrl, err := NewController(context.Background(), config.Default())
	require.NoError(t, err)
	require.Equal(t, 1.0, ctrl.MasterVolume())

	ctrl.SetMasterVolume(0.35)
	require.Equal(t, 0.35, ctrl.MasterVolume())

	ctrl.SetMasterVolume(-2)
	require.Zero(t, ctrl.MasterVolume())
}

func TestNewControllerRejectsBadConfig(t *testing.T) {
	_, err := NewController(context.Background(), nil)
	require.Error(t, err)

	cfg := config.Default()
	cfg.Audio.SampleRate = -1
	_, err = NewController(context.Background(), cfg)
	require.Error(t, err)
}

type countingStrip struct {
	commits int
	off     int
}

func (s *countingStrip) SetZoneColor(int, lighting.Color) {}
func (s *countingStrip) Commit() { s.commits++ }
func (s *countingStrip) AllOff() { s.off++ }

func TestControllerFirstTickLightsAndLaunches(t *testing.T) {
	strip := new(countingStrip)
	ctrl, err := NewController(context.Background(), quickConfig(), WithStrip(strip))
	require.NoError(t, err)

	ctrl.Tick()
	st := ctrl.State()
	require.True(t, st.Busy)
	require.Equal(t, arbiter.SoundMelody, st.Active)
	require.Equal(t, 2, strip.commits)
}

func TestControllerRunStopsOnCancel(t *testing.T) {
	strip := new(countingStrip)
	cfg := quickConfig()
	cfg.TickPeriod = time.Millisecond
	ctrl, err := NewController(context.Background(), cfg, WithStrip(strip))
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	require.NoError(t, ctrl.Run(ctx))
	require.Equal(t, 1, strip.off)
	require.True(t, ctrl.Engine().IsDone())
}

func TestRenderShowPlaysRotation(t *testing.T) {
	cfg := quickConfig()
	show, err := RenderShow(context.Background(), cfg, 16)
	require.NoError(t, err)

	require.Len(t, show.Samples, 16*8000*2)
	require.Positive(t, show.Ticks)
	require.GreaterOrEqual(t, len(show.Launches), 4)
	want := []arbiter.Sound{arbiter.SoundMelody, arbiter.SoundAnnouncement, arbiter.SoundChuff, arbiter.SoundWhistle}
	require.Equal(t, want, show.Launches[:4])
	require.Equal(t, want, show.Completed[:4])

	var energy float64
	for _, s := range show.Samples {
		energy += math.Abs(float64(s))
	}
	require.Positive(t, energy)
}

func TestRenderShowIsDeterministic(t *testing.T) {
	a, err := RenderShow(context.Background(), quickConfig(), 3)
	require.NoError(t, err)
	b, err := RenderShow(context.Background(), quickConfig(), 3)
	require.NoError(t, err)
	require.Equal(t, a.Samples, b.Samples)
	require.Equal(t, a.Launches, b.Launches)
}

func TestRenderShowRejectsBadLength(t *testing.T) {
	_, err := RenderShow(context.Background(), quickConfig(), 0)
	require.Error(t, err)
}

func TestRenderShowHonoursCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := RenderShow(ctx, quickConfig(), 1)
	require.ErrorIs(t, err, context.Canceled)
}

func TestWriteWAV(t *testing.T) {
	samples := []float32{0, 0.5, -0.5, 1}
	var buf bytes.Buffer
	require.NoError(t, WriteWAV(&buf, samples, 8000, 2))

	out := buf.Bytes()
	require.Len(t, out, 44+16)
	require.Equal(t, "RIFF", string(out[0:4]))
	require.Equal(t, "WAVE", string(out[8:12]))
	require.EqualValues(t, 3, binary.LittleEndian.Uint16(out[20:]))
	require.EqualValues(t, 2, binary.LittleEndian.Uint16(out[22:]))
	require.EqualValues(t, 8000, binary.LittleEndian.Uint32(out[24:]))
	require.EqualValues(t, 16, binary.LittleEndian.Uint32(out[40:]))
	require.Equal(t, float32(-0.5), math.Float32frombits(binary.LittleEndian.Uint32(out[52:])))
}
