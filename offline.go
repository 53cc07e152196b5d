package locofx

import (
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/cbegin/locofx/internal/arbiter"
	"github.com/cbegin/locofx/internal/config"
	"github.com/cbegin/locofx/internal/sfx"
	"github.com/cbegin/locofx/internal/synth"
)

// awaitChunk is the frame granularity used while speech blocks offline.
const awaitChunk = 64

// Show is the result of an offline render.
type Show struct {
	SampleRate int
	// Samples holds interleaved stereo frames.
	Samples   []float32
	Ticks     int
	Launches  []arbiter.Sound
	Completed []arbiter.Sound
}

// offlineClock produces audio itself instead of waiting for a driver, so the
// blocking announcer still advances time when nothing pulls samples.
type offlineClock struct {
	engine *synth.Engine
	out    []float32
	limit  int
}

func (c *offlineClock) Await(done func() bool) {
	for !done() && len(c.out) < c.limit {
		c.render(awaitChunk)
	}
}

func (c *offlineClock) render(frames int) {
	if room := (c.limit - len(c.out)) / 2; frames > room {
		frames = room
	}
	if frames <= 0 {
		return
	}
	start := len(c.out)
	c.out = append(c.out, make([]float32, frames*2)...)
	c.engine.Process(c.out[start:])
}

type showRecorder struct {
	show *Show
}

func (r showRecorder) Launched(s arbiter.Sound, _ sfx.MelodyChoice) {
	r.show.Launches = append(r.show.Launches, s)
}

func (r showRecorder) Completed(s arbiter.Sound) {
	r.show.Completed = append(r.show.Completed, s)
}

// RenderShow runs the controller for the given number of seconds without an
// audio device. Each tick is followed by TickPeriod worth of audio.
func RenderShow(ctx context.Context, cfg *config.Config, seconds float64, opts ...Option) (*Show, error) {
	if seconds <= 0 {
		return nil, fmt.Errorf("render length must be positive, got %v", seconds)
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	show := &Show{SampleRate: cfg.Audio.SampleRate}
	clock := &offlineClock{limit: int(float64(cfg.Audio.SampleRate)*seconds) * 2}
	opts = append(opts, WithClock(clock), WithObserver(showRecorder{show: show}))
	ctrl, err := NewController(ctx, cfg, opts...)
	if err != nil {
		return nil, err
	}
	clock.engine = ctrl.Engine()

	framesPerTick := int(float64(clock.engine.SampleRate()) * cfg.TickPeriod.Seconds())
	if framesPerTick < 1 {
		framesPerTick = 1
	}
	for len(clock.out) < clock.limit {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		ctrl.Tick()
		show.Ticks++
		clock.render(framesPerTick)
	}
	show.Samples = clock.out
	return show, nil
}

// WriteWAV writes samples as a 32-bit float WAV stream.
func WriteWAV(w io.Writer, samples []float32, sampleRate int, channels int) error {
	dataSize := len(samples) * 4
	header := make([]byte, 44)
	copy(header[0:], "RIFF")
	binary.LittleEndian.PutUint32(header[4:], uint32(36+dataSize))
	copy(header[8:], "WAVE")
	copy(header[12:], "fmt ")
	binary.LittleEndian.PutUint32(header[16:], 16)
	binary.LittleEndian.PutUint16(header[20:], 3) // IEEE float
	binary.LittleEndian.PutUint16(header[22:], uint16(channels))
	binary.LittleEndian.PutUint32(header[24:], uint32(sampleRate))
	binary.LittleEndian.PutUint32(header[28:], uint32(sampleRate*channels*4))
	binary.LittleEndian.PutUint16(header[32:], uint16(channels*4))
	binary.LittleEndian.PutUint16(header[34:], 32)
	copy(header[36:], "data")
	binary.LittleEndian.PutUint32(header[40:], uint32(dataSize))
	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("write wav header: %w", err)
	}
	buf := make([]byte, 4*1024)
	for len(samples) > 0 {
		n := min(len(samples), len(buf)/4)
		for i := 0; i < n; i++ {
			binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(samples[i]))
		}
		if _, err := w.Write(buf[:n*4]); err != nil {
			return fmt.Errorf("write wav data: %w", err)
		}
		samples = samples[n:]
	}
	return nil
}
