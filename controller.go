package locofx

import (
	"context"
	"errors"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/cbegin/locofx/internal/arbiter"
	"github.com/cbegin/locofx/internal/config"
	"github.com/cbegin/locofx/internal/effects"
	"github.com/cbegin/locofx/internal/lighting"
	"github.com/cbegin/locofx/internal/logger"
	"github.com/cbegin/locofx/internal/sfx"
	"github.com/cbegin/locofx/internal/speech"
	"github.com/cbegin/locofx/internal/synth"
)

type Option func(*controllerConfig)

type controllerConfig struct {
	strip    lighting.Strip
	status   arbiter.StatusIndicator
	clock    synth.Clock
	rng      *rand.Rand
	observer arbiter.Observer
}

// WithStrip sets the LED driver. Without it lighting writes are discarded.
func WithStrip(s lighting.Strip) Option {
	return func(cfg *controllerConfig) {
		cfg.strip = s
	}
}

func WithStatusIndicator(s arbiter.StatusIndicator) Option {
	return func(cfg *controllerConfig) {
		cfg.status = s
	}
}

// WithClock sets how blocking speech waits for audio. Defaults to polling in real time.
func WithClock(c synth.Clock) Option {
	return func(cfg *controllerConfig) {
		cfg.clock = c
	}
}

// WithRand overrides the lighting random source built from the configured seed.
func WithRand(r *rand.Rand) Option {
	return func(cfg *controllerConfig) {
		cfg.rng = r
	}
}

// WithObserver receives launch and completion events in addition to the log.
func WithObserver(o arbiter.Observer) Option {
	return func(cfg *controllerConfig) {
		cfg.observer = o
	}
}

// Controller wires the arbitrator to the synthesizer, the talker and the
// LED strip. Tick must be called from a single goroutine; the engine's
// Process may run concurrently on the audio thread.
type Controller struct {
	mu       sync.Mutex
	cfg      *config.Config
	engine   *synth.Engine
	talker   *speech.Talker
	animator *lighting.Animator
	arb      *arbiter.Arbitrator
	strip    lighting.Strip
	volume   float64
	baseGain float64
}

type discardStrip struct{}

func (discardStrip) SetZoneColor(int, lighting.Color) {}
func (discardStrip) Commit() {}
func (discardStrip) AllOff() {}

func NewController(ctx context.Context, cfg *config.Config, opts ...Option) (*Controller, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	cc := controllerConfig{strip: discardStrip{}, clock: synth.Realtime{}}
	for _, opt := range opts {
		opt(&cc)
	}
	if cc.rng == nil {
		cc.rng = newRand(cfg.Seed)
	}

	params := synth.DefaultParams()
	params.TicksPerSecond = cfg.Audio.TicksPerSecond
	params.VibratoDepth = cfg.Audio.Vibrato.Depth
	params.VibratoRateHz = cfg.Audio.Vibrato.RateHz
	engine := synth.New(cfg.Audio.SampleRate, params)
	engine.SetMasterGain(params.MasterGain * cfg.Audio.Volume)
	engine.SetBus(effects.NewBus(cfg.Audio.SampleRate,
		effects.ReverbParams(cfg.Audio.Reverb),
		effects.EchoParams(cfg.Audio.Echo),
	))

	talker := speech.NewTalker(engine, cc.clock)
	animator := lighting.NewAnimator(cc.strip, cc.rng, lighting.Params{
		MaxDarkTicks: cfg.Lighting.MaxDarkTicks,
		FlashOdds:    cfg.Lighting.FlashOdds,
	})

	announcerParams := sfx.DefaultAnnouncerParams()
	announcerParams.PauseTicks = cfg.Announcer.PauseTicks
	announcerParams.TailTicks = cfg.Announcer.TailTicks

	machines := arbiter.Effects{
		Melody:    sfx.NewMelody(engine, sfx.MelodyParams{BaseUnit: cfg.Melody.BaseUnit}),
		Announcer: sfx.NewAnnouncer(talker, announcerParams),
		Chuff:     sfx.NewChuff(engine, sfx.ChuffParams(cfg.Chuff)),
		Whistle:   sfx.NewWhistle(engine, sfx.WhistleParams(cfg.Whistle)),
	}

	arbOpts := []arbiter.Option{arbiter.WithObserver(&logObserver{ctx: logger.WithName(ctx, "arbiter"), next: cc.observer})}
	if cc.status != nil {
		arbOpts = append(arbOpts, arbiter.WithStatusIndicator(cc.status))
	}
	arb := arbiter.New(arbiter.Params{
		IdleThreshold:  cfg.IdleThreshold,
		CounterCeiling: cfg.CounterCeiling,
		MelodyAPlays:   cfg.MelodyAPlays,
	}, machines, animator, engine, arbOpts...)

	return &Controller{
		cfg:      cfg,
		engine:   engine,
		talker:   talker,
		animator: animator,
		arb:      arb,
		strip:    cc.strip,
		volume:   cfg.Audio.Volume,
		baseGain: params.MasterGain,
	}, nil
}

func newRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Tick runs one scheduler tick. It blocks only while an announcement is spoken.
func (c *Controller) Tick() {
	c.arb.Tick()
}

// Run ticks every TickPeriod until ctx is done, then silences the engine and
// turns the lights off. A launched announcement is allowed to finish first.
func (c *Controller) Run(ctx context.Context) error {
	ticker := time.NewTicker(c.cfg.TickPeriod)
	defer ticker.Stop()

	logger.InfoKV(ctx, "controller started",
		"tick_period", c.cfg.TickPeriod,
		"idle_threshold", c.cfg.IdleThreshold,
		"sample_rate", c.cfg.Audio.SampleRate,
	)

	for {
		select {
		case <-ctx.Done():
			c.engine.Stop()
			c.strip.AllOff()
			logger.InfoKV(ctx, "controller stopped", "tick_counter", c.arb.State().TickCounter)
			return nil
		case <-ticker.C:
			c.Tick()
		}
	}
}

// Engine is the sample source for audio backends.
func (c *Controller) Engine() *synth.Engine {
	return c.engine
}

func (c *Controller) State() arbiter.State {
	return c.arb.State()
}

// Zones returns the colours the animator last wrote.
func (c *Controller) Zones() [lighting.ZoneCount]lighting.Color {
	return c.animator.Zones()
}

// SetMasterVolume sets runtime volume scalar. 1.0 is default.
func (c *Controller) SetMasterVolume(volume float64) {
	if volume < 0 {
		volume = 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.volume = volume
	c.engine.SetMasterGain(c.baseGain * c.volume)
}

func (c *Controller) MasterVolume() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.volume
}

// logObserver logs arbitrator events and forwards them.
type logObserver struct {
	ctx  context.Context
	next arbiter.Observer
}

func (o *logObserver) Launched(s arbiter.Sound, variant sfx.MelodyChoice) {
	if s == arbiter.SoundMelody {
		logger.DebugKV(o.ctx, "sound launched", "sound", s.String(), "variant", variant.String())
	} else {
		logger.DebugKV(o.ctx, "sound launched", "sound", s.String())
	}
	if o.next != nil {
		o.next.Launched(s, variant)
	}
}

func (o *logObserver) Completed(s arbiter.Sound) {
	logger.DebugKV(o.ctx, "sound completed", "sound", s.String())
	if o.next != nil {
		o.next.Completed(s)
	}
}
