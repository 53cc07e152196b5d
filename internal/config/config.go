package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds every tunable of the controller.
type Config struct {
	// TickPeriod is the pause between scheduler ticks in live mode.
	TickPeriod time.Duration `yaml:"tick_period"`
	// IdleThreshold is the number of idle ticks between sound launches.
	IdleThreshold int `yaml:"idle_threshold"`
	// CounterCeiling is where the tick counter wraps.
	CounterCeiling int `yaml:"counter_ceiling"`
	// MelodyAPlays is how many melody launches use tune A before one B.
	MelodyAPlays int `yaml:"melody_a_plays"`
	// Seed drives the lighting randomness; 0 picks a time-based seed.
	Seed uint64 `yaml:"seed"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	Audio     Audio     `yaml:"audio"`
	Lighting  Lighting  `yaml:"lighting"`
	Melody    Melody    `yaml:"melody"`
	Chuff     Chuff     `yaml:"chuff"`
	Whistle   Whistle   `yaml:"whistle"`
	Announcer Announcer `yaml:"announcer"`
}

type Audio struct {
	Backend        string  `yaml:"backend"`
	SampleRate     int     `yaml:"sample_rate"`
	TicksPerSecond int     `yaml:"ticks_per_second"`
	Volume         float64 `yaml:"volume"`
	Vibrato        Vibrato `yaml:"vibrato"`
	Reverb         Reverb  `yaml:"reverb"`
	Echo           Echo    `yaml:"echo"`
}

// Vibrato bends tonal voices by Depth semitones at RateHz.
type Vibrato struct {
	Depth  float64 `yaml:"depth"`
	RateHz float64 `yaml:"rate_hz"`
}

// Reverb is the room sound on the output. Wet 0 disables it.
type Reverb struct {
	Room     float32 `yaml:"room"`
	Feedback float32 `yaml:"feedback"`
	Wet      float32 `yaml:"wet"`
}

// Echo is a feedback delay on the output. Wet 0 disables it.
type Echo struct {
	DelayMs  float64 `yaml:"delay_ms"`
	Feedback float32 `yaml:"feedback"`
	Cross    float32 `yaml:"cross"`
	Wet      float32 `yaml:"wet"`
}

type Lighting struct {
	MaxDarkTicks int `yaml:"max_dark_ticks"`
	FlashOdds    int `yaml:"flash_odds"`
}

type Melody struct {
	BaseUnit int `yaml:"base_unit"`
}

type Chuff struct {
	Count        int `yaml:"count"`
	PulseTicks   int `yaml:"pulse_ticks"`
	Attack       int `yaml:"attack"`
	Decay        int `yaml:"decay"`
	InitialDelay int `yaml:"initial_delay"`
	DelayStep    int `yaml:"delay_step"`
	MinDelay     int `yaml:"min_delay"`
}

type Whistle struct {
	InitialFreq   int     `yaml:"initial_freq"`
	InitialTicks  int     `yaml:"initial_ticks"`
	Chord         [3]int  `yaml:"chord,flow"`
	ChordWeight   float64 `yaml:"chord_weight"`
	NoiseWeight   float64 `yaml:"noise_weight"`
	CombinedTicks int     `yaml:"combined_ticks"`
}

type Announcer struct {
	PauseTicks int `yaml:"pause_ticks"`
	TailTicks  int `yaml:"tail_ticks"`
}

const (
	// DefaultConfigFilename is used when no path is given.
	DefaultConfigFilename = "locofx.yaml"

	// DefaultFilePermissions is the permission for saved config files.
	DefaultFilePermissions = 0o644
)

var (
	errConfigIsNotSet    = errors.New("configuration is not set")
	errBadSampleRate     = errors.New("audio.sample_rate must be positive")
	errBadTicksPerSecond = errors.New("audio.ticks_per_second must be positive")
	errBadBackend        = errors.New("audio.backend must be ebiten or oto")
	errBadChuffCount     = errors.New("chuff.count must be positive")
	errBadChuffDelays    = errors.New("chuff.min_delay must not exceed chuff.initial_delay")
	errBadMelodyBaseUnit = errors.New("melody.base_unit must be positive")
	errNegativeDuration  = errors.New("durations must not be negative")
	errBadCounterCeiling = errors.New("counter_ceiling must exceed idle_threshold")
	errBadEffectMix      = errors.New("audio effect feedback and wet must be within 0..1")
)

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		TickPeriod:     20 * time.Millisecond,
		IdleThreshold:  400,
		CounterCeiling: 1 << 16,
		MelodyAPlays:   1,
		LogLevel:       "info",
		Audio: Audio{
			Backend:        "ebiten",
			SampleRate:     44100,
			TicksPerSecond: 1000,
			Volume:         1,
			Vibrato:        Vibrato{Depth: 0.12, RateHz: 5.5},
			Reverb:         Reverb{Room: 0.4, Feedback: 0.6, Wet: 0.15},
			Echo:           Echo{DelayMs: 180, Feedback: 0.3, Cross: 0.4, Wet: 0.12},
		},
		Lighting: Lighting{MaxDarkTicks: 4, FlashOdds: 40},
		Melody:   Melody{BaseUnit: 2000},
		Chuff: Chuff{
			Count:        24,
			PulseTicks:   90,
			Attack:       6,
			Decay:        80,
			InitialDelay: 1100,
			DelayStep:    150,
			MinDelay:     50,
		},
		Whistle: Whistle{
			InitialFreq:   880,
			InitialTicks:  350,
			Chord:         [3]int{587, 740, 880},
			ChordWeight:   0.3,
			NoiseWeight:   0.06,
			CombinedTicks: 1600,
		},
		Announcer: Announcer{PauseTicks: 400, TailTicks: 150},
	}
}

// Load reads the YAML file at path over the defaults and validates the result.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(contents, cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save validates cfg and writes it to path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate rejects settings the controller cannot run with and fills soft
// defaults for the rest.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if cfg.TickPeriod <= 0 {
		cfg.TickPeriod = Default().TickPeriod
	}

	if cfg.IdleThreshold < 1 {
		cfg.IdleThreshold = 1
	}

	if cfg.CounterCeiling <= cfg.IdleThreshold {
		return errBadCounterCeiling
	}

	if cfg.MelodyAPlays < 0 {
		cfg.MelodyAPlays = 0
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	switch cfg.Audio.Backend {
	case "":
		cfg.Audio.Backend = "ebiten"
	case "ebiten", "oto":
	default:
		return fmt.Errorf("%w: got %q", errBadBackend, cfg.Audio.Backend)
	}

	if cfg.Audio.SampleRate <= 0 {
		return errBadSampleRate
	}

	if cfg.Audio.TicksPerSecond <= 0 {
		return errBadTicksPerSecond
	}

	if cfg.Audio.Volume < 0 {
		cfg.Audio.Volume = 0
	}

	for _, v := range []float32{
		cfg.Audio.Reverb.Feedback, cfg.Audio.Reverb.Wet, cfg.Audio.Reverb.Room,
		cfg.Audio.Echo.Feedback, cfg.Audio.Echo.Wet, cfg.Audio.Echo.Cross,
	} {
		if v < 0 || v > 1 {
			return errBadEffectMix
		}
	}

	if cfg.Audio.Echo.DelayMs < 0 || cfg.Audio.Vibrato.RateHz < 0 {
		return errNegativeDuration
	}

	if cfg.Melody.BaseUnit <= 0 {
		return errBadMelodyBaseUnit
	}

	if cfg.Chuff.Count <= 0 {
		return errBadChuffCount
	}

	if cfg.Chuff.MinDelay > cfg.Chuff.InitialDelay {
		return errBadChuffDelays
	}

	for _, d := range []int{
		cfg.Chuff.PulseTicks, cfg.Chuff.Attack, cfg.Chuff.Decay, cfg.Chuff.MinDelay, cfg.Chuff.DelayStep,
		cfg.Whistle.InitialTicks, cfg.Whistle.CombinedTicks,
		cfg.Announcer.PauseTicks, cfg.Announcer.TailTicks,
		cfg.Lighting.MaxDarkTicks, cfg.Lighting.FlashOdds,
	} {
		if d < 0 {
			return errNegativeDuration
		}
	}

	return nil
}
