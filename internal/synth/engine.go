package synth

import (
	"math"
	"sync"
	"sync/atomic"

	"github.com/cbegin/locofx/internal/effects"
	"github.com/cbegin/locofx/internal/lfo"
)

const twoPi = math.Pi * 2

// DefaultTicksPerSecond makes one duration tick a millisecond.
const DefaultTicksPerSecond = 1000

type Params struct {
	Voices         int
	MasterGain     float64
	TicksPerSecond int
	AttackSec      float64
	DecaySec       float64
	SustainLvl     float64
	ReleaseSec     float64
	PulseDuty      float64
	LPFCutoff      float64 // lowpass filter cutoff in Hz (0 = disabled)
	VibratoDepth   float64 // semitones, tonal voices only
	VibratoRateHz  float64
}

func DefaultParams() Params {
	return Params{
		Voices:         8,
		MasterGain:     0.3,
		TicksPerSecond: DefaultTicksPerSecond,
		AttackSec:      0.004,
		DecaySec:       0.08,
		SustainLvl:     0.7,
		ReleaseSec:     0.06,
		PulseDuty:      0.25,
		LPFCutoff:      9000,
	}
}

// Wave selects the oscillator used by a partial.
type Wave int

const (
	WavePulse Wave = iota
	WaveTriangle
	WaveNoise
)

// Partial is one weighted component of a mixed tone.
type Partial struct {
	Frequency int
	Weight    float64
	Wave      Wave
}

type envState int

const (
	envAttack envState = iota
	envDecay
	envSustain
	envRelease
	envOff
)

type voice struct {
	active    bool
	age       int
	wave      Wave
	freq      float64
	phase     float64
	weight    float64
	env       float64
	envState  envState
	gated     bool
	burst     bool // attack/decay only, ignores the gate
	attackFr  int
	decayFr   int
	frame     int
	noiseLFSR uint16
}

// Engine renders one sound command at a time. Each Render call replaces the
// previous command: gated voices are released and the duration counter is reset.
// Process is called from the audio thread; everything else from the controller.
type Engine struct {
	mu         sync.Mutex
	sampleRate float64
	params     Params
	voices     []voice
	remaining  int
	masterGain uint64
	dcPrevInL  float64
	dcPrevOutL float64
	dcPrevInR  float64
	dcPrevOutR float64
	lpfL       float64
	lpfR       float64
	lpfAlpha   float64
	vibrato    lfo.LFO
	bus        effects.Effector
}

func New(sampleRate int, params Params) *Engine {
	if params.Voices <= 0 {
		params.Voices = 8
	}
	if params.TicksPerSecond <= 0 {
		params.TicksPerSecond = DefaultTicksPerSecond
	}
	e := &Engine{
		params:     params,
		voices:     make([]voice, params.Voices),
		masterGain: math.Float64bits(params.MasterGain),
	}
	for i := range e.voices {
		e.voices[i].noiseLFSR = uint16(0xACE1 + i*97)
	}
	e.vibrato.Set(params.VibratoDepth, params.VibratoRateHz, lfo.WaveSine)
	e.Configure(sampleRate)
	return e
}

// Configure sets the output sample rate and resets filter state.
func (e *Engine) Configure(sampleRate int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.sampleRate = float64(sampleRate)
	e.lpfAlpha = 0
	e.lpfL, e.lpfR = 0, 0
	e.vibrato.Reset()
	if e.params.LPFCutoff > 0 && e.params.LPFCutoff < float64(sampleRate)/2 {
		rc := 1.0 / (twoPi * e.params.LPFCutoff)
		dt := 1.0 / float64(sampleRate)
		e.lpfAlpha = dt / (rc + dt)
	}
}

func (e *Engine) SampleRate() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return int(e.sampleRate)
}

// FramesForTicks converts a duration in synthesis ticks to audio frames.
func (e *Engine) FramesForTicks(ticks int) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.framesLocked(ticks)
}

func (e *Engine) framesLocked(ticks int) int {
	if ticks <= 0 {
		return 0
	}
	return int(int64(ticks) * int64(e.sampleRate) / int64(e.params.TicksPerSecond))
}

// RenderTone plays a pulse tone for the given duration. Frequency 0 is a rest.
func (e *Engine) RenderTone(frequency int, durationTicks int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.releaseGatedLocked()
	if frequency > 0 {
		e.startLocked(voice{wave: WavePulse, freq: float64(frequency), weight: 1, gated: true})
	}
	e.holdLocked(durationTicks)
}

// RenderNoiseEnvelope plays a noise burst that rises over attack ticks and
// falls over decay ticks. The command lasts totalDurationTicks.
func (e *Engine) RenderNoiseEnvelope(attack, decay, totalDurationTicks int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.releaseGatedLocked()
	e.startLocked(voice{
		wave:     WaveNoise,
		freq:     e.sampleRate / 4,
		weight:   1,
		burst:    true,
		attackFr: e.framesLocked(attack),
		decayFr:  e.framesLocked(decay),
	})
	e.holdLocked(totalDurationTicks)
}

// RenderMixedTones plays all partials together, summed by weight.
func (e *Engine) RenderMixedTones(partials []Partial, durationTicks int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.releaseGatedLocked()
	for _, p := range partials {
		if p.Weight <= 0 {
			continue
		}
		freq := float64(p.Frequency)
		if p.Wave == WaveNoise && freq <= 0 {
			freq = e.sampleRate / 4
		}
		if freq <= 0 {
			continue
		}
		e.startLocked(voice{wave: p.Wave, freq: freq, weight: p.Weight, gated: true})
	}
	e.holdLocked(durationTicks)
}

// IsDone reports whether the current command's duration has elapsed.
// Release tails may still be sounding.
func (e *Engine) IsDone() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.remaining <= 0
}

// Stop silences every voice and clears effect tails immediately.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i := range e.voices {
		e.voices[i].active = false
		e.voices[i].env = 0
		e.voices[i].envState = envOff
	}
	e.remaining = 0
	e.dcPrevInL, e.dcPrevOutL, e.dcPrevInR, e.dcPrevOutR = 0, 0, 0, 0
	e.lpfL, e.lpfR = 0, 0
	if e.bus != nil {
		e.bus.Reset()
	}
}

func (e *Engine) startLocked(v voice) {
	slot := e.stealVoice()
	lfsr := e.voices[slot].noiseLFSR
	if lfsr == 0 {
		lfsr = 0xACE1
	}
	v.active = true
	v.noiseLFSR = lfsr
	v.envState = envAttack
	e.voices[slot] = v
}

// holdLocked starts the duration counter. A zero duration releases at once so
// the command is done on the very next IsDone check.
func (e *Engine) holdLocked(ticks int) {
	e.remaining = e.framesLocked(ticks)
	if e.remaining == 0 {
		e.releaseGatedLocked()
	}
}

func (e *Engine) releaseGatedLocked() {
	for i := range e.voices {
		v := &e.voices[i]
		if v.active && v.gated && v.envState != envRelease {
			v.envState = envRelease
		}
	}
}

// Process fills dst with interleaved stereo frames and advances the duration counter.
func (e *Engine) Process(dst []float32) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i := 0; i+1 < len(dst); i += 2 {
		dst[i], dst[i+1] = e.renderFrameLocked()
		if e.remaining > 0 {
			e.remaining--
			if e.remaining == 0 {
				e.releaseGatedLocked()
			}
		}
	}
}

// ActiveVoiceCount returns the number of voices still sounding, release tails included.
func (e *Engine) ActiveVoiceCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	n := 0
	for i := range e.voices {
		if e.voices[i].active {
			n++
		}
	}
	return n
}

func (e *Engine) renderFrameLocked() (float32, float32) {
	ratio := e.vibrato.Ratio(e.sampleRate)
	var sum float64
	for i := range e.voices {
		v := &e.voices[i]
		if !v.active {
			continue
		}
		v.age++
		env := e.advanceEnv(v)
		if !v.active {
			continue
		}
		sum += e.renderWave(v, ratio) * env * v.weight
	}
	sum *= e.masterGainValue()
	// Mono source, identical channels.
	l := e.dcBlockL(sum)
	r := e.dcBlockR(sum)
	if e.lpfAlpha > 0 {
		e.lpfL += e.lpfAlpha * (l - e.lpfL)
		e.lpfR += e.lpfAlpha * (r - e.lpfR)
		l, r = e.lpfL, e.lpfR
	}
	outL, outR := float32(clamp(l, -1, 1)), float32(clamp(r, -1, 1))
	if e.bus != nil {
		outL, outR = e.bus.Process(outL, outR)
		outL, outR = float32(clamp(float64(outL), -1, 1)), float32(clamp(float64(outR), -1, 1))
	}
	return outL, outR
}

func (e *Engine) dcBlockL(x float64) float64 {
	const r = 0.995
	y := x - e.dcPrevInL + r*e.dcPrevOutL
	e.dcPrevInL = x
	e.dcPrevOutL = y
	return y
}

func (e *Engine) dcBlockR(x float64) float64 {
	const r = 0.995
	y := x - e.dcPrevInR + r*e.dcPrevOutR
	e.dcPrevInR = x
	e.dcPrevOutR = y
	return y
}

// polyBLEP reduces aliasing at waveform discontinuities.
// t is the phase position [0,1), dt is the phase increment per sample.
func polyBLEP(t, dt float64) float64 {
	if t < dt {
		t /= dt
		return t + t - t*t - 1
	}
	if t > 1-dt {
		t = (t - 1) / dt
		return t*t + t + t + 1
	}
	return 0
}

// renderWave advances v by one frame. ratio bends the pitch of tonal voices.
func (e *Engine) renderWave(v *voice, ratio float64) float64 {
	freq := v.freq
	if v.wave != WaveNoise {
		freq *= ratio
	}
	dt := freq / e.sampleRate
	v.phase += dt
	if v.phase >= 1 {
		v.phase -= 1
	}
	switch v.wave {
	case WavePulse:
		out := -1.0
		if v.phase < e.params.PulseDuty {
			out = 1
		}
		out += polyBLEP(v.phase, dt)
		out -= polyBLEP(math.Mod(v.phase-e.params.PulseDuty+1, 1), dt)
		return out
	case WaveTriangle:
		return 2*math.Abs(2*v.phase-1) - 1
	case WaveNoise:
		if v.phase < dt {
			bit := (v.noiseLFSR ^ (v.noiseLFSR >> 1)) & 1
			v.noiseLFSR = (v.noiseLFSR >> 1) | (bit << 15)
		}
		if v.noiseLFSR&1 == 1 {
			return 1
		}
		return -1
	default:
		return 0
	}
}

func (e *Engine) stealVoice() int {
	for i := range e.voices {
		if !e.voices[i].active {
			return i
		}
	}
	// Steal the oldest releasing voice, or failing that the oldest active voice.
	oldestRelease := -1
	oldestReleaseAge := -1
	oldestActive := 0
	oldestActiveAge := -1
	for i := range e.voices {
		v := &e.voices[i]
		if v.envState == envRelease && v.age > oldestReleaseAge {
			oldestRelease = i
			oldestReleaseAge = v.age
		}
		if v.age > oldestActiveAge {
			oldestActive = i
			oldestActiveAge = v.age
		}
	}
	if oldestRelease >= 0 {
		return oldestRelease
	}
	return oldestActive
}

func (e *Engine) advanceEnv(v *voice) float64 {
	if v.burst {
		return e.advanceBurst(v)
	}
	switch v.envState {
	case envAttack:
		v.env += e.rate(1, e.params.AttackSec)
		if v.env >= 1 {
			v.env = 1
			v.envState = envDecay
		}
	case envDecay:
		v.env -= e.rate(1-e.params.SustainLvl, e.params.DecaySec)
		if v.env <= e.params.SustainLvl {
			v.env = e.params.SustainLvl
			v.envState = envSustain
		}
	case envSustain:
	case envRelease:
		v.env -= e.rate(e.params.SustainLvl, e.params.ReleaseSec)
		if v.env <= 0.0001 {
			v.env = 0
			v.envState = envOff
			v.active = false
		}
	case envOff:
		v.active = false
		v.env = 0
	}
	return v.env
}

// advanceBurst runs a linear attack/decay envelope measured in frames.
func (e *Engine) advanceBurst(v *voice) float64 {
	switch {
	case v.frame < v.attackFr:
		v.env = float64(v.frame+1) / float64(v.attackFr)
	case v.frame < v.attackFr+v.decayFr:
		v.env = 1 - float64(v.frame-v.attackFr+1)/float64(v.decayFr)
	default:
		v.env = 0
		v.envState = envOff
		v.active = false
	}
	v.frame++
	return v.env
}

func (e *Engine) rate(span, seconds float64) float64 {
	step := span / (seconds * e.sampleRate)
	if step <= 0 || math.IsInf(step, 0) || math.IsNaN(step) {
		return 1
	}
	return step
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func (e *Engine) SetMasterGain(gain float64) {
	if gain < 0 {
		gain = 0
	}
	atomic.StoreUint64(&e.masterGain, math.Float64bits(gain))
}

func (e *Engine) masterGainValue() float64 {
	return math.Float64frombits(atomic.LoadUint64(&e.masterGain))
}

// SetBus installs the output effect chain. Passing nil removes it.
func (e *Engine) SetBus(bus effects.Effector) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.bus = bus
}
