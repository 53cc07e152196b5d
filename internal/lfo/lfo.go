// Package lfo provides the slow pitch waver applied to the engine's tonal
// voices, the wobble of a steam whistle under uneven pressure.
package lfo

import "math"

type Wave int

const (
	WaveTriangle Wave = iota
	WaveSine
)

// LFO is a shared low-frequency oscillator advanced once per output frame.
type LFO struct {
	depth  float64 // semitones
	rateHz float64
	wave   Wave
	phase  float64 // [0, 1)
}

// Set configures depth in semitones and rate in Hz. Unknown waves fall back to triangle.
func (l *LFO) Set(depth, rateHz float64, wave Wave) {
	l.depth = depth
	l.rateHz = rateHz
	if wave != WaveSine {
		wave = WaveTriangle
	}
	l.wave = wave
}

// Sample advances one frame and returns a value in [-depth, +depth].
func (l *LFO) Sample(sampleRate float64) float64 {
	if !l.Active() || sampleRate <= 0 {
		return 0
	}
	var v float64
	switch l.wave {
	case WaveSine:
		v = math.Sin(2 * math.Pi * l.phase)
	default:
		if l.phase < 0.5 {
			v = 4.0*l.phase - 1.0
		} else {
			v = 3.0 - 4.0*l.phase
		}
	}
	l.phase += l.rateHz / sampleRate
	for l.phase >= 1.0 {
		l.phase -= 1.0
	}
	return v * l.depth
}

// Ratio advances one frame and returns the frequency multiplier for the
// current pitch offset. It is 1 when the LFO is inactive.
func (l *LFO) Ratio(sampleRate float64) float64 {
	if !l.Active() {
		return 1
	}
	return math.Exp2(l.Sample(sampleRate) / 12)
}

func (l *LFO) Active() bool {
	return l.depth != 0 && l.rateHz != 0
}

// Reset zeros the phase.
func (l *LFO) Reset() {
	l.phase = 0
}
