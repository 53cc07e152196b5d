package sfx

import "github.com/cbegin/locofx/internal/synth"

// Stage is a step of the whistle sequence.
type Stage int

const (
	StageInitial Stage = iota
	StageCombined
	StageFade
	StageSilent
)

func (s Stage) String() string {
	switch s {
	case StageInitial:
		return "initial"
	case StageCombined:
		return "combined"
	case StageFade:
		return "fade"
	case StageSilent:
		return "silent"
	default:
		return "unknown"
	}
}

type WhistleParams struct {
	InitialFreq   int
	InitialTicks  int
	Chord         [3]int
	ChordWeight   float64
	NoiseWeight   float64
	CombinedTicks int
}

func DefaultWhistleParams() WhistleParams {
	return WhistleParams{
		InitialFreq:   880,
		InitialTicks:  350,
		Chord:         [3]int{587, 740, 880},
		ChordWeight:   0.3,
		NoiseWeight:   0.06,
		CombinedTicks: 1600,
	}
}

// Whistle runs initial, combined, fade and silent once each, in that order.
// Fade and silent carry zero duration: they only release the chord and
// settle to silence, finishing on the next check.
type Whistle struct {
	synth  Synth
	params WhistleParams
	stage  Stage
	active bool
}

func NewWhistle(s Synth, params WhistleParams) *Whistle {
	return &Whistle{synth: s, params: params}
}

func (w *Whistle) Launch() {
	w.stage = StageInitial
	w.active = true
}

func (w *Whistle) Step() bool {
	if !w.active {
		return true
	}
	switch w.stage {
	case StageInitial:
		w.synth.RenderTone(w.params.InitialFreq, w.params.InitialTicks)
		w.stage = StageCombined
	case StageCombined:
		w.synth.RenderMixedTones(w.chord(), w.params.CombinedTicks)
		w.stage = StageFade
	case StageFade:
		w.synth.RenderMixedTones(nil, 0)
		w.stage = StageSilent
	case StageSilent:
		w.synth.RenderTone(0, 0)
		w.stage = StageInitial
		w.active = false
	}
	return !w.active
}

func (w *Whistle) chord() []synth.Partial {
	parts := make([]synth.Partial, 0, len(w.params.Chord)+1)
	for _, f := range w.params.Chord {
		parts = append(parts, synth.Partial{Frequency: f, Weight: w.params.ChordWeight, Wave: synth.WavePulse})
	}
	return append(parts, synth.Partial{Weight: w.params.NoiseWeight, Wave: synth.WaveNoise})
}

func (w *Whistle) Active() bool { return w.active }

// Stage is the stage the next Step will play.
func (w *Whistle) Stage() Stage { return w.stage }
