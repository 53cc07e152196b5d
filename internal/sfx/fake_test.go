package sfx

import (
	"github.com/cbegin/locofx/internal/speech"
	"github.com/cbegin/locofx/internal/synth"
)

type call struct {
	kind     string
	freq     int
	attack   int
	decay    int
	duration int
	partials []synth.Partial
}

type recordingSynth struct {
	calls []call
}

func (s *recordingSynth) RenderTone(frequency int, durationTicks int) {
	s.calls = append(s.calls, call{kind: "tone", freq: frequency, duration: durationTicks})
}

func (s *recordingSynth) RenderNoiseEnvelope(attack, decay, totalDurationTicks int) {
	s.calls = append(s.calls, call{kind: "noise", attack: attack, decay: decay, duration: totalDurationTicks})
}

func (s *recordingSynth) RenderMixedTones(partials []synth.Partial, durationTicks int) {
	s.calls = append(s.calls, call{kind: "mix", partials: partials, duration: durationTicks})
}

type recordingSpeaker struct {
	log []string
}

func (s *recordingSpeaker) EnqueueWord(w speech.Word) { s.log = append(s.log, string(w)) }
func (s *recordingSpeaker) WaitForQueueDrained() { s.log = append(s.log, "<wait>") }
func (s *recordingSpeaker) Reset() { s.log = append(s.log, "<reset>") }
func (s *recordingSpeaker) Hold(ticks int) {
	if ticks > 0 {
		s.log = append(s.log, "<hold>")
	}
}
