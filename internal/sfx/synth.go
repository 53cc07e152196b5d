package sfx

import "github.com/cbegin/locofx/internal/synth"

// Synth is the part of the synthesis engine the machines drive.
type Synth interface {
	RenderTone(frequency int, durationTicks int)
	RenderNoiseEnvelope(attack, decay, totalDurationTicks int)
	RenderMixedTones(partials []synth.Partial, durationTicks int)
}
