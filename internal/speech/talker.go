package speech

import (
	"sync"

	"github.com/cbegin/locofx/internal/synth"
)

// Voice is the synthesis surface the talker speaks through.
type Voice interface {
	RenderTone(frequency int, durationTicks int)
	RenderMixedTones(partials []synth.Partial, durationTicks int)
	IsDone() bool
}

// segment is one rendered chunk of a word: a formant pair, a hiss, or a gap.
type segment struct {
	f1, f2 int
	hiss   bool
	ticks  int
}

const (
	vowelTicks    = 110
	hissTicks     = 60
	stopTicks     = 25
	wordGapTicks  = 70
	formantWeight = 0.35
	hissWeight    = 0.25
)

// Formant pairs for the vowel letters.
var formants = map[byte][2]int{
	'a': {730, 1090},
	'e': {530, 1840},
	'i': {270, 2290},
	'o': {570, 840},
	'u': {300, 870},
	'y': {270, 2290},
}

// Talker queues words and voices them through a Voice. Playback only happens
// inside WaitForQueueDrained and Hold, which block until the audio is out.
type Talker struct {
	mu    sync.Mutex
	voice Voice
	clock synth.Clock
	queue []Word
}

func NewTalker(v Voice, clock synth.Clock) *Talker {
	return &Talker{voice: v, clock: clock}
}

// EnqueueWord appends w to the queue. Unknown words are dropped.
func (t *Talker) EnqueueWord(w Word) {
	if !Known(w) {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.queue = append(t.queue, w)
}

// Pending returns the number of queued words.
func (t *Talker) Pending() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.queue)
}

// Reset drops anything still queued.
func (t *Talker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.queue = t.queue[:0]
}

// WaitForQueueDrained speaks every queued word and returns when the last one
// has finished.
func (t *Talker) WaitForQueueDrained() {
	for {
		t.mu.Lock()
		if len(t.queue) == 0 {
			t.mu.Unlock()
			return
		}
		w := t.queue[0]
		t.queue = t.queue[1:]
		t.mu.Unlock()
		for _, seg := range segments(w) {
			t.play(seg)
		}
	}
}

// Hold blocks for ticks of silence.
func (t *Talker) Hold(ticks int) {
	if ticks <= 0 {
		return
	}
	t.play(segment{ticks: ticks})
}

func (t *Talker) play(seg segment) {
	switch {
	case seg.hiss:
		t.voice.RenderMixedTones([]synth.Partial{{Weight: hissWeight, Wave: synth.WaveNoise}}, seg.ticks)
	case seg.f1 > 0:
		t.voice.RenderMixedTones([]synth.Partial{
			{Frequency: seg.f1, Weight: formantWeight, Wave: synth.WaveTriangle},
			{Frequency: seg.f2, Weight: formantWeight / 2, Wave: synth.WaveTriangle},
		}, seg.ticks)
	default:
		t.voice.RenderTone(0, seg.ticks)
	}
	t.clock.Await(t.voice.IsDone)
}

// segments spells a word out as sound: vowels become formant pairs, sibilants
// a hiss, other consonants a short closure. Runs of vowels merge into one
// syllable.
func segments(w Word) []segment {
	var out []segment
	prevVowel := false
	for i := 0; i < len(w); i++ {
		c := w[i]
		if f, ok := formants[c]; ok {
			if prevVowel {
				out[len(out)-1].ticks += vowelTicks / 2
				continue
			}
			out = append(out, segment{f1: f[0], f2: f[1], ticks: vowelTicks})
			prevVowel = true
			continue
		}
		prevVowel = false
		switch c {
		case 's', 'c', 'h', 'f', 'z':
			out = append(out, segment{hiss: true, ticks: hissTicks})
		default:
			out = append(out, segment{ticks: stopTicks})
		}
	}
	return append(out, segment{ticks: wordGapTicks})
}
