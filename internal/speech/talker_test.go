package speech

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cbegin/locofx/internal/synth"
)

// recordingVoice counts render calls and is always done.
type recordingVoice struct {
	tones []int
	mixes int
	ticks int
}

func (v *recordingVoice) RenderTone(frequency int, durationTicks int) {
	v.tones = append(v.tones, frequency)
	v.ticks += durationTicks
}

func (v *recordingVoice) RenderMixedTones(_ []synth.Partial, durationTicks int) {
	v.mixes++
	v.ticks += durationTicks
}

func (v *recordingVoice) IsDone() bool { return true }

// countingClock records how often the talker waited.
type countingClock struct{ waits int }

func (c *countingClock) Await(done func() bool) {
	c.waits++
	for !done() {
	}
}

// TestTalkerDrainsQueue verifies every queued word is voiced and the queue empties.
func TestTalkerDrainsQueue(t *testing.T) {
	t.Parallel()

	voice := new(recordingVoice)
	clock := new(countingClock)
	talker := NewTalker(voice, clock)

	talker.EnqueueWord(WordAll)
	talker.EnqueueWord(WordAboard)
	require.Equal(t, 2, talker.Pending())

	talker.WaitForQueueDrained()
	require.Zero(t, talker.Pending())

	want := len(segments(WordAll)) + len(segments(WordAboard))
	require.Equal(t, want, clock.waits)
	require.Positive(t, voice.mixes)
}

// TestTalkerDropsUnknownWords ensures only vocabulary tokens are queued.
func TestTalkerDropsUnknownWords(t *testing.T) {
	t.Parallel()

	talker := NewTalker(new(recordingVoice), new(countingClock))
	talker.EnqueueWord(Word("xyzzy"))
	require.Zero(t, talker.Pending())
}

// TestTalkerResetClearsQueue checks that Reset discards pending words without voicing them.
func TestTalkerResetClearsQueue(t *testing.T) {
	t.Parallel()

	voice := new(recordingVoice)
	talker := NewTalker(voice, new(countingClock))
	talker.EnqueueWord(WordNext)
	talker.EnqueueWord(WordStop)
	talker.Reset()
	talker.WaitForQueueDrained()

	require.Zero(t, talker.Pending())
	require.Zero(t, voice.ticks)
}

// TestTalkerHold verifies Hold renders a rest of the requested length and skips non-positive holds.
func TestTalkerHold(t *testing.T) {
	t.Parallel()

	voice := new(recordingVoice)
	clock := new(countingClock)
	talker := NewTalker(voice, clock)

	talker.Hold(0)
	require.Zero(t, clock.waits)

	talker.Hold(300)
	require.Equal(t, []int{0}, voice.tones)
	require.Equal(t, 300, voice.ticks)
	require.Equal(t, 1, clock.waits)
}

// TestSegmentsMergeVowelRuns checks that "aboard" yields one syllable for "oa".
func TestSegmentsMergeVowelRuns(t *testing.T) {
	t.Parallel()

	segs := segments(WordAboard)
	// a, b, oa, r, d, gap
	require.Len(t, segs, 6)
	require.Equal(t, vowelTicks+vowelTicks/2, segs[2].ticks)
	require.Equal(t, wordGapTicks, segs[len(segs)-1].ticks)
}
