package sfx

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestNoteTicks covers plain and dotted duration codes.
func TestNoteTicks(t *testing.T) {
	t.Parallel()

	cases := []struct {
		code int
		want int
	}{
		{1, 2000},
		{2, 1000},
		{4, 500},
		{8, 250},
		{16, 125},
		{-4, 750},
		{-2, 1500},
		{-8, 375},
		{0, 0},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, NoteTicks(2000, tc.code), "code %d", tc.code)
	}
}

// TestMelodyCompletesOnLastStep checks that a table of length L finishes exactly on step L.
func TestMelodyCompletesOnLastStep(t *testing.T) {
	t.Parallel()

	s := new(recordingSynth)
	m := NewMelody(s, DefaultMelodyParams())
	l := m.Len(MelodyA)
	require.Positive(t, l)

	m.Launch(MelodyA)
	require.True(t, m.Active())
	for i := 1; i < l; i++ {
		require.False(t, m.Step(), "finished early at step %d", i)
		require.True(t, m.Active())
	}
	require.True(t, m.Step())
	require.False(t, m.Active())
	require.Len(t, s.calls, l)
}

// TestMelodyPlaysChosenTable verifies pitches and durations follow the table picked at launch.
func TestMelodyPlaysChosenTable(t *testing.T) {
	t.Parallel()

	a := []Note{{440, 4}, {0, 8}}
	b := []Note{{523, -4}, {659, 2}, {784, 1}}
	s := new(recordingSynth)
	m := NewMelody(s, MelodyParams{BaseUnit: 1000, A: a, B: b})

	m.Launch(MelodyB)
	require.Equal(t, MelodyB, m.Choice())
	for !m.Step() {
	}
	require.Equal(t, []call{
		{kind: "tone", freq: 523, duration: 375},
		{kind: "tone", freq: 659, duration: 500},
		{kind: "tone", freq: 784, duration: 1000},
	}, s.calls)

	s.calls = nil
	m.Launch(MelodyA)
	for !m.Step() {
	}
	require.Equal(t, []call{
		{kind: "tone", freq: 440, duration: 250},
		{kind: "tone", freq: 0, duration: 125},
	}, s.calls)
}

// TestMelodyRelaunchRewinds ensures a relaunch starts again from the first note.
func TestMelodyRelaunchRewinds(t *testing.T) {
	t.Parallel()

	m := NewMelody(new(recordingSynth), DefaultMelodyParams())
	m.Launch(MelodyA)
	m.Step()
	m.Step()
	require.Equal(t, 2, m.NoteIndex())

	m.Launch(MelodyA)
	require.Zero(t, m.NoteIndex())
}

// TestMelodyStepWhenIdle reports done without touching the synth.
func TestMelodyStepWhenIdle(t *testing.T) {
	t.Parallel()

	s := new(recordingSynth)
	m := NewMelody(s, DefaultMelodyParams())
	require.True(t, m.Step())
	require.Empty(t, s.calls)
}
