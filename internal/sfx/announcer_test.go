package sfx

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestAnnouncerPlaySequence checks word order, waits and pauses of a full announcement.
func TestAnnouncerPlaySequence(t *testing.T) {
	t.Parallel()

	sp := new(recordingSpeaker)
	a := NewAnnouncer(sp, DefaultAnnouncerParams())
	a.Play()

	require.Equal(t, []string{
		"<reset>", "all", "aboard", "<wait>", "<hold>",
		"next", "stop", "station", "<wait>", "<hold>",
	}, sp.log)
}

// TestAnnouncerStepCompletesInOneCall verifies the blocking step finishes immediately.
func TestAnnouncerStepCompletesInOneCall(t *testing.T) {
	t.Parallel()

	sp := new(recordingSpeaker)
	a := NewAnnouncer(sp, DefaultAnnouncerParams())
	a.Launch()
	require.True(t, a.Active())
	require.True(t, a.Step())
	require.False(t, a.Active())
	require.NotEmpty(t, sp.log)

	sp.log = nil
	require.True(t, a.Step())
	require.Empty(t, sp.log)
}
