package sfx

import "github.com/cbegin/locofx/internal/speech"

// Speaker is the speech engine surface the announcer needs.
type Speaker interface {
	EnqueueWord(w speech.Word)
	WaitForQueueDrained()
	Reset()
	Hold(ticks int)
}

type AnnouncerParams struct {
	First      []speech.Word
	Second     []speech.Word
	PauseTicks int
	TailTicks  int
}

func DefaultAnnouncerParams() AnnouncerParams {
	return AnnouncerParams{
		First:      []speech.Word{speech.WordAll, speech.WordAboard},
		Second:     []speech.Word{speech.WordNext, speech.WordStop, speech.WordStation},
		PauseTicks: 400,
		TailTicks:  150,
	}
}

// Announcer speaks a fixed two-phrase announcement. Unlike the other
// machines it blocks its caller for the whole announcement.
type Announcer struct {
	speaker Speaker
	params  AnnouncerParams
	active  bool
}

func NewAnnouncer(s Speaker, params AnnouncerParams) *Announcer {
	return &Announcer{speaker: s, params: params}
}

// Launch arms the announcer; the next Step speaks it.
func (a *Announcer) Launch() {
	a.active = true
}

// Step plays the announcement and always reports completion.
func (a *Announcer) Step() bool {
	if a.active {
		a.Play()
		a.active = false
	}
	return true
}

func (a *Announcer) Active() bool { return a.active }

// Play blocks until both phrases and the trailing pause have been voiced.
func (a *Announcer) Play() {
	a.speaker.Reset()
	for _, w := range a.params.First {
		a.speaker.EnqueueWord(w)
	}
	a.speaker.WaitForQueueDrained()
	a.speaker.Hold(a.params.PauseTicks)
	for _, w := range a.params.Second {
		a.speaker.EnqueueWord(w)
	}
	a.speaker.WaitForQueueDrained()
	a.speaker.Hold(a.params.TailTicks)
}
