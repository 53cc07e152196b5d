package synth

import "time"

// Clock lets a blocking caller wait for audio to be produced.
// Live output is pulled by the audio driver, so waiting means polling;
// offline rendering has to produce the frames itself.
type Clock interface {
	Await(done func() bool)
}

// Realtime polls done until it reports true.
type Realtime struct {
	Poll time.Duration
}

func (c Realtime) Await(done func() bool) {
	poll := c.Poll
	if poll <= 0 {
		poll = time.Millisecond
	}
	for !done() {
		time.Sleep(poll)
	}
}
