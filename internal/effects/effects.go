// Package effects holds the output bus of the sound engine: a small room
// reverb for the engine shed and an echo that trails the whistle.
package effects

// Effector processes one stereo frame.
type Effector interface {
	Process(l, r float32) (float32, float32)
	Reset()
}

// Chain applies effects in order. A nil or empty chain passes audio through.
type Chain struct {
	effects []Effector
}

func NewChain(effects ...Effector) *Chain {
	return &Chain{effects: effects}
}

type ReverbParams struct {
	Room     float32
	Feedback float32
	Wet      float32
}

type EchoParams struct {
	DelayMs  float64
	Feedback float32
	Cross    float32
	Wet      float32
}

// NewBus builds the output chain: reverb first, then echo. A stage with no
// wet signal is left out.
func NewBus(sampleRate int, reverb ReverbParams, echo EchoParams) *Chain {
	c := NewChain()
	if reverb.Wet > 0 {
		c.Add(NewReverb(sampleRate, reverb.Room, reverb.Feedback, reverb.Wet))
	}
	if echo.Wet > 0 && echo.DelayMs > 0 {
		c.Add(NewEcho(sampleRate, echo.DelayMs, echo.Feedback, echo.Cross, echo.Wet))
	}
	return c
}

func (c *Chain) Process(l, r float32) (float32, float32) {
	if c == nil {
		return l, r
	}
	for _, e := range c.effects {
		l, r = e.Process(l, r)
	}
	return l, r
}

func (c *Chain) Reset() {
	if c == nil {
		return
	}
	for _, e := range c.effects {
		e.Reset()
	}
}

func (c *Chain) Add(e Effector) {
	c.effects = append(c.effects, e)
}

// Len is the number of stages in the chain.
func (c *Chain) Len() int {
	if c == nil {
		return 0
	}
	return len(c.effects)
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
