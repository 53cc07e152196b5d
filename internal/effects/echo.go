package effects

// Echo is a stereo feedback delay. The cross term bounces repeats between
// channels.
type Echo struct {
	bufL, bufR []float32
	pos        int
	feedback   float32
	cross      float32
	wet        float32
}

// NewEcho caps feedback at 0.95 to keep the loop stable.
func NewEcho(sampleRate int, delayMs float64, feedback, cross, wet float32) *Echo {
	samples := max(int(delayMs*float64(sampleRate)/1000.0), 1)
	return &Echo{
		bufL:     make([]float32, samples),
		bufR:     make([]float32, samples),
		feedback: clamp(feedback, 0, 0.95),
		cross:    clamp(cross, 0, 1),
		wet:      clamp(wet, 0, 1),
	}
}

func (d *Echo) Process(l, r float32) (float32, float32) {
	delL := d.bufL[d.pos]
	delR := d.bufR[d.pos]
	fbL := delL*d.feedback*(1-d.cross) + delR*d.feedback*d.cross
	fbR := delR*d.feedback*(1-d.cross) + delL*d.feedback*d.cross
	d.bufL[d.pos] = l + fbL
	d.bufR[d.pos] = r + fbR
	d.pos++
	if d.pos >= len(d.bufL) {
		d.pos = 0
	}
	return l*(1-d.wet) + delL*d.wet, r*(1-d.wet) + delR*d.wet
}

func (d *Echo) Reset() {
	clear(d.bufL)
	clear(d.bufR)
	d.pos = 0
}
