package effects

// Reverb is a Schroeder reverb: four parallel combs into two allpasses.
type Reverb struct {
	combs   [4]delayLine
	allpass [2]delayLine
	wet     float32
}

type delayLine struct {
	buf []float32
	pos int
	fb  float32
}

// NewReverb takes room in 0..1, which scales the delay lengths, and feedback
// in 0..0.95, which sets the decay.
func NewReverb(sampleRate int, room, feedback, wet float32) *Reverb {
	base := max(int(float32(sampleRate)*room*0.05), 10)
	fb := clamp(feedback, 0, 0.95)
	r := &Reverb{wet: clamp(wet, 0, 1)}
	combLens := [4]int{base, base * 1117 / 1000, base * 1271 / 1000, base * 1437 / 1000}
	for i := range r.combs {
		r.combs[i] = delayLine{buf: make([]float32, combLens[i]), fb: fb}
	}
	apLens := [2]int{base * 347 / 1000, base * 213 / 1000}
	for i := range r.allpass {
		r.allpass[i] = delayLine{buf: make([]float32, max(apLens[i], 1)), fb: 0.5}
	}
	return r
}

func (r *Reverb) Process(l, r2 float32) (float32, float32) {
	mono := (l + r2) * 0.5
	var out float32
	for i := range r.combs {
		out += r.combs[i].comb(mono)
	}
	out *= 0.25
	for i := range r.allpass {
		out = r.allpass[i].allpass(out)
	}
	return l*(1-r.wet) + out*r.wet, r2*(1-r.wet) + out*r.wet
}

func (r *Reverb) Reset() {
	for i := range r.combs {
		r.combs[i].reset()
	}
	for i := range r.allpass {
		r.allpass[i].reset()
	}
}

func (d *delayLine) comb(in float32) float32 {
	out := d.buf[d.pos]
	d.buf[d.pos] = in + out*d.fb
	d.advance()
	return out
}

func (d *delayLine) allpass(in float32) float32 {
	bufOut := d.buf[d.pos]
	out := -in + bufOut
	d.buf[d.pos] = in + bufOut*d.fb
	d.advance()
	return out
}

func (d *delayLine) advance() {
	d.pos++
	if d.pos >= len(d.buf) {
		d.pos = 0
	}
}

func (d *delayLine) reset() {
	clear(d.buf)
	d.pos = 0
}
