package sfx

type ChuffParams struct {
	Count        int
	PulseTicks   int
	Attack       int
	Decay        int
	InitialDelay int
	DelayStep    int
	MinDelay     int
}

func DefaultChuffParams() ChuffParams {
	return ChuffParams{
		Count:        24,
		PulseTicks:   90,
		Attack:       6,
		Decay:        80,
		InitialDelay: 1100,
		DelayStep:    150,
		MinDelay:     50,
	}
}

// Chuff issues a fixed number of noise pulses with a shrinking gap between
// them, so the engine sounds like it is pulling away.
type Chuff struct {
	synth      Synth
	params     ChuffParams
	pulseIndex int
	delay      int
	active     bool
}

func NewChuff(s Synth, params ChuffParams) *Chuff {
	if params.MinDelay < 0 {
		params.MinDelay = 0
	}
	if params.InitialDelay < params.MinDelay {
		params.InitialDelay = params.MinDelay
	}
	if params.DelayStep < 0 {
		params.DelayStep = 0
	}
	return &Chuff{synth: s, params: params, delay: params.InitialDelay}
}

func (c *Chuff) Launch() {
	c.pulseIndex = 0
	c.delay = c.params.InitialDelay
	c.active = c.params.Count > 0
}

// Step issues one pulse and reports true after the last one.
func (c *Chuff) Step() bool {
	if !c.active {
		return true
	}
	c.synth.RenderNoiseEnvelope(c.params.Attack, c.params.Decay, c.params.PulseTicks+c.delay)
	c.delay = max(c.params.MinDelay, c.delay-c.params.DelayStep)
	c.pulseIndex++
	if c.pulseIndex >= c.params.Count {
		c.active = false
	}
	return !c.active
}

func (c *Chuff) Active() bool { return c.active }

// Delay is the rest that will follow the next pulse.
func (c *Chuff) Delay() int { return c.delay }

func (c *Chuff) PulseIndex() int { return c.pulseIndex }
