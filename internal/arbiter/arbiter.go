package arbiter

import (
	"github.com/cbegin/locofx/internal/lighting"
	"github.com/cbegin/locofx/internal/sfx"
)

// Machine is a launched sound effect as seen by the arbitrator.
type Machine interface {
	// Step advances the effect by one command and reports whether it finished.
	Step() bool
	Active() bool
}

// Pacer reports whether the synthesizer has finished its current command.
type Pacer interface {
	IsDone() bool
}

// Lights is the ambient animation.
type Lights interface {
	AdvanceFrame() lighting.Frame
}

// StatusIndicator mirrors the busy flag, typically on an LED or pin.
type StatusIndicator interface {
	Set(on bool)
}

// Observer is told about launches and completions. Calls happen on the
// ticking goroutine and must return quickly.
type Observer interface {
	Launched(s Sound, variant sfx.MelodyChoice)
	Completed(s Sound)
}

// Effects bundles the four sound machines.
type Effects struct {
	Melody    *sfx.Melody
	Announcer *sfx.Announcer
	Chuff     *sfx.Chuff
	Whistle   *sfx.Whistle
}

type Params struct {
	// IdleThreshold is the number of idle ticks between launches.
	IdleThreshold int
	// CounterCeiling bounds TickCounter; it wraps to zero on reaching it.
	CounterCeiling int
	// MelodyAPlays is how many melody launches use variant A before one B.
	MelodyAPlays int
}

func DefaultParams() Params {
	return Params{IdleThreshold: 200, CounterCeiling: 1 << 16, MelodyAPlays: 1}
}

// State is a snapshot of the scheduler.
type State struct {
	Busy        bool
	Active      Sound
	TickCounter int
	IdleTicks   int
	Rotation    int
	Launches    int
}

// Arbitrator owns the busy flag, the rotation and all sub-machine state.
// It is not safe for concurrent use; one goroutine drives Tick.
type Arbitrator struct {
	params   Params
	effects  Effects
	lights   Lights
	pacer    Pacer
	status   StatusIndicator
	observer Observer

	busy        bool
	active      Sound
	current     Machine
	tickCounter int
	idleTicks   int
	rotation    int
	melodyPlays int
	launches    int
	booted      bool
}

type Option func(*Arbitrator)

func WithStatusIndicator(s StatusIndicator) Option {
	return func(a *Arbitrator) {
		a.status = s
	}
}

func WithObserver(o Observer) Option {
	return func(a *Arbitrator) {
		a.observer = o
	}
}

type nopStatus struct{}

func (nopStatus) Set(bool) {}

type nopObserver struct{}

func (nopObserver) Launched(Sound, sfx.MelodyChoice) {}
func (nopObserver) Completed(Sound) {}

func New(params Params, effects Effects, lights Lights, pacer Pacer, opts ...Option) *Arbitrator {
	if params.IdleThreshold < 1 {
		params.IdleThreshold = 1
	}
	if params.CounterCeiling < 1 {
		params.CounterCeiling = DefaultParams().CounterCeiling
	}
	if params.MelodyAPlays < 0 {
		params.MelodyAPlays = 0
	}
	a := &Arbitrator{
		params:   params,
		effects:  effects,
		lights:   lights,
		pacer:    pacer,
		status:   nopStatus{},
		observer: nopObserver{},
		active:   SoundRest,
	}
	for _, opt := range opts {
		opt(a)
	}
	a.status.Set(false)
	return a
}

// Tick performs one unit of work: either one step of the active sound, or
// one lighting frame plus the launch check. It never does both.
func (a *Arbitrator) Tick() {
	if a.busy {
		a.stepActive()
		return
	}
	a.lights.AdvanceFrame()
	a.tickCounter = (a.tickCounter + 1) % a.params.CounterCeiling
	a.idleTicks++
	if !a.booted {
		// First power-up plays a melody at once, ignoring the idle period.
		a.booted = true
		a.launchNext()
		return
	}
	if a.idleTicks >= a.params.IdleThreshold {
		a.launchNext()
	}
}

func (a *Arbitrator) stepActive() {
	if !a.pacer.IsDone() {
		return
	}
	if !a.current.Step() {
		return
	}
	done := a.active
	a.busy = false
	a.current = nil
	a.active = SoundRest
	a.status.Set(false)
	a.observer.Completed(done)
}

// launchNext launches the sound in the current rotation slot and moves the
// rotation on. The rest slot launches nothing but still consumes its turn.
func (a *Arbitrator) launchNext() {
	slot := Sound(a.rotation)
	a.rotation = (a.rotation + 1) % RotationLen
	a.idleTicks = 0

	var m Machine
	variant := sfx.MelodyA
	switch slot {
	case SoundMelody:
		variant = a.nextMelodyVariant()
		a.effects.Melody.Launch(variant)
		m = a.effects.Melody
	case SoundAnnouncement:
		a.effects.Announcer.Launch()
		m = a.effects.Announcer
	case SoundChuff:
		a.effects.Chuff.Launch()
		m = a.effects.Chuff
	case SoundWhistle:
		a.effects.Whistle.Launch()
		m = a.effects.Whistle
	case SoundRest:
		return
	}
	if !m.Active() {
		return
	}
	a.busy = true
	a.current = m
	a.active = slot
	a.launches++
	a.status.Set(true)
	a.observer.Launched(slot, variant)
}

// nextMelodyVariant plays A for MelodyAPlays launches, then B once, repeating.
func (a *Arbitrator) nextMelodyVariant() sfx.MelodyChoice {
	cycle := a.params.MelodyAPlays + 1
	n := a.melodyPlays % cycle
	a.melodyPlays = (a.melodyPlays + 1) % cycle
	if n < a.params.MelodyAPlays {
		return sfx.MelodyA
	}
	return sfx.MelodyB
}

func (a *Arbitrator) Busy() bool {
	return a.busy
}

func (a *Arbitrator) State() State {
	return State{
		Busy:        a.busy,
		Active:      a.active,
		TickCounter: a.tickCounter,
		IdleTicks:   a.idleTicks,
		Rotation:    a.rotation,
		Launches:    a.launches,
	}
}
