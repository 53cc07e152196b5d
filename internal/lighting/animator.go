package lighting

import "math/rand/v2"

// ZoneCount is the number of independently addressed lights.
const ZoneCount = 3

const (
	ZoneEngine = iota
	ZoneCabin
	ZoneStove
)

type Color struct {
	R, G, B uint8
}

var Black = Color{}

// Strip is the LED driver. Writes are buffered until Commit.
type Strip interface {
	SetZoneColor(zone int, c Color)
	Commit()
	AllOff()
}

// Frame describes what one AdvanceFrame call did.
type Frame struct {
	Zone int
	// DarkTicks is how long the zone should read as dark before Color shows.
	DarkTicks int
	Color     Color
	// Flash is set when the stove override picked a saturated colour.
	Flash bool
}

type Params struct {
	MaxDarkTicks int
	// FlashOdds gives the stove a 1-in-FlashOdds chance of a saturated flash.
	FlashOdds int
}

func DefaultParams() Params {
	return Params{MaxDarkTicks: 4, FlashOdds: 40}
}

// Animator flickers the three zones, one zone per frame.
type Animator struct {
	strip  Strip
	rng    *rand.Rand
	params Params
	zones  [ZoneCount]Color
	frames uint64
}

func NewAnimator(strip Strip, rng *rand.Rand, params Params) *Animator {
	if params.MaxDarkTicks < 1 {
		params.MaxDarkTicks = 1
	}
	if params.FlashOdds < 1 {
		params.FlashOdds = 1
	}
	return &Animator{strip: strip, rng: rng, params: params}
}

// AdvanceFrame picks one zone, blanks it and gives it a new colour from that
// zone's palette. The other zones are left untouched.
func (a *Animator) AdvanceFrame() Frame {
	zone := a.rng.IntN(ZoneCount)
	f := Frame{Zone: zone, DarkTicks: 1 + a.rng.IntN(a.params.MaxDarkTicks)}
	f.Color, f.Flash = a.sample(zone)

	a.strip.SetZoneColor(zone, Black)
	a.strip.Commit()
	a.zones[zone] = f.Color
	a.strip.SetZoneColor(zone, f.Color)
	a.strip.Commit()
	a.frames++
	return f
}

// Zones returns the colour currently shown by each zone.
func (a *Animator) Zones() [ZoneCount]Color {
	return a.zones
}

func (a *Animator) Frames() uint64 {
	return a.frames
}

func (a *Animator) sample(zone int) (Color, bool) {
	switch zone {
	case ZoneEngine:
		return engineLight(a.rng), false
	case ZoneCabin:
		return cabinLight(a.rng), false
	default:
		if a.rng.IntN(a.params.FlashOdds) == 0 {
			return flashColor(a.rng), true
		}
		return stoveLight(a.rng), false
	}
}
