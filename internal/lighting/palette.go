package lighting

import "math/rand/v2"

// between returns a uniform value in [lo, hi].
func between(rng *rand.Rand, lo, hi int) uint8 {
	return uint8(lo + rng.IntN(hi-lo+1))
}

// engineLight is a warm white leaning yellow.
func engineLight(rng *rand.Rand) Color {
	return Color{R: between(rng, 220, 255), G: between(rng, 170, 220), B: between(rng, 40, 100)}
}

// cabinLight is an oil-lamp yellow.
func cabinLight(rng *rand.Rand) Color {
	return Color{R: between(rng, 180, 255), G: between(rng, 110, 170), B: between(rng, 0, 20)}
}

// stoveLight is firebox red with a little orange.
func stoveLight(rng *rand.Rand) Color {
	r := between(rng, 150, 255)
	return Color{R: r, G: between(rng, 0, int(r)/4), B: 0}
}

var saturated = [...]Color{
	{R: 255},
	{G: 255},
	{B: 255},
	{R: 255, G: 255},
	{G: 255, B: 255},
	{R: 255, B: 255},
}

// flashColor picks a fully saturated primary or secondary colour.
func flashColor(rng *rand.Rand) Color {
	return saturated[rng.IntN(len(saturated))]
}
