// Package arbiter decides, tick by tick, whether the locomotive is animating
// its lights or playing a sound effect.
//
// Lighting and sound never run in the same tick. While a sound is active the
// lights hold their last colours and every tick goes to that sound; while idle
// every tick advances the lights and counts toward the next launch.
// Only a sound's launch sets the busy flag and only the arbitrator clears it.
package arbiter
