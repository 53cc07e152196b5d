// Package sfx holds the four sound-effect sub-machines.
//
// Melody, Chuff and Whistle issue exactly one synthesis command per Step and
// return at once; the caller waits for the synthesizer to finish a command
// before stepping again. Announcer is the exception: its Step blocks until the
// whole announcement has been spoken.
//
// Every machine has a fixed number of steps, so a launched effect always
// finishes on its own. None of them can be cancelled.
package sfx
