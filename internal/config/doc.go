// Package config loads and validates the YAML settings of the controller:
// scheduler pacing, audio output and the parameters of every sound effect.
package config
