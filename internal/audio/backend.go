package audio

import (
	"fmt"
	"strings"
)

// Backend is a running audio output.
type Backend interface {
	Play()
	Stop() error
}

const (
	BackendEbiten = "ebiten"
	BackendOto    = "oto"
)

// NewBackend opens the named driver and streams source through it.
func NewBackend(name string, sampleRate int, source SampleSource) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", BackendEbiten:
		return NewEbitenPlayer(sampleRate, source)
	case BackendOto:
		return NewOtoPlayer(sampleRate, source)
	default:
		return nil, fmt.Errorf("unknown audio backend %q (expected %s|%s)", name, BackendEbiten, BackendOto)
	}
}
