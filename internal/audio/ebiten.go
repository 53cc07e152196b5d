package audio

import (
	"fmt"
	"io"
	"sync"

	ebitaudio "github.com/hajimehoshi/ebiten/v2/audio"
)

var (
	audioContextOnce sync.Once
	audioContext     *ebitaudio.Context
	audioSampleRate  int
)

// sharedAudioContext returns the process-wide ebiten context; ebiten allows
// only one, so a second sample rate is an error.
func sharedAudioContext(sampleRate int) (*ebitaudio.Context, error) {
	audioContextOnce.Do(func() {
		audioSampleRate = sampleRate
		audioContext = ebitaudio.NewContext(sampleRate)
	})
	if audioSampleRate != sampleRate {
		return nil, fmt.Errorf("audio context already initialized at %d Hz (requested %d Hz)", audioSampleRate, sampleRate)
	}
	return audioContext, nil
}

type EbitenPlayer struct {
	player *ebitaudio.Player
	reader io.ReadCloser
}

func NewEbitenPlayer(sampleRate int, source SampleSource) (*EbitenPlayer, error) {
	ctx, err := sharedAudioContext(sampleRate)
	if err != nil {
		return nil, err
	}
	reader := NewStreamReader(source)
	pl, err := ctx.NewPlayerF32(reader)
	if err != nil {
		return nil, fmt.Errorf("new ebiten player: %w", err)
	}
	return &EbitenPlayer{player: pl, reader: reader}, nil
}

func (p *EbitenPlayer) Play() { p.player.Play() }

func (p *EbitenPlayer) Stop() error {
	p.player.Pause()
	if err := p.player.Close(); err != nil {
		return fmt.Errorf("close ebiten player: %w", err)
	}
	return p.reader.Close()
}
