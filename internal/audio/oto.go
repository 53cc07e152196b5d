package audio

import (
	"fmt"

	"github.com/hajimehoshi/oto/v2"
)

const otoChannels = 2

type OtoPlayer struct {
	ctx    *oto.Context
	player oto.Player
	reader *StreamReader
}

// NewOtoPlayer opens an oto context and blocks until the device is ready.
func NewOtoPlayer(sampleRate int, source SampleSource) (*OtoPlayer, error) {
	ctx, ready, err := oto.NewContext(sampleRate, otoChannels, oto.FormatFloat32LE)
	if err != nil {
		return nil, fmt.Errorf("new oto context: %w", err)
	}
	<-ready
	reader := NewStreamReader(source)
	return &OtoPlayer{ctx: ctx, player: ctx.NewPlayer(reader), reader: reader}, nil
}

func (p *OtoPlayer) Play() { p.player.Play() }

func (p *OtoPlayer) Stop() error {
	p.player.Pause()
	if err := p.player.Close(); err != nil {
		return fmt.Errorf("close oto player: %w", err)
	}
	return p.reader.Close()
}
