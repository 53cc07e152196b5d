package effects

import (
	"math"
	"testing"
)

func TestEchoRepeatsImpulse(t *testing.T) {
	d := NewEcho(44100, 100, 0.5, 0, 0.5)
	d.Process(1.0, 1.0)
	for i := 0; i < 4409; i++ { // 4410 frames of delay minus the one above
		d.Process(0, 0)
	}
	l, r := d.Process(0, 0)
	if math.Abs(float64(l)) < 0.01 || math.Abs(float64(r)) < 0.01 {
		t.Errorf("expected delayed output, got l=%f r=%f", l, r)
	}
}

func TestEchoResetClearsTail(t *testing.T) {
	d := NewEcho(8000, 10, 0.5, 0.5, 1)
	d.Process(1, 1)
	d.Reset()
	for i := 0; i < 200; i++ {
		if l, r := d.Process(0, 0); l != 0 || r != 0 {
			t.Fatalf("frame %d: got %f/%f after reset", i, l, r)
		}
	}
}

func TestReverbProducesTail(t *testing.T) {
	r := NewReverb(44100, 0.5, 0.7, 0.5)
	r.Process(1.0, 1.0)
	var maxOut float32
	for i := 0; i < 10000; i++ {
		l, _ := r.Process(0, 0)
		if l > maxOut {
			maxOut = l
		}
	}
	if maxOut < 0.001 {
		t.Error("expected reverb tail")
	}
}

func TestBusDropsDryStages(t *testing.T) {
	c := NewBus(44100, ReverbParams{Room: 0.5, Feedback: 0.7}, EchoParams{DelayMs: 100, Feedback: 0.5})
	if c.Len() != 0 {
		t.Fatalf("chain len = %d, want 0", c.Len())
	}
	if l, r := c.Process(0.25, -0.25); l != 0.25 || r != -0.25 {
		t.Fatalf("empty chain changed signal: %f/%f", l, r)
	}
	c = NewBus(44100, ReverbParams{Room: 0.5, Feedback: 0.7, Wet: 0.2}, EchoParams{DelayMs: 100, Wet: 0.3})
	if c.Len() != 2 {
		t.Fatalf("chain len = %d, want 2", c.Len())
	}
}

func TestChainAppliesEffectsInOrder(t *testing.T) {
	c := NewChain(
		NewEcho(44100, 10, 0, 0, 0.5),
		NewReverb(44100, 0.2, 0.5, 0.3),
	)
	if c.Len() != 2 {
		t.Fatalf("chain len = %d, want 2", c.Len())
	}
	l, r := c.Process(0.5, 0.5)
	if l == 0 || r == 0 {
		t.Error("chain should produce output")
	}
}
