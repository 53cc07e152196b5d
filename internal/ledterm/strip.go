// Package ledterm previews the LED strip in a terminal: one coloured block per
// zone plus a status lamp, redrawn in place on every commit.
package ledterm

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/cbegin/locofx/internal/lighting"
)

var zoneLabels = [lighting.ZoneCount]string{"engine", "cabin", "stove"}

// Strip buffers zone writes and draws them on Commit.
type Strip struct {
	mu        sync.Mutex
	out       io.Writer
	renderer  *lipgloss.Renderer
	pending   [lighting.ZoneCount]lighting.Color
	committed [lighting.ZoneCount]lighting.Color
	status    bool
	commits   int
	err       error
}

func New(out io.Writer) *Strip {
	return &Strip{out: out, renderer: lipgloss.NewRenderer(out)}
}

// SetZoneColor stages a colour; zones outside 0..2 are ignored.
func (s *Strip) SetZoneColor(zone int, c lighting.Color) {
	if zone < 0 || zone >= lighting.ZoneCount {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending[zone] = c
}

func (s *Strip) Commit() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.committed = s.pending
	s.commits++
	s.drawLocked()
}

func (s *Strip) AllOff() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = [lighting.ZoneCount]lighting.Color{}
	s.committed = s.pending
	s.status = false
	s.drawLocked()
}

// Set drives the status lamp.
func (s *Strip) Set(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status == on {
		return
	}
	s.status = on
	s.drawLocked()
}

// Colors returns the last committed colours.
func (s *Strip) Colors() [lighting.ZoneCount]lighting.Color {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.committed
}

func (s *Strip) Commits() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commits
}

// Err returns the first write error, if any. Drawing stops after it.
func (s *Strip) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *Strip) drawLocked() {
	if s.err != nil {
		return
	}
	if _, err := io.WriteString(s.out, "\r"+s.lineLocked()); err != nil {
		s.err = fmt.Errorf("draw strip: %w", err)
	}
}

func (s *Strip) lineLocked() string {
	var b strings.Builder
	for i, c := range s.committed {
		block := s.renderer.NewStyle().
			Background(lipgloss.Color(hex(c))).
			Padding(0, 1).
			Render(zoneLabels[i])
		b.WriteString(block)
		b.WriteByte(' ')
	}
	lamp := s.renderer.NewStyle().Foreground(lipgloss.Color("#3a3a3a"))
	if s.status {
		lamp = lamp.Foreground(lipgloss.Color("#00ff5f"))
	}
	b.WriteString(lamp.Render("●"))
	return b.String()
}

func hex(c lighting.Color) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
