package sfx

// MelodyChoice selects one of the two note tables.
type MelodyChoice int

const (
	MelodyA MelodyChoice = iota
	MelodyB
)

func (c MelodyChoice) String() string {
	if c == MelodyB {
		return "B"
	}
	return "A"
}

// Note is a pitch in Hz (0 = rest) and a duration code. Positive codes are
// simple fractions of a whole note (4 = quarter); negative codes are dotted
// (-4 = dotted quarter).
type Note struct {
	Pitch    int
	Duration int
}

// NoteTicks converts a duration code to synthesis ticks for a whole note of baseUnit ticks.
func NoteTicks(baseUnit, code int) int {
	switch {
	case code > 0:
		return baseUnit / code
	case code < 0:
		return (baseUnit * 3) / (-code * 2)
	default:
		return 0
	}
}

type MelodyParams struct {
	// BaseUnit is the length of a whole note in synthesis ticks.
	BaseUnit int
	A        []Note
	B        []Note
}

func DefaultMelodyParams() MelodyParams {
	return MelodyParams{BaseUnit: 2000, A: RailroadTune, B: WhistleStopTune}
}

// Melody plays one note per step from the table picked at launch.
type Melody struct {
	synth     Synth
	baseUnit  int
	tables    [2][]Note
	choice    MelodyChoice
	noteIndex int
	active    bool
}

func NewMelody(s Synth, params MelodyParams) *Melody {
	if params.A == nil {
		params.A = RailroadTune
	}
	if params.B == nil {
		params.B = WhistleStopTune
	}
	return &Melody{
		synth:    s,
		baseUnit: params.BaseUnit,
		tables:   [2][]Note{params.A, params.B},
	}
}

// Launch rewinds to the first note of the chosen table.
func (m *Melody) Launch(choice MelodyChoice) {
	if choice != MelodyB {
		choice = MelodyA
	}
	m.choice = choice
	m.noteIndex = 0
	m.active = len(m.tables[choice]) > 0
}

// Step plays the current note and reports true once the last note was issued.
func (m *Melody) Step() bool {
	if !m.active {
		return true
	}
	table := m.tables[m.choice]
	note := table[m.noteIndex]
	m.synth.RenderTone(note.Pitch, NoteTicks(m.baseUnit, note.Duration))
	m.noteIndex++
	if m.noteIndex >= len(table) {
		m.active = false
		m.noteIndex = 0
	}
	return !m.active
}

func (m *Melody) Active() bool { return m.active }

func (m *Melody) Choice() MelodyChoice { return m.choice }

func (m *Melody) NoteIndex() int { return m.noteIndex }

// Len returns the number of notes in the given table.
func (m *Melody) Len(choice MelodyChoice) int {
	if choice != MelodyB {
		choice = MelodyA
	}
	return len(m.tables[choice])
}
