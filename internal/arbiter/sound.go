package arbiter

// Sound is a slot in the launch rotation.
type Sound int

const (
	SoundMelody Sound = iota
	SoundAnnouncement
	SoundChuff
	SoundWhistle
	// SoundRest is the ambient-only slot: its turn passes without a launch.
	SoundRest
)

// RotationLen is the number of slots in the rotation.
const RotationLen = int(SoundRest) + 1

func (s Sound) String() string {
	switch s {
	case SoundMelody:
		return "melody"
	case SoundAnnouncement:
		return "announcement"
	case SoundChuff:
		return "chuff"
	case SoundWhistle:
		return "whistle"
	case SoundRest:
		return "rest"
	default:
		return "unknown"
	}
}
