package ledger

// Level is a word's position in the mastery scale. It is derived from the
// correct-guess count and never stored.
type Level int

const (
	LevelNew Level = iota
	LevelLearnt
	LevelMastered
)

// Correct-guess thresholds. Each is the inclusive lower bound of its level.
const (
	LearntThreshold   = 2
	MasteredThreshold = 4
)

// Levels lists every level in ascending order.
var Levels = []Level{LevelNew, LevelLearnt, LevelMastered}

// Classify maps a correct-guess count to a Level.
func Classify(timesCorrect int) Level {
	switch {
	case timesCorrect >= MasteredThreshold:
		return LevelMastered
	case timesCorrect >= LearntThreshold:
		return LevelLearnt
	default:
		return LevelNew
	}
}

func (l Level) String() string {
	switch l {
	case LevelNew:
		return "new"
	case LevelLearnt:
		return "learnt"
	case LevelMastered:
		return "mastered"
	default:
		return "unknown"
	}
}

// ParseLevel returns the Level named s, or false if s names none.
func ParseLevel(s string) (Level, bool) {
	for _, l := range Levels {
		if l.String() == s {
			return l, true
		}
	}
	return LevelNew, false
}
