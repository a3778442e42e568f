package profile

// Level buckets a completion count.
type Level int

// Mastery levels.
const (
	LevelNew Level = iota
	LevelSeen
	LevelLearnt
)

// learntThreshold is the completion count at which a word counts as learnt.
const learntThreshold = 5

// LevelFor returns the mastery level for a completion count.
func LevelFor(count int) Level {
	switch {
	case count <= 0:
		return LevelNew
	case count < learntThreshold:
		return LevelSeen
	default:
		return LevelLearnt
	}
}

func (l Level) String() string {
	switch l {
	case LevelSeen:
		return "seen"
	case LevelLearnt:
		return "learnt"
	default:
		return "new"
	}
}
