package gamify

// LevelThresholds is the XP needed for each activity level (index i is
// level i+1). Level is engagement depth, not language ability — CEFR is
// tracked separately in preferences.
var LevelThresholds = []int{
	0, 50, 100, 200, 350, // 1-5 Starter
	550, 800, 1100, 1500, 2000, // 6-10 Traveler
	2600, 3300, 4100, 5000, 6000, // 11-15 Explorer
	7200, 8500, 10000, 12000, 15000, // 16-20 Pioneer
}

// MaxLevel is the highest activity level.
const MaxLevel = 20

// LevelFor returns the activity level for cumulative XP: the highest
// level whose threshold is at or below xp, in [1, 20]. Pure function of
// xp and the table. Negative xp must be rejected by the caller before
// reaching here; it maps to level 1.
func LevelFor(xp int) int {
	for i := len(LevelThresholds) - 1; i >= 0; i-- {
		if xp >= LevelThresholds[i] {
			return i + 1
		}
	}
	return 1
}

// LevelName returns the journey stage name for a level.
func LevelName(level int) string {
	switch {
	case level >= 16:
		return "Pioneer"
	case level >= 11:
		return "Explorer"
	case level >= 6:
		return "Traveler"
	default:
		return "Starter"
	}
}

// XPForNextLevel returns the XP still needed for the next level and the
// XP already earned into the current one. At max level needed is 0.
func XPForNextLevel(xp int) (needed, intoLevel int) {
	level := LevelFor(xp)
	if level >= MaxLevel {
		return 0, xp - LevelThresholds[MaxLevel-1]
	}
	return LevelThresholds[level] - xp, xp - LevelThresholds[level-1]
}
